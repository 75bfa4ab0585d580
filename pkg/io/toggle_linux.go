//go:build linux

package io

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// OutputEnable drives the PCA9685 OE pin. OE is active low: a low line lets
// the chip drive its outputs.
type OutputEnable struct {
	line *gpiocdev.Line
}

// OpenOutputEnable requests offset on chip as an output, initially disabled.
func OpenOutputEnable(chip string, offset int) (*OutputEnable, error) {
	line, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsOutput(1),
		gpiocdev.WithConsumer("pca9685-oe"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to request GPIO line: %w", err)
	}
	return &OutputEnable{line: line}, nil
}

func (o *OutputEnable) Enable() error {
	return o.set(0)
}

func (o *OutputEnable) Disable() error {
	return o.set(1)
}

func (o *OutputEnable) set(v int) error {
	if o == nil || o.line == nil {
		return fmt.Errorf("output enable line closed")
	}
	return o.line.SetValue(v)
}

// Close disables the outputs and releases the line.
func (o *OutputEnable) Close() error {
	if o == nil || o.line == nil {
		return nil
	}
	_ = o.line.SetValue(1)
	_ = o.line.Reconfigure(gpiocdev.AsInput)
	err := o.line.Close()
	o.line = nil
	return err
}
