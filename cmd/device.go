package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Seann-Moser/pca9685/pkg/controller"
	"github.com/Seann-Moser/pca9685/pkg/io"
	"github.com/Seann-Moser/pca9685/pkg/pca9685"
)

// openDevice opens the configured bus and the device on it. The caller owns
// the returned device and must Close it.
func openDevice() (*pca9685.Device, error) {
	bus, err := io.OpenBus(cfg.Transport, cfg.Bus)
	if err != nil {
		return nil, err
	}
	dev, err := pca9685.Open(bus,
		pca9685.WithAddress(cfg.Address),
		pca9685.WithFrequency(cfg.Frequency),
		pca9685.WithLogger(log.Logger),
	)
	if err != nil {
		_ = bus.Close()
		return nil, err
	}
	return dev, nil
}

// openController also claims the output enable line when one is configured.
func openController() (*controller.Controller, error) {
	dev, err := openDevice()
	if err != nil {
		return nil, err
	}
	var oe controller.OutputEnabler
	if cfg.OE.Chip != "" {
		line, err := io.OpenOutputEnable(cfg.OE.Chip, cfg.OE.Line)
		if err != nil {
			_ = dev.Close()
			return nil, fmt.Errorf("output enable: %w", err)
		}
		oe = line
	}
	return controller.New(dev, oe), nil
}

// withDevice runs fn against a freshly opened device and always closes it.
func withDevice(fn func(*pca9685.Device) error) (err error) {
	dev, err := openDevice()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := dev.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(dev)
}
