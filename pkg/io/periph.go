package io

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// PeriphBus issues one periph.io i2c transaction per register access.
type PeriphBus struct {
	bus    i2c.Bus
	closer func() error
}

// NewPeriphBus wraps an already open periph bus. Close does not close bus.
func NewPeriphBus(bus i2c.Bus) *PeriphBus {
	return &PeriphBus{bus: bus}
}

// OpenPeriph initialises the periph host drivers and opens the named bus.
// Raspberry Pi boards usually expose "1" (I2C1).
func OpenPeriph(busID string) (*PeriphBus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	bc, err := i2creg.Open(busID)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busID, err)
	}
	return &PeriphBus{bus: bc, closer: bc.Close}, nil
}

func (p *PeriphBus) ReadReg(addr uint16, reg byte) (byte, error) {
	d := i2c.Dev{Bus: p.bus, Addr: addr}
	r := []byte{0}
	if err := d.Tx([]byte{reg}, r); err != nil {
		return 0, err
	}
	return r[0], nil
}

func (p *PeriphBus) WriteReg(addr uint16, reg, value byte) error {
	d := i2c.Dev{Bus: p.bus, Addr: addr}
	return d.Tx([]byte{reg, value}, nil)
}

func (p *PeriphBus) Close() error {
	if p.closer == nil {
		return nil
	}
	err := p.closer()
	p.closer = nil
	return err
}

func (p *PeriphBus) String() string {
	return fmt.Sprintf("periph(%s)", p.bus)
}
