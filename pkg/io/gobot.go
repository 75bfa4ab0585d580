package io

import (
	"fmt"
	"sync"

	"gobot.io/x/gobot/drivers/i2c"
	"gobot.io/x/gobot/platforms/raspi"
)

// GobotBus routes register accesses through a gobot i2c.Connector. One
// connection is opened per device address and reused.
type GobotBus struct {
	mu        sync.Mutex
	connector i2c.Connector
	bus       int
	conns     map[uint16]i2c.Connection
	finalize  func() error
}

// NewGobotBus uses connector for the given bus number. Close closes the
// connections it opened but not the connector.
func NewGobotBus(connector i2c.Connector, bus int) *GobotBus {
	return &GobotBus{
		connector: connector,
		bus:       bus,
		conns:     make(map[uint16]i2c.Connection),
	}
}

// OpenGobot connects a Raspberry Pi adaptor and uses its i2c bus.
func OpenGobot(bus int) (*GobotBus, error) {
	r := raspi.NewAdaptor()
	if err := r.Connect(); err != nil {
		return nil, fmt.Errorf("raspi connect: %w", err)
	}
	g := NewGobotBus(r, bus)
	g.finalize = r.Finalize
	return g, nil
}

func (g *GobotBus) conn(addr uint16) (i2c.Connection, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if c, ok := g.conns[addr]; ok {
		return c, nil
	}
	c, err := g.connector.GetConnection(int(addr), g.bus)
	if err != nil {
		return nil, err
	}
	g.conns[addr] = c
	return c, nil
}

func (g *GobotBus) ReadReg(addr uint16, reg byte) (byte, error) {
	c, err := g.conn(addr)
	if err != nil {
		return 0, err
	}
	return c.ReadByteData(reg)
}

func (g *GobotBus) WriteReg(addr uint16, reg, value byte) error {
	c, err := g.conn(addr)
	if err != nil {
		return err
	}
	return c.WriteByteData(reg, value)
}

func (g *GobotBus) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	var first error
	for addr, c := range g.conns {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
		delete(g.conns, addr)
	}
	if g.finalize != nil {
		if err := g.finalize(); err != nil && first == nil {
			first = err
		}
		g.finalize = nil
	}
	return first
}

func (g *GobotBus) String() string {
	return fmt.Sprintf("gobot(i2c-%d)", g.bus)
}
