package io_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gobot.io/x/gobot/drivers/i2c"

	pio "github.com/Seann-Moser/pca9685/pkg/io"
	"github.com/Seann-Moser/pca9685/pkg/pca9685"
)

type fakeConn struct {
	i2c.Connection
	regs   map[uint8]uint8
	writes [][2]uint8
	fail   error
	closed bool
}

func (c *fakeConn) ReadByteData(reg uint8) (uint8, error) {
	if c.fail != nil {
		return 0, c.fail
	}
	return c.regs[reg], nil
}

func (c *fakeConn) WriteByteData(reg uint8, val uint8) error {
	if c.fail != nil {
		return c.fail
	}
	c.regs[reg] = val
	c.writes = append(c.writes, [2]uint8{reg, val})
	return nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

type fakeConnector struct {
	i2c.Connector
	conns map[int]*fakeConn
	bus   int
	opens int
}

func (f *fakeConnector) GetConnection(address int, bus int) (i2c.Connection, error) {
	f.opens++
	f.bus = bus
	c := &fakeConn{regs: map[uint8]uint8{}}
	f.conns[address] = c
	return c, nil
}

func TestGobot_SetFrequency(t *testing.T) {
	fc := &fakeConnector{conns: map[int]*fakeConn{}}
	b := pio.NewGobotBus(fc, 1)
	dev, err := pca9685.Open(b, pca9685.WithAddress(0x41), pca9685.WithSleep(func(time.Duration) {}))
	require.NoError(t, err)

	require.NoError(t, dev.SetFrequency(50))
	c := fc.conns[0x41]
	require.NotNil(t, c)
	assert.Equal(t, [][2]uint8{{0x00, 0x10}, {0xFE, 121}, {0x00, 0x00}, {0x00, 0x80}}, c.writes)
	assert.Equal(t, 1, fc.opens)
	assert.Equal(t, 1, fc.bus)

	require.NoError(t, dev.Close())
	assert.True(t, c.closed)
}

func TestGobot_TransportFailure(t *testing.T) {
	fc := &fakeConnector{conns: map[int]*fakeConn{}}
	b := pio.NewGobotBus(fc, 1)
	_, err := b.ReadReg(0x40, 0x00)
	require.NoError(t, err)
	fc.conns[0x40].fail = errors.New("remote I/O error")

	dev, err := pca9685.Open(b)
	require.NoError(t, err)
	err = dev.WriteChannel(0, 1, 2)
	assert.ErrorContains(t, err, "remote I/O error")
	assert.ErrorContains(t, err, "write channel")
}
