// Package pca9685 drives the NXP PCA9685 16-channel, 12-bit PWM controller
// one register at a time.
//
// # Datasheet
//
// https://www.nxp.com/docs/en/data-sheet/PCA9685.pdf
package pca9685

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// settleDelay is the oscillator stabilisation time after a MODE1 change.
const settleDelay = 5 * time.Millisecond

// Device is one open PCA9685 on a bus. The Device owns the bus and closes it
// in Close. Operations on one Device are serialized.
type Device struct {
	mu    sync.Mutex
	bus   Bus
	addr  uint16
	freq  float64
	sleep func(time.Duration)
	log   zerolog.Logger
}

// Option configures Open.
type Option func(*Device)

// WithAddress sets the 7-bit device address. Default 0x40.
func WithAddress(addr uint16) Option {
	return func(d *Device) { d.addr = addr }
}

// WithFrequency sets the configured PWM frequency in Hz. Default 60.
// It is not written to the chip until SetFrequency is called.
func WithFrequency(hz float64) Option {
	return func(d *Device) { d.freq = hz }
}

// WithSleep replaces the settle-time delay, time.Sleep by default.
func WithSleep(sleep func(time.Duration)) Option {
	return func(d *Device) { d.sleep = sleep }
}

func WithLogger(l zerolog.Logger) Option {
	return func(d *Device) { d.log = l }
}

// Open returns a Device on bus. No bus transaction is issued; call Setup to
// initialise the chip.
func Open(bus Bus, opts ...Option) (*Device, error) {
	if bus == nil {
		return nil, invalidf("nil bus")
	}
	d := &Device{
		bus:   bus,
		addr:  DefaultAddress,
		freq:  DefaultFrequency,
		sleep: time.Sleep,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.addr > 0x7F {
		return nil, invalidf("address 0x%X is not 7-bit", d.addr)
	}
	if _, err := PrescaleFor(d.freq); err != nil {
		return nil, err
	}
	if d.sleep == nil {
		d.sleep = time.Sleep
	}
	d.log = d.log.With().Str("device", "pca9685").Uint16("addr", d.addr).Logger()
	return d, nil
}

// Address returns the device address on the bus.
func (d *Device) Address() uint16 { return d.addr }

// Frequency returns the last frequency successfully programmed, or the one
// passed to Open.
func (d *Device) Frequency() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.freq
}

// Setup forces every channel off, configures the output driver and all-call
// address, wakes the oscillator and programs the default 60Hz frequency.
func (d *Device) Setup() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.setup(); err != nil {
		return wrap(OpSetup, err)
	}
	d.log.Info().Float64("hz", d.freq).Msg("setup complete")
	return nil
}

func (d *Device) setup() error {
	if err := d.writePair(AllLedOnL, 0, 0); err != nil {
		return err
	}
	if err := d.write(Mode2, BitOutDrv); err != nil {
		return err
	}
	if err := d.write(Mode1, BitAllCall); err != nil {
		return err
	}
	d.sleep(settleDelay)

	mode, err := d.read(Mode1)
	if err != nil {
		return err
	}
	if err := d.write(Mode1, mode&^BitSleep); err != nil {
		return err
	}
	d.sleep(settleDelay)

	prescale, err := PrescaleFor(DefaultFrequency)
	if err != nil {
		return err
	}
	if err := d.program(prescale); err != nil {
		return err
	}
	d.freq = DefaultFrequency
	return nil
}

// Close releases the bus. Further operations fail with ErrClosed. Closing
// twice is a no-op.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.bus == nil {
		return nil
	}
	err := d.bus.Close()
	d.bus = nil
	d.log.Debug().Msg("closed")
	return err
}
