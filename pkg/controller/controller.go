package controller

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Seann-Moser/pca9685/pkg/config"
	"github.com/Seann-Moser/pca9685/pkg/pca9685"
)

// OutputEnabler drives the chip's OE pin.
type OutputEnabler interface {
	Enable() error
	Disable() error
	Close() error
}

// Controller is the single owner of one PCA9685. Multi-step requests run
// under its lock so they never interleave.
type Controller struct {
	mu  sync.Mutex
	dev *pca9685.Device
	oe  OutputEnabler
}

// New takes ownership of dev and, if non-nil, oe.
func New(dev *pca9685.Device, oe OutputEnabler) *Controller {
	return &Controller{dev: dev, oe: oe}
}

// Start runs the setup sequence, programs hz and enables the outputs.
func (c *Controller) Start(hz float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.dev.Setup(); err != nil {
		return err
	}
	if hz != pca9685.DefaultFrequency {
		if err := c.dev.SetFrequency(hz); err != nil {
			return err
		}
	}
	if c.oe != nil {
		if err := c.oe.Enable(); err != nil {
			return err
		}
	}
	log.Info().Uint16("addr", c.dev.Address()).Float64("hz", hz).Msg("pca9685 ready")
	return nil
}

// Apply writes each channel setting in order and stops at the first error.
func (c *Controller) Apply(settings []config.ChannelSetting) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range settings {
		if err := c.dev.WriteChannel(s.Channel, s.On, s.Off); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) SetFrequency(hz float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dev.SetFrequency(hz)
}

func (c *Controller) WriteChannel(ch int, on, off uint16) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dev.WriteChannel(ch, on, off)
}

func (c *Controller) WriteAll(on, off uint16) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dev.WriteAllChannels(on, off)
}

func (c *Controller) Setup() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dev.Setup()
}

// Off forces every channel low.
func (c *Controller) Off() error {
	return c.WriteAll(0, 0)
}

type Status struct {
	Address   uint16  `json:"address"`
	Frequency float64 `json:"frequency"`
	Mode1     byte    `json:"mode1"`
}

func (c *Controller) Status() (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	mode, err := c.dev.Mode1()
	if err != nil {
		return Status{}, err
	}
	return Status{Address: c.dev.Address(), Frequency: c.dev.Frequency(), Mode1: mode}, nil
}

// Close turns every channel off, disables OE and releases the device. It
// always closes, even if switching off fails.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.dev.WriteAllChannels(0, 0); err != nil {
		log.Warn().Err(err).Msg("failed to switch channels off")
	}
	if c.oe != nil {
		if err := c.oe.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to release output enable line")
		}
	}
	return c.dev.Close()
}
