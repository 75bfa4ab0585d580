// Package io holds the hardware collaborators of the PCA9685 driver: the
// i2c transports and the output-enable GPIO line.
package io

import (
	"fmt"
	"strconv"

	"github.com/Seann-Moser/pca9685/pkg/pca9685"
)

// Transport names accepted by OpenBus.
const (
	TransportPeriph = "periph"
	TransportGobot  = "gobot"
)

// OpenBus opens bus number busID with the named transport. An empty kind
// selects periph.
func OpenBus(kind string, busID int) (pca9685.Bus, error) {
	switch kind {
	case "", TransportPeriph:
		b, err := OpenPeriph(strconv.Itoa(busID))
		if err != nil {
			return nil, err
		}
		return b, nil
	case TransportGobot:
		b, err := OpenGobot(busID)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown transport %q", kind)
	}
}
