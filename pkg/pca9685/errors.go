package pca9685

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned before any bus traffic when a channel,
	// tick value, frequency or address is out of range.
	ErrInvalidArgument = errors.New("pca9685: invalid argument")
	// ErrClosed is returned for any operation on a closed Device.
	ErrClosed = errors.New("pca9685: device closed")
)

// Op names the driver sequence that was running when a failure occurred.
type Op string

const (
	OpSetup        Op = "setup"
	OpFrequency    Op = "set frequency"
	OpWriteChannel Op = "write channel"
	OpWriteAll     Op = "write all channels"
	OpRead         Op = "read register"
	OpWrite        Op = "write register"
)

// TransportError is a failed bus transaction.
type TransportError struct {
	Op   string // "read" or "write"
	Addr uint16
	Reg  Register
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("pca9685: %s 0x%02X at 0x%02X: %v", e.Op, byte(e.Reg), e.Addr, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DriverError tags a failure with the sequence it interrupted. Err is either
// a *TransportError or ErrClosed.
type DriverError struct {
	Op  Op
	Err error
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("pca9685: %s: %v", e.Op, e.Err)
}

func (e *DriverError) Unwrap() error { return e.Err }

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

func wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &DriverError{Op: op, Err: err}
}
