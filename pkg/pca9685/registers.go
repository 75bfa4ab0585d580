package pca9685

// Register is a PCA9685 command byte.
type Register byte

const (
	Mode1    Register = 0x00
	Mode2    Register = 0x01
	SubAddr1 Register = 0x02
	SubAddr2 Register = 0x03
	SubAddr3 Register = 0x04
	Prescale Register = 0xFE

	Led0OnL  Register = 0x06
	Led0OnH  Register = 0x07
	Led0OffL Register = 0x08
	Led0OffH Register = 0x09

	AllLedOnL  Register = 0xFA
	AllLedOnH  Register = 0xFB
	AllLedOffL Register = 0xFC
	AllLedOffH Register = 0xFD
)

// Mode register bits.
const (
	BitRestart byte = 0x80
	BitSleep   byte = 0x10
	BitAllCall byte = 0x01
	BitInvert  byte = 0x10 // mode2
	BitOutDrv  byte = 0x04 // mode2, totem pole
)

const (
	Channels = 16
	// MaxTick is the last tick of the 4096-tick cycle.
	MaxTick = 4095

	DefaultAddress   uint16  = 0x40
	DefaultFrequency float64 = 60
	DefaultBus               = 1

	oscillatorHz = 25_000_000.0
	minPrescale  = 3
	maxPrescale  = 255
)

// channelBase returns the ON_L register of channel ch. The other three
// registers of the channel follow it.
func channelBase(ch int) Register {
	return Led0OnL + Register(4*ch)
}
