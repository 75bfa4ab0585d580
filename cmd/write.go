package cmd

import (
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Seann-Moser/pca9685/pkg/pca9685"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Switch every channel off, wake the chip and program 60Hz",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(func(d *pca9685.Device) error {
			return d.Setup()
		})
	},
}

var freqCmd = &cobra.Command{
	Use:   "freq HZ",
	Short: "Reprogram the PWM frequency",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hz, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return err
		}
		return withDevice(func(d *pca9685.Device) error {
			return d.SetFrequency(hz)
		})
	},
}

var setCmd = &cobra.Command{
	Use:   "set CHANNEL ON OFF",
	Short: "Write the on/off ticks of one channel",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ch, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		on, off, err := parseTicks(args[1], args[2])
		if err != nil {
			return err
		}
		return withDevice(func(d *pca9685.Device) error {
			return d.WriteChannel(ch, on, off)
		})
	},
}

var allCmd = &cobra.Command{
	Use:   "all ON OFF",
	Short: "Write the same on/off ticks to every channel",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		on, off, err := parseTicks(args[0], args[1])
		if err != nil {
			return err
		}
		return withDevice(func(d *pca9685.Device) error {
			return d.WriteAllChannels(on, off)
		})
	},
}

var offCmd = &cobra.Command{
	Use:   "off",
	Short: "Switch every channel off",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(func(d *pca9685.Device) error {
			return d.WriteAllChannels(0, 0)
		})
	},
}

var readCmd = &cobra.Command{
	Use:   "read REGISTER",
	Short: "Read one register, e.g. 0x00 for MODE1",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := strconv.ParseUint(args[0], 0, 8)
		if err != nil {
			return err
		}
		return withDevice(func(d *pca9685.Device) error {
			v, err := d.ReadRegister(pca9685.Register(reg))
			if err != nil {
				return err
			}
			log.Info().Uint8("reg", uint8(reg)).Uint8("value", v).Msg("register")
			return nil
		})
	},
}

// parseTicks parses two tick values. Range checks are left to the driver.
func parseTicks(on, off string) (uint16, uint16, error) {
	a, err := strconv.ParseUint(on, 0, 16)
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.ParseUint(off, 0, 16)
	if err != nil {
		return 0, 0, err
	}
	return uint16(a), uint16(b), nil
}

func init() {
	rootCmd.AddCommand(setupCmd, freqCmd, setCmd, allCmd, offCmd, readCmd)
}
