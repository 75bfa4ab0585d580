package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Seann-Moser/pca9685/pkg/config"
)

var (
	configPath string
	logLevel   string
	overrides  config.Config
	cfg        config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pca9685",
	Short: "Drive a PCA9685 16-channel PWM controller over i2c",
	Long: `pca9685 programs the NXP PCA9685 PWM controller register by register.

Bus, address and transport come from a YAML config file (--config) and can be
overridden with flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zerolog.TimeFieldFormat = time.RFC3339
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		lvl, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		zerolog.SetGlobalLevel(lvl)

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("transport") {
			cfg.Transport = overrides.Transport
		}
		if flags.Changed("bus") {
			cfg.Bus = overrides.Bus
		}
		if flags.Changed("address") {
			cfg.Address = overrides.Address
		}
		return cfg.Validate()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "pca9685.yaml", "path to YAML config")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&overrides.Transport, "transport", "periph", "i2c transport: periph or gobot")
	pf.IntVar(&overrides.Bus, "bus", 1, "i2c bus number")
	pf.Uint16Var(&overrides.Address, "address", 0x40, "7-bit device address")
}
