package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Set up the chip, apply the configured channels and hold until interrupted",
	Long: `run opens the device, runs the setup sequence, programs the configured
frequency, writes the configured channel values and enables the outputs.
On SIGINT or SIGTERM every channel is switched off and the device is closed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		c, err := openController()
		if err != nil {
			return err
		}
		defer func() {
			if err := c.Close(); err != nil {
				log.Error().Err(err).Msg("close failed")
			}
		}()

		if err := c.Start(cfg.Frequency); err != nil {
			return err
		}
		if err := c.Apply(cfg.Channels); err != nil {
			return err
		}
		log.Info().Int("channels", len(cfg.Channels)).Msg("holding outputs")
		<-ctx.Done()
		log.Info().Msg("pca9685 run finished")
		return nil
	},
}

var serverCmd = &cobra.Command{
	Use:   "serve",
	Short: "Set up the chip and expose it over an HTTP JSON API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		c, err := openController()
		if err != nil {
			return err
		}
		defer func() {
			if err := c.Close(); err != nil {
				log.Error().Err(err).Msg("close failed")
			}
		}()

		if err := c.Start(cfg.Frequency); err != nil {
			return err
		}
		if err := c.Apply(cfg.Channels); err != nil {
			return err
		}
		addr, _ := cmd.Flags().GetString("listen")
		if addr == "" {
			addr = cfg.Listen
		}
		return c.StartServer(ctx, addr)
	},
}

func init() {
	serverCmd.Flags().String("listen", "", "HTTP listen address (default from config)")
	rootCmd.AddCommand(runCmd, serverCmd)
}
