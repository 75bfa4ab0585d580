package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "pca9685.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FillsDefaults(t *testing.T) {
	p := writeFile(t, `
address: 0x41
channels:
  - channel: 3
    on: 0
    off: 2048
output_enable:
  chip: gpiochip0
  line: 17
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x41), cfg.Address)
	assert.Equal(t, "periph", cfg.Transport)
	assert.Equal(t, 1, cfg.Bus)
	assert.Equal(t, 60.0, cfg.Frequency)
	assert.Equal(t, []ChannelSetting{{Channel: 3, On: 0, Off: 2048}}, cfg.Channels)
	assert.Equal(t, OutputEnable{Chip: "gpiochip0", Line: 17}, cfg.OE)
}

func TestLoad_Invalid(t *testing.T) {
	for name, body := range map[string]string{
		"transport": "transport: spi\n",
		"address":   "address: 0x80\n",
		"channel":   "channels:\n  - channel: 16\n",
		"ticks":     "channels:\n  - channel: 1\n    off: 4096\n",
		"yaml":      "bus: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body))
			assert.Error(t, err)
		})
	}
}
