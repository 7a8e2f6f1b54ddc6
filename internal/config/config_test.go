package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().StringP("port", "p", DefaultPort, "")
	cmd.Flags().IntP("baud", "b", DefaultBaud, "")
	cmd.Flags().StringP("model", "m", "auto", "")
	cmd.Flags().String("format", "console", "")
	cmd.Flags().StringP("output", "o", "", "")
	cmd.Flags().IntP("samples", "n", 100, "")
	cmd.Flags().Bool("debug", false, "")
	return cmd
}

func TestNewEsensorOptDefaults(t *testing.T) {
	opt := NewEsensorOpt()
	assert.Equal(t, DefaultPort, opt.Serial.Port)
	assert.Equal(t, DefaultBaud, opt.Serial.Baud)
	assert.Equal(t, "auto", opt.Model)
	assert.Equal(t, "console", opt.Output.Format)
	assert.Equal(t, 100, opt.Output.Samples)
	assert.Equal(t, float64(200), opt.IMU.DoutRate)
	assert.Equal(t, "VELOCITY_RMS", opt.VIBE.OutputSel)
}

func TestParseFlagsOverrideDefaults(t *testing.T) {
	cmd := sessionCmd()
	require.NoError(t, cmd.Flags().Set("port", "/dev/ttyACM3"))
	require.NoError(t, cmd.Flags().Set("baud", "230400"))
	require.NoError(t, cmd.Flags().Set("samples", "5"))

	desc := NewEsensorDesc()
	require.NoError(t, desc.Parse(cmd))
	assert.Equal(t, "/dev/ttyACM3", desc.Opt.Serial.Port)
	assert.Equal(t, 230400, desc.Opt.Serial.Baud)
	assert.Equal(t, 5, desc.Opt.Output.Samples)
	// untouched keys keep their defaults
	assert.Equal(t, "auto", desc.Opt.Model)
}

func TestParseReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
serial:
  port: /dev/ttyUSB7
model: G366PDG0
imu:
  dout_rate: 500
  filter: MV_AVG4
  chksm: true
vibe:
  output_sel: DISP_PP
`), 0644))

	cmd := sessionCmd()
	require.NoError(t, cmd.Flags().Set("config", cfgPath))

	desc := NewEsensorDesc()
	require.NoError(t, desc.Parse(cmd))
	assert.Equal(t, "/dev/ttyUSB7", desc.Opt.Serial.Port)
	assert.Equal(t, "G366PDG0", desc.Opt.Model)
	assert.Equal(t, float64(500), desc.Opt.IMU.DoutRate)
	assert.Equal(t, "MV_AVG4", desc.Opt.IMU.Filter)
	assert.True(t, desc.Opt.IMU.Chksm)
	assert.Equal(t, "DISP_PP", desc.Opt.VIBE.OutputSel)
	// flags still win over the file
	cmd2 := sessionCmd()
	require.NoError(t, cmd2.Flags().Set("config", cfgPath))
	require.NoError(t, cmd2.Flags().Set("port", "/dev/ttyUSB9"))
	desc2 := NewEsensorDesc()
	require.NoError(t, desc2.Parse(cmd2))
	assert.Equal(t, "/dev/ttyUSB9", desc2.Opt.Serial.Port)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("model: auto\n"), 0644))

	cmd := sessionCmd()
	require.NoError(t, cmd.Flags().Set("config", cfgPath))
	desc := NewEsensorDesc()
	require.NoError(t, desc.Parse(cmd))

	desc.Opt.Serial.Port = "/dev/ttyS2"
	desc.Opt.IMU.DltA = true
	require.NoError(t, desc.SaveConfig())

	raw, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	var back EsensorOpt
	require.NoError(t, yaml.Unmarshal(raw, &back))
	assert.Equal(t, "/dev/ttyS2", back.Serial.Port)
	assert.True(t, back.IMU.DltA)
}
