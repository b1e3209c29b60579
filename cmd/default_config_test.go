package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portsim/terminal-sim/sim/terminal"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "terminal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTerminalConfig_EmptyPath_ReturnsDefaults(t *testing.T) {
	cfg, err := loadTerminalConfig("")
	require.NoError(t, err)
	assert.Equal(t, terminal.DefaultConfig(), cfg)
}

func TestLoadTerminalConfig_PartialFile_KeepsDefaults(t *testing.T) {
	// GIVEN a file that only sets berths and the arrival process
	path := writeFile(t, "berths: 4\narrival_process: constant\n")

	// WHEN loaded
	cfg, err := loadTerminalConfig(path)

	// THEN the named fields change and everything else stays at its default
	require.NoError(t, err)
	want := terminal.DefaultConfig()
	want.Berths = 4
	want.ArrivalProcess = terminal.ArrivalConstant
	assert.Equal(t, want, cfg)
}

func TestLoadTerminalConfig_UnknownField_Rejected(t *testing.T) {
	// GIVEN a typo in a field name
	path := writeFile(t, "bertsh: 4\n")

	// WHEN loaded
	_, err := loadTerminalConfig(path)

	// THEN strict decoding reports it
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bertsh")
}

func TestLoadTerminalConfig_EmptyFile_ReturnsDefaults(t *testing.T) {
	cfg, err := loadTerminalConfig(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, terminal.DefaultConfig(), cfg)
}

func TestLoadTerminalConfig_MissingFile_Errors(t *testing.T) {
	_, err := loadTerminalConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyFlagOverrides_OnlyChangedFlagsApply(t *testing.T) {
	// GIVEN a config file value for trucks and a command where only --berths was set
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntVar(&berths, "berths", 2, "")
	cmd.Flags().IntVar(&trucks, "trucks", 3, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--berths", "5"}))

	cfg := terminal.DefaultConfig()
	cfg.Trucks = 9

	// WHEN overrides are applied
	applyFlagOverrides(cmd, &cfg)

	// THEN berths comes from the flag and trucks keeps the file value
	assert.Equal(t, 5, cfg.Berths)
	assert.Equal(t, 9, cfg.Trucks, "unchanged flag default must not clobber the file value")
}

func TestWriteConfigYAML_RoundTripsThroughLoader(t *testing.T) {
	cfg := terminal.DefaultConfig()
	cfg.Cranes = 7
	cfg.TransferTime = 2.5

	path := filepath.Join(t.TempDir(), "out.yaml")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, writeConfigYAML(f, cfg))
	require.NoError(t, f.Close())

	got, err := loadTerminalConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
