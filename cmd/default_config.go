package cmd

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/portsim/terminal-sim/sim/terminal"
)

// loadTerminalConfig parses a terminal YAML file on top of the defaults.
// Fields absent from the file keep their default values. Uses strict field
// checking: typos must cause errors.
func loadTerminalConfig(path string) (terminal.Config, error) {
	cfg := terminal.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config file %s", path)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrapf(err, "parsing config file %s", path)
	}
	return cfg, nil
}

// applyFlagOverrides copies explicitly set CLI flags into cfg.
// Only flags the user changed override the file/default values.
func applyFlagOverrides(cmd *cobra.Command, cfg *terminal.Config) {
	flags := cmd.Flags()
	if flags.Changed("mean-inter-arrival") {
		cfg.MeanInterArrival = meanInterArrival
	}
	if flags.Changed("transfer-time") {
		cfg.TransferTime = transferTime
	}
	if flags.Changed("truck-cycle-time") {
		cfg.TruckCycleTime = truckCycleTime
	}
	if flags.Changed("containers") {
		cfg.ContainersPerVessel = containersPerVessel
	}
	if flags.Changed("berths") {
		cfg.Berths = berths
	}
	if flags.Changed("cranes") {
		cfg.Cranes = cranes
	}
	if flags.Changed("trucks") {
		cfg.Trucks = trucks
	}
	if flags.Changed("arrival-process") {
		cfg.ArrivalProcess = arrivalProcess
	}
}

// writeConfigYAML prints cfg in the same format loadTerminalConfig reads.
func writeConfigYAML(w io.Writer, cfg terminal.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
