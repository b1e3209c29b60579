package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/portsim/terminal-sim/sim/terminal"
	"github.com/portsim/terminal-sim/sim/trace"
)

var (
	// CLI flags for the run itself
	configPath  string // Terminal YAML config file
	durationArg string // Simulation length in minutes (invalid input falls back to the default)
	seed        int64  // Seed for the arrivals stream
	logLevel    string // Log verbosity level
	traceLevel  string // Trace verbosity: none, vessels, all
	traceFormat string // Trace output format: text or json
	metricsFile string // Write prometheus metrics in text format to this file

	// CLI overrides for terminal tunables
	meanInterArrival    float64 // Mean minutes between vessel arrivals
	transferTime        float64 // Crane minutes per container
	truckCycleTime      float64 // Truck round trip minutes per container
	containersPerVessel int     // Containers carried by each vessel
	berths              int     // Number of berths
	cranes              int     // Number of quay cranes
	trucks              int     // Number of yard trucks
	arrivalProcess      string  // Arrival process: poisson or constant
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "terminal-sim",
	Short: "Discrete-event simulator for a container terminal",
}

// runCmd executes the simulation using the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the terminal simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := effectiveConfig(cmd)
		if err := runSimulation(cfg, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
	},
}

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective terminal configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := effectiveConfig(cmd)
		if err := writeConfigYAML(cmd.OutOrStdout(), cfg); err != nil {
			logrus.Fatalf("Writing config: %v", err)
		}
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// effectiveConfig merges defaults, the config file and changed flags.
func effectiveConfig(cmd *cobra.Command) terminal.Config {
	cfg, err := loadTerminalConfig(configPath)
	if err != nil {
		logrus.Fatalf("Unable to read terminal config: %v", err)
	}
	applyFlagOverrides(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid terminal config: %v", err)
	}
	return cfg
}

// runSimulation runs one simulation with the package flag values and writes
// the trace and a summary to out.
func runSimulation(cfg terminal.Config, out io.Writer) error {
	if !trace.IsValidTraceLevel(traceLevel) {
		return fmt.Errorf("unknown trace level %q (want none, vessels or all)", traceLevel)
	}
	printer, err := newTraceSink(traceFormat, out)
	if err != nil {
		return err
	}

	duration, err := terminal.ResolveDuration(durationArg, cfg.Duration)
	if err != nil {
		logrus.Warnf("Using default duration of %.0f minutes: %v", duration, err)
	}

	opts := terminal.RunOptions{
		Duration: duration,
		Seed:     seed,
		Sink:     trace.Filter(trace.TraceLevel(traceLevel), printer),
	}
	var registry *prometheus.Registry
	if metricsFile != "" {
		registry = prometheus.NewRegistry()
		opts.Registerer = registry
	}

	res, err := terminal.Run(cfg, opts)
	if err != nil {
		return err
	}
	if traceFormat != "json" {
		printSummary(out, res)
	}

	if registry != nil {
		if err := prometheus.WriteToTextfile(metricsFile, registry); err != nil {
			return fmt.Errorf("writing metrics to %s: %w", metricsFile, err)
		}
		logrus.Infof("Metrics written to %s", metricsFile)
	}
	return nil
}

func printSummary(out io.Writer, res *terminal.Result) {
	s := res.Summary
	fmt.Fprintf(out, "=== Simulation Summary (run %s) ===\n", res.RunID)
	fmt.Fprintf(out, "Simulated time       : %.0f min\n", res.EndTime)
	fmt.Fprintf(out, "Vessels arrived      : %d\n", s.VesselsArrived)
	fmt.Fprintf(out, "Vessels berthed      : %d\n", s.VesselsBerthed)
	fmt.Fprintf(out, "Vessels departed     : %d\n", s.VesselsDeparted)
	fmt.Fprintf(out, "Containers delivered : %d\n", s.ContainersDelivered)
	fmt.Fprintf(out, "Mean berth wait      : %.2f min\n", s.MeanBerthWait)
	fmt.Fprintf(out, "Mean turnaround      : %.2f min\n", s.MeanTurnaround)
	if len(res.Failures) > 0 {
		fmt.Fprintf(out, "Unhandled failures   : %d\n", len(res.Failures))
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	def := terminal.DefaultConfig()

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to terminal YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Terminal tunables, applied on top of the config file when set
	rootCmd.PersistentFlags().Float64Var(&meanInterArrival, "mean-inter-arrival", def.MeanInterArrival, "Mean minutes between vessel arrivals")
	rootCmd.PersistentFlags().Float64Var(&transferTime, "transfer-time", def.TransferTime, "Crane minutes per container")
	rootCmd.PersistentFlags().Float64Var(&truckCycleTime, "truck-cycle-time", def.TruckCycleTime, "Truck round trip minutes per container")
	rootCmd.PersistentFlags().IntVar(&containersPerVessel, "containers", def.ContainersPerVessel, "Containers per vessel")
	rootCmd.PersistentFlags().IntVar(&berths, "berths", def.Berths, "Number of berths")
	rootCmd.PersistentFlags().IntVar(&cranes, "cranes", def.Cranes, "Number of quay cranes")
	rootCmd.PersistentFlags().IntVar(&trucks, "trucks", def.Trucks, "Number of yard trucks")
	rootCmd.PersistentFlags().StringVar(&arrivalProcess, "arrival-process", def.ArrivalProcess, "Vessel arrival process (poisson, constant)")

	runCmd.Flags().StringVar(&durationArg, "duration", "", "Simulation length in minutes (default from config)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for vessel arrivals")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelAll), "Trace verbosity (none, vessels, all)")
	runCmd.Flags().StringVar(&traceFormat, "format", "text", "Trace output format (text, json)")
	runCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write prometheus metrics in text format to this file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}
