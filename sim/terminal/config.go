package terminal

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// ErrConfiguration marks a tunable that cannot be used to run a simulation.
var ErrConfiguration = errors.New("configuration error")

// Arrival process names accepted in Config.ArrivalProcess.
const (
	ArrivalPoisson  = "poisson"
	ArrivalConstant = "constant"
)

// Config groups the terminal tunables. Times are in virtual minutes.
type Config struct {
	MeanInterArrival    float64 `yaml:"mean_inter_arrival"`      // mean time between vessel arrivals
	TransferTime        float64 `yaml:"container_transfer_time"` // crane time per container
	TruckCycleTime      float64 `yaml:"truck_cycle_time"`        // truck round trip per container
	ContainersPerVessel int     `yaml:"containers_per_vessel"`
	Berths              int     `yaml:"berths"`
	Cranes              int     `yaml:"cranes"`
	Trucks              int     `yaml:"trucks"`
	Duration            float64 `yaml:"duration"`        // default run length
	ArrivalProcess      string  `yaml:"arrival_process"` // "poisson" (default) or "constant"
}

// DefaultConfig returns a terminal with two berths, two cranes and three
// trucks, a vessel every five hours on average, and a one-day run.
func DefaultConfig() Config {
	return Config{
		MeanInterArrival:    5 * 60,
		TransferTime:        3,
		TruckCycleTime:      6,
		ContainersPerVessel: 150,
		Berths:              2,
		Cranes:              2,
		Trucks:              3,
		Duration:            24 * 60,
		ArrivalProcess:      ArrivalPoisson,
	}
}

// Validate reports every non-positive tunable and unknown arrival process.
// Each reported problem wraps ErrConfiguration.
func (c Config) Validate() error {
	var result *multierror.Error
	positive := func(name string, v float64) {
		if !(v > 0) {
			result = multierror.Append(result, errors.Wrapf(ErrConfiguration, "%s must be positive, got %v", name, v))
		}
	}
	positive("mean_inter_arrival", c.MeanInterArrival)
	positive("container_transfer_time", c.TransferTime)
	positive("truck_cycle_time", c.TruckCycleTime)
	positive("containers_per_vessel", float64(c.ContainersPerVessel))
	positive("berths", float64(c.Berths))
	positive("cranes", float64(c.Cranes))
	positive("trucks", float64(c.Trucks))
	positive("duration", c.Duration)

	switch c.ArrivalProcess {
	case "", ArrivalPoisson, ArrivalConstant:
	default:
		result = multierror.Append(result, errors.Wrapf(ErrConfiguration, "unknown arrival_process %q", c.ArrivalProcess))
	}
	return result.ErrorOrNil()
}
