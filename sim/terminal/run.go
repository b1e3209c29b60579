package terminal

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/portsim/terminal-sim/sim"
	"github.com/portsim/terminal-sim/sim/trace"
)

// ErrInvalidDuration marks a run duration that was replaced by the default.
var ErrInvalidDuration = errors.New("invalid simulation duration")

// ResolveDuration parses a user-supplied run length in minutes. Empty input
// yields def with a nil error. Anything that is not a positive finite number
// also yields def, together with an ErrInvalidDuration explaining why, so the
// caller can report the fallback and carry on.
func ResolveDuration(raw string, def float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def, errors.Wrapf(ErrInvalidDuration, "%q is not a number", raw)
	}
	if !(d > 0) || math.IsInf(d, 0) {
		return def, errors.Wrapf(ErrInvalidDuration, "%q must be a positive number of minutes", raw)
	}
	return d, nil
}

// RunOptions tunes a single simulation run.
type RunOptions struct {
	Duration   float64               // minutes to simulate; <= 0 uses Config.Duration
	Seed       int64                 // seed for the arrivals RNG stream
	Sink       trace.Sink            // optional extra receiver of the lifecycle trace
	Registerer prometheus.Registerer // optional registry for run metrics
}

// Result is the outcome of a run.
type Result struct {
	RunID    string
	Duration float64
	EndTime  float64
	Vessels  []*Vessel
	Failures []*sim.ProcessFailure
	Trace    *trace.SimulationTrace
	Summary  *trace.TraceSummary
}

// Run validates cfg, simulates the terminal for the requested duration and
// returns the collected trace. A configuration error aborts before any
// simulation time passes.
func Run(cfg Config, opts RunOptions) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	duration := opts.Duration
	if duration <= 0 {
		duration = cfg.Duration
	}

	runID := uuid.New().String()
	logger := logrus.WithField("run_id", runID)
	logger.Infof("Starting terminal simulation: duration=%.0f min, seed=%d, berths=%d, cranes=%d, trucks=%d",
		duration, opts.Seed, cfg.Berths, cfg.Cranes, cfg.Trucks)

	collected := trace.NewSimulationTrace()
	var sink trace.Sink = collected
	if opts.Sink != nil {
		sink = trace.MultiSink{collected, opts.Sink}
	}

	s := sim.NewSimulator()
	defer func() {
		if err := s.Close(); err != nil {
			logger.Warnf("Closing simulator: %v", err)
		}
	}()

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(opts.Seed))
	t, err := New(s, cfg, rng, sink, NewMetrics(opts.Registerer))
	if err != nil {
		return nil, err
	}
	t.Start()
	if err := s.Run(duration); err != nil {
		return nil, errors.Wrap(err, "running simulation")
	}

	res := &Result{
		RunID:    runID,
		Duration: duration,
		EndTime:  s.Now(),
		Vessels:  t.Vessels(),
		Failures: s.Failures(),
		Trace:    collected,
		Summary:  trace.Summarize(collected),
	}
	puts, gets := t.Quay().Totals()
	logger.Infof("Simulation ended at t=%.0f: %d vessels arrived, %d departed, %d containers delivered, %d unhandled failures",
		res.EndTime, res.Summary.VesselsArrived, res.Summary.VesselsDeparted, res.Summary.ContainersDelivered, len(res.Failures))
	logger.Infof("Quay hand-off: %d containers landed, %d collected, %d awaiting a truck", puts, gets, t.Quay().Len())
	return res, nil
}
