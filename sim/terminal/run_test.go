package terminal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portsim/terminal-sim/sim/trace"
)

func TestResolveDuration(t *testing.T) {
	const def = 1440.0
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{"absent", "", def, false},
		{"whitespace only", "   ", def, false},
		{"integer", "600", 600, false},
		{"fractional", "90.5", 90.5, false},
		{"padded", " 30 ", 30, false},
		{"zero", "0", def, true},
		{"negative", "-15", def, true},
		{"not a number", "one day", def, true},
		{"infinite", "+Inf", def, true},
		{"nan", "NaN", def, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDuration(tt.raw, def)

			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidDuration), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func busyConfig() Config {
	cfg := DefaultConfig()
	cfg.MeanInterArrival = 30
	cfg.ContainersPerVessel = 12
	return cfg
}

func TestRun_SameSeed_IdenticalTrace(t *testing.T) {
	// GIVEN the same config and seed
	cfg := busyConfig()

	// WHEN run twice
	r1, err := Run(cfg, RunOptions{Duration: 600, Seed: 42})
	require.NoError(t, err)
	r2, err := Run(cfg, RunOptions{Duration: 600, Seed: 42})
	require.NoError(t, err)

	// THEN the traces are identical
	require.NotZero(t, r1.Trace.Len())
	if diff := cmp.Diff(r1.Trace.Records, r2.Trace.Records); diff != "" {
		t.Errorf("same seed diverged (-first +second):\n%s", diff)
	}
	assert.NotEqual(t, r1.RunID, r2.RunID)

	// AND a different seed gives a different trace
	r3, err := Run(cfg, RunOptions{Duration: 600, Seed: 43})
	require.NoError(t, err)
	assert.NotEqual(t, r1.Trace.Records, r3.Trace.Records)
}

func TestRun_EndsAtRequestedDuration(t *testing.T) {
	res, err := Run(busyConfig(), RunOptions{Duration: 250, Seed: 1})
	require.NoError(t, err)

	assert.Equal(t, 250.0, res.EndTime)
	assert.Equal(t, 250.0, res.Duration)
	for _, r := range res.Trace.Records {
		assert.LessOrEqual(t, r.Time, 250.0)
	}
}

func TestRun_NonPositiveDuration_UsesConfigDefault(t *testing.T) {
	cfg := busyConfig()
	cfg.Duration = 120

	res, err := Run(cfg, RunOptions{Seed: 1})
	require.NoError(t, err)

	assert.Equal(t, 120.0, res.EndTime)
}

func TestRun_InvalidConfig_FailsBeforeSimulating(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cranes = 0
	called := false

	res, err := Run(cfg, RunOptions{Sink: trace.SinkFunc(func(trace.Record) { called = true })})

	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrConfiguration), "got %v", err)
	assert.False(t, called)
}

func TestRun_ForwardsTraceToSink_AndRecordsMetrics(t *testing.T) {
	// GIVEN an external sink and a fresh registry
	external := trace.NewSimulationTrace()
	reg := prometheus.NewRegistry()

	// WHEN run
	res, err := Run(busyConfig(), RunOptions{Duration: 600, Seed: 7, Sink: external, Registerer: reg})
	require.NoError(t, err)

	// THEN the sink saw the same records as the result
	assert.Equal(t, res.Trace.Records, external.Records)

	// AND the counters agree with the trace summary
	families, err := reg.Gather()
	require.NoError(t, err)
	counters := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				counters[mf.GetName()] = c.GetValue()
			}
		}
	}
	assert.Equal(t, float64(res.Summary.VesselsArrived), counters["terminal_vessels_arrived_total"])
	assert.Equal(t, float64(res.Summary.VesselsDeparted), counters["terminal_vessels_departed_total"])
	assert.Equal(t, float64(res.Summary.ContainersCraned), counters["terminal_containers_craned_total"])
	assert.Equal(t, float64(res.Summary.ContainersDelivered), counters["terminal_containers_delivered_total"])
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	v := &Vessel{ArrivalTime: 1, BerthedAt: 2, DepartedAt: 3}

	assert.NotPanics(t, func() {
		m.vesselArrived()
		m.vesselBerthed(v)
		m.vesselDeparted(v)
		m.containerCraned(1)
		m.containerPickedUp(0)
		m.containerDelivered()
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics(nil)
	m.vesselArrived()
	m.vesselArrived()
	m.containerCraned(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.VesselsArrived))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ContainersCraned))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.YardBacklog))
}
