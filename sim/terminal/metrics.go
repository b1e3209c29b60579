package terminal

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every terminal metric.
const Namespace = "terminal"

// Metrics holds the per-run prometheus collectors. Values are in virtual
// minutes, not wall-clock time. A nil *Metrics records nothing.
type Metrics struct {
	VesselsArrived      prometheus.Counter
	VesselsDeparted     prometheus.Counter
	ContainersCraned    prometheus.Counter
	ContainersDelivered prometheus.Counter
	YardBacklog         prometheus.Gauge
	BerthWait           prometheus.Histogram
	Turnaround          prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg when reg is
// non-nil. Use a fresh registry per run so independent runs do not collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		VesselsArrived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "vessels",
			Name:      "arrived_total",
			Help:      "Vessels that arrived at the terminal.",
		}),
		VesselsDeparted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "vessels",
			Name:      "departed_total",
			Help:      "Vessels fully unloaded and departed.",
		}),
		ContainersCraned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "containers",
			Name:      "craned_total",
			Help:      "Containers moved from vessel to quay by a crane.",
		}),
		ContainersDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "containers",
			Name:      "delivered_total",
			Help:      "Containers dropped off by a truck.",
		}),
		YardBacklog: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "containers",
			Name:      "awaiting_truck",
			Help:      "Containers on the quay waiting for a truck.",
		}),
		BerthWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "vessels",
			Name:      "berth_wait_minutes",
			Help:      "Virtual minutes between arrival and berthing.",
			Buckets:   prometheus.ExponentialBuckets(15, 2, 10),
		}),
		Turnaround: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "vessels",
			Name:      "turnaround_minutes",
			Help:      "Virtual minutes between arrival and departure.",
			Buckets:   prometheus.ExponentialBuckets(60, 2, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.VesselsArrived,
			m.VesselsDeparted,
			m.ContainersCraned,
			m.ContainersDelivered,
			m.YardBacklog,
			m.BerthWait,
			m.Turnaround,
		)
	}
	return m
}

func (m *Metrics) vesselArrived() {
	if m == nil {
		return
	}
	m.VesselsArrived.Inc()
}

func (m *Metrics) vesselBerthed(v *Vessel) {
	if m == nil {
		return
	}
	m.BerthWait.Observe(v.BerthedAt - v.ArrivalTime)
}

func (m *Metrics) vesselDeparted(v *Vessel) {
	if m == nil {
		return
	}
	m.VesselsDeparted.Inc()
	m.Turnaround.Observe(v.DepartedAt - v.ArrivalTime)
}

func (m *Metrics) containerCraned(backlog int) {
	if m == nil {
		return
	}
	m.ContainersCraned.Inc()
	m.YardBacklog.Set(float64(backlog))
}

func (m *Metrics) containerPickedUp(backlog int) {
	if m == nil {
		return
	}
	m.YardBacklog.Set(float64(backlog))
}

func (m *Metrics) containerDelivered() {
	if m == nil {
		return
	}
	m.ContainersDelivered.Inc()
}
