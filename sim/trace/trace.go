package trace

// TraceLevel controls the verbosity of lifecycle tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelVessels captures vessel arrivals, berthings and departures only.
	TraceLevelVessels TraceLevel = "vessels"
	// TraceLevelAll captures vessel and per-container crane/truck events.
	TraceLevelAll TraceLevel = "all"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:    true,
	TraceLevelVessels: true,
	TraceLevelAll:     true,
	"":                true, // empty defaults to all
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// Sink receives lifecycle records in simulation order.
type Sink interface {
	Record(r Record)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(r Record)

// Record calls f(r).
func (f SinkFunc) Record(r Record) { f(r) }

// Discard drops every record.
var Discard Sink = SinkFunc(func(Record) {})

// MultiSink fans a record out to every sink in order.
type MultiSink []Sink

// Record forwards r to each sink.
func (m MultiSink) Record(r Record) {
	for _, s := range m {
		s.Record(r)
	}
}

// Filter returns a sink that forwards only the records the level admits.
func Filter(level TraceLevel, next Sink) Sink {
	switch level {
	case TraceLevelNone:
		return Discard
	case TraceLevelVessels:
		return SinkFunc(func(r Record) {
			if r.Kind.IsVesselKind() {
				next.Record(r)
			}
		})
	default:
		return next
	}
}

// SimulationTrace collects lifecycle records during a simulation.
type SimulationTrace struct {
	Records []Record
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace() *SimulationTrace {
	return &SimulationTrace{
		Records: make([]Record, 0),
	}
}

// Record appends a lifecycle record.
func (st *SimulationTrace) Record(r Record) {
	st.Records = append(st.Records, r)
}

// Len returns the number of records collected.
func (st *SimulationTrace) Len() int {
	return len(st.Records)
}
