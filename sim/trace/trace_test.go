package trace

import (
	"testing"
)

func TestSimulationTrace_Record_AppendsInOrder(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace()

	// WHEN two records are recorded
	st.Record(Record{Time: 1, Kind: KindVesselArrived, Vessel: 1})
	st.Record(Record{Time: 1, Kind: KindVesselBerthed, Vessel: 1})

	// THEN both are kept in order
	if st.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", st.Len())
	}
	if st.Records[0].Kind != KindVesselArrived || st.Records[1].Kind != KindVesselBerthed {
		t.Errorf("unexpected order: %+v", st.Records)
	}
}

func TestFilter_Levels(t *testing.T) {
	records := []Record{
		{Time: 0, Kind: KindVesselArrived, Vessel: 1},
		{Time: 0, Kind: KindCraneStarted, Vessel: 1, Container: 1},
		{Time: 3, Kind: KindTruckPickedUp, Vessel: 1, Container: 1},
		{Time: 9, Kind: KindVesselDeparted, Vessel: 1},
	}
	tests := []struct {
		level TraceLevel
		want  int
	}{
		{TraceLevelNone, 0},
		{TraceLevelVessels, 2},
		{TraceLevelAll, 4},
		{"", 4},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			st := NewSimulationTrace()
			sink := Filter(tt.level, st)
			for _, r := range records {
				sink.Record(r)
			}
			if st.Len() != tt.want {
				t.Errorf("level %q kept %d records, want %d", tt.level, st.Len(), tt.want)
			}
		})
	}
}

func TestMultiSink_FansOut(t *testing.T) {
	a, b := NewSimulationTrace(), NewSimulationTrace()
	count := 0
	sink := MultiSink{a, b, SinkFunc(func(Record) { count++ })}

	sink.Record(Record{Kind: KindVesselArrived, Vessel: 3})

	if a.Len() != 1 || b.Len() != 1 || count != 1 {
		t.Errorf("fan-out incomplete: a=%d b=%d func=%d", a.Len(), b.Len(), count)
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	for _, level := range []string{"none", "vessels", "all", ""} {
		if !IsValidTraceLevel(level) {
			t.Errorf("expected %q to be valid", level)
		}
	}
	if IsValidTraceLevel("decisions") {
		t.Error("expected unknown level to be invalid")
	}
}
