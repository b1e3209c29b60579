package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portsim/terminal-sim/sim/trace"
)

func TestFormatRecord_AllKinds(t *testing.T) {
	tests := []struct {
		rec  trace.Record
		want string
	}{
		{trace.Record{Time: 300.4, Kind: trace.KindVesselArrived, Vessel: 1}, "Time 300: Vessel 1 arrives"},
		{trace.Record{Time: 300, Kind: trace.KindVesselBerthed, Vessel: 1}, "Time 300: Vessel 1 berths"},
		{trace.Record{Time: 300, Kind: trace.KindCraneStarted, Vessel: 1, Container: 4}, "Time 300: Crane starts moving container 4 from vessel 1"},
		{trace.Record{Time: 303, Kind: trace.KindCraneFinished, Vessel: 1, Container: 4}, "Time 303: Crane finishes moving container 4 from vessel 1"},
		{trace.Record{Time: 303, Kind: trace.KindTruckPickedUp, Vessel: 2, Container: 4}, "Time 303: Truck picks up container 4 from vessel 2"},
		{trace.Record{Time: 309, Kind: trace.KindTruckDroppedOff, Vessel: 2, Container: 4}, "Time 309: Truck drops off container 4 from vessel 2"},
		{trace.Record{Time: 700, Kind: trace.KindVesselDeparted, Vessel: 2}, "Time 700: Vessel 2 has finished unloading and departs"},
	}
	for _, tt := range tests {
		t.Run(string(tt.rec.Kind), func(t *testing.T) {
			assert.Equal(t, tt.want, formatRecord(tt.rec))
		})
	}
}

func TestNewTraceSink_JSON_OneObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	sink, err := newTraceSink("json", &buf)
	require.NoError(t, err)

	sink.Record(trace.Record{Time: 1, Kind: trace.KindVesselArrived, Vessel: 1})
	sink.Record(trace.Record{Time: 2, Kind: trace.KindCraneStarted, Vessel: 1, Container: 1})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var got trace.Record
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &got))
	assert.Equal(t, trace.Record{Time: 2, Kind: trace.KindCraneStarted, Vessel: 1, Container: 1}, got)
	assert.NotContains(t, lines[0], "container", "vessel records omit the container field")
}

func TestNewTraceSink_UnknownFormat_Errors(t *testing.T) {
	_, err := newTraceSink("xml", &bytes.Buffer{})
	assert.Error(t, err)
}
