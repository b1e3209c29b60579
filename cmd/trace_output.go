package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/portsim/terminal-sim/sim/trace"
)

// formatRecord renders a lifecycle record as a human-readable trace line.
func formatRecord(r trace.Record) string {
	t := int64(r.Time)
	switch r.Kind {
	case trace.KindVesselArrived:
		return fmt.Sprintf("Time %d: Vessel %d arrives", t, r.Vessel)
	case trace.KindVesselBerthed:
		return fmt.Sprintf("Time %d: Vessel %d berths", t, r.Vessel)
	case trace.KindCraneStarted:
		return fmt.Sprintf("Time %d: Crane starts moving container %d from vessel %d", t, r.Container, r.Vessel)
	case trace.KindCraneFinished:
		return fmt.Sprintf("Time %d: Crane finishes moving container %d from vessel %d", t, r.Container, r.Vessel)
	case trace.KindTruckPickedUp:
		return fmt.Sprintf("Time %d: Truck picks up container %d from vessel %d", t, r.Container, r.Vessel)
	case trace.KindTruckDroppedOff:
		return fmt.Sprintf("Time %d: Truck drops off container %d from vessel %d", t, r.Container, r.Vessel)
	case trace.KindVesselDeparted:
		return fmt.Sprintf("Time %d: Vessel %d has finished unloading and departs", t, r.Vessel)
	default:
		return fmt.Sprintf("Time %d: %s vessel=%d container=%d", t, r.Kind, r.Vessel, r.Container)
	}
}

// newTraceSink returns a sink writing records to w in the given format
// ("text" or "json", one JSON object per line).
func newTraceSink(format string, w io.Writer) (trace.Sink, error) {
	switch format {
	case "text", "":
		return trace.SinkFunc(func(r trace.Record) {
			fmt.Fprintln(w, formatRecord(r))
		}), nil
	case "json":
		enc := json.NewEncoder(w)
		return trace.SinkFunc(func(r trace.Record) {
			if err := enc.Encode(r); err != nil {
				logrus.Errorf("Writing trace record: %v", err)
			}
		}), nil
	default:
		return nil, fmt.Errorf("unknown trace format %q (want text or json)", format)
	}
}
