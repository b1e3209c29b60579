// Package trace provides lifecycle-trace recording for terminal simulations.
// This package has no dependencies on sim/ or sim/terminal/; it stores pure data types.
package trace

// Kind names a lifecycle event.
type Kind string

const (
	KindVesselArrived   Kind = "vessel_arrived"
	KindVesselBerthed   Kind = "vessel_berthed"
	KindCraneStarted    Kind = "crane_started"
	KindCraneFinished   Kind = "crane_finished"
	KindTruckPickedUp   Kind = "truck_picked_up"
	KindTruckDroppedOff Kind = "truck_dropped_off"
	KindVesselDeparted  Kind = "vessel_departed"
)

// IsVesselKind reports whether k describes a vessel (as opposed to a container) event.
func (k Kind) IsVesselKind() bool {
	switch k {
	case KindVesselArrived, KindVesselBerthed, KindVesselDeparted:
		return true
	}
	return false
}

// Record captures a single timestamped lifecycle event.
type Record struct {
	Time      float64 `json:"time"`
	Kind      Kind    `json:"kind"`
	Vessel    int     `json:"vessel"`
	Container int     `json:"container,omitempty"` // 0 for vessel events
}
