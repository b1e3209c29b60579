package terminal

import "fmt"

// VesselState tracks a vessel through the terminal.
type VesselState int

const (
	VesselArrived VesselState = iota
	VesselBerthing
	VesselUnloading
	VesselDeparted
)

func (s VesselState) String() string {
	switch s {
	case VesselArrived:
		return "arrived"
	case VesselBerthing:
		return "berthing"
	case VesselUnloading:
		return "unloading"
	case VesselDeparted:
		return "departed"
	default:
		return fmt.Sprintf("vessel_state(%d)", int(s))
	}
}

// Vessel is a ship calling at the terminal.
type Vessel struct {
	ID          int
	ArrivalTime float64
	Containers  int // containers carried on arrival
	Remaining   int // containers still aboard
	State       VesselState
	BerthedAt   float64
	DepartedAt  float64
}

// ContainerRecord identifies a container handed from a crane to a truck.
type ContainerRecord struct {
	VesselID  int
	Container int // 1-based sequence within the vessel
}

func (c ContainerRecord) String() string {
	return fmt.Sprintf("v%d/c%d", c.VesselID, c.Container)
}
