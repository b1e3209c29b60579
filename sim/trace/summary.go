package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalRecords        int
	VesselsArrived      int
	VesselsBerthed      int
	VesselsDeparted     int
	ContainersCraned    int // crane transfers finished
	ContainersDelivered int // truck drop-offs
	MeanBerthWait       float64
	MaxBerthWait        float64
	MeanTurnaround      float64 // arrival to departure, departed vessels only
	KindCounts          map[Kind]int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		KindCounts: make(map[Kind]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalRecords = len(st.Records)
	arrivals := make(map[int]float64)
	totalWait, totalTurnaround := 0.0, 0.0

	for _, r := range st.Records {
		summary.KindCounts[r.Kind]++
		switch r.Kind {
		case KindVesselArrived:
			summary.VesselsArrived++
			arrivals[r.Vessel] = r.Time
		case KindVesselBerthed:
			summary.VesselsBerthed++
			if at, ok := arrivals[r.Vessel]; ok {
				wait := r.Time - at
				totalWait += wait
				if wait > summary.MaxBerthWait {
					summary.MaxBerthWait = wait
				}
			}
		case KindCraneFinished:
			summary.ContainersCraned++
		case KindTruckDroppedOff:
			summary.ContainersDelivered++
		case KindVesselDeparted:
			summary.VesselsDeparted++
			if at, ok := arrivals[r.Vessel]; ok {
				totalTurnaround += r.Time - at
			}
		}
	}

	if summary.VesselsBerthed > 0 {
		summary.MeanBerthWait = totalWait / float64(summary.VesselsBerthed)
	}
	if summary.VesselsDeparted > 0 {
		summary.MeanTurnaround = totalTurnaround / float64(summary.VesselsDeparted)
	}
	return summary
}
