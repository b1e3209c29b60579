package sim

// signal is the value a suspended process is resumed with.
type signal struct {
	value any
	err   error
	kill  bool
}

// Event is a scheduled wake-up of a process. Events are owned by the
// EventQueue until popped; the target process is the continuation that the
// scheduler re-enters when the event fires.
type Event struct {
	Time float64 // Simulation time of the wake-up (in minutes)
	Seq  uint64  // Insertion order, breaks ties between equal times

	target *Process
	signal signal
}
