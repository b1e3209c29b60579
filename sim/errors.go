package sim

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidDelay is returned when a timeout or schedule asks to move
	// backwards in time (negative or NaN delay).
	ErrInvalidDelay = errors.New("invalid delay")

	// ErrResourceMisuse is returned when a process releases a unit it does not hold.
	ErrResourceMisuse = errors.New("resource misuse")

	// ErrInvalidCapacity is returned by NewResource for capacity < 1.
	ErrInvalidCapacity = errors.New("invalid resource capacity")

	// ErrUnhandledProcessFailure marks a failure of a process nobody was waiting on.
	ErrUnhandledProcessFailure = errors.New("unhandled process failure")

	// ErrNotActive is returned when a yield point is invoked on a process
	// other than the one currently executing.
	ErrNotActive = errors.New("process is not the active process")

	// ErrAlreadyRunning is returned when Run or Close is invoked while the
	// simulator is already driving events.
	ErrAlreadyRunning = errors.New("simulator is already running")

	// ErrProcessKilled is returned from yield points of a process that is
	// being torn down by Simulator.Close.
	ErrProcessKilled = errors.New("process killed")
)

// ProcessFailure records a root process that failed with no waiter to observe it.
type ProcessFailure struct {
	ProcessID int
	Process   string
	Time      float64
	Err       error
}

func (f *ProcessFailure) Error() string {
	return fmt.Sprintf("%s: process %s (#%d) at t=%.2f: %v",
		ErrUnhandledProcessFailure, f.Process, f.ProcessID, f.Time, f.Err)
}

// Unwrap exposes the underlying process error.
func (f *ProcessFailure) Unwrap() error { return f.Err }

// Is reports true for ErrUnhandledProcessFailure so callers can match the
// category without unwrapping.
func (f *ProcessFailure) Is(target error) bool {
	return target == ErrUnhandledProcessFailure
}
