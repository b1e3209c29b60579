package sim

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ProcessFunc is the body of a process. It runs between yield points without
// interruption; the returned value is handed to every process waiting on it.
// A non-nil error (or a panic) marks the process Failed.
type ProcessFunc func(p *Process) (any, error)

// Status is the lifecycle state of a Process.
type Status int

const (
	StatusRunnable Status = iota
	StatusSuspended
	StatusFinished
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusRunnable:
		return "runnable"
	case StatusSuspended:
		return "suspended"
	case StatusFinished:
		return "finished"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Process is a cooperative logical thread of control. Its suspended state is
// a parked goroutine; the scheduler re-enters it by sending a signal on its
// resume channel and blocks until the process parks again or finishes, so at
// most one process body executes at any moment.
type Process struct {
	id     int
	name   string
	sim    *Simulator
	fn     ProcessFunc
	status Status

	started bool
	killed  bool
	resume  chan signal

	// waiters are suspended until this process finishes
	waiters []*Process
	// watched is set when another process will collect the outcome with Wait
	watched bool
	// holds lists held resource units in acquisition order
	holds []*Resource

	result any
	err    error
}

func newProcess(s *Simulator, id int, name string, fn ProcessFunc) *Process {
	return &Process{
		id:     id,
		name:   name,
		sim:    s,
		fn:     fn,
		status: StatusRunnable,
		resume: make(chan signal),
	}
}

// ID returns the process identifier, unique within its Simulator.
func (p *Process) ID() int { return p.id }

// Name returns the label given at spawn time.
func (p *Process) Name() string { return p.name }

// Status returns the current lifecycle state.
func (p *Process) Status() Status { return p.status }

// Now returns the current simulation time.
func (p *Process) Now() float64 { return p.sim.Now() }

// Done reports whether the process has finished or failed.
func (p *Process) Done() bool {
	return p.status == StatusFinished || p.status == StatusFailed
}

// Result returns the value and error the process completed with.
// Both are zero until Done reports true.
func (p *Process) Result() (any, error) {
	return p.result, p.err
}

func (p *Process) String() string {
	return fmt.Sprintf("%s#%d", p.name, p.id)
}

// Timeout suspends the process for d minutes.
func (p *Process) Timeout(d float64) error {
	if err := p.checkActive(); err != nil {
		return err
	}
	if err := p.sim.queue.Schedule(d, p, signal{}); err != nil {
		return errors.Wrapf(err, "%s timeout", p)
	}
	return p.suspend().err
}

// Acquire obtains one unit of r, suspending until it is granted.
// The grant is synchronous when a unit is free and nobody is queued.
func (p *Process) Acquire(r *Resource) error {
	if err := p.checkActive(); err != nil {
		return err
	}
	if r.sim != p.sim {
		return errors.Wrapf(ErrResourceMisuse, "%s acquires %s from another simulator", p, r.name)
	}
	if r.request(p) {
		return nil
	}
	logrus.Debugf("[t=%09.2f] %s waits for %s", p.Now(), p, r)
	return p.suspend().err
}

// Release returns one held unit of r. Releasing a unit the process does not
// hold fails with ErrResourceMisuse and leaves r untouched.
func (p *Process) Release(r *Resource) error {
	// Close tears down killed processes; their units stay held.
	if p.killed {
		return nil
	}
	if err := p.checkActive(); err != nil {
		return err
	}
	i := p.holdIndex(r)
	if i < 0 {
		return errors.Wrapf(ErrResourceMisuse, "%s releases %s without holding it", p, r.name)
	}
	p.holds = append(p.holds[:i], p.holds[i+1:]...)
	r.release()
	return nil
}

// Using acquires r, runs fn, and releases r on every exit path of fn.
func (p *Process) Using(r *Resource, fn func() error) (err error) {
	if err := p.Acquire(r); err != nil {
		return err
	}
	defer func() {
		if rerr := p.Release(r); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return fn()
}

// Spawn starts a child process at the current time and returns its handle
// without suspending. Omitting a later Wait is the fire-and-forget case.
func (p *Process) Spawn(name string, fn ProcessFunc) *Process {
	return p.sim.Spawn(name, fn)
}

// Wait suspends until child finishes and returns its result. A failed child's
// error is returned unchanged so the caller can propagate it.
func (p *Process) Wait(child *Process) (any, error) {
	if err := p.checkActive(); err != nil {
		return nil, err
	}
	if child == p {
		return nil, errors.Errorf("%s cannot wait on itself", p)
	}
	if child.Done() {
		return child.result, child.err
	}
	child.waiters = append(child.waiters, p)
	sig := p.suspend()
	return sig.value, sig.err
}

// Watch declares that child's outcome will be collected by a later Wait,
// without suspending. A failure of a watched child is not reported as
// unhandled even if it ends before anyone waits on it.
func (p *Process) Watch(child *Process) error {
	if err := p.checkActive(); err != nil {
		return err
	}
	if child == p {
		return errors.Errorf("%s cannot watch itself", p)
	}
	child.watched = true
	return nil
}

// SpawnAndWait starts a child and suspends until it completes.
func (p *Process) SpawnAndWait(name string, fn ProcessFunc) (any, error) {
	return p.Wait(p.Spawn(name, fn))
}

func (p *Process) checkActive() error {
	if p.killed {
		return errors.Wrapf(ErrProcessKilled, "%s", p)
	}
	if p.sim.active != p {
		return errors.Wrapf(ErrNotActive, "%s", p)
	}
	return nil
}

func (p *Process) holdIndex(r *Resource) int {
	for i := len(p.holds) - 1; i >= 0; i-- {
		if p.holds[i] == r {
			return i
		}
	}
	return -1
}

// suspend parks the goroutine and hands control back to the scheduler.
func (p *Process) suspend() signal {
	p.status = StatusSuspended
	p.sim.parked <- struct{}{}
	sig := <-p.resume
	if sig.kill {
		p.killed = true
		runtime.Goexit()
	}
	p.status = StatusRunnable
	return sig
}

// run is the goroutine entry point. Deferred bookkeeping runs on normal
// return, on panic, and on teardown via Goexit.
func (p *Process) run() {
	var (
		value     any
		err       error
		completed bool
	)
	defer func() {
		if p.killed {
			p.sim.parked <- struct{}{}
			return
		}
		if !completed {
			if r := recover(); r != nil {
				err = errors.Errorf("panic: %v", r)
			} else {
				err = errors.New("process exited without returning")
			}
		}
		p.sim.finish(p, value, err)
		p.sim.parked <- struct{}{}
	}()
	value, err = p.fn(p)
	completed = true
}

// releaseAll returns every unit still held, newest first.
func (p *Process) releaseAll() {
	for i := len(p.holds) - 1; i >= 0; i-- {
		p.holds[i].release()
	}
	p.holds = nil
}
