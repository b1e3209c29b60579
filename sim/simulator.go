// sim/simulator.go
package sim

import (
	"maps"
	"math"
	"slices"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Simulator is the core object that holds simulation time, the event queue,
// and the set of live processes. All processes and resources of one run are
// bound to one Simulator, so independent runs can coexist in one program.
type Simulator struct {
	queue *EventQueue
	// parked receives a token whenever the active process suspends or ends
	parked chan struct{}
	active *Process

	running bool
	nextID  int
	live    map[int]*Process

	failures []*ProcessFailure
	// OnFailure, if set, is called for every unhandled process failure.
	OnFailure func(*ProcessFailure)
}

// NewSimulator creates a simulator with the clock at zero and no processes.
func NewSimulator() *Simulator {
	return &Simulator{
		queue:  NewEventQueue(),
		parked: make(chan struct{}),
		live:   make(map[int]*Process),
	}
}

// Now returns the current simulation time.
func (sim *Simulator) Now() float64 {
	return sim.queue.Now()
}

// Pending returns the number of scheduled events.
func (sim *Simulator) Pending() int {
	return sim.queue.Len()
}

// Live returns the number of processes that have not finished.
func (sim *Simulator) Live() int {
	return len(sim.live)
}

// Failures returns the unhandled process failures reported so far.
func (sim *Simulator) Failures() []*ProcessFailure {
	return sim.failures
}

// Spawn creates a root process that starts at the current time, after any
// work already scheduled for that time.
func (sim *Simulator) Spawn(name string, fn ProcessFunc) *Process {
	sim.nextID++
	p := newProcess(sim, sim.nextID, name, fn)
	sim.live[p.id] = p
	// zero delay cannot fail
	_ = sim.queue.Schedule(0, p, signal{})
	return p
}

// Run resumes processes in event order until the next event lies beyond
// until or the queue is empty, then sets the clock to until. Processes still
// suspended are left as they are; they resume if Run is called again.
func (sim *Simulator) Run(until float64) error {
	if sim.running {
		return ErrAlreadyRunning
	}
	if math.IsNaN(until) || until < sim.Now() {
		return errors.Wrapf(ErrInvalidDelay, "run until %v with clock at %v", until, sim.Now())
	}
	sim.running = true
	defer func() { sim.running = false }()

	for {
		next, ok := sim.queue.PeekNextTime()
		if !ok || next > until {
			break
		}
		ev, _ := sim.queue.PopNext()
		sim.dispatch(ev)
	}
	sim.queue.advanceTo(until)
	logrus.Debugf("[t=%09.2f] Run ended, %d events pending, %d live processes", sim.Now(), sim.Pending(), len(sim.live))
	return nil
}

// dispatch re-enters the event's process and blocks until it parks again.
func (sim *Simulator) dispatch(ev Event) {
	p := ev.target
	if p == nil || p.killed || p.Done() {
		return
	}
	logrus.Debugf("[t=%09.2f] Resuming %s", sim.Now(), p)
	sim.active = p
	p.status = StatusRunnable
	if !p.started {
		p.started = true
		go p.run()
	} else {
		p.resume <- ev.signal
	}
	<-sim.parked
	sim.active = nil
}

// finish records the outcome of p, releases what it still holds and wakes
// its waiters. A failure with no waiter that nobody watches is reported as
// unhandled.
func (sim *Simulator) finish(p *Process, value any, err error) {
	p.result, p.err = value, err
	if err != nil {
		p.status = StatusFailed
	} else {
		p.status = StatusFinished
	}
	p.releaseAll()
	delete(sim.live, p.id)

	for _, w := range p.waiters {
		_ = sim.queue.Schedule(0, w, signal{value: value, err: err})
	}
	if err != nil && len(p.waiters) == 0 && !p.watched {
		sim.reportFailure(p, err)
	}
	p.waiters = nil
}

func (sim *Simulator) reportFailure(p *Process, err error) {
	f := &ProcessFailure{
		ProcessID: p.id,
		Process:   p.name,
		Time:      sim.Now(),
		Err:       err,
	}
	sim.failures = append(sim.failures, f)
	logrus.WithFields(logrus.Fields{
		"process": p.name,
		"id":      p.id,
		"time":    sim.Now(),
	}).Warnf("Unhandled process failure: %v", err)
	if sim.OnFailure != nil {
		sim.OnFailure(f)
	}
}

// Close tears down the goroutines of suspended processes without resuming
// their logic. Resources they hold stay held and pending events are dropped.
func (sim *Simulator) Close() error {
	if sim.running {
		return ErrAlreadyRunning
	}
	for _, id := range slices.Sorted(maps.Keys(sim.live)) {
		p := sim.live[id]
		if p.started && !p.Done() {
			sim.active = p
			p.resume <- signal{kill: true}
			<-sim.parked
			sim.active = nil
		}
	}
	clear(sim.live)
	sim.queue.clear()
	return nil
}
