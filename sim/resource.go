package sim

import (
	"fmt"

	"github.com/pkg/errors"
)

// Resource is a finite-capacity shared asset with a FIFO wait queue.
// Grants follow queue order strictly: a free unit never goes to a newcomer
// while someone is queued. Capacity is fixed at construction.
type Resource struct {
	name     string
	sim      *Simulator
	capacity int
	held     int
	waiters  WaitQueue
}

// NewResource creates a resource with the given number of units bound to s.
func NewResource(s *Simulator, name string, capacity int) (*Resource, error) {
	if capacity < 1 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "resource %q capacity %d", name, capacity)
	}
	return &Resource{
		name:     name,
		sim:      s,
		capacity: capacity,
	}, nil
}

// Name returns the resource label.
func (r *Resource) Name() string { return r.name }

// Capacity returns the number of units.
func (r *Resource) Capacity() int { return r.capacity }

// Held returns the number of units currently granted.
func (r *Resource) Held() int { return r.held }

// QueueLen returns the number of suspended requesters.
func (r *Resource) QueueLen() int { return r.waiters.Len() }

func (r *Resource) String() string {
	return fmt.Sprintf("%s(%d/%d, queued=%s)", r.name, r.held, r.capacity, &r.waiters)
}

// request grants a unit to p if one is free and nobody is queued, otherwise
// queues p. Returns true on an immediate grant.
func (r *Resource) request(p *Process) bool {
	if r.held < r.capacity && r.waiters.Len() == 0 {
		r.held++
		p.holds = append(p.holds, r)
		return true
	}
	r.waiters.Enqueue(p)
	return false
}

// release hands the unit to the queue head, keeping held unchanged, or frees it.
// The caller has already removed the unit from the releasing process.
func (r *Resource) release() {
	if next := r.waiters.Dequeue(); next != nil {
		next.holds = append(next.holds, r)
		// zero delay cannot fail
		_ = r.sim.queue.Schedule(0, next, signal{})
		return
	}
	r.held--
}
