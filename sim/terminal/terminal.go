// Package terminal models a container terminal on top of the sim kernel:
// vessels arrive at random, queue for berths, have their containers lifted
// off by cranes and carried inland by trucks.
package terminal

import (
	"fmt"
	"math/rand"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/portsim/terminal-sim/sim"
	"github.com/portsim/terminal-sim/sim/trace"
)

// Terminal owns the berths, cranes and trucks of one simulation and the
// quay hand-off between cranes and trucks. Only its processes touch them.
type Terminal struct {
	sim     *sim.Simulator
	cfg     Config
	berths  *sim.Resource
	cranes  *sim.Resource
	trucks  *sim.Resource
	quay    *sim.Store[ContainerRecord]
	sink    trace.Sink
	metrics *Metrics
	rng     *rand.Rand
	sampler ArrivalSampler

	nextVesselID int
	vessels      []*Vessel
}

// New builds a terminal bound to s. The configuration is validated first;
// sink and metrics may be nil.
func New(s *sim.Simulator, cfg Config, rng *sim.PartitionedRNG, sink trace.Sink, metrics *Metrics) (*Terminal, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = trace.Discard
	}
	t := &Terminal{
		sim:     s,
		cfg:     cfg,
		quay:    sim.NewStore[ContainerRecord]("quay"),
		sink:    sink,
		metrics: metrics,
		rng:     rng.ForSubsystem(sim.SubsystemArrivals),
		sampler: NewArrivalSampler(cfg.ArrivalProcess, cfg.MeanInterArrival),
	}
	var err error
	if t.berths, err = sim.NewResource(s, "berths", cfg.Berths); err != nil {
		return nil, err
	}
	if t.cranes, err = sim.NewResource(s, "cranes", cfg.Cranes); err != nil {
		return nil, err
	}
	if t.trucks, err = sim.NewResource(s, "trucks", cfg.Trucks); err != nil {
		return nil, err
	}
	return t, nil
}

// Berths returns the berth resource.
func (t *Terminal) Berths() *sim.Resource { return t.berths }

// Cranes returns the crane resource.
func (t *Terminal) Cranes() *sim.Resource { return t.cranes }

// Trucks returns the truck resource.
func (t *Terminal) Trucks() *sim.Resource { return t.trucks }

// Quay returns the crane-to-truck hand-off queue.
func (t *Terminal) Quay() *sim.Store[ContainerRecord] { return t.quay }

// Vessels returns every vessel that has arrived, in arrival order.
func (t *Terminal) Vessels() []*Vessel { return t.vessels }

// Start spawns the arrival generator.
func (t *Terminal) Start() *sim.Process {
	return t.sim.Spawn("vessel-generator", t.generateArrivals)
}

// AdmitVessel registers a vessel arriving now and spawns its berthing
// process without waiting for it. The arrival record is emitted by that
// process, so a fault while recording it only fails this vessel.
func (t *Terminal) AdmitVessel() (*Vessel, *sim.Process) {
	t.nextVesselID++
	v := &Vessel{
		ID:          t.nextVesselID,
		ArrivalTime: t.sim.Now(),
		Containers:  t.cfg.ContainersPerVessel,
		Remaining:   t.cfg.ContainersPerVessel,
		State:       VesselArrived,
	}
	t.vessels = append(t.vessels, v)
	return v, t.sim.Spawn(fmt.Sprintf("vessel-%d", v.ID), t.berthVessel(v))
}

// generateArrivals runs forever: wait a sampled inter-arrival time, then
// admit the next vessel.
func (t *Terminal) generateArrivals(p *sim.Process) (any, error) {
	for {
		if err := p.Timeout(t.sampler.SampleIAT(t.rng)); err != nil {
			return nil, err
		}
		t.AdmitVessel()
	}
}

func (t *Terminal) berthVessel(v *Vessel) sim.ProcessFunc {
	return func(p *sim.Process) (any, error) {
		t.emit(trace.KindVesselArrived, v.ID, 0)
		t.metrics.vesselArrived()

		v.State = VesselBerthing
		err := p.Using(t.berths, func() error {
			v.BerthedAt = p.Now()
			t.emit(trace.KindVesselBerthed, v.ID, 0)
			t.metrics.vesselBerthed(v)

			if _, err := p.SpawnAndWait(fmt.Sprintf("unload-%d", v.ID), t.unloadVessel(v)); err != nil {
				return errors.Wrapf(err, "vessel %d", v.ID)
			}

			v.State = VesselDeparted
			v.DepartedAt = p.Now()
			t.emit(trace.KindVesselDeparted, v.ID, 0)
			t.metrics.vesselDeparted(v)
			return nil
		})
		return v, err
	}
}

// unloadVessel runs the crane cycles one after another, then waits until
// every container it handed to the trucks has been delivered.
func (t *Terminal) unloadVessel(v *Vessel) sim.ProcessFunc {
	return func(p *sim.Process) (any, error) {
		v.State = VesselUnloading
		transports := make([]*sim.Process, 0, v.Containers)
		for n := 1; n <= v.Containers; n++ {
			handle, err := p.SpawnAndWait(fmt.Sprintf("crane-%d-%d", v.ID, n), t.craneTransfer(v, n))
			if err != nil {
				return nil, err
			}
			transports = append(transports, handle.(*sim.Process))
		}

		var result *multierror.Error
		delivered := 0
		for _, h := range transports {
			if _, err := p.Wait(h); err != nil {
				result = multierror.Append(result, err)
				continue
			}
			delivered++
		}
		logrus.Debugf("[t=%09.2f] vessel %d unloaded, %d/%d containers delivered", p.Now(), v.ID, delivered, v.Containers)
		return delivered, result.ErrorOrNil()
	}
}

// craneTransfer lifts one container onto the quay and returns the handle of
// the transport process spawned for it.
func (t *Terminal) craneTransfer(v *Vessel, n int) sim.ProcessFunc {
	return func(p *sim.Process) (any, error) {
		err := p.Using(t.cranes, func() error {
			t.emit(trace.KindCraneStarted, v.ID, n)
			if err := p.Timeout(t.cfg.TransferTime); err != nil {
				return err
			}
			v.Remaining--
			t.emit(trace.KindCraneFinished, v.ID, n)
			return nil
		})
		if err != nil {
			return nil, err
		}
		t.quay.Put(ContainerRecord{VesselID: v.ID, Container: n})
		t.metrics.containerCraned(t.quay.Len())
		// unloadVessel waits on every transport once the cranes are done
		h := p.Spawn(fmt.Sprintf("truck-%d-%d", v.ID, n), t.transport)
		if err := p.Watch(h); err != nil {
			return nil, err
		}
		return h, nil
	}
}

// transport takes the oldest container off the quay once a truck is free and
// drives it inland.
func (t *Terminal) transport(p *sim.Process) (any, error) {
	var rec ContainerRecord
	err := p.Using(t.trucks, func() error {
		var ok bool
		if rec, ok = t.quay.Get(); !ok {
			return errors.New("truck dispatched to an empty quay")
		}
		t.metrics.containerPickedUp(t.quay.Len())
		t.emit(trace.KindTruckPickedUp, rec.VesselID, rec.Container)
		if err := p.Timeout(t.cfg.TruckCycleTime); err != nil {
			return err
		}
		t.emit(trace.KindTruckDroppedOff, rec.VesselID, rec.Container)
		t.metrics.containerDelivered()
		return nil
	})
	return rec, err
}

func (t *Terminal) emit(kind trace.Kind, vessel, container int) {
	t.sink.Record(trace.Record{
		Time:      t.sim.Now(),
		Kind:      kind,
		Vessel:    vessel,
		Container: container,
	})
}
