package terminal

import (
	"math/rand"
)

// ArrivalSampler generates vessel inter-arrival times.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival time in minutes.
	SampleIAT(rng *rand.Rand) float64
}

// PoissonSampler generates exponentially-distributed inter-arrival times.
type PoissonSampler struct {
	mean float64 // mean inter-arrival time in minutes
}

func (s *PoissonSampler) SampleIAT(rng *rand.Rand) float64 {
	return rng.ExpFloat64() * s.mean
}

// ConstantSampler spaces arrivals exactly mean minutes apart.
type ConstantSampler struct {
	interval float64
}

func (s *ConstantSampler) SampleIAT(*rand.Rand) float64 {
	return s.interval
}

// NewArrivalSampler creates an ArrivalSampler for the named process.
// Unknown names fall back to Poisson; Config.Validate rejects them earlier.
func NewArrivalSampler(process string, mean float64) ArrivalSampler {
	switch process {
	case ArrivalConstant:
		return &ConstantSampler{interval: mean}
	default:
		return &PoissonSampler{mean: mean}
	}
}
