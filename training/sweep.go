package training

import (
	"math"
	"math/rand"

	"github.com/john-holland/physicscards/solver"
)

// Outcome carries the metrics of one evaluated run.
type Outcome struct {
	CompletionTime float64
	Accuracy       float64
	PowerUsed      float64
}

// EvalFunc runs one simulated or live trial under a candidate set and reports
// how it went.
type EvalFunc func(set TrainedSet) Outcome

// Sweep iterates power/constraint combinations sequentially. Abort is checked
// between iterations so a caller can cancel a long sweep cooperatively; an
// iteration in flight always finishes. Not on the hot path: a sweep may run
// on its own goroutine as long as results are applied to a live solver only
// between queries.
type Sweep struct {
	Base solver.Weights

	PowerScales        []float64
	ComfortWeights     []float64
	FeasibilityWeights []float64

	Seed  int64
	Eval  EvalFunc
	Abort func() bool
}

// Run evaluates every combination, returning one TrainedSet per completed
// iteration.
func (sweep *Sweep) Run() []TrainedSet {
	if sweep.Eval == nil {
		return nil
	}

	powerScales := sweep.PowerScales
	if len(powerScales) == 0 {
		powerScales = []float64{sweep.Base.PowerScale}
	}
	comfortWeights := sweep.ComfortWeights
	if len(comfortWeights) == 0 {
		comfortWeights = []float64{sweep.Base.Comfort}
	}
	feasibilityWeights := sweep.FeasibilityWeights
	if len(feasibilityWeights) == 0 {
		feasibilityWeights = []float64{sweep.Base.Feasibility}
	}

	results := make([]TrainedSet, 0, len(powerScales)*len(comfortWeights)*len(feasibilityWeights))
	seed := sweep.Seed

	for _, powerScale := range powerScales {
		for _, comfort := range comfortWeights {
			for _, feasibility := range feasibilityWeights {
				if sweep.Abort != nil && sweep.Abort() {
					return results
				}

				weights := sweep.Base
				weights.PowerScale = powerScale
				weights.Comfort = comfort
				weights.Feasibility = feasibility

				set := MakeTrainedSet(weights, seed)
				seed++

				outcome := sweep.Eval(set)
				set.CompletionTime = outcome.CompletionTime
				set.Accuracy = outcome.Accuracy
				set.PowerUsed = outcome.PowerUsed

				results = append(results, set)
			}
		}
	}

	return results
}

// CompositeScores z-scores the three outcome metrics across the population
// and combines them: accuracy counts up, completion time and power used count
// down.
func CompositeScores(sets []TrainedSet) []float64 {
	timeZ := zscores(sets, func(set TrainedSet) float64 { return set.CompletionTime })
	accuracyZ := zscores(sets, func(set TrainedSet) float64 { return set.Accuracy })
	powerZ := zscores(sets, func(set TrainedSet) float64 { return set.PowerUsed })

	scores := make([]float64, len(sets))
	for i := range sets {
		scores[i] = accuracyZ[i] - timeZ[i] - powerZ[i]
	}

	return scores
}

func zscores(sets []TrainedSet, metric func(TrainedSet) float64) []float64 {
	n := float64(len(sets))
	if n == 0 {
		return nil
	}

	mean := 0.0
	for _, set := range sets {
		mean += metric(set)
	}
	mean /= n

	variance := 0.0
	for _, set := range sets {
		d := metric(set) - mean
		variance += d * d
	}
	stddev := math.Sqrt(variance / n)

	scores := make([]float64, len(sets))
	for i, set := range sets {
		if stddev > 0 {
			scores[i] = (metric(set) - mean) / stddev
		}
	}

	return scores
}

// SuccessfulSets keeps the top fraction of the population by composite score,
// best first. keep is clamped to (0, 1]; at least one set survives a
// non-empty population.
func SuccessfulSets(sets []TrainedSet, keep float64) []TrainedSet {
	if len(sets) == 0 {
		return nil
	}
	if keep <= 0 || keep > 1 {
		keep = 0.25
	}

	scores := CompositeScores(sets)

	indices := make([]int, len(sets))
	for i := range indices {
		indices[i] = i
	}

	// insertion sort by score desc; populations are small
	for i := 1; i < len(indices); i++ {
		for j := i; j > 0 && scores[indices[j]] > scores[indices[j-1]]; j-- {
			indices[j], indices[j-1] = indices[j-1], indices[j]
		}
	}

	count := int(math.Ceil(keep * float64(len(sets))))
	if count < 1 {
		count = 1
	}

	successful := make([]TrainedSet, 0, count)
	for _, index := range indices[:count] {
		successful = append(successful, sets[index])
	}

	return successful
}

// RangeDiamond is the per-field min/max envelope of a population.
func RangeDiamond(sets []TrainedSet) (min TrainedSet, max TrainedSet) {
	if len(sets) == 0 {
		return min, max
	}

	min, max = sets[0], sets[0]
	for _, set := range sets[1:] {
		min.Degrees = math.Min(min.Degrees, set.Degrees)
		min.Torque = math.Min(min.Torque, set.Torque)
		min.Force = math.Min(min.Force, set.Force)
		min.Velocity = math.Min(min.Velocity, set.Velocity)
		min.Comfort = math.Min(min.Comfort, set.Comfort)
		min.Feasibility = math.Min(min.Feasibility, set.Feasibility)
		min.PowerScale = math.Min(min.PowerScale, set.PowerScale)

		max.Degrees = math.Max(max.Degrees, set.Degrees)
		max.Torque = math.Max(max.Torque, set.Torque)
		max.Force = math.Max(max.Force, set.Force)
		max.Velocity = math.Max(max.Velocity, set.Velocity)
		max.Comfort = math.Max(max.Comfort, set.Comfort)
		max.Feasibility = math.Max(max.Feasibility, set.Feasibility)
		max.PowerScale = math.Max(max.PowerScale, set.PowerScale)
	}

	return min, max
}

// Sample draws a candidate set uniformly within the range diamond.
func Sample(rng *rand.Rand, min TrainedSet, max TrainedSet) TrainedSet {
	between := func(lo, hi float64) float64 {
		if hi <= lo {
			return lo
		}
		return lo + rng.Float64()*(hi-lo)
	}

	seed := rng.Int63()

	return MakeTrainedSet(solver.Weights{
		Degrees:     between(min.Degrees, max.Degrees),
		Torque:      between(min.Torque, max.Torque),
		Force:       between(min.Force, max.Force),
		Velocity:    between(min.Velocity, max.Velocity),
		Comfort:     between(min.Comfort, max.Comfort),
		Feasibility: between(min.Feasibility, max.Feasibility),
		PowerScale:  between(min.PowerScale, max.PowerScale),
	}, seed)
}
