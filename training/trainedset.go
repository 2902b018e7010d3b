// Package training calibrates solver weights offline: repeated runs produce
// TrainedSets, which aggregate into a successful-set list and a min/max range
// diamond that live solvers can sample from between queries.
package training

import (
	uuid "github.com/satori/go.uuid"

	"github.com/john-holland/physicscards/solver"
)

// TrainedSet is one calibration result: the six scoring weights plus the
// power scale, the outcome metrics of the run that produced them, and the
// seed to reproduce it.
type TrainedSet struct {
	ID uuid.UUID `json:"id" db:"id"`

	Degrees     float64 `json:"degreesWeight" db:"degrees"`
	Torque      float64 `json:"torqueWeight" db:"torque"`
	Force       float64 `json:"forceWeight" db:"force"`
	Velocity    float64 `json:"velocityWeight" db:"velocity"`
	Comfort     float64 `json:"comfortWeight" db:"comfort"`
	Feasibility float64 `json:"feasibilityWeight" db:"feasibility"`
	PowerScale  float64 `json:"powerScale" db:"power_scale"`

	CompletionTime float64 `json:"completionTime" db:"completion_time"`
	Accuracy       float64 `json:"accuracy" db:"accuracy"`
	PowerUsed      float64 `json:"powerUsed" db:"power_used"`

	Seed int64 `json:"seed" db:"seed"`
}

func MakeTrainedSet(weights solver.Weights, seed int64) TrainedSet {
	return TrainedSet{
		ID:          uuid.NewV4(),
		Degrees:     weights.Degrees,
		Torque:      weights.Torque,
		Force:       weights.Force,
		Velocity:    weights.Velocity,
		Comfort:     weights.Comfort,
		Feasibility: weights.Feasibility,
		PowerScale:  weights.PowerScale,
		Seed:        seed,
	}
}

// MakeTrainedSetFromSolver reads the solver's live weights back into a set.
func MakeTrainedSetFromSolver(s *solver.Solver, seed int64) TrainedSet {
	return MakeTrainedSet(s.Weights(), seed)
}

func (set TrainedSet) Weights() solver.Weights {
	return solver.Weights{
		Degrees:     set.Degrees,
		Torque:      set.Torque,
		Force:       set.Force,
		Velocity:    set.Velocity,
		Comfort:     set.Comfort,
		Feasibility: set.Feasibility,
		PowerScale:  set.PowerScale,
	}
}

// ApplyTo writes the set's weights onto a live solver. Apply only between
// query calls; the solver does not lock.
func (set TrainedSet) ApplyTo(s *solver.Solver) {
	s.ApplyWeights(set.Weights())
}
