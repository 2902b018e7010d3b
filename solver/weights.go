package solver

// Weights are the solver's scoring tunables. The four state factors blend
// into the feasibility score; feasibility and comfort blend into the combined
// ordering score. The weights are relative, not a normalized convex
// combination; they are applied literally rather than renormalized.
type Weights struct {
	Degrees     float64 `json:"degreesWeight"`
	Torque      float64 `json:"torqueWeight"`
	Force       float64 `json:"forceWeight"`
	Velocity    float64 `json:"velocityWeight"`
	Comfort     float64 `json:"comfortWeight"`
	Feasibility float64 `json:"feasibilityWeight"`

	// PowerScale multiplies generated activations and the launch-speed
	// budget for throws.
	PowerScale float64 `json:"powerScale"`
}

func DefaultWeights() Weights {
	return Weights{
		Degrees:     0.3,
		Torque:      0.3,
		Force:       0.2,
		Velocity:    0.2,
		Comfort:     0.3,
		Feasibility: 0.7,
		PowerScale:  1.0,
	}
}
