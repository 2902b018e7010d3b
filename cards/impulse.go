package cards

import (
	"github.com/john-holland/physicscards/common/utils/number"
	"github.com/john-holland/physicscards/common/utils/trigo"
	"github.com/john-holland/physicscards/common/utils/vector"
	"github.com/john-holland/physicscards/ragdoll"
)

type Quantity int

const (
	QuantityJointAngle Quantity = iota
	QuantityMuscleActivation
	QuantityRootSpeed
	QuantityRootAngularSpeed
	QuantityContactCount
)

type Comparison int

const (
	CompareLess Comparison = iota
	CompareLessOrEqual
	CompareGreater
	CompareGreaterOrEqual
	CompareEqual
	CompareNotEqual
)

// ImpulseCondition gates an action on a measured quantity: a joint angle, a
// muscle activation, root speed, root angular speed or the contact count,
// compared against Threshold. Subject names a joint or muscle where relevant;
// unknown names measure as zero.
type ImpulseCondition struct {
	Quantity   Quantity   `json:"quantity"`
	Subject    string     `json:"subject"`
	Comparison Comparison `json:"comparison"`
	Threshold  float64    `json:"threshold"`
}

func (c ImpulseCondition) measure(s ragdoll.State) float64 {
	switch c.Quantity {
	case QuantityJointAngle:
		return trigo.RotationDeltaDegrees(vector.MakeNullVector3(), s.Joint(c.Subject).Rotation)
	case QuantityMuscleActivation:
		return s.Muscle(c.Subject)
	case QuantityRootSpeed:
		return s.RootSpeed()
	case QuantityRootAngularSpeed:
		return s.RootAngularSpeed()
	case QuantityContactCount:
		return float64(s.ContactCount())
	}
	return 0
}

func (c ImpulseCondition) Holds(s ragdoll.State) bool {
	measured := c.measure(s)

	switch c.Comparison {
	case CompareLess:
		return measured < c.Threshold
	case CompareLessOrEqual:
		return measured <= c.Threshold
	case CompareGreater:
		return measured > c.Threshold
	case CompareGreaterOrEqual:
		return measured >= c.Threshold
	case CompareEqual:
		return number.IsZero(measured - c.Threshold)
	case CompareNotEqual:
		return !number.IsZero(measured - c.Threshold)
	}
	return false
}

// CurvePoint is one keyframe of an activation-over-time curve; T is
// normalized [0, 1] across the action's duration.
type CurvePoint struct {
	T     float64 `json:"t"`
	Value float64 `json:"value"`
}

type ActivationCurve []CurvePoint

// MakeConstantCurve holds the full activation for the whole duration.
func MakeConstantCurve() ActivationCurve {
	return ActivationCurve{{T: 0, Value: 1}, {T: 1, Value: 1}}
}

// Evaluate linearly interpolates between keyframes; an empty curve reads as
// constant full activation.
func (curve ActivationCurve) Evaluate(t float64) float64 {
	if len(curve) == 0 {
		return 1
	}

	t = number.Clamp01(t)

	if t <= curve[0].T {
		return number.Clamp01(curve[0].Value)
	}

	for i := 1; i < len(curve); i++ {
		if t > curve[i].T {
			continue
		}

		span := curve[i].T - curve[i-1].T
		if number.IsZero(span) {
			return number.Clamp01(curve[i].Value)
		}

		frac := (t - curve[i-1].T) / span
		return number.Clamp01(curve[i-1].Value + (curve[i].Value-curve[i-1].Value)*frac)
	}

	return number.Clamp01(curve[len(curve)-1].Value)
}

// ImpulseAction is one muscle-activation directive in a card's stack.
// Duration 0 means "until superseded": the action never completes on its own
// and only a Stop or a fresh Execute replaces it.
type ImpulseAction struct {
	MuscleGroup     string             `json:"muscleGroup"`
	Activation      float64            `json:"activation"`
	Duration        float64            `json:"duration"`
	Curve           ActivationCurve    `json:"curve,omitempty"`
	ForceDirection  vector.Vector3     `json:"forceDirection"`
	TorqueDirection vector.Vector3     `json:"torqueDirection"`
	Conditions      []ImpulseCondition `json:"conditions,omitempty"`

	// transient execution state, reset before reuse
	elapsed   float64
	executing bool
}

// Start begins the action if every precondition holds.
func (action *ImpulseAction) Start(s ragdoll.State) bool {
	for _, condition := range action.Conditions {
		if !condition.Holds(s) {
			return false
		}
	}

	action.elapsed = 0
	action.executing = true
	return true
}

// Update advances elapsed time; returns false exactly when the action has
// run out its duration. Zero-duration actions run until superseded.
func (action *ImpulseAction) Update(dt float64) bool {
	if !action.executing {
		return false
	}

	action.elapsed += dt

	if action.Duration > 0 && action.elapsed >= action.Duration {
		action.executing = false
		return false
	}

	return true
}

func (action *ImpulseAction) Reset() {
	action.elapsed = 0
	action.executing = false
}

func (action *ImpulseAction) IsExecuting() bool {
	return action.executing
}

func (action *ImpulseAction) Elapsed() float64 {
	return action.elapsed
}

// CurrentActivation is the activation scalar at the current point of the
// curve; zero-duration actions hold the curve's start value.
func (action *ImpulseAction) CurrentActivation() float64 {
	t := 0.0
	if action.Duration > 0 {
		t = number.Clamp01(action.elapsed / action.Duration)
	}

	return number.Clamp01(action.Activation) * action.Curve.Evaluate(t)
}

// HasNontrivialDirections reports whether the action pushes or twists
// anything (either direction vector non-null).
func (action *ImpulseAction) HasNontrivialDirections() bool {
	return !action.ForceDirection.IsNull() || !action.TorqueDirection.IsNull()
}

func (action *ImpulseAction) clone() *ImpulseAction {
	clone := &ImpulseAction{
		MuscleGroup:     action.MuscleGroup,
		Activation:      action.Activation,
		Duration:        action.Duration,
		ForceDirection:  action.ForceDirection,
		TorqueDirection: action.TorqueDirection,
	}

	clone.Curve = make(ActivationCurve, len(action.Curve))
	copy(clone.Curve, action.Curve)

	clone.Conditions = make([]ImpulseCondition, len(action.Conditions))
	copy(clone.Conditions, action.Conditions)

	return clone
}
