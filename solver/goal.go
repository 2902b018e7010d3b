package solver

import (
	"github.com/john-holland/physicscards/common/utils/vector"
)

type GoalKind int

const (
	GoalMove GoalKind = iota
	GoalThrow
	GoalGrasp
	GoalClimb
	GoalFly
)

func (k GoalKind) String() string {
	switch k {
	case GoalThrow:
		return "throw"
	case GoalGrasp:
		return "grasp"
	case GoalClimb:
		return "climb"
	case GoalFly:
		return "fly"
	}
	return "move"
}

// Goal describes what the external driver wants this tick.
type Goal struct {
	Name           string         `json:"name"`
	Kind           GoalKind       `json:"kind"`
	TargetObject   string         `json:"targetObject,omitempty"`
	TargetPosition vector.Vector3 `json:"targetPosition"`
	TargetVelocity vector.Vector3 `json:"targetVelocity"`
	Priority       float64        `json:"priority"`
}
