package solver

import (
	"fmt"

	"github.com/john-holland/physicscards/cards"
	"github.com/john-holland/physicscards/common/utils"
	"github.com/john-holland/physicscards/common/utils/number"
	"github.com/john-holland/physicscards/common/utils/vector"
	"github.com/john-holland/physicscards/ragdoll"
)

// Generated-gait tunables.
const (
	walkSpeed          = 1.2 // m/s
	flySpeed           = 4.0 // m/s
	fuelPerMeter       = 0.5
	torsoStabilization = 0.2
)

// Bilateral leg set activated by generated walking cards.
var walkingMuscleGroups = []string{
	"left_hip", "right_hip",
	"left_knee", "right_knee",
	"left_foot", "right_foot",
}

const torsoMuscleGroup = "torso_core"

// GenerateWalkingCard synthesizes a point-to-point gait card: the bilateral
// leg set plus light torso stabilization, activation scaled by travel
// distance and the power scale. Nil when there is nowhere to go.
func (solver *Solver) GenerateWalkingCard(s ragdoll.State, destination vector.Vector3) *cards.GoodSection {
	distance := s.RootPosition.DistanceTo(destination)
	if number.IsZero(distance) {
		return nil
	}

	duration := distance / walkSpeed
	activation := number.Clamp01((0.4 + distance*0.1) * solver.weights.PowerScale)
	direction := destination.Sub(s.RootPosition).Normalize()

	card := cards.NewGoodSection(fmt.Sprintf("generated_walk_%.1fm", distance))
	card.Description = "generated point-to-point walking card"
	card.SetLimits(cards.MakeDefaultLimits())

	for _, group := range walkingMuscleGroups {
		card.AddAction(&cards.ImpulseAction{
			MuscleGroup: group,
			Activation:  activation,
			Duration:    duration,
			Curve:       cards.MakeConstantCurve(),
		})
	}

	card.AddAction(&cards.ImpulseAction{
		MuscleGroup: torsoMuscleGroup,
		Activation:  number.Clamp01(torsoStabilization * solver.weights.PowerScale),
		Duration:    duration,
		Curve:       cards.MakeConstantCurve(),
	})

	target := s.Clone()
	target.RootPosition = destination
	target.RootVelocity = direction.MultScalar(walkSpeed)
	card.SetTargetState(target)

	return card
}

// GenerateFlyingCard synthesizes a flight card, spending the fuel budget.
// With wing muscle groups configured it emits one impulse per wing group;
// otherwise a single jet impulse. Nil when fuel is insufficient.
func (solver *Solver) GenerateFlyingCard(s ragdoll.State, destination vector.Vector3) *cards.GoodSection {
	distance := s.RootPosition.DistanceTo(destination)
	if number.IsZero(distance) {
		return nil
	}

	fuelCost := distance * fuelPerMeter
	if solver.fuel < fuelCost {
		utils.DebugWithContext(serviceName, "insufficient fuel for flying card", utils.Context{
			"fuel":     solver.fuel,
			"required": fuelCost,
		})
		return nil
	}
	solver.fuel -= fuelCost

	duration := distance / flySpeed
	activation := number.Clamp01((0.6 + distance*0.05) * solver.weights.PowerScale)
	direction := destination.Sub(s.RootPosition).Normalize()

	card := cards.NewGoodSection(fmt.Sprintf("generated_fly_%.1fm", distance))
	card.Description = "generated point-to-point flying card"
	card.SetLimits(cards.MakeDefaultLimits())

	if len(solver.wingMuscleGroups) == 0 {
		card.AddAction(&cards.ImpulseAction{
			MuscleGroup:    "jet_main",
			Activation:     activation,
			Duration:       duration,
			Curve:          cards.MakeConstantCurve(),
			ForceDirection: direction,
		})
	} else {
		// wings push up as well as along the travel direction
		wingDirection := direction.Add(vector.MakeUpVector3()).Normalize()
		for _, group := range solver.wingMuscleGroups {
			card.AddAction(&cards.ImpulseAction{
				MuscleGroup:    group,
				Activation:     activation,
				Duration:       duration,
				Curve:          cards.MakeConstantCurve(),
				ForceDirection: wingDirection,
			})
		}
	}

	target := s.Clone()
	target.RootPosition = destination
	target.RootVelocity = direction.MultScalar(flySpeed)
	card.SetTargetState(target)

	return card
}
