// Package solver selects and orders transition cards against a live ragdoll
// state: it gathers applicable cards from the static pool and dynamic
// producers, filters them for the goal's locomotion mode, scores and orders
// them, and resolves a card sequence for the goal, delegating to the climbing
// graph when one is wired.
//
// Everything here runs single-threaded per tick. Snapshots are read-only to
// scoring code, and pool mutation must not interleave with solving.
package solver

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	uuid "github.com/satori/go.uuid"

	"github.com/john-holland/physicscards/cards"
	"github.com/john-holland/physicscards/classify"
	"github.com/john-holland/physicscards/common/utils"
	"github.com/john-holland/physicscards/common/utils/vector"
	"github.com/john-holland/physicscards/graph"
	"github.com/john-holland/physicscards/ragdoll"
	"github.com/john-holland/physicscards/trajectory"
)

const serviceName = "cardsolver"

// Launch-speed budget for throw gating before PowerScale.
const baseLaunchSpeed = 15.0

// Intercept search horizon for moving throw targets.
const interceptMaxTime = 3.0

// Producer supplies dynamically generated candidate cards (tool scanners,
// surface analyzers and the like). Producers are injected explicitly; there
// is no ambient service lookup.
type Producer interface {
	ConsiderCards(s ragdoll.State, goal *Goal) []*cards.GoodSection
}

type Solver struct {
	pool      []*cards.GoodSection
	producers []Producer

	weights Weights
	policy  *classify.Policy
	graph   *graph.Graph

	gravity vector.Vector3
	fuel    float64

	// wing muscle groups for generated flying cards; empty means jet flight
	wingMuscleGroups []string
}

func NewSolver(policy *classify.Policy) *Solver {
	if policy == nil {
		policy = classify.DefaultPolicy()
	}

	return &Solver{
		pool:      make([]*cards.GoodSection, 0),
		producers: make([]Producer, 0),
		weights:   DefaultWeights(),
		policy:    policy,
		gravity:   vector.MakeVector3(0, -9.81, 0),
	}
}

func (solver *Solver) AddCard(card *cards.GoodSection) *Solver {
	if card != nil {
		solver.pool = append(solver.pool, card)
	}
	return solver
}

func (solver *Solver) RemoveCard(name string) *Solver {
	for i, card := range solver.pool {
		if card.Name == name {
			solver.pool = append(solver.pool[:i], solver.pool[i+1:]...)
			break
		}
	}
	return solver
}

func (solver *Solver) Cards() []*cards.GoodSection {
	return solver.pool
}

func (solver *Solver) AddProducer(producer Producer) *Solver {
	if producer != nil {
		solver.producers = append(solver.producers, producer)
	}
	return solver
}

func (solver *Solver) SetGraph(g *graph.Graph) *Solver {
	solver.graph = g
	return solver
}

func (solver *Solver) SetGravity(gravity vector.Vector3) *Solver {
	solver.gravity = gravity
	return solver
}

func (solver *Solver) SetFuel(fuel float64) *Solver {
	solver.fuel = fuel
	return solver
}

func (solver *Solver) Fuel() float64 {
	return solver.fuel
}

func (solver *Solver) SetWingMuscleGroups(groups []string) *Solver {
	solver.wingMuscleGroups = groups
	return solver
}

func (solver *Solver) Policy() *classify.Policy {
	return solver.policy
}

func (solver *Solver) Weights() Weights {
	return solver.weights
}

func (solver *Solver) ApplyWeights(weights Weights) *Solver {
	solver.weights = weights
	return solver
}

// FindApplicableCards unions the static pool with producer-supplied cards,
// de-duplicated by ID, keeping only cards feasible against the snapshot.
func (solver *Solver) FindApplicableCards(s ragdoll.State, goal *Goal) []*cards.GoodSection {
	applicable := make([]*cards.GoodSection, 0, len(solver.pool))
	seen := make(map[uuid.UUID]bool, len(solver.pool))

	consider := func(card *cards.GoodSection) {
		if card == nil || seen[card.ID] {
			return
		}
		seen[card.ID] = true

		if card.IsFeasible(s) {
			applicable = append(applicable, card)
		}
	}

	for _, card := range solver.pool {
		consider(card)
	}

	for _, producer := range solver.producers {
		for _, card := range producer.ConsiderCards(s, goal) {
			consider(card)
		}
	}

	return applicable
}

// CalculateFeasibilityScore is the combined ordering score:
// feasibility × feasibilityWeight + comfort × comfortWeight, where comfort is
// the radial-limit fit. The blend is intentionally not renormalized.
func (solver *Solver) CalculateFeasibilityScore(card *cards.GoodSection, s ragdoll.State) float64 {
	w := solver.weights

	feasibility := card.Limits.GetLimitScoreWeighted(s, card.RequiredState,
		w.Degrees, w.Torque, w.Force, w.Velocity)
	comfort := card.Limits.RadialScore(s)

	return feasibility*w.Feasibility + comfort*w.Comfort
}

// OrderCardsByFeasibility sorts descending by combined score; near-ties break
// on total radial range, wider reading as more comfortable.
func (solver *Solver) OrderCardsByFeasibility(pool []*cards.GoodSection, s ragdoll.State) []*cards.GoodSection {
	ordered := make([]*cards.GoodSection, len(pool))
	copy(ordered, pool)

	scores := make(map[uuid.UUID]float64, len(ordered))
	for _, card := range ordered {
		scores[card.ID] = solver.CalculateFeasibilityScore(card, s)
	}

	const scoreTie = 1e-6

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := scores[ordered[i].ID], scores[ordered[j].ID]
		if a-b > scoreTie || b-a > scoreTie {
			return a > b
		}
		return ordered[i].Limits.RadialRangeTotal() > ordered[j].Limits.RadialRangeTotal()
	})

	return ordered
}

// filterForGoal applies the locomotion-mode policy for the goal's kind.
func (solver *Solver) filterForGoal(pool []*cards.GoodSection, goal *Goal) []*cards.GoodSection {
	if goal == nil {
		return pool
	}

	switch goal.Kind {
	case GoalMove:
		return solver.policy.FilterForWalking(pool)
	case GoalFly:
		return solver.policy.FilterForFlying(pool)
	}

	return pool
}

// SolveForGoal resolves an ordered card sequence for the goal. Missing
// collaborators and infeasible goals degrade to an empty result; an empty
// plan means "no action available this tick".
func (solver *Solver) SolveForGoal(goal *Goal, s ragdoll.State) []*cards.GoodSection {
	applicable := solver.FindApplicableCards(s, goal)
	applicable = solver.filterForGoal(applicable, goal)

	if len(applicable) == 0 {
		if generated := solver.generateForGoal(goal, s); generated != nil {
			return []*cards.GoodSection{generated}
		}

		utils.DebugWithContext(serviceName, "no applicable cards", utils.Context{
			"goal": goalName(goal),
		})
		return nil
	}

	ordered := solver.OrderCardsByFeasibility(applicable, s)

	match := solver.matchGoalCard(goal, ordered, s)

	if match != nil && solver.graph != nil {
		if path := solver.graph.PathToCard(s.RootPosition, match); len(path) > 0 {
			return path
		}
	}

	if match != nil {
		return []*cards.GoodSection{match}
	}

	return []*cards.GoodSection{ordered[0]}
}

func goalName(goal *Goal) string {
	if goal == nil {
		return ""
	}
	return goal.Name
}

// matchGoalCard looks for a card matching the goal. Throw goals prefer
// throw-capable cards gated by trajectory feasibility; other goals match by
// name substring, an associated behavior, then fuzzy name distance.
func (solver *Solver) matchGoalCard(goal *Goal, ordered []*cards.GoodSection, s ragdoll.State) *cards.GoodSection {
	if goal == nil {
		return nil
	}

	if goal.Kind == GoalThrow {
		return solver.matchThrowCard(goal, ordered, s)
	}

	loweredGoal := strings.ToLower(goal.Name)
	if loweredGoal == "" {
		return nil
	}

	for _, card := range ordered {
		if strings.Contains(strings.ToLower(card.Name), loweredGoal) {
			return card
		}
		if card.Behavior != "" && strings.EqualFold(card.Behavior, goal.Name) {
			return card
		}
	}

	// fuzzy fallback, tolerant of naming drift between goal producers and
	// card authors
	var best *cards.GoodSection
	bestDistance := 0
	for _, card := range ordered {
		distance := levenshtein.ComputeDistance(strings.ToLower(card.Name), loweredGoal)
		if distance <= fuzzyNameLimit(len(loweredGoal)) && (best == nil || distance < bestDistance) {
			best = card
			bestDistance = distance
		}
	}

	return best
}

func fuzzyNameLimit(length int) int {
	limit := length / 4
	if limit < 2 {
		limit = 2
	}
	return limit
}

func (solver *Solver) matchThrowCard(goal *Goal, ordered []*cards.GoodSection, s ragdoll.State) *cards.GoodSection {
	maxLaunchSpeed := baseLaunchSpeed * solver.weights.PowerScale

	for _, card := range ordered {
		if !card.IsThrowCapable() {
			continue
		}

		var ok bool
		if goal.TargetVelocity.IsNull() {
			_, ok = trajectory.IsInRangeAndFeasible(
				s.RootPosition, goal.TargetPosition, solver.gravity,
				maxLaunchSpeed, card.ThrowMinRange, card.ThrowMaxRange)
		} else {
			_, ok = trajectory.IsInRangeAndFeasibleMovingTarget(
				s.RootPosition, goal.TargetPosition, goal.TargetVelocity, solver.gravity,
				maxLaunchSpeed, interceptMaxTime, card.ThrowMinRange, card.ThrowMaxRange)
		}

		if ok {
			return card
		}
	}

	return nil
}

// generateForGoal synthesizes a card when the pool offers nothing for a
// movement goal.
func (solver *Solver) generateForGoal(goal *Goal, s ragdoll.State) *cards.GoodSection {
	if goal == nil {
		return nil
	}

	switch goal.Kind {
	case GoalMove:
		return solver.GenerateWalkingCard(s, goal.TargetPosition)
	case GoalFly:
		return solver.GenerateFlyingCard(s, goal.TargetPosition)
	}

	return nil
}
