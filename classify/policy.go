// Package classify tags cards for locomotion modes using keyword heuristics
// over card names and muscle-group names. The heuristics are brittle by
// nature (they lean on naming conventions), so everything funnels through a
// single Classify entry point that a more principled tagging scheme could
// replace without touching the solver.
package classify

import (
	"math"
	"strings"

	"github.com/john-holland/physicscards/cards"
	"github.com/john-holland/physicscards/common/utils/vector"
)

type Category int

const (
	CategoryUnclassified Category = iota
	CategoryPlacement
	CategoryLegOnly
	CategoryWing
	CategoryJet
)

func (c Category) String() string {
	switch c {
	case CategoryPlacement:
		return "placement"
	case CategoryLegOnly:
		return "leg-only"
	case CategoryWing:
		return "wing"
	case CategoryJet:
		return "jet"
	}
	return "unclassified"
}

// Policy carries the configurable keyword lists. Leg, arm and head keywords
// partition the muscle-group namespace for the leg-only check and must stay
// disjoint from each other. Wing and jet lists are not guaranteed disjoint;
// a muscle group matching both yields ambiguous dual classification, which
// the policy does not resolve.
type Policy struct {
	PlacementKeywords []string `json:"placementKeywords"`
	LegKeywords       []string `json:"legKeywords"`
	ArmKeywords       []string `json:"armKeywords"`
	HeadKeywords      []string `json:"headKeywords"`
	WingKeywords      []string `json:"wingKeywords"`
	JetKeywords       []string `json:"jetKeywords"`

	// OnlyLegsForWalking keeps arm/head-activating cards out of walking
	// plans so a gait never incidentally swings arms.
	OnlyLegsForWalking bool `json:"onlyLegsForWalking"`
}

func DefaultPolicy() *Policy {
	return &Policy{
		PlacementKeywords:  []string{"place", "put", "grasp", "grab", "set", "hold", "stack", "tip"},
		LegKeywords:        []string{"hip", "knee", "foot", "ankle", "thigh", "calf", "leg", "glute"},
		ArmKeywords:        []string{"shoulder", "elbow", "hand", "wrist", "arm", "finger", "bicep", "tricep"},
		HeadKeywords:       []string{"head", "neck", "jaw", "face"},
		WingKeywords:       []string{"wing", "flap", "pectoral"},
		JetKeywords:        []string{"jet", "thruster", "exhaust"},
		OnlyLegsForWalking: true,
	}
}

func matchesAny(name string, keywords []string) bool {
	lowered := strings.ToLower(name)
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(lowered, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// Classify is the single policy entry point. Placement wins over the
// locomotion categories; leg-only before wing/jet.
func (policy *Policy) Classify(card *cards.GoodSection) Category {
	switch {
	case policy.IsPlacementCard(card):
		return CategoryPlacement
	case policy.IsLegOnlyCard(card):
		return CategoryLegOnly
	case policy.IsWingCard(card):
		return CategoryWing
	case policy.IsJetCard(card):
		return CategoryJet
	}
	return CategoryUnclassified
}

// IsPlacementCard: the name carries a placement keyword, or the card is a
// grasp/tipping variant with a target object, or its stack pushes/twists
// something and is not a pure leg action.
func (policy *Policy) IsPlacementCard(card *cards.GoodSection) bool {
	if card == nil {
		return false
	}

	if matchesAny(card.Name, policy.PlacementKeywords) {
		return true
	}

	if (card.Kind == cards.KindHemisphericalGrasp || card.Kind == cards.KindTipping) && card.TargetObject() != "" {
		return true
	}

	hasDirections := false
	for _, action := range card.Actions {
		if action.HasNontrivialDirections() {
			hasDirections = true
			break
		}
	}

	return hasDirections && !policy.IsLegOnlyCard(card)
}

// IsLegOnlyCard: every action's muscle group matches the leg keyword set and
// none matches arm or head keywords. A card with no actions activates no
// legs and is not leg-only.
func (policy *Policy) IsLegOnlyCard(card *cards.GoodSection) bool {
	if card == nil || len(card.Actions) == 0 {
		return false
	}

	for _, action := range card.Actions {
		if matchesAny(action.MuscleGroup, policy.ArmKeywords) || matchesAny(action.MuscleGroup, policy.HeadKeywords) {
			return false
		}
		if !matchesAny(action.MuscleGroup, policy.LegKeywords) {
			return false
		}
	}

	return true
}

func (policy *Policy) IsWingCard(card *cards.GoodSection) bool {
	if card == nil {
		return false
	}

	for _, action := range card.Actions {
		if matchesAny(action.MuscleGroup, policy.WingKeywords) {
			return true
		}
	}

	return false
}

func (policy *Policy) IsJetCard(card *cards.GoodSection) bool {
	if card == nil {
		return false
	}

	for _, action := range card.Actions {
		if matchesAny(action.MuscleGroup, policy.JetKeywords) {
			return true
		}
	}

	return false
}

// FilterForWalking keeps placement cards unconditionally; with the legs-only
// policy active every other survivor must be leg-only. With the policy off,
// the pool passes through.
func (policy *Policy) FilterForWalking(pool []*cards.GoodSection) []*cards.GoodSection {
	if !policy.OnlyLegsForWalking {
		return pool
	}

	filtered := make([]*cards.GoodSection, 0, len(pool))
	for _, card := range pool {
		if policy.IsPlacementCard(card) || policy.IsLegOnlyCard(card) {
			filtered = append(filtered, card)
		}
	}

	return filtered
}

// FilterForFlying keeps wing and jet cards.
func (policy *Policy) FilterForFlying(pool []*cards.GoodSection) []*cards.GoodSection {
	filtered := make([]*cards.GoodSection, 0, len(pool))
	for _, card := range pool {
		if policy.IsWingCard(card) || policy.IsJetCard(card) {
			filtered = append(filtered, card)
		}
	}

	return filtered
}

func (policy *Policy) WingCards(pool []*cards.GoodSection) []*cards.GoodSection {
	filtered := make([]*cards.GoodSection, 0)
	for _, card := range pool {
		if policy.IsWingCard(card) {
			filtered = append(filtered, card)
		}
	}
	return filtered
}

func (policy *Policy) JetCards(pool []*cards.GoodSection) []*cards.GoodSection {
	filtered := make([]*cards.GoodSection, 0)
	for _, card := range pool {
		if policy.IsJetCard(card) {
			filtered = append(filtered, card)
		}
	}
	return filtered
}

// WingLiftAndDirection aggregates lift across wing cards: per action,
// activation × flapPower × sqrt(aspectRatio) along the action's force
// direction (up when unspecified). The aggregate direction is the normalized
// sum of force directions, up when the sum is near-zero.
func (policy *Policy) WingLiftAndDirection(pool []*cards.GoodSection) (lift float64, direction vector.Vector3) {
	sum := vector.MakeNullVector3()

	for _, card := range policy.WingCards(pool) {
		flapPower, aspectRatio := 1.0, 1.0
		if card.Wing != nil {
			if card.Wing.FlapPower > 0 {
				flapPower = card.Wing.FlapPower
			}
			if card.Wing.AspectRatio > 0 {
				aspectRatio = card.Wing.AspectRatio
			}
		}

		for _, action := range card.Actions {
			contribution := action.Activation * flapPower * math.Sqrt(aspectRatio)
			lift += contribution

			forceDirection := action.ForceDirection
			if forceDirection.IsNull() {
				forceDirection = vector.MakeUpVector3()
			}
			sum = sum.Add(forceDirection)
		}
	}

	if sum.IsNull() {
		return lift, vector.MakeUpVector3()
	}

	return lift, sum.Normalize()
}

// JetDirection aggregates forceDirection × activation across jet-card
// actions, normalized; forward when the sum is near-zero.
func (policy *Policy) JetDirection(pool []*cards.GoodSection) vector.Vector3 {
	sum := vector.MakeNullVector3()

	for _, card := range policy.JetCards(pool) {
		for _, action := range card.Actions {
			sum = sum.Add(action.ForceDirection.MultScalar(action.Activation))
		}
	}

	if sum.IsNull() {
		return vector.MakeForwardVector3()
	}

	return sum.Normalize()
}
