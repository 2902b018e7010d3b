package cards

import (
	uuid "github.com/satori/go.uuid"

	"github.com/john-holland/physicscards/common/utils"
	"github.com/john-holland/physicscards/common/utils/vector"
	"github.com/john-holland/physicscards/ragdoll"
)

// A required state within this normalized distance of the live state counts
// as satisfied.
const requiredStateTolerance = 0.2

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseExecuting
	PhaseSuccess
	PhaseInterrupted
)

func (p Phase) String() string {
	switch p {
	case PhaseExecuting:
		return "executing"
	case PhaseSuccess:
		return "success"
	case PhaseInterrupted:
		return "interrupted"
	}
	return "idle"
}

// Kind discriminates card variants; variant payloads live beside it rather
// than in subtypes so every card shares one feasibility/execution contract.
type Kind int

const (
	KindBasic Kind = iota
	KindHemisphericalGrasp
	KindTipping
)

// GraspParams parameterize a hemispherical grasp card.
type GraspParams struct {
	TargetObject      string         `json:"targetObject"`
	Radius            float64        `json:"radius"`
	ApproachDirection vector.Vector3 `json:"approachDirection"`
}

// TippingParams parameterize a tipping card.
type TippingParams struct {
	TargetObject string         `json:"targetObject"`
	TipDirection vector.Vector3 `json:"tipDirection"`
	LeanAngle    float64        `json:"leanAngle"`
}

// WingProfile feeds lift aggregation for wing-classified cards.
type WingProfile struct {
	FlapPower   float64 `json:"flapPower"`
	AspectRatio float64 `json:"aspectRatio"`
}

// GoodSection is a transition card: an ordered impulse-action stack, the
// skeletal state it requires and the state it aims for, the physical limits
// it respects, and named connections to follow-up cards.
//
// Connections serialize as names only; call RebuildConnections after any
// load to restore live references.
type GoodSection struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`

	Actions       []*ImpulseAction `json:"actions"`
	RequiredState *ragdoll.State   `json:"requiredState,omitempty"`
	TargetState   *ragdoll.State   `json:"targetState,omitempty"`
	Limits        SectionLimits    `json:"limits"`

	Kind    Kind           `json:"kind"`
	Grasp   *GraspParams   `json:"grasp,omitempty"`
	Tipping *TippingParams `json:"tipping,omitempty"`
	Wing    *WingProfile   `json:"wing,omitempty"`

	ThrowMinRange float64 `json:"throwMinRange,omitempty"`
	ThrowMaxRange float64 `json:"throwMaxRange,omitempty"`

	// Behavior names an associated behavior tree, when the external
	// executor drives this card through one.
	Behavior string `json:"behavior,omitempty"`

	ConnectionNames []string `json:"connectionNames,omitempty"`

	// live references, rebuilt from ConnectionNames after load
	connections []*GoodSection

	// execution state machine
	phase         Phase
	currentAction int
}

func NewGoodSection(name string) *GoodSection {
	return &GoodSection{
		ID:      uuid.NewV4(),
		Name:    name,
		Actions: make([]*ImpulseAction, 0),
	}
}

func (card *GoodSection) AddAction(action *ImpulseAction) *GoodSection {
	card.Actions = append(card.Actions, action)
	return card
}

// SetRequiredState stores a deep copy; the card must stay independent of the
// snapshot it was built from.
func (card *GoodSection) SetRequiredState(s ragdoll.State) *GoodSection {
	clone := s.Clone()
	card.RequiredState = &clone
	return card
}

func (card *GoodSection) SetTargetState(s ragdoll.State) *GoodSection {
	clone := s.Clone()
	card.TargetState = &clone
	return card
}

func (card *GoodSection) SetLimits(limits SectionLimits) *GoodSection {
	card.Limits = limits
	return card
}

// TargetObject is the variant's manipulation target, empty for basic cards.
func (card *GoodSection) TargetObject() string {
	switch card.Kind {
	case KindHemisphericalGrasp:
		if card.Grasp != nil {
			return card.Grasp.TargetObject
		}
	case KindTipping:
		if card.Tipping != nil {
			return card.Tipping.TargetObject
		}
	}
	return ""
}

// IsThrowCapable reports whether the card carries a throw range.
func (card *GoodSection) IsThrowCapable() bool {
	return card.ThrowMaxRange > 0
}

// IsFeasible is true when the limits pass and the required state (if any) is
// similar to the current state. A card with no required state is a free
// action, feasible by definition as far as state matching goes.
func (card *GoodSection) IsFeasible(s ragdoll.State) bool {
	if !card.Limits.CheckFeasibility(s, card.RequiredState) {
		return false
	}

	if card.RequiredState == nil {
		return true
	}

	return s.SimilarTo(*card.RequiredState, requiredStateTolerance)
}

// CalculateFeasibilityScore mirrors SectionLimits.GetLimitScore on the card
// itself, so a card can be scored standalone without a solver.
func (card *GoodSection) CalculateFeasibilityScore(s ragdoll.State) float64 {
	return card.Limits.GetLimitScore(s, card.RequiredState)
}

func (card *GoodSection) Phase() Phase {
	return card.phase
}

func (card *GoodSection) IsExecuting() bool {
	return card.phase == PhaseExecuting
}

// Execute validates feasibility and starts the first impulse action.
// Executing an already-executing card warns and is a no-op.
func (card *GoodSection) Execute(s ragdoll.State) bool {
	if card.phase == PhaseExecuting {
		utils.Warn("cards", "Execute called on already-executing card "+card.Name)
		return false
	}

	if !card.IsFeasible(s) {
		return false
	}

	for _, action := range card.Actions {
		action.Reset()
	}
	card.currentAction = 0

	if len(card.Actions) == 0 {
		card.phase = PhaseSuccess
		postCardEvent(EventCompleted, card)
		return true
	}

	if !card.Actions[0].Start(s) {
		return false
	}

	card.phase = PhaseExecuting
	postCardEvent(EventExecuted, card)
	return true
}

// Update advances the current action, moving down the stack as actions
// complete. It returns false exactly when the card is no longer executing:
// the stack is exhausted (success) or a follow-up action's preconditions
// failed (interrupted).
func (card *GoodSection) Update(dt float64, s ragdoll.State) bool {
	if card.phase != PhaseExecuting {
		return false
	}

	if card.Actions[card.currentAction].Update(dt) {
		return true
	}

	card.currentAction++
	if card.currentAction >= len(card.Actions) {
		card.phase = PhaseSuccess
		postCardEvent(EventCompleted, card)
		return false
	}

	if !card.Actions[card.currentAction].Start(s) {
		card.phase = PhaseInterrupted
		postCardEvent(EventInterrupted, card)
		return false
	}

	return true
}

// Stop aborts execution and resets to idle.
func (card *GoodSection) Stop() {
	if card.phase == PhaseExecuting {
		postCardEvent(EventInterrupted, card)
	}

	for _, action := range card.Actions {
		action.Reset()
	}
	card.currentAction = 0
	card.phase = PhaseIdle
}

// CurrentAction is the executing action, nil outside execution.
func (card *GoodSection) CurrentAction() *ImpulseAction {
	if card.phase != PhaseExecuting || card.currentAction >= len(card.Actions) {
		return nil
	}
	return card.Actions[card.currentAction]
}

// AddConnection keeps the live reference list and the serializable name list
// in lockstep.
func (card *GoodSection) AddConnection(other *GoodSection) {
	if other == nil {
		return
	}

	for _, name := range card.ConnectionNames {
		if name == other.Name {
			return
		}
	}

	card.ConnectionNames = append(card.ConnectionNames, other.Name)
	card.connections = append(card.connections, other)
}

func (card *GoodSection) RemoveConnection(name string) {
	for i, connectionName := range card.ConnectionNames {
		if connectionName == name {
			card.ConnectionNames = append(card.ConnectionNames[:i], card.ConnectionNames[i+1:]...)
			break
		}
	}

	for i, connection := range card.connections {
		if connection.Name == name {
			card.connections = append(card.connections[:i], card.connections[i+1:]...)
			break
		}
	}
}

func (card *GoodSection) Connections() []*GoodSection {
	return card.connections
}

// RebuildConnections restores live references from ConnectionNames against a
// pool. Names with no match in the pool are dropped silently.
func (card *GoodSection) RebuildConnections(pool []*GoodSection) {
	byName := make(map[string]*GoodSection, len(pool))
	for _, candidate := range pool {
		if candidate != nil && candidate != card {
			byName[candidate.Name] = candidate
		}
	}

	resolvedNames := make([]string, 0, len(card.ConnectionNames))
	resolved := make([]*GoodSection, 0, len(card.ConnectionNames))

	for _, name := range card.ConnectionNames {
		if connection, ok := byName[name]; ok {
			resolvedNames = append(resolvedNames, name)
			resolved = append(resolved, connection)
		}
	}

	card.ConnectionNames = resolvedNames
	card.connections = resolved
}
