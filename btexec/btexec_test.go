package btexec

import (
	"testing"

	bt "github.com/joeycumines/go-behaviortree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/john-holland/physicscards/cards"
	"github.com/john-holland/physicscards/common/utils/vector"
	"github.com/john-holland/physicscards/ragdoll"
)

// a root rotation no default-limited card can reach from rest
func vectorRotated() vector.Vector3 {
	return vector.MakeVector3(180, 0, 0)
}

type stateProvider struct {
	s ragdoll.State
}

func (p *stateProvider) Snapshot() ragdoll.State {
	return p.s
}

func shortCard(name string, duration float64) *cards.GoodSection {
	card := cards.NewGoodSection(name)
	card.AddAction(&cards.ImpulseAction{MuscleGroup: "left_hip", Activation: 0.5, Duration: duration})
	return card
}

func tickUntilSettled(t *testing.T, node bt.Node, maxTicks int) bt.Status {
	t.Helper()

	for i := 0; i < maxTicks; i++ {
		status, err := node.Tick()
		require.NoError(t, err)
		if status != bt.Running {
			return status
		}
	}

	t.Fatalf("node still running after %d ticks", maxTicks)
	return bt.Failure
}

func TestCardNodeRunsToSuccess(t *testing.T) {
	card := shortCard("step", 0.3)
	provider := &stateProvider{s: ragdoll.MakeState()}

	node := CardNode(card, provider, 0.2)

	status, err := node.Tick()
	require.NoError(t, err)
	assert.Equal(t, bt.Running, status, "first tick starts the card")
	assert.Equal(t, cards.PhaseExecuting, card.Phase())

	status = tickUntilSettled(t, node, 10)
	assert.Equal(t, bt.Success, status)
	assert.Equal(t, cards.PhaseSuccess, card.Phase())
}

func TestCardNodeFailsOnInfeasibleStart(t *testing.T) {
	card := shortCard("headstand", 0.3)

	required := ragdoll.MakeState()
	required.RootRotation = vectorRotated()
	card.SetRequiredState(required)
	card.SetLimits(cards.MakeDefaultLimits())

	provider := &stateProvider{s: ragdoll.MakeState()}
	node := CardNode(card, provider, 0.2)

	status, err := node.Tick()
	require.NoError(t, err)
	assert.Equal(t, bt.Failure, status)
	assert.Equal(t, cards.PhaseIdle, card.Phase())
}

func TestCardNodeFailsOnInterruption(t *testing.T) {
	card := cards.NewGoodSection("jump_prep")
	card.AddAction(&cards.ImpulseAction{MuscleGroup: "left_knee", Activation: 1, Duration: 0.1})
	card.AddAction(&cards.ImpulseAction{
		MuscleGroup: "right_knee",
		Activation:  1,
		Duration:    0.1,
		Conditions: []cards.ImpulseCondition{
			{Quantity: cards.QuantityContactCount, Comparison: cards.CompareGreaterOrEqual, Threshold: 1},
		},
	})

	// no contacts in the snapshot: the gated second action can never start
	provider := &stateProvider{s: ragdoll.MakeState()}
	node := CardNode(card, provider, 0.2)

	status, err := node.Tick()
	require.NoError(t, err)
	require.Equal(t, bt.Running, status)

	status = tickUntilSettled(t, node, 10)
	assert.Equal(t, bt.Failure, status)
	assert.Equal(t, cards.PhaseInterrupted, card.Phase())
}

func TestCardNodeEmptyCardSucceedsImmediately(t *testing.T) {
	card := cards.NewGoodSection("noop")
	provider := &stateProvider{s: ragdoll.MakeState()}

	status, err := CardNode(card, provider, 0.2).Tick()
	require.NoError(t, err)
	assert.Equal(t, bt.Success, status)
}

func TestPlanNodeRunsCardsInSequence(t *testing.T) {
	first := shortCard("step_left", 0.2)
	second := shortCard("step_right", 0.2)
	provider := &stateProvider{s: ragdoll.MakeState()}

	node := PlanNode([]*cards.GoodSection{first, second}, provider, 0.2)

	status, err := node.Tick()
	require.NoError(t, err)
	require.Equal(t, bt.Running, status)
	assert.Equal(t, cards.PhaseExecuting, first.Phase())
	assert.Equal(t, cards.PhaseIdle, second.Phase(), "the sequence gates the second card")

	status = tickUntilSettled(t, node, 20)
	assert.Equal(t, bt.Success, status)
	assert.Equal(t, cards.PhaseSuccess, first.Phase())
	assert.Equal(t, cards.PhaseSuccess, second.Phase())
}

func TestPlanNodeFailsWhenACardFails(t *testing.T) {
	good := shortCard("step", 0.2)

	blocked := shortCard("headstand", 0.2)
	required := ragdoll.MakeState()
	required.RootRotation = vectorRotated()
	blocked.SetRequiredState(required)
	blocked.SetLimits(cards.MakeDefaultLimits())

	provider := &stateProvider{s: ragdoll.MakeState()}
	node := PlanNode([]*cards.GoodSection{good, blocked}, provider, 0.2)

	status := tickUntilSettled(t, node, 20)
	assert.Equal(t, bt.Failure, status)
	assert.Equal(t, cards.PhaseSuccess, good.Phase())
	assert.Equal(t, cards.PhaseIdle, blocked.Phase())
}

func TestEmptyPlanSucceeds(t *testing.T) {
	provider := &stateProvider{s: ragdoll.MakeState()}

	status, err := PlanNode(nil, provider, 0.2).Tick()
	require.NoError(t, err)
	assert.Equal(t, bt.Success, status)
}
