package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/john-holland/physicscards/common/utils/vector"
	"github.com/john-holland/physicscards/ragdoll"
)

func makeTwoActionCard(name string) *GoodSection {
	card := NewGoodSection(name)
	card.AddAction(&ImpulseAction{MuscleGroup: "left_hip", Activation: 0.5, Duration: 0.5})
	card.AddAction(&ImpulseAction{MuscleGroup: "right_hip", Activation: 0.5, Duration: 0.5})
	return card
}

func TestExecuteUpdateStopMachine(t *testing.T) {
	card := makeTwoActionCard("step")
	s := ragdoll.MakeState()

	assert.Equal(t, PhaseIdle, card.Phase())
	require.True(t, card.Execute(s))
	assert.Equal(t, PhaseExecuting, card.Phase())
	assert.Same(t, card.Actions[0], card.CurrentAction())

	// first action runs out after 0.5s, second starts
	assert.True(t, card.Update(0.3, s))
	assert.True(t, card.Update(0.3, s))
	assert.Same(t, card.Actions[1], card.CurrentAction())

	// second action runs out; stack exhausted
	assert.True(t, card.Update(0.3, s))
	assert.False(t, card.Update(0.3, s))
	assert.Equal(t, PhaseSuccess, card.Phase())
	assert.Nil(t, card.CurrentAction())

	card.Stop()
	assert.Equal(t, PhaseIdle, card.Phase())
	for _, action := range card.Actions {
		assert.False(t, action.IsExecuting())
		assert.Zero(t, action.Elapsed())
	}
}

func TestDoubleExecuteIsNoOp(t *testing.T) {
	card := makeTwoActionCard("step")
	s := ragdoll.MakeState()

	require.True(t, card.Execute(s))
	assert.False(t, card.Execute(s), "second Execute must warn and no-op")
	assert.Equal(t, PhaseExecuting, card.Phase())
	assert.Same(t, card.Actions[0], card.CurrentAction())
}

func TestExecuteRequiresFeasibility(t *testing.T) {
	card := makeTwoActionCard("step")

	required := ragdoll.MakeState()
	required.RootRotation = vector.MakeVector3(180, 0, 0)
	card.SetRequiredState(required)
	card.SetLimits(MakeDefaultLimits())

	s := ragdoll.MakeState() // nowhere near the required rotation

	assert.False(t, card.IsFeasible(s))
	assert.False(t, card.Execute(s))
	assert.Equal(t, PhaseIdle, card.Phase())
}

func TestFreeCardIsAlwaysFeasible(t *testing.T) {
	card := makeTwoActionCard("idle_sway")

	s := ragdoll.MakeState()
	s.RootVelocity = vector.MakeVector3(3, 1, 0)

	assert.True(t, card.IsFeasible(s), "a card with no required state is a free action")
	assert.Equal(t, 1.0, card.CalculateFeasibilityScore(s), "free card with no radial limits scores full")
}

func TestFeasibilityAndScoreAreIndependent(t *testing.T) {
	card := makeTwoActionCard("lunge")

	required := ragdoll.MakeState()
	required.RootVelocity = vector.MakeVector3(3, 0, 0)
	card.SetRequiredState(required)

	limits := MakeDefaultLimits()
	limits.MaxVelocityChange = 2.9 // just under the demand
	card.SetLimits(limits)

	s := ragdoll.MakeState()

	assert.False(t, card.IsFeasible(s), "hard ceiling exceeded")
	assert.Greater(t, card.CalculateFeasibilityScore(s), 0.4,
		"score stays informative even when hard feasibility fails")
}

func TestZeroDurationActionRunsUntilSuperseded(t *testing.T) {
	card := NewGoodSection("hold_pose")
	card.AddAction(&ImpulseAction{MuscleGroup: "torso_core", Activation: 0.3, Duration: 0})

	s := ragdoll.MakeState()
	require.True(t, card.Execute(s))

	for i := 0; i < 100; i++ {
		assert.True(t, card.Update(1.0, s))
	}
	assert.Equal(t, PhaseExecuting, card.Phase())

	card.Stop()
	assert.Equal(t, PhaseIdle, card.Phase())
}

func TestInterruptedWhenNextActionGated(t *testing.T) {
	card := NewGoodSection("jump_prep")
	card.AddAction(&ImpulseAction{MuscleGroup: "left_knee", Activation: 1, Duration: 0.1})
	card.AddAction(&ImpulseAction{
		MuscleGroup: "right_knee",
		Activation:  1,
		Duration:    0.1,
		Conditions: []ImpulseCondition{
			{Quantity: QuantityContactCount, Comparison: CompareGreaterOrEqual, Threshold: 1},
		},
	})

	s := ragdoll.MakeState() // no contacts; second action can never start
	require.True(t, card.Execute(s))
	assert.False(t, card.Update(0.2, s))
	assert.Equal(t, PhaseInterrupted, card.Phase())
}

func TestConnectionsLockstep(t *testing.T) {
	a := NewGoodSection("a")
	b := NewGoodSection("b")
	c := NewGoodSection("c")

	a.AddConnection(b)
	a.AddConnection(c)
	a.AddConnection(b) // duplicate ignored

	assert.Equal(t, []string{"b", "c"}, a.ConnectionNames)
	assert.Len(t, a.Connections(), 2)

	a.RemoveConnection("b")
	assert.Equal(t, []string{"c"}, a.ConnectionNames)
	require.Len(t, a.Connections(), 1)
	assert.Same(t, c, a.Connections()[0])
}

func TestRebuildConnectionsDropsUnresolvedNames(t *testing.T) {
	a := NewGoodSection("a")
	b := NewGoodSection("b")

	a.ConnectionNames = []string{"b", "ghost"}
	a.RebuildConnections([]*GoodSection{a, b})

	assert.Equal(t, []string{"b"}, a.ConnectionNames, "unresolved names drop silently")
	require.Len(t, a.Connections(), 1)
	assert.Same(t, b, a.Connections()[0])
}

func TestActivationCurve(t *testing.T) {
	curve := ActivationCurve{{T: 0, Value: 0}, {T: 0.5, Value: 1}, {T: 1, Value: 0}}

	assert.InDelta(t, 0.0, curve.Evaluate(0), 1e-9)
	assert.InDelta(t, 0.5, curve.Evaluate(0.25), 1e-9)
	assert.InDelta(t, 1.0, curve.Evaluate(0.5), 1e-9)
	assert.InDelta(t, 0.5, curve.Evaluate(0.75), 1e-9)
	assert.InDelta(t, 0.0, curve.Evaluate(1), 1e-9)

	empty := ActivationCurve{}
	assert.Equal(t, 1.0, empty.Evaluate(0.5), "empty curve reads as constant full activation")
}

func TestRequiredStateIsDeepCopied(t *testing.T) {
	s := ragdoll.MakeState()
	s.Joints["left_knee"] = ragdoll.JointState{Rotation: vector.MakeVector3(10, 0, 0)}

	card := NewGoodSection("copy_check")
	card.SetRequiredState(s)

	s.Joints["left_knee"] = ragdoll.JointState{Rotation: vector.MakeVector3(90, 0, 0)}

	assert.Equal(t, 10.0, card.RequiredState.Joint("left_knee").Rotation.GetX(),
		"card's required state must not alias the source snapshot")
}
