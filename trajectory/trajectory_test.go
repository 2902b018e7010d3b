package trajectory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/john-holland/physicscards/common/utils/vector"
)

var gravity = vector.MakeVector3(0, -9.81, 0)

// integrate the no-drag model forward to where the projectile is at time t.
func positionAt(origin vector.Vector3, v0 vector.Vector3, g vector.Vector3, t float64) vector.Vector3 {
	return origin.Add(v0.MultScalar(t)).Add(g.MultScalar(0.5 * t * t))
}

func TestComputeLandsOnTarget(t *testing.T) {
	cases := []struct {
		name   string
		origin vector.Vector3
		target vector.Vector3
	}{
		{"flat", vector.MakeNullVector3(), vector.MakeVector3(8, 0, 0)},
		{"uphill", vector.MakeNullVector3(), vector.MakeVector3(5, 3, 0)},
		{"downhill", vector.MakeVector3(0, 4, 0), vector.MakeVector3(6, 0, 2)},
		{"straight up", vector.MakeNullVector3(), vector.MakeVector3(0, 2, 0)},
	}

	for _, c := range cases {
		solution := Compute(c.origin, c.target, gravity, 0)
		require.True(t, solution.Feasible, c.name)
		require.Greater(t, solution.TimeOfFlight, 0.0, c.name)

		landing := positionAt(c.origin, solution.InitialVelocity, gravity, solution.TimeOfFlight)
		assert.InDelta(t, 0.0, landing.DistanceTo(c.target), 0.01,
			"%s: projectile must land on target", c.name)
	}
}

func TestComputeRespectsLaunchSpeedCap(t *testing.T) {
	origin := vector.MakeNullVector3()
	target := vector.MakeVector3(50, 0, 0)

	unconstrained := Compute(origin, target, gravity, 0)
	require.True(t, unconstrained.Feasible)
	needed := unconstrained.InitialVelocity.Mag()

	assert.True(t, Compute(origin, target, gravity, needed+1).Feasible)

	capped := Compute(origin, target, gravity, needed-1)
	assert.False(t, capped.Feasible)
	// solution is still reported even when infeasible
	assert.Greater(t, capped.InitialVelocity.Mag(), 0.0)
}

func TestComputeZeroDistanceFlooredTime(t *testing.T) {
	origin := vector.MakeVector3(1, 1, 1)
	solution := Compute(origin, origin, gravity, 0)

	assert.True(t, solution.Feasible)
	assert.Equal(t, minTimeOfFlight, solution.TimeOfFlight)
	assert.Equal(t, 0.0, solution.Distance)
}

func TestComputeMovingTarget(t *testing.T) {
	origin := vector.MakeNullVector3()
	target := vector.MakeVector3(10, 0, 0)
	targetVelocity := vector.MakeVector3(0, 0, 2)

	solution := ComputeMovingTarget(origin, target, targetVelocity, gravity, 0, 2)
	require.True(t, solution.Feasible)

	intercept := target.Add(targetVelocity.MultScalar(solution.TimeOfFlight))
	landing := positionAt(origin, solution.InitialVelocity, gravity, solution.TimeOfFlight)
	assert.InDelta(t, 0.0, landing.DistanceTo(intercept), 0.01,
		"projectile must meet the moved target")
}

func TestComputeMovingTargetPrefersEarliestFeasible(t *testing.T) {
	origin := vector.MakeNullVector3()
	target := vector.MakeVector3(20, 0, 0)

	// a tight cap rules out the early high-speed intercepts
	tight := ComputeMovingTarget(origin, target, vector.MakeNullVector3(), gravity, 15, 4)
	loose := ComputeMovingTarget(origin, target, vector.MakeNullVector3(), gravity, 0, 4)

	require.True(t, tight.Feasible)
	require.True(t, loose.Feasible)
	assert.Greater(t, tight.TimeOfFlight, loose.TimeOfFlight)
	assert.LessOrEqual(t, tight.InitialVelocity.Mag(), 15.0)
}

func TestComputeMovingTargetInfeasible(t *testing.T) {
	origin := vector.MakeNullVector3()
	target := vector.MakeVector3(500, 0, 0)

	solution := ComputeMovingTarget(origin, target, vector.MakeNullVector3(), gravity, 1, 1)
	assert.False(t, solution.Feasible)
}

func TestInRange(t *testing.T) {
	assert.False(t, InRange(1, 2, 10))
	assert.True(t, InRange(5, 2, 10))
	assert.False(t, InRange(15, 2, 10))

	// boundary values are inclusive
	assert.True(t, InRange(2, 2, 10))
	assert.True(t, InRange(10, 2, 10))

	// zero max range means not throw-capable
	assert.False(t, InRange(0, 0, 0))
	assert.False(t, InRange(5, 0, 0))
}

func TestIsInRangeAndFeasible(t *testing.T) {
	origin := vector.MakeNullVector3()

	_, ok := IsInRangeAndFeasible(origin, vector.MakeVector3(5, 0, 0), gravity, 0, 2, 10)
	assert.True(t, ok)

	_, ok = IsInRangeAndFeasible(origin, vector.MakeVector3(1, 0, 0), gravity, 0, 2, 10)
	assert.False(t, ok, "inside min range")

	_, ok = IsInRangeAndFeasible(origin, vector.MakeVector3(15, 0, 0), gravity, 0, 2, 10)
	assert.False(t, ok, "beyond max range")
}
