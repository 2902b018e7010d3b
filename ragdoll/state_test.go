package ragdoll

import (
	"math"
	"testing"

	"github.com/john-holland/physicscards/common/utils/vector"
)

func TestCloneIsIndependent(t *testing.T) {
	s := MakeState()
	s.Joints["left_knee"] = JointState{Rotation: vector.MakeVector3(10, 0, 0)}
	s.Muscles["left_knee"] = 0.5
	s.Contacts = append(s.Contacts, ContactPoint{BodyPart: "left_foot", Other: "ground"})

	clone := s.Clone()
	clone.Joints["left_knee"] = JointState{Rotation: vector.MakeVector3(90, 0, 0)}
	clone.Muscles["left_knee"] = 1.0
	clone.Contacts[0].Other = "wall"

	if got := s.Joint("left_knee").Rotation.GetX(); got != 10 {
		t.Errorf("clone mutation leaked into joint map: %v", got)
	}
	if got := s.Muscle("left_knee"); got != 0.5 {
		t.Errorf("clone mutation leaked into muscle map: %v", got)
	}
	if s.Contacts[0].Other != "ground" {
		t.Error("clone mutation leaked into contacts")
	}
}

func TestUnknownNamesReadAsZero(t *testing.T) {
	s := MakeState()

	if got := s.Joint("no_such_joint"); !got.Rotation.IsNull() || !got.Position.IsNull() {
		t.Error("unknown joint should read as zero value")
	}
	if got := s.Muscle("no_such_muscle"); got != 0 {
		t.Errorf("unknown muscle should read as 0, got %v", got)
	}

	var empty State
	if got := empty.Muscle("anything"); got != 0 {
		t.Errorf("nil muscle map should read as 0, got %v", got)
	}
	if got := empty.Joint("anything"); !got.Rotation.IsNull() {
		t.Error("nil joint map should read as zero value")
	}
}

func TestRotationDeltaSharedJointsOnly(t *testing.T) {
	a := MakeState()
	b := MakeState()

	a.Joints["left_knee"] = JointState{Rotation: vector.MakeVector3(0, 0, 0)}
	b.Joints["left_knee"] = JointState{Rotation: vector.MakeVector3(30, 0, 0)}

	// only present on one side; contributes nothing
	a.Joints["only_in_a"] = JointState{Rotation: vector.MakeVector3(180, 180, 180)}

	if got := a.RotationDelta(b); math.Abs(got-30) > 1e-9 {
		t.Errorf("RotationDelta = %v, expected 30 from the shared joint alone", got)
	}
}

func TestRotationDeltaIncludesRoot(t *testing.T) {
	a := MakeState()
	b := MakeState()
	b.RootRotation = vector.MakeVector3(45, 0, 0)

	if got := a.RotationDelta(b); math.Abs(got-45) > 1e-9 {
		t.Errorf("RotationDelta = %v, expected 45 from root", got)
	}
}

func TestSimilarTo(t *testing.T) {
	a := MakeState()
	b := a.Clone()

	if !a.SimilarTo(b, 0.2) {
		t.Error("identical states should be similar")
	}

	b.RootRotation = vector.MakeVector3(180, 0, 0)
	if a.SimilarTo(b, 0.2) {
		t.Error("opposite rotation should not be similar at 0.2 tolerance")
	}
}

func TestWorldSnapshot(t *testing.T) {
	world := NewWorld()
	world.SetRoot(vector.MakeVector3(1, 0, 2), vector.MakeVector3(0, 90, 0))
	world.NewJoint("left_knee", vector.MakeVector3(0, 0.5, 0))
	world.NewMuscle("left_knee")
	world.NewContact("left_foot", "ground", vector.MakeNullVector3(), vector.MakeUpVector3())

	world.Activate("left_knee", 0.8)
	world.MoveJoint("left_knee", vector.MakeVector3(20, 0, 0), vector.MakeNullVector3())

	s := world.Snapshot()

	if got := s.RootPosition.GetX(); got != 1 {
		t.Errorf("root position x = %v", got)
	}
	if got := s.Muscle("left_knee"); got != 0.8 {
		t.Errorf("muscle activation = %v, expected 0.8", got)
	}
	if got := s.Joint("left_knee").Rotation.GetX(); got != 20 {
		t.Errorf("joint rotation x = %v, expected 20", got)
	}
	if s.ContactCount() != 1 {
		t.Errorf("contact count = %v, expected 1", s.ContactCount())
	}

	// snapshots must not alias live component data
	world.Activate("left_knee", 0.1)
	if got := s.Muscle("left_knee"); got != 0.8 {
		t.Errorf("snapshot aliased live data: %v", got)
	}
}
