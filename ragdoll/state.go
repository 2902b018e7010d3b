package ragdoll

import (
	"github.com/john-holland/physicscards/common/utils/number"
	"github.com/john-holland/physicscards/common/utils/trigo"
	"github.com/john-holland/physicscards/common/utils/vector"
)

// JointState is one joint's pose within a snapshot. Rotation is Euler degrees.
type JointState struct {
	Position        vector.Vector3 `json:"position"`
	Rotation        vector.Vector3 `json:"rotation"`
	AngularVelocity vector.Vector3 `json:"angularVelocity"`
}

type ContactPoint struct {
	BodyPart string         `json:"bodyPart"`
	Other    string         `json:"other"`
	Position vector.Vector3 `json:"position"`
	Normal   vector.Vector3 `json:"normal"`
}

// State is an immutable-per-tick snapshot of the ragdoll: root pose and
// velocities, per-joint poses, muscle activations and active contacts.
// Joint and muscle names follow the same canonical scheme the cards use;
// lookups for unknown names read as zero values rather than erroring.
type State struct {
	RootPosition        vector.Vector3 `json:"rootPosition"`
	RootRotation        vector.Vector3 `json:"rootRotation"`
	RootVelocity        vector.Vector3 `json:"rootVelocity"`
	RootAngularVelocity vector.Vector3 `json:"rootAngularVelocity"`

	Joints   map[string]JointState `json:"joints"`
	Muscles  map[string]float64    `json:"muscles"`
	Contacts []ContactPoint        `json:"contacts"`
}

func MakeState() State {
	return State{
		Joints:   make(map[string]JointState),
		Muscles:  make(map[string]float64),
		Contacts: make([]ContactPoint, 0),
	}
}

// Clone deep-copies the snapshot. Cards hold required/target copies; those
// copies must never alias the live snapshot.
func (s State) Clone() State {
	clone := s

	clone.Joints = make(map[string]JointState, len(s.Joints))
	for name, joint := range s.Joints {
		clone.Joints[name] = joint
	}

	clone.Muscles = make(map[string]float64, len(s.Muscles))
	for name, activation := range s.Muscles {
		clone.Muscles[name] = activation
	}

	clone.Contacts = make([]ContactPoint, len(s.Contacts))
	copy(clone.Contacts, s.Contacts)

	return clone
}

func (s State) Joint(name string) JointState {
	if s.Joints == nil {
		return JointState{}
	}
	return s.Joints[name]
}

func (s State) Muscle(name string) float64 {
	if s.Muscles == nil {
		return 0
	}
	return number.Clamp01(s.Muscles[name])
}

func (s State) ContactCount() int {
	return len(s.Contacts)
}

func (s State) RootSpeed() float64 {
	return s.RootVelocity.Mag()
}

func (s State) RootAngularSpeed() float64 {
	return s.RootAngularVelocity.Mag()
}

// RotationDelta is the root rotation angle delta plus the average per-joint
// rotation angle delta, in degrees. Only joints present in both snapshots
// participate; a joint missing on either side contributes nothing.
func (s State) RotationDelta(other State) float64 {
	delta := trigo.RotationDeltaDegrees(s.RootRotation, other.RootRotation)

	shared := 0
	jointSum := 0.0
	for name, joint := range s.Joints {
		otherJoint, ok := other.Joints[name]
		if !ok {
			continue
		}
		shared++
		jointSum += trigo.RotationDeltaDegrees(joint.Rotation, otherJoint.Rotation)
	}

	if shared > 0 {
		delta += jointSum / float64(shared)
	}

	return delta
}

// Distance scales used by the similarity measure; each maps its raw delta
// onto [0, 1] before blending.
const (
	distanceRotationScale = 180.0 // degrees
	distancePositionScale = 2.0   // meters
	distanceVelocityScale = 5.0   // m/s
)

// Distance is a normalized dissimilarity in [0, 1]: rotation-dominant, with
// root translation and velocity as secondary terms.
func (s State) Distance(other State) float64 {
	rot := number.Clamp01(s.RotationDelta(other) / distanceRotationScale)
	pos := number.Clamp01(s.RootPosition.DistanceTo(other.RootPosition) / distancePositionScale)
	vel := number.Clamp01(s.RootVelocity.Sub(other.RootVelocity).Mag() / distanceVelocityScale)

	return number.Clamp01(rot*0.5 + pos*0.3 + vel*0.2)
}

// SimilarTo reports whether the snapshots are within tolerance of each other.
func (s State) SimilarTo(other State, tolerance float64) bool {
	return s.Distance(other) <= tolerance
}

// Provider supplies a fresh snapshot of the live skeleton on demand.
type Provider interface {
	Snapshot() State
}
