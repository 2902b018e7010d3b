package ragdoll

import (
	"github.com/bytearena/ecs"

	"github.com/john-holland/physicscards/common/utils/number"
	"github.com/john-holland/physicscards/common/utils/vector"
)

// World is an ecs-backed skeleton: one entity per joint, muscle and contact.
// It implements Provider; Snapshot assembles a State from the component views
// every call, so snapshots never alias live component data.
type World struct {
	manager *ecs.Manager

	jointComponent   *ecs.Component
	muscleComponent  *ecs.Component
	contactComponent *ecs.Component

	jointsView   *ecs.View
	musclesView  *ecs.View
	contactsView *ecs.View

	rootPosition        vector.Vector3
	rootRotation        vector.Vector3
	rootVelocity        vector.Vector3
	rootAngularVelocity vector.Vector3
}

func NewWorld() *World {
	manager := ecs.NewManager()

	world := &World{
		manager: manager,

		jointComponent:   manager.NewComponent(),
		muscleComponent:  manager.NewComponent(),
		contactComponent: manager.NewComponent(),
	}

	world.jointsView = manager.CreateView(world.jointComponent)
	world.musclesView = manager.CreateView(world.muscleComponent)
	world.contactsView = manager.CreateView(world.contactComponent)

	return world
}

type Joint struct {
	name            string
	position        vector.Vector3
	rotation        vector.Vector3
	angularVelocity vector.Vector3
}

func (w *World) CastJoint(data interface{}) *Joint {
	return data.(*Joint)
}

func (j Joint) GetName() string {
	return j.name
}

func (j Joint) GetPosition() vector.Vector3 {
	return j.position
}

func (j *Joint) SetPosition(position vector.Vector3) *Joint {
	j.position = position
	return j
}

func (j Joint) GetRotation() vector.Vector3 {
	return j.rotation
}

func (j *Joint) SetRotation(rotation vector.Vector3) *Joint {
	j.rotation = rotation
	return j
}

func (j Joint) GetAngularVelocity() vector.Vector3 {
	return j.angularVelocity
}

func (j *Joint) SetAngularVelocity(angularVelocity vector.Vector3) *Joint {
	j.angularVelocity = angularVelocity
	return j
}

type Muscle struct {
	group      string
	activation float64
}

func (w *World) CastMuscle(data interface{}) *Muscle {
	return data.(*Muscle)
}

func (m Muscle) GetGroup() string {
	return m.group
}

func (m Muscle) GetActivation() float64 {
	return m.activation
}

func (m *Muscle) SetActivation(activation float64) *Muscle {
	m.activation = number.Clamp01(activation)
	return m
}

type Contact struct {
	bodyPart string
	other    string
	position vector.Vector3
	normal   vector.Vector3
}

func (w *World) CastContact(data interface{}) *Contact {
	return data.(*Contact)
}

func (w *World) NewJoint(name string, position vector.Vector3) *ecs.Entity {
	return w.manager.NewEntity().
		AddComponent(w.jointComponent, &Joint{
			name:     name,
			position: position,
		})
}

func (w *World) NewMuscle(group string) *ecs.Entity {
	return w.manager.NewEntity().
		AddComponent(w.muscleComponent, &Muscle{
			group: group,
		})
}

func (w *World) NewContact(bodyPart string, other string, position vector.Vector3, normal vector.Vector3) *ecs.Entity {
	return w.manager.NewEntity().
		AddComponent(w.contactComponent, &Contact{
			bodyPart: bodyPart,
			other:    other,
			position: position,
			normal:   normal,
		})
}

func (w *World) SetRoot(position vector.Vector3, rotation vector.Vector3) *World {
	w.rootPosition = position
	w.rootRotation = rotation
	return w
}

func (w *World) SetRootVelocity(velocity vector.Vector3, angularVelocity vector.Vector3) *World {
	w.rootVelocity = velocity
	w.rootAngularVelocity = angularVelocity
	return w
}

// Activate drives one muscle group; unknown groups are ignored.
func (w *World) Activate(group string, activation float64) {
	for _, entityresult := range w.musclesView.Get() {
		muscleAspect := w.CastMuscle(entityresult.Components[w.muscleComponent])
		if muscleAspect.GetGroup() == group {
			muscleAspect.SetActivation(activation)
		}
	}
}

// MoveJoint updates one joint's pose; unknown joints are ignored.
func (w *World) MoveJoint(name string, rotation vector.Vector3, angularVelocity vector.Vector3) {
	for _, entityresult := range w.jointsView.Get() {
		jointAspect := w.CastJoint(entityresult.Components[w.jointComponent])
		if jointAspect.GetName() == name {
			jointAspect.SetRotation(rotation).SetAngularVelocity(angularVelocity)
		}
	}
}

func (w *World) Snapshot() State {
	s := MakeState()

	s.RootPosition = w.rootPosition
	s.RootRotation = w.rootRotation
	s.RootVelocity = w.rootVelocity
	s.RootAngularVelocity = w.rootAngularVelocity

	for _, entityresult := range w.jointsView.Get() {
		jointAspect := w.CastJoint(entityresult.Components[w.jointComponent])
		s.Joints[jointAspect.GetName()] = JointState{
			Position:        jointAspect.GetPosition(),
			Rotation:        jointAspect.GetRotation(),
			AngularVelocity: jointAspect.GetAngularVelocity(),
		}
	}

	for _, entityresult := range w.musclesView.Get() {
		muscleAspect := w.CastMuscle(entityresult.Components[w.muscleComponent])
		s.Muscles[muscleAspect.GetGroup()] = muscleAspect.GetActivation()
	}

	for _, entityresult := range w.contactsView.Get() {
		contactAspect := w.CastContact(entityresult.Components[w.contactComponent])
		s.Contacts = append(s.Contacts, ContactPoint{
			BodyPart: contactAspect.bodyPart,
			Other:    contactAspect.other,
			Position: contactAspect.position,
			Normal:   contactAspect.normal,
		})
	}

	return s
}
