// Package physics declares the rigid-body engine surface the sync layer
// depends on. Engines plug in by implementing World and Body.
package physics

import (
	"errors"

	"cogentcore.org/core/math32"
)

var (
	ErrUnsupportedShape      = errors.New("physics: unsupported shape")
	ErrUnsupportedConstraint = errors.New("physics: unsupported constraint")
	ErrUnknownBody           = errors.New("physics: body does not belong to this world")
)

// Transform is a world-space origin plus orientation.
type Transform struct {
	Origin   math32.Vector3
	Rotation math32.Quat
}

func IdentityTransform() Transform {
	return Transform{Rotation: math32.NewQuat(0, 0, 0, 1)}
}

type BodyKind int

const (
	BodyStatic BodyKind = iota
	BodyDynamic
	BodyKinematic
)

func (k BodyKind) String() string {
	switch k {
	case BodyStatic:
		return "static"
	case BodyDynamic:
		return "dynamic"
	case BodyKinematic:
		return "kinematic"
	default:
		return "unknown"
	}
}

// BodyDef describes a body to add to a world.
type BodyDef struct {
	Name         string
	Kind         BodyKind
	Mass         float32
	Inertia      math32.Vector3
	Shape        Shape
	Transform    Transform
	Friction     float32
	Restitution  float32
	AlwaysActive bool
}

// Body is a rigid body owned by a World.
type Body interface {
	Kind() BodyKind
	Mass() float32
	// MotionState returns the current world transform. ok is false while
	// the engine has no state for the body yet.
	MotionState() (t Transform, ok bool)
	// SetTransform teleports the body. Used for kinematic motion.
	SetTransform(t Transform)
}

// Constraint is an engine constraint handle.
type Constraint interface {
	Kind() ConstraintKind
}

// World is a rigid-body dynamics world.
type World interface {
	AddBody(def BodyDef) (Body, error)
	RemoveBody(b Body) error
	AddConstraint(def ConstraintDef, disableCollisions bool) (Constraint, error)
	RemoveConstraint(c Constraint) error
	// Step advances the world by dt seconds using at most maxSubSteps
	// internal steps and returns the number of steps taken.
	Step(dt float64, maxSubSteps int) int
	SetGravity(g math32.Vector3)
	Gravity() math32.Vector3
}
