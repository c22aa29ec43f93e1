// Package physicstest provides an in-memory physics.World that records what
// it is asked to do. Bodies only move when a test moves them.
package physicstest

import (
	"fmt"
	"slices"

	"cogentcore.org/core/math32"
	"github.com/milk9111/physdemo/physics"
)

type Body struct {
	Def       physics.BodyDef
	transform physics.Transform
	// NoMotionState makes MotionState report false.
	NoMotionState bool
	removed       bool
}

func (b *Body) Kind() physics.BodyKind { return b.Def.Kind }
func (b *Body) Mass() float32          { return b.Def.Mass }

func (b *Body) MotionState() (physics.Transform, bool) {
	if b.NoMotionState {
		return physics.Transform{}, false
	}
	return b.transform, true
}

func (b *Body) SetTransform(t physics.Transform) {
	b.transform = t
}

// Move translates the body by delta, as a simulation step would.
func (b *Body) Move(delta math32.Vector3) {
	b.transform.Origin = b.transform.Origin.Add(delta)
}

func (b *Body) Removed() bool { return b.removed }

type Constraint struct {
	Def               physics.ConstraintDef
	DisableCollisions bool
}

func (c *Constraint) Kind() physics.ConstraintKind { return c.Def.Kind }

type World struct {
	Bodies      []*Body
	Constraints []*Constraint
	Steps       []float64
	// OnStep runs once per Step call after it is recorded.
	OnStep func(dt float64)
	// RejectConstraint, when set, fails AddConstraint with its result.
	RejectConstraint func(def physics.ConstraintDef) error
	// RejectBody, when set, fails AddBody with its result.
	RejectBody func(def physics.BodyDef) error

	gravity math32.Vector3
}

var _ physics.World = (*World)(nil)

func NewWorld() *World {
	return &World{}
}

func (w *World) AddBody(def physics.BodyDef) (physics.Body, error) {
	if def.Shape == nil {
		return nil, fmt.Errorf("physicstest: add body %q: %w", def.Name, physics.ErrUnsupportedShape)
	}
	if w.RejectBody != nil {
		if err := w.RejectBody(def); err != nil {
			return nil, err
		}
	}
	b := &Body{Def: def, transform: def.Transform}
	w.Bodies = append(w.Bodies, b)
	return b, nil
}

func (w *World) RemoveBody(pb physics.Body) error {
	b, ok := pb.(*Body)
	if !ok {
		return physics.ErrUnknownBody
	}
	idx := slices.Index(w.Bodies, b)
	if idx < 0 {
		return physics.ErrUnknownBody
	}
	w.Bodies = slices.Delete(w.Bodies, idx, idx+1)
	b.removed = true
	return nil
}

func (w *World) AddConstraint(def physics.ConstraintDef, disableCollisions bool) (physics.Constraint, error) {
	if def.Kind != physics.ConstraintPoint && def.Kind != physics.ConstraintHinge {
		return nil, physics.ErrUnsupportedConstraint
	}
	if w.RejectConstraint != nil {
		if err := w.RejectConstraint(def); err != nil {
			return nil, err
		}
	}
	c := &Constraint{Def: def, DisableCollisions: disableCollisions}
	w.Constraints = append(w.Constraints, c)
	return c, nil
}

func (w *World) RemoveConstraint(pc physics.Constraint) error {
	c, ok := pc.(*Constraint)
	if !ok {
		return physics.ErrUnsupportedConstraint
	}
	idx := slices.Index(w.Constraints, c)
	if idx < 0 {
		return physics.ErrUnsupportedConstraint
	}
	w.Constraints = slices.Delete(w.Constraints, idx, idx+1)
	return nil
}

func (w *World) Step(dt float64, maxSubSteps int) int {
	w.Steps = append(w.Steps, dt)
	if w.OnStep != nil {
		w.OnStep(dt)
	}
	return 1
}

func (w *World) SetGravity(g math32.Vector3) { w.gravity = g }
func (w *World) Gravity() math32.Vector3     { return w.gravity }

// BodyNamed returns the first body created with the given name.
func (w *World) BodyNamed(name string) (*Body, bool) {
	for _, b := range w.Bodies {
		if b.Def.Name == name {
			return b, true
		}
	}
	return nil, false
}
