package cpworld

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physdemo/physics"
)

// Constraint wraps a cp pivot joint. In the plane a point constraint and a
// hinge about Z are the same joint.
type Constraint struct {
	kind  physics.ConstraintKind
	joint *cp.Constraint
	a, b  *Body
}

func (c *Constraint) Kind() physics.ConstraintKind { return c.kind }

func (w *World) AddConstraint(def physics.ConstraintDef, disableCollisions bool) (physics.Constraint, error) {
	a, err := w.own(def.BodyA)
	if err != nil {
		return nil, fmt.Errorf("cpworld: constraint body A: %w", err)
	}
	var b *Body
	if def.BodyB != nil {
		if b, err = w.own(def.BodyB); err != nil {
			return nil, fmt.Errorf("cpworld: constraint body B: %w", err)
		}
	}

	switch def.Kind {
	case physics.ConstraintPoint:
	case physics.ConstraintHinge:
		if !planar(a.worldAxis(def.AxisA)) {
			return nil, fmt.Errorf("%w: body A axis %v", ErrAxisNotPlanar, def.AxisA)
		}
		if b != nil && !planar(b.worldAxis(def.AxisB)) {
			return nil, fmt.Errorf("%w: body B axis %v", ErrAxisNotPlanar, def.AxisB)
		}
	default:
		return nil, fmt.Errorf("cpworld: %w: %s", physics.ErrUnsupportedConstraint, def.Kind)
	}

	anchorA := a.localAnchor(def.PivotA)
	var joint *cp.Constraint
	if b == nil {
		joint = cp.NewPivotJoint2(a.body, w.space.StaticBody, anchorA, a.body.LocalToWorld(anchorA))
	} else {
		joint = cp.NewPivotJoint2(a.body, b.body, anchorA, b.localAnchor(def.PivotB))
	}
	joint.SetCollideBodies(!disableCollisions)
	w.space.AddConstraint(joint)

	c := &Constraint{kind: def.Kind, joint: joint, a: a, b: b}
	w.constraints[c] = struct{}{}
	return c, nil
}

func (w *World) RemoveConstraint(pc physics.Constraint) error {
	c, ok := pc.(*Constraint)
	if !ok {
		return physics.ErrUnsupportedConstraint
	}
	if _, ok := w.constraints[c]; !ok {
		return nil
	}
	w.space.RemoveConstraint(c.joint)
	delete(w.constraints, c)
	return nil
}

func (w *World) own(pb physics.Body) (*Body, error) {
	b, ok := pb.(*Body)
	if !ok || b == nil || b.world != w {
		return nil, physics.ErrUnknownBody
	}
	return b, nil
}

func planar(axis math32.Vector3) bool {
	l := axis.Length()
	if l == 0 {
		return false
	}
	return math32.Abs(axis.X)/l <= axisTolerance && math32.Abs(axis.Y)/l <= axisTolerance
}
