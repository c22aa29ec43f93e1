package physics

import "cogentcore.org/core/math32"

type ConstraintKind int

const (
	ConstraintPoint ConstraintKind = iota + 1
	ConstraintHinge
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintPoint:
		return "point"
	case ConstraintHinge:
		return "hinge"
	default:
		return "unknown"
	}
}

// ConstraintDef describes a point or hinge constraint. A nil BodyB anchors
// BodyA to the world; PivotB and AxisB are then ignored and the engine pins
// BodyA's pivot where it currently is.
type ConstraintDef struct {
	Kind   ConstraintKind
	BodyA  Body
	BodyB  Body
	PivotA math32.Vector3
	PivotB math32.Vector3
	AxisA  math32.Vector3
	AxisB  math32.Vector3
}

// HingeAxis rotates the canonical local Z axis by rot.
func HingeAxis(rot math32.Quat) math32.Vector3 {
	return math32.Vec3(0, 0, 1).MulQuat(rot)
}
