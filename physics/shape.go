package physics

import "cogentcore.org/core/math32"

type ShapeKind int

const (
	ShapeBox ShapeKind = iota + 1
	ShapeSphere
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// Shape is a collision shape in body-local space.
type Shape interface {
	Kind() ShapeKind
}

// BoxShape is an axis-aligned box around the body origin.
type BoxShape struct {
	HalfExtents math32.Vector3
}

func (BoxShape) Kind() ShapeKind { return ShapeBox }

type SphereShape struct {
	Radius float32
}

func (SphereShape) Kind() ShapeKind { return ShapeSphere }

// LocalInertia returns the principal moments of inertia of a solid shape.
// Zero (or negative) mass yields zero inertia, which marks a body static.
func LocalInertia(s Shape, mass float32) math32.Vector3 {
	if mass <= 0 || s == nil {
		return math32.Vector3{}
	}
	switch sh := s.(type) {
	case BoxShape:
		lx := 2 * sh.HalfExtents.X
		ly := 2 * sh.HalfExtents.Y
		lz := 2 * sh.HalfExtents.Z
		k := mass / 12
		return math32.Vec3(k*(ly*ly+lz*lz), k*(lx*lx+lz*lz), k*(lx*lx+ly*ly))
	case SphereShape:
		i := 0.4 * mass * sh.Radius * sh.Radius
		return math32.Vec3(i, i, i)
	default:
		return math32.Vector3{}
	}
}
