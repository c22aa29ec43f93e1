package physsync

import (
	"cogentcore.org/core/math32"
	"github.com/milk9111/physdemo/descriptor"
	"github.com/milk9111/physdemo/physics"
	"github.com/milk9111/physdemo/scene"
)

type DeriveOptions struct {
	// ApplyWorldScale multiplies derived sizes by the node's scale. Off by
	// default: shapes are sized from local mesh bounds only.
	ApplyWorldScale bool
}

// DeriveShape computes a collision shape from the node's geometry bounds.
// It reports false for kinds with no shape (capsule, none, unknown) and for
// nodes without vertices.
func DeriveShape(node *scene.Node, kind descriptor.ShapeKind, opts DeriveOptions) (physics.Shape, bool) {
	if node == nil || node.Geometry.Empty() {
		return nil, false
	}
	switch kind {
	case descriptor.ShapeBox:
		box := node.Geometry.BoundingBox()
		half := box.Max.Sub(box.Min).MulScalar(0.5)
		if opts.ApplyWorldScale {
			s := absVec(node.Scale)
			half = math32.Vec3(half.X*s.X, half.Y*s.Y, half.Z*s.Z)
		}
		return physics.BoxShape{HalfExtents: half}, true
	case descriptor.ShapeSphere:
		r := node.Geometry.BoundingSphere().Radius
		if opts.ApplyWorldScale {
			s := absVec(node.Scale)
			r *= max(s.X, s.Y, s.Z)
		}
		return physics.SphereShape{Radius: r}, true
	default:
		return nil, false
	}
}

func absVec(v math32.Vector3) math32.Vector3 {
	return math32.Vec3(math32.Abs(v.X), math32.Abs(v.Y), math32.Abs(v.Z))
}
