package scene

import (
	"image/color"

	"cogentcore.org/core/math32"
)

// Node is a named renderable object in the scene graph.
type Node struct {
	Name     string
	Position math32.Vector3
	Rotation math32.Quat
	Scale    math32.Vector3
	Geometry *Geometry
	Color    color.RGBA

	CastShadow    bool
	ReceiveShadow bool
}

// NewNode creates a node at the origin with identity rotation and unit scale.
// The name is sanitized.
func NewNode(name string, geom *Geometry) *Node {
	return &Node{
		Name:     SanitizeName(name),
		Rotation: math32.NewQuat(0, 0, 0, 1),
		Scale:    math32.Vec3(1, 1, 1),
		Geometry: geom,
		Color:    color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff},
	}
}

// LocalToWorld transforms a point from the node's local space.
func (n *Node) LocalToWorld(p math32.Vector3) math32.Vector3 {
	scaled := math32.Vec3(p.X*n.Scale.X, p.Y*n.Scale.Y, p.Z*n.Scale.Z)
	return scaled.MulQuat(n.Rotation).Add(n.Position)
}
