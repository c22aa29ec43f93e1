package scene

import "cogentcore.org/core/math32"

// Geometry is a mesh's vertex positions in local space plus the edges used
// for wireframe drawing.
type Geometry struct {
	Positions []math32.Vector3
	Lines     [][2]int
}

// BoundingBox returns the axis-aligned bounds of all vertices. An empty
// geometry yields an empty box.
func (g *Geometry) BoundingBox() math32.Box3 {
	box := math32.B3Empty()
	if g == nil {
		return box
	}
	for _, p := range g.Positions {
		box.ExpandByPoint(p)
	}
	return box
}

// BoundingSphere is centered on the bounding box and reaches the farthest vertex.
func (g *Geometry) BoundingSphere() math32.Sphere {
	if g == nil || len(g.Positions) == 0 {
		return math32.Sphere{}
	}
	center := g.BoundingBox().Center()
	var maxSq float32
	for _, p := range g.Positions {
		d := p.Sub(center)
		if sq := d.Dot(d); sq > maxSq {
			maxSq = sq
		}
	}
	return math32.Sphere{Center: center, Radius: math32.Sqrt(maxSq)}
}

// Empty reports whether the geometry has no vertices.
func (g *Geometry) Empty() bool {
	return g == nil || len(g.Positions) == 0
}

// NewBoxGeometry returns a box centered on the origin with the given full sizes.
func NewBoxGeometry(width, height, depth float32) *Geometry {
	hx, hy, hz := width/2, height/2, depth/2
	g := &Geometry{}
	for i := 0; i < 8; i++ {
		x, y, z := -hx, -hy, -hz
		if i&1 != 0 {
			x = hx
		}
		if i&2 != 0 {
			y = hy
		}
		if i&4 != 0 {
			z = hz
		}
		g.Positions = append(g.Positions, math32.Vec3(x, y, z))
	}
	// corners differing in exactly one bit share an edge
	for a := 0; a < 8; a++ {
		for _, bit := range []int{1, 2, 4} {
			if b := a | bit; b != a {
				g.Lines = append(g.Lines, [2]int{a, b})
			}
		}
	}
	return g
}

// NewPlaneGeometry returns a horizontal plane (XZ) centered on the origin.
func NewPlaneGeometry(width, depth float32) *Geometry {
	hx, hz := width/2, depth/2
	return &Geometry{
		Positions: []math32.Vector3{
			math32.Vec3(-hx, 0, -hz),
			math32.Vec3(hx, 0, -hz),
			math32.Vec3(hx, 0, hz),
			math32.Vec3(-hx, 0, hz),
		},
		Lines: [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
	}
}

// NewSphereGeometry returns a latitude/longitude sphere. Segments below 3
// are raised to 3.
func NewSphereGeometry(radius float32, segments int) *Geometry {
	if segments < 3 {
		segments = 3
	}
	rings := segments / 2
	if rings < 2 {
		rings = 2
	}
	g := &Geometry{}
	for r := 0; r <= rings; r++ {
		phi := math32.Pi * float32(r) / float32(rings)
		for s := 0; s < segments; s++ {
			theta := 2 * math32.Pi * float32(s) / float32(segments)
			g.Positions = append(g.Positions, math32.Vec3(
				radius*math32.Sin(phi)*math32.Cos(theta),
				radius*math32.Cos(phi),
				radius*math32.Sin(phi)*math32.Sin(theta),
			))
		}
	}
	for r := 0; r <= rings; r++ {
		for s := 0; s < segments; s++ {
			i := r*segments + s
			g.Lines = append(g.Lines, [2]int{i, r*segments + (s+1)%segments})
			if r < rings {
				g.Lines = append(g.Lines, [2]int{i, i + segments})
			}
		}
	}
	return g
}

// NewPointsGeometry wraps explicit vertices; consecutive points are joined
// as a line strip for drawing.
func NewPointsGeometry(points []math32.Vector3) *Geometry {
	g := &Geometry{Positions: append([]math32.Vector3(nil), points...)}
	for i := 1; i < len(points); i++ {
		g.Lines = append(g.Lines, [2]int{i - 1, i})
	}
	return g
}
