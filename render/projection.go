package render

import (
	"cogentcore.org/core/math32"
	"github.com/milk9111/physdemo/scene"
)

// Projector maps world points to screen pixels through a perspective camera.
type Projector struct {
	eye   math32.Vector3
	right math32.Vector3
	up    math32.Vector3
	fwd   math32.Vector3
	focal float32
	cx    float32
	cy    float32
	near  float32
}

// NewProjector builds a projector for a screen of the given size. The
// camera looks at its target with world +Y as up.
func NewProjector(cam *scene.Camera, width, height int) Projector {
	fwd := cam.Target.Sub(cam.Position)
	if fwd.Length() == 0 {
		fwd = math32.Vec3(0, 0, -1)
	}
	fwd = fwd.Normal()
	worldUp := math32.Vec3(0, 1, 0)
	if math32.Abs(fwd.Dot(worldUp)) > 0.999 {
		worldUp = math32.Vec3(0, 0, -1)
	}
	right := fwd.Cross(worldUp).Normal()
	up := right.Cross(fwd)

	fov := cam.FOV
	if fov <= 0 {
		fov = 60
	}
	near := cam.Near
	if near <= 0 {
		near = 0.01
	}
	return Projector{
		eye:   cam.Position,
		right: right,
		up:    up,
		fwd:   fwd,
		focal: float32(height) / 2 / math32.Tan(math32.DegToRad(fov)/2),
		cx:    float32(width) / 2,
		cy:    float32(height) / 2,
		near:  near,
	}
}

// Project returns the pixel position of p. ok is false for points behind
// the near plane.
func (p Projector) Project(v math32.Vector3) (x, y float64, ok bool) {
	d := v.Sub(p.eye)
	z := d.Dot(p.fwd)
	if z < p.near {
		return 0, 0, false
	}
	sx := p.cx + d.Dot(p.right)*p.focal/z
	sy := p.cy - d.Dot(p.up)*p.focal/z
	return float64(sx), float64(sy), true
}
