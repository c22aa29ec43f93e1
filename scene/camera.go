package scene

import "cogentcore.org/core/math32"

// Camera is a perspective camera. The renderer projects the scene with the
// view extents computed by UpdateProjection at the target distance.
type Camera struct {
	Name     string
	Position math32.Vector3
	Target   math32.Vector3
	FOV      float32 // vertical, degrees
	Aspect   float32
	Near     float32
	Far      float32

	halfWidth  float32
	halfHeight float32
}

func NewCamera(name string, fov, aspect, near, far float32) *Camera {
	c := &Camera{
		Name:   SanitizeName(name),
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
	c.UpdateProjection()
	return c
}

// SetAspect sets width/height and recomputes the projection.
func (c *Camera) SetAspect(width, height float64) {
	if c == nil || width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width / height)
	c.UpdateProjection()
}

// UpdateProjection recomputes the visible half extents at the target distance.
func (c *Camera) UpdateProjection() {
	if c == nil {
		return
	}
	dist := c.Position.Sub(c.Target).Length()
	if dist <= 0 {
		dist = 1
	}
	c.halfHeight = dist * math32.Tan(math32.DegToRad(c.FOV)/2)
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.halfWidth = c.halfHeight * aspect
}

// ViewExtents returns the half width and half height of the view at the target.
func (c *Camera) ViewExtents() (halfWidth, halfHeight float32) {
	if c == nil {
		return 0, 0
	}
	return c.halfWidth, c.halfHeight
}
