package cpworld

import (
	"math"

	"cogentcore.org/core/math32"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physdemo/physics"
)

const swingEpsilon = 1e-7

var zAxis = math32.Vec3(0, 0, 1)

// Body is a cp body plus the out-of-plane state cp does not simulate.
type Body struct {
	world        *World
	body         *cp.Body
	shape        *cp.Shape
	kind         physics.BodyKind
	mass         float32
	alwaysActive bool

	z     float32
	swing *math32.Quat // rotation left after removing the twist about Z

	// pending pose of a kinematic body, reached over the next Step
	target      *cp.Vector
	targetAngle float64
}

var _ physics.Body = (*Body)(nil)

func (b *Body) Kind() physics.BodyKind { return b.kind }
func (b *Body) Mass() float32          { return b.mass }

func (b *Body) MotionState() (physics.Transform, bool) {
	if b == nil || b.world == nil || b.body == nil {
		return physics.Transform{}, false
	}
	x, y := b.world.fromCP(b.body.Position())
	rot := twist(b.body.Angle())
	if b.swing != nil {
		rot = rot.Mul(*b.swing)
	}
	return physics.Transform{Origin: math32.Vec3(x, y, b.z), Rotation: rot}, true
}

// SetTransform moves the body. Static bodies are re-added to the space so the
// collision index sees the new place. Kinematic bodies move over the next
// Step with the velocity that reaches t, so contacts carry their momentum.
func (b *Body) SetTransform(t physics.Transform) {
	if b == nil || b.world == nil {
		return
	}
	switch b.kind {
	case physics.BodyStatic:
		space := b.world.space
		space.RemoveShape(b.shape)
		b.place(t)
		space.AddShape(b.shape)
	case physics.BodyKinematic:
		angle, swing := splitTwist(t.Rotation)
		b.z = t.Origin.Z
		b.swing = swing
		pos := b.world.toCP(t.Origin)
		b.target = &pos
		b.targetAngle = b.body.Angle() + wrapAngle(angle-b.body.Angle())
	default:
		b.place(t)
	}
}

// drive sets the velocity that moves a kinematic body onto its pending pose
// in span seconds.
func (b *Body) drive(span float64) {
	if b.target == nil || span <= 0 {
		return
	}
	v := b.target.Sub(b.body.Position()).Mult(1 / span)
	b.body.SetVelocity(v.X, v.Y)
	b.body.SetAngularVelocity((b.targetAngle - b.body.Angle()) / span)
}

// settle snaps a kinematic body onto its pending pose after a Step and stops it.
func (b *Body) settle() {
	if b.target == nil {
		return
	}
	b.body.SetPosition(*b.target)
	b.body.SetAngle(b.targetAngle)
	b.body.SetVelocity(0, 0)
	b.body.SetAngularVelocity(0)
	b.target = nil
}

func (b *Body) place(t physics.Transform) {
	angle, swing := splitTwist(t.Rotation)
	b.z = t.Origin.Z
	b.swing = swing
	b.body.SetPosition(b.world.toCP(t.Origin))
	b.body.SetAngle(angle)
}

// localAnchor converts a body-local pivot into cp's local frame.
func (b *Body) localAnchor(p math32.Vector3) cp.Vector {
	if b.swing != nil {
		p = p.MulQuat(*b.swing)
	}
	return b.world.toCP(p)
}

// worldAxis returns a body-local axis in world space.
func (b *Body) worldAxis(axis math32.Vector3) math32.Vector3 {
	t, ok := b.MotionState()
	if !ok {
		return axis
	}
	return axis.MulQuat(t.Rotation)
}

// wrapAngle maps a into [-pi, pi).
func wrapAngle(a float64) float64 {
	return a - 2*math.Pi*math.Floor((a+math.Pi)/(2*math.Pi))
}

func twist(angle float64) math32.Quat {
	if angle == 0 {
		return math32.NewQuat(0, 0, 0, 1)
	}
	return math32.NewQuatAxisAngle(zAxis, float32(angle))
}

// splitTwist decomposes q into a rotation about Z (returned as an angle) and
// the remaining swing, which is nil when q is a pure Z rotation.
func splitTwist(q math32.Quat) (float64, *math32.Quat) {
	n := math32.Sqrt(q.Z*q.Z + q.W*q.W)
	if n < swingEpsilon {
		// half-turn about an axis in the XY plane: no twist component
		s := q
		return 0, &s
	}
	angle := 2 * float64(math32.Atan2(q.Z, q.W))
	if math32.Abs(q.X) < swingEpsilon && math32.Abs(q.Y) < swingEpsilon {
		return angle, nil
	}
	inv := math32.NewQuat(0, 0, -q.Z/n, q.W/n)
	s := inv.Mul(q)
	return angle, &s
}
