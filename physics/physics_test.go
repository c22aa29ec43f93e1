package physics

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestLocalInertia(t *testing.T) {
	cases := []struct {
		name  string
		shape Shape
		mass  float32
		want  math32.Vector3
	}{
		{"static_box", BoxShape{HalfExtents: math32.Vec3(1, 1, 1)}, 0, math32.Vector3{}},
		{"unit_cube", BoxShape{HalfExtents: math32.Vec3(0.5, 0.5, 0.5)}, 12, math32.Vec3(2, 2, 2)},
		{"sphere", SphereShape{Radius: 1}, 5, math32.Vec3(2, 2, 2)},
		{"nil_shape", nil, 1, math32.Vector3{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := LocalInertia(c.shape, c.mass)
			assert.InDelta(t, c.want.X, got.X, 1e-5)
			assert.InDelta(t, c.want.Y, got.Y, 1e-5)
			assert.InDelta(t, c.want.Z, got.Z, 1e-5)
		})
	}
}

func TestHingeAxis(t *testing.T) {
	axis := HingeAxis(math32.NewQuat(0, 0, 0, 1))
	assert.InDelta(t, 1, axis.Z, 1e-6)

	// quarter turn about X maps +Z onto -Y
	q := math32.NewQuatAxisAngle(math32.Vec3(1, 0, 0), math32.Pi/2)
	axis = HingeAxis(q)
	assert.InDelta(t, 0, axis.X, 1e-6)
	assert.InDelta(t, -1, axis.Y, 1e-6)
	assert.InDelta(t, 0, axis.Z, 1e-6)
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "dynamic", BodyDynamic.String())
	assert.Equal(t, "box", ShapeBox.String())
	assert.Equal(t, "hinge", ConstraintHinge.String())
}
