package render

import (
	"image/color"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physdemo/scene"
	"github.com/stretchr/testify/assert"
)

func TestProjectorCentersTarget(t *testing.T) {
	cam := scene.NewCamera("cam", 90, 2, 0.1, 100)
	cam.Position = math32.Vec3(0, 0, 10)
	cam.Target = math32.Vec3(0, 0, 0)
	p := NewProjector(cam, 800, 400)

	x, y, ok := p.Project(math32.Vec3(0, 0, 0))
	assert.True(t, ok)
	assert.InDelta(t, 400, x, 1e-3)
	assert.InDelta(t, 200, y, 1e-3)

	// fov 90 puts y=10 at distance 10 on the top edge
	_, y, ok = p.Project(math32.Vec3(0, 10, 0))
	assert.True(t, ok)
	assert.InDelta(t, 0, y, 1e-2)

	x, _, ok = p.Project(math32.Vec3(5, 0, 0))
	assert.True(t, ok)
	assert.Greater(t, x, 400.0, "+X is to the right")

	_, _, ok = p.Project(math32.Vec3(0, 0, 20))
	assert.False(t, ok, "behind the camera")
}

func TestProjectorLookingDown(t *testing.T) {
	cam := scene.NewCamera("top", 60, 1, 0.1, 100)
	cam.Position = math32.Vec3(0, 10, 0)
	cam.Target = math32.Vec3(0, 0, 0)
	p := NewProjector(cam, 100, 100)

	x, y, ok := p.Project(math32.Vec3(0, 0, 0))
	assert.True(t, ok)
	assert.InDelta(t, 50, x, 1e-3)
	assert.InDelta(t, 50, y, 1e-3)
}

func TestLighting(t *testing.T) {
	assert.Equal(t, float32(1), brightness(nil))
	lights := []*scene.Light{
		{Kind: scene.LightAmbient, Intensity: 0.2},
		{Kind: scene.LightDirectional, Intensity: 0.5, CastShadow: true, Position: math32.Vec3(0, 2, 0)},
	}
	assert.InDelta(t, 0.5, brightness(lights), 1e-6)

	dir, ok := shadowLight(lights)
	assert.True(t, ok)
	assert.Equal(t, math32.Vec3(0, 1, 0), dir)

	_, ok = shadowLight(lights[:1])
	assert.False(t, ok)

	assert.Equal(t, color.RGBA{R: 50, G: 100, B: 0, A: 255}, shade(color.RGBA{R: 100, G: 200, A: 255}, 0.5))
}

func TestCPToScene(t *testing.T) {
	assert.Equal(t, math32.Vec3(1, -0.5, 0), cpToScene(cp.Vector{X: 100, Y: -50}, 100))
	assert.Equal(t, color.NRGBA{R: 255, G: 0, B: 127, A: 255}, toNRGBA(cp.FColor{R: 2, G: -1, B: 0.5, A: 1}))
}
