package scene

import (
	"image/color"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Cube", "Cube"},
		{"Cube.001", "Cube001"},
		{"my box", "my_box"},
		{"a/b:c[d]\\e", "abcde"},
		{"tab\there", "tab_here"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, SanitizeName(c.in))
		})
	}
}

func TestSceneAddAndLookup(t *testing.T) {
	sc := New()
	a := NewNode("Cube.001", NewBoxGeometry(1, 1, 1))
	b := NewNode("Sphere", NewSphereGeometry(1, 8))

	require.True(t, sc.Add(a))
	require.True(t, sc.Add(b))
	assert.False(t, sc.Add(a), "adding twice should be a no-op")
	assert.Equal(t, 2, sc.Len())

	got, ok := sc.Node("Cube.001")
	require.True(t, ok)
	assert.Same(t, a, got)

	got, ok = sc.Node("Cube001")
	require.True(t, ok)
	assert.Same(t, a, got)

	assert.True(t, sc.Remove(a))
	assert.False(t, sc.Contains(a))
	_, ok = sc.Node("Cube001")
	assert.False(t, ok)
	assert.False(t, sc.Remove(a))
}

func TestSceneDuplicateNamesKeepFirst(t *testing.T) {
	sc := New()
	first := NewNode("Box", nil)
	second := NewNode("Box", nil)
	sc.Add(first)
	sc.Add(second)

	got, _ := sc.Node("Box")
	assert.Same(t, first, got)

	sc.Remove(first)
	got, ok := sc.Node("Box")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestGeometryBounds(t *testing.T) {
	t.Run("box", func(t *testing.T) {
		g := NewBoxGeometry(2, 4, 6)
		bb := g.BoundingBox()
		assert.Equal(t, math32.Vec3(-1, -2, -3), bb.Min)
		assert.Equal(t, math32.Vec3(1, 2, 3), bb.Max)
		assert.Len(t, g.Lines, 12)
	})

	t.Run("sphere_radius", func(t *testing.T) {
		g := NewPointsGeometry([]math32.Vector3{
			math32.Vec3(-2, 0, 0),
			math32.Vec3(2, 0, 0),
			math32.Vec3(0, 1, 0),
		})
		s := g.BoundingSphere()
		assert.Equal(t, math32.Vec3(0, 0.5, 0), s.Center)
		assert.InDelta(t, 2.0615528, s.Radius, 1e-5)
	})

	t.Run("empty", func(t *testing.T) {
		var g *Geometry
		assert.True(t, g.Empty())
		assert.True(t, g.BoundingBox().IsEmpty())
		assert.Equal(t, float32(0), (&Geometry{}).BoundingSphere().Radius)
	})
}

func TestCameraAspect(t *testing.T) {
	cam := NewCamera("cam", 90, 1, 0.1, 100)
	cam.Position = math32.Vec3(0, 0, 2)
	cam.UpdateProjection()

	hw, hh := cam.ViewExtents()
	assert.InDelta(t, 2, hh, 1e-5)
	assert.InDelta(t, 2, hw, 1e-5)

	cam.SetAspect(1600, 800)
	hw, hh = cam.ViewExtents()
	assert.InDelta(t, 2, cam.Aspect, 1e-6)
	assert.InDelta(t, 4, hw, 1e-5)
	assert.InDelta(t, 2, hh, 1e-5)

	cam.SetAspect(0, 10)
	assert.InDelta(t, 2, cam.Aspect, 1e-6, "invalid sizes are ignored")
}

func TestParseScene(t *testing.T) {
	sc, err := Parse([]byte(`
background: "#f0f0f0"
camera:
  position: [1, 1.2, 2]
  fov: 60
lights:
  - kind: ambient
    color: "0xf0f0f0"
  - kind: directional
    cast_shadow: true
grid:
  size: 5
  divisions: 50
  opacity: 0.25
nodes:
  - name: Ground Plane
    mesh: {kind: plane, size: [5, 5]}
    receive_shadow: true
  - name: Box
    position: [0, 1, 0]
    color: steelblue
    mesh: {kind: box, size: [0.2, 0.2, 0.2]}
  - name: Ball
    rotation: [0, 0, 0, 1]
    mesh: {kind: sphere, radius: 0.3}
`))
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}, sc.Background)
	require.NotNil(t, sc.Camera)
	assert.Equal(t, math32.Vec3(1, 1.2, 2), sc.Camera.Position)
	require.Len(t, sc.Lights, 2)
	assert.Equal(t, 1024, sc.Lights[1].ShadowMapSize)
	require.NotNil(t, sc.Grid)
	assert.Equal(t, 50, sc.Grid.Divisions)

	box, ok := sc.Node("Box")
	require.True(t, ok)
	assert.Equal(t, math32.Vec3(0, 1, 0), box.Position)
	assert.Equal(t, color.RGBA{R: 70, G: 130, B: 180, A: 255}, box.Color)

	ground, ok := sc.Node("Ground_Plane")
	require.True(t, ok)
	assert.True(t, ground.ReceiveShadow)
}

func TestParseSceneErrors(t *testing.T) {
	cases := map[string]string{
		"bad_mesh":     "nodes: [{name: a, mesh: {kind: torus}}]",
		"bad_position": "nodes: [{name: a, position: [1, 2]}]",
		"bad_rotation": "nodes: [{name: a, rotation: [0, 0, 1]}]",
		"bad_color":    "nodes: [{name: a, color: notacolor}]",
		"bad_light":    "lights: [{kind: spot}]",
		"bad_yaml":     "nodes: {",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestNodeLocalToWorld(t *testing.T) {
	n := NewNode("n", nil)
	n.Position = math32.Vec3(1, 2, 3)
	n.Scale = math32.Vec3(2, 2, 2)

	got := n.LocalToWorld(math32.Vec3(1, 0, 0))
	assert.InDelta(t, 3, got.X, 1e-6)
	assert.InDelta(t, 2, got.Y, 1e-6)
	assert.InDelta(t, 3, got.Z, 1e-6)
}
