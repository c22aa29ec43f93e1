package physsync

import (
	"fmt"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/milk9111/physdemo/descriptor"
	"github.com/milk9111/physdemo/physics"
	"github.com/milk9111/physdemo/physics/cpworld"
	"github.com/milk9111/physdemo/physics/physicstest"
	"github.com/milk9111/physdemo/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScene = `
camera:
  position: [0, 2, 10]
  target: [0, 1, 0]
  fov: 45
nodes:
  - name: ground
    mesh: {kind: plane, size: [20, 20]}
  - name: box
    position: [0, 1, 0]
    mesh: {kind: box, size: [0.2, 0.2, 0.2]}
  - name: ball
    position: [2, 3, 0]
    mesh: {kind: sphere, radius: 0.5}
  - name: pill
    position: [-2, 3, 0]
    mesh: {kind: box, size: [0.2, 0.6, 0.2]}
  - name: paddle
    position: [0, 4, 0]
    mesh: {kind: box, size: [1, 0.1, 1]}
`

const testDescriptor = `{
  "rigid_bodies": [
    {"name": "box", "collision_shape": "BOX", "mass": 1},
    {"name": "ball", "collision_shape": "SPHERE", "mass": 2, "restitution": 0.3},
    {"name": "pill", "collision_shape": "CAPSULE", "mass": 1},
    {"name": "paddle", "collision_shape": "BOX", "mass": 0, "kinematic": true, "script": "slide.tengo"},
    {"name": "missing", "collision_shape": "BOX", "mass": 1}
  ],
  "constraints": [
    {"type": "POINT", "object1": "ball", "translation_offset_a": [0, 1, 0]},
    {"type": "HINGE", "object1": "box", "object2": "ground"},
    {"type": "SLIDER", "object1": "box", "object2": "ball"},
    {"type": "POINT", "object1": "pill"}
  ]
}`

var testScripts = map[string]string{
	"slide.tengo": `position = [origin[0] + t, origin[1], origin[2]]`,
}

func loadScripts(name string) ([]byte, error) {
	src, ok := testScripts[name]
	if !ok {
		return nil, fmt.Errorf("no script %q", name)
	}
	return []byte(src), nil
}

func parseFixtures(t *testing.T) (*scene.Scene, *descriptor.Document) {
	t.Helper()
	sc, err := scene.Parse([]byte(testScene))
	require.NoError(t, err)
	doc, err := descriptor.Parse([]byte(testDescriptor))
	require.NoError(t, err)
	return sc, doc
}

func TestSessionBuild(t *testing.T) {
	sc, doc := parseFixtures(t)
	w := physicstest.NewWorld()
	s := NewSession(w, Options{Ground: DefaultGround(), Scripts: loadScripts})

	report, err := s.Build(sc, doc)
	require.NoError(t, err)

	assert.Equal(t, Report{Bodies: 4, Active: 3, Constraints: 2, Scripts: 1, Diagnostics: 4}, report)
	assert.Equal(t, 1, s.Diagnostics.Count(DiagUnsupportedShape), "capsule")
	assert.Equal(t, 1, s.Diagnostics.Count(DiagMissingObject))
	assert.Equal(t, 1, s.Diagnostics.Count(DiagUnsupportedConstraint), "slider")
	assert.Equal(t, 1, s.Diagnostics.Count(DiagUnresolvedParticipant), "pill has no body")

	ground, ok := w.BodyNamed(GroundName)
	require.True(t, ok)
	assert.Equal(t, math32.Vec3(0, -0.1, 0), ground.Def.Transform.Origin)
	assert.Equal(t, physics.BoxShape{HalfExtents: math32.Vec3(10, 0.1, 10)}, ground.Def.Shape)

	hinge := w.Constraints[1].Def
	assert.Same(t, ground, hinge.BodyB, "constraints can reference the ground")

	assert.Same(t, sc.Camera, s.Camera())
	assert.Equal(t, StateIdle, s.Loop.State(), "build does not start the loop")
}

func TestSessionIgnoresDuplicateBodies(t *testing.T) {
	sc, err := scene.Parse([]byte(testScene))
	require.NoError(t, err)
	doc, err := descriptor.Parse([]byte(`{
  "rigid_bodies": [
    {"name": "box", "collision_shape": "BOX", "mass": 1},
    {"name": "box", "collision_shape": "SPHERE", "mass": 3},
    {"name": "ground", "collision_shape": "BOX", "mass": 0}
  ]
}`))
	require.NoError(t, err)
	require.Len(t, doc.RigidBodies, 3)

	w := physicstest.NewWorld()
	s := NewSession(w, Options{Ground: DefaultGround()})
	report, err := s.Build(sc, doc)
	require.NoError(t, err)

	assert.Equal(t, Report{Bodies: 2, Active: 1, Diagnostics: 2}, report)
	assert.Equal(t, 2, s.Diagnostics.Count(DiagDuplicateBody))
	assert.Len(t, w.Bodies, 2)

	box, ok := w.BodyNamed("box")
	require.True(t, ok)
	assert.Equal(t, float32(1), box.Def.Mass, "first entry wins")

	bound := 0
	for _, e := range s.Registry.Entries() {
		if e.Object.Name == "box" {
			bound++
		}
	}
	assert.Equal(t, 1, bound, "one body per node")
}

func TestSessionAddBody(t *testing.T) {
	w := physicstest.NewWorld()
	s := NewSession(w, Options{})

	node := scene.NewNode("drop", scene.NewBoxGeometry(0.2, 0.2, 0.2))
	node.Position = math32.Vec3(0, 2, 0)
	shape := physics.BoxShape{HalfExtents: math32.Vec3(0.1, 0.1, 0.1)}

	_, err := s.AddBody(node, shape, BodyOptions{Mass: 1})
	assert.ErrorIs(t, err, ErrNotReady)

	sc, doc := parseFixtures(t)
	_, err = s.Build(sc, doc)
	require.NoError(t, err)
	active := len(s.Registry.Active())

	h, err := s.AddBody(node, shape, BodyOptions{Mass: 1})
	require.NoError(t, err)
	assert.True(t, sc.Contains(node), "node joins the scene")
	assert.True(t, s.Registry.IsActive(h))
	assert.Len(t, s.Registry.Active(), active+1)

	require.NoError(t, s.Start())
	w.OnStep = func(float64) {
		for _, b := range w.Bodies {
			if b.Def.Name == "drop" {
				b.Move(math32.Vec3(0, -0.5, 0))
			}
		}
	}
	s.Loop.Advance(1.0 / 60)
	assert.Equal(t, math32.Vec3(0, 1.5, 0), node.Position)
}

func TestSessionKinematicScript(t *testing.T) {
	sc, doc := parseFixtures(t)
	s := NewSession(physicstest.NewWorld(), Options{Scripts: loadScripts})
	_, err := s.Build(sc, doc)
	require.NoError(t, err)
	require.NoError(t, s.Start())

	paddle, ok := sc.Node("paddle")
	require.True(t, ok)

	s.Loop.Advance(0.5)
	assert.Equal(t, float32(0), paddle.Position.X)
	s.Loop.Advance(0.5)
	assert.Equal(t, float32(0.5), paddle.Position.X)
	s.Loop.Advance(0.5)
	assert.Equal(t, float32(1), paddle.Position.X)
	assert.Equal(t, float32(4), paddle.Position.Y)
}

func TestSessionMissingScriptIsDiagnosed(t *testing.T) {
	sc, doc := parseFixtures(t)
	s := NewSession(physicstest.NewWorld(), Options{})
	report, err := s.Build(sc, doc)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Scripts)
	assert.Equal(t, 1, s.Diagnostics.Count(DiagScriptFailed))
}

func TestSessionBuildNeedsScene(t *testing.T) {
	s := NewSession(physicstest.NewWorld(), Options{})
	_, err := s.Build(nil, nil)
	assert.ErrorIs(t, err, ErrNotReady)
	assert.ErrorIs(t, s.Start(), ErrNotReady)
}

func TestSessionReset(t *testing.T) {
	sc, doc := parseFixtures(t)
	w := physicstest.NewWorld()
	s := NewSession(w, Options{Ground: DefaultGround(), Scripts: loadScripts})
	_, err := s.Build(sc, doc)
	require.NoError(t, err)
	require.NoError(t, s.Start())

	require.NoError(t, s.Reset())
	assert.Empty(t, w.Bodies)
	assert.Empty(t, w.Constraints)
	assert.Equal(t, 0, s.Registry.Len())
	assert.Equal(t, StateIdle, s.Loop.State())
	assert.Equal(t, 0, s.Diagnostics.Total())

	sc2, doc2 := parseFixtures(t)
	report, err := s.Build(sc2, doc2)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Bodies)

	report, err = s.Build(sc2, doc2)
	require.NoError(t, err, "building again tears down the previous build")
	assert.Equal(t, 4, report.Bodies)
	assert.Len(t, w.Bodies, 4)
}

func TestSessionsAreIndependent(t *testing.T) {
	a := NewSession(physicstest.NewWorld(), Options{})
	b := NewSession(physicstest.NewWorld(), Options{})
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotSame(t, a.Registry, b.Registry)
}

func TestEndToEndBoxRestsOnGround(t *testing.T) {
	sc, err := scene.Parse([]byte(`
camera: {position: [0, 1, 5], target: [0, 0, 0]}
nodes:
  - name: ground
    mesh: {kind: plane, size: [20, 20]}
  - name: box
    position: [0, 1, 0]
    mesh: {kind: box, size: [0.2, 0.2, 0.2]}
`))
	require.NoError(t, err)
	doc, err := descriptor.Parse([]byte(`{"rigid_bodies": [{"name": "box", "collision_shape": "BOX", "mass": 1}]}`))
	require.NoError(t, err)

	world := cpworld.New(cpworld.DefaultOptions())
	s := NewSession(world, Options{Ground: DefaultGround(), Clock: FixedClock(1.0 / 60)})
	_, err = s.Build(sc, doc)
	require.NoError(t, err)
	require.NoError(t, s.Start())

	box, _ := sc.Node("box")
	ground, _ := sc.Node(GroundName)
	groundStart := ground.Position

	var settled float32
	for i := 0; i < 600; i++ {
		s.Loop.Tick()
		assert.Equal(t, groundStart, ground.Position)
		if i == 500 {
			settled = box.Position.Y
		}
	}

	assert.Greater(t, box.Position.Y, float32(0.09), "above the ground's top face")
	assert.InDelta(t, 0.1, box.Position.Y, 0.02)
	assert.InDelta(t, settled, box.Position.Y, 1e-3, "no longer falling")
	assert.Equal(t, 0, s.Diagnostics.Total())
}
