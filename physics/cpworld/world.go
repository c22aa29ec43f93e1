// Package cpworld implements physics.World on the Chipmunk2D port
// github.com/jakecoffman/cp.
//
// The simulation runs in the XY plane. Each body keeps its Z coordinate
// unchanged, its orientation is split into a twist about Z (simulated) and a
// fixed remainder (carried through), and world units are multiplied by
// UnitsPerMeter before they reach cp so that cp's absolute tolerances, such
// as collision slop, stay small relative to meter-sized scenes.
package cpworld

import (
	"errors"
	"fmt"
	"math"

	"cogentcore.org/core/math32"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physdemo/common"
	"github.com/milk9111/physdemo/physics"
)

var ErrAxisNotPlanar = errors.New("cpworld: hinge axis must be parallel to Z")

const (
	DefaultUnitsPerMeter = 100.0
	DefaultIterations    = 20
	axisTolerance        = 1e-3
)

type Options struct {
	UnitsPerMeter float64
	FixedStep     float64
	Iterations    int
	Gravity       math32.Vector3
}

func DefaultOptions() Options {
	return Options{
		UnitsPerMeter: DefaultUnitsPerMeter,
		FixedStep:     common.DefaultFixedStep,
		Iterations:    DefaultIterations,
		Gravity:       math32.Vec3(0, common.Gravity, 0),
	}
}

// World owns the cp space and every body and constraint added through it.
type World struct {
	space       *cp.Space
	scale       float64
	fixedStep   float64
	accumulator float64
	gravity     math32.Vector3

	bodies      map[*Body]struct{}
	constraints map[*Constraint]struct{}
}

var _ physics.World = (*World)(nil)

// New creates a world. Zero option fields fall back to DefaultOptions.
func New(opts Options) *World {
	def := DefaultOptions()
	if opts.UnitsPerMeter <= 0 {
		opts.UnitsPerMeter = def.UnitsPerMeter
	}
	if opts.FixedStep <= 0 {
		opts.FixedStep = def.FixedStep
	}
	if opts.Iterations <= 0 {
		opts.Iterations = def.Iterations
	}

	space := cp.NewSpace()
	space.Iterations = uint(opts.Iterations)

	w := &World{
		space:       space,
		scale:       opts.UnitsPerMeter,
		fixedStep:   opts.FixedStep,
		bodies:      make(map[*Body]struct{}),
		constraints: make(map[*Constraint]struct{}),
	}
	w.SetGravity(opts.Gravity)
	return w
}

// Space returns the underlying cp space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// UnitsPerMeter is the factor applied to lengths handed to cp.
func (w *World) UnitsPerMeter() float64 {
	return w.scale
}

func (w *World) SetGravity(g math32.Vector3) {
	w.gravity = g
	w.space.SetGravity(w.toCP(g))
}

func (w *World) Gravity() math32.Vector3 {
	return w.gravity
}

func (w *World) NumBodies() int      { return len(w.bodies) }
func (w *World) NumConstraints() int { return len(w.constraints) }

// Step advances the simulation in fixed steps. dt is accumulated; the number
// of whole fixed steps it covers is run, capped at maxSubSteps, and time
// beyond the cap is dropped. With maxSubSteps <= 0 a single variable step of
// dt is taken instead.
func (w *World) Step(dt float64, maxSubSteps int) int {
	if w == nil || dt <= 0 {
		return 0
	}
	if maxSubSteps <= 0 {
		w.driveKinematic(dt)
		w.step(dt)
		w.settleKinematic()
		return 1
	}

	w.accumulator += dt
	n := int(w.accumulator / w.fixedStep)
	w.accumulator -= float64(n) * w.fixedStep
	if n > maxSubSteps {
		n = maxSubSteps
	}
	if n == 0 {
		return 0
	}
	w.driveKinematic(float64(n) * w.fixedStep)
	for i := 0; i < n; i++ {
		w.step(w.fixedStep)
	}
	w.settleKinematic()
	return n
}

func (w *World) driveKinematic(span float64) {
	for b := range w.bodies {
		if b.kind == physics.BodyKinematic {
			b.drive(span)
		}
	}
}

func (w *World) settleKinematic() {
	for b := range w.bodies {
		if b.kind == physics.BodyKinematic {
			b.settle()
		}
	}
}

func (w *World) step(h float64) {
	for b := range w.bodies {
		if b.alwaysActive {
			b.body.Activate()
		}
	}
	w.space.Step(h)
}

func (w *World) AddBody(def physics.BodyDef) (physics.Body, error) {
	if def.Shape == nil {
		return nil, fmt.Errorf("cpworld: add body %q: %w", def.Name, physics.ErrUnsupportedShape)
	}

	var body *cp.Body
	switch def.Kind {
	case physics.BodyStatic:
		body = cp.NewStaticBody()
	case physics.BodyKinematic:
		body = cp.NewKinematicBody()
	case physics.BodyDynamic:
		if def.Mass <= 0 {
			return nil, fmt.Errorf("cpworld: add body %q: dynamic body needs positive mass, got %v", def.Name, def.Mass)
		}
		moment := float64(def.Inertia.Z) * w.scale * w.scale
		if moment <= 0 {
			moment = math.Inf(1)
		}
		body = cp.NewBody(float64(def.Mass), moment)
	default:
		return nil, fmt.Errorf("cpworld: add body %q: unknown body kind %d", def.Name, def.Kind)
	}

	var shape *cp.Shape
	switch sh := def.Shape.(type) {
	case physics.BoxShape:
		shape = cp.NewBox(body, 2*float64(sh.HalfExtents.X)*w.scale, 2*float64(sh.HalfExtents.Y)*w.scale, 0)
	case physics.SphereShape:
		shape = cp.NewCircle(body, float64(sh.Radius)*w.scale, cp.Vector{})
	default:
		return nil, fmt.Errorf("cpworld: add body %q: %w: %s", def.Name, physics.ErrUnsupportedShape, def.Shape.Kind())
	}
	shape.SetFriction(float64(def.Friction))
	shape.SetElasticity(float64(def.Restitution))

	b := &Body{
		world:        w,
		body:         body,
		shape:        shape,
		kind:         def.Kind,
		mass:         def.Mass,
		alwaysActive: def.AlwaysActive && def.Kind != physics.BodyStatic,
	}
	b.place(def.Transform)

	w.space.AddBody(body)
	w.space.AddShape(shape)
	w.bodies[b] = struct{}{}
	return b, nil
}

func (w *World) RemoveBody(pb physics.Body) error {
	b, ok := pb.(*Body)
	if !ok || b.world != w {
		return physics.ErrUnknownBody
	}
	if _, ok := w.bodies[b]; !ok {
		return physics.ErrUnknownBody
	}
	for c := range w.constraints {
		if c.a == b || c.b == b {
			_ = w.RemoveConstraint(c)
		}
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	delete(w.bodies, b)
	b.world = nil
	return nil
}

func (w *World) toCP(v math32.Vector3) cp.Vector {
	return cp.Vector{X: float64(v.X) * w.scale, Y: float64(v.Y) * w.scale}
}

func (w *World) fromCP(v cp.Vector) (x, y float32) {
	return float32(v.X / w.scale), float32(v.Y / w.scale)
}
