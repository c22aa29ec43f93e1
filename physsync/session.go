package physsync

import (
	"errors"
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/google/uuid"
	"github.com/milk9111/physdemo/descriptor"
	"github.com/milk9111/physdemo/motion"
	"github.com/milk9111/physdemo/physics"
	"github.com/milk9111/physdemo/scene"
	"go.uber.org/zap"
)

// GroundName is the registry name of the ground body.
const GroundName = "ground"

// Ground describes a static ground box added before the descriptor bodies.
type Ground struct {
	HalfExtents math32.Vector3
	Offset      math32.Vector3
	Friction    float32
}

// DefaultGround is a 20x0.2x20 slab whose top face sits at y=0 under a
// plane node at the origin.
func DefaultGround() *Ground {
	return &Ground{
		HalfExtents: math32.Vec3(10, 0.1, 10),
		Offset:      math32.Vec3(0, -0.1, 0),
		Friction:    descriptor.DefaultFriction,
	}
}

type Options struct {
	SubSteps  int
	Derive    DeriveOptions
	Clock     Clock
	Presenter Presenter
	// Ground, when set, is built before the descriptor bodies.
	Ground *Ground
	// Scripts loads motion script sources by name.
	Scripts func(name string) ([]byte, error)
	Log     *zap.Logger
}

// Session owns everything one running scene needs. Sessions share nothing,
// so several may exist at once.
type Session struct {
	ID          uuid.UUID
	World       physics.World
	Scene       *scene.Scene
	Registry    *Registry
	Loop        *Loop
	Diagnostics *Diagnostics

	opts        Options
	log         *zap.Logger
	factory     *Factory
	constraints []physics.Constraint
}

// Report summarizes a Build.
type Report struct {
	Bodies      int
	Active      int
	Constraints int
	Scripts     int
	Diagnostics int
}

func NewSession(world physics.World, opts Options) *Session {
	id := uuid.New()
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("session", id.String()))

	reg := NewRegistry()
	diag := NewDiagnostics(log)
	s := &Session{
		ID:          id,
		World:       world,
		Registry:    reg,
		Diagnostics: diag,
		opts:        opts,
		log:         log,
		factory:     &Factory{World: world, Registry: reg, Log: log},
	}
	s.Loop = NewLoop(world, reg, LoopOptions{
		SubSteps:    opts.SubSteps,
		Clock:       opts.Clock,
		Presenter:   opts.Presenter,
		Diagnostics: diag,
		Log:         log,
	})
	return s
}

// Camera returns the scene camera, or nil.
func (s *Session) Camera() *scene.Camera {
	if s.Scene == nil {
		return nil
	}
	return s.Scene.Camera
}

// Build creates bodies and constraints for sc as described by doc, then
// attaches sc to the loop. A previous build is torn down first. Problems
// with individual entries are recorded as diagnostics, not returned.
func (s *Session) Build(sc *scene.Scene, doc *descriptor.Document) (Report, error) {
	if sc == nil {
		return Report{}, ErrNotReady
	}
	if doc == nil {
		doc = &descriptor.Document{}
	}
	if s.Scene != nil {
		if err := s.Reset(); err != nil {
			return Report{}, err
		}
	}

	s.Scene = sc
	s.factory.Scene = sc
	named := make(NamedBodyMap)
	var drivers []Driver

	if g := s.opts.Ground; g != nil {
		if h, err := s.addGround(sc, g); err != nil {
			s.Diagnostics.Record(DiagBodyRejected, GroundName, "%v", err)
		} else {
			named[GroundName] = h
		}
	}

	// Only the first entry per name gets a body, even if that entry failed.
	seen := make(map[string]bool, len(doc.RigidBodies)+1)
	if s.opts.Ground != nil {
		seen[GroundName] = true
	}
	for _, spec := range doc.RigidBodies {
		if seen[spec.Name] {
			s.Diagnostics.Record(DiagDuplicateBody, spec.Name, "a body named %q already exists; entry ignored", spec.Name)
			continue
		}
		seen[spec.Name] = true
		h, ok := s.addBody(sc, spec)
		if !ok {
			continue
		}
		named[spec.Name] = h
		if spec.Kinematic && spec.Script != "" {
			if d, err := s.newScriptDriver(h, spec.Script); err != nil {
				s.Diagnostics.Record(DiagScriptFailed, spec.Name, "%v", err)
			} else {
				drivers = append(drivers, d)
			}
		}
	}

	s.constraints = buildConstraints(s.World, s.Registry, doc.Constraints, named, s.Diagnostics)
	s.Loop.SetDrivers(drivers)
	s.Loop.SetScene(sc)

	r := Report{
		Bodies:      s.Registry.Len(),
		Active:      len(s.Registry.Active()),
		Constraints: len(s.constraints),
		Scripts:     len(drivers),
		Diagnostics: s.Diagnostics.Total(),
	}
	s.log.Info("scene built",
		zap.Int("bodies", r.Bodies),
		zap.Int("active", r.Active),
		zap.Int("constraints", r.Constraints),
		zap.Int("scripts", r.Scripts),
		zap.Int("diagnostics", r.Diagnostics),
	)
	return r, nil
}

func (s *Session) addBody(sc *scene.Scene, spec descriptor.RigidBodySpec) (Handle, bool) {
	node, ok := sc.Node(spec.Name)
	if !ok {
		s.Diagnostics.Record(DiagMissingObject, spec.Name, "scene has no object named %q", spec.Name)
		return 0, false
	}
	shape, ok := DeriveShape(node, spec.Shape.Kind, s.opts.Derive)
	if !ok {
		s.Diagnostics.Record(DiagUnsupportedShape, spec.Name, "no collision shape for %s", spec.Shape)
		return 0, false
	}
	h, _, err := s.factory.CreateBody(node, shape, BodyOptions{
		Mass:        spec.Mass,
		Kinematic:   spec.Kinematic,
		Friction:    spec.Friction,
		Restitution: spec.Restitution,
	})
	if err != nil {
		s.Diagnostics.Record(DiagBodyRejected, spec.Name, "%v", err)
		return 0, false
	}
	return h, true
}

func (s *Session) addGround(sc *scene.Scene, g *Ground) (Handle, error) {
	node, ok := sc.Node(GroundName)
	if !ok {
		node = scene.NewNode(GroundName, scene.NewPlaneGeometry(2*g.HalfExtents.X, 2*g.HalfExtents.Z))
		node.ReceiveShadow = true
	}
	offset := g.Offset
	h, _, err := s.factory.CreateBody(node, physics.BoxShape{HalfExtents: g.HalfExtents}, BodyOptions{
		Offset:   &offset,
		Friction: g.Friction,
	})
	return h, err
}

// AddBody creates a body outside of Build, e.g. from a debug tool.
func (s *Session) AddBody(node *scene.Node, shape physics.Shape, opts BodyOptions) (Handle, error) {
	if s.Scene == nil {
		return 0, ErrNotReady
	}
	h, _, err := s.factory.CreateBody(node, shape, opts)
	return h, err
}

// Reset removes every constraint and body this session added to the world
// and returns the loop to Idle. Scene nodes are left in place.
func (s *Session) Reset() error {
	s.Loop.Stop()
	s.Loop.SetScene(nil)
	s.Loop.SetDrivers(nil)

	var errs []error
	for _, c := range s.constraints {
		if err := s.World.RemoveConstraint(c); err != nil {
			errs = append(errs, err)
		}
	}
	s.constraints = nil
	for _, e := range s.Registry.Entries() {
		if err := s.World.RemoveBody(e.Body); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", e.Object.Name, err))
		}
	}
	s.Registry.Clear()
	s.Diagnostics.Reset()
	s.Scene = nil
	s.factory.Scene = nil

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("physsync: reset: %w", err)
	}
	return nil
}

// Start begins ticking. See Loop.Start.
func (s *Session) Start() error {
	return s.Loop.Start()
}

type scriptDriver struct {
	name     string
	entry    *Entry
	script   *motion.Script
	origin   math32.Vector3
	rotation math32.Quat
}

var zAxis = math32.Vec3(0, 0, 1)

func (s *Session) newScriptDriver(h Handle, name string) (*scriptDriver, error) {
	if s.opts.Scripts == nil {
		return nil, fmt.Errorf("no script loader for %q", name)
	}
	e, ok := s.Registry.Get(h)
	if !ok {
		return nil, fmt.Errorf("body for script %q is gone", name)
	}
	src, err := s.opts.Scripts(name)
	if err != nil {
		return nil, err
	}
	script, err := motion.Compile(name, src)
	if err != nil {
		return nil, err
	}
	return &scriptDriver{
		name:     e.Object.Name,
		entry:    e,
		script:   script,
		origin:   e.Object.Position,
		rotation: e.Object.Rotation,
	}, nil
}

func (d *scriptDriver) Name() string { return d.name }

func (d *scriptDriver) Drive(elapsed float64) error {
	pose, err := d.script.Eval(elapsed, d.origin)
	if err != nil {
		return err
	}
	rot := d.rotation
	if pose.HasAngle {
		spin := math32.NewQuatAxisAngle(zAxis, pose.Angle)
		rot = spin.Mul(d.rotation)
	}
	t := physics.Transform{Origin: pose.Position, Rotation: rot}
	if d.entry.Offset != nil {
		t.Origin = t.Origin.Add(*d.entry.Offset)
	}
	d.entry.Body.SetTransform(t)
	return nil
}
