package physsync

import (
	"errors"
	"time"

	"github.com/milk9111/physdemo/common"
	"github.com/milk9111/physdemo/scene"
	"go.uber.org/zap"
)

var ErrNotReady = errors.New("physsync: scene and camera are required")

type State int

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// Presenter draws one frame of a scene.
type Presenter interface {
	Present(s *scene.Scene, cam *scene.Camera)
}

// Clock supplies the time step for each tick.
type Clock interface {
	Delta() float64
}

// FixedClock always reports the same step.
type FixedClock float64

func (c FixedClock) Delta() float64 { return float64(c) }

// WallClock reports wall time since the previous call, capped at Max. The
// first call reports zero.
type WallClock struct {
	Max  float64
	Now  func() time.Time
	last time.Time
}

func (c *WallClock) Delta() float64 {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	t := now()
	if c.last.IsZero() {
		c.last = t
		return 0
	}
	dt := t.Sub(c.last).Seconds()
	c.last = t
	if c.Max > 0 && dt > c.Max {
		dt = c.Max
	}
	return max(dt, 0)
}

// Reset makes the next Delta report zero, e.g. after a pause.
func (c *WallClock) Reset() {
	c.last = time.Time{}
}

// Driver moves a body before the world steps.
type Driver interface {
	Name() string
	Drive(elapsed float64) error
}

type LoopOptions struct {
	SubSteps    int
	Clock       Clock
	Presenter   Presenter
	Diagnostics *Diagnostics
	Log         *zap.Logger
}

// Loop steps the world and copies body transforms back onto their nodes. It
// is not safe for concurrent use.
type Loop struct {
	world     worldStepper
	registry  *Registry
	scene     *scene.Scene
	presenter Presenter
	clock     Clock
	subSteps  int
	diag      *Diagnostics
	log       *zap.Logger

	drivers []Driver
	failed  map[Driver]bool

	state   State
	elapsed float64
	ticks   uint64
}

type worldStepper interface {
	Step(dt float64, maxSubSteps int) int
}

func NewLoop(world worldStepper, reg *Registry, opts LoopOptions) *Loop {
	if opts.SubSteps <= 0 {
		opts.SubSteps = common.DefaultSubSteps
	}
	if opts.Clock == nil {
		opts.Clock = FixedClock(common.DefaultFixedStep)
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Loop{
		world:     world,
		registry:  reg,
		presenter: opts.Presenter,
		clock:     opts.Clock,
		subSteps:  opts.SubSteps,
		diag:      opts.Diagnostics,
		log:       opts.Log,
		failed:    make(map[Driver]bool),
	}
}

// SetScene attaches the scene whose camera is rendered. Passing nil detaches
// it and returns the loop to Idle.
func (l *Loop) SetScene(s *scene.Scene) {
	l.scene = s
	if s == nil {
		l.state = StateIdle
	}
}

func (l *Loop) SetPresenter(p Presenter) { l.presenter = p }

func (l *Loop) SetDrivers(drivers []Driver) {
	l.drivers = drivers
	l.failed = make(map[Driver]bool)
}

// Start moves the loop to Running. It stays Idle and returns ErrNotReady
// without both a scene and a camera.
func (l *Loop) Start() error {
	if l.scene == nil || l.scene.Camera == nil {
		l.state = StateIdle
		return ErrNotReady
	}
	l.state = StateRunning
	return nil
}

func (l *Loop) Stop() {
	l.state = StateIdle
}

func (l *Loop) State() State { return l.state }

// Elapsed is the simulated time in seconds.
func (l *Loop) Elapsed() float64 { return l.elapsed }

func (l *Loop) Ticks() uint64 { return l.ticks }

// Tick advances by the clock's delta. It is a no-op while Idle.
func (l *Loop) Tick() {
	if l.state != StateRunning {
		return
	}
	l.Advance(l.clock.Delta())
}

// Advance runs one tick with an explicit time step.
func (l *Loop) Advance(dt float64) {
	if l.state != StateRunning {
		return
	}

	l.drive()
	l.world.Step(dt, l.subSteps)
	l.elapsed += dt
	l.readBack()

	if l.presenter != nil {
		l.presenter.Present(l.scene, l.scene.Camera)
	}
	l.ticks++
}

func (l *Loop) drive() {
	for _, d := range l.drivers {
		if l.failed[d] {
			continue
		}
		if err := d.Drive(l.elapsed); err != nil {
			l.failed[d] = true
			l.diag.Record(DiagScriptFailed, d.Name(), "motion script disabled: %v", err)
		}
	}
}

func (l *Loop) readBack() {
	for _, e := range l.registry.Active() {
		t, ok := e.Body.MotionState()
		if !ok {
			l.diag.Record(DiagMissingMotionState, e.Object.Name, "no motion state at tick %d", l.ticks)
			continue
		}
		e.Object.Position = e.RenderOrigin(t.Origin)
		e.Object.Rotation = t.Rotation
	}
}
