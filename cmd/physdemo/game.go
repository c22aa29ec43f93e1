package main

import (
	"context"
	"fmt"
	"slices"

	"cogentcore.org/core/math32"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/physdemo/assets"
	"github.com/milk9111/physdemo/config"
	"github.com/milk9111/physdemo/descriptor"
	"github.com/milk9111/physdemo/physics/cpworld"
	"github.com/milk9111/physdemo/physsync"
	"github.com/milk9111/physdemo/render"
	"github.com/milk9111/physdemo/scene"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

const dropSize = 0.15

type loadResult struct {
	loaded
	err error
}

type Game struct {
	ctx context.Context
	cfg *config.Config
	log *zap.Logger

	world    *cpworld.World
	session  *physsync.Session
	renderer *render.Renderer
	clock    *physsync.WallClock

	loads   chan loadResult
	loading bool
	watcher *assets.Watcher
	status  string
	notes   []string

	drops   int
	paused  bool
	quit    bool
	pauseUI *ebitenui.UI

	width, height int
}

func newGame(ctx context.Context, cfg *config.Config, log *zap.Logger) *Game {
	g := &Game{
		ctx:      ctx,
		cfg:      cfg,
		log:      log,
		world:    newWorld(cfg),
		renderer: render.New(),
		clock:    &physsync.WallClock{Max: 0.25},
		loads:    make(chan loadResult, 1),
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
	}
	g.renderer.Debug = cfg.Debug
	g.renderer.SetSpace(g.world.Space(), g.world.UnitsPerMeter())
	g.session = newSession(cfg, g.world, g.clock, g.renderer, log)
	g.pauseUI = NewPauseUI(g)
	return g
}

// startLoad reads the scene files in the background. The result is picked
// up by Update.
func (g *Game) startLoad() {
	if g.loading {
		return
	}
	g.loading = true
	g.status = "loading"
	go func() {
		l, err := load(g.ctx, g.cfg, g.log)
		g.loads <- loadResult{loaded: l, err: err}
	}()
}

func (g *Game) apply(r loadResult) {
	g.loading = false
	if r.err != nil {
		g.status = "load failed: " + r.err.Error()
		g.log.Error("load failed", zap.Error(r.err))
		return
	}

	report, err := g.session.Build(r.scene, r.doc)
	if err != nil {
		g.status = "build failed: " + err.Error()
		g.log.Error("build failed", zap.Error(err))
		return
	}
	if cam := g.session.Camera(); cam != nil {
		cam.SetAspect(float64(g.width), float64(g.height))
	}
	g.notes = g.notes[:0]
	for _, d := range g.session.Diagnostics.Drain() {
		g.notes = append(g.notes, d.String())
	}
	if err := g.session.Start(); err != nil {
		g.status = err.Error()
		g.log.Warn("loop not started", zap.Error(err))
		return
	}
	g.clock.Reset()
	g.status = fmt.Sprintf("bodies %d (active %d)  constraints %d  scripts %d",
		report.Bodies, report.Active, report.Constraints, report.Scripts)
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	select {
	case r := <-g.loads:
		g.apply(r)
	default:
	}
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.renderer.Debug = !g.renderer.Debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.dropBox()
	}

	g.session.Loop.Tick()
	g.renderer.SetHUD(g.hud())
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case b, ok := <-g.watcher.Batches():
		if ok {
			g.log.Info("reloading", zap.Strings("files", b.Paths))
			g.startLoad()
		}
	case err, ok := <-g.watcher.Errors():
		if ok {
			g.log.Warn("watch error", zap.Error(err))
		}
	default:
	}
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	if !paused {
		g.clock.Reset()
	}
}

// reset tears the session down and reloads the scene from its files.
func (g *Game) reset() {
	if err := g.session.Reset(); err != nil {
		g.log.Warn("reset", zap.Error(err))
	}
	g.renderer.Present(nil, nil)
	g.startLoad()
}

// dropBox adds a small dynamic box above the camera target.
func (g *Game) dropBox() {
	cam := g.session.Camera()
	if cam == nil {
		return
	}
	g.drops++
	node := scene.NewNode(fmt.Sprintf("drop-%d", g.drops), scene.NewBoxGeometry(dropSize, dropSize, dropSize))
	node.Position = cam.Target.Add(math32.Vec3(0, 1, 0))
	node.Color = colornames.Goldenrod
	node.CastShadow = true

	shape, ok := physsync.DeriveShape(node, descriptor.ShapeBox, physsync.DeriveOptions{})
	if !ok {
		return
	}
	if _, err := g.session.AddBody(node, shape, physsync.BodyOptions{Mass: 1, Friction: descriptor.DefaultFriction}); err != nil {
		g.log.Warn("drop box", zap.Error(err))
	}
}

func (g *Game) hud() []string {
	s := g.session
	lines := []string{
		fmt.Sprintf("session %s  %s  t=%.2fs", s.ID.String()[:8], s.Loop.State(), s.Loop.Elapsed()),
		g.status,
	}
	counts := s.Diagnostics.Counts()
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, string(k))
	}
	slices.Sort(kinds)
	for _, k := range kinds {
		lines = append(lines, fmt.Sprintf("  %s: %d", k, counts[physsync.DiagnosticKind(k)]))
	}
	for _, n := range g.notes {
		lines = append(lines, "  "+n)
	}
	lines = append(lines, "esc: pause  r: reset  b: drop box  f1: physics overlay")
	return lines
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

// Layout follows the window size so a resize updates the camera aspect.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		if cam := g.session.Camera(); cam != nil {
			cam.SetAspect(float64(outsideWidth), float64(outsideHeight))
		}
	}
	return outsideWidth, outsideHeight
}
