// Package render draws a scene as wireframes with ebiten.
package render

import (
	"fmt"
	"image/color"
	"strings"

	"cogentcore.org/core/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physdemo/scene"
)

const shadowOpacity = 0.2

// Renderer keeps the latest presented frame and draws it on demand. Present
// and Draw must be called from the ebiten game loop.
type Renderer struct {
	scene  *scene.Scene
	camera *scene.Camera
	frames uint64

	// Debug draws the physics space on top of the scene.
	Debug         bool
	space         *cp.Space
	unitsPerMeter float64

	hud []string
}

func New() *Renderer {
	return &Renderer{}
}

// Present records the frame to draw next.
func (r *Renderer) Present(s *scene.Scene, cam *scene.Camera) {
	r.scene = s
	r.camera = cam
	r.frames++
}

func (r *Renderer) Frames() uint64 { return r.frames }

// SetSpace enables the physics overlay source. unitsPerMeter converts cp
// coordinates back to scene units.
func (r *Renderer) SetSpace(space *cp.Space, unitsPerMeter float64) {
	r.space = space
	r.unitsPerMeter = unitsPerMeter
}

func (r *Renderer) SetHUD(lines []string) {
	r.hud = lines
}

func (r *Renderer) Draw(screen *ebiten.Image) {
	if r.scene == nil || r.camera == nil {
		screen.Fill(color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff})
		r.drawHUD(screen, "loading...")
		return
	}
	screen.Fill(r.scene.Background)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	proj := NewProjector(r.camera, w, h)

	if g := r.scene.Grid; g != nil {
		drawGrid(screen, proj, g)
	}
	if dir, ok := shadowLight(r.scene.Lights); ok {
		for _, n := range r.scene.Nodes() {
			if n.CastShadow {
				drawShadow(screen, proj, n, dir, r.groundY())
			}
		}
	}
	lit := brightness(r.scene.Lights)
	for _, n := range r.scene.Nodes() {
		drawNode(screen, proj, n, shade(n.Color, lit))
	}
	if r.Debug && r.space != nil {
		cp.DrawSpace(r.space, &spaceDrawer{screen: screen, proj: proj, scale: r.unitsPerMeter})
	}
	r.drawHUD(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (r *Renderer) groundY() float32 {
	if r.scene.Grid != nil {
		return r.scene.Grid.Y
	}
	return 0
}

func (r *Renderer) drawHUD(screen *ebiten.Image, first string) {
	lines := append([]string{first}, r.hud...)
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 10, 10)
}

func drawNode(screen *ebiten.Image, proj Projector, n *scene.Node, c color.Color) {
	if n.Geometry == nil {
		return
	}
	world := make([]math32.Vector3, len(n.Geometry.Positions))
	for i, p := range n.Geometry.Positions {
		world[i] = n.LocalToWorld(p)
	}
	drawEdges(screen, proj, world, n.Geometry.Lines, c)
}

func drawShadow(screen *ebiten.Image, proj Projector, n *scene.Node, toLight math32.Vector3, y float32) {
	if n.Geometry == nil || toLight.Y <= 0 {
		return
	}
	flat := make([]math32.Vector3, len(n.Geometry.Positions))
	for i, p := range n.Geometry.Positions {
		wp := n.LocalToWorld(p)
		t := (wp.Y - y) / toLight.Y
		flat[i] = math32.Vec3(wp.X-toLight.X*t, y, wp.Z-toLight.Z*t)
	}
	drawEdges(screen, proj, flat, n.Geometry.Lines, color.NRGBA{A: uint8(shadowOpacity * 255)})
}

func drawEdges(screen *ebiten.Image, proj Projector, pts []math32.Vector3, lines [][2]int, c color.Color) {
	for _, l := range lines {
		if l[0] >= len(pts) || l[1] >= len(pts) {
			continue
		}
		x1, y1, ok1 := proj.Project(pts[l[0]])
		x2, y2, ok2 := proj.Project(pts[l[1]])
		if !ok1 || !ok2 {
			continue
		}
		ebitenutil.DrawLine(screen, x1, y1, x2, y2, c)
	}
}

func drawGrid(screen *ebiten.Image, proj Projector, g *scene.Grid) {
	if g.Divisions <= 0 || g.Size <= 0 {
		return
	}
	c := color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: uint8(math32.Clamp(g.Opacity, 0, 1) * 255)}
	half := g.Size / 2
	step := g.Size / float32(g.Divisions)
	for i := 0; i <= g.Divisions; i++ {
		o := -half + float32(i)*step
		drawEdges(screen, proj, []math32.Vector3{
			math32.Vec3(o, g.Y, -half), math32.Vec3(o, g.Y, half),
			math32.Vec3(-half, g.Y, o), math32.Vec3(half, g.Y, o),
		}, [][2]int{{0, 1}, {2, 3}}, c)
	}
}

// shadowLight returns the direction toward the first shadow-casting
// directional light.
func shadowLight(lights []*scene.Light) (math32.Vector3, bool) {
	for _, l := range lights {
		if l.Kind == scene.LightDirectional && l.CastShadow && l.Position.Length() > 0 {
			return l.Position.Normal(), true
		}
	}
	return math32.Vector3{}, false
}

// brightness sums light intensities, treating an unlit scene as fully lit.
func brightness(lights []*scene.Light) float32 {
	if len(lights) == 0 {
		return 1
	}
	var sum float32
	for _, l := range lights {
		switch l.Kind {
		case scene.LightAmbient:
			sum += l.Intensity
		case scene.LightDirectional:
			sum += 0.6 * l.Intensity
		}
	}
	return math32.Clamp(sum, 0.2, 1)
}

func shade(c color.RGBA, k float32) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(math32.Clamp(float32(v)*k, 0, 255)) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
