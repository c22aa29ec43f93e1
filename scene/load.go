package scene

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"cogentcore.org/core/math32"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// File is the on-disk scene description.
type File struct {
	Background string      `yaml:"background"`
	Camera     *CameraSpec `yaml:"camera"`
	Lights     []LightSpec `yaml:"lights"`
	Grid       *GridSpec   `yaml:"grid"`
	Nodes      []NodeSpec  `yaml:"nodes"`
}

type CameraSpec struct {
	Name     string    `yaml:"name"`
	Position []float32 `yaml:"position"`
	Target   []float32 `yaml:"target"`
	FOV      float32   `yaml:"fov"`
	Near     float32   `yaml:"near"`
	Far      float32   `yaml:"far"`
}

type LightSpec struct {
	Name          string    `yaml:"name"`
	Kind          LightKind `yaml:"kind"`
	Color         string    `yaml:"color"`
	Intensity     float32   `yaml:"intensity"`
	Position      []float32 `yaml:"position"`
	CastShadow    bool      `yaml:"cast_shadow"`
	ShadowMapSize int       `yaml:"shadow_map_size"`
}

type GridSpec struct {
	Size      float32 `yaml:"size"`
	Divisions int     `yaml:"divisions"`
	Opacity   float32 `yaml:"opacity"`
	Y         float32 `yaml:"y"`
}

type NodeSpec struct {
	Name          string    `yaml:"name"`
	Position      []float32 `yaml:"position"`
	Rotation      []float32 `yaml:"rotation"`
	Scale         []float32 `yaml:"scale"`
	Color         string    `yaml:"color"`
	CastShadow    bool      `yaml:"cast_shadow"`
	ReceiveShadow bool      `yaml:"receive_shadow"`
	Mesh          MeshSpec  `yaml:"mesh"`
}

type MeshSpec struct {
	Kind     string      `yaml:"kind"`
	Size     []float32   `yaml:"size"`
	Radius   float32     `yaml:"radius"`
	Segments int         `yaml:"segments"`
	Vertices [][]float32 `yaml:"vertices"`
}

// Load reads and builds a scene description file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	return sc, nil
}

// Parse builds a scene from YAML bytes.
func Parse(data []byte) (*Scene, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scene: unmarshal: %w", err)
	}
	return f.Build()
}

// Build turns a parsed description into a scene.
func (f *File) Build() (*Scene, error) {
	sc := New()
	if f.Background != "" {
		c, err := ParseColor(f.Background)
		if err != nil {
			return nil, fmt.Errorf("scene: background: %w", err)
		}
		sc.Background = c
	}

	if f.Camera != nil {
		cam, err := f.Camera.build()
		if err != nil {
			return nil, err
		}
		sc.Camera = cam
	}

	for i, ls := range f.Lights {
		l, err := ls.build()
		if err != nil {
			return nil, fmt.Errorf("scene: light %d: %w", i, err)
		}
		sc.Lights = append(sc.Lights, l)
	}

	if f.Grid != nil {
		sc.Grid = &Grid{Size: f.Grid.Size, Divisions: f.Grid.Divisions, Opacity: f.Grid.Opacity, Y: f.Grid.Y}
	}

	for i, ns := range f.Nodes {
		n, err := ns.build()
		if err != nil {
			return nil, fmt.Errorf("scene: node %d (%s): %w", i, ns.Name, err)
		}
		sc.Add(n)
	}
	return sc, nil
}

func (cs *CameraSpec) build() (*Camera, error) {
	fov := cs.FOV
	if fov <= 0 {
		fov = 60
	}
	near, far := cs.Near, cs.Far
	if near <= 0 {
		near = 0.01
	}
	if far <= near {
		far = 100
	}
	name := cs.Name
	if name == "" {
		name = "Camera"
	}
	cam := NewCamera(name, fov, 1, near, far)
	pos, err := vec3(cs.Position, math32.Vec3(0, 0, 5))
	if err != nil {
		return nil, fmt.Errorf("scene: camera position: %w", err)
	}
	target, err := vec3(cs.Target, math32.Vector3{})
	if err != nil {
		return nil, fmt.Errorf("scene: camera target: %w", err)
	}
	cam.Position = pos
	cam.Target = target
	cam.UpdateProjection()
	return cam, nil
}

func (ls *LightSpec) build() (*Light, error) {
	l := &Light{
		Name:          SanitizeName(ls.Name),
		Kind:          ls.Kind,
		Color:         color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Intensity:     ls.Intensity,
		CastShadow:    ls.CastShadow,
		ShadowMapSize: ls.ShadowMapSize,
	}
	switch l.Kind {
	case LightAmbient, LightDirectional:
	case "":
		l.Kind = LightAmbient
	default:
		return nil, fmt.Errorf("unknown light kind %q", ls.Kind)
	}
	if l.Intensity == 0 {
		l.Intensity = 1
	}
	if l.CastShadow && l.ShadowMapSize <= 0 {
		l.ShadowMapSize = 1024
	}
	if ls.Color != "" {
		c, err := ParseColor(ls.Color)
		if err != nil {
			return nil, err
		}
		l.Color = c
	}
	pos, err := vec3(ls.Position, math32.Vec3(0, 1, 0))
	if err != nil {
		return nil, err
	}
	l.Position = pos
	return l, nil
}

func (ns *NodeSpec) build() (*Node, error) {
	geom, err := ns.Mesh.build()
	if err != nil {
		return nil, err
	}
	n := NewNode(ns.Name, geom)
	if n.Position, err = vec3(ns.Position, math32.Vector3{}); err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}
	if n.Scale, err = vec3(ns.Scale, math32.Vec3(1, 1, 1)); err != nil {
		return nil, fmt.Errorf("scale: %w", err)
	}
	switch len(ns.Rotation) {
	case 0:
	case 4:
		n.Rotation = math32.NewQuat(ns.Rotation[0], ns.Rotation[1], ns.Rotation[2], ns.Rotation[3])
	default:
		return nil, fmt.Errorf("rotation: want 4 components (x, y, z, w), got %d", len(ns.Rotation))
	}
	if ns.Color != "" {
		if n.Color, err = ParseColor(ns.Color); err != nil {
			return nil, err
		}
	}
	n.CastShadow = ns.CastShadow
	n.ReceiveShadow = ns.ReceiveShadow
	return n, nil
}

func (ms *MeshSpec) build() (*Geometry, error) {
	switch strings.ToLower(ms.Kind) {
	case "", "none":
		return &Geometry{}, nil
	case "box":
		size, err := vec3(ms.Size, math32.Vec3(1, 1, 1))
		if err != nil {
			return nil, fmt.Errorf("box size: %w", err)
		}
		return NewBoxGeometry(size.X, size.Y, size.Z), nil
	case "plane":
		switch len(ms.Size) {
		case 0:
			return NewPlaneGeometry(1, 1), nil
		case 2:
			return NewPlaneGeometry(ms.Size[0], ms.Size[1]), nil
		default:
			return nil, fmt.Errorf("plane size: want 2 components, got %d", len(ms.Size))
		}
	case "sphere":
		r := ms.Radius
		if r <= 0 {
			r = 0.5
		}
		seg := ms.Segments
		if seg == 0 {
			seg = 16
		}
		return NewSphereGeometry(r, seg), nil
	case "points":
		pts := make([]math32.Vector3, 0, len(ms.Vertices))
		for i, v := range ms.Vertices {
			p, err := vec3(v, math32.Vector3{})
			if err != nil || len(v) == 0 {
				return nil, fmt.Errorf("vertex %d: want 3 components, got %d", i, len(v))
			}
			pts = append(pts, p)
		}
		return NewPointsGeometry(pts), nil
	default:
		return nil, fmt.Errorf("unknown mesh kind %q", ms.Kind)
	}
}

func vec3(v []float32, def math32.Vector3) (math32.Vector3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return math32.Vec3(v[0], v[1], v[2]), nil
	default:
		return def, fmt.Errorf("want 3 components, got %d", len(v))
	}
}

// ParseColor accepts a CSS color name ("steelblue"), "#rrggbb" or "0xrrggbb".
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
