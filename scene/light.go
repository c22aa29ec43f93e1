package scene

import (
	"image/color"

	"cogentcore.org/core/math32"
)

type LightKind string

const (
	LightAmbient     LightKind = "ambient"
	LightDirectional LightKind = "directional"
)

type Light struct {
	Name          string
	Kind          LightKind
	Color         color.RGBA
	Intensity     float32
	Position      math32.Vector3
	CastShadow    bool
	ShadowMapSize int
}

// Grid is a flat helper grid drawn on the XZ plane.
type Grid struct {
	Size      float32
	Divisions int
	Opacity   float32
	Y         float32
}
