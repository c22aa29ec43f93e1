// Package motion runs tengo scripts that move kinematic bodies.
//
// A script sees two globals: t, the simulated seconds since the session
// started, and origin, the body's starting position as [x, y, z]. It sets
// position ([x, y, z]) and may set angle, a rotation about Z in radians.
//
//	math := import("math")
//	position = [origin[0] + math.sin(t), origin[1], origin[2]]
//	angle = t * 0.5
package motion

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Pose is a script result.
type Pose struct {
	Position math32.Vector3
	Angle    float32
	HasAngle bool
}

type Script struct {
	name     string
	compiled *tengo.Compiled
}

// Compile prepares src for repeated evaluation. The tengo stdlib modules are
// importable.
func Compile(name string, src []byte) (*Script, error) {
	script := tengo.NewScript(src)
	_ = script.Add("t", 0.0)
	_ = script.Add("origin", vecObject(math32.Vector3{}))
	_ = script.Add("position", tengo.UndefinedValue)
	_ = script.Add("angle", tengo.UndefinedValue)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("motion: compile %s: %w", name, err)
	}
	return &Script{name: name, compiled: compiled}, nil
}

func (s *Script) Name() string { return s.name }

// Eval runs the script for time t.
func (s *Script) Eval(t float64, origin math32.Vector3) (Pose, error) {
	if s == nil || s.compiled == nil {
		return Pose{}, fmt.Errorf("motion: nil script")
	}
	if err := s.compiled.Set("t", t); err != nil {
		return Pose{}, fmt.Errorf("motion: %s: set t: %w", s.name, err)
	}
	if err := s.compiled.Set("origin", vecObject(origin)); err != nil {
		return Pose{}, fmt.Errorf("motion: %s: set origin: %w", s.name, err)
	}
	if err := s.compiled.Set("position", tengo.UndefinedValue); err != nil {
		return Pose{}, fmt.Errorf("motion: %s: reset position: %w", s.name, err)
	}
	if err := s.compiled.Set("angle", tengo.UndefinedValue); err != nil {
		return Pose{}, fmt.Errorf("motion: %s: reset angle: %w", s.name, err)
	}
	if err := s.compiled.Run(); err != nil {
		return Pose{}, fmt.Errorf("motion: run %s: %w", s.name, err)
	}

	pose := Pose{Position: origin}
	if pos := s.compiled.Get("position").Object(); pos != tengo.UndefinedValue {
		v, err := objectToVec(pos)
		if err != nil {
			return Pose{}, fmt.Errorf("motion: %s: position: %w", s.name, err)
		}
		pose.Position = v
	}
	if ang := s.compiled.Get("angle").Object(); ang != tengo.UndefinedValue {
		f, ok := tengo.ToFloat64(ang)
		if !ok {
			return Pose{}, fmt.Errorf("motion: %s: angle must be a number, got %s", s.name, ang.TypeName())
		}
		pose.Angle = float32(f)
		pose.HasAngle = true
	}
	return pose, nil
}

func vecObject(v math32.Vector3) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: float64(v.X)},
		&tengo.Float{Value: float64(v.Y)},
		&tengo.Float{Value: float64(v.Z)},
	}}
}

func objectToVec(obj tengo.Object) (math32.Vector3, error) {
	var items []tengo.Object
	switch v := obj.(type) {
	case *tengo.Array:
		items = v.Value
	case *tengo.ImmutableArray:
		items = v.Value
	default:
		return math32.Vector3{}, fmt.Errorf("want [x, y, z], got %s", obj.TypeName())
	}
	if len(items) != 3 {
		return math32.Vector3{}, fmt.Errorf("want 3 components, got %d", len(items))
	}
	var out [3]float32
	for i, item := range items {
		f, ok := tengo.ToFloat64(item)
		if !ok {
			return math32.Vector3{}, fmt.Errorf("component %d is %s, not a number", i, item.TypeName())
		}
		out[i] = float32(f)
	}
	return math32.Vec3(out[0], out[1], out[2]), nil
}
