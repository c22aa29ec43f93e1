package descriptor

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ShapeKind is the collision shape requested for a rigid body.
type ShapeKind int

const (
	ShapeNone ShapeKind = iota
	ShapeBox
	ShapeSphere
	ShapeCapsule
	ShapeUnknown
)

var shapeNames = map[string]ShapeKind{
	"":        ShapeNone,
	"BOX":     ShapeBox,
	"SPHERE":  ShapeSphere,
	"CAPSULE": ShapeCapsule,
}

func (k ShapeKind) String() string {
	switch k {
	case ShapeNone:
		return "NONE"
	case ShapeBox:
		return "BOX"
	case ShapeSphere:
		return "SPHERE"
	case ShapeCapsule:
		return "CAPSULE"
	default:
		return "UNKNOWN"
	}
}

// CollisionShape keeps the parsed kind together with the value as written,
// so unknown kinds can still be reported by name.
type CollisionShape struct {
	Kind ShapeKind
	Name string
}

func ParseShape(s string) CollisionShape {
	name := strings.ToUpper(strings.TrimSpace(s))
	kind, ok := shapeNames[name]
	if !ok {
		kind = ShapeUnknown
	}
	return CollisionShape{Kind: kind, Name: name}
}

func (c *CollisionShape) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("descriptor: line %d: collision_shape must be a string", n.Line)
	}
	*c = ParseShape(n.Value)
	return nil
}

func (c CollisionShape) String() string {
	if c.Kind == ShapeUnknown {
		return c.Name
	}
	return c.Kind.String()
}

// ConstraintKind is the constraint type of a descriptor entry.
type ConstraintKind int

const (
	ConstraintUnknown ConstraintKind = iota
	ConstraintPoint
	ConstraintHinge
	ConstraintFixed
	ConstraintSlider
	ConstraintPiston
	ConstraintGeneric
	ConstraintGenericSpring
)

var constraintNames = map[string]ConstraintKind{
	"POINT":          ConstraintPoint,
	"HINGE":          ConstraintHinge,
	"FIXED":          ConstraintFixed,
	"SLIDER":         ConstraintSlider,
	"PISTON":         ConstraintPiston,
	"GENERIC":        ConstraintGeneric,
	"GENERIC_SPRING": ConstraintGenericSpring,
}

func (k ConstraintKind) String() string {
	for name, kind := range constraintNames {
		if kind == k {
			return name
		}
	}
	return "UNKNOWN"
}

// ConstraintType keeps the parsed kind and the value as written.
type ConstraintType struct {
	Kind ConstraintKind
	Name string
}

func ParseConstraintType(s string) ConstraintType {
	name := strings.ToUpper(strings.TrimSpace(s))
	return ConstraintType{Kind: constraintNames[name], Name: name}
}

func (c *ConstraintType) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("descriptor: line %d: constraint type must be a string", n.Line)
	}
	*c = ParseConstraintType(n.Value)
	return nil
}

func (c ConstraintType) String() string {
	if c.Kind == ConstraintUnknown {
		return c.Name
	}
	return c.Kind.String()
}
