package descriptor

import (
	"errors"
	"fmt"
	"os"

	"cogentcore.org/core/math32"
	"github.com/milk9111/physdemo/scene"
	"gopkg.in/yaml.v3"
)

var ErrMalformedVector = errors.New("descriptor: malformed vector")

const DefaultFriction = 0.5

// Document is a validated physics descriptor.
type Document struct {
	RigidBodies []RigidBodySpec
	Constraints []ConstraintSpec
}

type RigidBodySpec struct {
	Name        string
	Shape       CollisionShape
	Mass        float32
	Kinematic   bool
	Friction    float32
	Restitution float32
	Script      string
}

// ConstraintSpec describes one constraint. An empty object name means the
// participant is absent.
type ConstraintSpec struct {
	Index             int
	Type              ConstraintType
	Object1           string
	Object2           string
	TranslationA      math32.Vector3
	RotationA         math32.Quat
	TranslationB      math32.Vector3
	RotationB         math32.Quat
	DisableCollisions bool
}

type wireDocument struct {
	RigidBodies []wireRigidBody  `yaml:"rigid_bodies"`
	Constraints []wireConstraint `yaml:"constraints"`
}

type wireRigidBody struct {
	Name        string         `yaml:"name"`
	Shape       CollisionShape `yaml:"collision_shape"`
	Mass        float32        `yaml:"mass"`
	Kinematic   bool           `yaml:"kinematic"`
	Friction    *float32       `yaml:"friction"`
	Restitution float32        `yaml:"restitution"`
	Script      string         `yaml:"script"`
}

type wireConstraint struct {
	Type              ConstraintType `yaml:"type"`
	Object1           string         `yaml:"object1"`
	Object2           string         `yaml:"object2"`
	TranslationA      []float32      `yaml:"translation_offset_a"`
	RotationA         []float32      `yaml:"rotation_offset_a"`
	TranslationB      []float32      `yaml:"translation_offset_b"`
	RotationB         []float32      `yaml:"rotation_offset_b"`
	DisableCollisions bool           `yaml:"disable_collisions"`
}

// Load reads a descriptor from disk. JSON and YAML are both accepted.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("descriptor: load %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("descriptor: %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes and validates descriptor bytes. Unsupported shape and
// constraint kinds are kept (see Issues); malformed vectors and negative
// masses are errors.
func Parse(data []byte) (*Document, error) {
	var wire wireDocument
	if err := yaml.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("descriptor: unmarshal: %w", err)
	}

	doc := &Document{}
	for i, rb := range wire.RigidBodies {
		if rb.Mass < 0 {
			return nil, fmt.Errorf("descriptor: rigid body %d (%s): negative mass %v", i, rb.Name, rb.Mass)
		}
		spec := RigidBodySpec{
			Name:        scene.SanitizeName(rb.Name),
			Shape:       rb.Shape,
			Mass:        rb.Mass,
			Kinematic:   rb.Kinematic,
			Friction:    DefaultFriction,
			Restitution: rb.Restitution,
			Script:      rb.Script,
		}
		if rb.Friction != nil {
			spec.Friction = *rb.Friction
		}
		doc.RigidBodies = append(doc.RigidBodies, spec)
	}

	for i, c := range wire.Constraints {
		spec := ConstraintSpec{
			Index:             i,
			Type:              c.Type,
			Object1:           scene.SanitizeName(c.Object1),
			Object2:           scene.SanitizeName(c.Object2),
			DisableCollisions: c.DisableCollisions,
		}
		var err error
		if spec.TranslationA, err = toVec3(c.TranslationA); err != nil {
			return nil, fmt.Errorf("descriptor: constraint %d translation_offset_a: %w", i, err)
		}
		if spec.TranslationB, err = toVec3(c.TranslationB); err != nil {
			return nil, fmt.Errorf("descriptor: constraint %d translation_offset_b: %w", i, err)
		}
		if spec.RotationA, err = toQuat(c.RotationA); err != nil {
			return nil, fmt.Errorf("descriptor: constraint %d rotation_offset_a: %w", i, err)
		}
		if spec.RotationB, err = toQuat(c.RotationB); err != nil {
			return nil, fmt.Errorf("descriptor: constraint %d rotation_offset_b: %w", i, err)
		}
		doc.Constraints = append(doc.Constraints, spec)
	}
	return doc, nil
}

func toVec3(v []float32) (math32.Vector3, error) {
	switch len(v) {
	case 0:
		return math32.Vector3{}, nil
	case 3:
		return math32.Vec3(v[0], v[1], v[2]), nil
	default:
		return math32.Vector3{}, fmt.Errorf("%w: want 3 components, got %d", ErrMalformedVector, len(v))
	}
}

func toQuat(v []float32) (math32.Quat, error) {
	switch len(v) {
	case 0:
		return math32.NewQuat(0, 0, 0, 1), nil
	case 4:
		return math32.NewQuat(v[0], v[1], v[2], v[3]), nil
	default:
		return math32.Quat{}, fmt.Errorf("%w: want 4 components (x, y, z, w), got %d", ErrMalformedVector, len(v))
	}
}

// Body returns the rigid body spec with the given (sanitized) name.
func (d *Document) Body(name string) (RigidBodySpec, bool) {
	if d == nil {
		return RigidBodySpec{}, false
	}
	name = scene.SanitizeName(name)
	for _, rb := range d.RigidBodies {
		if rb.Name == name {
			return rb, true
		}
	}
	return RigidBodySpec{}, false
}
