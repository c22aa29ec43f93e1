package physsync

import (
	"errors"
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/milk9111/physdemo/physics"
	"github.com/milk9111/physdemo/scene"
	"go.uber.org/zap"
)

var ErrInvalidBody = errors.New("physsync: invalid body request")

type BodyOptions struct {
	Mass float32
	// Offset is added to the node position to get the body origin.
	Offset      *math32.Vector3
	Kinematic   bool
	Friction    float32
	Restitution float32
}

// Factory creates bodies and keeps the world, the scene and the registry in
// step with each other.
type Factory struct {
	World    physics.World
	Scene    *scene.Scene
	Registry *Registry
	Log      *zap.Logger
}

// CreateBody adds a body for node to the world, then adds node to the scene
// if it is not there yet and registers the pair. Nothing is changed when the
// world rejects the body.
func (f *Factory) CreateBody(node *scene.Node, shape physics.Shape, opts BodyOptions) (Handle, physics.Body, error) {
	if node == nil || shape == nil {
		return 0, nil, ErrInvalidBody
	}
	if f.World == nil || f.Registry == nil {
		return 0, nil, fmt.Errorf("%w: factory has no world or registry", ErrInvalidBody)
	}

	kind := physics.BodyStatic
	switch {
	case opts.Kinematic:
		kind = physics.BodyKinematic
	case opts.Mass > 0:
		kind = physics.BodyDynamic
	}

	mass := opts.Mass
	if kind != physics.BodyDynamic {
		mass = 0
	}

	origin := node.Position
	if opts.Offset != nil {
		origin = origin.Add(*opts.Offset)
	}

	body, err := f.World.AddBody(physics.BodyDef{
		Name:         node.Name,
		Kind:         kind,
		Mass:         mass,
		Inertia:      physics.LocalInertia(shape, mass),
		Shape:        shape,
		Transform:    physics.Transform{Origin: origin, Rotation: node.Rotation},
		Friction:     opts.Friction,
		Restitution:  opts.Restitution,
		AlwaysActive: kind != physics.BodyStatic,
	})
	if err != nil {
		return 0, nil, fmt.Errorf("physsync: create body %q: %w", node.Name, err)
	}

	if f.Scene != nil && !f.Scene.Contains(node) {
		f.Scene.Add(node)
	}
	h := f.Registry.Register(node, body, opts.Offset)

	if f.Log != nil {
		f.Log.Debug("body created",
			zap.String("name", node.Name),
			zap.Stringer("handle", h),
			zap.Stringer("kind", kind),
			zap.Stringer("shape", shape.Kind()),
			zap.Float32("mass", mass),
		)
	}
	return h, body, nil
}
