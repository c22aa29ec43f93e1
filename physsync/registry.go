package physsync

import (
	"slices"

	"cogentcore.org/core/math32"
	"github.com/milk9111/physdemo/physics"
	"github.com/milk9111/physdemo/scene"
)

// Entry pairs a scene node with its physics body.
type Entry struct {
	Handle Handle
	Object *scene.Node
	Body   physics.Body
	// Offset is the translation from the node origin to the body origin, nil
	// when the two coincide.
	Offset *math32.Vector3
	Kind   physics.BodyKind
}

// RenderOrigin maps a body origin back to a node position.
func (e *Entry) RenderOrigin(origin math32.Vector3) math32.Vector3 {
	if e.Offset == nil {
		return origin
	}
	return origin.Sub(*e.Offset)
}

// Registry owns the node to body mapping. Bodies that can move are also kept
// in an ordered active list that the sync loop polls every tick.
type Registry struct {
	handles handleStore
	entries sparseSet[*Entry]
	active  []Handle
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an entry and returns its handle. A zero offset is stored as
// absent.
func (r *Registry) Register(obj *scene.Node, body physics.Body, offset *math32.Vector3) Handle {
	h := r.handles.create()
	e := &Entry{Handle: h, Object: obj, Body: body, Kind: body.Kind()}
	if offset != nil && *offset != (math32.Vector3{}) {
		o := *offset
		e.Offset = &o
	}
	r.entries.set(h.id(), e)
	if e.Kind != physics.BodyStatic {
		r.active = append(r.active, h)
	}
	return h
}

func (r *Registry) Get(h Handle) (*Entry, bool) {
	if !r.handles.alive(h) {
		return nil, false
	}
	return r.entries.get(h.id())
}

// Remove drops an entry. It does not touch the world or the scene.
func (r *Registry) Remove(h Handle) bool {
	if !r.handles.alive(h) {
		return false
	}
	r.entries.remove(h.id())
	r.handles.destroy(h)
	if i := slices.Index(r.active, h); i >= 0 {
		r.active = slices.Delete(r.active, i, i+1)
	}
	return true
}

func (r *Registry) IsActive(h Handle) bool {
	return slices.Contains(r.active, h)
}

// Active returns the polled entries in registration order.
func (r *Registry) Active() []*Entry {
	out := make([]*Entry, 0, len(r.active))
	for _, h := range r.active {
		if e, ok := r.entries.get(h.id()); ok {
			out = append(out, e)
		}
	}
	return out
}

// Entries returns every entry in no particular order.
func (r *Registry) Entries() []*Entry {
	return slices.Clone(r.entries.values())
}

// Clear drops every entry. Handles issued before stay invalid.
func (r *Registry) Clear() {
	for _, e := range r.Entries() {
		r.Remove(e.Handle)
	}
}

func (r *Registry) Len() int {
	return r.entries.len()
}

// NamedBodyMap resolves descriptor names to handles while a scene is built.
type NamedBodyMap map[string]Handle
