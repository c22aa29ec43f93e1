package scene

import (
	"image/color"
	"slices"
)

// Scene owns the renderable nodes, lights and camera of one session.
type Scene struct {
	Background color.RGBA
	Lights     []*Light
	Grid       *Grid
	Camera     *Camera

	nodes  []*Node
	byName map[string]*Node
}

func New() *Scene {
	return &Scene{
		Background: color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff},
		byName:     make(map[string]*Node),
	}
}

// Add inserts a node. It returns false when the node is already present.
// A node whose name collides with another node is still added, but name
// lookups keep returning the first one.
func (s *Scene) Add(n *Node) bool {
	if s == nil || n == nil || s.Contains(n) {
		return false
	}
	if s.byName == nil {
		s.byName = make(map[string]*Node)
	}
	s.nodes = append(s.nodes, n)
	if _, taken := s.byName[n.Name]; !taken && n.Name != "" {
		s.byName[n.Name] = n
	}
	return true
}

// Remove deletes a node from the scene.
func (s *Scene) Remove(n *Node) bool {
	if s == nil || n == nil {
		return false
	}
	idx := slices.Index(s.nodes, n)
	if idx < 0 {
		return false
	}
	s.nodes = slices.Delete(s.nodes, idx, idx+1)
	if s.byName[n.Name] == n {
		delete(s.byName, n.Name)
		for _, other := range s.nodes {
			if other.Name == n.Name {
				s.byName[n.Name] = other
				break
			}
		}
	}
	return true
}

func (s *Scene) Contains(n *Node) bool {
	if s == nil || n == nil {
		return false
	}
	return slices.Contains(s.nodes, n)
}

// Node looks a node up by name; the name is sanitized first.
func (s *Scene) Node(name string) (*Node, bool) {
	if s == nil {
		return nil, false
	}
	n, ok := s.byName[SanitizeName(name)]
	return n, ok
}

// Nodes returns the nodes in insertion order.
func (s *Scene) Nodes() []*Node {
	if s == nil {
		return nil
	}
	return s.nodes
}

func (s *Scene) Len() int {
	if s == nil {
		return 0
	}
	return len(s.nodes)
}
