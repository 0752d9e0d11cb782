package scene

import (
	"SpaceBox/internal/renderer"
)

// Scene owns a flat list of nodes. Removing a node, or clearing the scene, destroys the
// node's components and drops the references they hold.
type Scene struct {
	Name  string
	nodes []*Node
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:  name,
		nodes: make([]*Node, 0),
	}
}

// CreateChild adds a new empty node to the scene.
func (s *Scene) CreateChild(name string) *Node {
	n := newNode(name, s)
	s.nodes = append(s.nodes, n)
	return n
}

// RemoveNode destroys n and reports whether it belonged to this scene.
func (s *Scene) RemoveNode(n *Node) bool {
	for i, o := range s.nodes {
		if o == n {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			n.destroy()
			return true
		}
	}
	return false
}

// FindNode finds a node by name
func (s *Scene) FindNode(name string) *Node {
	for _, n := range s.nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// FindNodesWithTag finds all nodes with a specific tag
func (s *Scene) FindNodesWithTag(tag string) []*Node {
	var result []*Node
	for _, n := range s.nodes {
		if n.Tag == tag {
			result = append(result, n)
		}
	}
	return result
}

func (s *Scene) Nodes() []*Node {
	return s.nodes
}

func (s *Scene) Len() int {
	return len(s.nodes)
}

// Clear removes all nodes
func (s *Scene) Clear() {
	for _, n := range s.nodes {
		n.destroy()
	}
	s.nodes = s.nodes[:0]
}

// Zone returns the first enabled zone in the scene, or DefaultZone.
func (s *Scene) Zone() renderer.Zone {
	for _, n := range s.nodes {
		if !n.Active {
			continue
		}
		if z, ok := GetComponent[*ZoneComponent](n); ok && z.GetEnabled() {
			return z.Zone
		}
	}
	return DefaultZone
}

// Drawables lists every enabled static model on an active node, in creation order.
func (s *Scene) Drawables() []renderer.Drawable {
	var out []renderer.Drawable
	for _, n := range s.nodes {
		if !n.Active {
			continue
		}
		world := n.Transform.Matrix()
		for _, comp := range n.Components {
			sm, ok := comp.(*StaticModel)
			if !ok || !sm.GetEnabled() || sm.Model() == nil || sm.Material() == nil {
				continue
			}
			out = append(out, renderer.Drawable{
				Name:      n.Name,
				Mesh:      sm.Model(),
				Material:  sm.Material(),
				Transform: world,
			})
		}
	}
	return out
}
