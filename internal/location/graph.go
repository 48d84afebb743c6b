// Package location implements the single parent-pointer graph shared
// by rooms, ships, mobs and items (spec §3, §9 "Parent graph vs.
// tree"): one relation for containment, not a per-kind map, grounded
// on original_source's abandoned commons/src/tree.rs design.
package location

import "ownworld/internal/ids"

// Graph is a parent-pointer forest over entity ids.
type Graph struct {
	parent   map[ids.EntityID]ids.EntityID
	children map[ids.EntityID]map[ids.EntityID]struct{}
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		parent:   make(map[ids.EntityID]ids.EntityID),
		children: make(map[ids.EntityID]map[ids.EntityID]struct{}),
	}
}

// Parent returns child's parent, if it has one.
func (g *Graph) Parent(child ids.EntityID) (ids.EntityID, bool) {
	p, ok := g.parent[child]
	return p, ok
}

// Set reparents child to parent. It rejects the change if parent is
// child itself or a descendant of child, which would create a cycle
// (spec §4.3: "walk ancestors of the proposed parent; if the child
// appears, fail").
func (g *Graph) Set(child, parent ids.EntityID) bool {
	if child == parent {
		return false
	}
	cur := parent
	seen := make(map[ids.EntityID]struct{})
	for {
		if cur == child {
			return false
		}
		if _, looped := seen[cur]; looped {
			break // already-corrupt graph; fail safe rather than loop forever
		}
		seen[cur] = struct{}{}
		next, ok := g.parent[cur]
		if !ok {
			break
		}
		cur = next
	}

	g.Clear(child)
	g.parent[child] = parent
	set, ok := g.children[parent]
	if !ok {
		set = make(map[ids.EntityID]struct{})
		g.children[parent] = set
	}
	set[child] = struct{}{}
	return true
}

// Clear removes child's parent edge, if any, leaving it a root.
func (g *Graph) Clear(child ids.EntityID) {
	old, ok := g.parent[child]
	if !ok {
		return
	}
	delete(g.parent, child)
	if set, ok := g.children[old]; ok {
		delete(set, child)
		if len(set) == 0 {
			delete(g.children, old)
		}
	}
}

// Children returns the immediate children of id.
func (g *Graph) Children(id ids.EntityID) []ids.EntityID {
	set := g.children[id]
	out := make([]ids.EntityID, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

// Ancestors returns id's parent, grandparent, ... up to the root, in
// that order.
func (g *Graph) Ancestors(id ids.EntityID) []ids.EntityID {
	var out []ids.EntityID
	visited := make(map[ids.EntityID]struct{})
	cur := id
	for {
		p, ok := g.parent[cur]
		if !ok {
			return out
		}
		if _, looped := visited[p]; looped {
			return out // bounded even if the graph were corrupted
		}
		visited[p] = struct{}{}
		out = append(out, p)
		cur = p
	}
}

// Descendants returns every transitive child of id, pre-order,
// deduplicated via a visited set so it terminates even over a
// corrupted graph (spec §4.3).
func (g *Graph) Descendants(id ids.EntityID) []ids.EntityID {
	var out []ids.EntityID
	visited := map[ids.EntityID]struct{}{id: {}}
	var walk func(ids.EntityID)
	walk = func(cur ids.EntityID) {
		for _, c := range g.Children(cur) {
			if _, seen := visited[c]; seen {
				continue
			}
			visited[c] = struct{}{}
			out = append(out, c)
			walk(c)
		}
	}
	walk(id)
	return out
}

// Roots returns every entity with no parent that has at least one
// child, i.e. the roots of non-trivial subtrees currently tracked.
func (g *Graph) Roots() []ids.EntityID {
	out := make([]ids.EntityID, 0, len(g.children))
	for p := range g.children {
		if _, hasParent := g.parent[p]; !hasParent {
			out = append(out, p)
		}
	}
	return out
}
