// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "github.com/paulmach/orb"

// A ticketBag is the stack of nodes still to be visited by a search
// loop. Searches never recurse, so their stack usage does not grow with
// the height of the tree.
type ticketBag []nodeID

func (tb *ticketBag) push(id nodeID) {
	*tb = append(*tb, id)
}

func (tb *ticketBag) pop() nodeID {
	old := *tb
	n := len(old)
	id := old[n-1]
	*tb = old[0 : n-1]
	return id
}

// A matcher decides which nodes a search descends into and which
// objects it returns.
type matcher[T comparable] interface {
	node(b *Box) bool
	object(obj T, b *Box) bool
}

// search walks the tree depth first, visiting only nodes accepted by
// m, and returns the leaf objects accepted by m.
func (idx *Index[T]) search(m matcher[T]) []T {
	r := make([]T, 0)
	if idx.root == none {
		return r
	}
	q := make(ticketBag, 1, 32)
	q[0] = idx.root
	for len(q) > 0 {
		n := idx.node(q.pop())
		if n.leaf {
			for _, obj := range n.objects {
				b := idx.objectBox(obj)
				if m.object(obj, &b) {
					r = append(r, obj)
				}
			}
			continue
		}
		for _, c := range n.children {
			if m.node(&idx.nodes[c].box) {
				q.push(c)
			}
		}
	}
	return r
}

// Find returns every object whose bounding box intersects b. The order
// of the results is not defined. If b is a single point, Find is the
// same as FindPoint.
func (idx *Index[T]) Find(b Box) []T {
	if b.IsPoint() {
		return idx.FindPoint(b.XMin, b.YMin)
	}
	return idx.search(boxMatcher[T]{b})
}

// FindPoint returns every object whose bounding box contains the point
// (x, y). The order of the results is not defined.
func (idx *Index[T]) FindPoint(x, y float64) []T {
	return idx.search(pointMatcher[T]{x, y})
}

// FindPolygon returns every object whose bounding box intersects p
// according to the provider's exact IntersectsPolygon test. Objects
// whose bounding box overlaps the bounding box of p but which fail the
// exact test are reported to the provider's WithdrawVisibility. The
// order of the results is not defined.
func (idx *Index[T]) FindPolygon(p orb.Polygon) []T {
	if len(p) == 0 || len(p[0]) == 0 {
		return make([]T, 0)
	}
	return idx.search(&polygonMatcher[T]{
		provider: idx.provider,
		polygon:  p,
		bounds:   BoxFromBound(p.Bound()),
	})
}

type boxMatcher[T comparable] struct {
	b Box
}

func (m boxMatcher[T]) node(b *Box) bool {
	return m.b.Intersects(b)
}

func (m boxMatcher[T]) object(_ T, b *Box) bool {
	return m.b.Intersects(b)
}

type pointMatcher[T comparable] struct {
	x, y float64
}

func (m pointMatcher[T]) node(b *Box) bool {
	return b.ContainsXY(m.x, m.y)
}

func (m pointMatcher[T]) object(_ T, b *Box) bool {
	return b.ContainsXY(m.x, m.y)
}

type polygonMatcher[T comparable] struct {
	provider Provider[T]
	polygon  orb.Polygon
	bounds   Box
}

func (m *polygonMatcher[T]) node(b *Box) bool {
	return m.bounds.Intersects(b) && m.provider.IntersectsPolygon(*b, m.polygon)
}

func (m *polygonMatcher[T]) object(obj T, b *Box) bool {
	if !m.bounds.Intersects(b) {
		return false
	}
	if m.provider.IntersectsPolygon(*b, m.polygon) {
		return true
	}
	m.provider.WithdrawVisibility(obj)
	return false
}
