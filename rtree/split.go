// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "math"

// split splits an overflowing node, then keeps splitting its ancestors
// for as long as the split leaves them overflowing.
func (idx *Index[T]) split(id nodeID) {
	for id != none && idx.node(id).size() > idx.maxNodes {
		id = idx.splitNode(id)
	}
}

// splitNode divides the entries of node id between id itself, which
// keeps its place in the parent, and a new sibling. If id was the root,
// a new root is grown above the two halves. Returns the parent that
// received the new sibling, or none if a new root was grown.
func (idx *Index[T]) splitNode(id nodeID) nodeID {
	n := idx.node(id)
	boxes := make([]Box, n.size())
	for i := range boxes {
		boxes[i] = idx.entryBox(n, i)
	}
	s1, s2 := pickSeeds(boxes)
	toRight := distribute(boxes, s1, s2, idx.maxNodes)

	leaf, level, parent := n.leaf, n.level, n.parent
	objects, children := n.objects, n.children

	right := idx.alloc(leaf, level)
	ln, rn := idx.node(id), idx.node(right)
	ln.box = EmptyBox
	if leaf {
		ln.objects = make([]T, 0, idx.maxNodes+1)
		rn.objects = make([]T, 0, idx.maxNodes+1)
	} else {
		ln.children = make([]nodeID, 0, idx.maxNodes+1)
		rn.children = make([]nodeID, 0, idx.maxNodes+1)
	}
	for i := range boxes {
		target := ln
		if toRight[i] {
			target = rn
		}
		if leaf {
			target.objects = append(target.objects, objects[i])
		} else {
			target.children = append(target.children, children[i])
		}
		target.box.Expand(&boxes[i])
	}
	idx.adopt(id)
	idx.adopt(right)

	if parent == none {
		root := idx.alloc(false, level+1)
		r := idx.node(root)
		r.children = append(make([]nodeID, 0, idx.maxNodes+1), id, right)
		r.box = idx.nodes[id].box.Union(idx.nodes[right].box)
		idx.adopt(root)
		idx.root = root
		return none
	}
	idx.nodes[right].parent = parent
	p := idx.node(parent)
	p.children = append(p.children, right)
	return parent
}

// pickSeeds returns the pair of entries that are furthest apart, by
// the larger of the two diagonal distances between them. Boxes use
// screen orientation: YMin is the top edge.
func pickSeeds(boxes []Box) (int, int) {
	s1, s2 := 0, 1
	best := math.Inf(-1)
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			if d := separation(&boxes[i], &boxes[j]); d > best {
				s1, s2, best = i, j, d
			}
		}
	}
	return s1, s2
}

// separation is the greater of the distance from the top-left corner of
// a to the bottom-right corner of b and the distance from the
// bottom-left corner of a to the top-right corner of b.
func separation(a, b *Box) float64 {
	d1 := math.Hypot(b.XMax-a.XMin, b.YMax-a.YMin)
	d2 := math.Hypot(b.XMax-a.XMin, b.YMin-a.YMax)
	return math.Max(d1, d2)
}

// distribute assigns every entry to one of two groups seeded by s1 and
// s2, returning true for the entries of the second group. Each entry
// goes to the group whose box grows least, except that no group may
// exceed capacity and each group must end with at least minFill
// entries.
func distribute(boxes []Box, s1, s2, capacity int) []bool {
	toRight := make([]bool, len(boxes))
	toRight[s2] = true
	left, right := boxes[s1], boxes[s2]
	nl, nr := 1, 1
	remaining := len(boxes) - 2
	for i := range boxes {
		if i == s1 || i == s2 {
			continue
		}
		var r bool
		switch {
		case nl >= capacity:
			r = true
		case nr >= capacity:
			r = false
		case minFill-nl >= remaining:
			r = false
		case minFill-nr >= remaining:
			r = true
		default:
			dl, dr := left.enlargement(&boxes[i]), right.enlargement(&boxes[i])
			switch {
			case dl != dr:
				r = dr < dl
			case left.Area() != right.Area():
				r = right.Area() < left.Area()
			default:
				r = nr < nl
			}
		}
		remaining--
		if r {
			nr++
			right.Expand(&boxes[i])
		} else {
			nl++
			left.Expand(&boxes[i])
		}
		toRight[i] = r
	}
	return toRight
}
