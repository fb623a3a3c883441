// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

// detach removes an indexed object from its leaf and from the reverse
// map, without touching any box. Returns the leaf, or none, changing
// nothing, if the leaf did not list the object.
func (idx *Index[T]) detach(obj T) nodeID {
	leaf := idx.leaves[obj]
	n := idx.node(leaf)
	if n.free || !n.leaf {
		idx.log.WithField("object", obj).Error(fmtErr("reverse map points at node %d which is not a leaf", leaf))
		return none
	}
	for i, o := range n.objects {
		if o != obj {
			continue
		}
		delete(idx.leaves, obj)
		last := len(n.objects) - 1
		copy(n.objects[i:], n.objects[i+1:])
		var zero T
		n.objects[last] = zero
		n.objects = n.objects[:last]
		return leaf
	}
	idx.log.WithField("object", obj).Error(fmtErr("reverse map points at leaf %d which does not hold the object", leaf))
	return none
}

// condense restores the tree after objects were detached from a leaf.
// A leaf left with fewer than minFill objects is cut from its parent
// and its objects are appended to orphans; a parent left with a single
// child absorbs that child. The boxes of every surviving ancestor are
// recomputed. Returns the extended orphans list, which the caller must
// reinsert.
func (idx *Index[T]) condense(id nodeID, orphans []T) []T {
	for id != none {
		n := idx.node(id)
		if n.free || !n.leaf || len(n.objects) >= minFill {
			if !n.free {
				idx.refit(id)
			}
			return orphans
		}
		parent := n.parent
		if parent == none {
			// The root leaf may hold a single object. Once empty, the
			// tree is empty.
			if len(n.objects) == 0 {
				idx.release(id)
				idx.root = none
			} else {
				idx.fit(id)
			}
			return orphans
		}
		for _, obj := range n.objects {
			delete(idx.leaves, obj)
			orphans = append(orphans, obj)
		}
		p := idx.node(parent)
		i := idx.childIndex(parent, id)
		if i < 0 {
			idx.log.WithField("node", id).Error(fmtErr("parent %d does not list child %d", parent, id))
			return orphans
		}
		p.children = append(p.children[:i], p.children[i+1:]...)
		idx.release(id)
		if len(idx.node(parent).children) == 1 {
			idx.collapse(parent)
		}
		// The parent may have absorbed an underflowing leaf, so check
		// it in turn.
		id = parent
	}
	return orphans
}

// collapse replaces a node having a single child with that child's
// contents, releasing the child.
func (idx *Index[T]) collapse(id nodeID) {
	c := idx.node(id).children[0]
	child := *idx.node(c)
	idx.release(c)
	n := idx.node(id)
	n.leaf = child.leaf
	n.level = child.level
	n.box = child.box
	n.objects = child.objects
	n.children = child.children
	idx.adopt(id)
}
