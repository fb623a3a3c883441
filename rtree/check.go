// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

// Check verifies the structural invariants of the tree and returns the
// first violation found, or nil. It walks the whole tree and asks the
// provider for the bounds of every object, so it is meant for tests and
// debugging rather than routine use.
//
// The invariants are:
//   - every node's box is the tight union of its entries' boxes;
//   - no node holds more than MaxNodes entries;
//   - every node other than the root holds at least two entries;
//   - every child points back at its parent;
//   - the reverse map holds exactly the objects found in the leaves,
//     each pointing at the leaf which holds it.
func (idx *Index[T]) Check() error {
	if idx.root == none {
		if len(idx.leaves) != 0 {
			return fmtErr("empty tree but reverse map has %d entries", len(idx.leaves))
		}
		return nil
	}
	if p := idx.node(idx.root).parent; p != none {
		return fmtErr("root %d has parent %d", idx.root, p)
	}
	seen := 0
	q := ticketBag{idx.root}
	for len(q) > 0 {
		id := q.pop()
		n := idx.node(id)
		if n.free {
			return fmtErr("node %d is reachable but released", id)
		}
		if n.size() > idx.maxNodes {
			return fmtErr("node %d holds %d entries, more than %d", id, n.size(), idx.maxNodes)
		}
		if id != idx.root && n.size() < minFill {
			return fmtErr("node %d holds %d entries, fewer than %d", id, n.size(), minFill)
		}
		if n.leaf && len(n.children) > 0 || !n.leaf && len(n.objects) > 0 {
			return fmtErr("node %d holds both objects and children", id)
		}
		tight := EmptyBox
		if n.leaf {
			for _, obj := range n.objects {
				leaf, ok := idx.leaves[obj]
				if !ok {
					return fmtErr("object %v in leaf %d is missing from the reverse map", obj, id)
				} else if leaf != id {
					return fmtErr("object %v in leaf %d is mapped to node %d", obj, id, leaf)
				}
				b := idx.objectBox(obj)
				tight.Expand(&b)
				seen++
			}
			if n.level != 0 {
				return fmtErr("leaf %d has level %d", id, n.level)
			}
		} else {
			for _, c := range n.children {
				child := idx.node(c)
				if child.parent != id {
					return fmtErr("child %d of node %d points at parent %d", c, id, child.parent)
				}
				if child.level >= n.level {
					return fmtErr("child %d has level %d, not below parent %d level %d", c, child.level, id, n.level)
				}
				tight.Expand(&child.box)
				q.push(c)
			}
		}
		if tight != n.box {
			return fmtErr("node %d box %v is not the tight bound %v", id, n.box, tight)
		}
	}
	if seen != len(idx.leaves) {
		return fmtErr("leaves hold %d objects but reverse map has %d entries", seen, len(idx.leaves))
	}
	return nil
}
