// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

// A nodeID addresses a node within an Index's node arena. The zero
// nodeID is never allocated and stands for "no node".
type nodeID int32

const none nodeID = 0

// A node is either a leaf holding object handles or an internal node
// holding child nodes. Its box is always the tight union of the boxes
// of its entries.
type node[T comparable] struct {
	box    Box
	parent nodeID
	// level is zero for leaves and one more than the level of the
	// tallest child for internal nodes.
	level    int
	leaf     bool
	objects  []T
	children []nodeID
	// free marks an arena slot waiting on the free list.
	free bool
}

func (n *node[T]) size() int {
	if n.leaf {
		return len(n.objects)
	}
	return len(n.children)
}

// node converts a nodeID into a node pointer. The pointer is only valid
// until the next allocation.
func (idx *Index[T]) node(id nodeID) *node[T] {
	return &idx.nodes[id]
}

func (idx *Index[T]) alloc(leaf bool, level int) nodeID {
	if n := len(idx.freeList); n > 0 {
		id := idx.freeList[n-1]
		idx.freeList = idx.freeList[:n-1]
		idx.nodes[id] = node[T]{box: EmptyBox, leaf: leaf, level: level}
		return id
	}
	idx.nodes = append(idx.nodes, node[T]{box: EmptyBox, leaf: leaf, level: level})
	return nodeID(len(idx.nodes) - 1)
}

func (idx *Index[T]) release(id nodeID) {
	idx.nodes[id] = node[T]{free: true}
	idx.freeList = append(idx.freeList, id)
}

// objectBox returns the provider's bounds for an indexed object. An
// object whose bounds have become unobtainable is reported and treated
// as EmptyBox so that it cannot corrupt the boxes above it.
func (idx *Index[T]) objectBox(obj T) Box {
	b, ok := idx.provider.Bounds(obj)
	if !ok {
		idx.log.WithField("object", obj).Error(textErr("indexed object has no bounds"))
		return EmptyBox
	}
	return b
}

// entryBox returns the box of the i-th entry of node n.
func (idx *Index[T]) entryBox(n *node[T], i int) Box {
	if n.leaf {
		return idx.objectBox(n.objects[i])
	}
	return idx.nodes[n.children[i]].box
}

// fit recomputes the box and level of a single node from its entries.
func (idx *Index[T]) fit(id nodeID) {
	n := idx.node(id)
	b := EmptyBox
	level := 0
	if n.leaf {
		for _, obj := range n.objects {
			ob := idx.objectBox(obj)
			b.Expand(&ob)
		}
	} else {
		for _, c := range n.children {
			child := idx.node(c)
			b.Expand(&child.box)
			if child.level+1 > level {
				level = child.level + 1
			}
		}
	}
	n.box = b
	n.level = level
}

// refit recomputes the boxes of a node and all of its ancestors.
func (idx *Index[T]) refit(id nodeID) {
	for id != none {
		idx.fit(id)
		id = idx.node(id).parent
	}
}

// adopt points the entries of a node back at it: the parent links of
// its children, or the reverse map entries of its objects.
func (idx *Index[T]) adopt(id nodeID) {
	n := idx.node(id)
	if n.leaf {
		for _, obj := range n.objects {
			idx.leaves[obj] = id
		}
		return
	}
	for _, c := range n.children {
		idx.nodes[c].parent = id
	}
}

// childIndex returns the position of child within parent's child list,
// or -1 if the parent does not list it.
func (idx *Index[T]) childIndex(parent, child nodeID) int {
	for i, c := range idx.node(parent).children {
		if c == child {
			return i
		}
	}
	return -1
}
