// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"math"

	"github.com/sirupsen/logrus"
)

// Index is a dynamic R-Tree over object handles of type T. The zero
// value of T is treated as the null handle and is never indexed.
//
// Use New to create an Index.
type Index[T comparable] struct {
	provider      Provider[T]
	maxNodes      int
	hilbertReplay bool
	log           logrus.FieldLogger
	// nodes is the node arena. Slot 0 is never used, so that the zero
	// nodeID can mean "no node".
	nodes    []node[T]
	freeList []nodeID
	root     nodeID
	// leaves maps every indexed object to the leaf that holds it.
	leaves map[T]nodeID
	// path is scratch space for chooseLeaf.
	path []nodeID
	// locked is set between Lock and Unlock, when mutations are only
	// recorded into the pending sets.
	locked         bool
	pendingInserts pendingSet[T]
	pendingMoves   pendingSet[T]
	pendingDeletes pendingSet[T]
	// pendingCondense lists the leaves that lost destroyed objects while
	// locked.
	pendingCondense []nodeID
}

// New creates an empty Index which obtains object geometry from p. If
// cfg is nil, DefaultConfig is used. Panics if p is nil or cfg is
// invalid.
func New[T comparable](p Provider[T], cfg *Config) *Index[T] {
	if p == nil {
		textPanic("nil provider")
	}
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	if err := c.validate(); err != nil {
		panic(err.Error())
	}
	return &Index[T]{
		provider:      p,
		maxNodes:      c.MaxNodes,
		hilbertReplay: c.HilbertReplay,
		log:           c.logger(),
		nodes:         make([]node[T], 1, 64),
		leaves:        make(map[T]nodeID),
	}
}

// Len returns the number of objects in the tree. Mutations deferred by
// Lock are not counted until Unlock applies them, but destroyed objects
// stop counting at once.
func (idx *Index[T]) Len() int {
	return len(idx.leaves)
}

// MaxNodes returns the node capacity of the tree.
func (idx *Index[T]) MaxNodes() int {
	return idx.maxNodes
}

// Height returns the number of node levels in the tree, zero if the
// tree is empty.
func (idx *Index[T]) Height() int {
	if idx.root == none {
		return 0
	}
	return idx.node(idx.root).level + 1
}

// Bounds returns the box around every object in the tree. It returns
// false if the tree is empty.
func (idx *Index[T]) Bounds() (Box, bool) {
	if idx.root == none {
		return EmptyBox, false
	}
	return idx.node(idx.root).box, true
}

// Contains reports whether obj is currently in the tree.
func (idx *Index[T]) Contains(obj T) bool {
	_, ok := idx.leaves[obj]
	return ok
}

// Insert adds an object to the index. It returns false, without
// changing anything, if obj is the null handle or the provider cannot
// supply its bounds. Inserting an object which is already indexed has
// the same effect as Move.
func (idx *Index[T]) Insert(obj T) bool {
	var zero T
	if obj == zero {
		return false
	}
	b, ok := idx.provider.Bounds(obj)
	if !ok {
		return false
	}
	if idx.locked {
		idx.deferInsert(obj)
		return true
	}
	if _, ok = idx.leaves[obj]; ok {
		return idx.move(obj, b)
	}
	return idx.insert(obj, b)
}

// Move updates the position of an indexed object whose bounds have
// changed. If the new bounds still fit inside the object's leaf, only
// the boxes on the leaf's path are recomputed. Otherwise the object is
// removed and inserted again. Returns false if the object is not
// indexed or its bounds cannot be obtained.
func (idx *Index[T]) Move(obj T) bool {
	var zero T
	if obj == zero {
		return false
	}
	if idx.locked {
		return idx.deferMove(obj)
	}
	b, ok := idx.provider.Bounds(obj)
	if !ok {
		return false
	}
	if _, ok = idx.leaves[obj]; !ok {
		return false
	}
	return idx.move(obj, b)
}

// Remove deletes an object from the index. Returns false if the object
// was not indexed.
func (idx *Index[T]) Remove(obj T) bool {
	if idx.locked {
		return idx.deferRemove(obj)
	}
	if _, ok := idx.leaves[obj]; !ok {
		return false
	}
	leaf := idx.detach(obj)
	if leaf == none {
		return false
	}
	idx.reinsert(idx.condense(leaf, nil))
	return true
}

// ObjectDestroyed must be called by the object owner before an indexed
// object is destroyed. It removes every reference the index holds to
// the object, including any mutation recorded for it since Lock.
//
// Inside a batch the object leaves its leaf and the reverse map at
// once, so that the index never asks the provider about it again. Only
// the condensation of the leaf waits for Unlock.
func (idx *Index[T]) ObjectDestroyed(obj T) {
	if !idx.locked {
		idx.Remove(obj)
		return
	}
	idx.pendingInserts.remove(obj)
	idx.pendingMoves.remove(obj)
	idx.pendingDeletes.remove(obj)
	if _, ok := idx.leaves[obj]; !ok {
		return
	}
	if leaf := idx.detach(obj); leaf != none {
		idx.pendingCondense = append(idx.pendingCondense, leaf)
	}
}

// insert places an object with bounds b into the tree.
func (idx *Index[T]) insert(obj T, b Box) bool {
	if idx.root == none {
		id := idx.alloc(true, 0)
		n := idx.node(id)
		n.objects = append(make([]T, 0, idx.maxNodes+1), obj)
		n.box = b
		idx.root = id
		idx.leaves[obj] = id
		return true
	}
	leaf, ok := idx.chooseLeaf(&b)
	if !ok {
		return false
	}
	n := idx.node(leaf)
	n.objects = append(n.objects, obj)
	idx.leaves[obj] = leaf
	if len(n.objects) > idx.maxNodes {
		idx.split(leaf)
	}
	return true
}

// chooseLeaf descends from the root to the leaf whose box needs the
// least enlargement to cover b, then expands every box on the way down
// to include b. Nothing is modified if no leaf is found.
func (idx *Index[T]) chooseLeaf(b *Box) (nodeID, bool) {
	path := idx.path[:0]
	id := idx.root
	for {
		n := idx.node(id)
		if n.free {
			idx.log.WithField("node", id).Error(fmtErr("insert reached released node %d", id))
			return none, false
		}
		path = append(path, id)
		if n.leaf {
			break
		}
		if len(n.children) == 0 {
			idx.log.WithField("node", id).Error(fmtErr("insert found no leaf under internal node %d", id))
			return none, false
		}
		best := n.children[0]
		bestDelta := math.Inf(1)
		for _, c := range n.children {
			d := idx.nodes[c].box.enlargement(b)
			if d < bestDelta {
				best, bestDelta = c, d
				if d == 0 {
					break
				}
			}
		}
		id = best
	}
	for _, p := range path {
		idx.nodes[p].box.Expand(b)
	}
	idx.path = path
	return id, true
}

func (idx *Index[T]) move(obj T, b Box) bool {
	leaf := idx.leaves[obj]
	if idx.node(leaf).box.Contains(&b) {
		idx.refit(leaf)
		return true
	}
	old := idx.detach(obj)
	if old == none {
		return false
	}
	idx.reinsert(idx.condense(old, nil))
	if !idx.insert(obj, b) {
		idx.log.WithField("object", obj).Error(textErr("moved object could not be inserted again"))
		return false
	}
	return true
}

// reinsert inserts objects orphaned by condensation or deferred by
// Lock. Objects whose bounds are no longer obtainable are dropped.
func (idx *Index[T]) reinsert(objs []T) {
	for _, obj := range objs {
		b, ok := idx.provider.Bounds(obj)
		if !ok {
			idx.log.WithField("object", obj).Warn(textErr("dropping object without bounds"))
			continue
		}
		if !idx.insert(obj, b) {
			idx.log.WithField("object", obj).Error(textErr("dropping object which could not be inserted again"))
		}
	}
}
