// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "github.com/sirupsen/logrus"

// A pendingSet is an insertion-ordered set of objects. Ordering keeps
// the replay done by Unlock deterministic.
type pendingSet[T comparable] struct {
	order []T
	in    map[T]struct{}
}

func (s *pendingSet[T]) add(obj T) {
	if s.in == nil {
		s.in = make(map[T]struct{})
	}
	if _, ok := s.in[obj]; ok {
		return
	}
	s.in[obj] = struct{}{}
	s.order = append(s.order, obj)
}

func (s *pendingSet[T]) remove(obj T) bool {
	if _, ok := s.in[obj]; !ok {
		return false
	}
	delete(s.in, obj)
	return true
}

func (s *pendingSet[T]) has(obj T) bool {
	_, ok := s.in[obj]
	return ok
}

func (s *pendingSet[T]) len() int {
	return len(s.in)
}

// drain returns the members in the order they were first added and
// empties the set.
func (s *pendingSet[T]) drain() []T {
	items := make([]T, 0, len(s.in))
	for _, obj := range s.order {
		if _, ok := s.in[obj]; ok {
			items = append(items, obj)
			delete(s.in, obj)
		}
	}
	s.order = s.order[:0]
	return items
}

// Lock starts a batch. Until Unlock is called, Insert, Move and Remove
// only record the affected objects and the tree structure is left
// unchanged, so searches see the state from before Lock. ObjectDestroyed
// drops the object from the tree at once but also leaves the structure
// alone.
//
// Lock changes when the tree is restructured, not what it finally
// contains: a batch has the same logical outcome as performing its
// mutations one at a time. Calling Lock on a locked Index has no
// effect.
func (idx *Index[T]) Lock() {
	idx.locked = true
}

// Locked reports whether the Index is inside a Lock/Unlock batch.
func (idx *Index[T]) Locked() bool {
	return idx.locked
}

// Unlock ends a batch and applies the recorded mutations: first the
// moves, then all deletions followed by a single condensation pass,
// which also covers the leaves emptied by ObjectDestroyed, and
// finally the insertions, which include the objects orphaned by
// condensation and the moved objects that no longer fit their leaves.
// Calling Unlock on an Index that is not locked has no effect.
func (idx *Index[T]) Unlock() {
	if !idx.locked {
		return
	}
	idx.locked = false

	moves := idx.pendingMoves.drain()
	deletes := idx.pendingDeletes.drain()
	inserts := idx.pendingInserts.drain()
	idx.log.WithFields(logrus.Fields{
		"moves":   len(moves),
		"deletes": len(deletes),
		"inserts": len(inserts),
	}).Debug("rtree: applying batch")

	// Moves that still fit their leaves only need boxes recomputed.
	// The rest become a deletion plus an insertion.
	for _, obj := range moves {
		leaf, ok := idx.leaves[obj]
		if !ok {
			continue
		}
		b, ok := idx.provider.Bounds(obj)
		if ok && idx.node(leaf).box.Contains(&b) {
			idx.refit(leaf)
			continue
		}
		deletes = append(deletes, obj)
		if ok {
			inserts = append(inserts, obj)
		} else {
			idx.log.WithField("object", obj).Warn(textErr("removing moved object without bounds"))
		}
	}

	// Detach every deleted object first, then condense each affected
	// leaf once.
	affected := append(make([]nodeID, 0, len(idx.pendingCondense)+len(deletes)), idx.pendingCondense...)
	idx.pendingCondense = idx.pendingCondense[:0]
	for _, obj := range deletes {
		if _, ok := idx.leaves[obj]; !ok {
			continue
		}
		if leaf := idx.detach(obj); leaf != none {
			affected = append(affected, leaf)
		}
	}
	var orphans []T
	for _, leaf := range affected {
		orphans = idx.condense(leaf, orphans)
	}

	inserts = append(inserts, orphans...)
	idx.replay(inserts)
}

// replay inserts deferred objects, in Hilbert curve order when so
// configured.
func (idx *Index[T]) replay(objs []T) {
	items := make([]pending[T], 0, len(objs))
	extent := EmptyBox
	for _, obj := range objs {
		b, ok := idx.provider.Bounds(obj)
		if !ok {
			idx.log.WithField("object", obj).Warn(textErr("dropping deferred insert without bounds"))
			continue
		}
		items = append(items, pending[T]{obj: obj, box: b})
		extent.Expand(&b)
	}
	if idx.hilbertReplay && len(items) > 1 {
		hilbertSort(items, &extent)
	}
	for i := range items {
		if _, ok := idx.leaves[items[i].obj]; ok {
			idx.move(items[i].obj, items[i].box)
			continue
		}
		idx.insert(items[i].obj, items[i].box)
	}
}

func (idx *Index[T]) deferInsert(obj T) {
	switch {
	case idx.pendingDeletes.remove(obj):
		// Removed and inserted again: its bounds may have changed.
		idx.pendingMoves.add(obj)
	case idx.Contains(obj):
		idx.pendingMoves.add(obj)
	default:
		idx.pendingInserts.add(obj)
	}
}

func (idx *Index[T]) deferMove(obj T) bool {
	switch {
	case idx.pendingInserts.has(obj):
		return true
	case idx.Contains(obj) && !idx.pendingDeletes.has(obj):
		idx.pendingMoves.add(obj)
		return true
	default:
		return false
	}
}

func (idx *Index[T]) deferRemove(obj T) bool {
	if idx.pendingInserts.remove(obj) {
		return true
	}
	idx.pendingMoves.remove(obj)
	if !idx.Contains(obj) || idx.pendingDeletes.has(obj) {
		return false
	}
	idx.pendingDeletes.add(obj)
	return true
}
