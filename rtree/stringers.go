// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "fmt"

// String returns a summary description of the index.
func (idx *Index[T]) String() string {
	bounds := "<empty>"
	if b, ok := idx.Bounds(); ok {
		bounds = b.String()
	}
	s := fmt.Sprintf("Index{Bounds:%s,Len:%d,Height:%d,MaxNodes:%d", bounds, idx.Len(), idx.Height(), idx.maxNodes)
	if idx.locked {
		s += fmt.Sprintf(",Pending:{Inserts:%d,Moves:%d,Deletes:%d}",
			idx.pendingInserts.len(), idx.pendingMoves.len(), idx.pendingDeletes.len())
	}
	return s + "}"
}
