// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package rtree provides a dynamic, in-memory R-Tree spatial index
// over a mutating set of map objects.
//
// The index stores opaque, comparable object handles, never the
// objects themselves. Object geometry is supplied on demand by a
// Provider, which also decides exact rectangle/polygon intersection
// for polygon searches. Objects are inserted, moved and removed one
// at a time, or in bulk by bracketing the mutations with Lock and
// Unlock, which defers all tree restructuring until Unlock.
//
// An Index is not safe for concurrent use. It is meant to be driven
// from a single goroutine, typically the one that owns the map view.
package rtree
