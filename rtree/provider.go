// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "github.com/paulmach/orb"

// A Provider supplies the geometry of the objects stored in an Index.
// It is implemented by the layer that owns the objects.
type Provider[T comparable] interface {
	// Bounds returns the tight bounding box of an object. It returns
	// false if the object has no obtainable bounds, in which case the
	// Index refuses to insert or move it.
	Bounds(obj T) (Box, bool)
	// IntersectsPolygon is the exact test of whether a box intersects
	// a polygon. It is used by FindPolygon both to prune tree nodes
	// and to accept objects.
	IntersectsPolygon(b Box, p orb.Polygon) bool
	// WithdrawVisibility is called by FindPolygon for each object
	// whose bounding box overlaps the polygon's bounding box but fails
	// the exact IntersectsPolygon test. The provider should drop any
	// visual state it keeps for the object.
	WithdrawVisibility(obj T)
}
