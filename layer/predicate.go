// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package layer

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// IntersectsPolygon reports whether the closed rectangle b shares at
// least one point with the polygon p, holes excluded. The boundaries of
// both count as part of them. An empty polygon intersects nothing.
func IntersectsPolygon(b orb.Bound, p orb.Polygon) bool {
	if len(p) == 0 || len(p[0]) == 0 {
		return false
	}
	if !b.Intersects(p.Bound()) {
		return false
	}

	// A polygon vertex in the rectangle.
	for _, r := range p {
		for _, v := range r {
			if b.Contains(v) {
				return true
			}
		}
	}

	// A rectangle corner in the polygon.
	corners := [4]orb.Point{
		{b.Min[0], b.Min[1]},
		{b.Max[0], b.Min[1]},
		{b.Max[0], b.Max[1]},
		{b.Min[0], b.Max[1]},
	}
	for _, c := range corners {
		if planar.PolygonContains(p, c) {
			return true
		}
	}

	// Otherwise the boundaries must cross.
	for _, r := range p {
		for i := 0; i < len(r); i++ {
			v, w := r[i], r[(i+1)%len(r)]
			for j := range corners {
				if segmentsIntersect(v, w, corners[j], corners[(j+1)%4]) {
					return true
				}
			}
		}
	}
	return false
}

// segmentsIntersect reports whether the closed segments pq and rs
// share a point.
func segmentsIntersect(p, q, r, s orb.Point) bool {
	d1 := orientation(r, s, p)
	d2 := orientation(r, s, q)
	d3 := orientation(p, q, r)
	d4 := orientation(p, q, s)
	if (d1 > 0 && d2 < 0 || d1 < 0 && d2 > 0) && (d3 > 0 && d4 < 0 || d3 < 0 && d4 > 0) {
		return true
	}
	return d1 == 0 && onSegment(r, s, p) ||
		d2 == 0 && onSegment(r, s, q) ||
		d3 == 0 && onSegment(p, q, r) ||
		d4 == 0 && onSegment(p, q, s)
}

// orientation is positive if c lies to the left of the directed line
// ab, negative if to the right, and zero if the three are collinear.
func orientation(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// onSegment reports whether c, known to be collinear with ab, lies
// within the segment's bounding box.
func onSegment(a, b, c orb.Point) bool {
	return min(a[0], b[0]) <= c[0] && c[0] <= max(a[0], b[0]) &&
		min(a[1], b[1]) <= c[1] && c[1] <= max(a[1], b[1])
}
