// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"math"
	"sort"
)

const (
	// HilbertOrder is the order of the Hilbert curve used to order
	// batch insertions.
	HilbertOrder = 16
	// hilbertMax is the maximum input X- or Y-coordinate hilbertFromXY.
	//
	// In a Hilbert curve of order N, X- and Y- coordinates range from
	// zero to 2^N-1, so in a Hilbert curve of order 1, the X- and Y-
	// coordinates range from 0 to 1, and so on.
	hilbertMax = (1 << HilbertOrder) - 1
)

// A pending is an object waiting to be inserted by Unlock, together
// with its bounds.
type pending[T comparable] struct {
	obj T
	box Box
	// h is the Hilbert index of the box center, filled by hilbertSort.
	h uint32
}

// hilbertSortable is an implementation of sort.Interface which allows
// us to use the reflection-free sort.Stable function instead of
// sort.SliceStable.
type hilbertSortable[T comparable] []pending[T]

func (hs hilbertSortable[T]) Len() int           { return len(hs) }
func (hs hilbertSortable[T]) Less(i, j int) bool { return hs[i].h < hs[j].h }
func (hs hilbertSortable[T]) Swap(i, j int)      { hs[i], hs[j] = hs[j], hs[i] }

// hilbertSort sorts pending objects, whose bounding box is given by
// extent, according to the position of their box centers on a Hilbert
// curve of order HilbertOrder. Objects at the same curve position keep
// their relative order.
func hilbertSort[T comparable](items []pending[T], extent *Box) {
	x, y, w, h := extent.XMin, extent.YMin, extent.Width(), extent.Height()
	for i := range items {
		items[i].h = hilbertFromBox(&items[i].box, x, y, w, h)
	}
	sort.Stable(hilbertSortable[T](items))
}

// hilbertFromBox calculates the Hilbert curve index of the center of b
// in the context of a set of boxes bounded by the rectangle
// (ex, ey, ex+ew, ey+eh).
//
// NOTES:
//   - 32-bit integers are used because the full 64 bits are not
//     required and the smaller data size may theoretically result in
//     memory/bandwidth/cache benefits at the CPU level, maybe.
func hilbertFromBox(b *Box, ex, ey, ew, eh float64) uint32 {
	var hx uint32 // Hilbert X-coordinate between 0 and hilbertMax
	if ew > 0 {
		rx := (b.midX() - ex) / ew
		hx = uint32(math.Floor(hilbertMax * clamp01(rx)))
	}
	var hy uint32 // Hilbert Y-coordinate between 0 and hilbertMax
	if eh > 0 {
		ry := (b.midY() - ey) / eh
		hy = uint32(math.Floor(hilbertMax * clamp01(ry)))
	}
	return hilbertFromXY(hx, hy)
}

func clamp01(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v > 0:
		return v
	default:
		// Also catches NaN.
		return 0
	}
}

// hilbertFromXY calculates the Hilbert curve index of a given
// two-dimensional coordinate.
//
// NOTES:
//   - Based on https://github.com/rawrunprotected/hilbert_curves, which
//     is in the public domain.
func hilbertFromXY(x, y uint32) uint32 {
	a := x ^ y
	b := 0xFFFF ^ a
	c := 0xFFFF ^ (x | y)
	d := x & (y ^ 0xFFFF)

	A := a | (b >> 1)
	B := (a >> 1) ^ a
	C := ((c >> 1) ^ (b & (d >> 1))) ^ c
	D := ((a & (c >> 1)) ^ (d >> 1)) ^ d

	a = A
	b = B
	c = C
	d = D
	A = (a & (a >> 2)) ^ (b & (b >> 2))
	B = (a & (b >> 2)) ^ (b & ((a ^ b) >> 2))
	C ^= (a & (c >> 2)) ^ (b & (d >> 2))
	D ^= (b & (c >> 2)) ^ ((a ^ b) & (d >> 2))

	a = A
	b = B
	c = C
	d = D
	A = (a & (a >> 4)) ^ (b & (b >> 4))
	B = (a & (b >> 4)) ^ (b & ((a ^ b) >> 4))
	C ^= (a & (c >> 4)) ^ (b & (d >> 4))
	D ^= (b & (c >> 4)) ^ ((a ^ b) & (d >> 4))

	a = A
	b = B
	c = C
	d = D
	C ^= (a & (c >> 8)) ^ (b & (d >> 8))
	D ^= (b & (c >> 8)) ^ ((a ^ b) & (d >> 8))

	a = C ^ (C >> 1)
	b = D ^ (D >> 1)

	i0 := x ^ y
	i1 := b | (0xFFFF ^ (i0 | a))

	i0 = (i0 | (i0 << 8)) & 0x00FF00FF
	i0 = (i0 | (i0 << 4)) & 0x0F0F0F0F
	i0 = (i0 | (i0 << 2)) & 0x33333333
	i0 = (i0 | (i0 << 1)) & 0x55555555

	i1 = (i1 | (i1 << 8)) & 0x00FF00FF
	i1 = (i1 | (i1 << 4)) & 0x0F0F0F0F
	i1 = (i1 | (i1 << 2)) & 0x33333333
	i1 = (i1 | (i1 << 1)) & 0x55555555

	index := (i1 << 1) | i0

	return index
}
