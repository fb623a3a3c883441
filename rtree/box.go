// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Box is an axis-aligned bounding rectangle. The edges are inclusive,
// so a Box whose minimum and maximum coincide on both axes is a point.
type Box struct {
	XMin float64
	YMin float64
	XMax float64
	YMax float64
}

// EmptyBox is the box that contains nothing. It is the identity value
// for Expand, and it intersects no other box, itself included.
var EmptyBox = Box{
	XMin: math.Inf(1),
	YMin: math.Inf(1),
	XMax: math.Inf(-1),
	YMax: math.Inf(-1),
}

// Rect returns the box whose lower corner is (x, y) and whose size is
// w by h.
func Rect(x, y, w, h float64) Box {
	return Box{XMin: x, YMin: y, XMax: x + w, YMax: y + h}
}

// BoxFromBound converts an orb.Bound into a Box.
func BoxFromBound(b orb.Bound) Box {
	return Box{XMin: b.Min[0], YMin: b.Min[1], XMax: b.Max[0], YMax: b.Max[1]}
}

// Bound converts the box into an orb.Bound.
func (b Box) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.XMin, b.YMin},
		Max: orb.Point{b.XMax, b.YMax},
	}
}

func (b *Box) Width() float64 {
	return b.XMax - b.XMin
}

func (b *Box) Height() float64 {
	return b.YMax - b.YMin
}

// IsEmpty reports whether the box contains no points at all.
func (b *Box) IsEmpty() bool {
	return b.XMin > b.XMax || b.YMin > b.YMax
}

// IsPoint reports whether the box is a single point.
func (b *Box) IsPoint() bool {
	return b.XMin == b.XMax && b.YMin == b.YMax
}

// Area returns the area of the box. Empty and degenerate boxes have
// zero area.
func (b *Box) Area() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Width() * b.Height()
}

func (b *Box) midX() float64 {
	return (b.XMin + b.XMax) / 2
}

func (b *Box) midY() float64 {
	return (b.YMin + b.YMax) / 2
}

// Expand grows the box, if necessary, to include c.
func (b *Box) Expand(c *Box) {
	if c.XMin < b.XMin {
		b.XMin = c.XMin
	}
	if c.YMin < b.YMin {
		b.YMin = c.YMin
	}
	if c.XMax > b.XMax {
		b.XMax = c.XMax
	}
	if c.YMax > b.YMax {
		b.YMax = c.YMax
	}
}

// ExpandXY grows the box, if necessary, to include the point (x, y).
func (b *Box) ExpandXY(x, y float64) {
	if x < b.XMin {
		b.XMin = x
	}
	if y < b.YMin {
		b.YMin = y
	}
	if x > b.XMax {
		b.XMax = x
	}
	if y > b.YMax {
		b.YMax = y
	}
}

// Union returns the smallest box containing both b and c.
func (b Box) Union(c Box) Box {
	b.Expand(&c)
	return b
}

// Contains reports whether c lies entirely within b. An empty c is
// contained by nothing.
func (b *Box) Contains(c *Box) bool {
	if c.IsEmpty() {
		return false
	}
	return b.XMin <= c.XMin && b.YMin <= c.YMin &&
		c.XMax <= b.XMax && c.YMax <= b.YMax
}

// ContainsXY reports whether the point (x, y) lies within b.
func (b *Box) ContainsXY(x, y float64) bool {
	return b.XMin <= x && x <= b.XMax && b.YMin <= y && y <= b.YMax
}

// Intersects reports whether b and o share at least one point.
func (b *Box) Intersects(o *Box) bool {
	if b.XMax < o.XMin {
		return false
	}
	if b.YMax < o.YMin {
		return false
	}
	if b.XMin > o.XMax {
		return false
	}
	if b.YMin > o.YMax {
		return false
	}
	return !b.IsEmpty() && !o.IsEmpty()
}

// enlargement is the area that b must gain to also cover c.
func (b *Box) enlargement(c *Box) float64 {
	u := b.Union(*c)
	return u.Area() - b.Area()
}

// String returns the box as "[XMin,YMin,XMax,YMax]".
func (b Box) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(strconv.FormatFloat(b.XMin, 'g', -1, 64))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatFloat(b.YMin, 'g', -1, 64))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatFloat(b.XMax, 'g', -1, 64))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatFloat(b.YMax, 'g', -1, 64))
	sb.WriteByte(']')
	return sb.String()
}
