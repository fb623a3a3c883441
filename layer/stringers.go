// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package layer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/doubletap1410/Map-sub000/rtree"
)

func (v GeometryType) String() string {
	if s, ok := EnumNamesGeometryType[v]; ok {
		return s
	}
	return "GeometryType(" + strconv.FormatInt(int64(v), 10) + ")"
}

// String returns a summary of the Feature's geometry.
func (f *Feature) String() string {
	var b strings.Builder
	b.WriteString("Feature{Geometry:")
	if err := safeFlatBuffersInteraction(func() error {
		var g Geometry
		if f.Geometry(&g) == nil {
			b.WriteString("<nil>")
			return nil
		}
		b.WriteString("{Type:")
		b.WriteString(g.Type().String())
		b.WriteString(",Bounds:")
		bounds := rtree.EmptyBox
		expandGeometry(&bounds, &g)
		if bounds == rtree.EmptyBox {
			b.WriteString("<nil>")
		} else {
			b.WriteString(bounds.String())
		}
		if m := g.EndsLength() + g.PartsLength(); m > 0 {
			fmt.Fprintf(&b, ",Parts:%d", m)
		}
		b.WriteByte('}')
		return nil
	}); err != nil {
		return "error: geometry: " + err.Error()
	}
	b.WriteByte('}')
	return b.String()
}

// expandGeometry expands b to cover the coordinates of g and of its
// parts.
func expandGeometry(b *rtree.Box, g *Geometry) {
	n := g.XyLength()
	for i := 0; i+1 < n; i += 2 {
		b.ExpandXY(g.Xy(i+0), g.Xy(i+1))
	}
	var part Geometry
	for i := 0; i < g.PartsLength(); i++ {
		g.Parts(&part, i)
		expandGeometry(b, &part)
	}
}

// String returns a summary description of the layer.
func (l *Layer) String() string {
	return fmt.Sprintf("Layer{Len:%d,Index:%s}", l.Len(), l.index)
}
