// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package layer

import (
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb"
)

// EncodeFeature encodes a geometry as a size-prefixed root FlatBuffers
// Feature table. The geometry is stored with the FlatGeobuf layout: all
// coordinates in one xy vector and, for geometries with more than one
// ring or line, the end of each ring or line in the ends vector.
//
// A MultiPolygon has no coordinates of its own. Each polygon is stored
// as a Polygon geometry in the parts vector.
//
// The supported geometries are orb.Point, orb.LineString, orb.Polygon,
// orb.MultiPoint, orb.MultiLineString, and orb.MultiPolygon. Empty
// geometries, rings and lines cannot be encoded.
func EncodeFeature(g orb.Geometry) ([]byte, error) {
	b := flatbuffers.NewBuilder(256)
	geometryOffset, err := buildGeometry(b, g)
	if err != nil {
		return nil, err
	}

	FeatureStart(b)
	FeatureAddGeometry(b, geometryOffset)
	b.FinishSizePrefixed(FeatureEnd(b))

	return b.FinishedBytes(), nil
}

func buildGeometry(b *flatbuffers.Builder, g orb.Geometry) (flatbuffers.UOffsetT, error) {
	if mp, ok := g.(orb.MultiPolygon); ok {
		return buildMultiPolygon(b, mp)
	}
	t, xy, ends, err := flatten(g)
	if err != nil {
		return 0, err
	}

	var endsOffset flatbuffers.UOffsetT
	if len(ends) > 1 {
		GeometryStartEndsVector(b, len(ends))
		for i := len(ends) - 1; i >= 0; i-- {
			b.PrependUint32(ends[i])
		}
		endsOffset = b.EndVector(len(ends))
	}
	GeometryStartXyVector(b, len(xy))
	for i := len(xy) - 1; i >= 0; i-- {
		b.PrependFloat64(xy[i])
	}
	xyOffset := b.EndVector(len(xy))

	GeometryStart(b)
	if endsOffset != 0 {
		GeometryAddEnds(b, endsOffset)
	}
	GeometryAddXy(b, xyOffset)
	GeometryAddType(b, t)
	return GeometryEnd(b), nil
}

func buildMultiPolygon(b *flatbuffers.Builder, mp orb.MultiPolygon) (flatbuffers.UOffsetT, error) {
	if len(mp) == 0 {
		return 0, textErr("empty MultiPolygon")
	}
	parts := make([]flatbuffers.UOffsetT, len(mp))
	for i := range mp {
		var err error
		if parts[i], err = buildGeometry(b, mp[i]); err != nil {
			return 0, wrapErr("part %d of MultiPolygon", err, i)
		}
	}
	GeometryStartPartsVector(b, len(parts))
	for i := len(parts) - 1; i >= 0; i-- {
		b.PrependUOffsetT(parts[i])
	}
	partsOffset := b.EndVector(len(parts))

	GeometryStart(b)
	GeometryAddParts(b, partsOffset)
	GeometryAddType(b, GeometryTypeMultiPolygon)
	return GeometryEnd(b), nil
}

// flatten converts a geometry into its FlatGeobuf type, coordinate
// vector, and part ends, counted in points.
func flatten(g orb.Geometry) (t GeometryType, xy []float64, ends []uint32, err error) {
	appendPoints := func(ps []orb.Point) {
		for _, p := range ps {
			xy = append(xy, p[0], p[1])
		}
	}
	appendPart := func(i int, ps []orb.Point) {
		if len(ps) == 0 {
			err = fmtErr("part %d of %s is empty", i, g.GeoJSONType())
			return
		}
		appendPoints(ps)
		ends = append(ends, uint32(len(xy)/2))
	}

	switch g := g.(type) {
	case nil:
		err = textErr("nil geometry")
		return
	case orb.Point:
		t = GeometryTypePoint
		xy = []float64{g[0], g[1]}
	case orb.LineString:
		t = GeometryTypeLineString
		appendPoints(g)
	case orb.MultiPoint:
		t = GeometryTypeMultiPoint
		appendPoints(g)
	case orb.Polygon:
		t = GeometryTypePolygon
		for i := range g {
			if appendPart(i, g[i]); err != nil {
				return
			}
		}
	case orb.MultiLineString:
		t = GeometryTypeMultiLineString
		for i := range g {
			if appendPart(i, g[i]); err != nil {
				return
			}
		}
	default:
		err = fmtErr("unsupported geometry type %s", g.GeoJSONType())
		return
	}

	if len(xy) == 0 {
		err = fmtErr("empty %s", g.GeoJSONType())
	}
	return
}

// DecodeFeature decodes the geometry of a size-prefixed root FlatBuffers
// Feature table located at the start of buf. Malformed FlatBuffers data
// is reported as an error.
func DecodeFeature(buf []byte) (orb.Geometry, error) {
	table, err := sizePrefixedTable(buf)
	if err != nil {
		return nil, err
	}
	var g orb.Geometry
	err = safeFlatBuffersInteraction(func() error {
		f := GetSizePrefixedRootAsFeature(table, 0)
		var geom Geometry
		if f.Geometry(&geom) == nil {
			return textErr("feature has no geometry")
		}
		var err2 error
		g, err2 = decodeGeometry(&geom)
		return err2
	})
	if err != nil {
		return nil, wrapErr("failed to decode feature", err)
	}
	return g, nil
}

func decodeGeometry(g *Geometry) (orb.Geometry, error) {
	if g.Type() == GeometryTypeMultiPolygon {
		return decodeMultiPolygon(g)
	}
	n := g.XyLength()
	if n == 0 {
		return nil, textErr("geometry has no coordinates")
	} else if n%2 != 0 {
		return nil, fmtErr("odd number of xy coordinates (%d)", n)
	}
	ps := make([]orb.Point, n/2)
	for i := range ps {
		ps[i] = orb.Point{g.Xy(2*i + 0), g.Xy(2*i + 1)}
	}

	switch t := g.Type(); t {
	case GeometryTypePoint:
		if len(ps) != 1 {
			return nil, fmtErr("point has %d coordinate pairs", len(ps))
		}
		return ps[0], nil
	case GeometryTypeLineString:
		return orb.LineString(ps), nil
	case GeometryTypeMultiPoint:
		return orb.MultiPoint(ps), nil
	case GeometryTypePolygon:
		ends, err := geometryEnds(g, len(ps))
		if err != nil {
			return nil, err
		}
		p := make(orb.Polygon, len(ends))
		start := 0
		for i, end := range ends {
			p[i] = orb.Ring(ps[start:end:end])
			start = end
		}
		return p, nil
	case GeometryTypeMultiLineString:
		ends, err := geometryEnds(g, len(ps))
		if err != nil {
			return nil, err
		}
		mls := make(orb.MultiLineString, len(ends))
		start := 0
		for i, end := range ends {
			mls[i] = orb.LineString(ps[start:end:end])
			start = end
		}
		return mls, nil
	default:
		return nil, fmtErr("unsupported geometry type %s", t)
	}
}

func decodeMultiPolygon(g *Geometry) (orb.Geometry, error) {
	m := g.PartsLength()
	if m == 0 {
		return nil, textErr("MultiPolygon has no parts")
	}
	mp := make(orb.MultiPolygon, m)
	var part Geometry
	for i := range mp {
		g.Parts(&part, i)
		if t := part.Type(); t != GeometryTypePolygon {
			return nil, fmtErr("part %d of MultiPolygon has type %s", i, t)
		}
		p, err := decodeGeometry(&part)
		if err != nil {
			return nil, wrapErr("part %d of MultiPolygon", err, i)
		}
		mp[i] = p.(orb.Polygon)
	}
	return mp, nil
}

// geometryEnds returns the end of each part of a geometry with n
// points. A geometry without ends has a single part.
func geometryEnds(g *Geometry, n int) ([]int, error) {
	m := g.EndsLength()
	if m == 0 {
		return []int{n}, nil
	}
	ends := make([]int, m)
	prev := 0
	for i := range ends {
		end := int(g.Ends(i))
		if end <= prev || end > n {
			return nil, fmtErr("end %d of part %d out of range (%d, %d]", end, i, prev, n)
		}
		ends[i] = end
		prev = end
	}
	if prev != n {
		return nil, fmtErr("parts end at %d but geometry has %d points", prev, n)
	}
	return ends, nil
}
