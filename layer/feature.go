// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package layer

import flatbuffers "github.com/google/flatbuffers/go"

// GeometryType is the FlatGeobuf geometry type enumeration.
type GeometryType byte

const (
	GeometryTypeUnknown         GeometryType = 0
	GeometryTypePoint           GeometryType = 1
	GeometryTypeLineString      GeometryType = 2
	GeometryTypePolygon         GeometryType = 3
	GeometryTypeMultiPoint      GeometryType = 4
	GeometryTypeMultiLineString GeometryType = 5
	GeometryTypeMultiPolygon    GeometryType = 6
)

var EnumNamesGeometryType = map[GeometryType]string{
	GeometryTypeUnknown:         "Unknown",
	GeometryTypePoint:           "Point",
	GeometryTypeLineString:      "LineString",
	GeometryTypePolygon:         "Polygon",
	GeometryTypeMultiPoint:      "MultiPoint",
	GeometryTypeMultiLineString: "MultiLineString",
	GeometryTypeMultiPolygon:    "MultiPolygon",
}

// Geometry is a FlatBuffers table with the FlatGeobuf Geometry layout.
// Only the ends, xy, type, and parts fields are used. Parts holds the
// polygons of a MultiPolygon.
type Geometry struct {
	_tab flatbuffers.Table
}

func (rcv *Geometry) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *Geometry) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *Geometry) Ends(j int) uint32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		a := rcv._tab.Vector(o)
		return rcv._tab.GetUint32(a + flatbuffers.UOffsetT(j*4))
	}
	return 0
}

func (rcv *Geometry) EndsLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func (rcv *Geometry) Xy(j int) float64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		a := rcv._tab.Vector(o)
		return rcv._tab.GetFloat64(a + flatbuffers.UOffsetT(j*8))
	}
	return 0
}

func (rcv *Geometry) XyLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func (rcv *Geometry) Type() GeometryType {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(16))
	if o != 0 {
		return GeometryType(rcv._tab.GetByte(o + rcv._tab.Pos))
	}
	return 0
}

func (rcv *Geometry) Parts(obj *Geometry, j int) bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(18))
	if o != 0 {
		x := rcv._tab.Vector(o)
		x += flatbuffers.UOffsetT(j) * 4
		x = rcv._tab.Indirect(x)
		obj.Init(rcv._tab.Bytes, x)
		return true
	}
	return false
}

func (rcv *Geometry) PartsLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(18))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func GeometryStart(builder *flatbuffers.Builder) {
	builder.StartObject(8)
}

func GeometryAddEnds(builder *flatbuffers.Builder, ends flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(0, flatbuffers.UOffsetT(ends), 0)
}

func GeometryStartEndsVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(4, numElems, 4)
}

func GeometryAddXy(builder *flatbuffers.Builder, xy flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(1, flatbuffers.UOffsetT(xy), 0)
}

func GeometryStartXyVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(8, numElems, 8)
}

func GeometryAddType(builder *flatbuffers.Builder, type_ GeometryType) {
	builder.PrependByteSlot(6, byte(type_), 0)
}

func GeometryAddParts(builder *flatbuffers.Builder, parts flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(7, flatbuffers.UOffsetT(parts), 0)
}

func GeometryStartPartsVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(4, numElems, 4)
}

func GeometryEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

// Feature is a FlatBuffers table with the FlatGeobuf Feature layout.
// Only the geometry field is used.
type Feature struct {
	_tab flatbuffers.Table
}

func GetSizePrefixedRootAsFeature(buf []byte, offset flatbuffers.UOffsetT) *Feature {
	n := flatbuffers.GetUOffsetT(buf[offset+flatbuffers.SizeUint32:])
	x := &Feature{}
	x.Init(buf, n+offset+flatbuffers.SizeUint32)
	return x
}

func (rcv *Feature) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *Feature) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *Feature) Geometry(obj *Geometry) *Geometry {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		x := rcv._tab.Indirect(o + rcv._tab.Pos)
		if obj == nil {
			obj = new(Geometry)
		}
		obj.Init(rcv._tab.Bytes, x)
		return obj
	}
	return nil
}

func FeatureStart(builder *flatbuffers.Builder) {
	builder.StartObject(3)
}

func FeatureAddGeometry(builder *flatbuffers.Builder, geometry flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(0, flatbuffers.UOffsetT(geometry), 0)
}

func FeatureEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}
