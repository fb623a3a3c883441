// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package layer holds a set of map objects with planar geometries and
// keeps them in a dynamic R-Tree index, acting as the index's geometry
// provider. Objects can be loaded in bulk from FlatBuffers features laid
// out as in the FlatGeobuf schema.
//
// A Layer is not safe for concurrent use.
package layer
