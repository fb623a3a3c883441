// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package layer

import (
	"context"
	"runtime"
	"sort"

	"github.com/doubletap1410/Map-sub000/rtree"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// An Object is a map object held by a Layer.
type Object struct {
	ID       uuid.UUID
	Geometry orb.Geometry
	// Visible is set on every object returned by a query, and cleared
	// when a polygon query withdraws the object's visibility.
	Visible bool
	// seq orders objects by insertion, which is also their draw order.
	seq uint64
}

// A Layer owns a set of objects and indexes them by bounding box. It is
// the geometry provider of its index.
type Layer struct {
	index   *rtree.Index[uuid.UUID]
	objects map[uuid.UUID]*Object
	seq     uint64
	workers int
	log     logrus.FieldLogger
}

// New creates an empty Layer whose index is configured by cfg. If cfg
// is nil, rtree.DefaultConfig is used. Panics if cfg is invalid.
func New(cfg *rtree.Config) *Layer {
	c := rtree.DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	l := &Layer{
		objects: make(map[uuid.UUID]*Object),
		workers: runtime.GOMAXPROCS(0),
	}
	l.index = rtree.New[uuid.UUID](l, &c)
	l.log = newLogger(&c)
	return l
}

func newLogger(cfg *rtree.Config) logrus.FieldLogger {
	if cfg.Logger != nil {
		return cfg.Logger.WithField("component", "layer")
	}
	l := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		l.SetLevel(level)
	}
	return l.WithField("component", "layer")
}

// Index returns the layer's spatial index.
func (l *Layer) Index() *rtree.Index[uuid.UUID] {
	return l.index
}

// Len returns the number of objects in the layer.
func (l *Layer) Len() int {
	return len(l.objects)
}

// Get returns the object with the given ID.
func (l *Layer) Get(id uuid.UUID) (*Object, bool) {
	obj, ok := l.objects[id]
	return obj, ok
}

// Add adds a new object with geometry g to the layer and its index.
// Returns false if g has no bounds.
func (l *Layer) Add(g orb.Geometry) (uuid.UUID, bool) {
	if _, ok := geometryBox(g); !ok {
		return uuid.Nil, false
	}
	l.seq++
	obj := &Object{ID: uuid.New(), Geometry: g, seq: l.seq}
	l.objects[obj.ID] = obj
	if !l.index.Insert(obj.ID) {
		delete(l.objects, obj.ID)
		return uuid.Nil, false
	}
	return obj.ID, true
}

// Update replaces the geometry of an object and moves it within the
// index. Returns false, changing nothing, if the object does not exist
// or g has no bounds.
func (l *Layer) Update(id uuid.UUID, g orb.Geometry) bool {
	obj, ok := l.objects[id]
	if !ok {
		return false
	}
	if _, ok = geometryBox(g); !ok {
		return false
	}
	obj.Geometry = g
	return l.index.Move(id)
}

// Destroy removes an object from the layer. The index is notified
// before the object is forgotten.
func (l *Layer) Destroy(id uuid.UUID) bool {
	if _, ok := l.objects[id]; !ok {
		return false
	}
	l.index.ObjectDestroyed(id)
	delete(l.objects, id)
	return true
}

// Viewport returns the objects whose bounding boxes intersect b, in
// draw order, and marks them visible.
func (l *Layer) Viewport(b orb.Bound) []*Object {
	return l.show(l.index.Find(rtree.BoxFromBound(b)))
}

// At returns the objects whose bounding boxes contain p, in draw order,
// and marks them visible.
func (l *Layer) At(p orb.Point) []*Object {
	return l.show(l.index.FindPoint(p[0], p[1]))
}

// Within returns the objects whose bounding boxes intersect the polygon
// p, in draw order, and marks them visible. Objects which are near p but
// do not touch it lose their visibility.
func (l *Layer) Within(p orb.Polygon) []*Object {
	return l.show(l.index.FindPolygon(p))
}

func (l *Layer) show(ids []uuid.UUID) []*Object {
	objs := make([]*Object, 0, len(ids))
	for _, id := range ids {
		obj, ok := l.objects[id]
		if !ok {
			l.log.WithField("object", id).Error(textErr("index returned unknown object"))
			continue
		}
		obj.Visible = true
		objs = append(objs, obj)
	}
	sort.Slice(objs, func(i, j int) bool {
		return objs[i].seq < objs[j].seq
	})
	return objs
}

// Load decodes a batch of size-prefixed FlatBuffers features and adds
// one object per feature. Decoding runs concurrently. The index is only
// restructured once, after all the objects have been added. If any
// feature cannot be decoded, or ctx is done before decoding finishes,
// nothing is added.
//
// The returned IDs are in the same order as bufs.
func (l *Layer) Load(ctx context.Context, bufs [][]byte) ([]uuid.UUID, error) {
	geoms := make([]orb.Geometry, len(bufs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i := range bufs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			geom, err := DecodeFeature(bufs[i])
			if err != nil {
				return wrapErr("feature %d", err, i)
			}
			geoms[i] = geom
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, wrapErr("failed to load features", err)
	}

	ids := make([]uuid.UUID, 0, len(geoms))
	wasLocked := l.index.Locked()
	l.index.Lock()
	for i, geom := range geoms {
		id, ok := l.Add(geom)
		if !ok {
			l.log.WithField("feature", i).Warn(textErr("skipping feature without bounds"))
			continue
		}
		ids = append(ids, id)
	}
	if !wasLocked {
		l.index.Unlock()
	}
	l.log.WithField("objects", len(ids)).Debug("layer: loaded features")
	return ids, nil
}

// Bounds returns the bounding box of an object's geometry.
func (l *Layer) Bounds(id uuid.UUID) (rtree.Box, bool) {
	obj, ok := l.objects[id]
	if !ok {
		return rtree.EmptyBox, false
	}
	return geometryBox(obj.Geometry)
}

// IntersectsPolygon is the exact rectangle and polygon test used by
// polygon queries.
func (l *Layer) IntersectsPolygon(b rtree.Box, p orb.Polygon) bool {
	return IntersectsPolygon(b.Bound(), p)
}

// WithdrawVisibility clears the visibility of an object.
func (l *Layer) WithdrawVisibility(id uuid.UUID) {
	if obj, ok := l.objects[id]; ok && obj.Visible {
		obj.Visible = false
		l.log.WithField("object", id).Debug("layer: visibility withdrawn")
	}
}

func geometryBox(g orb.Geometry) (rtree.Box, bool) {
	if g == nil {
		return rtree.EmptyBox, false
	}
	b := rtree.BoxFromBound(g.Bound())
	if b.IsEmpty() {
		return rtree.EmptyBox, false
	}
	return b, true
}
