// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package layer

import (
	"context"
	"io"
	"math/rand"
	"testing"

	"github.com/doubletap1410/Map-sub000/rtree"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietConfig() *rtree.Config {
	l := logrus.New()
	l.SetOutput(io.Discard)
	cfg := rtree.DefaultConfig()
	cfg.Logger = l
	return &cfg
}

func ids(objs []*Object) []uuid.UUID {
	r := make([]uuid.UUID, len(objs))
	for i := range objs {
		r[i] = objs[i].ID
	}
	return r
}

func square(x, y, size float64) orb.Polygon {
	return orb.Polygon{{{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}, {x, y}}}
}

var everywhere = orb.Bound{Min: orb.Point{-1000, -1000}, Max: orb.Point{1000, 1000}}

func TestNew(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		l := New(nil)

		assert.Equal(t, 0, l.Len())
		assert.Equal(t, rtree.DefaultMaxNodes, l.Index().MaxNodes())
		assert.Equal(t, "Layer{Len:0,Index:Index{Bounds:<empty>,Len:0,Height:0,MaxNodes:25}}", l.String())
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		assert.PanicsWithValue(t, "rtree: max nodes must be at least 3, got 1", func() {
			New(&rtree.Config{MaxNodes: 1})
		})
	})
}

func TestLayer_Add(t *testing.T) {
	l := New(quietConfig())

	t.Run("NoBounds", func(t *testing.T) {
		for _, g := range []orb.Geometry{nil, orb.LineString{}, orb.Polygon{}} {
			id, ok := l.Add(g)

			assert.False(t, ok)
			assert.Equal(t, uuid.Nil, id)
		}
		assert.Equal(t, 0, l.Len())
	})

	t.Run("Success", func(t *testing.T) {
		id, ok := l.Add(orb.Point{1, 2})

		require.True(t, ok)
		assert.NotEqual(t, uuid.Nil, id)
		obj, ok := l.Get(id)
		require.True(t, ok)
		assert.Equal(t, id, obj.ID)
		assert.Equal(t, orb.Point{1, 2}, obj.Geometry)
		assert.False(t, obj.Visible)
		assert.Equal(t, 1, l.Len())
		assert.True(t, l.Index().Contains(id))
	})
}

func TestLayer_Queries(t *testing.T) {
	l := New(quietConfig())
	a, _ := l.Add(square(0, 0, 10))
	b, _ := l.Add(orb.Point{5, 5})
	c, _ := l.Add(orb.LineString{{100, 100}, {110, 120}})

	t.Run("Viewport", func(t *testing.T) {
		objs := l.Viewport(orb.Bound{Min: orb.Point{4, 4}, Max: orb.Point{6, 6}})

		assert.Equal(t, []uuid.UUID{a, b}, ids(objs))
		for _, obj := range objs {
			assert.True(t, obj.Visible)
		}
	})

	t.Run("DrawOrder", func(t *testing.T) {
		objs := l.Viewport(everywhere)

		assert.Equal(t, []uuid.UUID{a, b, c}, ids(objs))
	})

	t.Run("At", func(t *testing.T) {
		assert.Equal(t, []uuid.UUID{a}, ids(l.At(orb.Point{1, 1})))
		assert.Equal(t, []uuid.UUID{a, b}, ids(l.At(orb.Point{5, 5})))
		assert.Empty(t, l.At(orb.Point{50, 50}))
	})

	t.Run("Empty", func(t *testing.T) {
		objs := l.Viewport(orb.Bound{Min: orb.Point{50, 50}, Max: orb.Point{60, 60}})

		assert.NotNil(t, objs)
		assert.Empty(t, objs)
	})
}

func TestLayer_Within(t *testing.T) {
	l := New(quietConfig())
	inside, _ := l.Add(orb.Point{1, 1})
	near, _ := l.Add(square(8, 8, 1))
	far, _ := l.Add(square(500, 500, 1))
	triangle := orb.Polygon{{{0, 0}, {10, 0}, {0, 10}, {0, 0}}}
	require.Len(t, l.Viewport(everywhere), 3)

	objs := l.Within(triangle)

	assert.Equal(t, []uuid.UUID{inside}, ids(objs))
	obj, _ := l.Get(inside)
	assert.True(t, obj.Visible)
	obj, _ = l.Get(near)
	assert.False(t, obj.Visible)
	obj, _ = l.Get(far)
	assert.True(t, obj.Visible)

	t.Run("EmptyPolygon", func(t *testing.T) {
		objs := l.Within(orb.Polygon{})

		assert.NotNil(t, objs)
		assert.Empty(t, objs)
	})
}

func TestLayer_Update(t *testing.T) {
	l := New(quietConfig())
	id, _ := l.Add(orb.Point{1, 1})
	other, _ := l.Add(orb.Point{2, 2})

	t.Run("Unknown", func(t *testing.T) {
		assert.False(t, l.Update(uuid.New(), orb.Point{0, 0}))
	})

	t.Run("NoBounds", func(t *testing.T) {
		assert.False(t, l.Update(id, orb.LineString{}))
		obj, _ := l.Get(id)
		assert.Equal(t, orb.Point{1, 1}, obj.Geometry)
	})

	t.Run("Success", func(t *testing.T) {
		require.True(t, l.Update(id, orb.Point{300, 300}))

		assert.Equal(t, []uuid.UUID{other}, ids(l.At(orb.Point{2, 2})))
		assert.Empty(t, l.At(orb.Point{1, 1}))
		assert.Equal(t, []uuid.UUID{id}, ids(l.At(orb.Point{300, 300})))
		assert.NoError(t, l.Index().Check())
	})
}

func TestLayer_Destroy(t *testing.T) {
	l := New(quietConfig())
	id, _ := l.Add(square(0, 0, 1))
	other, _ := l.Add(square(0, 0, 2))

	require.True(t, l.Destroy(id))

	assert.False(t, l.Destroy(id))
	_, ok := l.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 1, l.Len())
	assert.False(t, l.Index().Contains(id))
	assert.Equal(t, []uuid.UUID{other}, ids(l.Viewport(everywhere)))
	assert.Equal(t, []uuid.UUID{other}, ids(l.Within(square(0, 0, 1))))
	assert.NoError(t, l.Index().Check())
}

func TestLayer_DestroyInsideBatch(t *testing.T) {
	logger, hook := test.NewNullLogger()
	cfg := rtree.DefaultConfig()
	cfg.Logger = logger
	l := New(&cfg)
	id, _ := l.Add(square(0, 0, 1))
	other, _ := l.Add(square(0, 0, 2))
	l.Index().Lock()

	require.True(t, l.Destroy(id))

	assert.False(t, l.Index().Contains(id))
	assert.Equal(t, 1, l.Index().Len())
	assert.Equal(t, []uuid.UUID{other}, ids(l.Viewport(everywhere)))
	assert.Equal(t, []uuid.UUID{other}, ids(l.Within(square(0, 0, 1))))
	l.Index().Unlock()
	assert.Equal(t, []uuid.UUID{other}, ids(l.Viewport(everywhere)))
	assert.NoError(t, l.Index().Check())
	for _, entry := range hook.AllEntries() {
		assert.NotEqual(t, logrus.ErrorLevel, entry.Level, entry.Message)
	}
}

func TestLayer_Load(t *testing.T) {
	encode := func(t *testing.T, geoms ...orb.Geometry) [][]byte {
		bufs := make([][]byte, len(geoms))
		for i := range geoms {
			var err error
			bufs[i], err = EncodeFeature(geoms[i])
			require.NoError(t, err)
		}
		return bufs
	}

	t.Run("Success", func(t *testing.T) {
		r := rand.New(rand.NewSource(3))
		geoms := make([]orb.Geometry, 200)
		for i := range geoms {
			x, y := r.Float64()*1000, r.Float64()*1000
			if i%2 == 0 {
				geoms[i] = orb.Point{x, y}
			} else {
				geoms[i] = square(x, y, r.Float64()*10)
			}
		}
		cfg := quietConfig()
		cfg.MaxNodes = 5
		l := New(cfg)

		loaded, err := l.Load(context.Background(), encode(t, geoms...))

		require.NoError(t, err)
		require.Len(t, loaded, len(geoms))
		assert.Equal(t, len(geoms), l.Len())
		assert.Equal(t, len(geoms), l.Index().Len())
		assert.False(t, l.Index().Locked())
		require.NoError(t, l.Index().Check())
		for i, id := range loaded {
			obj, ok := l.Get(id)
			require.True(t, ok)
			assert.Equal(t, geoms[i], obj.Geometry)
		}
		assert.Equal(t, loaded, ids(l.Viewport(everywhere)))
	})

	t.Run("DecodeError", func(t *testing.T) {
		l := New(quietConfig())
		bufs := encode(t, orb.Point{1, 1}, orb.Point{2, 2})
		bufs = append(bufs, []byte{1, 2, 3})

		loaded, err := l.Load(context.Background(), bufs)

		assert.Nil(t, loaded)
		assert.EqualError(t, err, "layer: failed to load features: layer: feature 2: layer: buffer too small for a size-prefixed FlatBuffers table (Len=3)")
		assert.Equal(t, 0, l.Len())
		assert.Equal(t, 0, l.Index().Len())
	})

	t.Run("Canceled", func(t *testing.T) {
		l := New(quietConfig())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		loaded, err := l.Load(ctx, encode(t, orb.Point{1, 1}))

		assert.Nil(t, loaded)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, l.Len())
	})

	t.Run("InsideBatch", func(t *testing.T) {
		l := New(quietConfig())
		l.Index().Lock()

		loaded, err := l.Load(context.Background(), encode(t, orb.Point{1, 1}))

		require.NoError(t, err)
		assert.Len(t, loaded, 1)
		assert.True(t, l.Index().Locked())
		assert.Equal(t, 0, l.Index().Len())
		l.Index().Unlock()
		assert.Equal(t, loaded, ids(l.At(orb.Point{1, 1})))
	})
}

func TestLayer_Provider(t *testing.T) {
	l := New(quietConfig())
	id, _ := l.Add(orb.LineString{{1, 2}, {3, -4}})

	t.Run("Bounds", func(t *testing.T) {
		b, ok := l.Bounds(id)

		assert.True(t, ok)
		assert.Equal(t, rtree.Box{XMin: 1, YMin: -4, XMax: 3, YMax: 2}, b)

		_, ok = l.Bounds(uuid.New())
		assert.False(t, ok)
	})

	t.Run("IntersectsPolygon", func(t *testing.T) {
		assert.True(t, l.IntersectsPolygon(rtree.Rect(0, 0, 1, 1), square(0.5, 0.5, 1)))
		assert.False(t, l.IntersectsPolygon(rtree.Rect(0, 0, 1, 1), square(5, 5, 1)))
	})

	t.Run("WithdrawVisibility", func(t *testing.T) {
		require.Len(t, l.Viewport(everywhere), 1)
		obj, _ := l.Get(id)
		require.True(t, obj.Visible)

		l.WithdrawVisibility(id)
		l.WithdrawVisibility(uuid.New())

		assert.False(t, obj.Visible)
	})
}
