// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"io"
	"math/rand"
	"sort"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

// fakeProvider serves boxes from a map. Objects absent from the map
// have no bounds.
type fakeProvider struct {
	boxes     map[int]Box
	exact     func(b Box, p orb.Polygon) bool
	withdrawn []int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{boxes: make(map[int]Box)}
}

func (p *fakeProvider) Bounds(obj int) (Box, bool) {
	b, ok := p.boxes[obj]
	return b, ok
}

func (p *fakeProvider) IntersectsPolygon(b Box, poly orb.Polygon) bool {
	if p.exact != nil {
		return p.exact(b, poly)
	}
	pb := BoxFromBound(poly.Bound())
	return b.Intersects(&pb)
}

func (p *fakeProvider) WithdrawVisibility(obj int) {
	p.withdrawn = append(p.withdrawn, obj)
}

// bruteFind is the reference result for Find.
func (p *fakeProvider) bruteFind(q Box) []int {
	r := make([]int, 0)
	for obj, b := range p.boxes {
		b := b
		if q.Intersects(&b) {
			r = append(r, obj)
		}
	}
	sort.Ints(r)
	return r
}

// mockProvider records the polygon predicate and visibility calls.
type mockProvider struct {
	mock.Mock
	boxes map[int]Box
}

func (m *mockProvider) Bounds(obj int) (Box, bool) {
	b, ok := m.boxes[obj]
	return b, ok
}

func (m *mockProvider) IntersectsPolygon(b Box, p orb.Polygon) bool {
	args := m.Called(b, p)
	return args.Bool(0)
}

func (m *mockProvider) WithdrawVisibility(obj int) {
	m.Called(obj)
}

func quietConfig(maxNodes int) *Config {
	l := logrus.New()
	l.SetOutput(io.Discard)
	cfg := DefaultConfig()
	cfg.MaxNodes = maxNodes
	cfg.Logger = l
	return &cfg
}

func randomBox(r *rand.Rand, extent, maxSize float64) Box {
	x, y := r.Float64()*extent, r.Float64()*extent
	return Rect(x, y, r.Float64()*maxSize, r.Float64()*maxSize)
}

func sorted(objs []int) []int {
	r := append([]int(nil), objs...)
	sort.Ints(r)
	if r == nil {
		r = make([]int, 0)
	}
	return r
}

// leafSizes returns the object count of every leaf.
func (idx *Index[T]) leafSizes() []int {
	var sizes []int
	if idx.root == none {
		return sizes
	}
	q := ticketBag{idx.root}
	for len(q) > 0 {
		n := idx.node(q.pop())
		if n.leaf {
			sizes = append(sizes, len(n.objects))
			continue
		}
		for _, c := range n.children {
			q.push(c)
		}
	}
	return sizes
}
