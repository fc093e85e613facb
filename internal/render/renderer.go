// Package render draws GeoJSON sources as fill and line layers onto a
// braille terminal canvas and answers hit tests against what it draws.
package render

import (
	"errors"
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"geotoggle/internal/geom"
)

var (
	ErrDuplicateID   = errors.New("duplicate id")
	ErrUnknownSource = errors.New("unknown source")
	ErrUnknownLayer  = errors.New("unknown layer")
)

// Hit is one feature struck by QueryRenderedFeatures.
type Hit struct {
	// Index is the feature's position in its source.
	Index    int
	LayerID  string
	SourceID string
	Feature  *geojson.Feature
}

// Renderer owns the sources, the ordered layer stack and the viewport.
type Renderer struct {
	sources map[string]*Source
	layers  []*Layer // bottom to top
	view    geom.Viewport
}

func New() *Renderer {
	return &Renderer{
		sources: make(map[string]*Source),
		view:    geom.NewViewport(geom.BBox{}),
	}
}

// Viewport exposes the projection for panning, zooming and converting
// screen cells to lon/lat.
func (r *Renderer) Viewport() *geom.Viewport { return &r.view }

func (r *Renderer) AddSource(s *Source) error {
	if _, ok := r.sources[s.ID()]; ok {
		return fmt.Errorf("source %s: %w", s.ID(), ErrDuplicateID)
	}
	r.sources[s.ID()] = s
	return nil
}

func (r *Renderer) Source(id string) *Source { return r.sources[id] }

// AddLayer puts l on top of the stack.
func (r *Renderer) AddLayer(l Layer) error {
	return r.AddLayerBelow(l, "")
}

// AddLayerBelow inserts l directly under the layer named below, or on top
// when below is empty.
func (r *Renderer) AddLayerBelow(l Layer, below string) error {
	if r.Layer(l.ID) != nil {
		return fmt.Errorf("layer %s: %w", l.ID, ErrDuplicateID)
	}
	if r.sources[l.SourceID] == nil {
		return fmt.Errorf("layer %s: %w %s", l.ID, ErrUnknownSource, l.SourceID)
	}
	if below == "" {
		r.layers = append(r.layers, &l)
		return nil
	}
	for i, cur := range r.layers {
		if cur.ID == below {
			r.layers = append(r.layers[:i], append([]*Layer{&l}, r.layers[i:]...)...)
			return nil
		}
	}
	return fmt.Errorf("layer %s: %w %s", l.ID, ErrUnknownLayer, below)
}

func (r *Renderer) Layer(id string) *Layer {
	for _, l := range r.layers {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// LayerIDs lists layers bottom to top.
func (r *Renderer) LayerIDs() []string {
	ids := make([]string, len(r.layers))
	for i, l := range r.layers {
		ids[i] = l.ID
	}
	return ids
}

// SetVisible shows or hides a layer. It reports whether the layer exists.
func (r *Renderer) SetVisible(id string, visible bool) bool {
	l := r.Layer(id)
	if l == nil {
		return false
	}
	l.Hidden = !visible
	return true
}

// FitBounds frames every source and resets zoom and pan.
func (r *Renderer) FitBounds() bool {
	var b orb.Bound
	found := false
	for _, s := range r.sources {
		sb, ok := s.Bound()
		if !ok {
			continue
		}
		if !found {
			b, found = sb, true
		} else {
			b = b.Union(sb)
		}
	}
	if !found {
		return false
	}
	r.view.Fit(geom.FromBound(b))
	return true
}

// QueryRenderedFeatures returns the features of the named visible fill layers
// (all fill layers when none are named) that contain pt. The topmost feature
// comes first.
func (r *Renderer) QueryRenderedFeatures(pt orb.Point, layerIDs ...string) []Hit {
	want := make(map[string]bool, len(layerIDs))
	for _, id := range layerIDs {
		want[id] = true
	}
	var hits []Hit
	for li := len(r.layers) - 1; li >= 0; li-- {
		l := r.layers[li]
		if l.Hidden || l.Kind != KindFill {
			continue
		}
		if len(want) > 0 && !want[l.ID] {
			continue
		}
		src := r.sources[l.SourceID]
		if src == nil {
			continue
		}
		cand := src.candidates(pt)
		sort.Sort(sort.Reverse(sort.IntSlice(cand)))
		for _, i := range cand {
			f := src.features[i]
			if containsPoint(f.Geometry, pt) {
				hits = append(hits, Hit{Index: i, LayerID: l.ID, SourceID: src.ID(), Feature: f})
			}
		}
	}
	return hits
}

func containsPoint(g orb.Geometry, pt orb.Point) bool {
	switch g := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, pt)
	case orb.Ring:
		return planar.RingContains(g, pt)
	}
	return false
}
