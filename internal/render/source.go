package render

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tidwall/rtree"
)

// Source is a named GeoJSON data source. Layers read features from it and
// the renderer indexes their bounds for hit testing.
type Source struct {
	id       string
	features []*geojson.Feature
	bound    orb.Bound
	hasBound bool
	index    *rtree.RTreeG[int]
}

// NewSource returns an empty source.
func NewSource(id string) *Source {
	return &Source{id: id, index: &rtree.RTreeG[int]{}}
}

func (s *Source) ID() string { return s.id }

// Len returns the number of features currently held.
func (s *Source) Len() int { return len(s.features) }

// Feature returns the feature at index i, or nil.
func (s *Source) Feature(i int) *geojson.Feature {
	if i < 0 || i >= len(s.features) {
		return nil
	}
	return s.features[i]
}

// Bound returns the union of feature bounds; ok is false for an empty source.
func (s *Source) Bound() (orb.Bound, bool) {
	return s.bound, s.hasBound
}

// SetGeoJSON replaces the source data with a serialised FeatureCollection and
// rebuilds the spatial index. On error the previous data is kept.
func (s *Source) SetGeoJSON(data []byte) error {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return fmt.Errorf("source %s: %w", s.id, err)
	}
	index := &rtree.RTreeG[int]{}
	var bound orb.Bound
	hasBound := false
	for i, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		b := f.Geometry.Bound()
		index.Insert([2]float64{b.Min[0], b.Min[1]}, [2]float64{b.Max[0], b.Max[1]}, i)
		if !hasBound {
			bound, hasBound = b, true
		} else {
			bound = bound.Union(b)
		}
	}
	s.features = fc.Features
	s.index = index
	s.bound, s.hasBound = bound, hasBound
	return nil
}

// candidates returns the indices of features whose bounds contain pt.
func (s *Source) candidates(pt orb.Point) []int {
	var out []int
	s.index.Search([2]float64{pt[0], pt[1]}, [2]float64{pt[0], pt[1]},
		func(min, max [2]float64, i int) bool {
			out = append(out, i)
			return true
		})
	return out
}
