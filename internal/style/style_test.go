package style

import (
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geotoggle/internal/feature"
	"geotoggle/internal/render"
)

const pair = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"neighborhood_name": "A"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}},
    {"type": "Feature", "properties": {"neighborhood_name": "B"},
     "geometry": {"type": "Polygon", "coordinates": [[[1,0],[2,0],[2,1],[1,1],[1,0]]]}}
  ]
}`

func TestFillColor(t *testing.T) {
	rule := DefaultRule()
	fill := rule.FillColor()
	cases := []struct {
		name  string
		props geojson.Properties
		want  lipgloss.TerminalColor
	}{
		{"selected", geojson.Properties{"selected": true}, rule.Selected},
		{"unselected", geojson.Properties{"selected": false}, rule.Unselected},
		{"missing", geojson.Properties{}, rule.Unselected},
		{"wrong type", geojson.Properties{"selected": "yes"}, rule.Unselected},
		{"uncomparable", geojson.Properties{"selected": []any{true}}, rule.Unselected},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := fill(tc.props); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

type failingData struct{}

func (failingData) Marshal() ([]byte, error) { return nil, errors.New("boom") }

func TestRefreshBeforeBindIsNoop(t *testing.T) {
	b := NewBinder(render.New(), DefaultRule())
	if b.Bound() {
		t.Fatal("new binder should not be bound")
	}
	if err := b.Refresh(); err != nil {
		t.Errorf("Refresh before Bind: %v", err)
	}
}

func TestBindDeclaresLayers(t *testing.T) {
	r := render.New()
	b := NewBinder(r, DefaultRule())
	s := feature.NewStore(feature.DefaultNameProperty)
	if err := s.LoadFrom(pair); err != nil {
		t.Fatal(err)
	}
	if err := b.Bind(s); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	ids := r.LayerIDs()
	if len(ids) != 2 || ids[0] != FillLayerID || ids[1] != LineLayerID {
		t.Errorf("layers = %v", ids)
	}
	if r.Source(SourceID) == nil || r.Source(SourceID).Len() != 2 {
		t.Error("source not populated")
	}
	if !r.Viewport().BBox.Valid() {
		t.Error("viewport not fitted to data")
	}
}

func TestRefreshPushesSelection(t *testing.T) {
	r := render.New()
	rule := DefaultRule()
	b := NewBinder(r, rule)
	s := feature.NewStore(feature.DefaultNameProperty)
	if err := s.LoadFrom(pair); err != nil {
		t.Fatal(err)
	}
	if err := b.Bind(s); err != nil {
		t.Fatal(err)
	}
	fill := r.Layer(FillLayerID)

	s.Toggle("A")
	hit := r.QueryRenderedFeatures(orb.Point{0.5, 0.5}, FillLayerID)
	if len(hit) != 1 || fill.Paint.Color(hit[0].Feature.Properties) != rule.Unselected {
		t.Fatal("source should not change before Refresh")
	}
	if err := b.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	hit = r.QueryRenderedFeatures(orb.Point{0.5, 0.5}, FillLayerID)
	if len(hit) != 1 || fill.Paint.Color(hit[0].Feature.Properties) != rule.Selected {
		t.Error("refreshed source should paint A as selected")
	}
	hit = r.QueryRenderedFeatures(orb.Point{1.5, 0.5}, FillLayerID)
	if len(hit) != 1 || fill.Paint.Color(hit[0].Feature.Properties) != rule.Unselected {
		t.Error("B should stay unselected")
	}
}

func TestBindAgainSwapsData(t *testing.T) {
	r := render.New()
	b := NewBinder(r, DefaultRule())
	s := feature.NewStore(feature.DefaultNameProperty)
	if err := s.LoadFrom(pair); err != nil {
		t.Fatal(err)
	}
	if err := b.Bind(s); err != nil {
		t.Fatal(err)
	}
	if err := b.Bind(failingData{}); err == nil {
		t.Error("expected marshal error on rebind")
	}
	if len(r.LayerIDs()) != 2 {
		t.Error("rebind must not add layers")
	}
}
