package click

import (
	"testing"

	"github.com/paulmach/orb"

	"geotoggle/internal/feature"
	"geotoggle/internal/render"
	"geotoggle/internal/style"
)

const neighborhoods = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"neighborhood_name": "A"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}},
    {"type": "Feature", "properties": {"neighborhood_name": "B"},
     "geometry": {"type": "Polygon", "coordinates": [[[1,0],[2,0],[2,1],[1,1],[1,0]]]}},
    {"type": "Feature", "properties": {"neighborhood_name": "A"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,5],[1,5],[1,6],[0,6],[0,5]]]}}
  ]
}`

type countingRefresher struct{ n int }

func (c *countingRefresher) Refresh() error {
	c.n++
	return nil
}

type fixedHits []render.Hit

func (f fixedHits) QueryRenderedFeatures(orb.Point, ...string) []render.Hit { return f }

func setup(t *testing.T, mode MatchMode) (*Router, *feature.Store, *countingRefresher) {
	t.Helper()
	s := feature.NewStore(feature.DefaultNameProperty)
	if err := s.LoadFrom(neighborhoods); err != nil {
		t.Fatal(err)
	}
	r := render.New()
	b := style.NewBinder(r, style.DefaultRule())
	if err := b.Bind(s); err != nil {
		t.Fatal(err)
	}
	ref := &countingRefresher{}
	return NewRouter(r, s, multiRefresher{b, ref}, style.FillLayerID, mode), s, ref
}

type multiRefresher []Refresher

func (m multiRefresher) Refresh() error {
	for _, r := range m {
		if err := r.Refresh(); err != nil {
			return err
		}
	}
	return nil
}

func TestTapMissIsUnhandled(t *testing.T) {
	router, s, ref := setup(t, MatchFeature)
	before, _ := s.Marshal()
	res := router.Tap(orb.Point{10, 10})
	if res.Handled {
		t.Error("tap on empty space should be unhandled")
	}
	after, _ := s.Marshal()
	if string(before) != string(after) {
		t.Error("store changed on a miss")
	}
	if ref.n != 0 {
		t.Errorf("miss triggered %d refreshes", ref.n)
	}
}

func TestTapTogglesOnlyStruckFeature(t *testing.T) {
	router, s, ref := setup(t, MatchFeature)
	res := router.Tap(orb.Point{1.5, 0.5})
	if !res.Handled || res.Name != "B" || !res.Selected || res.Toggled != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if !s.SelectionOf("B") || s.SelectedAt(0) || s.SelectedAt(2) {
		t.Error("only B should be selected")
	}
	if ref.n != 1 {
		t.Errorf("expected one refresh, got %d", ref.n)
	}
}

func TestTapScenario(t *testing.T) {
	router, s, _ := setup(t, MatchFeature)
	router.Tap(orb.Point{0.5, 0.5})
	if !s.SelectedAt(0) || s.SelectionOf("B") {
		t.Fatal("after first tap A should be selected, B not")
	}
	res := router.Tap(orb.Point{0.5, 0.5})
	if res.Selected || s.SelectedAt(0) || s.SelectionOf("B") {
		t.Fatal("second tap should restore A")
	}
}

func TestTapSeesRefreshedSource(t *testing.T) {
	router, _, _ := setup(t, MatchFeature)
	router.Tap(orb.Point{0.5, 0.5})
	hits := router.hits.QueryRenderedFeatures(orb.Point{0.5, 0.5}, style.FillLayerID)
	if len(hits) != 1 || !hits[0].Feature.Properties.MustBool(feature.PropSelected, false) {
		t.Error("renderer source should carry the new selection")
	}
}

func TestMatchByFeatureLeavesNamesakes(t *testing.T) {
	router, s, _ := setup(t, MatchFeature)
	router.Tap(orb.Point{0.5, 5.5})
	if s.SelectedAt(0) || !s.SelectedAt(2) {
		t.Error("only the struck instance should toggle")
	}
}

func TestMatchByNameTogglesNamesakes(t *testing.T) {
	router, s, _ := setup(t, MatchName)
	res := router.Tap(orb.Point{0.5, 5.5})
	if res.Toggled != 2 {
		t.Errorf("expected 2 toggled, got %d", res.Toggled)
	}
	if !s.SelectedAt(0) || s.SelectedAt(1) || !s.SelectedAt(2) {
		t.Error("both features named A should toggle")
	}
}

func TestApplyOutOfRange(t *testing.T) {
	s := feature.NewStore("")
	ref := &countingRefresher{}
	router := NewRouter(fixedHits{{Index: 3}}, s, ref, "fill", "")
	res := router.Tap(orb.Point{})
	if !res.Handled || res.Toggled != 0 {
		t.Errorf("unexpected result %+v", res)
	}
	if ref.n != 0 {
		t.Error("failed toggle should not refresh")
	}
}

func TestParseMatchMode(t *testing.T) {
	for in, want := range map[string]MatchMode{"": MatchFeature, "feature": MatchFeature, "name": MatchName} {
		got, err := ParseMatchMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMatchMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseMatchMode("index"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
