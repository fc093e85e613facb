package feature

import (
	"reflect"
	"testing"

	"github.com/paulmach/orb/geojson"
)

const twoSquares = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"neighborhood_name": "A", "selected": true},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}},
    {"type": "Feature", "properties": {"neighborhood_name": "B"},
     "geometry": {"type": "Polygon", "coordinates": [[[1,0],[2,0],[2,1],[1,1],[1,0]]]}}
  ]
}`

const duplicateNames = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"neighborhood_name": "A"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}},
    {"type": "Feature", "properties": null,
     "geometry": {"type": "Polygon", "coordinates": [[[3,3],[4,3],[4,4],[3,3]]]}},
    {"type": "Feature", "properties": {"neighborhood_name": "A"},
     "geometry": {"type": "Polygon", "coordinates": [[[5,5],[6,5],[6,6],[5,5]]]}}
  ]
}`

func mustLoad(t *testing.T, text string) *Store {
	t.Helper()
	s := NewStore(DefaultNameProperty)
	if err := s.LoadFrom(text); err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	return s
}

func TestLoadFromDefaultsUnselected(t *testing.T) {
	s := mustLoad(t, twoSquares)
	if s.Len() != 2 {
		t.Fatalf("expected 2 features, got %d", s.Len())
	}
	for i := 0; i < s.Len(); i++ {
		if s.SelectedAt(i) {
			t.Errorf("feature %d (%s) should start unselected", i, s.Name(i))
		}
	}
	if got := s.Selected(); len(got) != 0 {
		t.Errorf("expected no selection, got %v", got)
	}
}

func TestLoadFromReplaces(t *testing.T) {
	s := mustLoad(t, twoSquares)
	s.Toggle("A")
	if err := s.LoadFrom(duplicateNames); err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("load should replace, got %d features", s.Len())
	}
	if s.SelectionOf("A") {
		t.Error("selection should be reset by a new load")
	}
}

func TestLoadFromInvalidKeepsContents(t *testing.T) {
	s := mustLoad(t, twoSquares)
	for _, bad := range []string{"", "not json", `{"type":"Point","coordinates":[0,0]}`} {
		if err := s.LoadFrom(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
	if s.Len() != 2 || s.Name(0) != "A" {
		t.Errorf("store changed after failed load: len=%d", s.Len())
	}
}

func TestSelectionOfEmptyStore(t *testing.T) {
	s := NewStore("")
	if s.SelectionOf("A") {
		t.Error("empty store must report false")
	}
	if s.Toggle("A") != 0 {
		t.Error("toggle on empty store must be a no-op")
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	s := mustLoad(t, twoSquares)
	if n := s.Toggle("A"); n != 1 {
		t.Fatalf("expected 1 toggled, got %d", n)
	}
	if !s.SelectionOf("A") || s.SelectionOf("B") {
		t.Fatalf("after one toggle: A=%v B=%v", s.SelectionOf("A"), s.SelectionOf("B"))
	}
	s.Toggle("A")
	if s.SelectionOf("A") || s.SelectionOf("B") {
		t.Fatalf("after two toggles: A=%v B=%v", s.SelectionOf("A"), s.SelectionOf("B"))
	}
}

func TestToggleUnknownIsNoop(t *testing.T) {
	s := mustLoad(t, twoSquares)
	before, _ := s.Marshal()
	if n := s.Toggle("Z"); n != 0 {
		t.Errorf("expected 0 toggled, got %d", n)
	}
	after, _ := s.Marshal()
	if string(before) != string(after) {
		t.Error("unknown identity changed the store")
	}
}

func TestToggleDuplicates(t *testing.T) {
	s := mustLoad(t, duplicateNames)
	if got := s.Duplicates(); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("Duplicates = %v", got)
	}
	if n := s.Toggle("A"); n != 2 {
		t.Errorf("expected both same-named features toggled, got %d", n)
	}
	if !s.SelectedAt(0) || s.SelectedAt(1) || !s.SelectedAt(2) {
		t.Errorf("unexpected selection %v %v %v", s.SelectedAt(0), s.SelectedAt(1), s.SelectedAt(2))
	}
}

func TestToggleAt(t *testing.T) {
	s := mustLoad(t, duplicateNames)
	if err := s.ToggleAt(2); err != nil {
		t.Fatalf("ToggleAt: %v", err)
	}
	if s.SelectedAt(0) || !s.SelectedAt(2) {
		t.Error("ToggleAt should flip only the addressed instance")
	}
	if err := s.ToggleAt(3); err == nil {
		t.Error("expected out of range error")
	}
	if err := s.ToggleAt(-1); err == nil {
		t.Error("expected out of range error")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	s := mustLoad(t, twoSquares)
	s.Toggle("B")
	b, err := s.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(fc.Features) != s.Len() {
		t.Fatalf("feature count %d != %d", len(fc.Features), s.Len())
	}
	for i, f := range fc.Features {
		if got := f.Properties.MustBool(PropSelected, false); got != s.SelectedAt(i) {
			t.Errorf("feature %d selected=%v, store has %v", i, got, s.SelectedAt(i))
		}
	}

	reloaded := NewStore(DefaultNameProperty)
	if err := reloaded.LoadFrom(string(b)); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Name(1) != "B" {
		t.Errorf("order not preserved: %q", reloaded.Name(1))
	}
}

func TestScenarioTapSequence(t *testing.T) {
	s := mustLoad(t, twoSquares)
	want := func(a, b bool) {
		t.Helper()
		if s.SelectionOf("A") != a || s.SelectionOf("B") != b {
			t.Fatalf("want A=%v B=%v, got A=%v B=%v", a, b, s.SelectionOf("A"), s.SelectionOf("B"))
		}
	}
	want(false, false)
	s.Toggle("A")
	want(true, false)
	s.Toggle("A")
	want(false, false)
}

func TestBoundAndProperties(t *testing.T) {
	s := mustLoad(t, twoSquares)
	b := s.Bound()
	if b.Min[0] != 0 || b.Min[1] != 0 || b.Max[0] != 2 || b.Max[1] != 1 {
		t.Errorf("Bound = %v", b)
	}
	p := s.Properties(0)
	p[PropSelected] = true
	if s.SelectedAt(0) {
		t.Error("Properties must return a copy")
	}
	if s.Properties(5) != nil {
		t.Error("out of range Properties should be nil")
	}
}
