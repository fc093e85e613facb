// Package click turns a tap on the map into a selection toggle.
package click

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"

	"geotoggle/internal/render"
)

// MatchMode decides which features a tap toggles.
type MatchMode string

const (
	// MatchFeature toggles only the struck feature instance.
	MatchFeature MatchMode = "feature"
	// MatchName toggles every feature sharing the struck feature's name.
	MatchName MatchMode = "name"
)

// ParseMatchMode accepts "feature", "name", or empty (feature).
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(s) {
	case "", MatchFeature:
		return MatchFeature, nil
	case MatchName:
		return MatchName, nil
	}
	return "", fmt.Errorf("unknown match mode %q", s)
}

// HitTester is the renderer's query surface.
type HitTester interface {
	QueryRenderedFeatures(pt orb.Point, layerIDs ...string) []render.Hit
}

// Store is the selection state the router mutates.
type Store interface {
	NameProperty() string
	Name(i int) string
	Toggle(name string) int
	ToggleAt(i int) error
	SelectedAt(i int) bool
	SelectionOf(name string) bool
}

// Refresher pushes store changes back to the renderer.
type Refresher interface {
	Refresh() error
}

// Result describes the outcome of a tap.
type Result struct {
	Handled  bool
	Name     string
	Selected bool
	Toggled  int
}

// Router is stateless between taps: tapping the same polygon twice restores
// its selection.
type Router struct {
	hits    HitTester
	store   Store
	refresh Refresher
	layerID string
	mode    MatchMode
}

func NewRouter(hits HitTester, store Store, refresh Refresher, layerID string, mode MatchMode) *Router {
	if mode == "" {
		mode = MatchFeature
	}
	return &Router{hits: hits, store: store, refresh: refresh, layerID: layerID, mode: mode}
}

// Tap hit-tests pt (lon/lat) against the layer and toggles the first feature
// struck. A miss is reported as unhandled and changes nothing.
func (r *Router) Tap(pt orb.Point) Result {
	hits := r.hits.QueryRenderedFeatures(pt, r.layerID)
	if len(hits) == 0 {
		return Result{}
	}
	return r.Apply(hits[0])
}

// Apply toggles the feature behind hit and refreshes the renderer.
func (r *Router) Apply(hit render.Hit) Result {
	name := r.store.Name(hit.Index)
	if hit.Feature != nil {
		name = hit.Feature.Properties.MustString(r.store.NameProperty(), name)
	}
	res := Result{Handled: true, Name: name}

	switch r.mode {
	case MatchName:
		res.Toggled = r.store.Toggle(name)
		res.Selected = r.store.SelectionOf(name)
	default:
		if err := r.store.ToggleAt(hit.Index); err != nil {
			log.Warn().Err(err).Str("name", name).Msg("Struck feature is not in the store")
			return res
		}
		res.Toggled = 1
		res.Selected = r.store.SelectedAt(hit.Index)
	}

	if r.refresh != nil {
		if err := r.refresh.Refresh(); err != nil {
			log.Error().Err(err).Msg("Failed to refresh source")
		}
	}
	log.Debug().
		Str("name", name).
		Bool("selected", res.Selected).
		Int("toggled", res.Toggled).
		Str("mode", string(r.mode)).
		Msg("Feature toggled")
	return res
}
