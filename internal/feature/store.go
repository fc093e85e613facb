// Package feature holds the in-memory polygon collection whose features carry
// a boolean selection attribute.
package feature

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	// PropSelected is the only attribute mutated after load.
	PropSelected = "selected"
	// DefaultNameProperty identifies a neighborhood in the bundled data.
	DefaultNameProperty = "neighborhood_name"
)

// Store is an ordered feature collection. Features are never added or removed
// after a load; only their selection attribute changes. It is not safe for
// concurrent use.
type Store struct {
	nameProp string
	fc       *geojson.FeatureCollection
}

// NewStore returns an empty store that identifies features by nameProp.
func NewStore(nameProp string) *Store {
	if nameProp == "" {
		nameProp = DefaultNameProperty
	}
	return &Store{nameProp: nameProp, fc: geojson.NewFeatureCollection()}
}

// NameProperty returns the identity attribute key.
func (s *Store) NameProperty() string { return s.nameProp }

// LoadFrom parses a GeoJSON FeatureCollection and replaces the store's
// contents. Every feature starts unselected. On error the store is unchanged.
func (s *Store) LoadFrom(text string) error {
	fc, err := geojson.UnmarshalFeatureCollection([]byte(text))
	if err != nil {
		return fmt.Errorf("parse feature collection: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return fmt.Errorf("parse feature collection: unexpected type %q", fc.Type)
	}
	for _, f := range fc.Features {
		if f.Properties == nil {
			f.Properties = geojson.Properties{}
		}
		f.Properties[PropSelected] = false
	}
	s.fc = fc
	return nil
}

// Len returns the number of features.
func (s *Store) Len() int { return len(s.fc.Features) }

// Name returns the identity of the feature at index i.
func (s *Store) Name(i int) string {
	if i < 0 || i >= s.Len() {
		return ""
	}
	return s.fc.Features[i].Properties.MustString(s.nameProp, "")
}

// Properties returns a copy of the attributes of the feature at index i.
func (s *Store) Properties(i int) geojson.Properties {
	if i < 0 || i >= s.Len() {
		return nil
	}
	return s.fc.Features[i].Properties.Clone()
}

// SelectionOf reports the selection of the first feature named name. It is
// false when the store is empty or nothing matches.
func (s *Store) SelectionOf(name string) bool {
	for i := range s.fc.Features {
		if s.Name(i) == name {
			return s.SelectedAt(i)
		}
	}
	return false
}

// SelectedAt reports the selection of the feature at index i.
func (s *Store) SelectedAt(i int) bool {
	if i < 0 || i >= s.Len() {
		return false
	}
	return s.fc.Features[i].Properties.MustBool(PropSelected, false)
}

// Toggle flips the selection of every feature named name and returns how many
// were flipped. Identities are not unique by construction, so same-named
// siblings flip together.
func (s *Store) Toggle(name string) int {
	n := 0
	for i := range s.fc.Features {
		if s.Name(i) == name {
			s.flip(i)
			n++
		}
	}
	return n
}

// ToggleAt flips the selection of the feature at index i.
func (s *Store) ToggleAt(i int) error {
	if i < 0 || i >= s.Len() {
		return fmt.Errorf("feature index %d out of range [0,%d)", i, s.Len())
	}
	s.flip(i)
	return nil
}

func (s *Store) flip(i int) {
	p := s.fc.Features[i].Properties
	p[PropSelected] = !p.MustBool(PropSelected, false)
}

// Selected returns the identities of the selected features in store order.
func (s *Store) Selected() []string {
	var out []string
	for i := range s.fc.Features {
		if s.SelectedAt(i) {
			out = append(out, s.Name(i))
		}
	}
	return out
}

// Duplicates returns the identities shared by more than one feature.
func (s *Store) Duplicates() []string {
	seen := make(map[string]int, s.Len())
	for i := range s.fc.Features {
		seen[s.Name(i)]++
	}
	var out []string
	for name, n := range seen {
		if n > 1 {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Bound returns the union of all feature bounds.
func (s *Store) Bound() orb.Bound {
	var b orb.Bound
	first := true
	for _, f := range s.fc.Features {
		if f.Geometry == nil {
			continue
		}
		if first {
			b = f.Geometry.Bound()
			first = false
			continue
		}
		b = b.Union(f.Geometry.Bound())
	}
	return b
}

// Marshal serialises the whole collection with its current selection state.
func (s *Store) Marshal() ([]byte, error) {
	return s.fc.MarshalJSON()
}
