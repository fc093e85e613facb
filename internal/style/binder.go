package style

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"geotoggle/internal/render"
)

const (
	SourceID    = "neighborhood-polygons"
	FillLayerID = "neighborhood-fill"
	LineLayerID = "neighborhood-outline"
)

// Marshaler serialises a whole feature collection.
type Marshaler interface {
	Marshal() ([]byte, error)
}

// Binder owns the neighborhood source and layers on a renderer.
type Binder struct {
	r    *render.Renderer
	rule Rule
	src  *render.Source
	data Marshaler
}

func NewBinder(r *render.Renderer, rule Rule) *Binder {
	return &Binder{r: r, rule: rule}
}

func (b *Binder) Rule() Rule { return b.rule }

// Bound reports whether the source and layers exist yet.
func (b *Binder) Bound() bool { return b.src != nil }

// Bind declares the source, the fill layer and the outline layer above it,
// then frames the data. Once bound, further calls swap the data and refresh.
func (b *Binder) Bind(data Marshaler) error {
	if b.src != nil {
		b.data = data
		return b.Refresh()
	}
	src := render.NewSource(SourceID)
	raw, err := data.Marshal()
	if err != nil {
		return fmt.Errorf("bind: %w", err)
	}
	if err := src.SetGeoJSON(raw); err != nil {
		return fmt.Errorf("bind: %w", err)
	}
	if err := b.r.AddSource(src); err != nil {
		return fmt.Errorf("bind: %w", err)
	}
	if err := b.r.AddLayer(render.Layer{
		ID:       FillLayerID,
		SourceID: SourceID,
		Kind:     render.KindFill,
		Paint:    b.rule.FillPaint(),
	}); err != nil {
		return fmt.Errorf("bind: %w", err)
	}
	if err := b.r.AddLayer(render.Layer{
		ID:       LineLayerID,
		SourceID: SourceID,
		Kind:     render.KindLine,
		Paint:    b.rule.LinePaint(),
	}); err != nil {
		return fmt.Errorf("bind: %w", err)
	}
	b.src, b.data = src, data
	b.r.FitBounds()
	log.Debug().Int("features", src.Len()).Msg("Neighborhood layers bound")
	return nil
}

// Refresh resends the whole collection to the source. It is a no-op until
// Bind has succeeded.
func (b *Binder) Refresh() error {
	if b.src == nil || b.data == nil {
		return nil
	}
	raw, err := b.data.Marshal()
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	if err := b.src.SetGeoJSON(raw); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	log.Debug().Int("bytes", len(raw)).Msg("Source refreshed")
	return nil
}
