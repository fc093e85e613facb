// Package style declares the data-driven paint rules for the neighborhood
// layers and keeps the renderer's source in step with the feature store.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb/geojson"

	"geotoggle/internal/feature"
	"geotoggle/internal/render"
)

// Rule is the categorical fill rule keyed on a boolean property plus a
// static outline.
type Rule struct {
	Property    string
	Selected    lipgloss.Color
	Unselected  lipgloss.Color
	FillOpacity float64
	Outline     lipgloss.Color
}

// DefaultRule paints selected neighborhoods orange and the rest cyan.
func DefaultRule() Rule {
	return Rule{
		Property:    feature.PropSelected,
		Selected:    lipgloss.Color("#F38E39"),
		Unselected:  lipgloss.Color("#39F3EA"),
		FillOpacity: 0.35,
		Outline:     lipgloss.Color("#808080"),
	}
}

// Match evaluates get(prop) against cases and falls back when the value is
// missing or unmatched.
func Match(prop string, cases map[any]lipgloss.TerminalColor, fallback lipgloss.TerminalColor) render.ColorFunc {
	return func(props geojson.Properties) lipgloss.TerminalColor {
		switch v := props[prop].(type) {
		case bool, string, float64:
			if c, ok := cases[v]; ok {
				return c
			}
		}
		return fallback
	}
}

// FillColor is the selection-driven fill expression.
func (r Rule) FillColor() render.ColorFunc {
	return Match(r.Property, map[any]lipgloss.TerminalColor{
		true:  r.Selected,
		false: r.Unselected,
	}, r.Unselected)
}

// FillPaint and LinePaint are the paints for the two layers.
func (r Rule) FillPaint() render.Paint {
	return render.Paint{Color: r.FillColor(), Opacity: r.FillOpacity}
}

func (r Rule) LinePaint() render.Paint {
	return render.Paint{Color: render.Constant(r.Outline)}
}
