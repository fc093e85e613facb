package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb/geojson"
)

// Kind selects how a layer draws its source's features.
type Kind int

const (
	KindFill Kind = iota
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindFill:
		return "fill"
	case KindLine:
		return "line"
	}
	return "unknown"
}

// ColorFunc evaluates a paint color for one feature's properties.
type ColorFunc func(props geojson.Properties) lipgloss.TerminalColor

// Constant returns a ColorFunc that ignores feature properties.
func Constant(c lipgloss.TerminalColor) ColorFunc {
	return func(geojson.Properties) lipgloss.TerminalColor { return c }
}

// Paint holds the per-layer drawing rules.
type Paint struct {
	Color ColorFunc
	// Opacity is the share of microgrid dots set inside a fill. Zero or
	// anything above one draws a solid fill.
	Opacity float64
}

// Layer draws one source with one paint.
type Layer struct {
	ID       string
	SourceID string
	Kind     Kind
	Paint    Paint
	Hidden   bool
}

func (l *Layer) color(props geojson.Properties) lipgloss.TerminalColor {
	if l.Paint.Color == nil {
		return nil
	}
	return l.Paint.Color(props)
}

// ditherStep converts an opacity into "set every n-th dot".
func (l *Layer) ditherStep() int {
	o := l.Paint.Opacity
	if o <= 0 || o >= 1 {
		return 1
	}
	n := int(1/o + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}
