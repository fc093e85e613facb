package render

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
)

// Draw renders all visible layers, bottom to top, into a w x h cell canvas.
func (r *Renderer) Draw(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	br := newBrailleBuf(w, h)
	for _, l := range r.layers {
		if l.Hidden {
			continue
		}
		src := r.sources[l.SourceID]
		if src == nil {
			continue
		}
		for _, f := range src.features {
			if f.Geometry == nil {
				continue
			}
			col := l.color(f.Properties)
			switch l.Kind {
			case KindFill:
				for _, poly := range polygonsOf(f.Geometry) {
					r.fillPolygon(br, poly, col, l.ditherStep(), w, h)
				}
			case KindLine:
				for _, ls := range linesOf(f.Geometry) {
					r.strokeLine(br, ls, col, w, h)
				}
			}
		}
	}
	return br.String()
}

// fillPolygon scanlines every ring of poly on the microgrid with the even-odd
// rule, so holes stay empty.
func (r *Renderer) fillPolygon(br *brailleBuf, poly orb.Polygon, col lipgloss.TerminalColor, step, w, h int) {
	var rings [][][2]int
	minY, maxY := h*4, -1
	for _, ring := range poly {
		var sm [][2]int
		for _, p := range ring {
			mx, my, ok := r.view.ScreenXYMicro(p[0], p[1], w, h)
			if !ok {
				continue
			}
			sm = append(sm, [2]int{mx, my})
			minY = min(minY, my)
			maxY = max(maxY, my)
		}
		if len(sm) >= 3 {
			rings = append(rings, sm)
		}
	}
	if len(rings) == 0 {
		return
	}
	minY = max(minY, 0)
	maxY = min(maxY, h*4-1)
	for yMic := minY; yMic <= maxY; yMic++ {
		var xs []int
		for _, ring := range rings {
			for i := 0; i < len(ring); i++ {
				a := ring[i]
				b := ring[(i+1)%len(ring)]
				if a[1] == b[1] { // horizontal edge: skip
					continue
				}
				y0, y1 := a[1], b[1]
				x0, x1 := a[0], b[0]
				if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
					t := float64(yMic-y0) / float64(y1-y0)
					xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
				}
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= min(xs[i+1], w*2-1); xMic++ {
				if (xMic+yMic)%step == 0 {
					br.setPixel(xMic, yMic, col)
				}
			}
		}
	}
}

func (r *Renderer) strokeLine(br *brailleBuf, ls orb.LineString, col lipgloss.TerminalColor, w, h int) {
	var prev *[2]int
	for _, p := range ls {
		mx, my, ok := r.view.ScreenXYMicro(p[0], p[1], w, h)
		if !ok {
			continue
		}
		if prev != nil {
			br.drawLine(prev[0], prev[1], mx, my, col)
		}
		prev = &[2]int{mx, my}
	}
}

func polygonsOf(g orb.Geometry) []orb.Polygon {
	switch g := g.(type) {
	case orb.Polygon:
		return []orb.Polygon{g}
	case orb.MultiPolygon:
		return g
	case orb.Ring:
		return []orb.Polygon{{g}}
	}
	return nil
}

// linesOf returns the outlines of polygons and the paths of line strings.
func linesOf(g orb.Geometry) []orb.LineString {
	switch g := g.(type) {
	case orb.LineString:
		return []orb.LineString{g}
	case orb.MultiLineString:
		return g
	case orb.Ring:
		return []orb.LineString{orb.LineString(g)}
	case orb.Polygon:
		out := make([]orb.LineString, 0, len(g))
		for _, ring := range g {
			out = append(out, orb.LineString(ring))
		}
		return out
	case orb.MultiPolygon:
		var out []orb.LineString
		for _, poly := range g {
			for _, ring := range poly {
				out = append(out, orb.LineString(ring))
			}
		}
		return out
	}
	return nil
}
