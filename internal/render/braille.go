package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// brailleBuf rasterises onto a 2x4 microgrid per terminal cell. Each cell
// keeps the color of the last layer that painted into it.
type brailleBuf struct {
	w, h int                       // in cells
	m    [][]uint8                 // per-cell 8-bit mask
	c    [][]lipgloss.TerminalColor // per-cell color, nil when unpainted
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	c := make([][]lipgloss.TerminalColor, h)
	for i := range m {
		m[i] = make([]uint8, w)
		c[i] = make([]lipgloss.TerminalColor, w)
	}
	return &brailleBuf{w: w, h: h, m: m, c: c}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, col lipgloss.TerminalColor) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	b.c[cy][cx] = col
}

// drawLine draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLine(x0, y0, x1, y1 int, col lipgloss.TerminalColor) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// toLines renders each row, grouping runs of equally colored cells into one
// styled segment.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		var run []rune
		var runCol lipgloss.TerminalColor
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runCol == nil {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(runCol).Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			r, col := ' ', lipgloss.TerminalColor(nil)
			if mask != 0 {
				r, col = rune(0x2800+int(mask)), b.c[y][x]
			}
			if col != runCol {
				flush()
				runCol = col
			}
			run = append(run, r)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}

func (b *brailleBuf) String() string {
	return strings.Join(b.toLines(), "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
