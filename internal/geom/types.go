package geom

import "github.com/paulmach/orb"

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// FromBound converts an orb bound (lon/lat) into a BBox.
func FromBound(b orb.Bound) BBox {
	return BBox{MinX: b.Min[0], MinY: b.Min[1], MaxX: b.Max[0], MaxY: b.Max[1]}
}

// Valid reports whether the box has a non-zero extent on both axes.
func (b BBox) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}
