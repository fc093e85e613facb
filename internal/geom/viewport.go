package geom

// Viewport maps lon/lat into terminal cells (and the 2x4 braille microgrid
// inside each cell) using bbox normalisation, zoom around the centre, and a
// pan offset expressed in cells.
type Viewport struct {
	BBox    BBox
	Zoom    float64
	OffsetX int
	OffsetY int
}

const (
	minZoom  = 0.05
	maxZoom  = 64
	zoomStep = 1.2
)

// NewViewport returns a viewport fitted to b at 1x zoom.
func NewViewport(b BBox) Viewport {
	return Viewport{BBox: b, Zoom: 1.0}
}

// Fit resets zoom and pan and frames b.
func (v *Viewport) Fit(b BBox) {
	v.BBox = b
	v.Zoom = 1.0
	v.OffsetX, v.OffsetY = 0, 0
}

// ZoomIn returns false when the zoom limit is reached.
func (v *Viewport) ZoomIn() bool {
	if v.Zoom >= maxZoom {
		return false
	}
	v.Zoom *= zoomStep
	return true
}

// ZoomOut returns false when the zoom limit is reached.
func (v *Viewport) ZoomOut() bool {
	if v.Zoom <= minZoom {
		return false
	}
	v.Zoom /= zoomStep
	return true
}

// Pan moves the view by whole cells.
func (v *Viewport) Pan(dx, dy int) {
	v.OffsetX += dx
	v.OffsetY += dy
}

// ScreenXY maps lon/lat to cell coordinates considering zoom and pan.
func (v Viewport) ScreenXY(lon, lat float64, w, h int) (int, int, bool) {
	if !v.BBox.Valid() {
		return 0, 0, false
	}
	zx, zy := v.normalize(lon, lat)
	sx := int(zx*float64(w-1)) + v.OffsetX
	sy := int((1.0-zy)*float64(h-1)) + v.OffsetY
	return sx, sy, true
}

// ScreenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (v Viewport) ScreenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	if !v.BBox.Valid() {
		return 0, 0, false
	}
	zx, zy := v.normalize(lon, lat)
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + v.OffsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + v.OffsetY*4
	return sx, sy, true
}

// CellToLonLat converts a map cell coordinate back to lon/lat.
func (v Viewport) CellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if !v.BBox.Valid() {
		return 0, 0, false
	}
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-v.OffsetX) / float64(w-1)
	zy := 1.0 - float64(cy-v.OffsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/v.Zoom
	ny := 0.5 + (zy-0.5)/v.Zoom
	lon := v.BBox.MinX + nx*(v.BBox.MaxX-v.BBox.MinX)
	lat := v.BBox.MinY + ny*(v.BBox.MaxY-v.BBox.MinY)
	return lon, lat, true
}

// normalize applies bbox normalisation and zoom around (0.5, 0.5).
func (v Viewport) normalize(lon, lat float64) (float64, float64) {
	nx := (lon - v.BBox.MinX) / (v.BBox.MaxX - v.BBox.MinX)
	ny := (lat - v.BBox.MinY) / (v.BBox.MaxY - v.BBox.MinY)
	return 0.5 + (nx-0.5)*v.Zoom, 0.5 + (ny-0.5)*v.Zoom
}
