package tui

import "github.com/orglens/orglens/pkg/layout"

// camera maps layout unit-box coordinates onto a grid of terminal cells.
// Zoom 1.0 shows the whole layout; centering on a node raises the zoom so
// the node's neighborhood fills the canvas.
type camera struct {
	cx, cy float64
	zoom   float64
}

const (
	minZoom = 0.5
	maxZoom = 8.0
	panStep = 0.08
)

func newCamera() camera {
	return camera{cx: 0.5, cy: 0.5, zoom: 1.0}
}

func (c *camera) centerOn(pos layout.Position, zoom float64) {
	c.cx = pos.X
	c.cy = pos.Y
	c.zoom = clamp(zoom, minZoom, maxZoom)
}

func (c *camera) pan(dx, dy float64) {
	c.cx = clamp(c.cx+dx/c.zoom, 0, 1)
	c.cy = clamp(c.cy+dy/c.zoom, 0, 1)
}

func (c *camera) zoomBy(factor float64) {
	c.zoom = clamp(c.zoom*factor, minZoom, maxZoom)
}

// project returns the cell for a layout position, and whether it is inside
// the cols x rows canvas. Terminal cells are roughly twice as tall as they
// are wide, so the vertical scale is halved to keep distances honest.
func (c *camera) project(pos layout.Position, cols, rows int) (int, int, bool) {
	scale := float64(cols) * c.zoom
	x := (pos.X-c.cx)*scale + float64(cols)/2
	y := (pos.Y-c.cy)*scale*0.5 + float64(rows)/2

	col, row := int(x), int(y)
	return col, row, col >= 0 && col < cols && row >= 0 && row < rows
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
