package tui

import (
	"math"

	"github.com/vovakirdan/gravity-sling/internal/core"
	"github.com/vovakirdan/gravity-sling/internal/level"
	"github.com/vovakirdan/gravity-sling/internal/sling"
)

// Projection maps the level-space viewport onto a rectangle of cells,
// stretching each axis independently.
type Projection struct {
	VP   level.Viewport
	Area core.Rect
}

// CellSize returns the level-space width and height of one cell.
func (p Projection) CellSize() (w, h float64) {
	if p.Area.W <= 0 || p.Area.H <= 0 {
		return 0, 0
	}
	return p.VP.W / float64(p.Area.W), p.VP.H / float64(p.Area.H)
}

// ToCell returns the cell containing level position v. The result may lie
// outside Area.
func (p Projection) ToCell(v core.Vec2) (x, y int) {
	cw, ch := p.CellSize()
	if cw == 0 || ch == 0 {
		return p.Area.X, p.Area.Y
	}
	return p.Area.X + int(math.Floor(v.X/cw)), p.Area.Y + int(math.Floor(v.Y/ch))
}

// ToLevel returns the level position at the center of cell (x, y).
func (p Projection) ToLevel(x, y int) core.Vec2 {
	cw, ch := p.CellSize()
	return core.V(
		(float64(x-p.Area.X)+0.5)*cw,
		(float64(y-p.Area.Y)+0.5)*ch,
	)
}

// GrabRadius is the pointer grab radius for this cell size: two cells of
// level space, never below the session default.
func (p Projection) GrabRadius() float64 {
	cw, ch := p.CellSize()
	return math.Max(sling.DefaultGrabRadius, 2*math.Max(cw, ch))
}
