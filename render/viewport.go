package render

import (
	"math"

	"github.com/lixenwraith/story-knights/parameter"
	"github.com/lixenwraith/story-knights/vmath"
)

// fitEpsilon keeps float rounding from adding a cell past the screen
const fitEpsilon = 1e-9

// Viewport maps arena coordinates onto terminal cells.
// A cell covers Scale arena units horizontally and Scale*CellAspect vertically.
type Viewport struct {
	OriginX, OriginY int // first arena cell, inside the border
	Cols, Rows       int // arena size in cells
	Scale            float64
	arenaW, arenaH   float64
}

// NewViewport fits an arena into a screen, leaving room for the border, HUD and log
func NewViewport(arenaW, arenaH float64, screenW, screenH int) Viewport {
	availCols := screenW - 2
	availRows := screenH - 2 - parameter.HUDRows - parameter.LogRows
	if availCols < 1 {
		availCols = 1
	}
	if availRows < 1 {
		availRows = 1
	}

	scale := math.Max(arenaW/float64(availCols), arenaH/(float64(availRows)*parameter.CellAspect))
	return Viewport{
		OriginX: 1,
		OriginY: parameter.HUDRows + 1,
		Cols:    int(math.Ceil(arenaW/scale - fitEpsilon)),
		Rows:    int(math.Ceil(arenaH/(scale*parameter.CellAspect) - fitEpsilon)),
		Scale:   scale,
		arenaW:  arenaW,
		arenaH:  arenaH,
	}
}

// ToCell returns the cell holding an arena point
func (v Viewport) ToCell(p vmath.Vec2) (col, row int) {
	col = int(p.X / v.Scale)
	row = int(p.Y / (v.Scale * parameter.CellAspect))
	col = min(max(col, 0), v.Cols-1)
	row = min(max(row, 0), v.Rows-1)
	return v.OriginX + col, v.OriginY + row
}

// ToArena returns the arena point at a cell center, false outside the arena
func (v Viewport) ToArena(col, row int) (vmath.Vec2, bool) {
	c, r := col-v.OriginX, row-v.OriginY
	if c < 0 || r < 0 || c >= v.Cols || r >= v.Rows {
		return vmath.Vec2{}, false
	}
	p := vmath.Vec2{
		X: (float64(c) + 0.5) * v.Scale,
		Y: (float64(r) + 0.5) * v.Scale * parameter.CellAspect,
	}
	p.X = vmath.Clamp(p.X, 0, v.arenaW)
	p.Y = vmath.Clamp(p.Y, 0, v.arenaH)
	return p, true
}

// Bottom is the first row below the arena border
func (v Viewport) Bottom() int { return v.OriginY + v.Rows + 1 }
