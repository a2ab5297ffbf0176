package render

import (
	"math"

	"github.com/Avelinimus/PuzzleTemplate/vmath"
)

// Viewport projects the board onto terminal cells
// Each cell shows two stacked square pixels, so one pixel is Scale world units
// wide and tall; the last terminal row is reserved for the status line
type Viewport struct {
	Cols, Rows int
	Scale      float64
	Origin     vmath.Vec2 // world point at the top-left corner of cell (0,0)
}

// NewViewport fits board into a cols x rows terminal, centred, keeping aspect
func NewViewport(board vmath.Rect, cols, rows int) Viewport {
	cols = max(cols, 1)
	rows = max(rows-1, 1)
	px, py := float64(cols), float64(rows*2)

	scale := max(board.Width()/px, board.Height()/py)
	if scale <= 0 {
		scale = 1
	}
	padX := (px - board.Width()/scale) / 2 * scale
	padY := (py - board.Height()/scale) / 2 * scale

	return Viewport{
		Cols:   cols,
		Rows:   rows,
		Scale:  scale,
		Origin: board.Min.Sub(vmath.V2(padX, padY)),
	}
}

// Pixel is the world point sampled for column col and half-row sub
func (v Viewport) Pixel(col, sub int) vmath.Vec2 {
	return v.Origin.Add(vmath.V2((float64(col)+0.5)*v.Scale, (float64(sub)+0.5)*v.Scale))
}

// ToWorld returns the world point at the centre of a cell
func (v Viewport) ToWorld(col, row int) vmath.Vec2 {
	return v.Origin.Add(vmath.V2((float64(col)+0.5)*v.Scale, float64(2*row+1)*v.Scale))
}

// ToCell returns the cell containing world point p
func (v Viewport) ToCell(p vmath.Vec2) (col, row int) {
	d := p.Sub(v.Origin)
	return int(math.Floor(d.X / v.Scale)), int(math.Floor(d.Y / (2 * v.Scale)))
}
