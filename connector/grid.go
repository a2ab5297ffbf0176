package connector

import (
	"math"

	"github.com/Avelinimus/PuzzleTemplate/vmath"
)

// spatialGrid buckets connector sensor centres for the broad phase
// Cells are as wide as two sensor half extents, so any overlapping pair sits in
// the same or an adjacent cell
type spatialGrid struct {
	origin vmath.Vec2
	size   float64
	width  int
	height int
	cells  [][]ID // 1D array: index = y*width + x
}

func newSpatialGrid(bounds vmath.Rect, half float64) *spatialGrid {
	size := math.Max(2*half, 1)
	w := int(math.Ceil(bounds.Width()/size)) + 1
	h := int(math.Ceil(bounds.Height()/size)) + 1
	return &spatialGrid{
		origin: bounds.Min,
		size:   size,
		width:  max(w, 1),
		height: max(h, 1),
		cells:  make([][]ID, max(w, 1)*max(h, 1)),
	}
}

// cellOf maps a point to its cell, clamping points outside the bounds to the border
func (g *spatialGrid) cellOf(p vmath.Vec2) (int, int) {
	x := int(math.Floor((p.X - g.origin.X) / g.size))
	y := int(math.Floor((p.Y - g.origin.Y) / g.size))
	return min(max(x, 0), g.width-1), min(max(y, 0), g.height-1)
}

func (g *spatialGrid) add(id ID, p vmath.Vec2) {
	x, y := g.cellOf(p)
	idx := y*g.width + x
	g.cells[idx] = append(g.cells[idx], id)
}

// remove uses swap-remove; order inside a cell is not meaningful
func (g *spatialGrid) remove(id ID, p vmath.Vec2) {
	x, y := g.cellOf(p)
	idx := y*g.width + x
	cell := g.cells[idx]
	for i, e := range cell {
		if e == id {
			last := len(cell) - 1
			cell[i] = cell[last]
			g.cells[idx] = cell[:last]
			return
		}
	}
}

// near appends every id bucketed in the 3x3 neighbourhood of p
func (g *spatialGrid) near(p vmath.Vec2, out []ID) []ID {
	cx, cy := g.cellOf(p)
	for y := cy - 1; y <= cy+1; y++ {
		if y < 0 || y >= g.height {
			continue
		}
		for x := cx - 1; x <= cx+1; x++ {
			if x < 0 || x >= g.width {
				continue
			}
			out = append(out, g.cells[y*g.width+x]...)
		}
	}
	return out
}
