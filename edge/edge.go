// Package edge assigns tab/blank shapes to every side of every piece so that
// facing sides of neighbouring pieces always complement each other
package edge

import (
	"fmt"
	"strings"

	"github.com/Avelinimus/PuzzleTemplate/core"
	"github.com/Avelinimus/PuzzleTemplate/vmath"
)

// Layout is the generated shape table, row-major
type Layout struct {
	Rows, Cols int
	shapes     [][4]core.Shape
}

// Generate walks pieces row-major and sides in core.Sides order
// A side whose neighbour is off-grid or not yet visited draws a fresh bit from rng;
// otherwise it copies the negation of the neighbour's facing side
func Generate(rows, cols int, rng *vmath.FastRand) *Layout {
	l := &Layout{
		Rows:   rows,
		Cols:   cols,
		shapes: make([][4]core.Shape, rows*cols),
	}
	visited := make([]bool, rows*cols)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			at := core.Coord{Row: r, Col: c}
			slot := &l.shapes[l.index(at)]
			for _, side := range core.Sides {
				n := at.Step(side)
				if !n.In(rows, cols) || !visited[l.index(n)] {
					slot[side.Index()] = core.Shape(rng.NextBool())
					continue
				}
				slot[side.Index()] = !l.Shape(n, side.Opposite())
			}
			visited[l.index(at)] = true
		}
	}
	return l
}

func (l *Layout) index(c core.Coord) int {
	return c.Row*l.Cols + c.Col
}

// Shape returns the shape of side s of the piece at c
func (l *Layout) Shape(c core.Coord, s core.Side) core.Shape {
	return l.shapes[l.index(c)][s.Index()]
}

// Internal reports whether side s of c faces another piece
func (l *Layout) Internal(c core.Coord, s core.Side) bool {
	return c.Step(s).In(l.Rows, l.Cols)
}

// Verify checks the complementarity invariant over every internal edge
func (l *Layout) Verify() error {
	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Cols; c++ {
			at := core.Coord{Row: r, Col: c}
			for _, side := range core.Sides {
				if !l.Internal(at, side) {
					continue
				}
				n := at.Step(side)
				if l.Shape(at, side) == l.Shape(n, side.Opposite()) {
					return fmt.Errorf("edge %v %v and %v %v share shape %v",
						at, side, n, side.Opposite(), l.Shape(at, side))
				}
			}
		}
	}
	return nil
}

// String renders one line per piece: coordinate then R L U D shapes,
// boundary sides in parentheses
func (l *Layout) String() string {
	var b strings.Builder
	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Cols; c++ {
			at := core.Coord{Row: r, Col: c}
			fmt.Fprintf(&b, "%v", at)
			for _, side := range core.Sides {
				name := l.Shape(at, side).String()
				if !l.Internal(at, side) {
					name = "(" + name + ")"
				}
				fmt.Fprintf(&b, " %s=%s", side, name)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}
