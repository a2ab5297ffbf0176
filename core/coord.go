package core

import "fmt"

// Coord is a piece position in the original Rows x Columns partition
// Row 0 is the top row of the source image, Col 0 the left column
type Coord struct {
	Row, Col int
}

// Step returns the coordinate across the given side
func (c Coord) Step(s Side) Coord {
	switch s {
	case SideRight:
		return Coord{Row: c.Row, Col: c.Col + 1}
	case SideLeft:
		return Coord{Row: c.Row, Col: c.Col - 1}
	case SideUp:
		return Coord{Row: c.Row - 1, Col: c.Col}
	case SideDown:
		return Coord{Row: c.Row + 1, Col: c.Col}
	}
	return c
}

// In reports whether the coordinate lies inside a rows x cols grid
func (c Coord) In(rows, cols int) bool {
	return c.Row >= 0 && c.Row < rows && c.Col >= 0 && c.Col < cols
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}
