package core

// Side identifies one edge of a piece
// Complementary sides share magnitude and differ in sign
type Side int8

const (
	SideRight Side = 1
	SideLeft  Side = -1
	SideUp    Side = 2
	SideDown  Side = -2
)

// Sides lists the four sides in generation order
var Sides = [4]Side{SideRight, SideLeft, SideUp, SideDown}

// Index maps a side to a dense [0,4) slot following Sides order
func (s Side) Index() int {
	switch s {
	case SideRight:
		return 0
	case SideLeft:
		return 1
	case SideUp:
		return 2
	case SideDown:
		return 3
	}
	return -1
}

// Opposite returns the side that mates with s
func (s Side) Opposite() Side {
	return -s
}

// Magnitude is 1 for horizontal neighbours and 2 for vertical ones
func (s Side) Magnitude() int {
	if s < 0 {
		return int(-s)
	}
	return int(s)
}

// Mates reports whether s and o can face each other: same magnitude, opposite sign
func (s Side) Mates(o Side) bool {
	return s != 0 && s == -o
}

func (s Side) String() string {
	switch s {
	case SideRight:
		return "right"
	case SideLeft:
		return "left"
	case SideUp:
		return "up"
	case SideDown:
		return "down"
	}
	return "none"
}

// Shape is the protrusion state of one edge
type Shape bool

const (
	Blank Shape = false
	Tab   Shape = true
)

func (s Shape) String() string {
	if s {
		return "tab"
	}
	return "blank"
}
