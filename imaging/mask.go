package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/Avelinimus/PuzzleTemplate/core"
	"github.com/Avelinimus/PuzzleTemplate/partition"
)

// Mask builds the alpha mask of one piece in coordinates local to its Source
// rectangle. Margins on internal sides start transparent; a tab restores its
// joint shape inside the margin and a blank carves the same shape out of the cell
func Mask(ps *partition.PieceSpec, joint core.JointType, size int) *image.Alpha {
	bounds := image.Rect(0, 0, ps.Source.Dx(), ps.Source.Dy())
	mask := image.NewAlpha(bounds)
	cell := ps.Cell.Sub(ps.Source.Min)

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			if (image.Point{X: x, Y: y}).In(cell) {
				mask.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	if joint == core.JointNone || size <= 0 {
		return mask
	}

	type stamp struct {
		cx, cy float64
		tab    bool
	}
	var stamps []stamp
	midX := float64(cell.Min.X+cell.Max.X) / 2
	midY := float64(cell.Min.Y+cell.Max.Y) / 2
	for _, side := range core.Sides {
		i := side.Index()
		if !ps.Internal[i] {
			continue
		}
		st := stamp{tab: ps.Shapes[i] == core.Tab}
		switch side {
		case core.SideRight:
			st.cx, st.cy = float64(cell.Max.X), midY
		case core.SideLeft:
			st.cx, st.cy = float64(cell.Min.X), midY
		case core.SideUp:
			st.cx, st.cy = midX, float64(cell.Min.Y)
		case core.SideDown:
			st.cx, st.cy = midX, float64(cell.Max.Y)
		}
		stamps = append(stamps, st)
	}

	// Tabs first, then blanks, so a carved hole is never refilled by another side
	r := float64(size)
	for _, tabs := range []bool{true, false} {
		for _, st := range stamps {
			if st.tab != tabs {
				continue
			}
			for y := 0; y < bounds.Dy(); y++ {
				for x := 0; x < bounds.Dx(); x++ {
					if !inJoint(joint, float64(x)+0.5-st.cx, float64(y)+0.5-st.cy, r) {
						continue
					}
					inCell := (image.Point{X: x, Y: y}).In(cell)
					switch {
					case st.tab && !inCell:
						mask.SetAlpha(x, y, color.Alpha{A: 0xff})
					case !st.tab && inCell:
						mask.SetAlpha(x, y, color.Alpha{})
					}
				}
			}
		}
	}
	return mask
}

func inJoint(joint core.JointType, dx, dy, r float64) bool {
	switch joint {
	case core.JointCircle:
		return math.Hypot(dx, dy) <= r
	case core.JointRect:
		return math.Abs(dx) <= r && math.Abs(dy) <= r
	}
	return false
}
