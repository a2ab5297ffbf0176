package puzzle

import (
	"sort"

	"github.com/Avelinimus/PuzzleTemplate/connector"
	"github.com/Avelinimus/PuzzleTemplate/constant"
	"github.com/Avelinimus/PuzzleTemplate/core"
	"github.com/Avelinimus/PuzzleTemplate/vmath"
)

// BackgroundID marks the dimmed reference image in a view
const BackgroundID connector.PieceID = -1

// Sprite is what the visual host needs to draw one piece
type Sprite struct {
	Piece    connector.PieceID
	Coord    core.Coord
	Position vmath.Vec2
	Bounds   vmath.Rect
	Order    constant.DrawOrder
	Material core.Material
	raised   uint64
}

// View returns the background followed by every piece, bottom to top
func (p *Puzzle) View() []Sprite {
	out := make([]Sprite, 0, len(p.pieces)+1)
	out = append(out, Sprite{
		Piece:    BackgroundID,
		Position: p.bounds.Center(),
		Bounds:   p.bounds,
		Order:    constant.OrderBackground,
	})

	for _, piece := range p.pieces {
		out = append(out, Sprite{
			Piece:    piece.id,
			Coord:    piece.coord,
			Position: piece.pos,
			Bounds:   piece.Bounds(),
			Order:    piece.order,
			Material: piece.material,
			raised:   piece.raised,
		})
	}

	sort.SliceStable(out[1:], func(i, j int) bool {
		a, b := out[1+i], out[1+j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.raised < b.raised
	})
	return out
}

// PieceAt returns the top-most piece whose visual region contains pt
// The background never takes part
func (p *Puzzle) PieceAt(pt vmath.Vec2) (connector.PieceID, bool) {
	view := p.View()
	for i := len(view) - 1; i > 0; i-- {
		if view[i].Bounds.Contains(pt) {
			return view[i].Piece, true
		}
	}
	return BackgroundID, false
}
