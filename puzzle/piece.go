package puzzle

import (
	"github.com/Avelinimus/PuzzleTemplate/connector"
	"github.com/Avelinimus/PuzzleTemplate/constant"
	"github.com/Avelinimus/PuzzleTemplate/core"
	"github.com/Avelinimus/PuzzleTemplate/partition"
	"github.com/Avelinimus/PuzzleTemplate/vmath"
)

// Piece is one interactive tile; its grid coordinate never changes
type Piece struct {
	id    connector.PieceID
	coord core.Coord
	spec  *partition.PieceSpec

	pos      vmath.Vec2
	dragging bool
	material core.Material
	order    constant.DrawOrder
	raised   uint64 // recency stamp for ties inside one draw order
	correct  bool // latest CheckIsCorrectBlocks result
}

func (p *Piece) ID() connector.PieceID { return p.id }

func (p *Piece) Coord() core.Coord { return p.coord }

func (p *Piece) Spec() *partition.PieceSpec { return p.spec }

func (p *Piece) Position() vmath.Vec2 { return p.pos }

func (p *Piece) IsDragging() bool { return p.dragging }

func (p *Piece) Material() core.Material { return p.material }

func (p *Piece) Order() constant.DrawOrder { return p.order }

// Correct reports whether every joined connector led to the right neighbour at
// the last correctness check; a piece with no joins is correct
func (p *Piece) Correct() bool { return p.correct }

// SolvedPosition is where the piece sits in the finished picture
func (p *Piece) SolvedPosition() vmath.Vec2 { return p.spec.Center }

// Bounds is the visual region in world space
func (p *Piece) Bounds() vmath.Rect {
	return p.spec.Visual.Translate(p.pos)
}
