package puzzle

import (
	"go.uber.org/zap"

	"github.com/Avelinimus/PuzzleTemplate/connector"
	"github.com/Avelinimus/PuzzleTemplate/constant"
	"github.com/Avelinimus/PuzzleTemplate/core"
)

// Evaluation is the result of one completion scan
type Evaluation struct {
	Solved        bool
	JustCompleted bool // true only on the first scan that finds the puzzle solved
	Complete      int  // pieces that are fully and correctly joined
	Total         int
}

// evaluator latches the completion signal so it fires once per game
type evaluator struct {
	completedOnce bool
	solved        bool
}

func (e *evaluator) reset() {
	e.completedOnce = false
	e.solved = false
}

// CheckIsCorrectBlocks reports whether every joined connector of id leads to the
// piece at its target coordinate, and refreshes the piece's material and draw order
// Unjoined connectors do not count against the piece
func (p *Puzzle) CheckIsCorrectBlocks(id connector.PieceID) bool {
	piece := p.pieces[id]

	correct := true
	joined := false
	for _, cid := range p.graph.OfPiece(id) {
		c := p.graph.Get(cid)
		partner := c.JoinedTo()
		if partner == connector.None {
			continue
		}
		joined = true
		if p.pieces[p.graph.Get(partner).Piece].coord != c.Target {
			correct = false
		}
	}
	piece.correct = correct

	if piece.dragging {
		return correct
	}
	switch {
	case !correct:
		piece.material = core.MaterialWrong
		piece.order = constant.OrderWrong
	case joined:
		piece.material = core.MaterialDefault
		piece.order = constant.OrderSettled
	default:
		piece.material = core.MaterialDefault
		piece.order = constant.OrderDefault
	}
	return correct
}

// IsAllJoined reports whether every connector of id holds a join
func (p *Puzzle) IsAllJoined(id connector.PieceID) bool {
	for _, cid := range p.graph.OfPiece(id) {
		if p.graph.Get(cid).JoinedTo() == connector.None {
			return false
		}
	}
	return true
}

// IsComplete is the per-piece completion predicate
func (p *Puzzle) IsComplete(id connector.PieceID) bool {
	correct := p.CheckIsCorrectBlocks(id)
	return correct && p.IsAllJoined(id)
}

// Refresh re-evaluates correctness visuals of every piece without touching the latch
func (p *Puzzle) Refresh() {
	for _, piece := range p.pieces {
		p.CheckIsCorrectBlocks(piece.id)
	}
}

// Evaluate scans every piece; the puzzle is solved when all are complete
// JustCompleted is raised on the first solved scan only and never again for this game
func (p *Puzzle) Evaluate() Evaluation {
	ev := Evaluation{Total: len(p.pieces)}
	for _, piece := range p.pieces {
		if p.IsComplete(piece.id) {
			ev.Complete++
		}
	}
	ev.Solved = ev.Complete == ev.Total

	p.eval.solved = ev.Solved
	if ev.Solved && !p.eval.completedOnce {
		p.eval.completedOnce = true
		ev.JustCompleted = true
		p.log.Info("puzzle complete", zap.Int("pieces", ev.Total))
	}
	return ev
}

// Solved returns the result of the latest Evaluate
func (p *Puzzle) Solved() bool { return p.eval.solved }

// HasCompleted reports whether the completion signal has fired for this game
func (p *Puzzle) HasCompleted() bool { return p.eval.completedOnce }
