package engine

import (
	"math"
	"time"

	"github.com/Avelinimus/PuzzleTemplate/puzzle"
	"github.com/Avelinimus/PuzzleTemplate/vmath"
)

const (
	// dragSteps is how many ticks a synthetic drag spends travelling
	dragSteps = 4

	// catchUpTicks bounds how long a drag waits for a smoothed piece to reach the pointer
	catchUpTicks = 240
)

// AutoSolveReport summarises a headless run
type AutoSolveReport struct {
	Ticks       int
	Drags       int
	Uncovers    int // drags that only moved a covering piece aside
	Passes      int
	Completions int // completion signals observed, at most one per game
	Solved      bool
	Simulated   time.Duration
}

// autoPlayer feeds synthetic pointer samples into a session
type autoPlayer struct {
	s   *Session
	p   *puzzle.Puzzle
	dt  time.Duration
	rep AutoSolveReport
}

// AutoSolve plays the session with synthetic pointer samples that drag every
// incomplete piece onto its solved position, pass after pass, until the puzzle
// reports solved or maxPasses is exhausted. A piece buried under others is
// uncovered first by dragging whatever lies on top of it out of the way
func AutoSolve(s *Session, dt time.Duration, maxPasses int) AutoSolveReport {
	a := &autoPlayer{s: s, p: s.Puzzle(), dt: dt}

	a.tick(Sample{})
	for pass := 1; pass <= maxPasses && !a.rep.Solved; pass++ {
		a.rep.Passes = pass
		for _, piece := range a.p.Pieces() {
			if a.rep.Solved {
				break
			}
			if a.p.IsComplete(piece.ID()) {
				continue
			}
			grab, ok := a.uncover(piece)
			if !ok {
				continue
			}
			if a.drag(piece, grab, grab.Add(piece.SolvedPosition().Sub(piece.Position()))) {
				a.rep.Drags++
			}
		}
	}
	return a.rep
}

func (a *autoPlayer) tick(in Sample) TickResult {
	res := a.s.Tick(in, a.dt)
	a.rep.Ticks++
	a.rep.Simulated += a.dt
	if res.JustCompleted {
		a.rep.Completions++
	}
	a.rep.Solved = res.Solved
	return res
}

// drag presses on grab, carries piece so the pointer ends on to and releases,
// then lets any deferred re-check run. Reports false when the press missed piece
func (a *autoPlayer) drag(piece *puzzle.Piece, grab, to vmath.Vec2) bool {
	res := a.tick(Sample{Pos: grab, Pressed: true})
	if res.Active != piece.ID() {
		a.tick(Sample{Pos: grab})
		return false
	}
	want := piece.Position().Add(to.Sub(grab))

	// Leave the group-grab radius first so even a tiny correction moves the piece
	a.tick(Sample{Pos: grab.Add(vmath.V2(2*a.s.cfg.DistanceToDragGroup+1, 0)), Pressed: true})
	for i := 1; i <= dragSteps; i++ {
		a.tick(Sample{Pos: vmath.Lerp(grab, to, float64(i)/dragSteps), Pressed: true})
	}
	for i := 0; i < catchUpTicks && !vmath.Near(piece.Position(), a.clamp(piece, want), 1e-3); i++ {
		a.tick(Sample{Pos: to, Pressed: true})
	}
	a.tick(Sample{Pos: to})
	for a.s.SettlePending() {
		a.tick(Sample{Pos: to})
	}
	return true
}

// uncover returns a point where piece is the top-most hit, dragging the pieces
// that cover its centre aside until one is found
func (a *autoPlayer) uncover(piece *puzzle.Piece) (vmath.Vec2, bool) {
	for range a.p.Pieces() {
		if grab, ok := grabPoint(a.p, piece); ok {
			return grab, true
		}
		centre := piece.Bounds().Center()
		id, ok := a.p.PieceAt(centre)
		if !ok || id == piece.ID() {
			return vmath.Vec2{}, false
		}
		cover := a.p.Piece(id)
		shift, ok := a.aside(cover, centre)
		if !ok || !a.drag(cover, centre, centre.Add(shift)) {
			return vmath.Vec2{}, false
		}
		a.rep.Uncovers++
	}
	return grabPoint(a.p, piece)
}

// aside picks the shortest of the four axis moves that takes cover off pt
// while keeping it on the board
func (a *autoPlayer) aside(cover *puzzle.Piece, pt vmath.Vec2) (vmath.Vec2, bool) {
	const margin = 1
	b := cover.Bounds()
	candidates := [...]vmath.Vec2{
		vmath.V2(pt.X-b.Max.X-margin, 0),
		vmath.V2(pt.X-b.Min.X+margin, 0),
		vmath.V2(0, pt.Y-b.Max.Y-margin),
		vmath.V2(0, pt.Y-b.Min.Y+margin),
	}

	best, found := vmath.Vec2{}, false
	bestLen := math.Inf(1)
	for _, d := range candidates {
		pos := a.clamp(cover, cover.Position().Add(d))
		if cover.Spec().Visual.Translate(pos).Contains(pt) {
			continue
		}
		moved := pos.Sub(cover.Position())
		if l := moved.Len(); l < bestLen {
			best, bestLen, found = moved, l, true
		}
	}
	return best, found
}

// clamp mirrors the board clamp applied to a single dragged piece
func (a *autoPlayer) clamp(piece *puzzle.Piece, pos vmath.Vec2) vmath.Vec2 {
	return pos.Add(piece.Spec().Visual.Translate(pos).ClampInto(a.p.Bounds()))
}

// grabPoint finds a point inside piece where it is the top-most hit
func grabPoint(p *puzzle.Puzzle, piece *puzzle.Piece) (vmath.Vec2, bool) {
	const n = 5
	b := piece.Bounds()
	for iy := 0; iy < n; iy++ {
		for ix := 0; ix < n; ix++ {
			pt := vmath.V2(
				b.Min.X+b.Width()*(float64(ix)+0.5)/n,
				b.Min.Y+b.Height()*(float64(iy)+0.5)/n,
			)
			if id, ok := p.PieceAt(pt); ok && id == piece.ID() {
				return pt, true
			}
		}
	}
	return vmath.Vec2{}, false
}
