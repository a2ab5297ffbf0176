// Package engine drives a puzzle from per-tick pointer samples: it runs the
// single/cluster gesture machine, the deferred settle re-check and completion polling
package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/Avelinimus/PuzzleTemplate/connector"
	"github.com/Avelinimus/PuzzleTemplate/parameter"
	"github.com/Avelinimus/PuzzleTemplate/puzzle"
	"github.com/Avelinimus/PuzzleTemplate/status"
	"github.com/Avelinimus/PuzzleTemplate/vmath"
)

// Config holds the gesture thresholds; thresholds left at zero take the parameter defaults
type Config struct {
	TimeToDragGroup     time.Duration
	DistanceToDragGroup float64
	SettleTicks         int // 0 disables the deferred re-check
	Logger              *zap.Logger
	Status              *status.Registry
}

// TickResult is what the host polls after each Tick
type TickResult struct {
	State         GestureState
	Active        connector.PieceID // piece under the pointer, puzzle.BackgroundID when idle
	Joins         int
	Evaluated     bool
	Solved        bool
	JustCompleted bool
	Evaluation    puzzle.Evaluation
}

// Session is single-threaded; the host calls Tick from one goroutine
type Session struct {
	puzzle *puzzle.Puzzle
	cfg    Config
	log    *zap.Logger

	state       GestureState
	active      connector.PieceID
	wasPressed  bool
	start       vmath.Vec2 // pointer at press
	grab        vmath.Vec2 // piece position minus pointer at press
	held        time.Duration
	groupChance bool

	settle      int
	settlePiece connector.PieceID
	started     bool

	stats *status.Registry
}

// NewSession wraps p; cfg.Status may be nil in which case a private registry is used
func NewSession(p *puzzle.Puzzle, cfg Config) *Session {
	if cfg.TimeToDragGroup <= 0 {
		cfg.TimeToDragGroup = parameter.TimeToDragGroup
	}
	if cfg.DistanceToDragGroup <= 0 {
		cfg.DistanceToDragGroup = parameter.DistanceToDragGroup
	}
	if cfg.SettleTicks < 0 {
		cfg.SettleTicks = 0
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Status == nil {
		cfg.Status = status.NewRegistry()
	}

	s := &Session{
		puzzle: p,
		cfg:    cfg,
		log:    cfg.Logger.With(zap.String("puzzle", p.ID())),
		active: puzzle.BackgroundID,
		stats:  cfg.Status,
	}
	s.stats.Total.Set(len(p.Pieces()))
	s.stats.Gesture.Set(GestureIdle.String())
	return s
}

func (s *Session) Puzzle() *puzzle.Puzzle { return s.puzzle }

func (s *Session) State() GestureState { return s.state }

// Status is the registry the session writes to
func (s *Session) Status() *status.Registry { return s.stats }

// SettlePending reports whether a deferred re-check is counting down
func (s *Session) SettlePending() bool { return s.settle > 0 }

// Tick advances the session by one host frame
func (s *Session) Tick(in Sample, dt time.Duration) TickResult {
	var res TickResult
	s.stats.Ticks.Add(1)
	s.stats.Elapsed.Advance(dt)

	if !s.started {
		s.started = true
		s.evaluate(&res)
	}
	s.tickSettle(&res)

	pressedEdge := in.Pressed && !s.wasPressed
	s.wasPressed = in.Pressed

	switch s.state {
	case GestureIdle:
		if pressedEdge {
			if id, ok := s.puzzle.PieceAt(in.Pos); ok {
				s.press(id, in.Pos)
			}
		}
	case GestureSingle:
		if !in.Pressed {
			s.release(&res)
			break
		}
		s.trackSingle(in.Pos, dt)
	case GestureCluster:
		if !in.Pressed {
			s.release(&res)
			break
		}
		s.puzzle.DragGroup(s.active, in.Pos.Add(s.grab), dt)
	}

	res.State = s.state
	res.Active = s.active
	if !res.Evaluated {
		res.Solved = s.puzzle.Solved()
	}
	return res
}

// Rescatter deals a fresh layout and drops any gesture in flight
func (s *Session) Rescatter() {
	s.puzzle.Scatter()
	s.setState(GestureIdle)
	s.active = puzzle.BackgroundID
	s.settle = 0
	s.started = false
	s.stats.Elapsed.Reset()
	s.log.Info("puzzle rescattered")
}

// Close ends the session and releases the puzzle
func (s *Session) Close() {
	s.puzzle.Close()
}

func (s *Session) press(id connector.PieceID, at vmath.Vec2) {
	if s.settle > 0 {
		s.log.Debug("settle cancelled", zap.Int("remaining", s.settle))
		s.settle = 0
	}

	s.puzzle.BeginDrag(id)
	s.active = id
	s.start = at
	s.grab = s.puzzle.Piece(id).Position().Sub(at)
	s.held = 0
	s.groupChance = true
	s.stats.Drags.Add(1)
	s.setState(GestureSingle)
}

// trackSingle holds the piece still while a group grab is still possible; leaving
// the distance threshold breaks its joins and it follows the pointer from then on
func (s *Session) trackSingle(pos vmath.Vec2, dt time.Duration) {
	if s.groupChance {
		if vmath.Dist(s.start, pos) <= s.cfg.DistanceToDragGroup {
			s.held += dt
			if s.held >= s.cfg.TimeToDragGroup {
				s.enterCluster()
			}
			return
		}
		s.groupChance = false
		s.puzzle.ClearAllMagnetic(s.active)
		s.puzzle.Refresh()
		s.log.Debug("group chance lost", zap.Duration("held", s.held))
	}
	s.puzzle.Drag(s.active, pos.Add(s.grab), dt)
}

func (s *Session) enterCluster() {
	members := s.puzzle.BeginGroup(s.active)
	s.groupChance = false
	s.stats.GroupDrags.Add(1)
	s.setState(GestureCluster)
	s.log.Debug("cluster grabbed", zap.Int("members", len(members)))
}

func (s *Session) release(res *TickResult) {
	isGroup := s.state == GestureCluster
	joins := s.puzzle.EndDrag(s.active, isGroup)
	res.Joins += joins
	s.stats.Joins.Add(joins)

	s.settlePiece = s.active
	s.settle = s.cfg.SettleTicks
	s.active = puzzle.BackgroundID
	s.setState(GestureIdle)
	s.evaluate(res)
}

// tickSettle counts down after a release and re-runs the snap pass on the whole
// cluster of the released piece when it reaches zero
func (s *Session) tickSettle(res *TickResult) {
	if s.settle <= 0 {
		return
	}
	s.settle--
	if s.settle > 0 {
		return
	}

	joins := 0
	for _, m := range s.puzzle.Cluster(s.settlePiece) {
		joins += s.puzzle.CheckSnap(m, vmath.Vec2{})
	}
	res.Joins += joins
	s.stats.Joins.Add(joins)
	s.log.Debug("settle re-check", zap.Int("joins", joins))
	s.evaluate(res)
}

func (s *Session) evaluate(res *TickResult) {
	ev := s.puzzle.Evaluate()
	res.Evaluated = true
	res.Evaluation = ev
	res.Solved = ev.Solved
	res.JustCompleted = res.JustCompleted || ev.JustCompleted

	s.stats.Complete.Set(ev.Complete)
	s.stats.Solved.Set(ev.Solved)
}

func (s *Session) setState(next GestureState) {
	if s.state == next {
		return
	}
	s.log.Debug("gesture",
		zap.Stringer("from", s.state),
		zap.Stringer("to", next))
	s.state = next
	s.stats.Gesture.Set(next.String())
}
