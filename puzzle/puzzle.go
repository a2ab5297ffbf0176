// Package puzzle is the piece-assembly engine: piece state, snapping and
// cluster propagation, group drag and completion evaluation
package puzzle

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Avelinimus/PuzzleTemplate/connector"
	"github.com/Avelinimus/PuzzleTemplate/constant"
	"github.com/Avelinimus/PuzzleTemplate/core"
	"github.com/Avelinimus/PuzzleTemplate/edge"
	"github.com/Avelinimus/PuzzleTemplate/partition"
	"github.com/Avelinimus/PuzzleTemplate/vmath"
)

// Config is the setup surface of one puzzle
type Config struct {
	Spec      partition.Spec
	Seed      uint64
	DragSpeed float64 // lerp rate per second, 0 = immediate
	Logger    *zap.Logger
}

// Puzzle owns every piece, the connector graph and the completion latch
type Puzzle struct {
	id     string
	plan   *partition.Plan
	graph  *connector.Graph
	pieces []*Piece
	bounds vmath.Rect
	rng    *vmath.FastRand
	log    *zap.Logger

	dragSpeed float64
	stamp     uint64
	group     *groupDrag
	eval      evaluator
}

// New validates cfg, generates edge shapes, partitions the image and scatters
// the pieces across the board
func New(cfg Config) (*Puzzle, error) {
	if err := cfg.Spec.Validate(); err != nil {
		return nil, err
	}
	if cfg.DragSpeed < 0 {
		return nil, &partition.ConfigError{Field: "drag_speed", Reason: "must not be negative"}
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	rng := vmath.NewFastRand(cfg.Seed)
	edges := edge.Generate(cfg.Spec.Rows, cfg.Spec.Cols, rng)
	plan, err := partition.New(cfg.Spec, edges)
	if err != nil {
		return nil, fmt.Errorf("partition: %w", err)
	}

	p := &Puzzle{
		id:        uuid.NewString(),
		plan:      plan,
		graph:     connector.NewGraph(plan.Bounds, plan.SensorHalf),
		pieces:    make([]*Piece, 0, len(plan.Pieces)),
		bounds:    plan.Bounds,
		rng:       rng,
		dragSpeed: cfg.DragSpeed,
	}
	p.log = log.With(zap.String("puzzle", p.id))

	for i := range plan.Pieces {
		ps := &plan.Pieces[i]
		piece := &Piece{
			id:       connector.PieceID(i),
			coord:    ps.Coord,
			spec:     ps,
			pos:      ps.Center,
			material: core.MaterialDefault,
			order:    constant.OrderDefault,
		}
		for _, cs := range ps.Connectors {
			p.graph.Add(piece.id, cs, piece.pos)
		}
		p.pieces = append(p.pieces, piece)
	}
	p.Scatter()

	p.log.Info("puzzle created",
		zap.Int("rows", cfg.Spec.Rows),
		zap.Int("columns", cfg.Spec.Cols),
		zap.Int("joint_size", cfg.Spec.JointSize),
		zap.Stringer("joint", cfg.Spec.Joint),
		zap.Uint64("seed", cfg.Seed),
		zap.Int("connectors", p.graph.Len()))
	return p, nil
}

// ID is the session identifier used in logs
func (p *Puzzle) ID() string { return p.id }

// Plan exposes the partition for image cutting and rendering
func (p *Puzzle) Plan() *partition.Plan { return p.plan }

// Graph exposes the connector table
func (p *Puzzle) Graph() *connector.Graph { return p.graph }

// Bounds is the playable board
func (p *Puzzle) Bounds() vmath.Rect { return p.bounds }

// Pieces returns every piece in row-major order
func (p *Puzzle) Pieces() []*Piece { return p.pieces }

// Piece returns the piece with the given handle
func (p *Puzzle) Piece(id connector.PieceID) *Piece { return p.pieces[id] }

// At returns the piece whose grid coordinate is c
func (p *Puzzle) At(c core.Coord) *Piece {
	return p.pieces[c.Row*p.plan.Spec.Cols+c.Col]
}

// Scatter clears every join and drops each piece at a random spot on the board
func (p *Puzzle) Scatter() {
	p.group = nil
	for _, piece := range p.pieces {
		p.ClearAllMagnetic(piece.id)
		target := vmath.V2(
			p.rng.Range(p.bounds.Min.X, p.bounds.Max.X),
			p.rng.Range(p.bounds.Min.Y, p.bounds.Max.Y),
		)
		piece.dragging = false
		piece.material = core.MaterialDefault
		piece.order = constant.OrderDefault
		piece.correct = true
		p.place(piece, p.clampPiece(piece, target))
	}
	p.eval.reset()
}

// Solve places every piece on its solved position and joins every internal edge
func (p *Puzzle) Solve() {
	p.group = nil
	for _, piece := range p.pieces {
		piece.dragging = false
		p.place(piece, piece.spec.Center)
	}
	for _, piece := range p.pieces {
		p.CheckSnap(piece.id, vmath.Vec2{})
	}
}

// Close severs every join; pieces and connectors are not used afterwards
func (p *Puzzle) Close() {
	for _, piece := range p.pieces {
		p.ClearAllMagnetic(piece.id)
	}
	p.group = nil
	p.log.Debug("puzzle closed")
}

// place moves a piece and its sensors
func (p *Puzzle) place(piece *Piece, pos vmath.Vec2) {
	piece.pos = pos
	p.graph.Place(piece.id, pos)
}

// clampPiece keeps the visual region of piece inside the board when centred at target
func (p *Puzzle) clampPiece(piece *Piece, target vmath.Vec2) vmath.Vec2 {
	return target.Add(piece.spec.Visual.Translate(target).ClampInto(p.bounds))
}

// raise puts piece on top of its draw order class
func (p *Puzzle) raise(piece *Piece) {
	p.stamp++
	piece.raised = p.stamp
}
