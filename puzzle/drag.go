package puzzle

import (
	"time"

	"go.uber.org/zap"

	"github.com/Avelinimus/PuzzleTemplate/connector"
	"github.com/Avelinimus/PuzzleTemplate/constant"
	"github.com/Avelinimus/PuzzleTemplate/core"
	"github.com/Avelinimus/PuzzleTemplate/vmath"
)

// groupDrag freezes the cluster shape captured when a group drag starts
type groupDrag struct {
	anchor  connector.PieceID
	members []connector.PieceID
	offsets map[connector.PieceID]vmath.Vec2 // member position minus anchor position
	extent  vmath.Rect                       // union of member visuals relative to the anchor
}

// BeginDrag selects piece and brings it to the front; repeated calls are no-ops
func (p *Puzzle) BeginDrag(id connector.PieceID) {
	piece := p.pieces[id]
	if piece.dragging {
		return
	}
	piece.dragging = true
	piece.material = core.MaterialSelected
	piece.order = constant.OrderSelected
	p.raise(piece)
}

// Drag moves a single piece toward target, clamped to the board
func (p *Puzzle) Drag(id connector.PieceID, target vmath.Vec2, dt time.Duration) {
	piece := p.pieces[id]
	goal := p.clampPiece(piece, target)
	p.place(piece, p.step(piece.pos, goal, dt))
}

// BeginGroup captures the cluster of id and the relative vector of every member
// The shape is kept until EndDrag even if joins change meanwhile
func (p *Puzzle) BeginGroup(id connector.PieceID) []connector.PieceID {
	if p.group != nil && p.group.anchor == id {
		return p.group.members
	}

	anchor := p.pieces[id]
	g := &groupDrag{
		anchor:  id,
		members: p.Cluster(id),
		offsets: make(map[connector.PieceID]vmath.Vec2),
	}
	g.extent = anchor.spec.Visual
	for _, m := range g.members {
		piece := p.pieces[m]
		off := piece.pos.Sub(anchor.pos)
		g.offsets[m] = off
		g.extent = g.extent.Union(piece.spec.Visual.Translate(off))
		p.BeginDrag(m)
	}
	p.group = g

	p.log.Debug("group drag started",
		zap.Stringer("anchor", anchor.coord),
		zap.Int("members", len(g.members)))
	return g.members
}

// DragGroup moves the whole captured cluster rigidly so the anchor heads for target
// The anchor is clamped so every member stays on the board
func (p *Puzzle) DragGroup(id connector.PieceID, target vmath.Vec2, dt time.Duration) {
	g := p.groupFor(id)
	anchor := p.pieces[id]

	goal := target.Add(g.extent.Translate(target).ClampInto(p.bounds))
	next := p.step(anchor.pos, goal, dt)
	for _, m := range g.members {
		p.place(p.pieces[m], next.Add(g.offsets[m]))
	}
}

// groupFor returns the active group for id, starting one when absent
func (p *Puzzle) groupFor(id connector.PieceID) *groupDrag {
	if p.group == nil || p.group.anchor != id {
		p.BeginGroup(id)
	}
	return p.group
}

// EndDrag releases piece (and, for a group, every captured member), then runs a
// snap pass in which each released piece is visited once
func (p *Puzzle) EndDrag(id connector.PieceID, isGroup bool) int {
	members := []connector.PieceID{id}
	if isGroup {
		if p.group != nil && p.group.anchor == id {
			members = p.group.members
		} else {
			members = p.Cluster(id)
		}
	}
	p.group = nil

	visited := newVisitSet()
	for _, m := range members {
		piece := p.pieces[m]
		piece.dragging = false
		piece.material = core.MaterialDefault
		piece.order = constant.OrderDefault
		visited.Put(m)
	}

	joins := 0
	for _, m := range members {
		joins += p.snap(m, visited)
	}
	if joins > 0 {
		p.keepOnBoard(id)
	}
	for _, m := range members {
		p.CheckIsCorrectBlocks(m)
	}

	p.log.Debug("drag ended",
		zap.Stringer("piece", p.pieces[id].coord),
		zap.Bool("group", isGroup),
		zap.Int("joins", joins))
	return joins
}

// step advances from toward goal using the configured smoothing
func (p *Puzzle) step(from, goal vmath.Vec2, dt time.Duration) vmath.Vec2 {
	if p.dragSpeed <= 0 {
		return goal
	}
	return vmath.Lerp(from, goal, p.dragSpeed*dt.Seconds())
}
