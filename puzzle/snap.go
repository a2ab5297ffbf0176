package puzzle

import (
	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/Avelinimus/PuzzleTemplate/connector"
	"github.com/Avelinimus/PuzzleTemplate/vmath"
)

// visitSet guards one traversal or snap pass against revisiting pieces
type visitSet = mapset.Set[connector.PieceID]

func newVisitSet() visitSet {
	return mapset.New[connector.PieceID]()
}

// CheckSnap shifts piece id by offset, then joins each free connector to the
// first eligible overlapping partner. A newly joined partner is pulled, together
// with the cluster it already belongs to, so the two sensors coincide, and the
// pass recurses into it. The merged cluster is then kept on the board as one
// body. Returns the number of joins created
func (p *Puzzle) CheckSnap(id connector.PieceID, offset vmath.Vec2) int {
	if offset != (vmath.Vec2{}) {
		p.translateCluster(p.Cluster(id), offset)
	}
	joins := p.snap(id, newVisitSet())
	if joins > 0 {
		p.keepOnBoard(id)
	}
	return joins
}

// snap is the recursive body of CheckSnap
// A piece in visited is already positioned for this pass: it can gain joins but is never moved
func (p *Puzzle) snap(id connector.PieceID, visited visitSet) int {
	visited.Put(id)

	joins := 0
	for _, cid := range p.graph.OfPiece(id) {
		if p.graph.Get(cid).JoinedTo() != connector.None {
			continue
		}
		matches := p.graph.Overlaps(cid)
		if len(matches) == 0 {
			continue
		}
		partner := matches[0]
		other := p.graph.Get(partner).Piece

		// Cluster of the partner before the join; it moves as one body
		body := p.Cluster(other)
		pinned := false
		for _, m := range body {
			if visited.Has(m) {
				pinned = true
				break
			}
		}

		delta := p.graph.Get(cid).Center().Sub(p.graph.Get(partner).Center())
		if !p.graph.Join(cid, partner) {
			continue
		}
		joins++
		p.log.Debug("connectors joined",
			zap.Stringer("piece", p.pieces[id].coord),
			zap.Stringer("side", p.graph.Get(cid).Side),
			zap.Stringer("partner", p.pieces[other].coord),
			zap.Bool("pinned", pinned))

		if pinned {
			continue
		}

		p.translateCluster(body, delta)
		for _, m := range body {
			visited.Put(m)
		}
		for _, m := range body {
			joins += p.snap(m, visited)
		}
	}
	return joins
}

// translateCluster shifts every listed piece by d without clamping
func (p *Puzzle) translateCluster(members []connector.PieceID, d vmath.Vec2) {
	for _, m := range members {
		piece := p.pieces[m]
		p.place(piece, piece.pos.Add(d))
	}
}

// keepOnBoard shifts the cluster of id rigidly so its combined visual extent
// lies inside the board
func (p *Puzzle) keepOnBoard(id connector.PieceID) {
	members := p.Cluster(id)
	extent := p.pieces[id].Bounds()
	for _, m := range members[1:] {
		extent = extent.Union(p.pieces[m].Bounds())
	}
	d := extent.ClampInto(p.bounds)
	if d == (vmath.Vec2{}) {
		return
	}
	p.translateCluster(members, d)
	p.log.Debug("cluster clamped",
		zap.Stringer("piece", p.pieces[id].coord),
		zap.Int("members", len(members)),
		zap.Float64("dx", d.X),
		zap.Float64("dy", d.Y))
}

// ClearAllMagnetic severs every join held by id, clearing both ends
func (p *Puzzle) ClearAllMagnetic(id connector.PieceID) {
	for _, cid := range p.graph.OfPiece(id) {
		if partner := p.graph.Clear(cid); partner != connector.None {
			p.log.Debug("connectors cleared",
				zap.Stringer("piece", p.pieces[id].coord),
				zap.Stringer("partner", p.pieces[p.graph.Get(partner).Piece].coord))
		}
	}
}

// Cluster returns every piece reachable from id through joins, id first, breadth-first
func (p *Puzzle) Cluster(id connector.PieceID) []connector.PieceID {
	seen := newVisitSet()
	seen.Put(id)
	out := []connector.PieceID{id}

	for i := 0; i < len(out); i++ {
		for _, cid := range p.graph.OfPiece(out[i]) {
			partner := p.graph.Get(cid).JoinedTo()
			if partner == connector.None {
				continue
			}
			next := p.graph.Get(partner).Piece
			if seen.Has(next) {
				continue
			}
			seen.Put(next)
			out = append(out, next)
		}
	}
	return out
}
