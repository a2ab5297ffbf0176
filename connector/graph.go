// Package connector owns every edge sensor of a puzzle in a flat table
// addressed by integer handles, keeps joins symmetric and answers the
// overlap query used to decide snaps
package connector

import (
	"fmt"
	"sort"

	"github.com/Avelinimus/PuzzleTemplate/core"
	"github.com/Avelinimus/PuzzleTemplate/partition"
	"github.com/Avelinimus/PuzzleTemplate/vmath"
)

// ID is a stable handle into the graph's connector table
type ID int32

// None marks an absent join
const None ID = -1

// PieceID is the owning piece's index in row-major order
type PieceID int32

// Connector is one sensor on one piece edge
type Connector struct {
	Piece  PieceID
	Side   core.Side
	Shape  core.Shape
	Target core.Coord
	Offset vmath.Vec2 // piece centre to sensor centre

	center vmath.Vec2
	joined ID
}

// JoinedTo returns the partner handle or None
func (c *Connector) JoinedTo() ID { return c.joined }

// Center is the sensor centre in world space
func (c *Connector) Center() vmath.Vec2 { return c.center }

// Graph is the connector table plus its broad phase
type Graph struct {
	conns   []Connector
	byPiece [][]ID
	half    float64
	grid    *spatialGrid
}

// NewGraph creates an empty graph whose sensors have the given half extent
func NewGraph(bounds vmath.Rect, half float64) *Graph {
	return &Graph{
		half: half,
		grid: newSpatialGrid(bounds, half),
	}
}

// Add registers a connector for piece p placed at piecePos
func (g *Graph) Add(p PieceID, spec partition.ConnectorSpec, piecePos vmath.Vec2) ID {
	id := ID(len(g.conns))
	c := Connector{
		Piece:  p,
		Side:   spec.Side,
		Shape:  spec.Shape,
		Target: spec.Target,
		Offset: spec.Offset,
		center: piecePos.Add(spec.Offset),
		joined: None,
	}
	g.conns = append(g.conns, c)

	for int(p) >= len(g.byPiece) {
		g.byPiece = append(g.byPiece, nil)
	}
	g.byPiece[p] = append(g.byPiece[p], id)
	g.grid.add(id, c.center)
	return id
}

// Len returns the number of connectors
func (g *Graph) Len() int { return len(g.conns) }

// Get returns the connector for id; the pointer stays valid until the next Add
func (g *Graph) Get(id ID) *Connector { return &g.conns[id] }

// OfPiece lists the connectors owned by p
func (g *Graph) OfPiece(p PieceID) []ID {
	if int(p) >= len(g.byPiece) {
		return nil
	}
	return g.byPiece[p]
}

// Half is the sensor half extent
func (g *Graph) Half() float64 { return g.half }

// Sensor returns the world-space sensor box of id
func (g *Graph) Sensor(id ID) vmath.Rect {
	return vmath.RectFromCenter(g.conns[id].center, g.half, g.half)
}

// Place moves every connector of p to follow its piece at pos
func (g *Graph) Place(p PieceID, pos vmath.Vec2) {
	for _, id := range g.OfPiece(p) {
		c := &g.conns[id]
		next := pos.Add(c.Offset)
		if next == c.center {
			continue
		}
		g.grid.remove(id, c.center)
		c.center = next
		g.grid.add(id, next)
	}
}

// Eligible applies the complementarity rule: different pieces, mating sides,
// differing shapes and both ends free
func (g *Graph) Eligible(a, b ID) bool {
	ca, cb := &g.conns[a], &g.conns[b]
	if ca.Piece == cb.Piece {
		return false
	}
	if ca.joined != None || cb.joined != None {
		return false
	}
	if !ca.Side.Mates(cb.Side) {
		return false
	}
	return ca.Shape != cb.Shape
}

// Join links a and b in both directions
// Ineligible pairs are skipped and report false
func (g *Graph) Join(a, b ID) bool {
	if !g.Eligible(a, b) {
		return false
	}
	g.conns[a].joined = b
	g.conns[b].joined = a
	return true
}

// Clear severs the join held by id, if any, and returns the former partner
func (g *Graph) Clear(id ID) ID {
	partner := g.conns[id].joined
	if partner == None {
		return None
	}
	g.conns[id].joined = None
	g.conns[partner].joined = None
	return partner
}

// Overlaps returns the connectors on other pieces whose sensors overlap id and
// that id may join, nearest first
func (g *Graph) Overlaps(id ID) []ID {
	src := &g.conns[id]
	if src.joined != None {
		return nil
	}
	box := g.Sensor(id)

	var out []ID
	for _, other := range g.grid.near(src.center, nil) {
		if other == id || !g.Eligible(id, other) {
			continue
		}
		if !box.Overlaps(g.Sensor(other)) {
			continue
		}
		out = append(out, other)
	}

	sort.Slice(out, func(i, j int) bool {
		di := vmath.Dist(src.center, g.conns[out[i]].center)
		dj := vmath.Dist(src.center, g.conns[out[j]].center)
		if di != dj {
			return di < dj
		}
		return out[i] < out[j]
	})
	return out
}

// Validate checks join symmetry and the complementarity of every live join
func (g *Graph) Validate() error {
	for i := range g.conns {
		c := &g.conns[i]
		if c.joined == None {
			continue
		}
		p := &g.conns[c.joined]
		if p.joined != ID(i) {
			return fmt.Errorf("connector %d joined to %d but partner points to %d", i, c.joined, p.joined)
		}
		if !c.Side.Mates(p.Side) || c.Shape == p.Shape || c.Piece == p.Piece {
			return fmt.Errorf("connector %d joined to incompatible %d", i, c.joined)
		}
	}
	return nil
}
