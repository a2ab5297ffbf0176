// Package partition slices the source image into grid cells, widens each cell
// by the joint margin on its internal sides and describes the connectors every
// piece carries
package partition

import (
	"image"

	"github.com/Avelinimus/PuzzleTemplate/core"
	"github.com/Avelinimus/PuzzleTemplate/edge"
	"github.com/Avelinimus/PuzzleTemplate/parameter"
	"github.com/Avelinimus/PuzzleTemplate/vmath"
)

// Spec is the setup surface consumed by the partitioner
type Spec struct {
	ImageWidth  int
	ImageHeight int
	Rows        int
	Cols        int
	JointSize   int
	Joint       core.JointType
}

// Validate rejects values that would produce empty or inverted rectangles
func (s Spec) Validate() error {
	if s.ImageWidth <= 0 || s.ImageHeight <= 0 {
		return configErr("image", "dimensions %dx%d must be positive", s.ImageWidth, s.ImageHeight)
	}
	if s.Rows <= 0 {
		return configErr("rows", "must be positive, got %d", s.Rows)
	}
	if s.Cols <= 0 {
		return configErr("columns", "must be positive, got %d", s.Cols)
	}
	if s.Cols > s.ImageWidth || s.Rows > s.ImageHeight {
		return configErr("grid", "%dx%d grid exceeds %dx%d image", s.Rows, s.Cols, s.ImageHeight, s.ImageWidth)
	}
	if s.JointSize < 0 {
		return configErr("joint_size", "must not be negative, got %d", s.JointSize)
	}
	cellW, cellH := s.ImageWidth/s.Cols, s.ImageHeight/s.Rows
	if 2*s.JointSize > min(cellW, cellH) {
		return configErr("joint_size", "%d exceeds half of the %dx%d cell", s.JointSize, cellW, cellH)
	}
	return nil
}

// margin is the expansion applied on internal sides; rectangular pieces do not overlap
func (s Spec) margin() int {
	if s.Joint == core.JointNone {
		return 0
	}
	return s.JointSize
}

// ConnectorSpec describes one connector before the graph owns it
type ConnectorSpec struct {
	Side   core.Side
	Shape  core.Shape
	Target core.Coord
	Offset vmath.Vec2 // piece centre to sensor centre
}

// PieceSpec is the immutable description of one piece
type PieceSpec struct {
	Coord      core.Coord
	Cell       image.Rectangle // base grid cell in source pixels
	Source     image.Rectangle // Cell widened by the margin on internal sides
	Center     vmath.Vec2      // solved position: centre of Cell
	Visual     vmath.Rect      // Source relative to Center
	Shapes     [4]core.Shape   // indexed by core.Side.Index, boundary sides included
	Internal   [4]bool
	Connectors []ConnectorSpec
}

// Plan is the full partition of one puzzle
type Plan struct {
	Spec       Spec
	Edges      *edge.Layout
	Pieces     []PieceSpec // row-major
	SensorHalf float64
	Bounds     vmath.Rect
}

// New validates spec and builds every piece description from the edge layout
func New(spec Spec, edges *edge.Layout) (*Plan, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if edges == nil || edges.Rows != spec.Rows || edges.Cols != spec.Cols {
		return nil, configErr("edges", "layout does not match %dx%d grid", spec.Rows, spec.Cols)
	}

	p := &Plan{
		Spec:   spec,
		Edges:  edges,
		Pieces: make([]PieceSpec, 0, spec.Rows*spec.Cols),
		Bounds: vmath.Rect{Max: vmath.V2(float64(spec.ImageWidth), float64(spec.ImageHeight))},
	}

	cellW, cellH := spec.ImageWidth/spec.Cols, spec.ImageHeight/spec.Rows
	p.SensorHalf = float64(spec.JointSize)
	if spec.JointSize == 0 {
		p.SensorHalf = float64(min(cellW, cellH)) / parameter.SensorFallbackDivisor
	}

	for r := 0; r < spec.Rows; r++ {
		for c := 0; c < spec.Cols; c++ {
			p.Pieces = append(p.Pieces, p.buildPiece(core.Coord{Row: r, Col: c}))
		}
	}
	return p, nil
}

// Piece returns the description at c
func (p *Plan) Piece(c core.Coord) *PieceSpec {
	return &p.Pieces[c.Row*p.Spec.Cols+c.Col]
}

// CellWidth and CellHeight are the nominal (smallest) cell dimensions
func (p *Plan) CellWidth() int  { return p.Spec.ImageWidth / p.Spec.Cols }
func (p *Plan) CellHeight() int { return p.Spec.ImageHeight / p.Spec.Rows }

func (p *Plan) buildPiece(at core.Coord) PieceSpec {
	s := p.Spec
	cell := image.Rect(
		at.Col*s.ImageWidth/s.Cols,
		at.Row*s.ImageHeight/s.Rows,
		(at.Col+1)*s.ImageWidth/s.Cols,
		(at.Row+1)*s.ImageHeight/s.Rows,
	)

	ps := PieceSpec{
		Coord:  at,
		Cell:   cell,
		Source: cell,
		Center: vmath.V2(float64(cell.Min.X+cell.Max.X)/2, float64(cell.Min.Y+cell.Max.Y)/2),
	}

	m := p.Spec.margin()
	halfW, halfH := float64(cell.Dx())/2, float64(cell.Dy())/2
	for _, side := range core.Sides {
		i := side.Index()
		ps.Shapes[i] = p.Edges.Shape(at, side)
		ps.Internal[i] = p.Edges.Internal(at, side)
		if !ps.Internal[i] {
			continue
		}

		var off vmath.Vec2
		switch side {
		case core.SideRight:
			ps.Source.Max.X += m
			off = vmath.V2(halfW, 0)
		case core.SideLeft:
			ps.Source.Min.X -= m
			off = vmath.V2(-halfW, 0)
		case core.SideUp:
			ps.Source.Min.Y -= m
			off = vmath.V2(0, -halfH)
		case core.SideDown:
			ps.Source.Max.Y += m
			off = vmath.V2(0, halfH)
		}

		ps.Connectors = append(ps.Connectors, ConnectorSpec{
			Side:   side,
			Shape:  ps.Shapes[i],
			Target: at.Step(side),
			Offset: off,
		})
	}

	ps.Visual = vmath.Rect{
		Min: vmath.V2(float64(ps.Source.Min.X)-ps.Center.X, float64(ps.Source.Min.Y)-ps.Center.Y),
		Max: vmath.V2(float64(ps.Source.Max.X)-ps.Center.X, float64(ps.Source.Max.Y)-ps.Center.Y),
	}
	return ps
}
