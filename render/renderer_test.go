package render

import (
	"context"
	"image/color"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avelinimus/PuzzleTemplate/core"
	"github.com/Avelinimus/PuzzleTemplate/imaging"
	"github.com/Avelinimus/PuzzleTemplate/partition"
	"github.com/Avelinimus/PuzzleTemplate/puzzle"
	"github.com/Avelinimus/PuzzleTemplate/status"
	"github.com/Avelinimus/PuzzleTemplate/vmath"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func newFixture(t *testing.T) (*puzzle.Puzzle, *Renderer, tcell.SimulationScreen, *status.Registry) {
	t.Helper()
	p, err := puzzle.New(puzzle.Config{
		Spec: partition.Spec{ImageWidth: 200, ImageHeight: 100, Rows: 2, Cols: 2, JointSize: 10, Joint: core.JointCircle},
		Seed: 1,
	})
	require.NoError(t, err)
	p.Solve()

	src := imaging.Pattern(200, 100, 25)
	pieces, err := imaging.CutAll(context.Background(), src, p.Plan())
	require.NoError(t, err)

	reg := status.NewRegistry()
	screen := newScreen(t, 40, 26)
	r := New(screen, p, pieces, imaging.Darken(src, 0.5), reg)
	return p, r, screen, reg
}

func rowText(screen tcell.SimulationScreen, row int) string {
	w, _ := screen.Size()
	var sb strings.Builder
	for col := 0; col < w; col++ {
		ch, _, _, _ := screen.GetContent(col, row)
		sb.WriteRune(ch)
	}
	return sb.String()
}

func cellColors(screen tcell.SimulationScreen, col, row int) (fg, bg tcell.Color) {
	_, _, style, _ := screen.GetContent(col, row)
	fg, bg, _ = style.Decompose()
	return fg, bg
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// TestViewportFitsBoard verifies the board is centred and cells map back to themselves
func TestViewportFitsBoard(t *testing.T) {
	board := vmath.Rect{Max: vmath.V2(200, 100)}
	vp := NewViewport(board, 40, 26)

	assert.Equal(t, 40, vp.Cols)
	assert.Equal(t, 25, vp.Rows)
	assert.InDelta(t, 5, vp.Scale, 1e-9)
	assert.InDelta(t, -75, vp.Origin.Y, 1e-9)

	for _, cell := range [][2]int{{0, 0}, {10, 10}, {39, 24}} {
		col, row := vp.ToCell(vp.ToWorld(cell[0], cell[1]))
		assert.Equal(t, cell, [2]int{col, row})
	}

	col, row := vp.ToCell(board.Max.Sub(vmath.V2(0.1, 0.1)))
	assert.Less(t, col, vp.Cols)
	assert.Less(t, row, vp.Rows)
}

// TestDrawPiecePixels verifies piece pixels come from the cut image
func TestDrawPiecePixels(t *testing.T) {
	_, r, screen, _ := newFixture(t)
	r.Draw()

	src := imaging.Pattern(200, 100, 25)
	col, row := r.Viewport().ToCell(vmath.V2(52.5, 27.5))
	fg, _ := cellColors(screen, col, row)
	assert.Equal(t, rgb(color.RGBA{R: src.NRGBAAt(52, 27).R, G: src.NRGBAAt(52, 27).G, B: src.NRGBAAt(52, 27).B}), fg)

	ch, _, _, _ := screen.GetContent(col, row)
	assert.Equal(t, halfBlock, ch)

	fg, bg := cellColors(screen, 0, 0)
	assert.Equal(t, rgb(canvasColor), fg)
	assert.Equal(t, rgb(canvasColor), bg)
}

// TestDrawSelectedTint verifies a dragged piece is drawn lighter than the picture
func TestDrawSelectedTint(t *testing.T) {
	p, r, screen, _ := newFixture(t)
	col, row := r.Viewport().ToCell(vmath.V2(52.5, 27.5))

	r.Draw()
	plain, _ := cellColors(screen, col, row)

	p.BeginDrag(p.At(core.Coord{}).ID())
	r.Draw()
	selected, _ := cellColors(screen, col, row)
	assert.NotEqual(t, plain, selected)
}

// TestStatusLine verifies metrics and banner share the last row
func TestStatusLine(t *testing.T) {
	_, r, screen, reg := newFixture(t)
	reg.Gesture.Set("idle")
	reg.Complete.Set(4)

	r.Draw()
	line := rowText(screen, 25)
	assert.Contains(t, line, "gesture=idle")
	assert.Contains(t, line, "complete=4")
	assert.Contains(t, line, "q:quit")

	r.SetBanner("SOLVED")
	r.Draw()
	assert.True(t, strings.HasPrefix(rowText(screen, 25), "SOLVED"))
}

func TestResizeRefits(t *testing.T) {
	_, r, screen, _ := newFixture(t)
	screen.SetSize(100, 11)
	r.Resize()
	assert.Equal(t, 100, r.Viewport().Cols)
	assert.Equal(t, 10, r.Viewport().Rows)
	assert.InDelta(t, 5, r.Viewport().Scale, 1e-9)
}
