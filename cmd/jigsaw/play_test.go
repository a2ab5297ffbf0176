package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Avelinimus/PuzzleTemplate/core"
	"github.com/Avelinimus/PuzzleTemplate/engine"
	"github.com/Avelinimus/PuzzleTemplate/imaging"
	"github.com/Avelinimus/PuzzleTemplate/partition"
	"github.com/Avelinimus/PuzzleTemplate/puzzle"
)

const frame = 16 * time.Millisecond

func newTestGame(t *testing.T, solved bool) (*Game, *puzzle.Puzzle, tcell.SimulationScreen) {
	t.Helper()
	p, err := puzzle.New(puzzle.Config{
		Spec: partition.Spec{ImageWidth: 200, ImageHeight: 100, Rows: 2, Cols: 2, JointSize: 10, Joint: core.JointCircle},
		Seed: 5,
	})
	require.NoError(t, err)
	if solved {
		p.Solve()
	}

	src := imaging.Pattern(200, 100, 25)
	pieces, err := imaging.CutAll(context.Background(), src, p.Plan())
	require.NoError(t, err)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(40, 26)
	t.Cleanup(screen.Fini)

	g := NewGame(screen, p, pieces, imaging.Darken(src, 0.5), GameOptions{Tick: time.Millisecond})
	t.Cleanup(g.Close)
	return g, p, screen
}

func statusRow(screen tcell.SimulationScreen) string {
	w, h := screen.Size()
	var sb strings.Builder
	for col := 0; col < w; col++ {
		ch, _, _, _ := screen.GetContent(col, h-1)
		sb.WriteRune(ch)
	}
	return sb.String()
}

// pieceCell finds a terminal cell over some piece
func pieceCell(t *testing.T, g *Game, p *puzzle.Puzzle) (int, int) {
	t.Helper()
	vp := g.renderer.Viewport()
	for row := 0; row < vp.Rows; row++ {
		for col := 0; col < vp.Cols; col++ {
			if _, ok := p.PieceAt(g.renderer.ToWorld(col, row)); ok {
				return col, row
			}
		}
	}
	t.Fatal("no piece visible on screen")
	return 0, 0
}

func TestGameQuitKeyStopsRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	g, _, screen := newTestGame(t, false)

	done := make(chan error, 1)
	go func() { done <- g.Run(context.Background()) }()

	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("game did not stop on quit key")
	}
}

func TestGameStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	g, _, _ := newTestGame(t, false)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- g.Run(ctx) }()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("game did not stop on cancel")
	}
}

func TestGamePointerDrivesSession(t *testing.T) {
	g, p, _ := newTestGame(t, false)
	col, row := pieceCell(t, g, p)

	assert.True(t, g.handleEvent(tcell.NewEventMouse(col, row, tcell.Button1, tcell.ModNone)))
	assert.Equal(t, engine.GestureSingle, g.Session().State())

	assert.True(t, g.handleEvent(tcell.NewEventMouse(col, row, tcell.ButtonNone, tcell.ModNone)))
	assert.Equal(t, engine.GestureIdle, g.Session().State())
}

func TestGameCompletionBannerAndRescatter(t *testing.T) {
	g, p, screen := newTestGame(t, true)

	g.update(frame)
	g.renderer.Draw()
	assert.Contains(t, statusRow(screen), "SOLVED")
	assert.True(t, p.HasCompleted())

	assert.True(t, g.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)))
	assert.False(t, p.HasCompleted())
	g.renderer.Draw()
	assert.NotContains(t, statusRow(screen), "SOLVED")
	assert.Contains(t, statusRow(screen), "gesture=idle")

	assert.False(t, g.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestGameMuteAndResize(t *testing.T) {
	g, _, screen := newTestGame(t, false)

	assert.True(t, g.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone)))
	assert.True(t, g.sound.Muted())

	screen.SetSize(60, 30)
	assert.True(t, g.handleEvent(tcell.NewEventResize(60, 30)))
	assert.Equal(t, 60, g.renderer.Viewport().Cols)
}
