// Package render draws a puzzle into a tcell screen with half-block pixels
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/Avelinimus/PuzzleTemplate/core"
	"github.com/Avelinimus/PuzzleTemplate/puzzle"
	"github.com/Avelinimus/PuzzleTemplate/status"
	"github.com/Avelinimus/PuzzleTemplate/vmath"
)

const halfBlock = '▀'

var (
	canvasColor = color.RGBA{R: 18, G: 18, B: 24, A: 255}
	wrongTint   = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	selectTint  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	bannerStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen).Bold(true)
)

// statusKeys are shown on the status line in this order
var statusKeys = []string{
	status.KeyGesture,
	status.KeyComplete,
	status.KeyTotal,
	status.KeyJoins,
	status.KeyElapsed,
}

const helpText = " q:quit r:rescatter m:mute"

// Renderer owns no game state; it reads the puzzle view every frame
type Renderer struct {
	screen     tcell.Screen
	puzzle     *puzzle.Puzzle
	pieces     []*image.NRGBA // cut piece images indexed by piece id
	background image.Image    // dimmed source picture in world pixels
	status     *status.Registry
	vp         Viewport
	banner     string
}

// New prepares a renderer and fits the board to the current screen size
func New(screen tcell.Screen, p *puzzle.Puzzle, pieces []*image.NRGBA, background image.Image, reg *status.Registry) *Renderer {
	if reg == nil {
		reg = status.NewRegistry()
	}
	r := &Renderer{
		screen:     screen,
		puzzle:     p,
		pieces:     pieces,
		background: background,
		status:     reg,
	}
	r.Resize()
	return r
}

// Resize refits the viewport to the screen
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.vp = NewViewport(r.puzzle.Bounds(), w, h)
}

func (r *Renderer) Viewport() Viewport { return r.vp }

// ToWorld maps a cell through the current viewport
func (r *Renderer) ToWorld(col, row int) vmath.Vec2 { return r.vp.ToWorld(col, row) }

// SetBanner replaces the status line with msg; empty restores the metrics
func (r *Renderer) SetBanner(msg string) { r.banner = msg }

// Draw paints the whole frame and shows it
func (r *Renderer) Draw() {
	view := r.puzzle.View()
	for row := 0; row < r.vp.Rows; row++ {
		for col := 0; col < r.vp.Cols; col++ {
			top := r.colorAt(view, r.vp.Pixel(col, 2*row))
			bottom := r.colorAt(view, r.vp.Pixel(col, 2*row+1))
			style := tcell.StyleDefault.Foreground(toColor(top)).Background(toColor(bottom))
			r.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
	r.drawStatus()
	r.screen.Show()
}

func (r *Renderer) drawStatus() {
	text, style := r.banner, bannerStyle
	if text == "" {
		text, style = r.status.Line(statusKeys...)+helpText, statusStyle
	}

	w, _ := r.screen.Size()
	row := r.vp.Rows
	runes := []rune(text)
	for col := 0; col < w; col++ {
		ch := ' '
		if col < len(runes) {
			ch = runes[col]
		}
		r.screen.SetContent(col, row, ch, nil, style)
	}
}

// colorAt returns the colour of the top-most opaque piece pixel at w, the dimmed
// background on the board, or the canvas colour off it
func (r *Renderer) colorAt(view []puzzle.Sprite, w vmath.Vec2) color.RGBA {
	for i := len(view) - 1; i > 0; i-- {
		s := view[i]
		if !s.Bounds.Contains(w) {
			continue
		}
		c, ok := r.piecePixel(s, w)
		if !ok {
			continue
		}
		return tint(c, s.Material)
	}

	if r.background != nil && r.puzzle.Bounds().Contains(w) {
		b := r.background.Bounds()
		x := b.Min.X + int(math.Floor(w.X))
		y := b.Min.Y + int(math.Floor(w.Y))
		return color.RGBAModel.Convert(r.background.At(x, y)).(color.RGBA)
	}
	return canvasColor
}

func (r *Renderer) piecePixel(s puzzle.Sprite, w vmath.Vec2) (color.RGBA, bool) {
	if int(s.Piece) >= len(r.pieces) || r.pieces[s.Piece] == nil {
		return flatColor(s.Coord), true
	}
	img := r.pieces[s.Piece]
	local := w.Sub(s.Bounds.Min)
	x := min(int(local.X), img.Bounds().Dx()-1)
	y := min(int(local.Y), img.Bounds().Dy()-1)
	c := img.NRGBAAt(x, y)
	if c.A < 0x80 {
		return color.RGBA{}, false
	}
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}, true
}

// flatColor is used when no picture was cut for a piece
func flatColor(c core.Coord) color.RGBA {
	return color.RGBA{
		R: uint8(60 + (c.Col*53)%160),
		G: uint8(60 + (c.Row*71)%160),
		B: uint8(60 + ((c.Row+c.Col)*37)%160),
		A: 0xff,
	}
}

func tint(c color.RGBA, m core.Material) color.RGBA {
	switch m {
	case core.MaterialSelected:
		return mix(c, selectTint, 0.3)
	case core.MaterialWrong:
		return mix(c, wrongTint, 0.4)
	}
	return c
}

func mix(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 { return uint8(float64(x)*(1-t) + float64(y)*t) }
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 0xff}
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
