package imaging

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avelinimus/PuzzleTemplate/core"
	"github.com/Avelinimus/PuzzleTemplate/edge"
	"github.com/Avelinimus/PuzzleTemplate/partition"
	"github.com/Avelinimus/PuzzleTemplate/vmath"
)

func testPlan(t *testing.T, joint core.JointType, seed uint64) *partition.Plan {
	t.Helper()
	spec := partition.Spec{ImageWidth: 400, ImageHeight: 300, Rows: 2, Cols: 2, JointSize: 50, Joint: joint}
	plan, err := partition.New(spec, edge.Generate(2, 2, vmath.NewFastRand(seed)))
	require.NoError(t, err)
	return plan
}

func opaque(m *image.Alpha, x, y int) bool {
	return m.AlphaAt(x, y).A != 0
}

// TestMaskCornerPiece checks the mask of (0,0) against its edge shapes
func TestMaskCornerPiece(t *testing.T) {
	plan := testPlan(t, core.JointCircle, 3)
	ps := plan.Piece(core.Coord{})
	m := Mask(ps, core.JointCircle, 50)

	require.Equal(t, image.Rect(0, 0, 250, 200), m.Bounds())
	assert.True(t, opaque(m, 10, 10), "cell interior")
	assert.False(t, opaque(m, 225, 10), "margin away from the joint")
	assert.False(t, opaque(m, 225, 175), "corner margin")

	right := ps.Shapes[core.SideRight.Index()]
	if right == core.Tab {
		assert.True(t, opaque(m, 225, 75), "tab fills the margin")
		assert.True(t, opaque(m, 190, 75))
	} else {
		assert.False(t, opaque(m, 225, 75))
		assert.False(t, opaque(m, 190, 75), "blank carves the cell")
	}
}

func TestMaskJointNoneIsRectangle(t *testing.T) {
	plan := testPlan(t, core.JointNone, 3)
	for i := range plan.Pieces {
		ps := &plan.Pieces[i]
		m := Mask(ps, core.JointNone, plan.Spec.JointSize)
		assert.Equal(t, ps.Cell.Size(), m.Bounds().Size())
		for y := 0; y < m.Bounds().Dy(); y++ {
			for x := 0; x < m.Bounds().Dx(); x++ {
				require.True(t, opaque(m, x, y))
			}
		}
	}
}

// TestMasksTileImage verifies solved pieces cover every source pixel exactly once
func TestMasksTileImage(t *testing.T) {
	for _, joint := range []core.JointType{core.JointCircle, core.JointRect} {
		for seed := uint64(1); seed <= 4; seed++ {
			plan := testPlan(t, joint, seed)
			cover := make([]int, 400*300)
			for i := range plan.Pieces {
				ps := &plan.Pieces[i]
				m := Mask(ps, joint, plan.Spec.JointSize)
				for y := 0; y < m.Bounds().Dy(); y++ {
					for x := 0; x < m.Bounds().Dx(); x++ {
						if opaque(m, x, y) {
							wx, wy := x+ps.Source.Min.X, y+ps.Source.Min.Y
							cover[wy*400+wx]++
						}
					}
				}
			}
			for i, n := range cover {
				require.Equal(t, 1, n, "%v seed %d pixel (%d,%d)", joint, seed, i%400, i/400)
			}
		}
	}
}

func TestCutCopiesThroughMask(t *testing.T) {
	plan := testPlan(t, core.JointCircle, 9)
	src := Pattern(400, 300, 25)

	pieces, err := CutAll(context.Background(), src, plan)
	require.NoError(t, err)
	require.Len(t, pieces, 4)

	ps := plan.Piece(core.Coord{Row: 1, Col: 1})
	img := pieces[3]
	m := Mask(ps, core.JointCircle, 50)
	assert.Equal(t, m.Bounds(), img.Bounds())

	for _, pt := range []image.Point{{60, 60}, {5, 5}, {100, 20}} {
		got := img.NRGBAAt(pt.X, pt.Y)
		if opaque(m, pt.X, pt.Y) {
			assert.Equal(t, src.NRGBAAt(pt.X+ps.Source.Min.X, pt.Y+ps.Source.Min.Y), got)
		} else {
			assert.Equal(t, uint8(0), got.A)
		}
	}
}

func TestCutAllRejectsSizeMismatch(t *testing.T) {
	plan := testPlan(t, core.JointCircle, 1)
	_, err := CutAll(context.Background(), Pattern(100, 100, 10), plan)
	assert.Error(t, err)
}

func TestCutAllHonoursCancel(t *testing.T) {
	plan := testPlan(t, core.JointCircle, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CutAll(ctx, Pattern(400, 300, 10), plan)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDarken(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 10, B: 10, A: 255})

	out := Darken(src, 0.5)
	assert.Equal(t, color.RGBA{R: 100, G: 50, B: 25, A: 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 5, G: 5, B: 5, A: 255}, out.RGBAAt(1, 0))

	assert.Equal(t, color.RGBA{A: 255}, Darken(src, -1).RGBAAt(0, 0))
}

func TestThumbnailSize(t *testing.T) {
	out := Thumbnail(Pattern(400, 300, 20), 80, 24)
	assert.Equal(t, image.Rect(0, 0, 80, 24), out.Bounds())
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, Pattern(16, 8, 4)))

	img, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())

	_, err = Decode(strings.NewReader("not an image"))
	assert.Error(t, err)
}
