package imaging

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"runtime"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/Avelinimus/PuzzleTemplate/partition"
)

// Cut copies the Source region of src through the piece mask
// Pixels outside the mask are fully transparent
func Cut(src image.Image, ps *partition.PieceSpec, spec partition.Spec) *image.NRGBA {
	mask := Mask(ps, spec.Joint, spec.JointSize)
	dst := image.NewNRGBA(mask.Bounds())
	draw.DrawMask(dst, dst.Bounds(), src, src.Bounds().Min.Add(ps.Source.Min), mask, image.Point{}, draw.Src)
	return dst
}

// CutAll cuts every piece of plan concurrently, in row-major order
func CutAll(ctx context.Context, src image.Image, plan *partition.Plan) ([]*image.NRGBA, error) {
	b := src.Bounds()
	if b.Dx() != plan.Spec.ImageWidth || b.Dy() != plan.Spec.ImageHeight {
		return nil, fmt.Errorf("image is %dx%d, plan expects %dx%d",
			b.Dx(), b.Dy(), plan.Spec.ImageWidth, plan.Spec.ImageHeight)
	}

	out := make([]*image.NRGBA, len(plan.Pieces))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range plan.Pieces {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = Cut(src, &plan.Pieces[i], plan.Spec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Darken multiplies every RGB channel by amount, clamped to [0,1]; alpha is kept
func Darken(img image.Image, amount float64) *image.RGBA {
	amount = min(max(amount, 0), 1)
	return adjust.Apply(img, func(c color.RGBA) color.RGBA {
		return color.RGBA{
			R: uint8(float64(c.R) * amount),
			G: uint8(float64(c.G) * amount),
			B: uint8(float64(c.B) * amount),
			A: c.A,
		}
	})
}

// Thumbnail scales img to w x h
func Thumbnail(img image.Image, w, h int) *image.RGBA {
	return transform.Resize(img, max(w, 1), max(h, 1), transform.Linear)
}
