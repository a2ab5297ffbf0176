package main

import (
	"fmt"
	"image"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Avelinimus/PuzzleTemplate/imaging"
	"github.com/Avelinimus/PuzzleTemplate/partition"
)

// ramp maps luminance to glyphs, darkest first
const ramp = " .:-=+*#%@"

func newLayoutCmd(a *app) *cobra.Command {
	var (
		preview bool
		width   int
	)
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the edge shapes and piece rectangles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.source()
			if err != nil {
				return err
			}
			p, seed, err := a.newPuzzle(src)
			if err != nil {
				return err
			}
			defer p.Close()

			out := cmd.OutOrStdout()
			plan := p.Plan()
			fmt.Fprintf(out, "%dx%d pieces, %dx%d image, joint %s size %d, seed %d\n\n",
				plan.Spec.Rows, plan.Spec.Cols, plan.Spec.ImageWidth, plan.Spec.ImageHeight,
				plan.Spec.Joint, plan.Spec.JointSize, seed)
			fmt.Fprint(out, plan.Edges.String())
			fmt.Fprintln(out)
			if err := writePieces(out, plan); err != nil {
				return err
			}
			if preview {
				fmt.Fprintln(out)
				writePreview(out, imaging.Thumbnail(src, width, previewHeight(src.Bounds().Dx(), src.Bounds().Dy(), width)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&preview, "preview", "p", false, "print an ASCII thumbnail of the source")
	cmd.Flags().IntVarP(&width, "width", "w", 60, "thumbnail width in characters")
	return cmd
}

func writePieces(out io.Writer, plan *partition.Plan) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PIECE\tCELL\tSOURCE\tCENTER\tCONNECTORS")
	for i := range plan.Pieces {
		ps := &plan.Pieces[i]
		conns := make([]string, 0, len(ps.Connectors))
		for _, c := range ps.Connectors {
			conns = append(conns, fmt.Sprintf("%s:%s", c.Side, c.Shape))
		}
		fmt.Fprintf(tw, "%v\t%v\t%v\t(%.1f,%.1f)\t%s\n",
			ps.Coord, ps.Cell, ps.Source, ps.Center.X, ps.Center.Y, strings.Join(conns, " "))
	}
	return tw.Flush()
}

// previewHeight halves the row count since terminal cells are about twice as tall as wide
func previewHeight(w, h, cols int) int {
	if w <= 0 {
		return 1
	}
	return max(cols*h/w/2, 1)
}

func writePreview(out io.Writer, img *image.RGBA) {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
			sb.WriteByte(ramp[lum*(len(ramp)-1)/255])
		}
		sb.WriteByte('\n')
	}
	fmt.Fprint(out, sb.String())
}
