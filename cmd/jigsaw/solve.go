package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Avelinimus/PuzzleTemplate/engine"
	"github.com/Avelinimus/PuzzleTemplate/parameter"
	"github.com/Avelinimus/PuzzleTemplate/status"
)

func newSolveCmd(a *app) *cobra.Command {
	var passes int
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a scattered puzzle headlessly with scripted drags",
		Long: `solve deals a puzzle from the current settings and drives the session with
synthetic pointer samples, dragging each misplaced piece onto its solved position
until the completion signal fires. Useful to check a configuration end to end.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.source()
			if err != nil {
				return err
			}
			p, seed, err := a.newPuzzle(src)
			if err != nil {
				return err
			}

			sess := engine.NewSession(p, a.sessionConfig())
			defer sess.Close()

			rep := engine.AutoSolve(sess, parameter.TickInterval, passes)
			a.logger.Info("auto solve finished",
				zap.Bool("solved", rep.Solved),
				zap.Int("passes", rep.Passes),
				zap.Int("drags", rep.Drags),
				zap.Int("uncovers", rep.Uncovers),
				zap.Int("ticks", rep.Ticks),
				zap.Any("status", sess.Status().Snapshot()))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "puzzle %s seed %d: %d pieces\n", p.ID(), seed, len(p.Pieces()))
			fmt.Fprintf(out, "solved=%t passes=%d drags=%d ticks=%d simulated=%s\n",
				rep.Solved, rep.Passes, rep.Drags, rep.Ticks, rep.Simulated)
			fmt.Fprintln(out, sess.Status().Line(status.KeyJoins, status.KeyComplete, status.KeyTotal, status.KeySolved))

			if !rep.Solved {
				return fmt.Errorf("puzzle not solved after %d passes", passes)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&passes, "passes", 50, "maximum sweeps over the pieces")
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
