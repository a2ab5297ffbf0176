package main

import (
	"fmt"
	"image"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Avelinimus/PuzzleTemplate/config"
	"github.com/Avelinimus/PuzzleTemplate/core"
	"github.com/Avelinimus/PuzzleTemplate/imaging"
	"github.com/Avelinimus/PuzzleTemplate/puzzle"
)

const (
	defaultConfigPath = "jigsaw.yaml"
	playLogPath       = "jigsaw.log"
)

// app carries the state shared by every subcommand
type app struct {
	configPath string
	verbose    bool
	logFile    string

	// Overrides; applied only when the flag was set
	image     string
	rows      int
	columns   int
	jointSize int
	joint     string
	seed      uint64

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "jigsaw",
		Short: "Jigsaw puzzle in the terminal",
		Long: `jigsaw cuts a picture into interlocking pieces, scatters them and lets you
drag them back together with the mouse. Pieces snap to matching neighbours;
holding a piece still grabs everything joined to it.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", defaultConfigPath, "YAML config file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&a.logFile, "log-file", "", "log destination (play defaults to "+playLogPath+", other commands to stderr)")
	pf.StringVarP(&a.image, "image", "i", "", "source picture (png, jpeg, bmp, webp)")
	pf.IntVarP(&a.rows, "rows", "r", 0, "piece rows")
	pf.IntVarP(&a.columns, "columns", "k", 0, "piece columns")
	pf.IntVarP(&a.jointSize, "joint-size", "j", 0, "tab radius in source pixels")
	pf.StringVar(&a.joint, "joint", "", "tab geometry: circle, rect or none")
	pf.Uint64VarP(&a.seed, "seed", "s", 0, "layout seed, 0 picks one from the clock")

	root.AddCommand(
		newPlayCmd(a),
		newLayoutCmd(a),
		newSolveCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup loads settings and builds the logger before any subcommand runs
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := a.applyFlags(cmd.Flags(), cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(a.verbose, a.logPath(cmd))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	a.logger.Debug("config loaded",
		zap.String("path", a.configPath),
		zap.Int("rows", cfg.Rows),
		zap.Int("columns", cfg.Columns),
		zap.Stringer("joint", cfg.Joint))
	return nil
}

func (a *app) applyFlags(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("image") {
		cfg.Image = a.image
	}
	if fs.Changed("rows") {
		cfg.Rows = a.rows
	}
	if fs.Changed("columns") {
		cfg.Columns = a.columns
	}
	if fs.Changed("joint-size") {
		cfg.JointSize = a.jointSize
	}
	if fs.Changed("seed") {
		cfg.Seed = a.seed
	}
	if fs.Changed("joint") {
		j, err := core.ParseJointType(a.joint)
		if err != nil {
			return err
		}
		cfg.Joint = j
	}
	return nil
}

// logPath keeps the interactive screen free of log lines
func (a *app) logPath(cmd *cobra.Command) string {
	switch {
	case a.logFile != "":
		return a.logFile
	case cmd.Name() == "play":
		return playLogPath
	}
	return "stderr"
}

func newLogger(verbose bool, path string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	return zcfg.Build()
}

// source loads the configured picture or draws the fallback pattern
func (a *app) source() (image.Image, error) {
	var (
		src image.Image
		err error
	)
	if a.cfg.Image == "" {
		cell := max(min(a.cfg.Width/a.cfg.Columns, a.cfg.Height/a.cfg.Rows)/4, 1)
		src = imaging.Pattern(a.cfg.Width, a.cfg.Height, cell)
	} else if src, err = imaging.Load(a.cfg.Image); err != nil {
		return nil, err
	}

	b := src.Bounds()
	a.logger.Info("source prepared",
		zap.String("image", a.cfg.Image),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()))
	return src, nil
}

// newPuzzle builds a scattered puzzle sized to src and returns the seed it used
func (a *app) newPuzzle(src image.Image) (*puzzle.Puzzle, uint64, error) {
	seed := a.cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	b := src.Bounds()
	p, err := puzzle.New(puzzle.Config{
		Spec:      a.cfg.Spec(b.Dx(), b.Dy()),
		Seed:      seed,
		DragSpeed: a.cfg.DragSpeed,
		Logger:    a.logger,
	})
	if err != nil {
		return nil, 0, err
	}
	return p, seed, nil
}
