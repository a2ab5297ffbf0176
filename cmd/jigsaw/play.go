package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Avelinimus/PuzzleTemplate/audio"
	"github.com/Avelinimus/PuzzleTemplate/engine"
	"github.com/Avelinimus/PuzzleTemplate/imaging"
	"github.com/Avelinimus/PuzzleTemplate/input"
	"github.com/Avelinimus/PuzzleTemplate/parameter"
	"github.com/Avelinimus/PuzzleTemplate/puzzle"
	"github.com/Avelinimus/PuzzleTemplate/render"
	"github.com/Avelinimus/PuzzleTemplate/status"
)

func newPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Long: `Drag pieces with the left mouse button. Hold a piece still to pick up its whole
cluster. Keys: q or Esc quits, r deals a new layout, m toggles sound.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.play(cmd.Context())
		},
	}
}

func (a *app) play(ctx context.Context) error {
	src, err := a.source()
	if err != nil {
		return err
	}
	p, _, err := a.newPuzzle(src)
	if err != nil {
		return err
	}

	pieces, err := imaging.CutAll(ctx, src, p.Plan())
	if err != nil {
		return err
	}
	background := imaging.Darken(src, a.cfg.BackgroundDarken)

	keys := input.DefaultKeyTable()
	if err := keys.Bind(a.cfg.Keys); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	// Panic recovery: restore the terminal before the trace is printed
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\njigsaw crashed: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()
	screen.EnableMouse()
	screen.HideCursor()

	sound := audio.NewSoundManager(a.logger)
	if a.cfg.Sound {
		if err := sound.Initialize(); err != nil {
			// Non-fatal, the game runs without sound
			a.logger.Warn("audio initialization failed", zap.Error(err))
		}
	}
	defer sound.Cleanup()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	game := NewGame(screen, p, pieces, background, GameOptions{
		Keys:    keys,
		Sound:   sound,
		Logger:  a.logger,
		Session: a.sessionConfig(),
	})
	defer game.Close()
	return game.Run(ctx)
}

func (a *app) sessionConfig() engine.Config {
	return engine.Config{
		TimeToDragGroup:     a.cfg.Gesture.TimeToDragGroup,
		DistanceToDragGroup: a.cfg.Gesture.DistanceToDragGroup,
		SettleTicks:         a.cfg.Gesture.SettleTicks,
		Logger:              a.logger,
	}
}

// GameOptions are the optional collaborators of a Game
type GameOptions struct {
	Keys    *input.KeyTable
	Sound   *audio.SoundManager
	Logger  *zap.Logger
	Session engine.Config
	Tick    time.Duration
}

// Game is the interactive host: it pumps terminal events into the input machine
// and advances the session on a fixed ticker
type Game struct {
	screen   tcell.Screen
	session  *engine.Session
	renderer *render.Renderer
	input    *input.Machine
	sound    *audio.SoundManager
	log      *zap.Logger
	tick     time.Duration

	lastState   engine.GestureState
	lastPressed bool
}

// NewGame wires a session, renderer and input machine around p
func NewGame(screen tcell.Screen, p *puzzle.Puzzle, pieces []*image.NRGBA, background image.Image, opts GameOptions) *Game {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Sound == nil {
		opts.Sound = audio.NewSoundManager(opts.Logger)
	}
	if opts.Tick <= 0 {
		opts.Tick = parameter.TickInterval
	}
	reg := status.NewRegistry()
	opts.Session.Status = reg
	if opts.Session.Logger == nil {
		opts.Session.Logger = opts.Logger
	}

	r := render.New(screen, p, pieces, background, reg)
	return &Game{
		screen:   screen,
		session:  engine.NewSession(p, opts.Session),
		renderer: r,
		input:    input.NewMachine(opts.Keys, r),
		sound:    opts.Sound,
		log:      opts.Logger,
		tick:     opts.Tick,
	}
}

func (g *Game) Session() *engine.Session { return g.session }

// Run blocks until a quit key, ctx cancellation or a closed event stream
func (g *Game) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		g.screen.ChannelEvents(events, quit)
		return nil
	})
	grp.Go(func() (err error) {
		defer close(quit)
		// A crash in the loop becomes an error so the caller still restores the terminal
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("game loop crashed: %v\n%s", r, debug.Stack())
			}
		}()
		return g.loop(ctx, events)
	})
	return grp.Wait()
}

func (g *Game) loop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(g.tick)
	defer ticker.Stop()

	g.renderer.Draw()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !g.handleEvent(ev) {
				g.log.Info("quit requested")
				return nil
			}

		case now := <-ticker.C:
			g.update(now.Sub(last))
			last = now
			g.renderer.Draw()
		}
	}
}

// handleEvent returns false when the game should stop
func (g *Game) handleEvent(ev tcell.Event) bool {
	intent := g.input.Process(ev)
	if intent == nil {
		return true
	}
	switch intent.Type {
	case input.IntentQuit:
		return false
	case input.IntentRescatter:
		g.session.Rescatter()
		g.renderer.SetBanner("")
	case input.IntentToggleMute:
		muted := g.sound.ToggleMute()
		g.log.Debug("mute toggled", zap.Bool("muted", muted))
	case input.IntentResize:
		g.renderer.Resize()
		g.screen.Sync()
	case input.IntentPointer:
		// Button edges are applied at once so a quick click is not lost between ticks
		if intent.Sample.Pressed != g.lastPressed {
			g.update(0)
		}
	}
	return true
}

func (g *Game) update(dt time.Duration) {
	sample := g.input.Sample()
	g.lastPressed = sample.Pressed

	res := g.session.Tick(sample, dt)
	if res.State != g.lastState && res.State != engine.GestureIdle {
		g.sound.PlayPickup()
	}
	g.lastState = res.State

	if res.Joins > 0 {
		g.sound.PlayJoin()
	}
	if res.JustCompleted {
		g.sound.PlayComplete()
		stats := g.session.Status()
		elapsed := stats.Elapsed.Elapsed()
		g.renderer.SetBanner(fmt.Sprintf(" SOLVED in %s  r:new layout q:quit", elapsed.Round(time.Second)))
		g.log.Info("puzzle solved",
			zap.Duration("elapsed", elapsed),
			zap.Int64("drags", stats.Drags.Value()))
	}
}

// Close releases the session
func (g *Game) Close() {
	g.session.Close()
}
