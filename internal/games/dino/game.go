package dino

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dino/internal/audio"
	"github.com/vovakirdan/tui-dino/internal/config"
	"github.com/vovakirdan/tui-dino/internal/core"
	"github.com/vovakirdan/tui-dino/internal/engine"
	"github.com/vovakirdan/tui-dino/internal/input"
)

// Phase names.
const (
	PhaseMenu     = "menu"
	PhasePlay     = "play"
	PhaseGameOver = "gameover"
)

// ErrBadViewport is returned for a viewport that cannot hold the playfield.
var ErrBadViewport = errors.New("viewport too small")

// Options configure a Game.
type Options struct {
	Config   config.DinoConfig
	Seed     int64 // 0 uses the current time
	Input    *input.State
	Audio    audio.Player
	Logger   *log.Logger
	Sheet    *SpriteSheet
	Substeps int       // 0 uses Config.Loop.Substeps
	Viewport core.Size // Zero uses 80x24
}

// relayouter is implemented by phases that hold positions tied to the
// viewport.
type relayouter interface {
	Relayout(old, vp core.Size)
}

// Game wires the runner phases to a scheduler.
type Game struct {
	cfg      config.DinoConfig
	sheet    *SpriteSheet
	input    *input.State
	sfx      audio.Player
	logger   *log.Logger
	rng      *rand.Rand
	sched    *engine.Scheduler
	viewport core.Size
	best     int
}

// New creates a game. Call Start to enter the menu.
func New(opts Options) (*Game, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Input == nil {
		opts.Input = input.New()
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Sheet == nil {
		opts.Sheet = NewSpriteSheet()
	}
	if err := opts.Sheet.Validate(); err != nil {
		return nil, err
	}
	if opts.Substeps <= 0 {
		opts.Substeps = opts.Config.Loop.Substeps
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Viewport == (core.Size{}) {
		opts.Viewport = core.Size{W: 80, H: 24}
	}

	g := &Game{
		cfg:    opts.Config,
		sheet:  opts.Sheet,
		input:  opts.Input,
		sfx:    opts.Audio,
		logger: opts.Logger,
		rng:    rand.New(rand.NewSource(opts.Seed)),
	}
	if err := g.checkViewport(opts.Viewport); err != nil {
		return nil, err
	}
	g.viewport = opts.Viewport
	g.sched = engine.NewScheduler(opts.Input, opts.Substeps, opts.Logger)
	return g, nil
}

// checkViewport rejects viewports too short for the ground, the runner and
// a jump.
func (g *Game) checkViewport(vp core.Size) error {
	minH := g.cfg.Ground.Height + g.sheet.RunA.H + 1
	minW := g.cfg.Player.X + g.sheet.RunA.W + 1
	if vp.W < minW || vp.H < minH {
		return fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrBadViewport, vp.W, vp.H, minW, minH)
	}
	return nil
}

// Start enters the menu.
func (g *Game) Start() error {
	return g.sched.SetPhase(newMenu(g))
}

// StartRun begins a new run.
func (g *Game) StartRun() {
	g.switchTo(newPlay(g))
}

// EndRun freezes a finished run on the game-over screen.
func (g *Game) EndRun(run *PlayPhase) {
	g.switchTo(newGameOver(g, run))
}

// ToMenu returns to the title screen.
func (g *Game) ToMenu() {
	g.switchTo(newMenu(g))
}

// switchTo activates p from inside a step. If p fails to set up, the
// current phase stays active.
func (g *Game) switchTo(p engine.Phase) {
	from := g.sched.Phase()
	if err := g.sched.SetPhase(p); err != nil {
		g.logger.Error("phase switch failed",
			"from", engine.PhaseName(from), "to", engine.PhaseName(p), "error", err)
	}
}

// Scheduler returns the loop driving the phases.
func (g *Game) Scheduler() *engine.Scheduler { return g.sched }

// Input returns the input state the phases read.
func (g *Game) Input() *input.State { return g.input }

// Frame runs one host frame at time now and reports whether dst was redrawn.
func (g *Game) Frame(now time.Time, dst *core.Screen) bool {
	return g.sched.Frame(now, dst)
}

// SetViewport resizes the playfield and moves live entities onto the new
// ground row.
func (g *Game) SetViewport(vp core.Size) error {
	if err := g.checkViewport(vp); err != nil {
		return err
	}
	if vp == g.viewport {
		return nil
	}
	old := g.viewport
	g.viewport = vp
	if r, ok := g.sched.Phase().(relayouter); ok {
		r.Relayout(old, vp)
	}
	g.sched.Invalidate()
	return nil
}

// Viewport returns the playfield size.
func (g *Game) Viewport() core.Size { return g.viewport }

// Config returns the configuration the game was created with.
func (g *Game) Config() config.DinoConfig { return g.cfg }

// Best returns the best score of this process.
func (g *Game) Best() int { return g.best }

func (g *Game) recordScore(score int) {
	if score > g.best {
		g.best = score
	}
}

// State summarises the running game.
func (g *Game) State() core.GameState {
	st := core.GameState{Phase: engine.PhaseName(g.sched.Phase())}
	switch p := g.sched.Phase().(type) {
	case *PlayPhase:
		st.Score = p.session.Score()
		st.Lives = p.session.Lives
	case *GameOverPhase:
		st.Score = p.session.Score()
		st.Lives = p.session.Lives
		st.GameOver = true
	}
	return st
}

// narrowFactor slows the world on viewports narrower than the configured
// width, leaving more reaction distance.
func (g *Game) narrowFactor() float64 {
	if g.viewport.W < g.cfg.Physics.NarrowWidth {
		return g.cfg.Physics.NarrowSpeedFactor
	}
	return 1
}
