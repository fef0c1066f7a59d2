package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dino/internal/core"
	"github.com/vovakirdan/tui-dino/internal/games/dino"
	"github.com/vovakirdan/tui-dino/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the runner in this terminal.

Controls:
  Space/Up/W  - Jump (also starts a run from the menu)
  Down/S      - Crouch; in the air, fall faster
  R           - Restart (after game over)
  Esc         - Back to the menu
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  dino play
  dino play --difficulty easy
  dino play --seed 42 --substeps 8
  dino play --config ./my-dino.yaml --profile-db ~/.dino/profiles.db`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := newLogger(flagLogFile, flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	svc, err := startServices(context.Background(), cfg, true, logger)
	if err != nil {
		if isStartupFailure(err) {
			logger.Error("startup failed", "error", err)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logCloser.Close()
		os.Exit(1)
	}
	defer svc.Close()

	// Get terminal size early so the first frame is laid out correctly
	vp := core.Size{W: 80, H: 24}
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		field := core.Letterbox(core.Size{W: w, H: h - 1}, cfg.Loop.MaxWidth, cfg.Loop.MaxHeight)
		vp = core.Size{W: field.W, H: field.H}
	}

	opts := dino.Options{
		Config:   cfg,
		Seed:     flagSeed,
		Audio:    svc.player(),
		Logger:   logger,
		Sheet:    svc.sheet,
		Viewport: vp,
	}
	game, err := dino.New(opts)
	if errors.Is(err, dino.ErrBadViewport) {
		// The model reports a small terminal once it knows the real size.
		opts.Viewport = core.Size{}
		game, err = dino.New(opts)
	}
	if err == nil {
		err = game.Start()
	}
	if err != nil {
		svc.Close()
		fmt.Fprintf(os.Stderr, "Error starting game: %v\n", err)
		logCloser.Close()
		os.Exit(1)
	}

	err = tui.Run(game, tui.Options{
		FPS:         cfg.Loop.FPS,
		InputHold:   cfg.Loop.InputHold,
		RepeatDelay: cfg.Loop.RepeatDelay,
		MaxWidth:    cfg.Loop.MaxWidth,
		MaxHeight:   cfg.Loop.MaxHeight,
		Logger:      logger,
		Store:       svc.store,
		Session:     "local",
	})
	if err != nil {
		svc.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logCloser.Close()
		os.Exit(1)
	}

	if game.Best() > 0 {
		fmt.Printf("Best: %s\n", dino.FormatScore(float64(game.Best())))
	}
}
