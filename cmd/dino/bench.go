package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dino/internal/audio"
	"github.com/vovakirdan/tui-dino/internal/core"
	"github.com/vovakirdan/tui-dino/internal/games/dino"
	"github.com/vovakirdan/tui-dino/internal/storage"
)

var (
	flagBenchFrames int
	flagBenchWidth  int
	flagBenchHeight int
	flagBenchRender bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a headless deterministic session",
	Long: `Play one run without a terminal. An autopilot jumps cacti and ducks
under high birds while the scheduler advances a fixed frame time.

The same --seed, --substeps and config always give the same run, which
makes bench useful for checking tuning changes.

Examples:
  dino bench
  dino bench --frames 7200 --seed 42
  dino bench --god --difficulty hard --render`,
	Args: cobra.NoArgs,
	Run:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchFrames, "frames", 3600, "Maximum host frames to run")
	benchCmd.Flags().IntVar(&flagBenchWidth, "width", 80, "Playfield width")
	benchCmd.Flags().IntVar(&flagBenchHeight, "height", 24, "Playfield height")
	benchCmd.Flags().BoolVar(&flagBenchRender, "render", false, "Render every dirty frame and print the last one")
}

func runBench(cmd *cobra.Command, _ []string) {
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

	seed := flagSeed
	if seed == 0 {
		seed = 1
	}

	vp := core.Size{W: flagBenchWidth, H: flagBenchHeight}
	game, err := dino.New(dino.Options{
		Config:   cfg,
		Seed:     seed,
		Audio:    audio.Nop{},
		Logger:   logger,
		Viewport: vp,
	})
	if err == nil {
		err = game.Start()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting game: %v\n", err)
		logCloser.Close()
		os.Exit(1)
	}

	var dst *core.Screen
	if flagBenchRender {
		dst, _ = core.NewScreen(vp.W, vp.H)
	}

	game.StartRun()
	sched := game.Scheduler()
	pilot := dino.DefaultAutopilot()
	delta := 1.0 / float64(cfg.Loop.FPS)

	// Frame costs are wall-clock; the simulation only sees delta.
	var wall, worst time.Duration
	frames := 0
	for frames < flagBenchFrames {
		run, ok := sched.Phase().(*dino.PlayPhase)
		if !ok {
			break
		}
		began := time.Now()
		pilot.Drive(run)
		sched.Advance(delta, dst)
		cost := time.Since(began)
		wall += cost
		worst = max(worst, cost)
		frames++
	}

	st := game.State()
	stats := sched.Stats()

	if dst != nil {
		for y := 0; y < dst.Height(); y++ {
			fmt.Println(strings.TrimRight(dst.Row(y), " "))
		}
		fmt.Println()
	}

	fmt.Printf("Seed:       %d\n", seed)
	fmt.Printf("Phase:      %s\n", st.Phase)
	fmt.Printf("Score:      %s\n", dino.FormatScore(float64(st.Score)))
	fmt.Printf("Lives:      %d\n", st.Lives)
	fmt.Printf("Frames:     %d (%d sub-steps each)\n", frames, sched.Substeps())
	fmt.Printf("Simulated:  %.2fs\n", float64(frames)*delta)
	fmt.Printf("Wall time:  %s (worst frame %s)\n", wall.Round(time.Microsecond), worst.Round(time.Microsecond))
	fmt.Printf("Renders:    %d\n", stats.Renders)

	if flagProfileDB == "" {
		return
	}
	store, err := storage.Open(flagProfileDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening profile database: %v\n", err)
		logCloser.Close()
		os.Exit(1)
	}
	defer store.Close()

	perFrame := 0.0
	if frames > 0 {
		perFrame = wall.Seconds() / float64(frames)
	}
	_, err = store.SaveProfile(context.Background(), storage.Profile{
		Session:   "bench",
		FPS:       stats.FPS,
		UPS:       stats.UPS,
		AvgFrame:  perFrame,
		MaxFrame:  worst.Seconds(),
		Frames:    stats.Frames,
		BestScore: max(game.Best(), st.Score),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving profile: %v\n", err)
	}
}
