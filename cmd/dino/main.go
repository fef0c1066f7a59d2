// dino is an endless runner for the terminal.
//
// Usage:
//
//	dino                 - Play (same as dino play)
//	dino play            - Play in this terminal
//	dino serve           - Start SSH server for remote play
//	dino bench           - Run a headless deterministic session
//	dino profiles        - Show recorded frame-timing profiles
//
// Global flags:
//
//	--fps <rate>          - Host frame rate (default: from config)
//	--seed <value>        - RNG seed for reproducible runs
//	--substeps <n>        - Simulation sub-steps per frame
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--god                 - Never lose the run
//	--sound               - Enable sound effects
//	--profile-db <path>   - Frame-timing profile database
//	--log-file <path>     - Log destination
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dino/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagSubsteps   int
	flagConfig     string
	flagDifficulty string
	flagGod        bool
	flagSound      bool
	flagProfileDB  string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dino",
	Short: "Dino - an endless runner in your terminal",
	Long: `Dino is a terminal endless runner: jump over cacti, duck under birds,
and see how far you get before your lives run out.

Available commands:
  play      - Play in this terminal (default)
  serve     - Start SSH server for remote play
  bench     - Run a headless deterministic session
  profiles  - Show recorded frame-timing profiles

Examples:
  dino
  dino play --difficulty hard
  dino serve --ssh :2222
  dino bench --frames 3600 --seed 42`,
	Run: runPlay,
}

func init() {
	home, _ := os.UserHomeDir()
	defaultDir := filepath.Join(home, ".dino")

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Host frame rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagSubsteps, "substeps", 0, "Simulation sub-steps per frame (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagGod, "god", false, "God mode: losing every life never ends the run")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", true, "Enable sound effects")
	rootCmd.PersistentFlags().StringVar(&flagProfileDB, "profile-db", "", "Path to frame-timing profile database (empty = disabled)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", filepath.Join(defaultDir, "dino.log"), "Log file path")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(profilesCmd)
}

// loadConfig resolves the configuration from files, the difficulty preset
// and the command-line overrides.
func loadConfig(cmd *cobra.Command) (config.DinoConfig, error) {
	cfg, err := config.LoadDino(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyDinoPreset(&cfg, preset)
	}

	if flagFPS > 0 {
		cfg.Loop.FPS = flagFPS
	}
	if flagSubsteps > 0 {
		cfg.Loop.Substeps = flagSubsteps
	}
	if flagGod {
		cfg.GodMode = true
	}
	if cmd.Flags().Changed("sound") {
		cfg.Audio.Enabled = flagSound
	}

	return cfg, cfg.Validate()
}

// newLogger opens the log destination. The returned closer must be closed
// on exit. An empty path discards logs.
func newLogger(path, level string) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var w io.WriteCloser = nopCloser{io.Discard}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "dino",
		Level:           lvl,
	})
	return logger, w, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
