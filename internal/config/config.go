// Package config provides YAML-based game configuration loading and
// difficulty management for the runner.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Validate for out-of-range values.
var ErrInvalidConfig = errors.New("invalid config")

// DinoConfig contains all configuration for the runner.
type DinoConfig struct {
	Loop       LoopConfig       `yaml:"loop"`
	Physics    DinoPhysics      `yaml:"physics"`
	Player     DinoPlayer       `yaml:"player"`
	Speed      SpeedConfig      `yaml:"speed"`
	Score      ScoreConfig      `yaml:"score"`
	Ground     GroundConfig     `yaml:"ground"`
	Obstacles  DinoObstacles    `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Audio      AudioConfig      `yaml:"audio"`
	GodMode    bool             `yaml:"god_mode"`
}

// LoopConfig defines frame pacing and viewport limits.
type LoopConfig struct {
	FPS       int           `yaml:"fps"`        // Host frames per second
	Substeps  int           `yaml:"substeps"`   // Simulation steps per frame
	MaxWidth  int           `yaml:"max_width"`  // Playfield is letterboxed beyond this width
	MaxHeight int           `yaml:"max_height"` // Playfield is letterboxed beyond this height
	InputHold   time.Duration `yaml:"input_hold"`   // Synthetic key release after this long without a repeat
	RepeatDelay time.Duration `yaml:"repeat_delay"` // Hold before the first repeat arrives
}

// DinoPhysics defines vertical kinematics. Accelerations are per-step
// velocity increments, so they are tuned together with loop.substeps.
type DinoPhysics struct {
	Gravity           float64 `yaml:"gravity"`             // Rising acceleration
	FallForce         float64 `yaml:"fall_force"`          // Falling and fast-fall acceleration
	JumpForce         float64 `yaml:"jump_force"`          // Jump impulse (negative is up)
	JumpScale         float64 `yaml:"jump_scale"`          // Jump-style multiplier
	NarrowWidth       int     `yaml:"narrow_width"`        // Viewports narrower than this use the narrow profile
	NarrowSpeedFactor float64 `yaml:"narrow_speed_factor"` // Speed and gravity scale on the narrow profile
}

// DinoPlayer defines runner parameters.
type DinoPlayer struct {
	X               int     `yaml:"x"`               // Left margin in cells
	GroundOffset    int     `yaml:"ground_offset"`   // Rows the sprite sinks into the ground strip
	Lives           int     `yaml:"lives"`           // Starting lives
	Invulnerability float64 `yaml:"invulnerability"` // Seconds of invulnerability after a hit
	SpriteInterval  float64 `yaml:"sprite_interval"` // Animation frame length (speed-scaled seconds)
}

// SpeedConfig defines the world speed ramp.
type SpeedConfig struct {
	Base          float64 `yaml:"base"`           // Cells per second at speed 1.0
	Initial       float64 `yaml:"initial"`        // Raw speed at the start of a run
	RampThreshold float64 `yaml:"ramp_threshold"` // Below this the ramp is sqrt-shaped
	PostRampRate  float64 `yaml:"post_ramp_rate"` // Linear increase per second above the threshold
}

// ScoreConfig defines score accumulation.
type ScoreConfig struct {
	Interval float64 `yaml:"interval"` // Seconds per point
}

// GroundConfig defines the scrolling ground strip.
type GroundConfig struct {
	Height     int `yaml:"height"`      // Rows
	StripWidth int `yaml:"strip_width"` // Width of the repeating pattern
}

// DinoObstacles defines obstacle spawning.
type DinoObstacles struct {
	MinGap       int `yaml:"min_gap"`        // Minimum free cells between obstacles
	MaxGap       int `yaml:"max_gap"`        // Maximum free cells at the lowest difficulty
	BirdMinScore int `yaml:"bird_min_score"` // Birds are eligible from this score
}

// AudioConfig defines sound effects.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`      // Linear gain; 0 is silent
	SampleRate int     `yaml:"sample_rate"` // Hz
	ScoreEvery int     `yaml:"score_every"` // Points between score chimes
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	GapReduction int `yaml:"gap_reduction"` // Max gap reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate checks that the configuration can drive a run.
func (c DinoConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Loop.FPS > 0, "loop.fps must be positive, got %d", c.Loop.FPS)
	check(c.Loop.Substeps > 0, "loop.substeps must be positive, got %d", c.Loop.Substeps)
	check(c.Loop.InputHold >= 0, "loop.input_hold must not be negative")
	check(c.Loop.RepeatDelay >= 0, "loop.repeat_delay must not be negative")
	check(c.Physics.Gravity > 0, "physics.gravity must be positive, got %g", c.Physics.Gravity)
	check(c.Physics.FallForce > 0, "physics.fall_force must be positive, got %g", c.Physics.FallForce)
	check(c.Physics.JumpForce < 0, "physics.jump_force must be negative, got %g", c.Physics.JumpForce)
	check(c.Physics.JumpScale > 0, "physics.jump_scale must be positive, got %g", c.Physics.JumpScale)
	check(c.Physics.NarrowSpeedFactor > 0 && c.Physics.NarrowSpeedFactor <= 1,
		"physics.narrow_speed_factor must be in (0, 1], got %g", c.Physics.NarrowSpeedFactor)
	check(c.Player.Lives > 0, "player.lives must be positive, got %d", c.Player.Lives)
	check(c.Player.Invulnerability >= 0, "player.invulnerability must not be negative")
	check(c.Player.SpriteInterval > 0, "player.sprite_interval must be positive")
	check(c.Speed.Base > 0, "speed.base must be positive, got %g", c.Speed.Base)
	check(c.Speed.Initial >= 0, "speed.initial must not be negative")
	check(c.Speed.PostRampRate >= 0, "speed.post_ramp_rate must not be negative")
	check(c.Score.Interval > 0, "score.interval must be positive, got %g", c.Score.Interval)
	check(c.Ground.Height > 0, "ground.height must be positive, got %d", c.Ground.Height)
	check(c.Ground.StripWidth > 0, "ground.strip_width must be positive, got %d", c.Ground.StripWidth)
	check(c.Obstacles.MinGap > 0, "obstacles.min_gap must be positive, got %d", c.Obstacles.MinGap)
	check(c.Obstacles.MaxGap >= c.Obstacles.MinGap,
		"obstacles.max_gap (%d) must be at least min_gap (%d)", c.Obstacles.MaxGap, c.Obstacles.MinGap)
	check(c.Difficulty.InitialLevel >= 0 && c.Difficulty.InitialLevel <= 1,
		"difficulty.initial_level must be in [0, 1], got %g", c.Difficulty.InitialLevel)
	switch c.Difficulty.Progression.Type {
	case "score", "time", "none", "":
	default:
		check(false, "difficulty.progression.type %q is not score, time or none", c.Difficulty.Progression.Type)
	}
	if c.Audio.Enabled {
		check(c.Audio.SampleRate > 0, "audio.sample_rate must be positive, got %d", c.Audio.SampleRate)
		check(c.Audio.Volume >= 0, "audio.volume must not be negative, got %g", c.Audio.Volume)
	}

	return errors.Join(errs...)
}
