package config

import "github.com/vovakirdan/tui-dino/internal/core"

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: core.ClampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score
// or elapsed seconds.
func (d *DifficultyManager) Level(score int, seconds float64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = seconds / maxAt
	default:
		return d.initialLevel
	}

	progress = core.ClampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// MaxGap returns the upper bound of the obstacle gap at the current level.
// It shrinks from maxGap toward minGap as difficulty rises and never drops
// below minGap.
func (d *DifficultyManager) MaxGap(minGap, maxGap, score int, seconds float64) int {
	level := d.Level(score, seconds)
	reduction := int(level * float64(d.cfg.Scaling.GapReduction))
	result := maxGap - reduction
	if result < minGap {
		result = minGap
	}
	return result
}
