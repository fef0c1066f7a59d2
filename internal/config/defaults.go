package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/dino.yaml
var defaultDinoYAML []byte

// DefaultDinoConfig returns the default runner configuration.
func DefaultDinoConfig() DinoConfig {
	return DinoConfig{
		Loop: LoopConfig{
			FPS:         60,
			Substeps:    4,
			MaxWidth:    120,
			MaxHeight:   30,
			InputHold:   450 * time.Millisecond,
			RepeatDelay: 750 * time.Millisecond,
		},
		Physics: DinoPhysics{
			Gravity:           0.3125,
			FallForce:         0.625,
			JumpForce:         -36,
			JumpScale:         1.0,
			NarrowWidth:       80,
			NarrowSpeedFactor: 0.75,
		},
		Player: DinoPlayer{
			X:               4,
			GroundOffset:    0,
			Lives:           3,
			Invulnerability: 1.5,
			SpriteInterval:  0.1,
		},
		Speed: SpeedConfig{
			Base:          20,
			Initial:       0,
			RampThreshold: 1.0,
			PostRampRate:  0.01,
		},
		Score: ScoreConfig{
			Interval: 0.1,
		},
		Ground: GroundConfig{
			Height:     2,
			StripWidth: 64,
		},
		Obstacles: DinoObstacles{
			MinGap:       18,
			MaxGap:       42,
			BirdMinScore: 300,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 2000,
			},
			Scaling: ScalingConfig{
				GapReduction: 16,
			},
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.6,
			SampleRate: 44100,
			ScoreEvery: 100,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultDinoYAML
}
