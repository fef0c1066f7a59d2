package config

import (
	"math"
	"testing"
)

func TestDifficultyLevel(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:      ScalingConfig{GapReduction: 10},
	}
	dm := NewDifficultyManager(cfg)

	tests := []struct {
		score    int
		expected float64
	}{
		{0, 0.2},
		{500, 0.6},
		{1000, 1.0},
		{5000, 1.0},
	}
	for _, tc := range tests {
		if got := dm.Level(tc.score, 0); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Level(%d) = %g, expected %g", tc.score, got, tc.expected)
		}
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 60},
	})
	if got := dm.Level(9999, 30); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Level(_, 30s) = %g, expected 0.5", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.7,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
	})
	if got := dm.Level(100, 0); got != 0.7 {
		t.Errorf("Level() = %g, expected fixed 0.7", got)
	}
	if dm.IsEnabled() {
		t.Error("IsEnabled() = true, expected false")
	}
}

func TestMaxGapShrinksButNotBelowMin(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:     ScalingConfig{GapReduction: 30},
	})

	if got := dm.MaxGap(18, 42, 0, 0); got != 42 {
		t.Errorf("MaxGap() at level 0 = %d, expected 42", got)
	}
	if got := dm.MaxGap(18, 42, 50, 0); got != 27 {
		t.Errorf("MaxGap() at level 0.5 = %d, expected 27", got)
	}
	if got := dm.MaxGap(18, 42, 100, 0); got != 18 {
		t.Errorf("MaxGap() at level 1 = %d, expected floor 18", got)
	}
}
