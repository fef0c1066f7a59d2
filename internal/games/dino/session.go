package dino

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-dino/internal/config"
)

// Session is the mutable state of one run.
type Session struct {
	RawScore float64 // Time-accumulated, only grows
	RawSpeed float64 // Ramp value, only grows
	Lives    int

	Invulnerable           bool
	InvulnerabilityElapsed float64

	GodMode bool

	scoreTimer float64
}

// NewSession starts a run from the configuration.
func NewSession(cfg config.DinoConfig) *Session {
	lives := cfg.Player.Lives
	if cfg.GodMode {
		lives = godModeLives
	}
	return &Session{
		RawSpeed: cfg.Speed.Initial,
		Lives:    lives,
		GodMode:  cfg.GodMode,
	}
}

const godModeLives = 999

// Score returns the whole-point score.
func (s *Session) Score() int {
	return int(math.Floor(s.RawScore))
}

// ScoreText returns the score zero-padded to four digits.
func (s *Session) ScoreText() string {
	return FormatScore(s.RawScore)
}

// FormatScore formats a raw score as zero-padded four digits.
func FormatScore(raw float64) string {
	return fmt.Sprintf("%04d", int(math.Floor(raw)))
}

// UpdateScore adds one point per elapsed interval and returns the number of
// points gained.
func (s *Session) UpdateScore(dt, interval float64) int {
	if interval <= 0 || dt <= 0 {
		return 0
	}
	s.scoreTimer += dt
	gained := 0
	for s.scoreTimer >= interval {
		s.scoreTimer -= interval
		s.RawScore++
		gained++
	}
	return gained
}

// UpdateSpeed advances the speed ramp. Below the threshold the ramp follows
// the square of elapsed time; above it the increase is linear.
func (s *Session) UpdateSpeed(dt float64, cfg config.SpeedConfig) {
	if dt <= 0 {
		return
	}
	if s.RawSpeed < cfg.RampThreshold {
		s.RawSpeed += 2*math.Sqrt(s.RawSpeed)*dt + dt*dt
		return
	}
	s.RawSpeed += cfg.PostRampRate * dt
}

// UpdateInvulnerability ages the invulnerability window.
func (s *Session) UpdateInvulnerability(dt, duration float64) {
	if !s.Invulnerable {
		return
	}
	s.InvulnerabilityElapsed += dt
	if s.InvulnerabilityElapsed > duration {
		s.Invulnerable = false
		s.InvulnerabilityElapsed = 0
	}
}

// Hit applies one collision. It reports ignored=true while invulnerable, and
// dead=true when the run must end.
func (s *Session) Hit() (ignored, dead bool) {
	if s.Invulnerable {
		return true, false
	}
	if s.Lives > 0 {
		s.Lives--
	}
	if s.Lives == 0 && !s.GodMode {
		return false, true
	}
	s.Invulnerable = true
	s.InvulnerabilityElapsed = 0
	return false, false
}
