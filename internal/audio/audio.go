// Package audio plays the runner's sound effects.
//
// Effects are synthesised once into buffers and cached. The simulation only
// sees the Player interface; it never waits on audio.
package audio

import "errors"

// ErrMissingCacheEntry is logged when an effect is requested before it was
// loaded. The effect is then loaded in the background.
var ErrMissingCacheEntry = errors.New("sound not cached")

// SoundFX identifies a sound effect.
type SoundFX int

const (
	SoundScore SoundFX = iota
	SoundJump
	SoundHit
	SoundGameOver
)

// All lists every effect, in preload order.
var All = []SoundFX{SoundScore, SoundJump, SoundHit, SoundGameOver}

func (s SoundFX) String() string {
	switch s {
	case SoundScore:
		return "score"
	case SoundJump:
		return "jump"
	case SoundHit:
		return "hit"
	case SoundGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Player plays sound effects without blocking the caller.
type Player interface {
	Play(fx SoundFX)
}

// Nop is a Player that discards every request.
type Nop struct{}

// Play does nothing.
func (Nop) Play(SoundFX) {}
