// Package engine drives game phases from a variable-rate frame signal.
//
// The Scheduler turns each host frame into a fixed number of equal
// simulation sub-steps, ages the input edges after every sub-step and paints
// only when the frame was invalidated. Exactly one Phase is active at a time.
package engine

import "github.com/vovakirdan/tui-dino/internal/core"

// Phase is one node of the game state machine.
type Phase interface {
	// Setup prepares the phase. It runs before any Update or Render.
	Setup() error

	// Update advances the phase by dt seconds.
	Update(dt float64)

	// Render draws the phase into dst.
	Render(dst *core.Screen)
}

// Named is implemented by phases that report a display name.
type Named interface {
	Name() string
}

// PhaseName returns the name of p, or "unknown".
func PhaseName(p Phase) string {
	if n, ok := p.(Named); ok {
		return n.Name()
	}
	return "unknown"
}
