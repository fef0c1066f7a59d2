// Package dino implements a Chrome Dino-style endless runner.
// The player jumps and crouches to avoid scrolling obstacles while score and
// speed grow over time.
package dino

import (
	"github.com/vovakirdan/tui-dino/internal/core"
	"github.com/vovakirdan/tui-dino/internal/input"
)

// Entity is the kinematic state shared by every simulated object.
type Entity struct {
	Pos core.Vec2 // Top-left corner in cells
	Vel core.Vec2 // Cells per second
	Acc core.Vec2 // Per-step velocity increment
}

// Position returns the entity's top-left corner.
func (e *Entity) Position() core.Vec2 { return e.Pos }

// World is what an entity may read while it updates or renders. Phases
// implement it; entities never reach past it.
type World interface {
	// Speed is the effective world speed multiplier.
	Speed() float64

	// BaseSpeed is the scroll rate in cells per second at speed 1.0.
	BaseSpeed() float64

	// Viewport is the playfield size.
	Viewport() core.Size

	// NarrowFactor scales speed and gravity on a narrow viewport; 1 otherwise.
	NarrowFactor() float64

	// Input is the session input state.
	Input() *input.State

	// Session holds score, lives and invulnerability.
	Session() *Session

	// Clock is the scheduler's global timer in seconds.
	Clock() float64
}

// Actor is an entity driven by the phase loop.
type Actor interface {
	Update(dt float64, w World)
	Render(dst *core.Screen, w World)
}

// groundTop returns the first row of the ground strip.
func groundTop(vp core.Size, groundRows int) int {
	return vp.H - groundRows
}
