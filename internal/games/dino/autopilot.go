package dino

import (
	"github.com/vovakirdan/tui-dino/internal/input"
)

// Autopilot plays a run by driving the jump and crouch keys. It is
// deterministic, so a seeded game driven by it always plays the same run.
type Autopilot struct {
	// Reaction is how far ahead, in seconds of scrolling, an obstacle is
	// answered.
	Reaction float64
}

// DefaultAutopilot clears most cacti at the default physics.
func DefaultAutopilot() Autopilot {
	return Autopilot{Reaction: 0.3}
}

// Drive sets the keys for the next frame of run. Call it before the
// scheduler advances.
func (a Autopilot) Drive(run *PlayPhase) {
	jump, crouch := a.decide(run)
	in := run.Input()
	setKey(in, input.KeySpace, jump)
	setKey(in, input.KeyArrowDown, crouch)
}

func (a Autopilot) decide(run *PlayPhase) (jump, crouch bool) {
	pl := run.player
	front := pl.Pos.X + float64(pl.Sprite(run).W)
	lead := run.BaseSpeed()*run.Speed()*a.Reaction + 1

	// Obstacles are kept in spawn order, so the first one not yet passed
	// is the nearest.
	for _, o := range run.spawner.Obstacles() {
		if float64(o.Bounds().Right()) <= pl.Pos.X {
			continue
		}
		if o.Position().X-front > lead {
			return false, false
		}
		if o.Kind() == "bird-high" {
			return false, pl.Grounded(run)
		}
		return pl.Grounded(run), false
	}
	return false, false
}

// setKey presses or releases k so that its held state matches down.
func setKey(in *input.State, k input.Key, down bool) {
	held := in.IsKeyDown(k)
	switch {
	case down && !held:
		in.KeyDown(k)
	case !down && held:
		in.KeyUp(k)
	}
}
