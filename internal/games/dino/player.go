package dino

import (
	"math"

	"github.com/vovakirdan/tui-dino/internal/audio"
	"github.com/vovakirdan/tui-dino/internal/config"
	"github.com/vovakirdan/tui-dino/internal/core"
)

// blinkRate is the invulnerability blink frequency in Hz.
const blinkRate = 8.0

// Player is the runner. Whether it stands on the ground is derived from
// position and velocity; it is never stored.
type Player struct {
	Entity
	Crouching bool
	AnimTimer float64

	sheet      *SpriteSheet
	physics    config.DinoPhysics
	player     config.DinoPlayer
	groundRows int
	sfx        audio.Player
}

// NewPlayer creates a runner standing on the ground of viewport vp.
func NewPlayer(cfg config.DinoConfig, sheet *SpriteSheet, sfx audio.Player, vp core.Size) *Player {
	if sfx == nil {
		sfx = audio.Nop{}
	}
	p := &Player{
		sheet:      sheet,
		physics:    cfg.Physics,
		player:     cfg.Player,
		groundRows: cfg.Ground.Height,
		sfx:        sfx,
	}
	p.Pos = core.V(float64(cfg.Player.X), p.groundHeightFor(vp, false))
	return p
}

// groundHeightFor is the top row the sprite occupies when resting on the
// ground of viewport vp.
func (p *Player) groundHeightFor(vp core.Size, crouching bool) float64 {
	h := p.sheet.RunA.H
	if crouching {
		h = p.sheet.CrouchA.H
	}
	return float64(groundTop(vp, p.groundRows) - h + p.player.GroundOffset)
}

// GroundHeight returns the resting row for the current crouch state.
func (p *Player) GroundHeight(w World) float64 {
	return p.groundHeightFor(w.Viewport(), p.Crouching)
}

// Grounded reports whether the runner is on the ground.
func (p *Player) Grounded(w World) bool {
	return p.Vel.Y >= 0 && p.Pos.Y >= p.GroundHeight(w)
}

// Update advances the runner by one step.
func (p *Player) Update(dt float64, w World) {
	w.Session().UpdateInvulnerability(dt, p.player.Invulnerability)

	interval := p.player.SpriteInterval
	p.AnimTimer += dt * w.Speed()
	if interval > 0 && p.AnimTimer >= 2*interval {
		p.AnimTimer = math.Mod(p.AnimTimer, 2*interval)
	}

	factor := w.NarrowFactor()
	grounded := p.Grounded(w)
	p.Acc.Y = 0
	if !grounded {
		if p.Vel.Y < 0 {
			p.Acc.Y = p.physics.Gravity * factor
		} else {
			p.Acc.Y = p.physics.FallForce * factor
		}
	}

	in := w.Input()
	switch {
	case in.IsCrouching() && grounded:
		p.Crouching = true
		p.Pos.Y = p.GroundHeight(w)
	case in.IsCrouching():
		// Fast-fall
		p.Crouching = false
		p.Acc.Y += p.physics.FallForce
	default:
		if p.Crouching {
			p.Crouching = false
			if grounded {
				p.Pos.Y = p.GroundHeight(w)
			}
		}
		if grounded && in.IsJumping() {
			p.Acc.Y = p.physics.JumpForce * p.physics.JumpScale
			p.sfx.Play(audio.SoundJump)
		}
	}

	p.Pos.Y += p.Vel.Y*dt + 0.5*p.Acc.Y*dt*dt
	p.Vel.Y += p.Acc.Y
	p.clamp(w)
}

// clamp keeps the runner between the top row and the ground.
func (p *Player) clamp(w World) {
	ground := p.GroundHeight(w)
	switch {
	case p.Pos.Y > ground:
		p.Pos.Y = ground
		p.Vel.Y = 0
	case p.Pos.Y < 0:
		p.Pos.Y = 0
		p.Vel.Y = 0
	}
}

// Sprite selects the frame for the current state.
func (p *Player) Sprite(w World) *core.Sprite {
	if !p.Grounded(w) {
		return p.sheet.Airborne
	}
	first := p.AnimTimer < p.player.SpriteInterval
	if p.Crouching {
		if first {
			return p.sheet.CrouchA
		}
		return p.sheet.CrouchB
	}
	if first {
		return p.sheet.RunA
	}
	return p.sheet.RunB
}

// Render draws the runner, blinking while invulnerable.
func (p *Player) Render(dst *core.Screen, w World) {
	sp := p.Sprite(w)
	c := sp.Color
	if w.Session().Invulnerable && int(w.Clock()*blinkRate)%2 == 0 {
		c = core.ColorGray
	}
	x, y := p.Pos.Floor()
	dst.DrawSpriteColor(sp, x, y, c)
}

// Shift moves the runner vertically after a viewport change.
func (p *Player) Shift(dy float64) {
	p.Pos.Y += dy
}
