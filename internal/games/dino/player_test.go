package dino

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-dino/internal/audio"
	"github.com/vovakirdan/tui-dino/internal/config"
	"github.com/vovakirdan/tui-dino/internal/input"
)

func newTestPlayer(w *fakeWorld, sfx audio.Player) *Player {
	return NewPlayer(config.DefaultDinoConfig(), NewSpriteSheet(), sfx, w.vp)
}

// tick runs one player step and ages the input edges.
func tick(p *Player, w *fakeWorld) {
	p.Update(stepDt, w)
	w.in.Update()
	w.clock += stepDt
}

func TestPlayerStartsGrounded(t *testing.T) {
	w := newFakeWorld()
	p := newTestPlayer(w, nil)

	assert.True(t, p.Grounded(w))
	assert.Equal(t, float64(24-2-4), p.Pos.Y)
	assert.Same(t, p.sheet.RunA, p.Sprite(w))
}

func TestPlayerJumpArc(t *testing.T) {
	w := newFakeWorld()
	sfx := &recordingAudio{}
	p := newTestPlayer(w, sfx)
	ground := p.GroundHeight(w)

	w.in.KeyDown(input.KeySpace)
	tick(p, w)
	w.in.KeyUp(input.KeySpace)

	require.Less(t, p.Vel.Y, 0.0)
	assert.False(t, p.Grounded(w))
	assert.Equal(t, 1, sfx.count(audio.SoundJump))

	apex := ground
	steps := 0
	for !p.Grounded(w) && steps < 2000 {
		tick(p, w)
		steps++
		assert.GreaterOrEqual(t, p.Pos.Y, 0.0)
		assert.LessOrEqual(t, p.Pos.Y, ground)
		if p.Pos.Y < apex {
			apex = p.Pos.Y
		}
	}
	require.Less(t, steps, 2000, "runner never landed")
	assert.Equal(t, ground, p.Pos.Y)
	assert.Zero(t, p.Vel.Y)
	assert.Less(t, apex, ground-float64(p.sheet.CactusTall.H))
}

func TestPlayerJumpsOnlyWhenGrounded(t *testing.T) {
	w := newFakeWorld()
	sfx := &recordingAudio{}
	p := newTestPlayer(w, sfx)

	w.in.KeyDown(input.KeySpace)
	tick(p, w)
	w.in.KeyUp(input.KeySpace)
	for i := 0; i < 10; i++ {
		tick(p, w)
	}
	require.False(t, p.Grounded(w))
	vel := p.Vel.Y

	w.in.KeyDown(input.KeyArrowUp)
	tick(p, w)

	assert.Equal(t, 1, sfx.count(audio.SoundJump))
	assert.InDelta(t, vel+p.physics.Gravity, p.Vel.Y, 1e-9)
}

func TestPlayerHeldKeyDoesNotRejump(t *testing.T) {
	w := newFakeWorld()
	sfx := &recordingAudio{}
	p := newTestPlayer(w, sfx)

	w.in.KeyDown(input.KeySpace)
	for i := 0; i < 2000 && (i == 0 || !p.Grounded(w)); i++ {
		tick(p, w)
	}
	require.True(t, p.Grounded(w))
	for i := 0; i < 10; i++ {
		tick(p, w)
	}

	assert.Equal(t, 1, sfx.count(audio.SoundJump))
	assert.True(t, p.Grounded(w))
}

func TestPlayerCrouch(t *testing.T) {
	w := newFakeWorld()
	p := newTestPlayer(w, nil)
	standing := p.GroundHeight(w)

	w.in.KeyDown(input.KeyArrowDown)
	tick(p, w)

	assert.True(t, p.Crouching)
	assert.True(t, p.Grounded(w))
	assert.Equal(t, float64(24-2-2), p.Pos.Y)
	assert.Equal(t, p.sheet.CrouchA.H, p.Sprite(w).H)

	w.in.KeyUp(input.KeyArrowDown)
	tick(p, w)

	assert.False(t, p.Crouching)
	assert.Equal(t, standing, p.Pos.Y)
	assert.True(t, p.Grounded(w))
}

func TestPlayerJumpOutOfCrouch(t *testing.T) {
	w := newFakeWorld()
	p := newTestPlayer(w, nil)

	w.in.KeyDown(input.KeyArrowDown)
	tick(p, w)
	require.True(t, p.Crouching)

	w.in.KeyUp(input.KeyArrowDown)
	w.in.KeyDown(input.KeySpace)
	tick(p, w)

	assert.False(t, p.Crouching)
	assert.Less(t, p.Vel.Y, 0.0)
}

func TestPlayerFastFall(t *testing.T) {
	run := func(crouch bool) int {
		w := newFakeWorld()
		p := newTestPlayer(w, nil)
		w.in.KeyDown(input.KeySpace)
		tick(p, w)
		w.in.KeyUp(input.KeySpace)
		for i := 0; i < 60; i++ {
			tick(p, w)
		}
		if crouch {
			w.in.KeyDown(input.KeyS)
		}
		steps := 0
		for !p.Grounded(w) && steps < 2000 {
			tick(p, w)
			steps++
		}
		return steps
	}

	assert.Less(t, run(true), run(false))
}

func TestPlayerFastFallIgnoresNarrowFactor(t *testing.T) {
	w := newFakeWorld()
	w.narrow = 0.75
	p := newTestPlayer(w, nil)

	w.in.KeyDown(input.KeySpace)
	tick(p, w)
	w.in.KeyUp(input.KeySpace)
	for i := 0; i < 2000 && p.Vel.Y < 0; i++ {
		tick(p, w)
	}
	require.False(t, p.Grounded(w))
	vel := p.Vel.Y

	w.in.KeyDown(input.KeyArrowDown)
	tick(p, w)

	expected := vel + p.physics.FallForce*w.narrow + p.physics.FallForce
	assert.InDelta(t, expected, p.Vel.Y, 1e-9)
	assert.False(t, p.Crouching)
}

func TestPlayerClampsAtTop(t *testing.T) {
	w := newFakeWorld()
	w.vp.H = 8
	p := newTestPlayer(w, nil)

	w.in.KeyDown(input.KeySpace)
	tick(p, w)
	w.in.KeyUp(input.KeySpace)
	for i := 0; i < 400; i++ {
		tick(p, w)
		require.GreaterOrEqual(t, p.Pos.Y, 0.0)
	}
	assert.True(t, p.Grounded(w))
}

func TestPlayerAnimation(t *testing.T) {
	w := newFakeWorld()
	p := newTestPlayer(w, nil)

	seen := map[string]bool{}
	for i := 0; i < 240; i++ {
		tick(p, w)
		seen[p.Sprite(w).Name] = true
	}
	assert.True(t, seen["run-a"])
	assert.True(t, seen["run-b"])
	assert.Less(t, p.AnimTimer, 2*p.player.SpriteInterval)
}

func TestPlayerStaysInBoundsUnderRandomInput(t *testing.T) {
	keys := []input.Key{input.KeySpace, input.KeyArrowUp, input.KeyW, input.KeyArrowDown, input.KeyS}
	buttons := []input.MouseButton{input.MouseLeft, input.MouseRight}

	for seed := int64(1); seed <= 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		w := newFakeWorld()
		w.vp.H = 8 + rng.Intn(24)
		if rng.Intn(2) == 0 {
			w.narrow = 0.75
		}
		p := newTestPlayer(w, nil)

		for i := 0; i < 3000; i++ {
			switch r := rng.Intn(10); {
			case r < 3:
				w.in.KeyDown(keys[rng.Intn(len(keys))])
			case r < 6:
				w.in.KeyUp(keys[rng.Intn(len(keys))])
			case r == 6:
				w.in.MouseDown(buttons[rng.Intn(len(buttons))])
			case r == 7:
				w.in.MouseUp(buttons[rng.Intn(len(buttons))])
			}

			p.Update(rng.Float64()/30, w)
			w.in.Update()

			if p.Pos.Y < 0 || p.Pos.Y > p.GroundHeight(w) {
				t.Fatalf("seed %d step %d: y = %g outside [0, %g] (crouching %v)",
					seed, i, p.Pos.Y, p.GroundHeight(w), p.Crouching)
			}
		}
	}
}
