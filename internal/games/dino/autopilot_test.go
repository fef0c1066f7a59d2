package dino

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-dino/internal/config"
	"github.com/vovakirdan/tui-dino/internal/input"
)

func frontOf(p *PlayPhase) float64 {
	return p.player.Pos.X + float64(p.player.Sprite(p).W)
}

func TestAutopilotIdleOnClearPath(t *testing.T) {
	g, _ := newTestGame(t)
	run := startRun(t, g)

	DefaultAutopilot().Drive(run)
	assert.False(t, g.Input().IsKeyDown(input.KeySpace))
	assert.False(t, g.Input().IsKeyDown(input.KeyArrowDown))
}

func TestAutopilotJumpsCactus(t *testing.T) {
	g, _ := newTestGame(t)
	run := startRun(t, g)

	top := groundTop(run.Viewport(), g.cfg.Ground.Height)
	run.spawner.obstacles = append(run.spawner.obstacles,
		NewCactus("cactus-small", g.sheet.CactusSmall, frontOf(run), top))

	DefaultAutopilot().Drive(run)
	require.True(t, g.Input().IsKeyDown(input.KeySpace))

	step(g, 1)
	assert.Less(t, run.player.Vel.Y, 0.0)

	// Airborne: the key is let go so the next landing can jump again.
	DefaultAutopilot().Drive(run)
	assert.False(t, g.Input().IsKeyDown(input.KeySpace))
}

func TestAutopilotDucksHighBird(t *testing.T) {
	g, _ := newTestGame(t)
	run := startRun(t, g)

	top := groundTop(run.Viewport(), g.cfg.Ground.Height)
	sheet := g.sheet
	run.spawner.obstacles = append(run.spawner.obstacles,
		NewBird("bird-high", sheet.BirdA, sheet.BirdB, frontOf(run), top-sheet.RunA.H-1))

	DefaultAutopilot().Drive(run)
	require.True(t, g.Input().IsKeyDown(input.KeyArrowDown))
	assert.False(t, g.Input().IsKeyDown(input.KeySpace))

	step(g, 1)
	assert.True(t, run.player.Crouching)
}

func TestAutopilotIsDeterministic(t *testing.T) {
	play := func() (string, int) {
		g, _ := newTestGame(t, func(c *config.DinoConfig) { c.GodMode = true })
		run := startRun(t, g)
		pilot := DefaultAutopilot()
		for i := 0; i < 240*20; i++ {
			pilot.Drive(run)
			g.Scheduler().Advance(stepDt, nil)
		}
		return run.Session().ScoreText(), run.Session().Lives
	}

	score1, lives1 := play()
	score2, lives2 := play()
	assert.Equal(t, score1, score2)
	assert.Equal(t, lives1, lives2)
	assert.NotEqual(t, "0000", score1)
}
