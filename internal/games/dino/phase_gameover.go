package dino

import (
	"github.com/vovakirdan/tui-dino/internal/audio"
	"github.com/vovakirdan/tui-dino/internal/core"
)

// restartDelay ignores start inputs right after a run ends, so a jump
// pressed at the moment of death does not restart immediately.
const restartDelay = 0.4

// GameOverPhase shows the frozen last frame of a run with its final score.
type GameOverPhase struct {
	stage
	ground    *Ground
	player    *Player
	obstacles []Obstacle
	score     string
	waited    float64
}

// newGameOver carries the final score and last positions forward from a
// finished run. The run's other state is dropped.
func newGameOver(g *Game, run *PlayPhase) *GameOverPhase {
	return &GameOverPhase{
		stage:     stage{game: g, session: run.session},
		ground:    run.ground,
		player:    run.player,
		obstacles: run.spawner.Obstacles(),
		score:     run.session.ScoreText(),
	}
}

func (o *GameOverPhase) Name() string { return PhaseGameOver }

// Speed is zero: the frame is frozen.
func (o *GameOverPhase) Speed() float64 { return 0 }

// ScoreText returns the final score, zero-padded to four digits.
func (o *GameOverPhase) ScoreText() string { return o.score }

func (o *GameOverPhase) Setup() error {
	o.game.recordScore(o.session.Score())
	o.game.sfx.Play(audio.SoundGameOver)
	o.game.logger.Info("run ended", "score", o.score, "best", o.game.Best())
	return nil
}

func (o *GameOverPhase) Update(dt float64) {
	o.waited += dt
	if o.waited < restartDelay {
		return
	}
	in := o.Input()
	switch {
	case in.IsBack():
		o.game.ToMenu()
	case in.IsStarting():
		o.game.StartRun()
	}
}

func (o *GameOverPhase) Render(dst *core.Screen) {
	dst.Clear()
	o.ground.Render(dst, o)
	for _, ob := range o.obstacles {
		ob.Render(dst, o)
	}
	o.player.Render(dst, o)
	drawHUD(dst, o.session, o.game.Best(), 0)
	drawCenteredMessage(dst, "G A M E   O V E R",
		"Score: "+o.score,
		"SPACE/R restart  ·  ESC menu",
	)
}

// Relayout keeps the frozen frame on the ground after a viewport change.
func (o *GameOverPhase) Relayout(old, vp core.Size) {
	dy := float64(groundTop(vp, o.game.cfg.Ground.Height) - groundTop(old, o.game.cfg.Ground.Height))
	o.ground.Fit(vp.W)
	o.player.Shift(dy)
	for _, ob := range o.obstacles {
		ob.Shift(dy)
	}
}
