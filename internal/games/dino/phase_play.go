package dino

import (
	"github.com/vovakirdan/tui-dino/internal/audio"
	"github.com/vovakirdan/tui-dino/internal/config"
	"github.com/vovakirdan/tui-dino/internal/core"
)

// PlayPhase runs one life-limited run.
type PlayPhase struct {
	stage
	ground     *Ground
	player     *Player
	spawner    *Spawner
	difficulty *config.DifficultyManager
	ended      bool
}

func newPlay(g *Game) *PlayPhase {
	return &PlayPhase{stage: stage{game: g}}
}

func (p *PlayPhase) Name() string { return PhasePlay }

// Speed is the ramped world speed.
func (p *PlayPhase) Speed() float64 {
	return p.session.RawSpeed * p.NarrowFactor()
}

func (p *PlayPhase) Setup() error {
	g := p.game
	p.session = NewSession(g.cfg)
	p.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	p.ground = NewGround(g.cfg.Ground.StripWidth, g.cfg.Ground.Height, g.viewport.W)
	p.player = NewPlayer(g.cfg, g.sheet, g.sfx, g.viewport)
	p.spawner = NewSpawner(g.cfg, g.sheet, g.rng, p.difficulty)
	p.ended = false
	return nil
}

// Player returns the runner.
func (p *PlayPhase) Player() *Player { return p.player }

// Spawner returns the obstacle spawner.
func (p *PlayPhase) Spawner() *Spawner { return p.spawner }

// Ended reports whether the run has finished.
func (p *PlayPhase) Ended() bool { return p.ended }

// Update runs one step in fixed order: score, speed, ground, player,
// spawner with its obstacles, then collisions.
func (p *PlayPhase) Update(dt float64) {
	if p.ended {
		return
	}
	if p.Input().IsBack() {
		p.ended = true
		p.game.ToMenu()
		return
	}

	g := p.game
	s := p.session

	before := s.Score()
	if s.UpdateScore(dt, g.cfg.Score.Interval) > 0 {
		if every := g.cfg.Audio.ScoreEvery; every > 0 && s.Score()/every > before/every {
			g.sfx.Play(audio.SoundScore)
		}
	}
	s.UpdateSpeed(dt, g.cfg.Speed)

	p.ground.Update(dt, p)
	p.player.Update(dt, p)
	p.spawner.Update(dt, p)

	p.checkCollisions()
	g.sched.Invalidate()
}

// checkCollisions applies at most one hit per step.
func (p *PlayPhase) checkCollisions() {
	s := p.session
	if s.Invulnerable {
		return
	}

	sp := p.player.Sprite(p)
	for _, o := range p.spawner.Obstacles() {
		if !core.Collides(p.player.Pos, sp, o.Position(), o.Sprite()) {
			continue
		}

		_, dead := s.Hit()
		p.game.logger.Debug("hit", "obstacle", o.Kind(), "lives", s.Lives, "score", s.Score())
		if dead {
			p.ended = true
			p.game.EndRun(p)
			return
		}
		p.game.sfx.Play(audio.SoundHit)
		return
	}
}

func (p *PlayPhase) Render(dst *core.Screen) {
	dst.Clear()
	p.ground.Render(dst, p)
	p.spawner.Render(dst, p)
	p.player.Render(dst, p)
	drawHUD(dst, p.session, p.game.Best(), p.Speed())
}

// Relayout keeps every entity on the ground after a viewport change.
func (p *PlayPhase) Relayout(old, vp core.Size) {
	dy := float64(groundTop(vp, p.game.cfg.Ground.Height) - groundTop(old, p.game.cfg.Ground.Height))
	p.ground.Fit(vp.W)
	p.player.Shift(dy)
	p.spawner.Shift(dy)
}
