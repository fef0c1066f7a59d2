package dino

import (
	"github.com/vovakirdan/tui-dino/internal/core"
	"github.com/vovakirdan/tui-dino/internal/input"
)

// stage implements the parts of World every phase shares.
type stage struct {
	game    *Game
	session *Session
}

func (s *stage) BaseSpeed() float64    { return s.game.cfg.Speed.Base }
func (s *stage) Viewport() core.Size   { return s.game.viewport }
func (s *stage) NarrowFactor() float64 { return s.game.narrowFactor() }
func (s *stage) Input() *input.State   { return s.game.input }
func (s *stage) Session() *Session     { return s.session }
func (s *stage) Clock() float64        { return s.game.sched.Elapsed() }

// menuSpeed is the idle scroll speed behind the title.
const menuSpeed = 0.4

// MenuPhase shows the title over an idle runner and waits for a start input.
type MenuPhase struct {
	stage
	ground *Ground
	player *Player
}

func newMenu(g *Game) *MenuPhase {
	return &MenuPhase{stage: stage{game: g}}
}

func (m *MenuPhase) Name() string { return PhaseMenu }

// Speed is the idle scroll speed.
func (m *MenuPhase) Speed() float64 { return menuSpeed * m.NarrowFactor() }

func (m *MenuPhase) Setup() error {
	g := m.game
	m.session = NewSession(g.cfg)
	m.ground = NewGround(g.cfg.Ground.StripWidth, g.cfg.Ground.Height, g.viewport.W)
	m.player = NewPlayer(g.cfg, g.sheet, nil, g.viewport)
	return nil
}

func (m *MenuPhase) Update(dt float64) {
	if m.Input().IsStarting() {
		m.game.StartRun()
		return
	}
	m.ground.Update(dt, m)
	m.player.AnimTimer += dt * m.Speed()
	if iv := m.game.cfg.Player.SpriteInterval; m.player.AnimTimer >= 2*iv {
		m.player.AnimTimer -= 2 * iv
	}
	m.game.sched.Invalidate()
}

func (m *MenuPhase) Render(dst *core.Screen) {
	dst.Clear()
	m.ground.Render(dst, m)
	m.player.Render(dst, m)

	title := m.game.sheet.Title
	vp := m.Viewport()
	ty := core.Max(1, vp.H/4)
	dst.DrawSprite(title, (vp.W-title.W)/2, ty)

	dst.DrawTextCentered(ty+title.H+2, "Press SPACE to start")
	dst.DrawTextCentered(ty+title.H+3, "↑/space jump   ↓ crouch   q quit")
	if best := m.game.Best(); best > 0 {
		dst.DrawTextRight(vp.W-2, 0, "HI "+FormatScore(float64(best)), core.ColorGray)
	}
}

// Relayout moves the idle runner to the new ground row.
func (m *MenuPhase) Relayout(_, vp core.Size) {
	m.ground.Fit(vp.W)
	m.player.Pos.Y = m.player.groundHeightFor(vp, false)
}
