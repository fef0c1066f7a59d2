package dino

import (
	"github.com/vovakirdan/tui-dino/internal/core"
)

// Ground is the horizontally wrapping floor strip.
type Ground struct {
	Entity
	strip  *core.Sprite
	period int
	rows   int
}

// NewGround creates a ground strip covering at least width columns.
func NewGround(period, rows, width int) *Ground {
	g := &Ground{period: period, rows: rows}
	g.Fit(width)
	return g
}

// Fit rebuilds the strip for a new viewport width. The scroll offset is
// kept within the new strip.
func (g *Ground) Fit(width int) {
	g.strip = NewGroundStrip(g.period, width, g.rows)
	g.wrap()
}

// StripWidth returns the width of the repeating strip.
func (g *Ground) StripWidth() int { return g.strip.W }

// Rows returns the strip height.
func (g *Ground) Rows() int { return g.strip.H }

// Update scrolls the strip at world speed.
func (g *Ground) Update(dt float64, w World) {
	g.Vel.X = w.BaseSpeed() * w.Speed()
	g.Pos.X += g.Vel.X * dt
	g.wrap()
}

func (g *Ground) wrap() {
	sw := float64(g.strip.W)
	for g.Pos.X >= sw {
		g.Pos.X -= sw
	}
	if g.Pos.X < 0 {
		g.Pos.X = 0
	}
}

// Render draws the strip in two blits: the part from the scroll offset to
// the strip end, then the wrapped start of the strip.
func (g *Ground) Render(dst *core.Screen, w World) {
	vp := w.Viewport()
	y := groundTop(vp, g.rows)
	offset := int(g.Pos.X)
	sw := g.strip.W

	visible := core.Min(sw-offset, vp.W)
	dst.DrawSpriteRegion(g.strip, offset, visible, 0, y, g.strip.Color)
	if visible < vp.W {
		dst.DrawSpriteRegion(g.strip, 0, vp.W-visible, visible, y, g.strip.Color)
	}
}
