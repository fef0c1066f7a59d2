package dino

import (
	"github.com/vovakirdan/tui-dino/internal/core"
	"github.com/vovakirdan/tui-dino/internal/registry"
)

// Obstacle is anything the runner must avoid.
type Obstacle interface {
	Actor

	// Kind names the variant that spawned the obstacle.
	Kind() string

	// Sprite is the frame used for rendering and collision.
	Sprite() *core.Sprite

	// Position is the top-left corner.
	Position() core.Vec2

	// Bounds is the sprite rectangle at the current position.
	Bounds() core.Rect

	// IsOutOfScreen reports that the right edge has passed the left edge
	// of the viewport.
	IsOutOfScreen() bool

	// Shift moves the obstacle vertically after a viewport change.
	Shift(dy float64)
}

// scroll moves e left at world speed.
func scroll(e *Entity, dt float64, w World) {
	e.Vel.X = -w.BaseSpeed() * w.Speed()
	e.Pos.X += e.Vel.X * dt
}

// Cactus is a static ground obstacle.
type Cactus struct {
	Entity
	kind   string
	sprite *core.Sprite
}

// NewCactus places a cactus with its base on the ground row.
func NewCactus(kind string, sp *core.Sprite, x float64, top int) *Cactus {
	c := &Cactus{kind: kind, sprite: sp}
	c.Pos = core.V(x, float64(top-sp.H))
	return c
}

func (c *Cactus) Kind() string         { return c.kind }
func (c *Cactus) Sprite() *core.Sprite { return c.sprite }
func (c *Cactus) Bounds() core.Rect    { return c.sprite.Bounds(c.Pos) }
func (c *Cactus) Shift(dy float64)     { c.Pos.Y += dy }

func (c *Cactus) IsOutOfScreen() bool {
	return c.Pos.X+float64(c.sprite.W) <= 0
}

func (c *Cactus) Update(dt float64, w World) {
	scroll(&c.Entity, dt, w)
}

func (c *Cactus) Render(dst *core.Screen, _ World) {
	x, y := c.Pos.Floor()
	dst.DrawSprite(c.sprite, x, y)
}

// flapInterval is the time each bird frame is shown, in seconds.
const flapInterval = 0.18

// Bird is a flying obstacle that flaps between two frames.
type Bird struct {
	Entity
	kind   string
	frames [2]*core.Sprite
	frame  int
	flap   float64
}

// NewBird places a bird with its top row at y.
func NewBird(kind string, a, b *core.Sprite, x float64, y int) *Bird {
	bd := &Bird{kind: kind, frames: [2]*core.Sprite{a, b}}
	bd.Pos = core.V(x, float64(y))
	return bd
}

func (b *Bird) Kind() string         { return b.kind }
func (b *Bird) Sprite() *core.Sprite { return b.frames[b.frame] }
func (b *Bird) Bounds() core.Rect    { return b.Sprite().Bounds(b.Pos) }
func (b *Bird) Shift(dy float64)     { b.Pos.Y += dy }

func (b *Bird) IsOutOfScreen() bool {
	return b.Pos.X+float64(b.Sprite().W) <= 0
}

func (b *Bird) Update(dt float64, w World) {
	scroll(&b.Entity, dt, w)
	b.flap += dt
	for b.flap >= flapInterval {
		b.flap -= flapInterval
		b.frame = 1 - b.frame
	}
}

func (b *Bird) Render(dst *core.Screen, _ World) {
	x, y := b.Pos.Floor()
	dst.DrawSprite(b.Sprite(), x, y)
}

// Variant describes one obstacle kind in the weighted spawn set.
type Variant struct {
	ID    string
	Bird  bool
	Spawn func(sheet *SpriteSheet, x float64, top int) Obstacle
}

// Variants is the weighted obstacle variant set.
var Variants = registry.New[Variant]()

func init() {
	Variants.Register("cactus-small", 4, func() Variant {
		return Variant{ID: "cactus-small", Spawn: func(s *SpriteSheet, x float64, top int) Obstacle {
			return NewCactus("cactus-small", s.CactusSmall, x, top)
		}}
	})
	Variants.Register("cactus-tall", 3, func() Variant {
		return Variant{ID: "cactus-tall", Spawn: func(s *SpriteSheet, x float64, top int) Obstacle {
			return NewCactus("cactus-tall", s.CactusTall, x, top)
		}}
	})
	Variants.Register("cactus-cluster", 2, func() Variant {
		return Variant{ID: "cactus-cluster", Spawn: func(s *SpriteSheet, x float64, top int) Obstacle {
			return NewCactus("cactus-cluster", s.CactusCluster, x, top)
		}}
	})
	// Low birds must be jumped; they reach the crouching runner's head.
	Variants.Register("bird-low", 1, func() Variant {
		return Variant{ID: "bird-low", Bird: true, Spawn: func(s *SpriteSheet, x float64, top int) Obstacle {
			return NewBird("bird-low", s.BirdA, s.BirdB, x, top-s.RunA.H+1)
		}}
	})
	// High birds pass over a crouching runner.
	Variants.Register("bird-high", 1, func() Variant {
		return Variant{ID: "bird-high", Bird: true, Spawn: func(s *SpriteSheet, x float64, top int) Obstacle {
			return NewBird("bird-high", s.BirdA, s.BirdB, x, top-s.RunA.H-1)
		}}
	})
}
