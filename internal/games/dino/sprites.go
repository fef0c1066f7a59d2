package dino

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-dino/internal/core"
)

// SpriteSheet holds every sprite the runner draws.
type SpriteSheet struct {
	RunA, RunB       *core.Sprite
	CrouchA, CrouchB *core.Sprite
	Airborne         *core.Sprite

	CactusSmall   *core.Sprite
	CactusTall    *core.Sprite
	CactusCluster *core.Sprite
	BirdA, BirdB  *core.Sprite

	Title *core.Sprite
}

// NewSpriteSheet builds the built-in sprites.
func NewSpriteSheet() *SpriteSheet {
	return &SpriteSheet{
		RunA: core.NewSprite("run-a", core.ColorBrightWhite,
			"    ▄█▄",
			"█  ███▀",
			"▀████▀ ",
			" ▌  ▐  ",
		),
		RunB: core.NewSprite("run-b", core.ColorBrightWhite,
			"    ▄█▄",
			"█  ███▀",
			"▀████▀ ",
			"  ▐ ▌  ",
		),
		Airborne: core.NewSprite("airborne", core.ColorBrightWhite,
			"    ▄█▄",
			"█  ███▀",
			"▀████▀ ",
			" ▀  ▀  ",
		),
		CrouchA: core.NewSprite("crouch-a", core.ColorBrightWhite,
			"█▄▄▄███▄▀",
			" ▌  ▐    ",
		),
		CrouchB: core.NewSprite("crouch-b", core.ColorBrightWhite,
			"█▄▄▄███▄▀",
			"  ▐ ▌    ",
		),
		CactusSmall: core.NewSprite("cactus-small", core.ColorGreen,
			"▄█ ",
			" █▀",
			" █ ",
		),
		CactusTall: core.NewSprite("cactus-tall", core.ColorGreen,
			" █ ▄",
			"▀█▀ ",
			" █  ",
			" █  ",
		),
		CactusCluster: core.NewSprite("cactus-cluster", core.ColorBrightGreen,
			"▄█ █▄",
			" █▄█ ",
			" █ █ ",
		),
		BirdA: core.NewSprite("bird-a", core.ColorYellow,
			"  ▄ ",
			"▀█▀▀",
		),
		BirdB: core.NewSprite("bird-b", core.ColorYellow,
			"▀█▀▀",
			"  ▀ ",
		),
		Title: core.NewSprite("title", core.ColorBrightYellow,
			"█▀▄ █ █▄ █ █▀█",
			"█▄▀ █ █ ▀█ █▄█",
		),
	}
}

// Validate checks that the sheet can drive a run: every sprite is visible
// and each animation uses frames of one size.
func (s *SpriteSheet) Validate() error {
	all := []*core.Sprite{
		s.RunA, s.RunB, s.CrouchA, s.CrouchB, s.Airborne,
		s.CactusSmall, s.CactusTall, s.CactusCluster, s.BirdA, s.BirdB, s.Title,
	}
	for i, sp := range all {
		if sp == nil {
			return fmt.Errorf("dino: sprite %d missing", i)
		}
		if sp.Coverage() == 0 {
			return fmt.Errorf("dino: sprite %s is empty", sp.Name)
		}
	}

	pairs := [][2]*core.Sprite{
		{s.RunA, s.RunB}, {s.RunA, s.Airborne}, {s.CrouchA, s.CrouchB}, {s.BirdA, s.BirdB},
	}
	for _, p := range pairs {
		if p[0].W != p[1].W || p[0].H != p[1].H {
			return fmt.Errorf("dino: sprites %s and %s differ in size", p[0].Name, p[1].Name)
		}
	}
	if s.CrouchA.H >= s.RunA.H {
		return fmt.Errorf("dino: crouch sprite must be shorter than the standing sprite")
	}
	return nil
}

// groundPattern is one period of the ground strip, top row then texture rows.
var groundPattern = []string{
	"════════════════════╧═══════════════════════════════╧═══════════",
	"  .     ˙    ,          .  ˙        ,    .      ˙         .     ",
}

// NewGroundStrip builds a ground strip of exactly rows rows that repeats a
// period-wide pattern and is at least minWidth wide. The width is always a
// whole number of periods so the strip loops seamlessly.
func NewGroundStrip(period, minWidth, rows int) *core.Sprite {
	if period <= 0 {
		period = len([]rune(groundPattern[0]))
	}
	if rows <= 0 {
		rows = 1
	}
	periods := 1
	if minWidth > period {
		periods = (minWidth + period - 1) / period
	}

	lines := make([]string, rows)
	for y := range lines {
		src := []rune(groundPattern[core.Min(y, len(groundPattern)-1)])
		row := make([]rune, period)
		for x := range row {
			row[x] = src[x%len(src)]
		}
		lines[y] = strings.Repeat(string(row), periods)
	}
	return core.NewSprite("ground", core.ColorGray, lines...)
}
