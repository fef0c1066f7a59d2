package dino

import (
	"math/rand"

	"github.com/vovakirdan/tui-dino/internal/config"
	"github.com/vovakirdan/tui-dino/internal/core"
)

// Spawner owns the live obstacle sequence. Spawn order is left-to-right
// order on screen.
type Spawner struct {
	obstacles []Obstacle

	distance  float64 // Cells scrolled since the last spawn
	gap       float64 // Free cells required after the last obstacle
	lastWidth int

	rng        *rand.Rand
	sheet      *SpriteSheet
	cfg        config.DinoObstacles
	groundRows int
	difficulty *config.DifficultyManager
	clock      float64
}

// NewSpawner creates an empty spawner.
func NewSpawner(cfg config.DinoConfig, sheet *SpriteSheet, rng *rand.Rand, diff *config.DifficultyManager) *Spawner {
	s := &Spawner{
		obstacles:  make([]Obstacle, 0, 8),
		rng:        rng,
		sheet:      sheet,
		cfg:        cfg.Obstacles,
		groundRows: cfg.Ground.Height,
		difficulty: diff,
	}
	s.gap = s.nextGap(0)
	return s
}

// Obstacles returns the live obstacles in spawn order.
func (s *Spawner) Obstacles() []Obstacle {
	return s.obstacles
}

// nextGap draws the free distance that must follow the next obstacle.
func (s *Spawner) nextGap(score int) float64 {
	minGap := s.cfg.MinGap
	maxGap := s.cfg.MaxGap
	if s.difficulty != nil {
		maxGap = s.difficulty.MaxGap(minGap, maxGap, score, s.clock)
	}
	if maxGap <= minGap {
		return float64(minGap)
	}
	return float64(minGap + s.rng.Intn(maxGap-minGap+1))
}

// Update spawns, scrolls and culls obstacles for one step.
func (s *Spawner) Update(dt float64, w World) {
	s.clock += dt
	s.distance += w.Speed() * w.BaseSpeed() * dt

	if s.distance >= float64(s.lastWidth)+s.gap {
		s.trySpawn(w)
	}

	for _, o := range s.obstacles {
		o.Update(dt, w)
	}

	// Reverse order keeps indices of unvisited obstacles valid.
	for i := len(s.obstacles) - 1; i >= 0; i-- {
		if s.obstacles[i].IsOutOfScreen() {
			s.obstacles = append(s.obstacles[:i], s.obstacles[i+1:]...)
		}
	}
}

// trySpawn appends an obstacle at the right edge of the viewport unless it
// would come within the minimum gap of the previous one.
func (s *Spawner) trySpawn(w World) {
	vp := w.Viewport()
	x := float64(vp.W)

	if n := len(s.obstacles); n > 0 {
		last := s.obstacles[n-1].Bounds()
		if float64(last.Right()+s.cfg.MinGap) > x {
			return
		}
	}

	score := w.Session().Score()
	id, ok := Variants.Pick(s.rng, func(id string) bool {
		v, err := Variants.Create(id)
		if err != nil {
			return false
		}
		return !v.Bird || score >= s.cfg.BirdMinScore
	})
	if !ok {
		return
	}
	v, err := Variants.Create(id)
	if err != nil {
		return
	}

	o := v.Spawn(s.sheet, x, groundTop(vp, s.groundRows))
	s.obstacles = append(s.obstacles, o)
	s.lastWidth = o.Sprite().W
	s.distance = 0
	s.gap = s.nextGap(score)
}

// Render draws every obstacle.
func (s *Spawner) Render(dst *core.Screen, w World) {
	for _, o := range s.obstacles {
		o.Render(dst, w)
	}
}

// Shift moves every obstacle vertically after a viewport change.
func (s *Spawner) Shift(dy float64) {
	for _, o := range s.obstacles {
		o.Shift(dy)
	}
}
