package dino

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-dino/internal/config"
	"github.com/vovakirdan/tui-dino/internal/core"
)

func TestSpriteSheetValidate(t *testing.T) {
	sheet := NewSpriteSheet()
	require.NoError(t, sheet.Validate())

	broken := NewSpriteSheet()
	broken.RunB = core.NewSprite("run-b", core.ColorWhite, "██")
	assert.Error(t, broken.Validate())

	empty := NewSpriteSheet()
	empty.BirdA = core.NewSprite("bird-a", core.ColorWhite, "    ", "    ")
	assert.Error(t, empty.Validate())

	tall := NewSpriteSheet()
	tall.CrouchA = tall.RunA
	tall.CrouchB = tall.RunB
	assert.Error(t, tall.Validate())
}

func TestGroundStripTilesWholePeriods(t *testing.T) {
	tests := []struct {
		period, minWidth, rows int
		wantW                  int
	}{
		{64, 80, 2, 128},
		{64, 64, 2, 64},
		{64, 10, 1, 64},
		{16, 100, 3, 112},
	}
	for _, tt := range tests {
		sp := NewGroundStrip(tt.period, tt.minWidth, tt.rows)
		assert.Equal(t, tt.wantW, sp.W)
		assert.Equal(t, tt.rows, sp.H)
		for x := 0; x < sp.W; x++ {
			assert.Equal(t, sp.At(x%tt.period, 0), sp.At(x, 0))
		}
	}
}

func TestGroundWrapsAndRenders(t *testing.T) {
	w := newFakeWorld()
	g := NewGround(64, 2, w.vp.W)
	require.Equal(t, 128, g.StripWidth())

	for i := 0; i < 14; i++ {
		g.Update(0.5, w)
	}
	assert.InDelta(t, 12.0, g.Pos.X, 1e-9)
	assert.Equal(t, 20.0, g.Vel.X)

	for _, offset := range []float64{0, 12, 100, 127} {
		g.Pos.X = offset
		dst, err := core.NewScreen(w.vp.W, w.vp.H)
		require.NoError(t, err)
		g.Render(dst, w)

		top := groundTop(w.vp, 2)
		for row := 0; row < 2; row++ {
			for x := 0; x < w.vp.W; x++ {
				want := g.strip.At((int(offset)+x)%g.StripWidth(), row)
				assert.Equal(t, want, dst.Get(x, top+row), "offset %v x %d row %d", offset, x, row)
			}
		}
	}
}

func TestGroundFitKeepsOffsetInStrip(t *testing.T) {
	g := NewGround(64, 2, 200)
	g.Pos.X = 150
	g.Fit(40)
	assert.Equal(t, 64, g.StripWidth())
	assert.Less(t, g.Pos.X, 64.0)
}

func newTestSpawner(seed int64) *Spawner {
	cfg := config.DefaultDinoConfig()
	return NewSpawner(cfg, NewSpriteSheet(), rand.New(rand.NewSource(seed)), config.NewDifficultyManager(cfg.Difficulty))
}

func TestSpawnerKeepsMinimumGap(t *testing.T) {
	w := newFakeWorld()
	w.speed = 2
	s := newTestSpawner(1)
	minGap := config.DefaultDinoConfig().Obstacles.MinGap

	for i := 0; i < 240*30; i++ {
		s.Update(stepDt, w)
		obs := s.Obstacles()
		for j := 1; j < len(obs); j++ {
			// Floored positions may lose one cell.
			require.LessOrEqual(t, obs[j-1].Bounds().Right()+minGap, obs[j].Bounds().X+1)
		}
	}
	assert.NotEmpty(t, s.Obstacles())
}

func TestSpawnerCullsOffscreen(t *testing.T) {
	w := newFakeWorld()
	s := newTestSpawner(1)
	sheet := NewSpriteSheet()

	s.obstacles = append(s.obstacles,
		NewCactus("cactus-small", sheet.CactusSmall, -2.9, 22),
		NewCactus("cactus-tall", sheet.CactusTall, 40, 22),
	)
	w.speed = 1
	s.Update(0.01, w) // moves 0.2 cells

	require.Len(t, s.Obstacles(), 1)
	assert.Equal(t, "cactus-tall", s.Obstacles()[0].Kind())
}

func TestSpawnerSkipsBirdsBeforeMinScore(t *testing.T) {
	w := newFakeWorld()
	w.speed = 3
	s := newTestSpawner(3)

	kinds := map[string]bool{}
	for i := 0; i < 240*60; i++ {
		s.Update(stepDt, w)
		for _, o := range s.Obstacles() {
			kinds[o.Kind()] = true
		}
	}
	assert.False(t, kinds["bird-low"])
	assert.False(t, kinds["bird-high"])

	w.session.RawScore = 1000
	birds := false
	for i := 0; i < 240*120 && !birds; i++ {
		s.Update(stepDt, w)
		for _, o := range s.Obstacles() {
			if _, ok := o.(*Bird); ok {
				birds = true
			}
		}
	}
	assert.True(t, birds)
}

func TestSpawnerDeterministic(t *testing.T) {
	run := func() []string {
		w := newFakeWorld()
		w.speed = 2
		s := newTestSpawner(42)
		var seq []string
		last := -1
		for i := 0; i < 240*20; i++ {
			s.Update(stepDt, w)
			obs := s.Obstacles()
			if n := len(obs); n > 0 && n != last {
				seq = append(seq, obs[n-1].Kind())
			}
			last = len(obs)
		}
		return seq
	}
	assert.Equal(t, run(), run())
}

func TestBirdHeights(t *testing.T) {
	sheet := NewSpriteSheet()
	top := 22

	low, err := Variants.Create("bird-low")
	require.NoError(t, err)
	high, err := Variants.Create("bird-high")
	require.NoError(t, err)

	standing := core.V(4, float64(top-sheet.RunA.H))
	crouching := core.V(4, float64(top-sheet.CrouchA.H))

	lo := low.Spawn(sheet, 8, top)
	hi := high.Spawn(sheet, 8, top)

	assert.True(t, core.Collides(standing, sheet.RunA, lo.Position(), lo.Sprite()))
	assert.True(t, core.Collides(crouching, sheet.CrouchA, lo.Position(), lo.Sprite()))
	assert.True(t, core.Collides(standing, sheet.RunA, hi.Position(), hi.Sprite()))
	assert.False(t, core.Collides(crouching, sheet.CrouchA, hi.Position(), hi.Sprite()))
}

func TestBirdFlaps(t *testing.T) {
	w := newFakeWorld()
	sheet := NewSpriteSheet()
	b := NewBird("bird-low", sheet.BirdA, sheet.BirdB, 40, 10)

	assert.Same(t, sheet.BirdA, b.Sprite())
	b.Update(flapInterval+0.01, w)
	assert.Same(t, sheet.BirdB, b.Sprite())
	assert.Less(t, b.Pos.X, 40.0)
}
