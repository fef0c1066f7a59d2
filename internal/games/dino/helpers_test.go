package dino

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-dino/internal/audio"
	"github.com/vovakirdan/tui-dino/internal/config"
	"github.com/vovakirdan/tui-dino/internal/core"
	"github.com/vovakirdan/tui-dino/internal/input"
)

const stepDt = 1.0 / 240

// fakeWorld is a fixed World for entity tests.
type fakeWorld struct {
	speed   float64
	base    float64
	vp      core.Size
	narrow  float64
	in      *input.State
	session *Session
	clock   float64
}

func newFakeWorld() *fakeWorld {
	cfg := config.DefaultDinoConfig()
	return &fakeWorld{
		speed:   1,
		base:    cfg.Speed.Base,
		vp:      core.Size{W: 80, H: 24},
		narrow:  1,
		in:      input.New(),
		session: NewSession(cfg),
	}
}

func (w *fakeWorld) Speed() float64        { return w.speed }
func (w *fakeWorld) BaseSpeed() float64    { return w.base }
func (w *fakeWorld) Viewport() core.Size   { return w.vp }
func (w *fakeWorld) NarrowFactor() float64 { return w.narrow }
func (w *fakeWorld) Input() *input.State   { return w.in }
func (w *fakeWorld) Session() *Session     { return w.session }
func (w *fakeWorld) Clock() float64        { return w.clock }

// recordingAudio remembers every effect played.
type recordingAudio struct {
	mu     sync.Mutex
	played []audio.SoundFX
}

func (r *recordingAudio) Play(fx audio.SoundFX) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played = append(r.played, fx)
}

func (r *recordingAudio) count(fx audio.SoundFX) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.played {
		if p == fx {
			n++
		}
	}
	return n
}

// newTestGame returns a started game with one sub-step per Advance.
func newTestGame(t *testing.T, mutate ...func(*config.DinoConfig)) (*Game, *recordingAudio) {
	t.Helper()
	cfg := config.DefaultDinoConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	sfx := &recordingAudio{}
	g, err := New(Options{
		Config:   cfg,
		Seed:     7,
		Audio:    sfx,
		Substeps: 1,
		Viewport: core.Size{W: 80, H: 24},
	})
	require.NoError(t, err)
	require.NoError(t, g.Start())
	return g, sfx
}

// step advances g by n sub-steps of stepDt.
func step(g *Game, n int) {
	for i := 0; i < n; i++ {
		g.Scheduler().Advance(stepDt, nil)
	}
}

// startRun enters the play phase and returns it.
func startRun(t *testing.T, g *Game) *PlayPhase {
	t.Helper()
	g.StartRun()
	p, ok := g.Scheduler().Phase().(*PlayPhase)
	require.True(t, ok)
	return p
}
