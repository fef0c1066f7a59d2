package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-dino/internal/core"
	"github.com/vovakirdan/tui-dino/internal/input"
)

// recordingPhase records every call the scheduler makes.
type recordingPhase struct {
	name      string
	setupErr  error
	setups    int
	steps     []float64
	renders   int
	invalidOn func(dt float64) bool
	panicOn   int
	in        *input.State
	pressSeen []bool
	sched     *Scheduler
}

func (p *recordingPhase) Name() string { return p.name }

func (p *recordingPhase) Setup() error {
	p.setups++
	return p.setupErr
}

func (p *recordingPhase) Update(dt float64) {
	p.steps = append(p.steps, dt)
	if p.in != nil {
		p.pressSeen = append(p.pressSeen, p.in.IsKeyJustPressed(input.KeySpace))
	}
	if p.panicOn > 0 && len(p.steps) == p.panicOn {
		panic("boom")
	}
	if p.invalidOn != nil && p.invalidOn(dt) && p.sched != nil {
		p.sched.Invalidate()
	}
}

func (p *recordingPhase) Render(dst *core.Screen) {
	p.renders++
	dst.DrawText(0, 0, p.name)
}

func newScreen(t *testing.T) *core.Screen {
	t.Helper()
	scr, err := core.NewScreen(10, 2)
	require.NoError(t, err)
	return scr
}

func TestSubstepsSumToFrameDelta(t *testing.T) {
	deltas := []time.Duration{0, time.Millisecond, 16 * time.Millisecond, 33 * time.Millisecond, 250 * time.Millisecond}

	for _, n := range []int{1, 3, 4, 7} {
		s := NewScheduler(nil, n, nil)
		p := &recordingPhase{name: "p"}
		require.NoError(t, s.SetPhase(p))

		now := time.Unix(0, 0)
		s.Frame(now, nil)
		var total float64
		for _, d := range deltas {
			before := s.Elapsed()
			now = now.Add(d)
			s.Frame(now, nil)
			assert.InDelta(t, d.Seconds(), s.Elapsed()-before, 1e-12, "substeps=%d delta=%v", n, d)
			total += d.Seconds()
		}
		assert.InDelta(t, total, s.Elapsed(), 1e-9)
		// One frame at start plus one per delta.
		assert.Len(t, p.steps, n*(len(deltas)+1))
	}
}

func TestEqualSubsteps(t *testing.T) {
	s := NewScheduler(nil, 4, nil)
	p := &recordingPhase{name: "p"}
	require.NoError(t, s.SetPhase(p))

	s.Advance(0.1, nil)
	require.Len(t, p.steps, 4)
	for _, dt := range p.steps {
		assert.InDelta(t, 0.025, dt, 1e-12)
	}
}

func TestBackwardsClockIsZeroDelta(t *testing.T) {
	s := NewScheduler(nil, 2, nil)
	p := &recordingPhase{name: "p"}
	require.NoError(t, s.SetPhase(p))

	now := time.Unix(10, 0)
	s.Frame(now, nil)
	s.Frame(now.Add(-time.Second), nil)

	assert.Equal(t, 0.0, s.Elapsed())
	for _, dt := range p.steps {
		assert.Equal(t, 0.0, dt)
	}
}

func TestRenderOnlyWhenDirty(t *testing.T) {
	s := NewScheduler(nil, 2, nil)
	p := &recordingPhase{name: "menu"}
	p.sched = s
	require.NoError(t, s.SetPhase(p))
	scr := newScreen(t)

	assert.True(t, s.Advance(0.016, scr), "SetPhase must trigger a redraw")
	assert.Equal(t, 1, p.renders)
	assert.False(t, s.Dirty())
	assert.Equal(t, "menu", scr.Row(0)[:4])

	assert.False(t, s.Advance(0.016, scr), "clean frame must not render")
	assert.Equal(t, 1, p.renders)

	s.Invalidate()
	assert.True(t, s.Advance(0.016, scr))
	assert.Equal(t, 2, p.renders)

	p.invalidOn = func(float64) bool { return true }
	s.Advance(0.016, scr)
	s.Advance(0.016, scr)
	assert.Equal(t, 4, p.renders)
	assert.Equal(t, int64(4), s.Stats().Renders)
}

func TestInputAgedAfterEachSubstep(t *testing.T) {
	in := input.New()
	s := NewScheduler(in, 4, nil)
	p := &recordingPhase{name: "p", in: in}
	require.NoError(t, s.SetPhase(p))

	in.KeyDown(input.KeySpace)
	s.Advance(0.1, nil)

	assert.Equal(t, []bool{true, false, false, false}, p.pressSeen)
	assert.True(t, in.IsKeyDown(input.KeySpace))
	assert.True(t, s.Dirty(), "input activity must invalidate the frame")
}

func TestSetPhaseRunsSetupFirst(t *testing.T) {
	s := NewScheduler(nil, 1, nil)
	good := &recordingPhase{name: "good"}
	require.NoError(t, s.SetPhase(good))
	assert.Equal(t, 1, good.setups)

	bad := &recordingPhase{name: "bad", setupErr: errors.New("no sprites")}
	err := s.SetPhase(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, bad.setupErr)
	assert.Same(t, good, s.Phase())

	assert.Error(t, s.SetPhase(nil))
}

func TestPanicsAreContained(t *testing.T) {
	s := NewScheduler(nil, 4, nil)
	p := &recordingPhase{name: "p", panicOn: 2}
	require.NoError(t, s.SetPhase(p))

	assert.NotPanics(t, func() { s.Advance(0.1, newScreen(t)) })
	assert.Len(t, p.steps, 4, "remaining substeps still run")
	assert.InDelta(t, 0.1, s.Elapsed(), 1e-12)
}

type panickyRender struct{ recordingPhase }

func (p *panickyRender) Render(*core.Screen) { panic("no surface") }

func TestRenderPanicContained(t *testing.T) {
	s := NewScheduler(nil, 1, nil)
	require.NoError(t, s.SetPhase(&panickyRender{recordingPhase{name: "p"}}))

	var rendered bool
	assert.NotPanics(t, func() { rendered = s.Advance(0.01, newScreen(t)) })
	assert.False(t, rendered)
	assert.False(t, s.Dirty())
}

func TestNoPhaseIsValid(t *testing.T) {
	s := NewScheduler(nil, 4, nil)
	assert.NotPanics(t, func() {
		s.Frame(time.Unix(0, 0), newScreen(t))
		s.Frame(time.Unix(1, 0), newScreen(t))
	})
	assert.InDelta(t, 1.0, s.Elapsed(), 1e-12)
}

func TestStaleGenerationRejected(t *testing.T) {
	s := NewScheduler(nil, 1, nil)

	gen := s.Arm()
	assert.True(t, s.Accept(gen))
	assert.False(t, s.Accept(gen), "a request fires once")

	stale := s.Arm()
	s.Cancel()
	assert.False(t, s.Accept(stale))

	fresh := s.Arm()
	assert.NotEqual(t, stale, fresh)
	assert.True(t, s.Accept(fresh))
}

func TestPauseResume(t *testing.T) {
	s := NewScheduler(nil, 2, nil)
	p := &recordingPhase{name: "p"}
	require.NoError(t, s.SetPhase(p))
	scr := newScreen(t)

	start := time.Unix(100, 0)
	s.Frame(start, scr)
	pending := s.Arm()

	s.Pause()
	assert.False(t, s.Visible())
	assert.False(t, s.Accept(pending), "pause cancels the pending request")

	// An hour passes while hidden.
	back := start.Add(time.Hour)
	gen := s.Resume(back)
	assert.True(t, s.Visible())
	assert.True(t, s.Dirty())
	require.True(t, s.Accept(gen))

	before := s.Elapsed()
	rendered := s.Frame(back.Add(20*time.Millisecond), scr)
	assert.True(t, rendered)
	assert.InDelta(t, 0.02, s.Elapsed()-before, 1e-9, "no catch-up delta after resume")
}

func TestResetClock(t *testing.T) {
	s := NewScheduler(nil, 2, nil)
	p := &recordingPhase{name: "p"}
	require.NoError(t, s.SetPhase(p))
	scr := newScreen(t)

	start := time.Unix(100, 0)
	s.Frame(start, scr)
	s.Frame(start.Add(16*time.Millisecond), scr)
	before := s.Elapsed()

	// Frames were skipped for ten seconds without a pause.
	s.ResetClock()
	assert.True(t, s.Dirty())
	assert.True(t, s.Visible())
	s.Frame(start.Add(10*time.Second), scr)
	assert.Equal(t, before, s.Elapsed(), "first frame after a reset has zero delta")

	s.Frame(start.Add(10*time.Second+16*time.Millisecond), scr)
	assert.InDelta(t, before+0.016, s.Elapsed(), 1e-9)
}

func TestAcceptWhileHidden(t *testing.T) {
	s := NewScheduler(nil, 1, nil)
	s.Pause()
	gen := s.Arm()
	assert.False(t, s.Accept(gen))
}

func TestStartupWaitsForAll(t *testing.T) {
	done := make(chan string, 3)
	mk := func(name string) Initializer {
		return Initializer{Name: name, Run: func(context.Context) error {
			done <- name
			return nil
		}}
	}

	require.NoError(t, Startup(context.Background(), mk("fonts"), mk("sprites"), mk("audio"), Initializer{Name: "skip"}))
	close(done)

	var got []string
	for n := range done {
		got = append(got, n)
	}
	assert.ElementsMatch(t, []string{"fonts", "sprites", "audio"}, got)
}

func TestStartupFailure(t *testing.T) {
	cause := errors.New("device busy")
	err := Startup(context.Background(),
		Initializer{Name: "sprites", Run: func(context.Context) error { return nil }},
		Initializer{Name: "audio", Run: func(context.Context) error { return cause }},
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStartupFailure)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "audio")
}
