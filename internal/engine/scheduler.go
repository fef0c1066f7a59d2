package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dino/internal/core"
	"github.com/vovakirdan/tui-dino/internal/input"
)

// DefaultSubsteps is the number of simulation steps per host frame.
const DefaultSubsteps = 4

// Scheduler is the main loop. It is single-threaded: Frame, SetPhase and the
// visibility calls must all come from the host's event loop.
type Scheduler struct {
	input     *input.State
	logger    *log.Logger
	analytics *Analytics

	phase    Phase
	substeps int

	last    time.Time
	hasLast bool
	elapsed float64

	dirty   bool
	visible bool
	gen     uint64
	armed   bool
}

// NewScheduler creates a scheduler that ages the input edges of in after
// every sub-step.
// A substeps value below 1 is treated as 1.
func NewScheduler(in *input.State, substeps int, logger *log.Logger) *Scheduler {
	if substeps < 1 {
		substeps = 1
	}
	if in == nil {
		in = input.New()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scheduler{
		input:     in,
		logger:    logger,
		analytics: NewAnalytics(),
		substeps:  substeps,
		visible:   true,
	}
}

// Input returns the input state aged by this scheduler.
func (s *Scheduler) Input() *input.State { return s.input }

// Substeps returns the number of sub-steps per frame.
func (s *Scheduler) Substeps() int { return s.substeps }

// Phase returns the active phase.
func (s *Scheduler) Phase() Phase { return s.phase }

// Elapsed returns total simulated time in seconds.
func (s *Scheduler) Elapsed() float64 { return s.elapsed }

// Stats returns loop analytics.
func (s *Scheduler) Stats() Stats { return s.analytics.Stats() }

// Dirty reports whether a render is pending.
func (s *Scheduler) Dirty() bool { return s.dirty }

// Visible reports whether the view is currently visible.
func (s *Scheduler) Visible() bool { return s.visible }

// Invalidate marks the current frame stale.
func (s *Scheduler) Invalidate() { s.dirty = true }

// SetPhase makes p the active phase. p.Setup runs first; on failure the
// previous phase stays active and the error is returned.
func (s *Scheduler) SetPhase(p Phase) error {
	if p == nil {
		return fmt.Errorf("engine: nil phase")
	}
	if err := p.Setup(); err != nil {
		s.logger.Error("phase setup failed", "phase", PhaseName(p), "error", err)
		return fmt.Errorf("engine: setup %s: %w", PhaseName(p), err)
	}
	s.logger.Debug("phase changed", "from", s.phaseName(), "to", PhaseName(p))
	s.phase = p
	s.dirty = true
	return nil
}

func (s *Scheduler) phaseName() string {
	if s.phase == nil {
		return "none"
	}
	return PhaseName(s.phase)
}

// Frame runs one host frame observed at now and renders into dst if the
// frame was invalidated. It reports whether a render happened.
//
// The first frame after construction or Resume has zero delta. A clock
// that runs backwards also yields zero delta.
func (s *Scheduler) Frame(now time.Time, dst *core.Screen) bool {
	delta := 0.0
	if s.hasLast {
		delta = now.Sub(s.last).Seconds()
		if delta < 0 {
			delta = 0
		}
	}
	s.last = now
	s.hasLast = true

	return s.Advance(delta, dst)
}

// Advance runs one frame of delta seconds without consulting the clock.
func (s *Scheduler) Advance(delta float64, dst *core.Screen) bool {
	if delta < 0 {
		delta = 0
	}
	s.analytics.RecordFrame(delta)

	subDt := delta / float64(s.substeps)
	for i := 0; i < s.substeps; i++ {
		s.step(subDt)
	}

	if !s.dirty || dst == nil || s.phase == nil {
		return false
	}
	ok := s.render(dst)
	s.dirty = false
	if ok {
		s.analytics.RecordRender()
	}
	return ok
}

// step runs one sub-step: phase update, then edge aging.
func (s *Scheduler) step(dt float64) {
	if s.phase != nil {
		s.update(s.phase, dt)
	}
	if s.input.Dirty() {
		s.dirty = true
	}
	s.input.Update()
	s.elapsed += dt
	s.analytics.RecordUpdate()
}

func (s *Scheduler) update(p Phase, dt float64) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("phase update panicked", "phase", PhaseName(p), "panic", r)
		}
	}()
	p.Update(dt)
}

func (s *Scheduler) render(dst *core.Screen) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("phase render panicked", "phase", s.phaseName(), "panic", r)
			ok = false
		}
	}()
	s.phase.Render(dst)
	return true
}

// ResetClock drops the time baseline so the next Frame has zero delta.
// Hosts call it when frames were skipped without pausing.
func (s *Scheduler) ResetClock() {
	s.hasLast = false
	s.dirty = true
}

// Frame requests

// Arm requests the next frame and returns its generation. The host passes
// the generation back through Accept when the frame fires.
func (s *Scheduler) Arm() uint64 {
	s.armed = true
	return s.gen
}

// Cancel drops any pending frame request. Frames carrying an older
// generation are rejected by Accept.
func (s *Scheduler) Cancel() {
	s.gen++
	s.armed = false
}

// Accept reports whether a frame of generation gen should run. It consumes
// the pending request.
func (s *Scheduler) Accept(gen uint64) bool {
	if !s.visible || !s.armed || gen != s.gen {
		return false
	}
	s.armed = false
	return true
}

// Pause handles visibility loss: the pending frame request is cancelled.
func (s *Scheduler) Pause() {
	if !s.visible {
		return
	}
	s.visible = false
	s.Cancel()
	s.logger.Debug("paused", "elapsed", s.elapsed)
}

// Resume handles visibility regain at now. The frame is invalidated, the
// time baseline resets to now and a new frame request is armed.
func (s *Scheduler) Resume(now time.Time) uint64 {
	s.visible = true
	s.dirty = true
	s.last = now
	s.hasLast = true
	s.Cancel()
	s.logger.Debug("resumed", "elapsed", s.elapsed)
	return s.Arm()
}
