package engine

import "time"

// FrameHistorySize is the number of frame times kept for averaging.
const FrameHistorySize = 200

// Stats is a snapshot of loop analytics.
type Stats struct {
	FPS       int           // Rendered frames during the last full second
	UPS       int           // Simulation steps during the last full second
	AvgFrame  time.Duration // Mean of the recorded frame times
	MaxFrame  time.Duration // Largest recorded frame time
	LastFrame time.Duration // Most recent frame time
	Frames    int64         // Total frames observed
	Updates   int64         // Total simulation steps run
	Renders   int64         // Total render passes
}

// Analytics counts frames and steps per second and keeps a ring of
// recent frame times.
type Analytics struct {
	ring  [FrameHistorySize]time.Duration
	next  int
	count int

	window    float64
	frameAcc  int
	updateAcc int
	fps       int
	ups       int

	frames  int64
	updates int64
	renders int64
}

// NewAnalytics creates empty analytics.
func NewAnalytics() *Analytics {
	return &Analytics{}
}

// RecordFrame records one host frame spanning delta seconds.
func (a *Analytics) RecordFrame(delta float64) {
	a.ring[a.next] = time.Duration(delta * float64(time.Second))
	a.next = (a.next + 1) % FrameHistorySize
	if a.count < FrameHistorySize {
		a.count++
	}
	a.frames++

	a.window += delta
	if a.window >= 1 {
		a.fps = a.frameAcc
		a.ups = a.updateAcc
		a.frameAcc = 0
		a.updateAcc = 0
		a.window -= 1
		// A long pause must not leave the window permanently ahead.
		if a.window >= 1 {
			a.window = 0
		}
	}
}

// RecordUpdate records one simulation step.
func (a *Analytics) RecordUpdate() {
	a.updateAcc++
	a.updates++
}

// RecordRender records one render pass.
func (a *Analytics) RecordRender() {
	a.frameAcc++
	a.renders++
}

// Stats returns the current snapshot.
func (a *Analytics) Stats() Stats {
	s := Stats{
		FPS:     a.fps,
		UPS:     a.ups,
		Frames:  a.frames,
		Updates: a.updates,
		Renders: a.renders,
	}
	if a.count == 0 {
		return s
	}

	var total time.Duration
	for i := 0; i < a.count; i++ {
		d := a.ring[i]
		total += d
		if d > s.MaxFrame {
			s.MaxFrame = d
		}
	}
	s.AvgFrame = total / time.Duration(a.count)
	s.LastFrame = a.ring[(a.next-1+FrameHistorySize)%FrameHistorySize]
	return s
}
