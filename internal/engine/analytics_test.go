package engine

import (
	"testing"
	"time"
)

func TestAnalyticsEmpty(t *testing.T) {
	s := NewAnalytics().Stats()
	if s.AvgFrame != 0 || s.MaxFrame != 0 || s.FPS != 0 {
		t.Errorf("Stats() on empty analytics = %+v, expected zero", s)
	}
}

func TestAnalyticsPerSecondCounters(t *testing.T) {
	a := NewAnalytics()

	// 60 frames of 1/60s, each with 4 updates and 1 render.
	for i := 0; i < 60; i++ {
		for j := 0; j < 4; j++ {
			a.RecordUpdate()
		}
		a.RecordRender()
		a.RecordFrame(1.0 / 60.0)
	}
	// Floating error may leave the window just short of a second.
	a.RecordFrame(0.001)

	s := a.Stats()
	if s.FPS != 60 {
		t.Errorf("FPS = %d, expected 60", s.FPS)
	}
	if s.UPS != 240 {
		t.Errorf("UPS = %d, expected 240", s.UPS)
	}
	if s.Frames != 61 {
		t.Errorf("Frames = %d, expected 61", s.Frames)
	}
}

func TestAnalyticsRing(t *testing.T) {
	a := NewAnalytics()

	for i := 0; i < FrameHistorySize+50; i++ {
		a.RecordFrame(0.010)
	}
	a.RecordFrame(0.040)

	s := a.Stats()
	if s.LastFrame != 40*time.Millisecond {
		t.Errorf("LastFrame = %v, expected 40ms", s.LastFrame)
	}
	if s.MaxFrame != 40*time.Millisecond {
		t.Errorf("MaxFrame = %v, expected 40ms", s.MaxFrame)
	}
	// 199 frames of 10ms and one of 40ms.
	expected := (199*10*time.Millisecond + 40*time.Millisecond) / FrameHistorySize
	if diff := s.AvgFrame - expected; diff < -time.Microsecond || diff > time.Microsecond {
		t.Errorf("AvgFrame = %v, expected %v", s.AvgFrame, expected)
	}
}
