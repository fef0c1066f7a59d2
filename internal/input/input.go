// Package input tracks raw key and pointer signals and derives per-step edge
// events from them.
//
// A State is explicitly constructed once per running session and passed to
// the scheduler and every phase. Raw signals arrive through KeyDown, KeyUp,
// MouseDown, MouseUp and MouseMove. Game logic reads the predicates during a
// simulation step; Update clears the edge flags once the step is done.
package input

import (
	"time"

	"github.com/vovakirdan/tui-dino/internal/core"
)

// Key identifies a logical keyboard key.
type Key string

// Recognised keys. Anything else is ignored by the host mapping.
const (
	KeySpace     Key = "Space"
	KeyArrowUp   Key = "ArrowUp"
	KeyArrowDown Key = "ArrowDown"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
	KeyW         Key = "w"
	KeyS         Key = "s"
	KeyR         Key = "r"
)

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

// Signal is the tracked state of one key or button.
type Signal struct {
	Active       bool      // Currently held down
	LastChange   time.Time // Time of the last down/up transition
	JustPressed  bool      // Went down during the current step
	JustReleased bool      // Went up during the current step
	HeldEdge     bool      // A full press-release completed during the current step
}

func (s *Signal) press(now time.Time) {
	s.Active = true
	s.LastChange = now
	s.JustPressed = true
	s.JustReleased = false
	s.HeldEdge = false
}

func (s *Signal) release(now time.Time) {
	s.Active = false
	s.LastChange = now
	s.JustReleased = true
	s.JustPressed = false
	s.HeldEdge = true
}

func (s *Signal) clearEdges() {
	s.JustPressed = false
	s.JustReleased = false
	s.HeldEdge = false
}

// State is the edge-triggered input context for one session.
type State struct {
	keys    map[Key]*Signal
	buttons map[MouseButton]*Signal

	mouse      core.Vec2
	mouseDelta core.Vec2

	dirty bool
	now   func() time.Time
}

// New creates an empty input state.
func New() *State {
	return &State{
		keys:    make(map[Key]*Signal),
		buttons: make(map[MouseButton]*Signal),
		now:     time.Now,
	}
}

// SetClock overrides the time source used for LastChange stamps.
func (s *State) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Dirty reports whether any raw signal arrived since the last Update.
func (s *State) Dirty() bool {
	return s.dirty
}

// KeyDown records a raw key-down signal. Repeats of a key that is already
// held are ignored.
func (s *State) KeyDown(k Key) {
	sig, ok := s.keys[k]
	if ok && sig.Active {
		return
	}
	if !ok {
		sig = &Signal{}
		s.keys[k] = sig
	}
	sig.press(s.now())
	s.dirty = true
}

// KeyUp records a raw key-up signal. Keys never seen down are ignored.
func (s *State) KeyUp(k Key) {
	sig, ok := s.keys[k]
	if !ok || !sig.Active {
		return
	}
	sig.release(s.now())
	s.dirty = true
}

// MouseDown records a raw button-down signal.
func (s *State) MouseDown(b MouseButton) {
	sig, ok := s.buttons[b]
	if ok && sig.Active {
		return
	}
	if !ok {
		sig = &Signal{}
		s.buttons[b] = sig
	}
	sig.press(s.now())
	s.dirty = true
}

// MouseUp records a raw button-up signal.
func (s *State) MouseUp(b MouseButton) {
	sig, ok := s.buttons[b]
	if !ok || !sig.Active {
		return
	}
	sig.release(s.now())
	s.dirty = true
}

// MouseMove records an absolute pointer position. The delta accumulates
// until the next Update.
func (s *State) MouseMove(x, y float64) {
	p := core.V(x, y)
	s.mouseDelta = s.mouseDelta.Add(p.Sub(s.mouse))
	s.mouse = p
}

// Mouse returns the last known pointer position.
func (s *State) Mouse() core.Vec2 {
	return s.mouse
}

// MouseDelta returns pointer motion during the current step.
func (s *State) MouseDelta() core.Vec2 {
	return s.mouseDelta
}

// Update ends a simulation step: every edge flag is cleared and the mouse
// delta is zeroed. It must run after game logic has read the step's edges.
func (s *State) Update() {
	s.dirty = false
	for _, sig := range s.keys {
		sig.clearEdges()
	}
	for _, sig := range s.buttons {
		sig.clearEdges()
	}
	s.mouseDelta = core.Vec2{}
}

// Key returns a copy of the tracked signal for k.
func (s *State) Key(k Key) (Signal, bool) {
	sig, ok := s.keys[k]
	if !ok {
		return Signal{}, false
	}
	return *sig, true
}

// Button returns a copy of the tracked signal for b.
func (s *State) Button(b MouseButton) (Signal, bool) {
	sig, ok := s.buttons[b]
	if !ok {
		return Signal{}, false
	}
	return *sig, true
}

// HeldKeys returns the keys currently held down.
func (s *State) HeldKeys() []Key {
	var held []Key
	for k, sig := range s.keys {
		if sig.Active {
			held = append(held, k)
		}
	}
	return held
}
