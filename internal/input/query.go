package input

// anyKey reports whether pred holds for any of the given keys.
func (s *State) anyKey(keys []Key, pred func(*Signal) bool) bool {
	for _, k := range keys {
		if pred(s.keys[k]) {
			return true
		}
	}
	return false
}

func (s *State) anyButton(buttons []MouseButton, pred func(*Signal) bool) bool {
	for _, b := range buttons {
		if pred(s.buttons[b]) {
			return true
		}
	}
	return false
}

func isDown(sig *Signal) bool         { return sig != nil && sig.Active }
func isUp(sig *Signal) bool           { return sig == nil || !sig.Active }
func isJustPressed(sig *Signal) bool  { return sig != nil && sig.JustPressed }
func isJustReleased(sig *Signal) bool { return sig != nil && sig.JustReleased }
func isHeldEdge(sig *Signal) bool     { return sig != nil && sig.HeldEdge }

// IsKeyDown reports whether any of the keys is held.
func (s *State) IsKeyDown(keys ...Key) bool { return s.anyKey(keys, isDown) }

// IsKeyUp reports whether any of the keys is not held. Untracked keys are up.
func (s *State) IsKeyUp(keys ...Key) bool { return s.anyKey(keys, isUp) }

// IsKeyJustPressed reports whether any of the keys went down this step.
func (s *State) IsKeyJustPressed(keys ...Key) bool { return s.anyKey(keys, isJustPressed) }

// IsKeyJustReleased reports whether any of the keys went up this step.
func (s *State) IsKeyJustReleased(keys ...Key) bool { return s.anyKey(keys, isJustReleased) }

// IsKeyHeldEdge reports whether any of the keys completed a press this step.
func (s *State) IsKeyHeldEdge(keys ...Key) bool { return s.anyKey(keys, isHeldEdge) }

// IsMouseButtonDown reports whether any of the buttons is held.
func (s *State) IsMouseButtonDown(buttons ...MouseButton) bool {
	return s.anyButton(buttons, isDown)
}

// IsMouseButtonUp reports whether any of the buttons is not held.
func (s *State) IsMouseButtonUp(buttons ...MouseButton) bool {
	return s.anyButton(buttons, isUp)
}

// IsMouseButtonJustPressed reports whether any of the buttons went down this step.
func (s *State) IsMouseButtonJustPressed(buttons ...MouseButton) bool {
	return s.anyButton(buttons, isJustPressed)
}

// IsMouseButtonJustReleased reports whether any of the buttons went up this step.
func (s *State) IsMouseButtonJustReleased(buttons ...MouseButton) bool {
	return s.anyButton(buttons, isJustReleased)
}

// IsMouseButtonHeldEdge reports whether any of the buttons completed a click this step.
func (s *State) IsMouseButtonHeldEdge(buttons ...MouseButton) bool {
	return s.anyButton(buttons, isHeldEdge)
}

// Gestures

// IsJumping is a fresh jump key press or primary button press.
func (s *State) IsJumping() bool {
	return s.IsKeyJustPressed(KeySpace, KeyArrowUp, KeyW) ||
		s.IsMouseButtonJustPressed(MouseLeft)
}

// IsCrouching is a held crouch key or a held secondary button.
func (s *State) IsCrouching() bool {
	return s.IsKeyDown(KeyArrowDown, KeyS) ||
		s.IsMouseButtonDown(MouseRight)
}

// IsStarting is the edge that leaves the menu or restarts after game over.
func (s *State) IsStarting() bool {
	return s.IsKeyJustPressed(KeySpace, KeyArrowUp, KeyW, KeyEnter, KeyR) ||
		s.IsMouseButtonJustPressed(MouseLeft)
}

// IsBack is the edge that returns to the menu.
func (s *State) IsBack() bool {
	return s.IsKeyJustPressed(KeyEscape)
}
