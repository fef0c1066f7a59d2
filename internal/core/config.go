package core

// GameState summarises the running game for the platform layer.
type GameState struct {
	Phase    string // Active phase name ("menu", "play", "gameover")
	Score    int    // Current score
	Lives    int    // Remaining lives
	GameOver bool   // Whether the run has ended
}
