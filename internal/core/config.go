package core

// RuntimeConfig contains configuration passed to a round at initialization.
// The engine uses Seed for a deterministic piece sequence; the screen size
// only affects layout.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Input polls per second (default 20)
	Seed     int64 // RNG seed for the bag randomizer
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 20,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the summary the platform needs after every tick.
type GameState struct {
	Score     int
	HighScore int
	Level     int
	Lines     int
	GameOver  bool
	Paused    bool
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State GameState
	// Locked is the number of pieces locked during the tick.
	Locked int
	// Cleared is the number of rows cleared during the tick.
	Cleared int
}
