package core

// RuntimeConfig is handed to a game when it is (re)started.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 means seed from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// GameState is the status a game reports to the platform after each tick.
type GameState struct {
	Score    int  // Distance driven so far
	GameOver bool // Whether the car has crashed
	Paused   bool
	AIMode   bool // Whether the autopilot is driving
}

// StepResult is returned by a game's Step after one tick.
type StepResult struct {
	State GameState
}
