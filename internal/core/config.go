package core

// RuntimeConfig holds the platform settings a session starts with.
type RuntimeConfig struct {
	ScreenW  int   // screen width in characters
	ScreenH  int   // screen height in characters
	TickRate int   // frames per second
	Seed     int64 // 0 means seed from the clock
}

// DefaultConfig returns a RuntimeConfig for a classic 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}
