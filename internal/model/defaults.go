package model

import "time"

// Shared defaults used by the cycle core and both command modes.
const (
	DefaultInterval            = 2 * time.Second
	DefaultActiveTag           = "active"
	DefaultVisibilityThreshold = 0.5
	DefaultFrameRate           = 30 // frames per second
	DefaultBreakpoint          = 0  // columns, 0 = disabled
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "console"
)

// FrameDuration converts a frame rate to the delay between frames.
func FrameDuration(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFrameRate
	}
	return time.Second / time.Duration(fps)
}
