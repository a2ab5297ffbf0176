package parameter

import "time"

// Partition
const (
	// DefaultRows is the grid height used when no config is given
	DefaultRows = 3

	// DefaultColumns is the grid width used when no config is given
	DefaultColumns = 3

	// DefaultJointSize is the tab margin in source pixels
	DefaultJointSize = 50

	// DefaultPatternWidth and DefaultPatternHeight size the generated picture
	// used when no image is configured
	DefaultPatternWidth  = 600
	DefaultPatternHeight = 400

	// SensorFallbackDivisor sizes connector sensors when the joint size is 0:
	// half extent = min(cellW, cellH) / SensorFallbackDivisor
	SensorFallbackDivisor = 8
)

// Background
const (
	// DefaultBackgroundDarken multiplies background RGB
	DefaultBackgroundDarken = 0.5
)

// Group drag gesture
const (
	// TimeToDragGroup is how long the pointer must stay still to grab the whole cluster
	TimeToDragGroup = 1 * time.Second

	// DistanceToDragGroup is the pointer travel, in source pixels, that cancels a group grab
	DistanceToDragGroup = 1.0

	// SettleTicks is the delay between release and the deferred snap re-check
	SettleTicks = 25
)

// Drag motion
const (
	// DefaultDragSpeed is the lerp rate per second; 0 moves pieces immediately
	DefaultDragSpeed = 0.0

	// TickInterval is the host update period
	TickInterval = 16 * time.Millisecond
)
