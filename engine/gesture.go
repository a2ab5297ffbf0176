package engine

import "github.com/Avelinimus/PuzzleTemplate/vmath"

// Sample is one pointer reading delivered per tick
type Sample struct {
	Pos     vmath.Vec2 // world space
	Pressed bool
}

// GestureState decides whether the pointer moves one piece or its whole cluster
type GestureState uint8

const (
	GestureIdle GestureState = iota
	GestureSingle
	GestureCluster
)

func (g GestureState) String() string {
	switch g {
	case GestureSingle:
		return "single"
	case GestureCluster:
		return "cluster"
	}
	return "idle"
}
