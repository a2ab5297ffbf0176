package vmath

import "math"

// Vec2 is a float64 world-space vector, y-down, in source pixels
type Vec2 struct {
	X, Y float64
}

func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns Euclidean distance between two points
func Dist(a, b Vec2) float64 { return b.Sub(a).Len() }

// Lerp interpolates from a to b; t is clamped to [0,1]
func Lerp(a, b Vec2, t float64) Vec2 {
	t = Clamp(t, 0, 1)
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Near compares two vectors within an absolute tolerance per axis
func Near(a, b Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

// Clamp limits v to [lo, hi]; when lo > hi the midpoint is returned
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
