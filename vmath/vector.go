package vmath

import "math"

// Vec2 is a point or direction in arena space
type Vec2 struct {
	X, Y float64
}

func (a Vec2) Add(b Vec2) Vec2      { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2      { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Len() float64         { return math.Hypot(a.X, a.Y) }
func (a Vec2) Dist(b Vec2) float64  { return math.Hypot(b.X-a.X, b.Y-a.Y) }
func (a Vec2) IsZero() bool         { return a.X == 0 && a.Y == 0 }

// Norm returns the unit vector, zero stays zero
func (a Vec2) Norm() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// FromAngle returns the unit vector for a heading in radians
func FromAngle(rad float64) Vec2 {
	return Vec2{math.Cos(rad), math.Sin(rad)}
}

// Clamp limits v into [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Bounds is an axis-aligned rectangle, Min inclusive Max inclusive
type Bounds struct {
	Min, Max Vec2
}

// ClampPoint moves p inside the bounds
func (b Bounds) ClampPoint(p Vec2) Vec2 {
	return Vec2{Clamp(p.X, b.Min.X, b.Max.X), Clamp(p.Y, b.Min.Y, b.Max.Y)}
}

// Contains reports whether p lies inside the bounds
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Width returns the horizontal extent
func (b Bounds) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }
