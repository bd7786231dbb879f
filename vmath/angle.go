package vmath

import "math"

// Radians converts degrees
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// Bearing returns the heading from a to b, zero for coincident points
func Bearing(from, to Vec2) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

// NormalizeAngle wraps rad into (-Pi, Pi]
func NormalizeAngle(rad float64) float64 {
	rad = math.Mod(rad, 2*math.Pi)
	if rad > math.Pi {
		rad -= 2 * math.Pi
	} else if rad <= -math.Pi {
		rad += 2 * math.Pi
	}
	return rad
}

// AngleDiff returns the signed shortest rotation from a to b
func AngleDiff(a, b float64) float64 {
	return NormalizeAngle(b - a)
}

// WithinCone reports whether heading lies within halfAngle of facing, boundary inclusive
func WithinCone(facing, heading, halfAngle, epsilon float64) bool {
	return math.Abs(AngleDiff(facing, heading)) <= halfAngle+epsilon
}

// RotateToward turns current toward target by at most maxStep, never overshooting
func RotateToward(current, target, maxStep float64) float64 {
	diff := AngleDiff(current, target)
	if math.Abs(diff) <= maxStep {
		return NormalizeAngle(target)
	}
	if diff > 0 {
		return NormalizeAngle(current + maxStep)
	}
	return NormalizeAngle(current - maxStep)
}
