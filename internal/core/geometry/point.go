// Package geometry holds the 2D value types shared by perception, commands and
// obstacle geometry. Units are meters and radians, field coordinates.
package geometry

import "math"

// Point is a 2D position or vector.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }

func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

func (p Point) Scale(s float64) Point { return Point{X: p.X * s, Y: p.Y * s} }

// Mag returns the Euclidean length of p.
func (p Point) Mag() float64 { return math.Hypot(p.X, p.Y) }

// DistTo computes the distance between two points.
func (p Point) DistTo(o Point) float64 { return math.Hypot(o.X-p.X, o.Y-p.Y) }

// Angle returns the direction of p in radians, in (-pi, pi].
func (p Point) Angle() float64 { return math.Atan2(p.Y, p.X) }

// Normalized returns the unit vector of p, or the zero point when p has no length.
func (p Point) Normalized() Point {
	m := p.Mag()
	if m == 0 {
		return Point{}
	}
	return p.Scale(1 / m)
}

// NearPoint reports whether o lies within threshold of p.
func (p Point) NearPoint(o Point, threshold float64) bool {
	return p.DistTo(o) <= threshold
}

// Rotate turns p about the origin by angle radians.
func (p Point) Rotate(angle float64) Point {
	s, c := math.Sincos(angle)
	return Point{X: p.X*c - p.Y*s, Y: p.X*s + p.Y*c}
}

// Unit returns the unit vector pointing in direction angle.
func Unit(angle float64) Point {
	s, c := math.Sincos(angle)
	return Point{X: c, Y: s}
}

// FixAngle wraps a radians into (-pi, pi].
func FixAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
