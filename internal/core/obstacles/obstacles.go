// Package obstacles holds the per-robot collision geometry the planner avoids.
package obstacles

import (
	"math"

	"github.com/google/uuid"

	"github.com/zeusync/soccer/internal/core/geometry"
)

// Obstacle is a closed region of the field.
type Obstacle interface {
	ID() uuid.UUID
	// Hit reports whether p lies inside the region.
	Hit(p geometry.Point) bool
	// Clearance is the distance from p to the region boundary, zero when inside.
	Clearance(p geometry.Point) float64
}

type Circle struct {
	id     uuid.UUID
	Center geometry.Point
	Radius float64
}

func NewCircle(center geometry.Point, radius float64) *Circle {
	return &Circle{id: uuid.New(), Center: center, Radius: radius}
}

func (c *Circle) ID() uuid.UUID { return c.id }

func (c *Circle) Hit(p geometry.Point) bool {
	return c.Center.DistTo(p) <= c.Radius
}

func (c *Circle) Clearance(p geometry.Point) float64 {
	return math.Max(0, c.Center.DistTo(p)-c.Radius)
}

// Rect is an axis-aligned rectangle spanning corners A and B.
type Rect struct {
	id uuid.UUID
	A  geometry.Point
	B  geometry.Point
}

func NewRect(a, b geometry.Point) *Rect {
	return &Rect{id: uuid.New(), A: a, B: b}
}

func (r *Rect) ID() uuid.UUID { return r.id }

func (r *Rect) Hit(p geometry.Point) bool {
	return r.Clearance(p) == 0
}

func (r *Rect) Clearance(p geometry.Point) float64 {
	minX, maxX := math.Min(r.A.X, r.B.X), math.Max(r.A.X, r.B.X)
	minY, maxY := math.Min(r.A.Y, r.B.Y), math.Max(r.A.Y, r.B.Y)
	dx := math.Max(0, math.Max(minX-p.X, p.X-maxX))
	dy := math.Max(0, math.Max(minY-p.Y, p.Y-maxY))
	return math.Hypot(dx, dy)
}
