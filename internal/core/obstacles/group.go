package obstacles

import (
	"math"

	"github.com/google/uuid"

	"github.com/zeusync/soccer/internal/core/geometry"
)

// Group is one robot's obstacle set. It is not safe for concurrent use and must
// not be shared between robots.
type Group struct {
	items []Obstacle
}

func NewGroup() *Group {
	return &Group{}
}

func (g *Group) Add(o Obstacle) {
	g.items = append(g.items, o)
}

// Remove drops the obstacle with id and reports whether it was present.
func (g *Group) Remove(id uuid.UUID) bool {
	for i, o := range g.items {
		if o.ID() == id {
			g.items = append(g.items[:i], g.items[i+1:]...)
			return true
		}
	}
	return false
}

func (g *Group) Len() int {
	return len(g.items)
}

// Hit reports whether any obstacle contains p.
func (g *Group) Hit(p geometry.Point) bool {
	for _, o := range g.items {
		if o.Hit(p) {
			return true
		}
	}
	return false
}

// Clearance returns the smallest clearance from p to any obstacle, +Inf when empty.
func (g *Group) Clearance(p geometry.Point) float64 {
	best := math.Inf(1)
	for _, o := range g.items {
		best = math.Min(best, o.Clearance(p))
	}
	return best
}

// HitSegment samples the segment a-b at step intervals and reports the first
// obstacle found on it.
func (g *Group) HitSegment(a, b geometry.Point, step float64) (Obstacle, bool) {
	length := a.DistTo(b)
	n := 1
	if step > 0 {
		n = int(math.Ceil(length / step))
		if n < 1 {
			n = 1
		}
	}
	d := b.Sub(a)
	for i := 0; i <= n; i++ {
		p := a.Add(d.Scale(float64(i) / float64(n)))
		for _, o := range g.items {
			if o.Hit(p) {
				return o, true
			}
		}
	}
	return nil, false
}
