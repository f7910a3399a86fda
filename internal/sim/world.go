// Package sim is a small kinematic field used in place of vision and the
// robot link when running the gameplay binary without hardware.
package sim

import (
	"math"
	"time"

	"github.com/zeusync/soccer/internal/core/frame"
	"github.com/zeusync/soccer/internal/core/gameplay"
	"github.com/zeusync/soccer/internal/core/geometry"
	"github.com/zeusync/soccer/internal/core/obstacles"
	"github.com/zeusync/soccer/pkg/generic"
)

var (
	_ gameplay.Perception = (*World)(nil)
	_ gameplay.Planner    = (*World)(nil)
)

// Config holds the simulated robot limits.
type Config struct {
	Step          time.Duration
	MaxSpeed      float64 // m/s
	MaxAngular    float64 // rad/s
	MaxKickSpeed  float64 // ball speed at strength 255
	PossessRange  float64 // ball within this of the robot front counts as possession
	ChargeTime    time.Duration
	BallDecay     float64 // fraction of ball speed kept per second
	ArriveEpsilon float64
	SampleStep    float64 // spacing of obstacle checks along a step
}

func DefaultConfig(step time.Duration) Config {
	return Config{
		Step:          step,
		MaxSpeed:      2.0,
		MaxAngular:    2 * math.Pi,
		MaxKickSpeed:  6.0,
		PossessRange:  0.12,
		ChargeTime:    time.Second,
		BallDecay:     0.4,
		ArriveEpsilon: 0.02,
		SampleStep:    0.005,
	}
}

// Body is one simulated robot.
type Body struct {
	Pos     geometry.Point
	Vel     geometry.Point
	Angle   float64
	Charged bool

	chargeLeft time.Duration
}

// World is the simulated field. It is driven by the gameplay tick and is not
// safe for concurrent use.
type World struct {
	cfg       Config
	self      []Body
	opponents []Body
	ball      frame.Ball
}

// New lines both teams up on their halves with the ball at the center.
func New(rosterSize int, cfg Config) *World {
	w := &World{
		cfg:       cfg,
		self:      make([]Body, rosterSize),
		opponents: make([]Body, rosterSize),
		ball:      frame.Ball{Valid: true},
	}
	for i := 0; i < rosterSize; i++ {
		y := (float64(i) - float64(rosterSize-1)/2) * 0.6
		w.self[i] = Body{Pos: geometry.Pt(-1.5, y), Charged: true}
		w.opponents[i] = Body{Pos: geometry.Pt(1.5, y), Angle: math.Pi, Charged: true}
	}
	return w
}

func (w *World) Self(id int) Body { return w.self[id] }

func (w *World) Ball() frame.Ball { return w.ball }

// PlaceBall moves the ball and stops it.
func (w *World) PlaceBall(p geometry.Point) {
	w.ball = frame.Ball{Pos: p, Valid: true}
}

// Refresh implements gameplay.Perception.
func (w *World) Refresh(f *frame.Frame) error {
	f.Ball = w.ball
	write := func(records []*frame.Record, bodies []Body) {
		for i, rec := range records {
			b := bodies[i]
			rec.State = frame.PerceivedState{
				Pos:      b.Pos,
				Vel:      b.Vel,
				Angle:    b.Angle,
				HaveBall: w.possesses(b),
				Charged:  b.Charged,
				Valid:    true,
				Stamp:    f.Stamp,
			}
		}
	}
	write(f.SelfRecords(), w.self)
	write(f.OpponentRecords(), w.opponents)
	return nil
}

// Execute implements gameplay.Planner: it turns each friendly command into a
// velocity and advances the world by one step.
func (w *World) Execute(v frame.View, obs gameplay.ObstacleSource) error {
	dt := w.cfg.Step.Seconds()
	for _, rv := range v.Self() {
		b := &w.self[rv.ID()]
		cmd := rv.Command()

		trans, ang := w.motion(b, cmd.Motion, v.Stamp())
		if face, ok := cmd.Facing.(frame.FacePoint); ok {
			ang = w.turnToward(b, face.Target)
		}
		trans = limit(trans, w.cfg.MaxSpeed).Scale(cmd.VScale)
		ang = math.Max(-w.cfg.MaxAngular, math.Min(w.cfg.MaxAngular, ang))

		next := b.Pos.Add(trans.Scale(dt))
		if w.blocked(obs.Obstacles(rv.ID()), b.Pos, next) {
			trans, next = geometry.Point{}, b.Pos
		}
		b.Pos, b.Vel = next, trans
		b.Angle = geometry.FixAngle(b.Angle + ang*dt)

		w.charge(b)
		if cmd.Kick.Enabled && b.Charged && w.possesses(*b) {
			speed := w.cfg.MaxKickSpeed * float64(cmd.Kick.Strength) / 255
			w.ball.Vel = geometry.Unit(b.Angle).Scale(speed)
			b.Charged, b.chargeLeft = false, w.cfg.ChargeTime
		}
	}
	w.ball.Pos = w.ball.Pos.Add(w.ball.Vel.Scale(dt))
	w.ball.Vel = w.ball.Vel.Scale(math.Pow(w.cfg.BallDecay, dt))
	return nil
}

func (w *World) motion(b *Body, m frame.MotionCommand, now time.Time) (geometry.Point, float64) {
	switch c := m.(type) {
	case frame.Velocity:
		return c.Trans, c.Angular
	case frame.PointGoal:
		return w.seek(b.Pos, c.Target, c.End), 0
	case frame.Path:
		return w.follow(b.Pos, c.Points, c.End), 0
	case frame.Bezier:
		return w.follow(b.Pos, sampleBezier(c.Controls, 8), c.End), 0
	case frame.TimedPath:
		target := timedTarget(c, now)
		return target.Sub(b.Pos).Scale(1 / w.cfg.Step.Seconds()), 0
	case frame.Pivot:
		radial := b.Pos.Sub(c.Center)
		tangent := radial.Rotate(math.Pi / 2)
		if c.Dir == frame.PivotClockwise {
			tangent = radial.Rotate(-math.Pi / 2)
		}
		return tangent.Normalized().Scale(w.cfg.MaxSpeed / 2), w.turnToward(b, c.Center)
	case frame.Spin:
		if c.Dir == frame.SpinClockwise {
			return geometry.Point{}, -w.cfg.MaxAngular
		}
		return geometry.Point{}, w.cfg.MaxAngular
	default:
		return geometry.Point{}, 0
	}
}

// seek heads for target, slowing on approach when the path ends in a stop.
func (w *World) seek(pos, target geometry.Point, end frame.PathEnd) geometry.Point {
	d := target.Sub(pos)
	if end == frame.FreeAtEnd {
		return d.Normalized().Scale(w.cfg.MaxSpeed)
	}
	if d.Mag() < w.cfg.ArriveEpsilon {
		return geometry.Point{}
	}
	return d.Scale(1 / w.cfg.Step.Seconds())
}

func (w *World) follow(pos geometry.Point, points []geometry.Point, end frame.PathEnd) geometry.Point {
	for i, p := range points {
		if i == len(points)-1 {
			return w.seek(pos, p, end)
		}
		if !pos.NearPoint(p, w.cfg.ArriveEpsilon*5) {
			return w.seek(pos, p, frame.FreeAtEnd)
		}
	}
	return geometry.Point{}
}

// blocked reports whether the step from pos to next enters an obstacle that
// does not already contain pos. Steps shorter than the clearance skip sampling.
func (w *World) blocked(g *obstacles.Group, pos, next geometry.Point) bool {
	if g == nil || g.Clearance(pos) > pos.DistTo(next) {
		return false
	}
	o, hit := g.HitSegment(pos, next, w.cfg.SampleStep)
	return hit && !o.Hit(pos)
}

func (w *World) turnToward(b *Body, target geometry.Point) float64 {
	want := target.Sub(b.Pos).Angle()
	return geometry.FixAngle(want-b.Angle) / w.cfg.Step.Seconds()
}

func (w *World) charge(b *Body) {
	if b.Charged {
		return
	}
	b.chargeLeft -= w.cfg.Step
	if b.chargeLeft <= 0 {
		b.Charged, b.chargeLeft = true, 0
	}
}

func (w *World) possesses(b Body) bool {
	if !w.ball.Valid {
		return false
	}
	front := b.Pos.Add(geometry.Unit(b.Angle).Scale(w.cfg.PossessRange / 2))
	return front.NearPoint(w.ball.Pos, w.cfg.PossessRange)
}

func limit(p geometry.Point, maxMag float64) geometry.Point {
	if m := p.Mag(); m > maxMag {
		return p.Scale(maxMag / m)
	}
	return p
}

var scratch = generic.NewPool(
	func() []geometry.Point { return make([]geometry.Point, 0, 8) },
	func(s []geometry.Point) []geometry.Point { return s[:0] },
)

// sampleBezier evaluates the curve at n evenly spaced parameters in (0, 1].
func sampleBezier(controls []geometry.Point, n int) []geometry.Point {
	out := make([]geometry.Point, 0, n)
	tmp := append(scratch.Get(), controls...)
	defer scratch.Put(tmp)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		copy(tmp, controls)
		for k := len(tmp) - 1; k > 0; k-- {
			for j := 0; j < k; j++ {
				tmp[j] = tmp[j].Scale(1 - t).Add(tmp[j+1].Scale(t))
			}
		}
		out = append(out, tmp[0])
	}
	return out
}

// timedTarget interpolates where a timed path wants the robot at now.
func timedTarget(c frame.TimedPath, now time.Time) geometry.Point {
	elapsed := now.Sub(c.Start)
	nodes := c.Nodes
	if elapsed <= nodes[0].Time {
		return nodes[0].Pos
	}
	for i := 1; i < len(nodes); i++ {
		if elapsed <= nodes[i].Time {
			span := nodes[i].Time - nodes[i-1].Time
			f := float64(elapsed-nodes[i-1].Time) / float64(span)
			return nodes[i-1].Pos.Add(nodes[i].Pos.Sub(nodes[i-1].Pos).Scale(f))
		}
	}
	return nodes[len(nodes)-1].Pos
}
