package gameplay

import (
	"math"
	"time"

	"github.com/zeusync/soccer/internal/core/frame"
	"github.com/zeusync/soccer/internal/core/geometry"
)

const (
	DefaultVScale = 1.0

	MaxKickStrength = math.MaxUint8
	MinDribble      = math.MinInt8
	MaxDribble      = math.MaxInt8
)

// command returns the bound record's command for mutation.
func (r *Robot) command(op string) (*frame.Command, error) {
	if r.record == nil {
		return nil, r.fail(op, ErrInvalidState)
	}
	if !r.self {
		return nil, r.fail(op, ErrNotCommandable)
	}
	return &r.record.Cmd, nil
}

// install replaces the motion variant. Facing, kick, dribble and scale are left alone.
func (r *Robot) install(op string, m frame.MotionCommand) error {
	cmd, err := r.command(op)
	if err != nil {
		return err
	}
	cmd.Motion = m
	return nil
}

// Command returns a copy of the command written so far this tick.
func (r *Robot) Command() (frame.Command, error) {
	if r.record == nil {
		return frame.Command{}, r.fail("command", ErrInvalidState)
	}
	return r.record.Cmd.Clone(), nil
}

// ResetMotionCommand sets the robot idle with no facing target, kicker and
// dribbler off and full speed scale.
func (r *Robot) ResetMotionCommand() error {
	cmd, err := r.command("reset")
	if err != nil {
		return err
	}
	*cmd = frame.NeutralCommand()
	return nil
}

// SetVScale scales the commanded velocity. Values outside [0, 1] are clamped;
// NaN is treated as 0.
func (r *Robot) SetVScale(scale float64) error {
	cmd, err := r.command("vscale")
	if err != nil {
		return err
	}
	cmd.VScale = clamp(scale, 0, 1)
	return nil
}

// Move sends the robot to pt through the planner. With stopAtEnd false the robot
// keeps its exit heading at pt and the caller must issue a new command before it
// arrives.
func (r *Robot) Move(pt geometry.Point, stopAtEnd bool) error {
	return r.install("move", frame.PointGoal{Target: pt, End: frame.EndFor(stopAtEnd)})
}

// MovePath follows waypoints in order. stopAtEnd behaves as in Move.
func (r *Robot) MovePath(path []geometry.Point, stopAtEnd bool) error {
	if len(path) == 0 {
		return r.fail("move_path", contractf("path has no points"))
	}
	return r.install("move_path", frame.Path{
		Points: append([]geometry.Point(nil), path...),
		End:    frame.EndFor(stopAtEnd),
	})
}

// BezierMove follows the curve defined by controls. Planner cost grows with the
// number of control points. Coincident control points are not checked.
func (r *Robot) BezierMove(controls []geometry.Point, facing frame.Orientation, end frame.PathEnd) error {
	if len(controls) < 2 {
		return r.fail("bezier_move", contractf("bezier needs at least 2 control points, got %d", len(controls)))
	}
	return r.install("bezier_move", frame.Bezier{
		Controls: append([]geometry.Point(nil), controls...),
		Facing:   facing,
		End:      end,
	})
}

// MoveVelocity drives the robot directly, bypassing the planner. trans is in
// m/s, ang in rad/s.
func (r *Robot) MoveVelocity(trans geometry.Point, ang float64) error {
	return r.install("move_velocity", frame.Velocity{Trans: trans, Angular: ang})
}

// MoveTimed follows nodes whose times are offsets from start. Offsets must be
// non-negative and strictly increasing.
func (r *Robot) MoveTimed(nodes []frame.PathNode, start time.Time) error {
	if len(nodes) == 0 {
		return r.fail("move_timed", contractf("timed path has no nodes"))
	}
	for i, n := range nodes {
		if n.Time < 0 {
			return r.fail("move_timed", contractf("node %d has negative time %s", i, n.Time))
		}
		if i > 0 && n.Time <= nodes[i-1].Time {
			return r.fail("move_timed", contractf("node %d at %s is not after node %d at %s", i, n.Time, i-1, nodes[i-1].Time))
		}
	}
	return r.install("move_timed", frame.TimedPath{
		Nodes: append([]frame.PathNode(nil), nodes...),
		Start: start,
	})
}

// Spin rotates in place until another motion command replaces it.
func (r *Robot) Spin(dir frame.SpinDir) error {
	return r.install("spin", frame.Spin{Dir: dir})
}

// Pivot circles center at the current radius in direction dir.
func (r *Robot) Pivot(center geometry.Point, dir frame.PivotDir) error {
	return r.install("pivot", frame.Pivot{Center: center, Dir: dir})
}

// PivotCW is Pivot with clockwise when cw is true.
func (r *Robot) PivotCW(center geometry.Point, cw bool) error {
	if cw {
		return r.Pivot(center, frame.PivotClockwise)
	}
	return r.Pivot(center, frame.PivotCounterClockwise)
}

// Face turns toward pt on top of the current motion. With continuous set the
// heading is recomputed every tick.
func (r *Robot) Face(pt geometry.Point, continuous bool) error {
	cmd, err := r.command("face")
	if err != nil {
		return err
	}
	cmd.Facing = frame.FacePoint{Target: pt, Continuous: continuous}
	return nil
}

// FaceNone drops the facing target without touching the motion.
func (r *Robot) FaceNone() error {
	cmd, err := r.command("face_none")
	if err != nil {
		return err
	}
	cmd.Facing = frame.FaceNone{}
	return nil
}

// Dribble runs the dribbler; negative speeds spin it backwards. The motion is
// not changed.
func (r *Robot) Dribble(speed int) error {
	cmd, err := r.command("dribble")
	if err != nil {
		return err
	}
	cmd.Dribble = int8(clampInt(speed, MinDribble, MaxDribble))
	return nil
}

// Kick arms the kicker at strength, clamped to [0, 255]. It fires downstream on
// the next tick the kicker is charged. Strength 0 disarms it.
func (r *Robot) Kick(strength int) error {
	cmd, err := r.command("kick")
	if err != nil {
		return err
	}
	s := uint8(clampInt(strength, 0, MaxKickStrength))
	cmd.Kick = frame.Kick{Enabled: s > 0, Strength: s}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
