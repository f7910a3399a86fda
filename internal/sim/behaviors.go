package sim

import (
	"github.com/zeusync/soccer/internal/core/frame"
	"github.com/zeusync/soccer/internal/core/gameplay"
	"github.com/zeusync/soccer/internal/core/geometry"
)

const (
	RoleStriker  = "striker"
	RoleDefender = "defender"
)

// BallSource reports the latest perceived ball.
type BallSource func() frame.Ball

// Striker drives to the ball, lines up on the goal and shoots once it holds
// the ball with a charged kicker.
type Striker struct {
	Ball     BallSource
	Goal     geometry.Point
	Strength int
}

func (s Striker) Run(r *gameplay.Robot) error {
	ball := s.Ball()
	if !ball.Valid {
		return r.ResetMotionCommand()
	}
	r.SetWillKick(true)

	have, err := r.HaveBall()
	if err != nil {
		return err
	}
	if !have {
		if err = r.Move(ball.Pos, false); err != nil {
			return err
		}
		if err = r.Dribble(gameplay.MaxDribble / 2); err != nil {
			return err
		}
		return r.Face(ball.Pos, true)
	}

	if err = r.Move(ball.Pos, true); err != nil {
		return err
	}
	if err = r.Face(s.Goal, true); err != nil {
		return err
	}
	charged, err := r.Charged()
	if err != nil {
		return err
	}
	if !charged {
		return r.Kick(0)
	}
	return r.Kick(s.Strength)
}

// Defender holds a point between the ball and its own goal and keeps the
// ball clearance obstacle on.
type Defender struct {
	Ball  BallSource
	Goal  geometry.Point
	Depth float64 // distance in front of the goal
}

func (d Defender) Run(r *gameplay.Robot) error {
	r.SetAvoidBall(true)
	ball := d.Ball()
	if !ball.Valid {
		return r.Move(d.Goal, true)
	}
	guard := d.Goal.Add(ball.Pos.Sub(d.Goal).Normalized().Scale(d.Depth))
	if err := r.Move(guard, true); err != nil {
		return err
	}
	if err := r.SetVScale(0.6); err != nil {
		return err
	}
	return r.Face(ball.Pos, true)
}

var (
	_ gameplay.Behavior = Striker{}
	_ gameplay.Behavior = Defender{}
)
