package gameplay

import (
	"github.com/zeusync/soccer/internal/core/frame"
	"github.com/zeusync/soccer/internal/core/obstacles"
)

// Perception writes this tick's perceived state into every record and the ball.
type Perception interface {
	Refresh(f *frame.Frame) error
}

// ObstacleSource gives the planner each friendly robot's obstacle group.
type ObstacleSource interface {
	Obstacles(id int) *obstacles.Group
}

// Planner consumes the finished frame once all behaviors for the tick have run.
// Infeasible commands are its concern and surface from Execute.
type Planner interface {
	Execute(view frame.View, obs ObstacleSource) error
}

// Behavior issues one robot's command for the tick.
type Behavior interface {
	Run(r *Robot) error
}

// BehaviorFunc adapts a function to Behavior.
type BehaviorFunc func(r *Robot) error

func (f BehaviorFunc) Run(r *Robot) error { return f(r) }
