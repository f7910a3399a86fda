package frame

import (
	"time"

	"github.com/zeusync/soccer/internal/core/geometry"
)

// MotionKind names the active MotionCommand variant.
type MotionKind string

const (
	KindIdle      MotionKind = "idle"
	KindVelocity  MotionKind = "velocity"
	KindPoint     MotionKind = "point"
	KindPath      MotionKind = "path"
	KindBezier    MotionKind = "bezier"
	KindTimedPath MotionKind = "timed_path"
	KindPivot     MotionKind = "pivot"
	KindSpin      MotionKind = "spin"
)

// MotionCommand is the single translational mode a robot executes this tick.
// The set of variants is closed; see the Kind constants.
type MotionCommand interface {
	Kind() MotionKind
	clone() MotionCommand
}

// PathEnd tells the planner what to do when a path runs out.
type PathEnd uint8

const (
	// StopAtEnd brings the robot to rest on the final point.
	StopAtEnd PathEnd = iota
	// FreeAtEnd keeps the exit velocity direction. The caller must issue a new
	// command before the robot arrives.
	FreeAtEnd
)

// EndFor maps the stop-at-end convenience flag to a PathEnd.
func EndFor(stopAtEnd bool) PathEnd {
	if stopAtEnd {
		return StopAtEnd
	}
	return FreeAtEnd
}

// Orientation selects how the robot faces while following a bezier curve.
type Orientation uint8

const (
	OrientationNone Orientation = iota
	OrientationEndpoint
	OrientationContinuous
)

type SpinDir uint8

const (
	SpinClockwise SpinDir = iota
	SpinCounterClockwise
)

type PivotDir uint8

const (
	PivotClockwise PivotDir = iota
	PivotCounterClockwise
)

// PathNode is one timed waypoint. Time is an offset from the path start.
type PathNode struct {
	Pos  geometry.Point `json:"pos" yaml:"pos"`
	Time time.Duration  `json:"time" yaml:"time"`
}

type Idle struct{}

// Velocity bypasses the planner entirely.
type Velocity struct {
	Trans   geometry.Point
	Angular float64
}

type PointGoal struct {
	Target geometry.Point
	End    PathEnd
}

type Path struct {
	Points []geometry.Point
	End    PathEnd
}

// Bezier carries control points, not waypoints. Planning cost grows with their count.
type Bezier struct {
	Controls []geometry.Point
	Facing   Orientation
	End      PathEnd
}

type TimedPath struct {
	Nodes []PathNode
	Start time.Time
}

// Pivot holds a fixed radius from Center while rotating about it.
type Pivot struct {
	Center geometry.Point
	Dir    PivotDir
}

// Spin rotates in place until replaced.
type Spin struct {
	Dir SpinDir
}

func (Idle) Kind() MotionKind      { return KindIdle }
func (Velocity) Kind() MotionKind  { return KindVelocity }
func (PointGoal) Kind() MotionKind { return KindPoint }
func (Path) Kind() MotionKind      { return KindPath }
func (Bezier) Kind() MotionKind    { return KindBezier }
func (TimedPath) Kind() MotionKind { return KindTimedPath }
func (Pivot) Kind() MotionKind     { return KindPivot }
func (Spin) Kind() MotionKind      { return KindSpin }

func (c Idle) clone() MotionCommand      { return c }
func (c Velocity) clone() MotionCommand  { return c }
func (c PointGoal) clone() MotionCommand { return c }
func (c Pivot) clone() MotionCommand     { return c }
func (c Spin) clone() MotionCommand      { return c }

func (c Path) clone() MotionCommand {
	c.Points = append([]geometry.Point(nil), c.Points...)
	return c
}

func (c Bezier) clone() MotionCommand {
	c.Controls = append([]geometry.Point(nil), c.Controls...)
	return c
}

func (c TimedPath) clone() MotionCommand {
	c.Nodes = append([]PathNode(nil), c.Nodes...)
	return c
}

// AbsoluteTimes resolves each node's offset against Start.
func (c TimedPath) AbsoluteTimes() []time.Time {
	out := make([]time.Time, len(c.Nodes))
	for i, n := range c.Nodes {
		out[i] = c.Start.Add(n.Time)
	}
	return out
}

// Facing is layered on top of the motion variant and replaced independently of it.
type Facing interface {
	facing()
}

type FaceNone struct{}

// FacePoint turns the robot toward Target. When Continuous is set the heading is
// recomputed every tick instead of being fixed when the command was issued.
type FacePoint struct {
	Target     geometry.Point
	Continuous bool
}

func (FaceNone) facing()  {}
func (FacePoint) facing() {}

// Kick arms the kicker. It fires on the next tick the kicker reports charged.
type Kick struct {
	Enabled  bool
	Strength uint8
}

// Command is everything a robot is told to do for one tick.
type Command struct {
	Motion  MotionCommand
	Facing  Facing
	Dribble int8
	Kick    Kick
	VScale  float64
}

// NeutralCommand is idle, facing nothing, with kicker and dribbler off and full speed.
func NeutralCommand() Command {
	return Command{
		Motion: Idle{},
		Facing: FaceNone{},
		VScale: 1.0,
	}
}

// Kind names the motion variant; a command with no motion counts as idle.
func (c Command) Kind() MotionKind {
	if c.Motion == nil {
		return KindIdle
	}
	return c.Motion.Kind()
}

// Clone deep-copies the variant payloads.
func (c Command) Clone() Command {
	if c.Motion != nil {
		c.Motion = c.Motion.clone()
	}
	return c
}
