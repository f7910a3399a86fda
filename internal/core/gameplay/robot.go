// Package gameplay exposes each field robot to behavior code through the Robot
// facade and drives the per-tick loop that binds facades to the shared frame.
package gameplay

import (
	"fmt"

	"github.com/zeusync/soccer/internal/core/frame"
	"github.com/zeusync/soccer/internal/core/geometry"
	"github.com/zeusync/soccer/internal/core/obstacles"
	"github.com/zeusync/soccer/internal/core/observability/log"
	"github.com/zeusync/soccer/pkg/sequence"
)

const (
	DefaultRosterSize  = 6
	DefaultPoseHistory = 60
)

// Robot is the facade behavior code uses to read one robot's perceived state
// and to issue its command for the tick.
//
// A Robot reads and writes a frame.Record only while one is bound; the owning
// tick loop binds it before behaviors run and unbinds it before the planner
// reads the frame. Tactical flags and pose history belong to the facade and
// survive across ticks. A Robot is not safe for concurrent use.
type Robot struct {
	id   int
	self bool

	record    *frame.Record
	obstacles *obstacles.Group
	log       log.Log

	rosterSize int
	role       string
	willKick   bool
	avoidBall  bool
	approach   map[int]bool

	history *sequence.Ring[frame.Pose]
}

type robotOptions struct {
	rosterSize  int
	poseHistory int
	obstacles   *obstacles.Group
	logger      log.Log
}

type RobotOption func(*robotOptions)

// WithRosterSize bounds shell ids and the opponent flag set.
func WithRosterSize(n int) RobotOption {
	return func(o *robotOptions) { o.rosterSize = n }
}

// WithPoseHistory sets how many poses are kept.
func WithPoseHistory(capacity int) RobotOption {
	return func(o *robotOptions) { o.poseHistory = capacity }
}

// WithObstacles hands the facade the robot's obstacle group. The group is owned
// by the caller.
func WithObstacles(g *obstacles.Group) RobotOption {
	return func(o *robotOptions) { o.obstacles = g }
}

func WithLogger(l log.Log) RobotOption {
	return func(o *robotOptions) { o.logger = l }
}

// NewRobot creates the facade for shell id on our team (self) or the opponent's.
func NewRobot(id int, self bool, opts ...RobotOption) (*Robot, error) {
	o := robotOptions{rosterSize: DefaultRosterSize, poseHistory: DefaultPoseHistory}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rosterSize < 1 {
		return nil, fmt.Errorf("%w: roster size %d", ErrInvalidRobot, o.rosterSize)
	}
	if id < 0 || id >= o.rosterSize {
		return nil, fmt.Errorf("%w: id %d outside roster of %d", ErrInvalidRobot, id, o.rosterSize)
	}
	if o.poseHistory < 1 {
		return nil, fmt.Errorf("%w: pose history capacity %d", ErrInvalidRobot, o.poseHistory)
	}
	if o.logger == nil {
		o.logger = log.NewNop()
	}
	return &Robot{
		id:         id,
		self:       self,
		obstacles:  o.obstacles,
		log:        o.logger.With(log.Robot(id, self)),
		rosterSize: o.rosterSize,
		approach:   make(map[int]bool, o.rosterSize),
		history:    sequence.NewRing[frame.Pose](o.poseHistory),
	}, nil
}

// Bind gives the facade exclusive access to rec until Unbind. The record must
// belong to this robot.
func (r *Robot) Bind(rec *frame.Record) error {
	if rec == nil {
		return r.fail("bind", ErrInvalidState)
	}
	if rec.ID != r.id || rec.Self != r.self {
		return r.fail("bind", fmt.Errorf("%w: record %d/self=%t", ErrInvalidRobot, rec.ID, rec.Self))
	}
	r.record = rec
	return nil
}

func (r *Robot) Unbind() {
	r.record = nil
}

func (r *Robot) Bound() bool {
	return r.record != nil
}

// Record returns the bound record itself.
func (r *Robot) Record() (*frame.Record, error) {
	if r.record == nil {
		return nil, r.fail("record", ErrInvalidState)
	}
	return r.record, nil
}

// Obstacles returns the robot's obstacle group, nil when none was given.
func (r *Robot) Obstacles() *obstacles.Group {
	return r.obstacles
}

// ID is the shell number.
func (r *Robot) ID() int { return r.id }

// Self reports whether this is one of our robots.
func (r *Robot) Self() bool { return r.self }

// State returns the whole perceived state for the tick.
func (r *Robot) State() (frame.PerceivedState, error) {
	if r.record == nil {
		return frame.PerceivedState{}, r.fail("state", ErrInvalidState)
	}
	return r.record.State, nil
}

// Charged reports whether the kicker is ready.
func (r *Robot) Charged() (bool, error) {
	s, err := r.State()
	return s.Charged, err
}

// Visible reports whether perception saw the robot this tick. Pos, Vel and Angle
// still return the last written values when it is false; use TrustedPose to
// refuse them.
func (r *Robot) Visible() (bool, error) {
	s, err := r.State()
	return s.Valid, err
}

func (r *Robot) Pos() (geometry.Point, error) {
	s, err := r.State()
	return s.Pos, err
}

func (r *Robot) Vel() (geometry.Point, error) {
	s, err := r.State()
	return s.Vel, err
}

// Angle is the global orientation in radians.
func (r *Robot) Angle() (float64, error) {
	s, err := r.State()
	return s.Angle, err
}

func (r *Robot) HaveBall() (bool, error) {
	s, err := r.State()
	return s.HaveBall, err
}

// TrustedPose returns the current pose only when perception saw the robot.
func (r *Robot) TrustedPose() (frame.Pose, error) {
	if r.record == nil {
		return frame.Pose{}, r.fail("pose", ErrInvalidState)
	}
	if !r.record.State.Valid {
		return frame.Pose{}, r.fail("pose", ErrNotVisible)
	}
	return r.record.Pose(), nil
}

func (r *Robot) fail(op string, err error) error {
	r.log.Debug("robot call rejected", log.String("op", op), log.Error(err))
	return &CommandError{Robot: r.id, Op: op, Err: err}
}
