// Package frame holds the per-tick record shared by perception, the robot
// facades and the planner.
//
// Ownership follows the tick: the gameplay module owns the Frame, lends each
// Record to exactly one facade while behaviors run, and then exposes the whole
// frame to the planner through the read-only View.
package frame

import (
	"time"

	"github.com/zeusync/soccer/internal/core/geometry"
)

// PerceivedState is written by perception once per tick.
type PerceivedState struct {
	Pos      geometry.Point
	Vel      geometry.Point
	Angle    float64
	HaveBall bool
	Charged  bool
	// Valid is false when perception did not see the robot this tick.
	Valid bool
	Stamp time.Time
}

// Pose is one pose history entry.
type Pose struct {
	Pos   geometry.Point
	Angle float64
	Stamp time.Time
}

// Record is one robot's slot in the frame.
type Record struct {
	ID    int
	Self  bool
	State PerceivedState
	Cmd   Command
}

// NewRecord returns a record with a neutral command.
func NewRecord(id int, self bool) *Record {
	return &Record{ID: id, Self: self, Cmd: NeutralCommand()}
}

// Pose projects the perceived state onto a history entry.
func (r *Record) Pose() Pose {
	return Pose{Pos: r.State.Pos, Angle: r.State.Angle, Stamp: r.State.Stamp}
}

// RecordView is a read-only window onto a Record.
type RecordView struct {
	r *Record
}

func (v RecordView) ID() int               { return v.r.ID }
func (v RecordView) Self() bool            { return v.r.Self }
func (v RecordView) State() PerceivedState { return v.r.State }
func (v RecordView) Command() Command      { return v.r.Cmd.Clone() }
func (v RecordView) Digest() uint64        { return v.r.Cmd.Digest() }
func (v RecordView) Motion() MotionKind    { return v.r.Cmd.Kind() }
