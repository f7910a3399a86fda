package frame

import (
	"time"

	"github.com/zeusync/soccer/internal/core/geometry"
)

// Ball is the perceived ball for the tick.
type Ball struct {
	Pos   geometry.Point
	Vel   geometry.Point
	Valid bool
}

// Frame is the full shared record for one tick: one Record per roster slot on
// each team plus the ball.
type Frame struct {
	Tick  uint64
	Stamp time.Time
	Ball  Ball

	self      []*Record
	opponents []*Record
}

// New allocates records for rosterSize robots per team.
func New(rosterSize int) *Frame {
	f := &Frame{
		self:      make([]*Record, rosterSize),
		opponents: make([]*Record, rosterSize),
	}
	for i := 0; i < rosterSize; i++ {
		f.self[i] = NewRecord(i, true)
		f.opponents[i] = NewRecord(i, false)
	}
	return f
}

func (f *Frame) RosterSize() int { return len(f.self) }

// Self returns our record for shell id.
func (f *Frame) Self(id int) (*Record, bool) {
	if id < 0 || id >= len(f.self) {
		return nil, false
	}
	return f.self[id], true
}

// Opponent returns the opponent record for shell id.
func (f *Frame) Opponent(id int) (*Record, bool) {
	if id < 0 || id >= len(f.opponents) {
		return nil, false
	}
	return f.opponents[id], true
}

// SelfRecords returns our records ordered by id. The slice is shared.
func (f *Frame) SelfRecords() []*Record { return f.self }

// OpponentRecords returns the opponent records ordered by id. The slice is shared.
func (f *Frame) OpponentRecords() []*Record { return f.opponents }

// Advance starts a new tick at stamp.
func (f *Frame) Advance(stamp time.Time) {
	f.Tick++
	f.Stamp = stamp
}

// View returns the read-only window handed to the planner after behaviors ran.
func (f *Frame) View() View { return View{f: f} }

// View is a read-only window onto a Frame.
type View struct {
	f *Frame
}

func (v View) Tick() uint64     { return v.f.Tick }
func (v View) Stamp() time.Time { return v.f.Stamp }
func (v View) Ball() Ball       { return v.f.Ball }

func (v View) Self() []RecordView { return views(v.f.self) }

func (v View) Opponents() []RecordView { return views(v.f.opponents) }

func views(records []*Record) []RecordView {
	out := make([]RecordView, len(records))
	for i, r := range records {
		out[i] = RecordView{r: r}
	}
	return out
}
