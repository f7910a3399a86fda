package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/soccer/internal/core/geometry"
)

func TestNewFrameAllocatesBothTeams(t *testing.T) {
	f := New(6)
	assert.Equal(t, 6, f.RosterSize())

	r, ok := f.Self(3)
	require.True(t, ok)
	assert.Equal(t, 3, r.ID)
	assert.True(t, r.Self)
	assert.Equal(t, KindIdle, r.Cmd.Motion.Kind())
	assert.Equal(t, 1.0, r.Cmd.VScale)

	o, ok := f.Opponent(5)
	require.True(t, ok)
	assert.False(t, o.Self)

	_, ok = f.Self(6)
	assert.False(t, ok)
	_, ok = f.Opponent(-1)
	assert.False(t, ok)
}

func TestAdvance(t *testing.T) {
	f := New(1)
	now := time.Unix(100, 0)
	f.Advance(now)
	f.Advance(now.Add(time.Second))

	v := f.View()
	assert.Equal(t, uint64(2), v.Tick())
	assert.Equal(t, now.Add(time.Second), v.Stamp())
}

func TestViewReturnsCopies(t *testing.T) {
	f := New(2)
	r, _ := f.Self(0)
	r.Cmd.Motion = Path{Points: []geometry.Point{geometry.Pt(1, 1), geometry.Pt(2, 2)}}

	cmd := f.View().Self()[0].Command()
	path, ok := cmd.Motion.(Path)
	require.True(t, ok)
	path.Points[0] = geometry.Pt(9, 9)

	assert.Equal(t, geometry.Pt(1, 1), r.Cmd.Motion.(Path).Points[0])
	assert.Equal(t, KindPath, f.View().Self()[0].Motion())
}

func TestDigestTracksCommandChanges(t *testing.T) {
	a := NeutralCommand()
	b := NeutralCommand()
	assert.Equal(t, a.Digest(), b.Digest())

	b.Motion = PointGoal{Target: geometry.Pt(1, 2)}
	assert.NotEqual(t, a.Digest(), b.Digest())

	c := NeutralCommand()
	c.Motion = PointGoal{Target: geometry.Pt(1, 2), End: FreeAtEnd}
	assert.NotEqual(t, b.Digest(), c.Digest())

	d := NeutralCommand()
	d.Facing = FacePoint{Target: geometry.Pt(0, 0)}
	assert.NotEqual(t, a.Digest(), d.Digest())

	e := NeutralCommand()
	e.Kick = Kick{Enabled: true, Strength: 200}
	assert.NotEqual(t, a.Digest(), e.Digest())
}

func TestTimedPathAbsoluteTimes(t *testing.T) {
	start := time.Unix(50, 0)
	tp := TimedPath{
		Start: start,
		Nodes: []PathNode{
			{Pos: geometry.Pt(0, 0), Time: 0},
			{Pos: geometry.Pt(1, 0), Time: 1500 * time.Millisecond},
		},
	}
	assert.Equal(t, []time.Time{start, start.Add(1500 * time.Millisecond)}, tp.AbsoluteTimes())
}

func TestEndFor(t *testing.T) {
	assert.Equal(t, StopAtEnd, EndFor(true))
	assert.Equal(t, FreeAtEnd, EndFor(false))
}

func TestZeroCommandReadsAsIdle(t *testing.T) {
	var c Command
	assert.Equal(t, KindIdle, c.Kind())
	assert.Equal(t, NeutralCommand().Kind(), c.Kind())
	assert.NotPanics(t, func() { _ = c.Digest() })

	f := New(1)
	f.SelfRecords()[0].Cmd = Command{}
	assert.Equal(t, KindIdle, f.View().Self()[0].Motion())
}
