package gameplay

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/soccer/internal/core/frame"
	"github.com/zeusync/soccer/internal/core/geometry"
	"github.com/zeusync/soccer/internal/core/obstacles"
)

func boundRobot(t *testing.T, id int, self bool, opts ...RobotOption) (*Robot, *frame.Record) {
	t.Helper()
	r, err := NewRobot(id, self, opts...)
	require.NoError(t, err)
	rec := frame.NewRecord(id, self)
	require.NoError(t, r.Bind(rec))
	return r, rec
}

func TestNewRobotValidatesIdentity(t *testing.T) {
	_, err := NewRobot(6, true)
	assert.ErrorIs(t, err, ErrInvalidRobot)

	_, err = NewRobot(-1, true)
	assert.ErrorIs(t, err, ErrInvalidRobot)

	_, err = NewRobot(0, true, WithPoseHistory(0))
	assert.ErrorIs(t, err, ErrInvalidRobot)

	r, err := NewRobot(10, false, WithRosterSize(11))
	require.NoError(t, err)
	assert.Equal(t, 10, r.ID())
	assert.False(t, r.Self())
}

func TestAccessorsRequireBoundRecord(t *testing.T) {
	r, err := NewRobot(3, true)
	require.NoError(t, err)

	_, err = r.Pos()
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = r.Vel()
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = r.Angle()
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = r.Charged()
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = r.Visible()
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = r.HaveBall()
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = r.Record()
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, r.Move(geometry.Pt(1, 1), true), ErrInvalidState)
	assert.ErrorIs(t, r.UpdatePoseHistory(), ErrInvalidState)
	assert.ErrorIs(t, r.Bind(nil), ErrInvalidState)

	var cerr *CommandError
	require.ErrorAs(t, r.Kick(10), &cerr)
	assert.Equal(t, 3, cerr.Robot)
	assert.Equal(t, "kick", cerr.Op)

	// identity never needs a record
	assert.Equal(t, 3, r.ID())
	assert.True(t, r.Self())
}

func TestBindRejectsForeignRecord(t *testing.T) {
	r, err := NewRobot(1, true)
	require.NoError(t, err)
	assert.ErrorIs(t, r.Bind(frame.NewRecord(2, true)), ErrInvalidRobot)
	assert.ErrorIs(t, r.Bind(frame.NewRecord(1, false)), ErrInvalidRobot)
	assert.False(t, r.Bound())
}

func TestAccessorsProjectState(t *testing.T) {
	r, rec := boundRobot(t, 2, true)
	rec.State = frame.PerceivedState{
		Pos:      geometry.Pt(1, -1),
		Vel:      geometry.Pt(0.5, 0),
		Angle:    1.2,
		HaveBall: true,
		Charged:  true,
		Valid:    true,
	}

	pos, err := r.Pos()
	require.NoError(t, err)
	assert.Equal(t, geometry.Pt(1, -1), pos)

	vel, _ := r.Vel()
	assert.Equal(t, geometry.Pt(0.5, 0), vel)
	angle, _ := r.Angle()
	assert.Equal(t, 1.2, angle)
	have, _ := r.HaveBall()
	assert.True(t, have)
	charged, _ := r.Charged()
	assert.True(t, charged)
	visible, _ := r.Visible()
	assert.True(t, visible)

	got, err := r.Record()
	require.NoError(t, err)
	assert.Same(t, rec, got)

	r.Unbind()
	assert.False(t, r.Bound())
}

func TestInvisibleRobotStillReportsPose(t *testing.T) {
	r, rec := boundRobot(t, 0, true)
	rec.State.Pos = geometry.Pt(3, 3)
	rec.State.Valid = false

	pos, err := r.Pos()
	require.NoError(t, err)
	assert.Equal(t, geometry.Pt(3, 3), pos)

	_, err = r.TrustedPose()
	assert.ErrorIs(t, err, ErrNotVisible)

	rec.State.Valid = true
	pose, err := r.TrustedPose()
	require.NoError(t, err)
	assert.Equal(t, geometry.Pt(3, 3), pose.Pos)
}

func TestSetVScaleClamps(t *testing.T) {
	r, rec := boundRobot(t, 0, true)
	cases := map[float64]float64{
		1.5:  1.0,
		-0.2: 0.0,
		0.4:  0.4,
		1.0:  1.0,
		0.0:  0.0,
	}
	for in, want := range cases {
		require.NoError(t, r.SetVScale(in))
		assert.Equal(t, want, rec.Cmd.VScale, "scale %v", in)
	}

	require.NoError(t, r.SetVScale(0.7))
	require.NoError(t, r.SetVScale(math.NaN()))
	assert.Zero(t, rec.Cmd.VScale)
}

func TestMovePointScenario(t *testing.T) {
	r, rec := boundRobot(t, 3, true)

	require.NoError(t, r.Move(geometry.Pt(1.0, 2.0), true))
	goal, ok := rec.Cmd.Motion.(frame.PointGoal)
	require.True(t, ok)
	assert.Equal(t, geometry.Pt(1.0, 2.0), goal.Target)
	assert.Equal(t, frame.StopAtEnd, goal.End)

	require.NoError(t, r.Move(geometry.Pt(0, 0), false))
	assert.Equal(t, frame.FreeAtEnd, rec.Cmd.Motion.(frame.PointGoal).End)
}

func TestNewCommandReplacesPrevious(t *testing.T) {
	r, rec := boundRobot(t, 1, true)
	center := geometry.Pt(0, 0)

	issue := []struct {
		name string
		call func() error
		kind frame.MotionKind
	}{
		{"point", func() error { return r.Move(geometry.Pt(1, 1), true) }, frame.KindPoint},
		{"path", func() error { return r.MovePath([]geometry.Point{{X: 1}, {X: 2}}, true) }, frame.KindPath},
		{"bezier", func() error {
			return r.BezierMove([]geometry.Point{{X: 0}, {X: 1}, {X: 2, Y: 1}}, frame.OrientationEndpoint, frame.StopAtEnd)
		}, frame.KindBezier},
		{"velocity", func() error { return r.MoveVelocity(geometry.Pt(0.5, 0), 1) }, frame.KindVelocity},
		{"timed", func() error {
			return r.MoveTimed([]frame.PathNode{{Time: 0}, {Pos: geometry.Pt(1, 0), Time: time.Second}}, time.Unix(0, 0))
		}, frame.KindTimedPath},
		{"spin", func() error { return r.Spin(frame.SpinCounterClockwise) }, frame.KindSpin},
		{"pivot", func() error { return r.Pivot(center, frame.PivotClockwise) }, frame.KindPivot},
	}
	for _, c := range issue {
		require.NoError(t, c.call(), c.name)
		assert.Equal(t, c.kind, rec.Cmd.Motion.Kind(), c.name)
	}

	// the last command fully replaced the earlier ones
	pivot, ok := rec.Cmd.Motion.(frame.Pivot)
	require.True(t, ok)
	assert.Equal(t, frame.Pivot{Center: center, Dir: frame.PivotClockwise}, pivot)
}

func TestPivotBooleanSugar(t *testing.T) {
	r, rec := boundRobot(t, 0, true)

	require.NoError(t, r.PivotCW(geometry.Pt(1, 1), true))
	assert.Equal(t, frame.PivotClockwise, rec.Cmd.Motion.(frame.Pivot).Dir)

	require.NoError(t, r.PivotCW(geometry.Pt(1, 1), false))
	assert.Equal(t, frame.PivotCounterClockwise, rec.Cmd.Motion.(frame.Pivot).Dir)
}

func TestFacingIsLayeredOnMotion(t *testing.T) {
	r, rec := boundRobot(t, 0, true)
	require.NoError(t, r.Move(geometry.Pt(2, 0), true))

	require.NoError(t, r.Face(geometry.Pt(5, 5), true))
	assert.Equal(t, frame.FacePoint{Target: geometry.Pt(5, 5), Continuous: true}, rec.Cmd.Facing)
	assert.Equal(t, frame.KindPoint, rec.Cmd.Motion.Kind())

	require.NoError(t, r.FaceNone())
	assert.Equal(t, frame.FaceNone{}, rec.Cmd.Facing)
	assert.Equal(t, frame.KindPoint, rec.Cmd.Motion.Kind())

	require.NoError(t, r.Face(geometry.Pt(1, 1), false))
	require.NoError(t, r.Spin(frame.SpinClockwise))
	assert.Equal(t, frame.FacePoint{Target: geometry.Pt(1, 1)}, rec.Cmd.Facing)
}

func TestDribbleAndKickLeaveMotionAlone(t *testing.T) {
	r, rec := boundRobot(t, 0, true)
	require.NoError(t, r.Spin(frame.SpinClockwise))

	require.NoError(t, r.Dribble(-50))
	require.NoError(t, r.Kick(200))

	assert.Equal(t, int8(-50), rec.Cmd.Dribble)
	assert.Equal(t, frame.Kick{Enabled: true, Strength: 200}, rec.Cmd.Kick)
	assert.Equal(t, frame.Spin{Dir: frame.SpinClockwise}, rec.Cmd.Motion)
}

func TestKickAndDribbleClamp(t *testing.T) {
	r, rec := boundRobot(t, 0, true)

	require.NoError(t, r.Kick(1000))
	assert.Equal(t, uint8(255), rec.Cmd.Kick.Strength)
	require.NoError(t, r.Kick(-5))
	assert.Equal(t, frame.Kick{}, rec.Cmd.Kick)

	require.NoError(t, r.Dribble(300))
	assert.Equal(t, int8(127), rec.Cmd.Dribble)
	require.NoError(t, r.Dribble(-300))
	assert.Equal(t, int8(-128), rec.Cmd.Dribble)
	require.NoError(t, r.Dribble(-128))
	assert.Equal(t, int8(-128), rec.Cmd.Dribble)
	require.NoError(t, r.Dribble(-127))
	assert.Equal(t, int8(-127), rec.Cmd.Dribble)
}

func TestResetMotionCommand(t *testing.T) {
	r, rec := boundRobot(t, 0, true)
	require.NoError(t, r.MovePath([]geometry.Point{{X: 1}}, false))
	require.NoError(t, r.Face(geometry.Pt(1, 1), true))
	require.NoError(t, r.Dribble(40))
	require.NoError(t, r.Kick(100))
	require.NoError(t, r.SetVScale(0.3))

	require.NoError(t, r.ResetMotionCommand())

	cmd, err := r.Command()
	require.NoError(t, err)
	assert.Equal(t, frame.KindIdle, cmd.Motion.Kind())
	assert.Equal(t, frame.FaceNone{}, cmd.Facing)
	assert.Zero(t, cmd.Dribble)
	assert.Equal(t, frame.Kick{}, cmd.Kick)
	assert.Equal(t, DefaultVScale, cmd.VScale)
	assert.Equal(t, frame.NeutralCommand(), rec.Cmd)
}

func TestTimedPathRejectsNonMonotonicNodes(t *testing.T) {
	r, rec := boundRobot(t, 0, true)
	require.NoError(t, r.Move(geometry.Pt(1, 1), true))
	before := rec.Cmd

	start := time.Unix(1000, 0)
	nodes := []frame.PathNode{
		{Pos: geometry.Pt(0, 0), Time: 0},
		{Pos: geometry.Pt(1, 0), Time: 2 * time.Second},
		{Pos: geometry.Pt(2, 0), Time: 1 * time.Second},
	}
	err := r.MoveTimed(nodes, start)
	assert.ErrorIs(t, err, ErrCallerContract)
	assert.Equal(t, before, rec.Cmd, "rejected command must not touch the record")

	err = r.MoveTimed([]frame.PathNode{{Time: -time.Second}}, start)
	assert.ErrorIs(t, err, ErrCallerContract)
	assert.ErrorIs(t, r.MoveTimed(nil, start), ErrCallerContract)
}

func TestTimedPathCopiesNodes(t *testing.T) {
	r, rec := boundRobot(t, 0, true)
	start := time.Unix(1000, 0)
	nodes := []frame.PathNode{
		{Pos: geometry.Pt(0, 0), Time: 0},
		{Pos: geometry.Pt(1, 0), Time: time.Second},
	}
	require.NoError(t, r.MoveTimed(nodes, start))
	nodes[1].Pos = geometry.Pt(9, 9)

	tp := rec.Cmd.Motion.(frame.TimedPath)
	assert.Equal(t, geometry.Pt(1, 0), tp.Nodes[1].Pos)
	assert.Equal(t, start, tp.Start)
}

func TestPathAndBezierStructuralChecks(t *testing.T) {
	r, _ := boundRobot(t, 0, true)
	assert.ErrorIs(t, r.MovePath(nil, true), ErrCallerContract)
	assert.ErrorIs(t, r.BezierMove([]geometry.Point{{X: 1}}, frame.OrientationNone, frame.StopAtEnd), ErrCallerContract)
}

func TestOpponentFacadeIsReadOnly(t *testing.T) {
	r, rec := boundRobot(t, 4, false)
	rec.State.Pos = geometry.Pt(1, 1)

	pos, err := r.Pos()
	require.NoError(t, err)
	assert.Equal(t, geometry.Pt(1, 1), pos)
	assert.ErrorIs(t, r.Move(geometry.Pt(0, 0), true), ErrNotCommandable)
	assert.ErrorIs(t, r.Kick(10), ErrNotCommandable)
}

func TestPoseHistoryEvictsOldest(t *testing.T) {
	const capacity = 4
	r, rec := boundRobot(t, 0, true, WithPoseHistory(capacity))
	base := time.Unix(0, 0)

	for i := 0; i < 10; i++ {
		rec.State.Pos = geometry.Pt(float64(i), 0)
		rec.State.Angle = float64(i) / 10
		rec.State.Stamp = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, r.UpdatePoseHistory())
	}

	history := r.PoseHistory()
	require.Len(t, history, capacity)
	assert.Equal(t, capacity, r.PoseHistoryCap())
	for i, p := range history {
		assert.Equal(t, geometry.Pt(float64(6+i), 0), p.Pos)
		assert.Equal(t, base.Add(time.Duration(6+i)*time.Second), p.Stamp)
	}
	last, ok := r.LastPose()
	require.True(t, ok)
	assert.Equal(t, geometry.Pt(9, 0), last.Pos)
}

func TestTacticalFlagsResetOnRoleChange(t *testing.T) {
	r, err := NewRobot(0, true)
	require.NoError(t, err)

	r.SetWillKick(true)
	r.SetAvoidBall(true)
	require.NoError(t, r.SetApproachOpponent(2, true))
	require.NoError(t, r.SetApproachOpponent(5, true))
	assert.Equal(t, []int{2, 5}, r.ApproachedOpponents())
	assert.ErrorIs(t, r.SetApproachOpponent(6, true), ErrOpponentOutOfRange)

	r.OnRoleChanged("striker")

	assert.Equal(t, "striker", r.Role())
	assert.False(t, r.WillKick())
	assert.False(t, r.AvoidBall())
	for id := 0; id < DefaultRosterSize; id++ {
		assert.False(t, r.ApproachOpponent(id))
	}
	assert.Empty(t, r.ApproachedOpponents())
}

func TestObstaclesHandle(t *testing.T) {
	g := obstacles.NewGroup()
	r, err := NewRobot(0, true, WithObstacles(g))
	require.NoError(t, err)
	assert.Same(t, g, r.Obstacles())

	r.Obstacles().Add(obstacles.NewCircle(geometry.Pt(0, 0), 1))
	assert.Equal(t, 1, g.Len())
}
