package gameplay

import (
	"github.com/zeusync/soccer/internal/config"
	"github.com/zeusync/soccer/internal/core/geometry"
	"github.com/zeusync/soccer/internal/core/obstacles"
)

// defenseAreas returns our and the opponent's defense area, or nils when the
// configured area is empty. We defend the goal on the negative x side.
func defenseAreas(cfg config.Gameplay) (ours, theirs *obstacles.Rect) {
	if cfg.DefenseDepth <= 0 || cfg.DefenseWidth <= 0 {
		return nil, nil
	}
	goal, halfWidth := cfg.FieldLength/2, cfg.DefenseWidth/2
	ours = obstacles.NewRect(geometry.Pt(-goal, -halfWidth), geometry.Pt(-goal+cfg.DefenseDepth, halfWidth))
	theirs = obstacles.NewRect(geometry.Pt(goal-cfg.DefenseDepth, -halfWidth), geometry.Pt(goal, halfWidth))
	return ours, theirs
}

// rebuildObstacles refreshes each friendly robot's group from this tick's frame
// and its tactical flags. Defense areas stay in the group across ticks; only
// the obstacles added by the previous rebuild are dropped.
func (m *Module) rebuildObstacles() {
	ball := m.frame.Ball
	for _, r := range m.self {
		id := r.ID()
		g := m.groups[id]
		for _, oid := range m.dynamic[id] {
			g.Remove(oid)
		}
		m.dynamic[id] = m.dynamic[id][:0]
		m.syncOwnArea(r, g)

		add := func(o obstacles.Obstacle) {
			g.Add(o)
			m.dynamic[id] = append(m.dynamic[id], o.ID())
		}
		for _, other := range m.frame.SelfRecords() {
			if other.ID == id || !other.State.Valid {
				continue
			}
			add(obstacles.NewCircle(other.State.Pos, m.cfg.RobotRadius))
		}
		for _, opp := range m.frame.OpponentRecords() {
			if !opp.State.Valid {
				continue
			}
			radius := m.cfg.RobotRadius
			if r.ApproachOpponent(opp.ID) {
				radius = m.cfg.ApproachRadius
			}
			add(obstacles.NewCircle(opp.State.Pos, radius))
		}

		if !ball.Valid {
			continue
		}
		switch {
		case r.AvoidBall():
			add(obstacles.NewCircle(ball.Pos, m.cfg.AvoidBallRadius))
		case m.restart && !r.WillKick():
			add(obstacles.NewCircle(ball.Pos, m.cfg.RestartClearance))
		}
	}
}

// syncOwnArea keeps our defense area in every group except the goalie's.
func (m *Module) syncOwnArea(r *Robot, g *obstacles.Group) {
	if m.ownArea == nil {
		return
	}
	goalie := m.cfg.GoalieRole != "" && r.Role() == m.cfg.GoalieRole
	switch in := m.ownAreaIn[r.ID()]; {
	case !goalie && !in:
		g.Add(m.ownArea)
	case goalie && in:
		g.Remove(m.ownArea.ID())
	}
	m.ownAreaIn[r.ID()] = !goalie
}
