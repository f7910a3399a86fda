package gameplay

import (
	"fmt"
	"sort"
)

// Role is the name of the behavior role currently assigned to the robot.
func (r *Robot) Role() string { return r.role }

// WillKick reports the intent to strike the ball, which loosens restart clearance.
func (r *Robot) WillKick() bool { return r.willKick }

func (r *Robot) SetWillKick(v bool) { r.willKick = v }

// AvoidBall reports the intent to keep a fixed clearance from the ball.
func (r *Robot) AvoidBall() bool { return r.avoidBall }

func (r *Robot) SetAvoidBall(v bool) { r.avoidBall = v }

// ApproachOpponent reports whether the robot intends to get close to opponent id,
// shrinking that opponent's obstacle.
func (r *Robot) ApproachOpponent(id int) bool { return r.approach[id] }

func (r *Robot) SetApproachOpponent(id int, v bool) error {
	if id < 0 || id >= r.rosterSize {
		return r.fail("approach_opponent", fmt.Errorf("%w: %d", ErrOpponentOutOfRange, id))
	}
	if v {
		r.approach[id] = true
	} else {
		delete(r.approach, id)
	}
	return nil
}

// ApproachedOpponents lists the opponent ids flagged for approach, ascending.
func (r *Robot) ApproachedOpponents() []int {
	ids := make([]int, 0, len(r.approach))
	for id := range r.approach {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// OnRoleChanged records the new role and clears every tactical flag.
func (r *Robot) OnRoleChanged(role string) {
	r.role = role
	r.ResetTactics()
}

// ResetTactics clears willKick, avoidBall and all approach flags.
func (r *Robot) ResetTactics() {
	r.willKick = false
	r.avoidBall = false
	clear(r.approach)
}
