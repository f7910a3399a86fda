package gameplay

import "github.com/zeusync/soccer/internal/core/frame"

// UpdatePoseHistory appends the bound record's pose. The tick loop calls it once
// per tick; once the history is full the oldest pose is dropped.
func (r *Robot) UpdatePoseHistory() error {
	if r.record == nil {
		return r.fail("update_pose_history", ErrInvalidState)
	}
	r.history.Push(r.record.Pose())
	return nil
}

// PoseHistory returns the kept poses, oldest first.
func (r *Robot) PoseHistory() []frame.Pose {
	return r.history.Slice()
}

// LastPose returns the newest history entry.
func (r *Robot) LastPose() (frame.Pose, bool) {
	return r.history.Newest()
}

func (r *Robot) PoseHistoryCap() int {
	return r.history.Cap()
}
