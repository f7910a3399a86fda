package gameplay

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState means the facade has no record bound for this tick.
	ErrInvalidState = errors.New("robot record is not bound")
	// ErrCallerContract means a command's arguments are structurally unusable
	// (empty path, too few control points, timed nodes out of order).
	ErrCallerContract = errors.New("command violates caller contract")
	// ErrNotVisible means perception did not see the robot this tick.
	ErrNotVisible = errors.New("robot is not visible")
	// ErrNotCommandable means a command was issued to an opponent facade.
	ErrNotCommandable = errors.New("opponent robots cannot be commanded")

	ErrOpponentOutOfRange  = errors.New("opponent id out of roster range")
	ErrUnknownRobot        = errors.New("unknown robot")
	ErrInvalidRobot        = errors.New("invalid robot")
	ErrMissingCollaborator = errors.New("perception and planner are required")
)

// CommandError ties a failed facade call to the robot and operation.
type CommandError struct {
	Robot int
	Op    string
	Err   error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("robot %d: %s: %v", e.Robot, e.Op, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func contractf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCallerContract, fmt.Sprintf(format, args...))
}
