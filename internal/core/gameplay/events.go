package gameplay

import (
	"time"

	"github.com/zeusync/soccer/internal/core/events/bus"
	"github.com/zeusync/soccer/internal/core/observability/log"
)

const (
	TypeRoleChanged = "gameplay.role_changed"
	TypeRestart     = "gameplay.restart"

	eventSource = "gameplay"
)

// RoleChanged is the payload of TypeRoleChanged events.
type RoleChanged struct {
	RobotID  int
	Previous string
	Role     string
}

// Restart is the payload of TypeRestart events.
type Restart struct {
	Active bool
}

func forRobot(id int) bus.EventFilter {
	return func(e bus.Event) bool {
		rc, ok := e.Data().(RoleChanged)
		return ok && rc.RobotID == id
	}
}

// logObserver writes one debug line per bus delivery.
type logObserver struct {
	log log.Log
}

func (o logObserver) OnPublish(string, bus.Event) {}

func (o logObserver) OnDelivered(eventType string, handlers int, err error, d time.Duration) {
	fields := []log.Field{
		log.String("event", eventType),
		log.Int("handlers", handlers),
		log.Duration("took", d),
	}
	if err != nil {
		o.log.Warn("event delivery failed", append(fields, log.Error(err))...)
		return
	}
	o.log.Debug("event delivered", fields...)
}
