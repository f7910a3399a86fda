package bus

import "time"

// EventBus is the in-process pub/sub used for gameplay signals such as role
// changes and restarts.
//
//   - Publish is synchronous: handlers run in the caller goroutine, in
//     subscription order.
//   - Handler errors are joined and returned from Publish.
//   - Per-subscription filters drop events silently before the handler runs.
//   - Metrics are collected only while at least one observer is registered.
type EventBus interface {
	Publish(event Event) error
	PublishBatch(events ...Event) error
	// Subscribe registers handler for eventType. Filters are evaluated for every
	// matching event; if any returns false the handler is skipped.
	Subscribe(eventType string, handler EventHandler, filters ...EventFilter) (Subscription, error)
	// Unsubscribe is safe to call with nil.
	Unsubscribe(Subscription) error

	AddObserver(obs EventBusObserver)
	RemoveObserver(obs EventBusObserver)
	GetMetrics() EventBusMetrics
}

// Event is an immutable message carried by the bus.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

type (
	EventHandler func(event Event) error
	EventFilter  func(event Event) bool
)

// Subscription is a registered handler. Cancel is idempotent.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	Cancel() error
}

// EventBusObserver is told about every delivery. Observers should return quickly.
type EventBusObserver interface {
	OnPublish(eventType string, event Event)
	OnDelivered(eventType string, handlers int, err error, duration time.Duration)
}

type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Filtered          uint64
	Errors            uint64
	SubscribersActive uint64
}
