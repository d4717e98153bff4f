// Package eventbus provides the in-process publish/subscribe bus used to
// observe scheduler and search progress without coupling the core to any
// metrics backend.
package eventbus

// Event represents an arbitrary event passed on the bus.
type Event interface{}

// EventBus is the untyped bus interface consumed by the core packages.
type EventBus interface {
	Publish(Event)
	Subscribe() <-chan Event
	Unsubscribe(<-chan Event)
	Close()
}

// Bus is the default EventBus implementation.
type Bus struct {
	*TypedBus[Event]
}

// New creates a Bus with DefaultBuffer capacity per subscriber.
func New() *Bus { return &Bus{TypedBus: NewTyped[Event]()} }

// NewWithBuffer creates a Bus with the given subscriber capacity.
func NewWithBuffer(buffer int) *Bus {
	return &Bus{TypedBus: NewTypedWithBuffer[Event](buffer)}
}
