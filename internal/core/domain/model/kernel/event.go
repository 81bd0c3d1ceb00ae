package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a command.
// Events leave the process only after the transaction that produced them commits.
type DomainEvent interface {
	EventName() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// EventSource is implemented by aggregates that record events.
type EventSource interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}

// EventRecorder is embedded by aggregates to implement EventSource.
type EventRecorder struct {
	events []DomainEvent
}

func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

func (r *EventRecorder) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}

// EventHeader carries the fields every event shares. Concrete events embed it.
type EventHeader struct {
	Name      string    `json:"event"`
	Aggregate UUID      `json:"aggregate_id"`
	At        time.Time `json:"occurred_at"`
	Actor     Actor     `json:"actor,omitempty"`
}

func NewEventHeader(name string, aggregateID UUID, actor Actor, at time.Time) EventHeader {
	return EventHeader{Name: name, Aggregate: aggregateID, At: at, Actor: actor}
}

func (h EventHeader) EventName() string     { return h.Name }
func (h EventHeader) AggregateID() UUID     { return h.Aggregate }
func (h EventHeader) OccurredAt() time.Time { return h.At }
