package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "roster.changed").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used both for publishing and for
// reconstructing events on the consumer side.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeRosterChanged = "roster.changed"
)

// NewRosterChangedEvent signals that a ficha's enrollment or its students'
// face encodings changed, so cached encoding sets for that ficha are stale.
func NewRosterChangedEvent(fichaId uuid.UUID, reason string) BaseEvent {
	return BaseEvent{
		Type: TypeRosterChanged,
		Data: map[string]interface{}{
			"ficha_id": fichaId.String(),
			"reason":   reason,
		},
		OccurredAt: time.Now(),
	}
}
