package events

import "time"

// Kafka topics
const (
	TopicMovementRecorded = "equiptrack.movements"
)

// Event types
const (
	EventTypeMovementRecorded = "movement.recorded"
)

// MovementRecordedEvent is emitted after a movement entry is committed
type MovementRecordedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`

	MovementID uint      `json:"movement_id"`
	Datetime   time.Time `json:"datetime"`
	User       string    `json:"user"`
	Action     string    `json:"action"`
	ItemName   string    `json:"item_name"`
	Quantity   int       `json:"quantity"`
	FromTable  string    `json:"from_table"`
	ToTable    string    `json:"to_table"`
}
