package models

import "time"

// Command event types recorded in the journal.
const (
	EventSwitch  = "SWITCH"
	EventClimate = "CLIMATE"
	EventWake    = "WAKE"
	EventError   = "ERROR"
)

// CommandEvent is a single journal entry for a dispatched device command.
type CommandEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`             // SWITCH | CLIMATE | WAKE | ERROR
	Device      string    `json:"device,omitempty"` // switch or room id; wake method for WAKE
	Description string    `json:"description"`      // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
