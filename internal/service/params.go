package service

import "time"

// Switch states accepted by the dispatcher.
const (
	StateOn  = "ON"
	StateOff = "OFF"
)

// LogFilter selects journal entries. Zero fields do not filter.
type LogFilter struct {
	From   time.Time
	To     time.Time
	Type   string // SWITCH | CLIMATE | WAKE | ERROR
	Device string // switch or room id
	Limit  int    // newest entries to return; 0 means DefaultLogLimit
}
