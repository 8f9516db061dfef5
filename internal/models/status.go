package models

import "time"

// DeviceStatus is the probed state of one climate device. An offline
// device carries only Online=false.
type DeviceStatus struct {
	Online      bool     `json:"online"`
	Power       *bool    `json:"power,omitempty"`
	Mode        string   `json:"mode,omitempty"`
	CurrentTemp *float64 `json:"current_temp,omitempty"`
	TargetTemp  *float64 `json:"target_temp,omitempty"`
	IndoorTemp  *float64 `json:"indoor_temp,omitempty"`
	OutdoorTemp *float64 `json:"outdoor_temp,omitempty"`
}

// SwitchStatus is the inferred state of a smart switch. Source names where
// the state came from; "reachability" marks the media-host heuristic.
type SwitchStatus struct {
	State  string `json:"state"` // ON | OFF
	Source string `json:"source"`
}

// Averages are rounded to one decimal; a field is nil when no device
// reported that reading.
type Averages struct {
	Indoor  *float64 `json:"indoor,omitempty"`
	Outdoor *float64 `json:"outdoor,omitempty"`
}

// StatusReport is the aggregated dashboard view.
type StatusReport struct {
	Devices   map[string]DeviceStatus `json:"devices"`
	Switches  map[string]SwitchStatus `json:"switches"`
	Averages  Averages                `json:"averages"`
	Timestamp time.Time               `json:"timestamp"`
}

// Reachability is the result of a raw connection probe.
type Reachability struct {
	Reachable bool      `json:"reachable"`
	Server    string    `json:"server"`
	Port      int       `json:"port"`
	Timestamp time.Time `json:"timestamp"`
}
