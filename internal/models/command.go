package models

// ClimateCommand is the inbound request to set a room's air-conditioner.
type ClimateCommand struct {
	RoomID string   `json:"roomId"`
	Mode   string   `json:"mode,omitempty"`
	Temp   *float64 `json:"temp,omitempty"`
	Status string   `json:"status,omitempty"` // "off" powers the unit down
}

// CommandResult reports how a device answered a relayed command.
type CommandResult struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code"`
	Target     string `json:"target"`
	Device     string `json:"device,omitempty"`
	State      string `json:"state,omitempty"`
}
