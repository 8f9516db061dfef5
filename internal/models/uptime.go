package models

// ChartSegment is one uptime period reshaped for the dashboard chart.
type ChartSegment struct {
	Status string `json:"status"` // up | down
	Start  string `json:"start"`
	End    string `json:"end"`
}
