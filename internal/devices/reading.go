package devices

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Reading is the JSON body a climate device returns from /api/status.
type Reading struct {
	Power              Power    `json:"power"`
	CurrentTemperature *float64 `json:"current_temperature"`
	TargetTemperature  *float64 `json:"target_temperature"`
	IndoorTemperature  *float64 `json:"indoor_temperature"`
	OutdoorTemperature *float64 `json:"outdoor_temperature"`
	Mode               Mode     `json:"mode"`
}

// Power accepts a JSON bool, a number (non-zero is on) or an "ON"/"OFF"
// style string. Any other shape leaves Set false.
type Power struct {
	Set bool
	On  bool
}

func (p *Power) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("power: %w", err)
	}
	switch x := v.(type) {
	case bool:
		*p = Power{Set: true, On: x}
	case float64:
		*p = Power{Set: true, On: x != 0}
	case string:
		switch strings.ToUpper(strings.TrimSpace(x)) {
		case "ON", "TRUE", "1":
			*p = Power{Set: true, On: true}
		case "OFF", "FALSE", "0":
			*p = Power{Set: true, On: false}
		}
	}
	return nil
}

// Mode holds either an integer code or a string token, whichever the
// vendor sends. Other shapes decode to the zero Mode, which resolves to
// the default mode.
type Mode struct {
	Code  *int
	Token string
}

func (m *Mode) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	switch x := v.(type) {
	case float64:
		if x == math.Trunc(x) && math.Abs(x) <= math.MaxInt32 {
			n := int(x)
			m.Code = &n
		}
	case string:
		m.Token = x
	}
	return nil
}
