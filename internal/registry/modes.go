package registry

import (
	"strconv"
	"strings"
)

// Human-facing climate modes.
const (
	ModeCool = "cool"
	ModeHeat = "heat"
	ModeFan  = "fan"
	ModeDry  = "dry"
	ModeAuto = "auto"
	ModeOff  = "off"
)

// DefaultMode is used whenever a mode cannot be resolved.
const DefaultMode = ModeCool

var stringModes = map[string]string{
	ModeCool: "COOL",
	ModeHeat: "HEAT",
	ModeFan:  "FAN_ONLY",
	ModeDry:  "DRY",
	ModeAuto: "HEAT_COOL",
	ModeOff:  "OFF",
}

// off has no operating code on int-family units; -1 is sent when one is required.
var intModes = map[string]int{
	ModeAuto: 0,
	ModeCool: 1,
	ModeDry:  2,
	ModeFan:  3,
	ModeHeat: 4,
	ModeOff:  -1,
}

var (
	stringToMode = invert(stringModes)
	codeToMode   = invertInt(intModes)
)

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

func invertInt(m map[string]int) map[int]string {
	out := make(map[int]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

func normalizeMode(mode string) string {
	return strings.ToLower(strings.TrimSpace(mode))
}

// WireToken translates a human mode into the string-family token. Unknown
// modes yield the cool token; the function never fails.
func WireToken(mode string) string {
	if t, ok := stringModes[normalizeMode(mode)]; ok {
		return t
	}
	return stringModes[DefaultMode]
}

// WireCode translates a human mode into the int-family code, defaulting to
// the cool code.
func WireCode(mode string) int {
	if c, ok := intModes[normalizeMode(mode)]; ok {
		return c
	}
	return intModes[DefaultMode]
}

// ModeFromToken resolves a string-family token (or a human mode name) back
// to the human mode, defaulting to cool.
func ModeFromToken(token string) string {
	t := strings.TrimSpace(token)
	if m, ok := stringToMode[strings.ToUpper(t)]; ok {
		return m
	}
	if _, ok := stringModes[normalizeMode(t)]; ok {
		return normalizeMode(t)
	}
	return DefaultMode
}

// ModeFromCode resolves an int-family code to the human mode, defaulting to cool.
func ModeFromCode(code int) string {
	if m, ok := codeToMode[code]; ok {
		return m
	}
	return DefaultMode
}

// WireMode is the mode value this adapter expects on the wire. off forces
// the off value regardless of mode.
func (a Adapter) WireMode(mode string, off bool) string {
	if off {
		mode = ModeOff
	}
	if a.Modes == FamilyInt {
		return strconv.Itoa(WireCode(mode))
	}
	return WireToken(mode)
}
