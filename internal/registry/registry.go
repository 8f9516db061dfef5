// Package registry holds the static device tables: logical ids mapped to
// LAN hostnames, plus the per-vendor climate mode vocabularies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"homepanel/internal/config"
)

// Protocol is the wire flavor a climate adapter speaks.
type Protocol string

const (
	// ProtocolQuery posts mode and temp as query parameters to
	// /climate/air_conditioner/set.
	ProtocolQuery Protocol = "query"
	// ProtocolPath puts the raw status as a path segment of /api/state/<status>.
	ProtocolPath Protocol = "path"
)

// ModeFamily selects which vendor mode table an adapter uses.
type ModeFamily string

const (
	FamilyString ModeFamily = "string"
	FamilyInt    ModeFamily = "int"
)

// Adapter is the declarative descriptor of one climate device.
type Adapter struct {
	ID       string
	Host     string
	Protocol Protocol
	Modes    ModeFamily
}

// Switch is a smart switch entry.
type Switch struct {
	ID   string
	Host string
}

var (
	errEmptyID   = errors.New("empty device id")
	errEmptyHost = errors.New("empty host")
)

// Registry is read-only after construction and safe for concurrent use.
type Registry struct {
	climate  map[string]Adapter
	switches map[string]Switch
}

// New validates and indexes the given entries. Ids are case-sensitive and
// must be unique within their registry.
func New(climate []Adapter, switches []Switch) (*Registry, error) {
	r := &Registry{
		climate:  make(map[string]Adapter, len(climate)),
		switches: make(map[string]Switch, len(switches)),
	}
	for _, a := range climate {
		if err := checkEntry(a.ID, a.Host); err != nil {
			return nil, fmt.Errorf("climate %q: %w", a.ID, err)
		}
		if _, dup := r.climate[a.ID]; dup {
			return nil, fmt.Errorf("climate %q: duplicate id", a.ID)
		}
		if a.Protocol == "" {
			a.Protocol = ProtocolQuery
		}
		if a.Modes == "" {
			a.Modes = FamilyString
		}
		r.climate[a.ID] = a
	}
	for _, s := range switches {
		if err := checkEntry(s.ID, s.Host); err != nil {
			return nil, fmt.Errorf("switch %q: %w", s.ID, err)
		}
		if _, dup := r.switches[s.ID]; dup {
			return nil, fmt.Errorf("switch %q: duplicate id", s.ID)
		}
		r.switches[s.ID] = s
	}
	return r, nil
}

// FromConfig builds the registry from the devices section of the config.
func FromConfig(cfg config.DevicesConfig) (*Registry, error) {
	climate := make([]Adapter, 0, len(cfg.Climate))
	for id, d := range cfg.Climate {
		climate = append(climate, Adapter{
			ID:       id,
			Host:     d.Host,
			Protocol: Protocol(d.Protocol),
			Modes:    ModeFamily(d.Modes),
		})
	}
	switches := make([]Switch, 0, len(cfg.Switches))
	for id, d := range cfg.Switches {
		switches = append(switches, Switch{ID: id, Host: d.Host})
	}
	return New(climate, switches)
}

func checkEntry(id, host string) error {
	if strings.TrimSpace(id) == "" {
		return errEmptyID
	}
	if strings.TrimSpace(host) == "" {
		return errEmptyHost
	}
	return nil
}

// Climate looks up a climate adapter by logical id.
func (r *Registry) Climate(id string) (Adapter, bool) {
	a, ok := r.climate[id]
	return a, ok
}

// Switch looks up a switch by logical id.
func (r *Registry) Switch(id string) (Switch, bool) {
	s, ok := r.switches[id]
	return s, ok
}

// ClimateDevices returns all climate adapters ordered by id.
func (r *Registry) ClimateDevices() []Adapter {
	out := make([]Adapter, 0, len(r.climate))
	for _, a := range r.climate {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Switches returns all switches ordered by id.
func (r *Registry) Switches() []Switch {
	out := make([]Switch, 0, len(r.switches))
	for _, s := range r.switches {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
