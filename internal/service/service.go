package service

import (
	"context"
	"time"

	"homepanel/internal/config"
	"homepanel/internal/devices"
	"homepanel/internal/logger"
	"homepanel/internal/models"
	"homepanel/internal/registry"
	"homepanel/internal/repository"
)

// Authorization gates the panel: shared credentials, session cookies and
// bearer tokens.
type Authorization interface {
	CheckCredentials(username, password string) bool
	IssueSession() (string, error)
	ValidSession(value string) bool
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (string, error)
}

// Commands relays control requests to LAN devices.
type Commands interface {
	Switch(ctx context.Context, id, state string) (models.CommandResult, error)
	Climate(ctx context.Context, cmd models.ClimateCommand) (models.CommandResult, error)
	Wake(ctx context.Context) error
}

// Monitoring exposes read-only probes of devices and the media host.
type Monitoring interface {
	ClimateStatus(ctx context.Context) models.StatusReport
	CheckEmby(ctx context.Context) models.Reachability
}

// Uptime reshapes StatusCake periods for the dashboard chart.
type Uptime interface {
	Segments(ctx context.Context) []models.ChartSegment
}

// EventLog exposes the command journal with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.CommandEvent, error)
}

// Updates lets stream consumers react to dispatched commands.
type Updates interface {
	Subscribe() (<-chan string, func())
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Commands
	Monitoring
	Uptime
	EventLog
	Updates
}

// Deps are the collaborators NewService wires into the sub-services.
type Deps struct {
	Config   config.Config
	Registry *registry.Registry
	Devices  *devices.Client
	Periods  PeriodSource
	Repos    *repository.Repository
	Log      *logger.Logger
}

// NewService builds every sub-service from the shared dependencies.
func NewService(d Deps) (*Service, error) {
	auth, err := NewAuthService(d.Config.Auth)
	if err != nil {
		return nil, err
	}

	var events repository.EventRepo
	if d.Repos != nil {
		events = d.Repos.EventRepo
	}

	probeTimeout := d.Config.Timeouts.Probe
	if probeTimeout <= 0 {
		probeTimeout = devices.DefaultProbeTimeout
	}

	updates := NewNotifier()

	return &Service{
		Authorization: auth,
		Commands:      NewDispatcherService(d.Registry, d.Devices, events, d.Config.Wake, d.Log).WithUpdates(updates),
		Monitoring:    NewMonitoringService(d.Registry, d.Devices, d.Config.Emby, probeTimeout),
		Uptime:        NewUptimeService(d.Periods, d.Config.StatusCake.Limit, d.Log),
		EventLog:      NewEventLogService(events),
		Updates:       updates,
	}, nil
}

// clock is swapped in tests.
var clock = func() time.Time { return time.Now().UTC() }
