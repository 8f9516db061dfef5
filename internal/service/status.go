package service

import (
	"context"
	"math"
	"time"

	"homepanel/internal/config"
	"homepanel/internal/devices"
	"homepanel/internal/metrics"
	"homepanel/internal/models"
	"homepanel/internal/registry"

	"golang.org/x/sync/errgroup"
)

// SourceReachability marks a switch state inferred from the media host
// reachability probe rather than read from the switch.
const SourceReachability = "reachability"

// MonitoringService builds the dashboard status view.
type MonitoringService struct {
	registry     *registry.Registry
	devices      *devices.Client
	emby         config.EmbyConfig
	probeTimeout time.Duration

	// reachable is devices.Reachable; swapped in tests.
	reachable func(ctx context.Context, host string, port int, timeout time.Duration) bool
}

func NewMonitoringService(reg *registry.Registry, client *devices.Client, emby config.EmbyConfig, probeTimeout time.Duration) *MonitoringService {
	return &MonitoringService{
		registry:     reg,
		devices:      client,
		emby:         emby,
		probeTimeout: probeTimeout,
		reachable:    devices.Reachable,
	}
}

// ClimateStatus probes every climate device concurrently. A failing device
// shows up as offline and never affects the others.
func (s *MonitoringService) ClimateStatus(ctx context.Context) models.StatusReport {
	adapters := s.registry.ClimateDevices()
	switches := s.registry.Switches()

	statuses := make([]models.DeviceStatus, len(adapters))
	var mediaUp bool

	var g errgroup.Group
	for i, a := range adapters {
		i, a := i, a
		g.Go(func() error {
			statuses[i] = s.probeDevice(ctx, a)
			return nil
		})
	}
	if len(switches) > 0 {
		g.Go(func() error {
			mediaUp = s.mediaReachable(ctx)
			return nil
		})
	}
	_ = g.Wait()

	report := models.StatusReport{
		Devices:   make(map[string]models.DeviceStatus, len(adapters)),
		Switches:  make(map[string]models.SwitchStatus, len(switches)),
		Timestamp: clock(),
	}
	var indoor, outdoor []float64
	for i, a := range adapters {
		st := statuses[i]
		report.Devices[a.ID] = st
		if st.IndoorTemp != nil {
			indoor = append(indoor, *st.IndoorTemp)
		}
		if st.OutdoorTemp != nil {
			outdoor = append(outdoor, *st.OutdoorTemp)
		}
	}
	report.Averages = models.Averages{
		Indoor:  Average(indoor),
		Outdoor: Average(outdoor),
	}

	state := StateOff
	if mediaUp {
		state = StateOn
	}
	for _, sw := range switches {
		report.Switches[sw.ID] = models.SwitchStatus{State: state, Source: SourceReachability}
	}
	return report
}

// CheckEmby probes the media host with a raw TCP connection.
func (s *MonitoringService) CheckEmby(ctx context.Context) models.Reachability {
	return models.Reachability{
		Reachable: s.mediaReachable(ctx),
		Server:    s.emby.Host,
		Port:      s.emby.Port,
		Timestamp: clock(),
	}
}

func (s *MonitoringService) mediaReachable(ctx context.Context) bool {
	ok := s.reachable(ctx, s.emby.Host, s.emby.Port, s.probeTimeout)
	metrics.IncProbe(SourceReachability, ok)
	return ok
}

func (s *MonitoringService) probeDevice(ctx context.Context, a registry.Adapter) models.DeviceStatus {
	r, err := s.devices.Status(ctx, a.Host)
	if err != nil {
		metrics.IncProbe(kindClimate, false)
		return models.DeviceStatus{Online: false}
	}
	metrics.IncProbe(kindClimate, true)

	st := models.DeviceStatus{
		Online:      true,
		Mode:        resolveMode(r.Mode),
		CurrentTemp: r.CurrentTemperature,
		TargetTemp:  r.TargetTemperature,
		IndoorTemp:  r.IndoorTemperature,
		OutdoorTemp: r.OutdoorTemperature,
	}
	if r.Power.Set {
		on := r.Power.On
		st.Power = &on
	}
	return st
}

func resolveMode(m devices.Mode) string {
	switch {
	case m.Code != nil:
		return registry.ModeFromCode(*m.Code)
	case m.Token != "":
		return registry.ModeFromToken(m.Token)
	default:
		return registry.DefaultMode
	}
}

// Average is the mean of values rounded to one decimal, or nil when there
// are no values.
func Average(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	avg := math.Round(sum/float64(len(values))*10) / 10
	return &avg
}
