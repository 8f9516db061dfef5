package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"homepanel/internal/config"
	"homepanel/internal/devices"
	"homepanel/internal/logger"
	"homepanel/internal/metrics"
	"homepanel/internal/models"
	"homepanel/internal/registry"
	"homepanel/internal/repository"
)

const (
	kindSwitch  = "switch"
	kindClimate = "climate"
	kindWake    = "wake"
)

// Dispatcher errors. Unknown ids and bad states are refused before any
// network call.
var (
	ErrUnknownDevice = errors.New("device not found")
	ErrInvalidState  = errors.New("invalid state: must be ON or OFF")
	ErrMissingStatus = errors.New("status is required")
)

// DeviceError wraps a transport or protocol failure talking to a device.
type DeviceError struct {
	Device string
	Err    error
}

func (e *DeviceError) Error() string {
	return e.Err.Error()
}

func (e *DeviceError) Unwrap() error { return e.Err }

// DispatcherService validates control requests against the registries and
// relays them to devices.
type DispatcherService struct {
	registry *registry.Registry
	devices  *devices.Client
	events   repository.EventRepo
	wake     config.WakeConfig
	updates  *Notifier
	log      *logger.Logger
}

func NewDispatcherService(
	reg *registry.Registry,
	client *devices.Client,
	events repository.EventRepo,
	wake config.WakeConfig,
	log *logger.Logger,
) *DispatcherService {
	return &DispatcherService{
		registry: reg,
		devices:  client,
		events:   events,
		wake:     wake,
		log:      log,
	}
}

// WithUpdates publishes the device id after every command a device accepted.
func (s *DispatcherService) WithUpdates(n *Notifier) *DispatcherService {
	s.updates = n
	return s
}

// Switch sets a smart switch ON or OFF.
func (s *DispatcherService) Switch(ctx context.Context, id, state string) (models.CommandResult, error) {
	sw, ok := s.registry.Switch(id)
	if !ok {
		metrics.ObserveCommand(kindSwitch, metrics.ResultRefused, 0)
		return models.CommandResult{}, fmt.Errorf("%w: %s", ErrUnknownDevice, id)
	}
	state = devices.NormalizeState(state)
	if state != StateOn && state != StateOff {
		metrics.ObserveCommand(kindSwitch, metrics.ResultRefused, 0)
		return models.CommandResult{}, fmt.Errorf("%w: %q", ErrInvalidState, state)
	}

	start := time.Now()
	resp, err := s.devices.SetSwitch(ctx, sw.Host, state)
	if err != nil {
		s.fail(ctx, kindSwitch, id, start, err)
		return models.CommandResult{}, &DeviceError{Device: id, Err: err}
	}
	metrics.ObserveCommand(kindSwitch, metrics.ResultSuccess, time.Since(start))

	res := models.CommandResult{
		Success:    isSuccess(resp.StatusCode),
		StatusCode: resp.StatusCode,
		Target:     resp.Target,
		Device:     id,
		State:      state,
	}
	s.record(ctx, models.EventSwitch, id, fmt.Sprintf("switch %s set %s", id, state), res)
	if res.Success {
		s.updates.Publish(id)
	}
	return res, nil
}

// Climate sets a room's air-conditioner through its adapter's protocol.
func (s *DispatcherService) Climate(ctx context.Context, cmd models.ClimateCommand) (models.CommandResult, error) {
	adapter, ok := s.registry.Climate(cmd.RoomID)
	if !ok {
		metrics.ObserveCommand(kindClimate, metrics.ResultRefused, 0)
		return models.CommandResult{}, fmt.Errorf("%w: %s", ErrUnknownDevice, cmd.RoomID)
	}

	var (
		resp    devices.Response
		err     error
		success bool
	)
	start := time.Now()
	switch adapter.Protocol {
	case registry.ProtocolPath:
		if strings.TrimSpace(cmd.Status) == "" {
			metrics.ObserveCommand(kindClimate, metrics.ResultRefused, 0)
			return models.CommandResult{}, ErrMissingStatus
		}
		resp, err = s.devices.SetClimatePath(ctx, adapter.Host, cmd.Status)
		success = err == nil && isSuccess(resp.StatusCode) && devices.ReportedSuccess(resp.Body)
	default:
		off := strings.EqualFold(strings.TrimSpace(cmd.Status), "off")
		temp := cmd.Temp
		if off {
			temp = nil
		}
		resp, err = s.devices.SetClimateQuery(ctx, adapter.Host, adapter.WireMode(cmd.Mode, off), temp)
		success = err == nil && resp.StatusCode == http.StatusOK
	}
	if err != nil {
		s.fail(ctx, kindClimate, cmd.RoomID, start, err)
		return models.CommandResult{}, &DeviceError{Device: cmd.RoomID, Err: err}
	}
	metrics.ObserveCommand(kindClimate, metrics.ResultSuccess, time.Since(start))

	res := models.CommandResult{
		Success:    success,
		StatusCode: resp.StatusCode,
		Target:     resp.Target,
		Device:     cmd.RoomID,
	}
	s.record(ctx, models.EventClimate, cmd.RoomID, fmt.Sprintf("climate %s via %s", cmd.RoomID, adapter.Protocol), map[string]any{
		"command": cmd,
		"result":  res,
	})
	if res.Success {
		s.updates.Publish(cmd.RoomID)
	}
	return res, nil
}

// Wake performs the configured wake action. Callers log the error; it is
// never surfaced to the client.
func (s *DispatcherService) Wake(ctx context.Context) error {
	start := time.Now()
	var err error
	switch s.wake.Method {
	case config.WakeLED:
		if s.wake.IP == "" {
			err = errors.New("wake: ip not configured")
			break
		}
		err = s.devices.TriggerLED(ctx, s.wake.IP)
	case config.WakeWOL:
		if s.wake.MAC == "" {
			err = errors.New("wake: mac not configured")
			break
		}
		err = devices.SendMagicPacket(s.wake.MAC, s.wake.IP)
	default:
		var res models.CommandResult
		res, err = s.Switch(ctx, s.wake.Switch, StateOn)
		if err == nil && !res.Success {
			err = fmt.Errorf("wake: switch %s answered %d", s.wake.Switch, res.StatusCode)
		}
	}

	method := s.wake.Method
	if method == "" {
		method = config.WakeSwitch
	}
	if err != nil {
		s.fail(ctx, kindWake, method, start, err)
		return err
	}
	metrics.ObserveCommand(kindWake, metrics.ResultSuccess, time.Since(start))
	s.record(ctx, models.EventWake, method, "wake via "+method, nil)
	if method != config.WakeSwitch {
		// switch wakes were already published by Switch
		s.updates.Publish(kindWake)
	}
	return nil
}

func (s *DispatcherService) fail(ctx context.Context, kind, target string, start time.Time, err error) {
	metrics.ObserveCommand(kind, metrics.ResultError, time.Since(start))
	if s.log != nil {
		s.log.Warnw("device command failed", "kind", kind, "target", target, "err", err)
	}
	s.record(ctx, models.EventError, target, fmt.Sprintf("%s %s failed", kind, target), map[string]string{
		"kind":  kind,
		"error": err.Error(),
	})
}

// record appends to the journal. Journal failures never fail a command.
func (s *DispatcherService) record(ctx context.Context, typ, device, desc string, meta any) {
	if s.events == nil {
		return
	}
	err := s.events.Append(context.WithoutCancel(ctx), models.CommandEvent{
		OccurredAt:  clock(),
		Type:        typ,
		Device:      device,
		Description: desc,
		Metadata:    meta,
	})
	if err != nil && s.log != nil {
		s.log.Warnw("journal append failed", "type", typ, "err", err)
	}
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
