package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"homepanel/internal/config"
	"homepanel/internal/devices"
	"homepanel/internal/models"
	"homepanel/internal/registry"
)

// countingTransport counts outbound requests and forwards them.
type countingTransport struct {
	calls atomic.Int32
	next  http.RoundTripper
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	if c.next == nil {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("")),
			Request:    r,
		}, nil
	}
	return c.next.RoundTrip(r)
}

func hostOf(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	return u.Host
}

func newTestRegistry(t *testing.T, climate []registry.Adapter, switches []registry.Switch) *registry.Registry {
	t.Helper()
	reg, err := registry.New(climate, switches)
	if err != nil {
		t.Fatalf("registry.New: %v", err)
	}
	return reg
}

func TestDispatcher_UnknownIDsMakeNoCalls(t *testing.T) {
	rt := &countingTransport{}
	client := devices.NewClient(&http.Client{Transport: rt}, devices.Timeouts{})
	reg := newTestRegistry(t,
		[]registry.Adapter{{ID: "sala", Host: "10.0.0.1"}},
		[]registry.Switch{{ID: "gaming", Host: "10.0.0.2"}},
	)
	events := &fakeEventRepo{}
	svc := NewDispatcherService(reg, client, events, config.WakeConfig{}, nil)

	if _, err := svc.Switch(context.Background(), "nope", "ON"); !errors.Is(err, ErrUnknownDevice) {
		t.Fatalf("switch: expected ErrUnknownDevice, got %v", err)
	}
	if _, err := svc.Climate(context.Background(), models.ClimateCommand{RoomID: "attic"}); !errors.Is(err, ErrUnknownDevice) {
		t.Fatalf("climate: expected ErrUnknownDevice, got %v", err)
	}
	if _, err := svc.Switch(context.Background(), "gaming", "maybe"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("switch: expected ErrInvalidState, got %v", err)
	}
	if n := rt.calls.Load(); n != 0 {
		t.Fatalf("expected zero outbound calls, got %d", n)
	}
	if len(events.types()) != 0 {
		t.Fatalf("refused commands must not be journaled: %v", events.types())
	}
}

func TestDispatcher_SwitchNormalizesState(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	reg := newTestRegistry(t, nil, []registry.Switch{{ID: "gaming", Host: hostOf(t, srv)}})
	events := &fakeEventRepo{}
	svc := NewDispatcherService(reg, devices.NewClient(srv.Client(), devices.Timeouts{}), events, config.WakeConfig{}, nil)

	res, err := svc.Switch(context.Background(), "gaming", " off ")
	if err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if gotPath != "/api/state/OFF" {
		t.Fatalf("path = %s", gotPath)
	}
	if !res.Success || res.Device != "gaming" || res.State != "OFF" || res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected result %+v", res)
	}
	if got := events.types(); len(got) != 1 || got[0] != models.EventSwitch {
		t.Fatalf("journal = %v", got)
	}
}

func TestDispatcher_SwitchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	host := hostOf(t, srv)
	srv.Close()

	reg := newTestRegistry(t, nil, []registry.Switch{{ID: "gaming", Host: host}})
	events := &fakeEventRepo{}
	svc := NewDispatcherService(reg, devices.NewClient(nil, devices.Timeouts{}), events, config.WakeConfig{}, nil)

	_, err := svc.Switch(context.Background(), "gaming", "ON")
	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		t.Fatalf("expected DeviceError, got %v", err)
	}
	if devErr.Device != "gaming" || devErr.Error() == "" {
		t.Fatalf("unexpected device error %+v", devErr)
	}
	if got := events.types(); len(got) != 1 || got[0] != models.EventError {
		t.Fatalf("journal = %v", got)
	}
}

func TestDispatcher_ClimateQueryProtocol(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	reg := newTestRegistry(t, []registry.Adapter{
		{ID: "sala", Host: hostOf(t, srv), Protocol: registry.ProtocolQuery, Modes: registry.FamilyString},
		{ID: "suite", Host: hostOf(t, srv), Protocol: registry.ProtocolQuery, Modes: registry.FamilyInt},
	}, nil)
	svc := NewDispatcherService(reg, devices.NewClient(srv.Client(), devices.Timeouts{}), nil, config.WakeConfig{}, nil)

	temp := 23.0
	cases := []struct {
		name     string
		cmd      models.ClimateCommand
		wantMode string
		wantTemp string
	}{
		{"string heat", models.ClimateCommand{RoomID: "sala", Mode: "heat", Temp: &temp}, "HEAT", "23"},
		{"string unknown defaults to cool", models.ClimateCommand{RoomID: "sala", Mode: "turbo", Temp: &temp}, "COOL", "23"},
		{"off drops temp", models.ClimateCommand{RoomID: "sala", Mode: "heat", Temp: &temp, Status: "off"}, "OFF", ""},
		{"int family", models.ClimateCommand{RoomID: "suite", Mode: "heat"}, "4", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.Climate(context.Background(), tc.cmd)
			if err != nil {
				t.Fatalf("Climate: %v", err)
			}
			if !res.Success || res.StatusCode != http.StatusOK {
				t.Fatalf("unexpected result %+v", res)
			}
			if got.Get("mode") != tc.wantMode || got.Get("temp") != tc.wantTemp {
				t.Fatalf("query = %v; want mode=%s temp=%s", got, tc.wantMode, tc.wantTemp)
			}
			if !strings.HasSuffix(res.Target, "/climate/air_conditioner/set") {
				t.Fatalf("target = %s", res.Target)
			}
		})
	}
}

func TestDispatcher_ClimatePathProtocol(t *testing.T) {
	var gotMethod, gotPath string
	body := `{"success":true}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	reg := newTestRegistry(t, []registry.Adapter{
		{ID: "escritorio", Host: hostOf(t, srv), Protocol: registry.ProtocolPath},
	}, nil)
	svc := NewDispatcherService(reg, devices.NewClient(srv.Client(), devices.Timeouts{}), nil, config.WakeConfig{}, nil)

	res, err := svc.Climate(context.Background(), models.ClimateCommand{RoomID: "escritorio", Status: "cool"})
	if err != nil {
		t.Fatalf("Climate: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/state/cool" {
		t.Fatalf("got %s %s", gotMethod, gotPath)
	}
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}

	body = `{"success":false}`
	res, err = svc.Climate(context.Background(), models.ClimateCommand{RoomID: "escritorio", Status: "off"})
	if err != nil {
		t.Fatalf("Climate: %v", err)
	}
	if res.Success {
		t.Fatalf("explicit success=false must be honored")
	}

	if _, err := svc.Climate(context.Background(), models.ClimateCommand{RoomID: "escritorio"}); !errors.Is(err, ErrMissingStatus) {
		t.Fatalf("expected ErrMissingStatus, got %v", err)
	}
}

func TestDispatcher_WakeSwitch(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	reg := newTestRegistry(t, nil, []registry.Switch{{ID: "gaming", Host: hostOf(t, srv)}})
	events := &fakeEventRepo{}
	svc := NewDispatcherService(reg, devices.NewClient(srv.Client(), devices.Timeouts{}), events,
		config.WakeConfig{Method: config.WakeSwitch, Switch: "gaming"}, nil)

	if err := svc.Wake(context.Background()); err != nil {
		t.Fatalf("Wake: %v", err)
	}
	if gotPath != "/api/state/ON" {
		t.Fatalf("path = %s", gotPath)
	}
	got := events.types()
	if len(got) != 2 || got[0] != models.EventSwitch || got[1] != models.EventWake {
		t.Fatalf("journal = %v", got)
	}
}

func TestDispatcher_WakeLED(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	reg := newTestRegistry(t, nil, nil)
	svc := NewDispatcherService(reg, devices.NewClient(srv.Client(), devices.Timeouts{}), nil,
		config.WakeConfig{Method: config.WakeLED, IP: hostOf(t, srv)}, nil)

	if err := svc.Wake(context.Background()); err != nil {
		t.Fatalf("Wake: %v", err)
	}
	if gotPath != "/led_on" {
		t.Fatalf("path = %s", gotPath)
	}
}

func TestDispatcher_WakeMisconfigured(t *testing.T) {
	reg := newTestRegistry(t, nil, nil)
	client := devices.NewClient(&http.Client{Transport: &countingTransport{}}, devices.Timeouts{})
	events := &fakeEventRepo{}

	cases := []config.WakeConfig{
		{Method: config.WakeLED},
		{Method: config.WakeWOL},
		{Method: config.WakeSwitch, Switch: "missing"},
	}
	for _, wake := range cases {
		svc := NewDispatcherService(reg, client, events, wake, nil)
		if err := svc.Wake(context.Background()); err == nil {
			t.Fatalf("wake %+v: expected error", wake)
		}
	}
	for _, typ := range events.types() {
		if typ != models.EventError {
			t.Fatalf("expected only ERROR entries, got %v", events.types())
		}
	}
}

func TestDispatcher_JournalFailureDoesNotFailCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	reg := newTestRegistry(t, nil, []registry.Switch{{ID: "gaming", Host: hostOf(t, srv)}})
	events := &fakeEventRepo{appendErr: errors.New("disk full")}
	svc := NewDispatcherService(reg, devices.NewClient(srv.Client(), devices.Timeouts{}), events, config.WakeConfig{}, nil)

	if _, err := svc.Switch(context.Background(), "gaming", "ON"); err != nil {
		t.Fatalf("Switch: %v", err)
	}
}

func TestDispatcher_JournalsDeviceAndPublishes(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	reg := newTestRegistry(t,
		[]registry.Adapter{{ID: "sala", Host: hostOf(t, srv)}},
		[]registry.Switch{{ID: "gaming", Host: hostOf(t, srv)}},
	)
	events := &fakeEventRepo{}
	updates := NewNotifier()
	ch, unsubscribe := updates.Subscribe()
	defer unsubscribe()

	svc := NewDispatcherService(reg, devices.NewClient(srv.Client(), devices.Timeouts{}), events,
		config.WakeConfig{Method: config.WakeSwitch, Switch: "gaming"}, nil).WithUpdates(updates)

	if _, err := svc.Climate(context.Background(), models.ClimateCommand{RoomID: "sala", Mode: "heat"}); err != nil {
		t.Fatalf("Climate: %v", err)
	}
	if got := <-ch; got != "sala" {
		t.Fatalf("published %q; want sala", got)
	}

	if err := svc.Wake(context.Background()); err != nil {
		t.Fatalf("Wake: %v", err)
	}
	if got := <-ch; got != "gaming" {
		t.Fatalf("published %q; want gaming", got)
	}
	select {
	case extra := <-ch:
		t.Fatalf("switch wake must publish once, got extra %q", extra)
	default:
	}

	// a device that answers but refuses the command is not published
	status.Store(http.StatusInternalServerError)
	if _, err := svc.Switch(context.Background(), "gaming", "OFF"); err != nil {
		t.Fatalf("Switch: %v", err)
	}
	select {
	case got := <-ch:
		t.Fatalf("unexpected publish %q for a refused command", got)
	default:
	}

	var devicesSeen []string
	for _, e := range events.entries() {
		devicesSeen = append(devicesSeen, e.Type+":"+e.Device)
	}
	want := []string{"CLIMATE:sala", "SWITCH:gaming", "WAKE:switch", "SWITCH:gaming"}
	if strings.Join(devicesSeen, ",") != strings.Join(want, ",") {
		t.Fatalf("journal = %v; want %v", devicesSeen, want)
	}
}
