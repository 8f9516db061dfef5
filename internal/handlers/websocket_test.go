package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"homepanel/internal/models"
	"homepanel/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestStreamInterval(t *testing.T) {
	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws/status", 5 * time.Second},
		{"interval_string_valid", "/ws/status?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws/status?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws/status?interval=2m", 5 * time.Second},
		{"interval_ms_too_large", "/ws/status?interval_ms=120000", 5 * time.Second},
		{"interval_invalid_string", "/ws/status?interval=bogus", 5 * time.Second},
		{"interval_ms_invalid", "/ws/status?interval_ms=NaN", 5 * time.Second},
		{"both_present_interval_wins", "/ws/status?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws/status?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := streamInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

func wsURL(t *testing.T, srv *httptest.Server, query url.Values) string {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	u.Scheme = "ws"
	u.Path = "/ws/status"
	u.RawQuery = query.Encode()
	return u.String()
}

func TestWebSocket_StatusStream_InitialAndPeriodic(t *testing.T) {
	indoor := 22.5
	mon := &mockMonitoring{report: models.StatusReport{
		Devices:  map[string]models.DeviceStatus{"sala": {Online: true, Mode: "heat", IndoorTemp: &indoor}},
		Switches: map[string]models.SwitchStatus{},
		Averages: models.Averages{Indoor: &indoor},
	}}
	s := &service.Service{Authorization: &mockAuth{parseUser: "admin"}, Monitoring: mon}

	srv := httptest.NewServer(newTestRouter(s))
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(wsURL(t, srv, url.Values{"interval_ms": {"20"}}), authHeader("valid"))
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	type envelope struct {
		Type  string          `json:"type"`
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}

	// Read initial snapshot
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != "status" || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var report models.StatusReport
	if err := json.Unmarshal(env.Data, &report); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	sala := report.Devices["sala"]
	if !sala.Online || sala.Mode != "heat" || report.Averages.Indoor == nil || *report.Averages.Indoor != 22.5 {
		t.Fatalf("unexpected report: %+v", report)
	}

	// Read a subsequent tick
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read second: %v", err)
	}
	if env.Type != "status" {
		t.Fatalf("expected type=status, got %+v", env)
	}
}

func TestWebSocket_RequiresAuth(t *testing.T) {
	s := &service.Service{Authorization: &mockAuth{}, Monitoring: &mockMonitoring{}}

	srv := httptest.NewServer(newTestRouter(s))
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	_, resp, err := dialer.Dial(wsURL(t, srv, nil), nil)
	if err == nil {
		t.Fatalf("expected handshake to fail without credentials")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 handshake response, got %+v", resp)
	}
}

func TestWebSocket_PushesAfterCommand(t *testing.T) {
	updates := service.NewNotifier()
	s := &service.Service{
		Authorization: &mockAuth{parseUser: "admin"},
		Monitoring:    &mockMonitoring{report: models.StatusReport{Switches: map[string]models.SwitchStatus{"gaming": {State: "ON", Source: "device"}}}},
		Updates:       updates,
	}

	srv := httptest.NewServer(newTestRouter(s))
	defer srv.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(wsURL(t, srv, url.Values{"interval": {"60s"}}), authHeader("valid"))
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	var frame struct {
		Type    string `json:"type"`
		Trigger string `json:"trigger"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if frame.Trigger != "" {
		t.Fatalf("initial frame has trigger %q", frame.Trigger)
	}

	// the handler subscribes before the first frame is written
	updates.Publish("gaming")

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	frame.Type, frame.Trigger = "", ""
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read pushed frame: %v", err)
	}
	if frame.Type != "status" || frame.Trigger != "gaming" {
		t.Fatalf("unexpected frame %+v", frame)
	}
}
