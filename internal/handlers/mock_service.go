package handlers

import (
	"context"
	"net/http"
	"sync"

	"homepanel/internal/models"
	"homepanel/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	user, pass    string
	session       string
	sessionErr    error
	genTokenToken string
	genTokenErr   error
	parseUser     string
	parseErr      error

	lastGenUsername string
	lastGenPassword string
	lastParseToken  string
}

func (m *mockAuth) CheckCredentials(username, password string) bool {
	return m.user != "" && m.pass != "" && username == m.user && password == m.pass
}
func (m *mockAuth) IssueSession() (string, error) {
	return m.session, m.sessionErr
}
func (m *mockAuth) ValidSession(value string) bool {
	return m.session != "" && value == m.session
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseUser, m.parseErr
}

type mockCommands struct {
	mu sync.Mutex

	switchRes  models.CommandResult
	switchErr  error
	climateRes models.CommandResult
	climateErr error
	wakeErr    error

	lastDevice  string
	lastState   string
	lastClimate models.ClimateCommand
	wakeCalls   int
}

func (m *mockCommands) Switch(ctx context.Context, id, state string) (models.CommandResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastDevice, m.lastState = id, state
	return m.switchRes, m.switchErr
}
func (m *mockCommands) Climate(ctx context.Context, cmd models.ClimateCommand) (models.CommandResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastClimate = cmd
	return m.climateRes, m.climateErr
}
func (m *mockCommands) Wake(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wakeCalls++
	return m.wakeErr
}

type mockMonitoring struct {
	report models.StatusReport
	reach  models.Reachability
}

func (m *mockMonitoring) ClimateStatus(ctx context.Context) models.StatusReport {
	return m.report
}
func (m *mockMonitoring) CheckEmby(ctx context.Context) models.Reachability {
	return m.reach
}

type mockUptime struct {
	segments []models.ChartSegment
}

func (m *mockUptime) Segments(ctx context.Context) []models.ChartSegment {
	if m.segments == nil {
		return []models.ChartSegment{}
	}
	return m.segments
}

type mockEventLog struct {
	resp []models.CommandEvent
	err  error
	last service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.CommandEvent, error) {
	m.last = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	return newTestRouterWith(s, Options{})
}

func newTestRouterWith(s *service.Service, opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, opts)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func withHeaders(req *http.Request, hdr http.Header) *http.Request {
	for k, vv := range hdr {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
