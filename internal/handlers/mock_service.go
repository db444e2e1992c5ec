package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"tempwatch/internal/models"
	"tempwatch/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockStatus struct {
	st      models.TemperatureStatus
	history []models.TemperatureReading
	token   string

	lastWidth      int
	statusbarCalls int
}

func (m *mockStatus) GetStatus() models.TemperatureStatus     { return m.st }
func (m *mockStatus) GetHistory() []models.TemperatureReading { return m.history }
func (m *mockStatus) Statusbar(width int) string {
	m.statusbarCalls++
	m.lastWidth = width
	return m.token
}

type mockAlertLog struct {
	resp   []models.TemperatureAlert
	err    error
	ackErr error

	lastFilter service.AlertFilter
	lastAckID  string
	listCalls  int
	ackCalls   int
}

func (m *mockAlertLog) List(ctx context.Context, f service.AlertFilter) ([]models.TemperatureAlert, error) {
	m.listCalls++
	m.lastFilter = f
	return m.resp, m.err
}
func (m *mockAlertLog) Acknowledge(ctx context.Context, id string) error {
	m.ackCalls++
	m.lastAckID = id
	return m.ackErr
}

type mockMonitor struct {
	stopFails bool
	running   bool

	startCalls int
	stopCalls  int
}

func (m *mockMonitor) Start() bool {
	m.startCalls++
	m.running = true
	return true
}
func (m *mockMonitor) Stop() bool {
	m.stopCalls++
	if m.stopFails {
		return false
	}
	m.running = false
	return true
}
func (m *mockMonitor) Running() bool { return m.running }

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// newAuthedRequest builds a request carrying a bearer token the mockAuth
// accepts. JSON content type is set whenever a body is present.
func newAuthedRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer valid")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}
