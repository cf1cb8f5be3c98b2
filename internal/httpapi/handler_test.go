package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"discount_etl/internal/domain"
	"discount_etl/internal/metrics"
)

type fakeController struct {
	startErr   error
	runID      uuid.UUID
	scopes     []domain.Scope
	trigger    domain.TriggerType
	snapshot   *domain.StatusSnapshot
	statusErr  error
	deleted    int64
	cleanupErr error
}

func (f *fakeController) Start(_ context.Context, trigger domain.TriggerType, scopes []domain.Scope) (uuid.UUID, error) {
	f.trigger = trigger
	f.scopes = scopes
	if f.startErr != nil {
		return uuid.Nil, f.startErr
	}
	return f.runID, nil
}

func (f *fakeController) Status(context.Context) (*domain.StatusSnapshot, error) {
	return f.snapshot, f.statusErr
}

func (f *fakeController) Cleanup(context.Context) (int64, error) {
	return f.deleted, f.cleanupErr
}

type HandlerTestSuite struct {
	suite.Suite
	controller *fakeController
	server     http.Handler
}

func (s *HandlerTestSuite) SetupTest() {
	s.controller = &fakeController{runID: uuid.New()}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	m := metrics.New(prometheus.NewRegistry())
	m.RunsTotal.WithLabelValues("manual", "success").Inc()

	s.server = New(s.controller, m.Handler(), logger).Routes()
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) do(method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.server.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func (s *HandlerTestSuite) TestTrigger_Started() {
	rec := s.do(http.MethodPost, "/api/v1/etl/trigger")

	s.Equal(http.StatusAccepted, rec.Code)
	s.Equal("application/json", rec.Header().Get("Content-Type"))

	var body triggerResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("started", body.Status)
	s.Equal(s.controller.runID.String(), body.RunID)
	s.Equal(domain.TriggerManual, s.controller.trigger)
	s.Empty(s.controller.scopes)
}

func (s *HandlerTestSuite) TestTrigger_WithScopes() {
	rec := s.do(http.MethodPost, "/api/v1/etl/trigger?scope=shop:lidl&scope=category:pecivo")

	s.Equal(http.StatusAccepted, rec.Code)
	s.Equal([]domain.Scope{
		{Kind: domain.ScopeShop, ID: "lidl"},
		{Kind: domain.ScopeCategory, ID: "pecivo"},
	}, s.controller.scopes)
}

func (s *HandlerTestSuite) TestTrigger_InvalidScope() {
	rec := s.do(http.MethodPost, "/api/v1/etl/trigger?scope=brand:milka")

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestTrigger_AlreadyRunning() {
	s.controller.startErr = domain.ErrRunInProgress

	rec := s.do(http.MethodPost, "/api/v1/etl/trigger")

	s.Equal(http.StatusConflict, rec.Code)
	s.Contains(rec.Body.String(), "already running")
}

func (s *HandlerTestSuite) TestTrigger_WrongMethod() {
	rec := s.do(http.MethodGet, "/api/v1/etl/trigger")

	s.Equal(http.StatusMethodNotAllowed, rec.Code)
}

func (s *HandlerTestSuite) TestStatus() {
	last := time.Date(2026, 1, 18, 12, 5, 0, 0, time.UTC)
	s.controller.snapshot = &domain.StatusSnapshot{
		State:               domain.RunState{TotalRuns: 4, SuccessfulRuns: 3, FailedRuns: 1, SkippedTriggers: 2},
		CategoryCounts:      map[string]int{"pecivo": 12},
		ShopCounts:          map[string]int{"lidl": 12},
		LastSuccessfulRun:   &last,
		LastSuccessfulAdded: 40,
	}

	rec := s.do(http.MethodGet, "/api/v1/etl/status")
	s.Equal(http.StatusOK, rec.Code)

	var body domain.StatusSnapshot
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(4, body.State.TotalRuns)
	s.Equal(2, body.State.SkippedTriggers)
	s.Equal(12, body.CategoryCounts["pecivo"])
	s.Equal(40, body.LastSuccessfulAdded)
	s.Require().NotNil(body.LastSuccessfulRun)
	s.True(last.Equal(*body.LastSuccessfulRun))
}

func (s *HandlerTestSuite) TestStatus_Error() {
	s.controller.statusErr = errors.New("db down")

	rec := s.do(http.MethodGet, "/api/v1/etl/status")

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "db down")
}

func (s *HandlerTestSuite) TestCleanup() {
	s.controller.deleted = 17

	rec := s.do(http.MethodPost, "/api/v1/etl/cleanup")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"deleted": 17}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status": "ok"}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestMetrics() {
	rec := s.do(http.MethodGet, "/metrics")

	s.Equal(http.StatusOK, rec.Code)
	s.True(strings.Contains(rec.Body.String(), `etl_runs_total{status="success",trigger="manual"} 1`))
}
