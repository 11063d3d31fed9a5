package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/kelaskita/timetable/internal/dto"
	appErrors "github.com/kelaskita/timetable/pkg/errors"
)

type scheduleGeneratorMock struct {
	captured    dto.SolveRequest
	solveResp   *dto.SolveResponse
	solveErr    error
	persistResp *dto.PersistResponse
	persistErr  error
}

func (m *scheduleGeneratorMock) Solve(ctx context.Context, req dto.SolveRequest) (*dto.SolveResponse, error) {
	m.captured = req
	if m.solveErr != nil {
		return nil, m.solveErr
	}
	return m.solveResp, nil
}

func (m *scheduleGeneratorMock) Persist(ctx context.Context, runID string) (*dto.PersistResponse, error) {
	if m.persistErr != nil {
		return nil, m.persistErr
	}
	return m.persistResp, nil
}

func TestScheduleGeneratorHandlerSolveSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &scheduleGeneratorMock{solveResp: &dto.SolveResponse{RunID: "run-1", Status: "SOLVED"}}
	handler := &ScheduleGeneratorHandler{service: mockSvc}
	payload := []byte(`{"time_budget_seconds":30}`)
	req, _ := http.NewRequest(http.MethodPost, "/schedules/solve", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Solve(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 30, mockSvc.captured.TimeBudgetSeconds)
}

func TestScheduleGeneratorHandlerSolveInvalidPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ScheduleGeneratorHandler{service: &scheduleGeneratorMock{}}
	req, _ := http.NewRequest(http.MethodPost, "/schedules/solve", bytes.NewReader([]byte(`{"time_budget_seconds":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Solve(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleGeneratorHandlerSolveUnsatisfiable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ScheduleGeneratorHandler{service: &scheduleGeneratorMock{solveErr: appErrors.ErrUnsatisfiable}}
	req, _ := http.NewRequest(http.MethodPost, "/schedules/solve", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Solve(c)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestScheduleGeneratorHandlerPersistSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &scheduleGeneratorMock{persistResp: &dto.PersistResponse{RunID: "run-1", Persisted: true}}
	handler := &ScheduleGeneratorHandler{service: mockSvc}
	req, _ := http.NewRequest(http.MethodPost, "/schedules/solve/run-1/persist", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "runId", Value: "run-1"}}

	handler.Persist(c)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestScheduleGeneratorHandlerPersistNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ScheduleGeneratorHandler{service: &scheduleGeneratorMock{persistErr: appErrors.ErrNotFound}}
	req, _ := http.NewRequest(http.MethodPost, "/schedules/solve/unknown/persist", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "runId", Value: "unknown"}}

	handler.Persist(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}
