package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlens/reconcile/internal/api/dto"
	"github.com/ledgerlens/reconcile/internal/application/service"
	"github.com/ledgerlens/reconcile/internal/domain/report"
	"github.com/ledgerlens/reconcile/internal/infrastructure/config"
	"github.com/ledgerlens/reconcile/internal/infrastructure/storage"
)

func newTestServer(repo *storage.MockRepository) *Server {
	cfg := config.Default()
	cfg.Reconciliation.IdentityMap = map[string]string{"9265": "Aaron Davidson"}
	svc := service.NewReconService(cfg, repo, slog.Default())
	return NewServer(cfg.Server, repo, svc, slog.Default())
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(storage.NewMockRepository())

	w := doRequest(t, s, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestReconcile(t *testing.T) {
	repo := storage.NewMockRepository()
	s := newTestServer(repo)

	req := dto.ReconcileRequest{
		Source: []dto.RecordRequest{
			{Date: "2025-06-02", Amount: "100.00", Description: "HOME DEPOT", Card: "9265"},
			{Date: "2025-06-02", Amount: "500.00", Card: "9265"},
		},
		Target: []dto.RecordRequest{
			{Date: "2025-06-03", Amount: "101.50", Description: "Lumber", Person: "Aaron"},
		},
	}

	w := doRequest(t, s, http.MethodPost, "/api/reconcile", req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp dto.ReconcileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, 1, resp.Summary.MatchedCount)
	assert.Equal(t, 1, resp.Summary.SourceOnlyCount)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, report.StatusMatch, resp.Rows[0].Status)
	assert.Equal(t, report.IdentityMatch, resp.Rows[0].IdentityCheck)

	// The run is persisted with its rows
	assert.True(t, repo.SaveRunCalled)
	assert.Equal(t, resp.RunID, repo.LastSavedRun.ID)
}

func TestReconcile_InvalidAmount(t *testing.T) {
	s := newTestServer(storage.NewMockRepository())

	req := dto.ReconcileRequest{
		Source: []dto.RecordRequest{{ID: "s1", Date: "2025-06-02", Amount: "abc"}},
		Target: []dto.RecordRequest{{Date: "2025-06-02", Amount: "10.00"}},
	}

	w := doRequest(t, s, http.MethodPost, "/api/reconcile", req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var apiErr dto.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, dto.ErrCodeValidation, apiErr.Code)
	assert.Contains(t, apiErr.Message, "s1")
}

func TestReconcile_NonPositiveAmountRejected(t *testing.T) {
	s := newTestServer(storage.NewMockRepository())

	req := dto.ReconcileRequest{
		Source: []dto.RecordRequest{{ID: "s1", Date: "2025-06-02", Amount: "0.00"}},
		Target: []dto.RecordRequest{{Date: "2025-06-02", Amount: "10.00"}},
	}

	w := doRequest(t, s, http.MethodPost, "/api/reconcile", req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var apiErr dto.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, dto.ErrCodeValidation, apiErr.Code)
}

func TestReconcile_MalformedBody(t *testing.T) {
	s := newTestServer(storage.NewMockRepository())

	req := httptest.NewRequest(http.MethodPost, "/api/reconcile", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRuns(t *testing.T) {
	repo := storage.NewMockRepository()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		require.NoError(t, repo.SaveRun(&storage.ReconRun{
			ID:        id,
			CreatedAt: base.AddDate(0, 0, i),
		}))
	}
	s := newTestServer(repo)

	w := doRequest(t, s, http.MethodGet, "/api/runs?limit=2", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.RunListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.TotalCount)
	require.Len(t, resp.Runs, 2)
	assert.Equal(t, "run-c", resp.Runs[0].ID)
}

func TestGetRun(t *testing.T) {
	repo := storage.NewMockRepository()
	require.NoError(t, repo.SaveRun(&storage.ReconRun{
		ID:           "run-a",
		CreatedAt:    time.Now().UTC(),
		MatchedCount: 4,
		Rows:         []report.Row{{Status: report.StatusMatch}},
	}))
	s := newTestServer(repo)

	w := doRequest(t, s, http.MethodGet, "/api/runs/run-a", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.MatchedCount)
	require.Len(t, resp.Rows, 1)
}

func TestGetRun_NotFound(t *testing.T) {
	s := newTestServer(storage.NewMockRepository())

	w := doRequest(t, s, http.MethodGet, "/api/runs/missing", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	var apiErr dto.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, dto.ErrCodeNotFound, apiErr.Code)
}
