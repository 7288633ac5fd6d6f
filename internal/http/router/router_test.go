package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aanand-mishra/attendance-api/internal/config"
	"github.com/aanand-mishra/attendance-api/internal/storage/sqlite"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexHTML = "<!doctype html><title>NFC Asistencias</title>"

func newServer(t *testing.T, mutate func(*config.Config)) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(indexHTML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "styles.css"), []byte("body{}"), 0o644))

	cfg := &config.Config{
		Env:         "dev",
		StoragePath: ":memory:",
		HTTPServer:  config.HTTPServer{Host: "127.0.0.1", Port: 5000},
		Static:      config.Static{Dir: dir, IndexFile: "index.html"},
		Service:     config.Service{Name: "NFC Attendance System", Version: "2.0.0", DeployedOn: "Render + GitHub"},
	}
	if mutate != nil {
		mutate(cfg)
	}

	store, err := sqlite.New(context.Background(), cfg.StoragePath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(New(Deps{
		Config:   cfg,
		Storage:  store,
		Clock:    clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Registry: prometheus.NewRegistry(),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(b)
}

func decode(t *testing.T, body string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	return m
}

func TestHealth(t *testing.T) {
	srv := newServer(t, nil)

	res, body := do(t, http.MethodGet, srv.URL+"/api/health", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))

	got := decode(t, body)
	assert.Equal(t, "online", got["status"])
	_, err := time.Parse(time.RFC3339, got["timestamp"].(string))
	assert.NoError(t, err)
}

func TestSyncCountsTopLevelEntries(t *testing.T) {
	srv := newServer(t, nil)

	res, body := do(t, http.MethodPost, srv.URL+"/api/sync", `[{"matricula":"A1"},{"matricula":"A2"}]`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	got := decode(t, body)
	assert.Equal(t, true, got["success"])
	assert.Equal(t, float64(2), got["count"])
}

func TestSyncEmptyBody(t *testing.T) {
	srv := newServer(t, nil)

	res, body := do(t, http.MethodPost, srv.URL+"/api/sync", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.JSONEq(t, `{"error":"No data received"}`, body)
}

func TestStudents(t *testing.T) {
	srv := newServer(t, nil)

	res, body := do(t, http.MethodGet, srv.URL+"/api/students", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	got := decode(t, body)
	assert.Equal(t, float64(2), got["count"])
	assert.Len(t, got["students"], 2)
}

func TestAttendance(t *testing.T) {
	srv := newServer(t, nil)

	res, body := do(t, http.MethodPost, srv.URL+"/api/attendance",
		`{"matricula":"A1","nombre":"X","estado":"present","clase":"10A"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	got := decode(t, body)
	assert.Equal(t, true, got["success"])
	record := got["record"].(map[string]any)
	for _, k := range []string{"matricula", "nombre", "estado", "clase", "id", "fecha", "hora", "timestamp"} {
		assert.Contains(t, record, k)
	}
	assert.Equal(t, true, record["server_received"])
}

func TestAttendanceMissingField(t *testing.T) {
	srv := newServer(t, nil)

	res, body := do(t, http.MethodPost, srv.URL+"/api/attendance",
		`{"matricula":"A1","nombre":"X","estado":"present"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "clase")
}

func TestDailyReport(t *testing.T) {
	srv := newServer(t, nil)

	res, body := do(t, http.MethodGet, srv.URL+"/api/reports/daily?date=2024-01-01", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "2024-01-01", decode(t, body)["date"])
}

func TestSheetTest(t *testing.T) {
	srv := newServer(t, nil)

	res, body := do(t, http.MethodPost, srv.URL+"/api/config/test", `{"sheet_id":""}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.JSONEq(t, `{"error":"No sheet ID provided"}`, body)

	res, body = do(t, http.MethodPost, srv.URL+"/api/config/test", `{"sheet_id":"abc"}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "abc", decode(t, body)["sheet_id"])
}

func TestStaticAndFallback(t *testing.T) {
	srv := newServer(t, nil)

	_, root := do(t, http.MethodGet, srv.URL+"/", "")
	assert.Equal(t, indexHTML, root)

	res, css := do(t, http.MethodGet, srv.URL+"/styles.css", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "body{}", css)

	for _, path := range []string{"/no/such/page", "/api/nope", "/api/sync"} {
		res, body := do(t, http.MethodGet, srv.URL+path, "")
		assert.Equal(t, http.StatusOK, res.StatusCode, path)
		assert.Equal(t, root, body, path)
	}
}

func TestCORS(t *testing.T) {
	srv := newServer(t, nil)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.org")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))

	req, err = http.NewRequest(http.MethodOptions, srv.URL+"/api/attendance", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	res, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Less(t, res.StatusCode, 300)
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, res.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestRequestIDHeader(t *testing.T) {
	srv := newServer(t, nil)

	res, _ := do(t, http.MethodGet, srv.URL+"/api/health", "")
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newServer(t, func(c *config.Config) { c.MetricsEnabled = true })

	do(t, http.MethodGet, srv.URL+"/api/health", "")

	res, body := do(t, http.MethodGet, srv.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `attendance_http_requests_total{method="GET",route="GET /api/health",status="200"} 1`)
}

func TestMetricsCountsMethodNotAllowed(t *testing.T) {
	srv := newServer(t, func(c *config.Config) { c.MetricsEnabled = true })

	res, _ := do(t, http.MethodDelete, srv.URL+"/api/students", "")
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)

	_, body := do(t, http.MethodGet, srv.URL+"/metrics", "")
	assert.Contains(t, body, `attendance_http_requests_total{method="DELETE",route="unmatched",status="405"} 1`)
}

func TestMetricsDisabledFallsBackToIndex(t *testing.T) {
	srv := newServer(t, nil)

	_, body := do(t, http.MethodGet, srv.URL+"/metrics", "")
	assert.Equal(t, indexHTML, body)
}
