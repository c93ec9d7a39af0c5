package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komfort-mfg/komfort-admin/internal/logger"
	"github.com/komfort-mfg/komfort-admin/internal/middleware"
	"github.com/komfort-mfg/komfort-admin/internal/ui/client"
	"github.com/komfort-mfg/komfort-admin/internal/ui/config"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	})
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1,"name":"Стол обеденный","article":"8758385","min_partner_price":"4456.90",`+
			`"product_type":"Столы","product_type_id":2,"material_type":"Массив","material_type_id":1,"manufacture_time_hours":5}]`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T, apiBaseURL string, exposeMetrics bool) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Environment:    "test",
		Host:           "127.0.0.1",
		Port:           3000,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		IdleTimeout:    5 * time.Second,
		APIBaseURL:     apiBaseURL,
		AllowedOrigins: []string{"*"},
		MaxFormSize:    64 * 1024,
		ExposeMetrics:  exposeMetrics,
	}

	s, err := NewServer(cfg, logger.NewDiscardLogger())
	require.NoError(t, err)
	return s.Handler()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	backend := newBackend(t)
	h := newTestServer(t, backend.URL, false)

	rr := get(t, h, "/health/live")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())

	rr = get(t, h, "/health/ready")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHealth_BackendDown(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	url := backend.URL
	backend.Close()

	h := newTestServer(t, url, false)

	assert.Equal(t, http.StatusOK, get(t, h, "/health/live").Code)

	rr := get(t, h, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, client.ConnectionErrorMessage, rr.Body.String())
}

func TestPages(t *testing.T) {
	backend := newBackend(t)
	h := newTestServer(t, backend.URL, false)

	rr := get(t, h, "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<title>Комфорт")

	rr = get(t, h, "/products")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "Стол обеденный")
	assert.NotEmpty(t, rr.Header().Get("Content-Security-Policy"))

	rr = get(t, h, "/no/such/page")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Страница не найдена")
}

func TestAPIProxy(t *testing.T) {
	backend := newBackend(t)
	h := newTestServer(t, backend.URL, false)

	rr := get(t, h, "/api/products")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"article":"8758385"`)
}

func TestAPIProxy_BackendDown(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	url := backend.URL
	backend.Close()

	h := newTestServer(t, url, false)

	rr := get(t, h, "/api/products")
	require.Equal(t, http.StatusBadGateway, rr.Code)

	var body middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, client.ConnectionErrorMessage, body.Detail)
}

func TestAPIProxy_RequestSizeLimit(t *testing.T) {
	backend := newBackend(t)
	h := newTestServer(t, backend.URL, false)

	body := strings.Repeat("x", 2*1024*1024)
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestStatic(t *testing.T) {
	backend := newBackend(t)
	h := newTestServer(t, backend.URL, false)

	rr := get(t, h, "/static/app.js")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "EventSource")
}

func TestMetrics(t *testing.T) {
	backend := newBackend(t)

	hidden := newTestServer(t, backend.URL, false)
	assert.Equal(t, http.StatusNotFound, get(t, hidden, "/metrics").Code)

	exposed := newTestServer(t, backend.URL, true)
	require.Equal(t, http.StatusOK, get(t, exposed, "/products").Code)

	rr := get(t, exposed, "/metrics")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "komfort_client_requests_total")
}
