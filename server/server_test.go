package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/giygas/departments-api/config"
	"github.com/giygas/departments-api/data"
	"github.com/giygas/departments-api/departmentparser/entities"
	"github.com/giygas/departments-api/handlers"
	"github.com/giygas/departments-api/health"
	"github.com/giygas/departments-api/validation"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	store := data.NewDataContainer()
	store.UpdateData([]entities.Department{
		{
			ID:               "history",
			Name:             "History",
			Degrees:          []entities.Degree{},
			InternalPartners: []string{},
			ExternalPartners: []string{},
			Highlights:       []entities.Highlight{},
			TechCourses:      []string{},
		},
	}, nil)
	store.SetServerStartTime(time.Now())

	handler := handlers.NewHTTPHandler(store, validation.NewDataValidator(), health.NewHealthChecker(store, nil))
	cfg := &config.Config{Port: "8080", Address: "127.0.0.1", Env: config.EnvTest, LogLevel: "info"}

	return NewServer(cfg, handler)
}

func TestServerRoutes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name         string
		path         string
		expectedCode int
		expectedBody string
	}{
		{"all departments", "/departments", http.StatusOK, `"id":"history"`},
		{"one department", "/departments/history", http.StatusOK, `"name":"History"`},
		{"trailing slash is redirected", "/departments/", http.StatusMovedPermanently, ""},
		{"unknown department", "/departments/english", http.StatusNotFound, "Department not found"},
		{"health", "/health", http.StatusOK, `"status":"healthy"`},
		{"metrics", "/metrics", http.StatusOK, "rate_limiter_buckets_total"},
		{"unknown route", "/courses", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.RemoteAddr = "127.0.0.1:4000"
			rec := httptest.NewRecorder()

			s.Router().ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Errorf("Expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if tt.expectedBody != "" && !strings.Contains(rec.Body.String(), tt.expectedBody) {
				t.Errorf("Expected body to contain %q, got %s", tt.expectedBody, rec.Body.String())
			}
		})
	}
}

func TestServerCORS(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/departments", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()

	s.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected Access-Control-Allow-Origin *, got %q", got)
	}
}

func TestServerRequestIDAndRateLimitHeaders(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/departments/history", nil))

	if rec.Header().Get("X-RateLimit-Limit") != "1000" {
		t.Errorf("Expected rate limit header, got %q", rec.Header().Get("X-RateLimit-Limit"))
	}
	if rec.Header().Get("X-RateLimit-Remaining") == "" {
		t.Error("Expected remaining tokens header")
	}
}

func TestServerShutdownWithoutStart(t *testing.T) {
	s := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("Expected clean shutdown, got %v", err)
	}
}
