package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Metrics)
	router.Get("/departments/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/departments/history", nil))

	path := filepath.Join(t.TempDir(), "http.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read metrics file: %v", err)
	}

	expected := `http_request_total{method="GET",path="/departments/{id}",status="404"}`
	if !strings.Contains(string(content), expected) {
		t.Errorf("Expected %s in metrics, got:\n%s", expected, content)
	}
	if !strings.Contains(string(content), "http_request_in_flight 0") {
		t.Errorf("Expected no request in flight, got:\n%s", content)
	}
}

func TestWriteTextfile(t *testing.T) {
	DepartmentsConverted.Set(7)
	path := filepath.Join(t.TempDir(), "departments.prom")

	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read metrics file: %v", err)
	}
	if !strings.Contains(string(content), "departments_converted 7") {
		t.Errorf("Expected departments_converted in textfile, got:\n%s", content)
	}
}
