package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/giygas/departments-api/data"
	"github.com/giygas/departments-api/departmentparser/entities"
	"github.com/giygas/departments-api/health"
	"github.com/giygas/departments-api/validation"
	"github.com/go-chi/chi/v5"
)

func newTestRouter(departments []entities.Department) (chi.Router, *data.DataContainer) {
	store := data.NewDataContainer()
	if departments != nil {
		store.UpdateData(departments, validation.NewDataValidator().ReportDataQuality(departments))
	}
	store.SetServerStartTime(time.Now().Add(-90 * time.Second))

	handler := NewHTTPHandler(store, validation.NewDataValidator(), health.NewHealthChecker(store, nil))

	router := chi.NewRouter()
	router.Get("/departments", handler.ServeDepartments)
	router.Get("/departments/{id}", handler.FindDepartmentByID)
	router.Get("/health", handler.HealthCheck)
	return router, store
}

var testDepartments = []entities.Department{
	{
		ID:   "computer-science-and-engineering",
		Name: "Computer Science & Engineering",
		Degrees: []entities.Degree{
			{Name: "BS Computer Science", Tracks: []string{"AI Track"}},
		},
		InternalPartners: []string{"Library"},
		ExternalPartners: []string{},
		Highlights:       []entities.Highlight{{Name: "Lab <Open>", URL: "https://example.com/lab"}},
		TechCourses:      []string{},
	},
	{
		ID:               "english",
		Name:             "English",
		Degrees:          []entities.Degree{},
		InternalPartners: []string{},
		ExternalPartners: []string{},
		Highlights:       []entities.Highlight{},
		TechCourses:      []string{},
	},
}

func TestServeDepartments(t *testing.T) {
	router, _ := newTestRouter(testDepartments)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/departments", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Unexpected content type %q", ct)
	}
	if rec.Header().Get("Last-Modified") == "" {
		t.Error("Expected Last-Modified header")
	}
	if !strings.Contains(rec.Body.String(), "Lab <Open>") {
		t.Errorf("Expected HTML characters to be kept literally, got %s", rec.Body.String())
	}

	var doc entities.DepartmentsDocument
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if len(doc.Departments) != 2 || doc.Departments[0].ID != "computer-science-and-engineering" {
		t.Errorf("Unexpected departments: %+v", doc.Departments)
	}
}

func TestServeDepartmentsEmpty(t *testing.T) {
	router, _ := newTestRouter(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/departments", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"departments":[]}` {
		t.Errorf("Expected empty departments array, got %s", rec.Body.String())
	}
}

func TestFindDepartmentByID(t *testing.T) {
	router, _ := newTestRouter(testDepartments)

	tests := []struct {
		name         string
		path         string
		expectedCode int
		expectedBody string
	}{
		{"existing department", "/departments/english", http.StatusOK, `"name":"English"`},
		{"department with tracks", "/departments/computer-science-and-engineering", http.StatusOK, `"AI Track"`},
		{"unknown department", "/departments/history", http.StatusNotFound, "Department not found"},
		{"invalid id", "/departments/English", http.StatusBadRequest, "invalid characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.expectedCode {
				t.Errorf("Expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.expectedBody) {
				t.Errorf("Expected body to contain %q, got %s", tt.expectedBody, rec.Body.String())
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy with data", func(t *testing.T) {
		router, _ := newTestRouter(testDepartments)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rec.Code)
		}

		var response HealthResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
			t.Fatalf("Invalid JSON response: %v", err)
		}
		if response.Status != "healthy" {
			t.Errorf("Expected healthy status, got %s", response.Status)
		}
		if response.Data["departments"] != float64(2) {
			t.Errorf("Expected 2 departments, got %v", response.Data["departments"])
		}
		if !strings.HasPrefix(response.Uptime, "1m") {
			t.Errorf("Expected uptime around 1m30s, got %s", response.Uptime)
		}
	})

	t.Run("unhealthy without data", func(t *testing.T) {
		router, _ := newTestRouter(nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected status 503, got %d", rec.Code)
		}
	})
}

func TestFormatUptimeHuman(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{5 * time.Second, "5s"},
		{90 * time.Second, "1m 30s"},
		{2*time.Hour + 5*time.Second, "2h 0m 5s"},
		{26*time.Hour + 3*time.Minute, "1d 2h 3m 0s"},
	}

	for _, tt := range tests {
		if got := formatUptimeHuman(tt.duration); got != tt.expected {
			t.Errorf("formatUptimeHuman(%v) = %q, want %q", tt.duration, got, tt.expected)
		}
	}
}
