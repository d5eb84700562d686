package handlers

import (
	"net/http"
	"time"

	"github.com/giygas/departments-api/departmentparser/entities"
	"github.com/giygas/departments-api/interfaces"
	"github.com/giygas/departments-api/logging"
	"github.com/go-chi/chi/v5"
)

// Compile-time check to ensure HTTPHandlerImpl implements HTTPHandler
var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	dataStore     interfaces.DataStore
	validator     interfaces.DataValidator
	healthChecker interfaces.HealthChecker
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(dataStore interfaces.DataStore, validator interfaces.DataValidator, healthChecker interfaces.HealthChecker) *HTTPHandlerImpl {
	return &HTTPHandlerImpl{
		dataStore:     dataStore,
		validator:     validator,
		healthChecker: healthChecker,
	}
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status string         `json:"status"`
	Uptime string         `json:"uptime"`
	Data   map[string]any `json:"data"`
}

// ServeDepartments returns every department, in the same document shape as the generated file
func (h *HTTPHandlerImpl) ServeDepartments(w http.ResponseWriter, r *http.Request) {
	setLastModified(w, h.dataStore.GetLastUpdated())
	RespondWithJSON(w, http.StatusOK, entities.DepartmentsDocument{
		Departments: h.dataStore.GetDepartments(),
	})
}

// FindDepartmentByID returns the department with the given id
func (h *HTTPHandlerImpl) FindDepartmentByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.validator.ValidateDepartmentID(id); err != nil {
		logging.Warn("Unusual user input", "id", id)
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	department, exists := h.dataStore.GetDepartmentsMap()[id]
	if !exists {
		RespondWithError(w, http.StatusNotFound, "Department not found")
		return
	}

	setLastModified(w, h.dataStore.GetLastUpdated())
	RespondWithJSON(w, http.StatusOK, department)
}

// HealthCheck reports the data health
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, details, httpStatus := h.healthChecker.HealthCheck()

	uptime := "unknown"
	if start := h.dataStore.GetServerStartTime(); !start.IsZero() {
		uptime = formatUptimeHuman(time.Since(start))
	}

	RespondWithJSON(w, httpStatus, HealthResponse{
		Status: status,
		Uptime: uptime,
		Data:   details,
	})
}

func setLastModified(w http.ResponseWriter, lastUpdated time.Time) {
	if !lastUpdated.IsZero() {
		w.Header().Set("Last-Modified", lastUpdated.UTC().Format(http.TimeFormat))
	}
}
