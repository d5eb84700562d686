// Package health provides health checking functionality for the departments API.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/giygas/departments-api/interfaces"
)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	dataStore  interfaces.DataStore
	nextUpdate func() time.Time
}

// NewHealthChecker creates a new health checker with injected dependencies.
// nextUpdate reports the next scheduled refresh and may be nil.
func NewHealthChecker(dataStore interfaces.DataStore, nextUpdate func() time.Time) interfaces.HealthChecker {
	return &HealthCheckerImpl{
		dataStore:  dataStore,
		nextUpdate: nextUpdate,
	}
}

// HealthCheck returns the health status, its details and the HTTP status to answer with
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	departments := h.dataStore.GetDepartments()
	lastUpdate := h.dataStore.GetLastUpdated()
	isUpdating := h.dataStore.IsUpdating()
	report := h.dataStore.GetDataQualityReport()

	dataAge := time.Since(lastUpdate)

	switch {
	case len(departments) == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case dataAge > 48*time.Hour:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case dataAge > 24*time.Hour:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"last_update":    lastUpdate.Format(time.RFC3339),
		"data_age_hours": math.Round(dataAge.Hours()*10) / 10,
		"departments":    len(departments),
		"duplicate_ids":  len(report.DuplicateIDs),
		"is_updating":    isUpdating,
	}

	if h.nextUpdate != nil {
		if next := h.nextUpdate(); !next.IsZero() {
			data["next_update"] = next.Format(time.RFC3339)
		}
	}

	return status, data, httpStatus
}
