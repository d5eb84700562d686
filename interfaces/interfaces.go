// Package interfaces defines core abstractions for the departments API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"context"
	"net/http"
	"time"

	"github.com/giygas/departments-api/departmentparser/entities"
)

// DataQualityReport provides a summary of data quality issues.
// Issues are reported only; they never change the generated document.
type DataQualityReport struct {
	DuplicateIDs              []string
	DepartmentsWithoutDegrees []string // ids of departments with no degree
	HighlightsWithoutURL      int
}

// DataStore defines the contract for data storage operations.
// It provides thread-safe access to departments data
// with atomic operations for zero-downtime updates.
type DataStore interface {
	// Data retrieval methods
	GetDepartments() []entities.Department
	GetDepartmentsMap() map[string]entities.Department
	GetDataQualityReport() *DataQualityReport
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time

	// Data update methods
	UpdateData(departments []entities.Department, report *DataQualityReport)
	BeginUpdate() bool
	EndUpdate()
}

// Parser defines the contract for turning the departments spreadsheet into departments
type Parser interface {
	// ParseDepartments converts the spreadsheet and returns the departments in row order
	ParseDepartments(ctx context.Context) ([]entities.Department, error)
}

// Scheduler defines the contract for job scheduling and health monitoring.
// It manages automated data updates and system health checks.
type Scheduler interface {
	// Lifecycle management
	Start() error
	Stop()
	NextUpdate() time.Time
}

// HTTPHandler defines the contract for HTTP request handlers.
type HTTPHandler interface {
	ServeDepartments(w http.ResponseWriter, r *http.Request)
	FindDepartmentByID(w http.ResponseWriter, r *http.Request)
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns current health status, details and the HTTP status to answer with
	HealthCheck() (status string, details map[string]any, httpStatus int)
}

// DataValidator defines the contract for data validation operations.
type DataValidator interface {
	// ReportDataQuality generates a data quality report with all issues found
	ReportDataQuality(departments []entities.Department) *DataQualityReport

	// ValidateDepartmentID validates a department id received from a client
	ValidateDepartmentID(input string) error
}
