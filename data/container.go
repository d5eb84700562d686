// Package data provides thread-safe storage of the converted departments for the API.
// Updates swap whole snapshots, so readers never see a half-refreshed dataset.
package data

import (
	"sync/atomic"
	"time"

	"github.com/giygas/departments-api/departmentparser/entities"
	"github.com/giygas/departments-api/interfaces"
	"github.com/giygas/departments-api/logging"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds all the data with atomic pointers for zero-downtime updates
type DataContainer struct {
	departments     atomic.Value // []entities.Department
	departmentsMap  atomic.Value // map[string]entities.Department
	report          atomic.Value // *interfaces.DataQualityReport
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a new DataContainer with empty data
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.departments.Store(make([]entities.Department, 0))
	dc.departmentsMap.Store(make(map[string]entities.Department))
	dc.report.Store(&interfaces.DataQualityReport{})
	dc.lastUpdated.Store(time.Time{})
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// GetDepartments returns the departments in spreadsheet order
func (dc *DataContainer) GetDepartments() []entities.Department {
	if v := dc.departments.Load(); v != nil {
		if departments, ok := v.([]entities.Department); ok {
			return departments
		}
	}

	logging.Warn("Departments list is empty or invalid")
	return []entities.Department{}
}

// GetDepartmentsMap returns departments by id. When ids repeat, the first department wins.
func (dc *DataContainer) GetDepartmentsMap() map[string]entities.Department {
	if v := dc.departmentsMap.Load(); v != nil {
		if departmentsMap, ok := v.(map[string]entities.Department); ok {
			return departmentsMap
		}
	}

	logging.Warn("DepartmentsMap is empty or invalid")
	return make(map[string]entities.Department)
}

// GetDataQualityReport returns the report of the last update
func (dc *DataContainer) GetDataQualityReport() *interfaces.DataQualityReport {
	if v := dc.report.Load(); v != nil {
		if report, ok := v.(*interfaces.DataQualityReport); ok && report != nil {
			return report
		}
	}
	return &interfaces.DataQualityReport{}
}

// GetLastUpdated returns the timestamp of the last data update
func (dc *DataContainer) GetLastUpdated() time.Time {
	if v := dc.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating returns true if a data update is currently in progress
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// SetServerStartTime sets the server start time
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}
	return time.Time{}
}

// UpdateData atomically replaces all data in the container
func (dc *DataContainer) UpdateData(departments []entities.Department, report *interfaces.DataQualityReport) {
	if departments == nil {
		departments = []entities.Department{}
	}
	if report == nil {
		report = &interfaces.DataQualityReport{}
	}

	departmentsMap := make(map[string]entities.Department, len(departments))
	for _, dept := range departments {
		if _, exists := departmentsMap[dept.ID]; !exists {
			departmentsMap[dept.ID] = dept
		}
	}

	dc.departments.Store(departments)
	dc.departmentsMap.Store(departmentsMap)
	dc.report.Store(report)
	dc.lastUpdated.Store(time.Now())
}

// BeginUpdate marks the start of a data update operation
// Returns true if update can proceed, false if another update is in progress
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a data update operation
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
