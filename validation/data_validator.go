// Package validation provides data quality checks for converted departments
// and validation of client input for the departments API.
package validation

import (
	"fmt"
	"regexp"

	"github.com/giygas/departments-api/departmentparser/entities"
	"github.com/giygas/departments-api/interfaces"
	"github.com/giygas/departments-api/logging"
)

// maxIDLength bounds ids accepted from clients
const maxIDLength = 200

var departmentIDRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() interfaces.DataValidator {
	return &DataValidatorImpl{}
}

// ReportDataQuality lists duplicate ids, departments without degrees and highlights without links.
// Duplicate ids are listed once, in order of first duplication.
func (v *DataValidatorImpl) ReportDataQuality(departments []entities.Department) *interfaces.DataQualityReport {
	report := &interfaces.DataQualityReport{
		DuplicateIDs:              []string{},
		DepartmentsWithoutDegrees: []string{},
	}

	idCount := make(map[string]int, len(departments))
	for _, dept := range departments {
		idCount[dept.ID]++
		if idCount[dept.ID] == 2 {
			report.DuplicateIDs = append(report.DuplicateIDs, dept.ID)
		}

		if len(dept.Degrees) == 0 {
			report.DepartmentsWithoutDegrees = append(report.DepartmentsWithoutDegrees, dept.ID)
		}

		for _, highlight := range dept.Highlights {
			if highlight.URL == "" {
				report.HighlightsWithoutURL++
			}
		}
	}

	return report
}

// ValidateDepartmentID validates a department id received from a client
func (v *DataValidatorImpl) ValidateDepartmentID(input string) error {
	if input == "" {
		return fmt.Errorf("department id cannot be empty")
	}

	if len(input) > maxIDLength {
		return fmt.Errorf("department id too long: %d characters (max %d)", len(input), maxIDLength)
	}

	if !departmentIDRegex.MatchString(input) {
		return fmt.Errorf("department id contains invalid characters: only lowercase letters, digits and hyphens are allowed")
	}

	return nil
}

// LogReport logs the issues of a data quality report as warnings
func LogReport(report *interfaces.DataQualityReport) {
	if report == nil {
		return
	}

	if len(report.DuplicateIDs) > 0 {
		logging.Warn("Duplicate department IDs detected",
			"total", len(report.DuplicateIDs),
			"id_list", report.DuplicateIDs,
		)
	}

	if len(report.DepartmentsWithoutDegrees) > 0 {
		logging.Warn("Departments without degrees",
			"count", len(report.DepartmentsWithoutDegrees),
			"id_list", report.DepartmentsWithoutDegrees,
		)
	}

	if report.HighlightsWithoutURL > 0 {
		logging.Info("Highlights without URL", "count", report.HighlightsWithoutURL)
	}
}
