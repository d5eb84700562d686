package departmentparser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/giygas/departments-api/departmentparser/entities"
	"github.com/giygas/departments-api/logging"
	"github.com/giygas/departments-api/metrics"
	"github.com/google/uuid"
)

// Files read and written by the conversion
const (
	InputFile  = "finaldata.csv"
	OutputFile = "finaldata.json"
)

// SkipStats counts the rows that did not produce a department
type SkipStats struct {
	TotalRows  int
	BlankRows  int
	BlankNames int
}

// Convert reads the CSV file at inputPath and writes the departments document to outputPath.
// Nothing is written when any row fails.
func Convert(ctx context.Context, inputPath, outputPath string) ([]entities.Department, error) {
	runID := uuid.NewString()
	start := time.Now()

	departments, err := convert(ctx, runID, inputPath, outputPath)
	metrics.ConversionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ConversionsTotal.WithLabelValues("error").Inc()
		logging.Error("Departments conversion failed", "run_id", runID, "input", inputPath, "error", err)
		return nil, err
	}

	metrics.ConversionsTotal.WithLabelValues("success").Inc()
	metrics.DepartmentsConverted.Set(float64(len(departments)))
	logging.Info("Departments conversion completed",
		"run_id", runID,
		"output", outputPath,
		"departments", len(departments),
		"duration", time.Since(start).String())

	return departments, nil
}

func convert(ctx context.Context, runID, inputPath, outputPath string) ([]entities.Department, error) {
	rows, err := ReadRows(inputPath)
	if err != nil {
		return nil, err
	}

	departments, stats, err := BuildDepartments(ctx, rows)
	if err != nil {
		return nil, err
	}

	metrics.RowsReadTotal.Add(float64(stats.TotalRows))
	metrics.RowsSkippedTotal.WithLabelValues("blank_row").Add(float64(stats.BlankRows))
	metrics.RowsSkippedTotal.WithLabelValues("blank_name").Add(float64(stats.BlankNames))

	if stats.BlankRows > 0 || stats.BlankNames > 0 {
		logging.Info("Departments CSV skip statistics",
			"run_id", runID,
			"blank_rows", stats.BlankRows,
			"blank_names", stats.BlankNames,
			"total_rows", stats.TotalRows,
			"records_parsed", len(departments))
	}

	if err := WriteJSON(outputPath, departments); err != nil {
		return nil, err
	}

	return departments, nil
}

// BuildDepartments turns CSV rows into departments, keeping row order.
// A row missing an expected column aborts the whole build.
func BuildDepartments(ctx context.Context, rows []Row) ([]entities.Department, SkipStats, error) {
	departments := make([]entities.Department, 0, len(rows))
	stats := SkipStats{TotalRows: len(rows)}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		if row.IsBlank() {
			stats.BlankRows++
			continue
		}

		department, ok, err := buildDepartment(row)
		if err != nil {
			return nil, stats, err
		}
		if !ok {
			stats.BlankNames++
			continue
		}

		departments = append(departments, department)
	}

	return departments, stats, nil
}

// buildDepartment returns false when the department name is blank
func buildDepartment(row Row) (entities.Department, bool, error) {
	name, err := row.Get(ColumnDepartment)
	if err != nil {
		return entities.Department{}, false, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.Department{}, false, nil
	}

	cells := make(map[string]string, 5)
	for _, column := range []string{
		ColumnDegrees,
		ColumnInternalPartners,
		ColumnExternalPartners,
		ColumnHighlights,
		ColumnTechCourses,
	} {
		value, err := row.Get(column)
		if err != nil {
			return entities.Department{}, false, err
		}
		cells[column] = value
	}

	return entities.Department{
		ID:               DepartmentID(name),
		Name:             name,
		Degrees:          ParseDegrees(cells[ColumnDegrees]),
		InternalPartners: ParseListField(cells[ColumnInternalPartners]),
		ExternalPartners: ParseListField(cells[ColumnExternalPartners]),
		Highlights:       ParseHighlights(cells[ColumnHighlights]),
		TechCourses:      ParseListField(cells[ColumnTechCourses]),
	}, true, nil
}

// EncodeJSON writes the departments document with two-space indentation.
// Non-ASCII, HTML and line separator characters are written as-is.
func EncodeJSON(w io.Writer, departments []entities.Department) error {
	if departments == nil {
		departments = []entities.Department{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entities.DepartmentsDocument{Departments: departments}); err != nil {
		return fmt.Errorf("failed to marshal departments: %w", err)
	}

	_, err := w.Write(unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))))
	return err
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes encoding/json always
// writes back into the literal characters. Escaped backslashes are copied as pairs,
// so a literal "\\u2028" in a value stays untouched.
func unescapeLineSeparators(encoded []byte) []byte {
	if !bytes.Contains(encoded, []byte(`\u202`)) {
		return encoded
	}

	out := make([]byte, 0, len(encoded))
	for i := 0; i < len(encoded); i++ {
		if encoded[i] != '\\' || i+1 >= len(encoded) {
			out = append(out, encoded[i])
			continue
		}

		switch rest := encoded[i+1:]; {
		case bytes.HasPrefix(rest, []byte("u2028")):
			out = append(out, "\u2028"...)
			i += 5
		case bytes.HasPrefix(rest, []byte("u2029")):
			out = append(out, "\u2029"...)
			i += 5
		default:
			out = append(out, encoded[i], encoded[i+1])
			i++
		}
	}
	return out
}

// WriteJSON writes the departments document to path through a temporary file,
// so a failed write never leaves a partial document behind
func WriteJSON(path string, departments []entities.Department) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if _, statErr := os.Stat(tmpPath); statErr == nil {
			if err := os.Remove(tmpPath); err != nil {
				logging.Warn("Failed to remove temporary JSON file", "path", tmpPath, "error", err)
			}
		}
	}()

	if err := EncodeJSON(tmpFile, departments); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}

	// #nosec G302 -- generated document is meant to be world readable
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}

	return nil
}

// PrintSummary prints the number of departments, then the degree and highlight counts of each one
func PrintSummary(w io.Writer, departments []entities.Department) {
	fmt.Fprintf(w, "Successfully converted CSV to JSON. Created %d departments.\n", len(departments))
	for _, dept := range departments {
		fmt.Fprintf(w, "- %s: %d degrees, %d highlights\n", dept.Name, len(dept.Degrees), len(dept.Highlights))
	}
}
