package departmentparser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/giygas/departments-api/logging"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Column names of the departments spreadsheet
const (
	ColumnDepartment       = "Schools/Departments"
	ColumnDegrees          = "Degrees offered"
	ColumnInternalPartners = "Internal Partners/Relationships"
	ColumnExternalPartners = "External Partners/Relationships"
	ColumnHighlights       = "Highlights/Projects"
	ColumnTechCourses      = "Sampling of Tech Focused courses"
)

// ErrMissingColumn is returned when a row has no cell for an expected column
var ErrMissingColumn = errors.New("missing column")

// ColumnError reports the column that could not be found and the CSV line of the row
type ColumnError struct {
	Column string
	Line   int
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("line %d: %s %q", e.Line, ErrMissingColumn, e.Column)
}

func (e *ColumnError) Unwrap() error {
	return ErrMissingColumn
}

// Row is one data row of the CSV file, keyed by header name
type Row struct {
	Line   int
	values map[string]string
	blank  bool
}

// Get returns the cell of the given column
func (r Row) Get(column string) (string, error) {
	value, ok := r.values[column]
	if !ok {
		return "", &ColumnError{Column: column, Line: r.Line}
	}
	return value, nil
}

// IsBlank reports whether every cell of the row is empty
func (r Row) IsBlank() bool {
	return r.blank
}

// NewRow builds a row from a header-to-cell mapping
func NewRow(line int, values map[string]string) Row {
	blank := true
	for _, v := range values {
		if v != "" {
			blank = false
			break
		}
	}
	return Row{Line: line, values: values, blank: blank}
}

// ReadRows reads all the data rows of the CSV file at path.
// The first record is used as the header.
func ReadRows(path string) ([]Row, error) {
	csvFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if err := csvFile.Close(); err != nil {
			logging.Warn("Failed to close departments CSV file", "error", err)
		}
	}()

	rows, err := readRows(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rows, nil
}

func readRows(r io.Reader) ([]Row, error) {
	decoded, err := decodeInput(r)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	// Rows exported from spreadsheets do not always have every trailing cell
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		line, _ := reader.FieldPos(0)
		values := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(record) {
				values[column] = record[i]
			} else {
				values[column] = ""
			}
		}

		row := NewRow(line, values)
		// Cells past the header still count when deciding if the row is blank
		for _, extra := range record[min(len(header), len(record)):] {
			if extra != "" {
				row.blank = false
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// decodeInput strips a UTF-8 byte order mark and falls back to ISO-8859-1
// for files that are not valid UTF-8
func decodeInput(r io.Reader) (io.Reader, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	if utf8.Valid(content) {
		return transform.NewReader(bytes.NewReader(content), unicode.BOMOverride(transform.Nop)), nil
	}

	logging.Warn("Input is not valid UTF-8, decoding as ISO-8859-1")
	return charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(content)), nil
}
