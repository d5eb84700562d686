package departmentparser

import (
	"context"

	"github.com/giygas/departments-api/departmentparser/entities"
	"github.com/giygas/departments-api/interfaces"
)

// Compile-time check to ensure DepartmentsParser implements Parser interface
var _ interfaces.Parser = (*DepartmentsParser)(nil)

// DepartmentsParser implements the Parser interface on top of Convert
type DepartmentsParser struct {
	inputPath  string
	outputPath string
}

// NewDepartmentsParser creates a parser reading inputPath and writing outputPath
func NewDepartmentsParser(inputPath, outputPath string) *DepartmentsParser {
	return &DepartmentsParser{
		inputPath:  inputPath,
		outputPath: outputPath,
	}
}

// ParseDepartments implements the Parser interface
func (p *DepartmentsParser) ParseDepartments(ctx context.Context) ([]entities.Department, error) {
	return Convert(ctx, p.inputPath, p.outputPath)
}
