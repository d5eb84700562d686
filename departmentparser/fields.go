// Package departmentparser converts the departments spreadsheet export into the departments JSON document.
package departmentparser

import (
	"regexp"
	"strings"

	"github.com/giygas/departments-api/departmentparser/entities"
)

// linkPrefix marks the start of a highlight URL
const linkPrefix = "https://"

var (
	idReplacer     = strings.NewReplacer(" ", "-", "/", "-", "&", "and")
	idInvalidChars = regexp.MustCompile(`[^a-z0-9-]`)
)

// DepartmentID derives the department id from its name.
//
//	DepartmentID("Computer Science & Engineering") // "computer-science-and-engineering"
func DepartmentID(name string) string {
	id := idReplacer.Replace(strings.ToLower(name))
	return idInvalidChars.ReplaceAllString(id, "")
}

// ParseListField splits a list cell into its trimmed, non-empty items.
// Cells containing a newline are split on newlines only, other cells on semicolons.
func ParseListField(field string) []string {
	items := []string{}
	if strings.TrimSpace(field) == "" {
		return items
	}

	separator := ";"
	if strings.Contains(field, "\n") {
		separator = "\n"
	}

	for _, item := range strings.Split(field, separator) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}

// ParseDegrees parses a degrees cell with one degree or "Degree: Some Track" per line.
// Track lines are merged into the first degree of the same name found in this cell;
// plain degree lines always start a new entry.
func ParseDegrees(field string) []entities.Degree {
	degrees := []entities.Degree{}

	for _, line := range splitLines(field) {
		if !strings.Contains(line, ": ") || !strings.Contains(line, "Track") {
			degrees = append(degrees, entities.Degree{Name: line, Tracks: []string{}})
			continue
		}

		degreeName, trackName, _ := strings.Cut(line, ": ")
		degreeName = strings.TrimSpace(degreeName)
		trackName = strings.TrimSpace(trackName)

		if i := findDegree(degrees, degreeName); i >= 0 {
			degrees[i].Tracks = append(degrees[i].Tracks, trackName)
			continue
		}

		degrees = append(degrees, entities.Degree{Name: degreeName, Tracks: []string{trackName}})
	}

	return degrees
}

// ParseHighlights parses a highlights cell with one "Name: https://..." entry per line
func ParseHighlights(field string) []entities.Highlight {
	highlights := []entities.Highlight{}

	for _, line := range splitLines(field) {
		before, after, found := strings.Cut(line, linkPrefix)
		if !found {
			highlights = append(highlights, entities.Highlight{Name: line, URL: ""})
			continue
		}

		name := strings.TrimSpace(before)
		name = strings.TrimSpace(strings.TrimSuffix(name, ":"))

		highlights = append(highlights, entities.Highlight{
			Name: name,
			URL:  linkPrefix + strings.TrimSpace(after),
		})
	}

	return highlights
}

// splitLines returns the trimmed non-empty lines of a cell
func splitLines(field string) []string {
	var lines []string
	for _, line := range strings.Split(field, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func findDegree(degrees []entities.Degree, name string) int {
	for i := range degrees {
		if degrees[i].Name == name {
			return i
		}
	}
	return -1
}
