package entities

// Department is one academic unit of the departments spreadsheet.
// ID is derived from Name and is not guaranteed to be unique.
type Department struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Degrees          []Degree    `json:"degrees"`
	InternalPartners []string    `json:"internalPartners"`
	ExternalPartners []string    `json:"externalPartners"`
	Highlights       []Highlight `json:"highlights"`
	TechCourses      []string    `json:"techCourses"`
}

// Degree is a program of study, optionally split into tracks.
type Degree struct {
	Name   string   `json:"name"`
	Tracks []string `json:"tracks"`
}

// Highlight is a named project. URL is empty when the source had no link.
type Highlight struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DepartmentsDocument is the top-level shape of the generated JSON file.
type DepartmentsDocument struct {
	Departments []Department `json:"departments"`
}
