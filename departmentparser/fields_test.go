package departmentparser

import (
	"testing"

	"github.com/giygas/departments-api/departmentparser/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListField(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		expected []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", "  \n  ", []string{}},
		{"only separators", " ; ;", []string{}},
		{"semicolons", "Library; Career Center ;;Museum", []string{"Library", "Career Center", "Museum"}},
		{"newlines", "Library\nCareer Center\n\n Museum ", []string{"Library", "Career Center", "Museum"}},
		{"newline wins over semicolon", "A; B\nC", []string{"A; B", "C"}},
		{"windows line endings", "A\r\nB", []string{"A", "B"}},
		{"single item", "  NASA  ", []string{"NASA"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseListField(tt.field)
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDegrees(t *testing.T) {
	t.Run("tracks merge into the same degree", func(t *testing.T) {
		got := ParseDegrees("BS Computer Science: AI Track\nBS Computer Science: Systems Track")

		assert.Equal(t, []entities.Degree{
			{Name: "BS Computer Science", Tracks: []string{"AI Track", "Systems Track"}},
		}, got)
	})

	t.Run("track merges into an earlier plain degree", func(t *testing.T) {
		got := ParseDegrees("BA History\nBA History: Public History Track")

		assert.Equal(t, []entities.Degree{
			{Name: "BA History", Tracks: []string{"Public History Track"}},
		}, got)
	})

	t.Run("plain lines never merge", func(t *testing.T) {
		got := ParseDegrees("BS Computer Science: AI Track\nBS Computer Science\nBS Computer Science")

		require.Len(t, got, 3)
		assert.Equal(t, []string{"AI Track"}, got[0].Tracks)
		assert.Equal(t, "BS Computer Science", got[1].Name)
		assert.Empty(t, got[1].Tracks)
		assert.NotNil(t, got[1].Tracks)
		assert.Equal(t, "BS Computer Science", got[2].Name)
	})

	t.Run("colon without track keyword is a plain degree", func(t *testing.T) {
		got := ParseDegrees("MA English: Literature")

		assert.Equal(t, []entities.Degree{{Name: "MA English: Literature", Tracks: []string{}}}, got)
	})

	t.Run("track without colon space is a plain degree", func(t *testing.T) {
		got := ParseDegrees("BS Biology:Track A")

		assert.Equal(t, []entities.Degree{{Name: "BS Biology:Track A", Tracks: []string{}}}, got)
	})

	t.Run("only the first colon splits", func(t *testing.T) {
		got := ParseDegrees("MS Data Science: Analytics Track: Online")

		assert.Equal(t, []entities.Degree{
			{Name: "MS Data Science", Tracks: []string{"Analytics Track: Online"}},
		}, got)
	})

	t.Run("semicolons are not separators", func(t *testing.T) {
		got := ParseDegrees("BA Art; BA Music")

		assert.Equal(t, []entities.Degree{{Name: "BA Art; BA Music", Tracks: []string{}}}, got)
	})

	t.Run("empty and blank lines", func(t *testing.T) {
		assert.Equal(t, []entities.Degree{}, ParseDegrees(""))
		assert.Equal(t, []entities.Degree{}, ParseDegrees(" \n\n "))
	})
}

func TestParseDegreesScopedToField(t *testing.T) {
	first := ParseDegrees("BS Physics: Astro Track")
	second := ParseDegrees("BS Physics: Quantum Track")

	assert.Equal(t, []string{"Astro Track"}, first[0].Tracks)
	assert.Equal(t, []string{"Quantum Track"}, second[0].Tracks)
}

func TestParseHighlights(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		expected []entities.Highlight
	}{
		{
			name:     "name and link",
			field:    "Robotics Lab: https://example.com/robotics",
			expected: []entities.Highlight{{Name: "Robotics Lab", URL: "https://example.com/robotics"}},
		},
		{
			name:     "no colon",
			field:    "Robotics Lab https://example.com/robotics ",
			expected: []entities.Highlight{{Name: "Robotics Lab", URL: "https://example.com/robotics"}},
		},
		{
			name:     "no link",
			field:    "Annual Symposium",
			expected: []entities.Highlight{{Name: "Annual Symposium", URL: ""}},
		},
		{
			name:     "link only",
			field:    "https://example.com",
			expected: []entities.Highlight{{Name: "", URL: "https://example.com"}},
		},
		{
			name:     "only a single trailing colon is removed",
			field:    "Notes:: https://example.com",
			expected: []entities.Highlight{{Name: "Notes:", URL: "https://example.com"}},
		},
		{
			name:  "split at the first link",
			field: "Mirror: https://a.example.com https://b.example.com",
			expected: []entities.Highlight{
				{Name: "Mirror", URL: "https://a.example.com https://b.example.com"},
			},
		},
		{
			name:     "plain http is not a link",
			field:    "Old site: http://example.com",
			expected: []entities.Highlight{{Name: "Old site: http://example.com", URL: ""}},
		},
		{
			name:  "one highlight per line",
			field: "A: https://a.example.com\n\nB",
			expected: []entities.Highlight{
				{Name: "A", URL: "https://a.example.com"},
				{Name: "B", URL: ""},
			},
		},
		{
			name:     "empty",
			field:    "",
			expected: []entities.Highlight{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseHighlights(tt.field))
		})
	}
}

func TestDepartmentID(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Computer Science & Engineering", "computer-science-and-engineering"},
		{"History", "history"},
		{"Art/Design", "art-design"},
		{"Women's Studies (WGS)", "womens-studies-wgs"},
		{"Café Management", "caf-management"},
		{"  Padded  ", "--padded--"},
		{"R&D 2.0", "randd-20"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DepartmentID(tt.name))
		})
	}
}
