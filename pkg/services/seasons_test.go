package services

import (
	"math"
	"testing"
)

func TestNormalizeSeasonLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{
			name:     "Split label with short end year",
			input:    "2023/24",
			expected: "2023/24",
		},
		{
			name:     "Dash separator canonicalized",
			input:    "2023-2024",
			expected: "2023/2024",
		},
		{
			name:     "Plain year string",
			input:    "2022",
			expected: "2022",
		},
		{
			name:     "Numeric year",
			input:    float64(2022),
			expected: "2022",
		},
		{
			name:     "Integer year",
			input:    2022,
			expected: "2022",
		},
		{
			name:     "Year below range",
			input:    1899,
			expected: "",
		},
		{
			name:     "Year above range",
			input:    "2101",
			expected: "",
		},
		{
			name:     "Garbage string",
			input:    "abcd",
			expected: "",
		},
		{
			name:     "Fractional number",
			input:    float64(2022.5),
			expected: "",
		},
		{
			name:     "Split start out of range",
			input:    "1880/81",
			expected: "",
		},
		{
			name:     "Whitespace tolerated",
			input:    "  2020/21  ",
			expected: "2020/21",
		},
		{
			name:     "Nil value",
			input:    nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSeasonLabel(tt.input); got != tt.expected {
				t.Errorf("NormalizeSeasonLabel(%v) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSeasonSortValue(t *testing.T) {
	current := SeasonSortValue("Current Season")
	recent := SeasonSortValue("2024/25")
	older := SeasonSortValue("2019/20")
	junk := SeasonSortValue("not-a-season")

	if !(current > recent && recent > older && older > junk) {
		t.Errorf("sort order violated: current=%v recent=%v older=%v junk=%v",
			current, recent, older, junk)
	}
	if !math.IsInf(current, 1) {
		t.Errorf("current sentinel should sort to +Inf, got %v", current)
	}
	if !math.IsInf(junk, -1) {
		t.Errorf("unparsable label should sort to -Inf, got %v", junk)
	}
}

func TestSeasonSortValueIdempotent(t *testing.T) {
	for _, label := range []string{"2024/25", "2022", "current"} {
		if SeasonSortValue(label) != SeasonSortValue(label) {
			t.Errorf("SeasonSortValue(%q) not stable", label)
		}
	}
}

func TestDetectSeasonFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected SeasonFormat
	}{
		{
			name:     "Split label",
			input:    "2023/24",
			expected: SeasonFormatSplit,
		},
		{
			name:     "Calendar year",
			input:    "2024",
			expected: SeasonFormatCalendar,
		},
		{
			name:     "Ambiguous defaults to split",
			input:    "latest",
			expected: SeasonFormatSplit,
		},
		{
			name:     "Empty defaults to split",
			input:    "",
			expected: SeasonFormatSplit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectSeasonFormat(tt.input); got != tt.expected {
				t.Errorf("DetectSeasonFormat(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBuildSequentialLabels(t *testing.T) {
	tests := []struct {
		name      string
		format    SeasonFormat
		existing  []string
		preferred string
		count     int
		expected  []string
	}{
		{
			name:      "Backfill split seasons below known max",
			format:    SeasonFormatSplit,
			existing:  []string{"2024/25"},
			preferred: "",
			count:     3,
			expected:  []string{"2023/24", "2022/23", "2021/22"},
		},
		{
			name:      "Preferred label anchors the walk",
			format:    SeasonFormatCalendar,
			existing:  nil,
			preferred: "2022",
			count:     2,
			expected:  []string{"2021", "2020"},
		},
		{
			name:      "Collisions skipped case-insensitively",
			format:    SeasonFormatCalendar,
			existing:  []string{"2024", "2023"},
			preferred: "",
			count:     2,
			expected:  []string{"2022", "2021"},
		},
		{
			name:     "Zero count",
			format:   SeasonFormatSplit,
			existing: []string{"2024/25"},
			count:    0,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSequentialLabels(tt.format, tt.existing, tt.preferred, tt.count)
			if len(got) != len(tt.expected) {
				t.Fatalf("BuildSequentialLabels() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("label[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestBuildSequentialLabelsTerminates(t *testing.T) {
	// Every candidate collides; the attempt bound must still stop the walk.
	existing := make([]string, 0, 30)
	for year := 2024; year > 1994; year-- {
		existing = append(existing, NormalizeSeasonLabel(year))
	}
	got := BuildSequentialLabels(SeasonFormatCalendar, existing, "", 4)
	if len(got) > 4 {
		t.Errorf("returned %d labels, want at most 4", len(got))
	}
}
