package services

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SeasonFormat is the labeling convention a competition uses for its seasons.
type SeasonFormat string

const (
	// SeasonFormatCalendar labels seasons with a single year ("2024").
	SeasonFormatCalendar SeasonFormat = "calendar"
	// SeasonFormatSplit labels seasons across two years ("2024/25").
	SeasonFormatSplit SeasonFormat = "split"

	minSeasonYear = 1900
	maxSeasonYear = 2100
)

var (
	splitSeasonRegex = regexp.MustCompile(`^(\d{4})\s*[/-]\s*(\d{2}|\d{4})$`)
	embeddedYearRegex = regexp.MustCompile(`\d{4}`)
)

// NormalizeSeasonLabel canonicalizes a provider season value. It accepts a
// 4-digit year in [1900,2100] (numeric or string) or a split label in
// "YYYY/YY", "YYYY/YYYY" or "YYYY-YYYY" form; the canonical separator is "/".
// Anything else yields "" — conservative, to avoid false positives.
func NormalizeSeasonLabel(value any) string {
	var raw string
	switch v := value.(type) {
	case string:
		raw = strings.TrimSpace(v)
	case float64:
		if v != math.Trunc(v) {
			return ""
		}
		raw = strconv.FormatInt(int64(v), 10)
	case int:
		raw = strconv.Itoa(v)
	default:
		return ""
	}
	if raw == "" {
		return ""
	}

	if year, err := strconv.Atoi(raw); err == nil {
		if year >= minSeasonYear && year <= maxSeasonYear {
			return strconv.Itoa(year)
		}
		return ""
	}

	m := splitSeasonRegex.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	start, _ := strconv.Atoi(m[1])
	if start < minSeasonYear || start > maxSeasonYear {
		return ""
	}
	end := m[2]
	if len(end) == 4 {
		endYear, _ := strconv.Atoi(end)
		if endYear < minSeasonYear || endYear > maxSeasonYear {
			return ""
		}
	}
	return m[1] + "/" + end
}

// SeasonSortValue orders season labels by recency. Labels containing
// "current" sort highest, unparsable labels lowest; everything else sorts by
// its leading embedded 4-digit year.
func SeasonSortValue(label string) float64 {
	if strings.Contains(strings.ToLower(label), "current") {
		return math.Inf(1)
	}
	if year := embeddedYearRegex.FindString(label); year != "" {
		n, _ := strconv.Atoi(year)
		return float64(n)
	}
	return math.Inf(-1)
}

// DetectSeasonFormat infers the labeling convention from a sample label.
// Split-year is the default when the sample is ambiguous; most competitions
// we carry run across the calendar year boundary.
func DetectSeasonFormat(label string) SeasonFormat {
	trimmed := strings.TrimSpace(label)
	if splitSeasonRegex.MatchString(trimmed) {
		return SeasonFormatSplit
	}
	if year, err := strconv.Atoi(trimmed); err == nil &&
		year >= minSeasonYear && year <= maxSeasonYear {
		return SeasonFormatCalendar
	}
	return SeasonFormatSplit
}

// BuildSequentialLabels synthesizes up to count season labels walking
// backward from the most recent known year, skipping case-insensitive
// collisions with labels the provider already exposed. The walk is bounded to
// 6*count attempts so it always terminates.
func BuildSequentialLabels(format SeasonFormat, existing []string, preferred string, count int) []string {
	if count <= 0 {
		return nil
	}

	known := make(map[string]struct{}, len(existing))
	anchor := math.Inf(-1)
	for _, label := range existing {
		known[strings.ToLower(strings.TrimSpace(label))] = struct{}{}
		if v := SeasonSortValue(label); !math.IsInf(v, 0) && v > anchor {
			anchor = v
		}
	}
	if trimmed := strings.TrimSpace(preferred); trimmed != "" {
		known[strings.ToLower(trimmed)] = struct{}{}
		if v := SeasonSortValue(trimmed); !math.IsInf(v, 0) && v > anchor {
			anchor = v
		}
	}
	if math.IsInf(anchor, -1) {
		anchor = float64(time.Now().UTC().Year())
	}

	var labels []string
	year := int(anchor)
	for attempts := 0; attempts < 6*count && len(labels) < count; attempts++ {
		label := formatSeasonLabel(format, year-attempts)
		if _, collision := known[strings.ToLower(label)]; collision {
			continue
		}
		known[strings.ToLower(label)] = struct{}{}
		labels = append(labels, label)
	}
	return labels
}

func formatSeasonLabel(format SeasonFormat, year int) string {
	if format == SeasonFormatCalendar {
		return strconv.Itoa(year)
	}
	return fmt.Sprintf("%d/%02d", year, (year+1)%100)
}
