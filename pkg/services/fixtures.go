package services

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/matchday-lens/core/pkg/jsonx"
	"github.com/matchday-lens/core/pkg/models"
)

// Alias-key tables for fixture fields. Ordered by how often each provider
// spelling shows up in practice.
var (
	fixtureIDKeys       = []string{"event_key", "fixture_id", "match_id", "id"}
	fixtureHomeKeys     = []string{"event_home_team", "home_team", "homeTeam", "home_name", "strHomeTeam", "home"}
	fixtureAwayKeys     = []string{"event_away_team", "away_team", "awayTeam", "away_name", "strAwayTeam", "away"}
	fixtureStatusKeys   = []string{"event_status", "status", "match_status", "state"}
	fixtureLeagueKeys   = []string{"league_name", "league", "competition", "tournament"}
	fixtureVenueKeys    = []string{"event_stadium", "venue", "stadium", "ground"}
	fixtureDateKeys     = []string{"event_date", "match_date", "date", "kickoff", "starting_at"}
	fixtureTimeKeys     = []string{"event_time", "match_time", "time"}
	fixtureAttendKeys   = []string{"attendance", "spectators", "crowd"}
	fixtureHomeLogoKeys = []string{"home_team_logo", "home_logo", "homeLogo"}
	fixtureAwayLogoKeys = []string{"away_team_logo", "away_logo", "awayLogo"}
	fixtureHomeIDKeys   = []string{"home_team_key", "home_team_id", "homeTeamId", "localteam_id"}
	fixtureAwayIDKeys   = []string{"away_team_key", "away_team_id", "awayTeamId", "visitorteam_id"}
)

// Status vocabulary for the scheduled-view window filter. Matching is
// case-insensitive substring.
var (
	liveStatusKeywords     = []string{"live", "half", "in play", "playing", "pen."}
	finishedStatusKeywords = []string{"finished", "full time", "ft", "ended", "after extra"}
)

// MapFixture builds a canonical fixture from an untyped provider object.
// Total: unknown shapes produce a mostly-empty fixture, never an error.
func MapFixture(obj map[string]any) models.CanonicalFixture {
	f := models.CanonicalFixture{
		ID:         jsonx.PickStringDefault(obj, "", fixtureIDKeys...),
		HomeTeam:   jsonx.PickStringDefault(obj, "", fixtureHomeKeys...),
		AwayTeam:   jsonx.PickStringDefault(obj, "", fixtureAwayKeys...),
		Status:     jsonx.PickStringDefault(obj, "", fixtureStatusKeys...),
		League:     jsonx.PickStringDefault(obj, "", fixtureLeagueKeys...),
		Venue:      jsonx.PickStringDefault(obj, "", fixtureVenueKeys...),
		Date:       jsonx.PickStringDefault(obj, "", fixtureDateKeys...),
		Time:       jsonx.PickStringDefault(obj, "", fixtureTimeKeys...),
		Attendance: jsonx.PickStringDefault(obj, "", fixtureAttendKeys...),
		HomeLogo:   SanitizeLogoValue(firstPresent(obj, fixtureHomeLogoKeys)),
		AwayLogo:   SanitizeLogoValue(firstPresent(obj, fixtureAwayLogoKeys)),
	}
	f.HomeScore, f.AwayScore = extractScores(obj)
	return f
}

func firstPresent(obj map[string]any, keys []string) any {
	for _, key := range keys {
		if v, exists := obj[key]; exists && v != nil {
			return v
		}
	}
	return nil
}

// extractScores reads scores from dedicated fields, falling back to a
// combined "2 - 1" final-result string.
func extractScores(obj map[string]any) (home, away string) {
	home = jsonx.PickStringDefault(obj, "", "home_score", "event_home_final_result", "homeScore", "home_goals")
	away = jsonx.PickStringDefault(obj, "", "away_score", "event_away_final_result", "awayScore", "away_goals")
	if home != "" || away != "" {
		return home, away
	}
	combined, ok := jsonx.PickString(obj, "event_final_result", "final_result", "score", "ft_score")
	if !ok {
		return "", ""
	}
	parts := strings.SplitN(combined, "-", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

// DedupFixtures collapses repeated fixtures on the composite key. First-seen
// wins; later duplicates are dropped whole, not merged.
func DedupFixtures(fixtures []models.CanonicalFixture) []models.CanonicalFixture {
	seen := make(map[string]struct{}, len(fixtures))
	out := make([]models.CanonicalFixture, 0, len(fixtures))
	for _, f := range fixtures {
		key := strings.ToLower(f.Key())
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, f)
	}
	return out
}

// SortFixtures orders fixtures chronologically. Fixtures whose timestamp
// cannot be parsed sort to the end, in their incoming order.
func SortFixtures(fixtures []models.CanonicalFixture) []models.CanonicalFixture {
	out := append([]models.CanonicalFixture(nil), fixtures...)
	sort.SliceStable(out, func(i, j int) bool {
		ti, okI := FixtureKickoff(out[i])
		tj, okJ := FixtureKickoff(out[j])
		if okI != okJ {
			return okI
		}
		if !okI {
			return false
		}
		return ti.Before(tj)
	})
	return out
}

// FixtureKickoff derives the sortable kickoff instant. A date that already
// carries a time component is parsed directly; otherwise the date-only part
// is combined with the separate time field, defaulting to midnight UTC.
func FixtureKickoff(f models.CanonicalFixture) (time.Time, bool) {
	date := strings.TrimSpace(f.Date)
	if date == "" {
		return time.Time{}, false
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.UTC(), true
		}
	}

	clock := strings.TrimSpace(f.Time)
	if clock == "" {
		clock = "00:00"
	}
	clock = padClock(clock)
	if t, err := time.Parse("2006-01-02 15:04:05", date+" "+clock); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// padClock zero-pads a clock string to HH:MM:SS.
func padClock(clock string) string {
	parts := strings.Split(clock, ":")
	for len(parts) < 3 {
		parts = append(parts, "00")
	}
	for i, p := range parts {
		if len(p) == 1 {
			parts[i] = "0" + p
		}
	}
	return strings.Join(parts[:3], ":")
}

// FilterScheduledWindow keeps fixtures suitable for a "scheduled" view:
// status matches neither the live nor the finished vocabulary, and the
// kickoff date falls inside the inclusive [from, to] range.
func FilterScheduledWindow(fixtures []models.CanonicalFixture, from, to time.Time) []models.CanonicalFixture {
	out := make([]models.CanonicalFixture, 0, len(fixtures))
	for _, f := range fixtures {
		if statusMatches(f.Status, liveStatusKeywords) || statusMatches(f.Status, finishedStatusKeywords) {
			continue
		}
		kickoff, ok := FixtureKickoff(f)
		if !ok {
			continue
		}
		// Inclusive on both edges: only the calendar date matters, so a
		// late kickoff on the final day still belongs to the window.
		day := kickoff.Truncate(24 * time.Hour)
		if day.Before(from.Truncate(24*time.Hour)) || day.After(to.Truncate(24*time.Hour)) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func statusMatches(status string, vocabulary []string) bool {
	lower := strings.ToLower(strings.TrimSpace(status))
	if lower == "" {
		return false
	}
	for _, keyword := range vocabulary {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// HeadToHeadSummary aggregates past meetings, oriented around one team.
type HeadToHeadSummary struct {
	Played int `json:"played"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// SummarizeHeadToHead tallies results from a deduped fixture list from the
// perspective of team; fixtures where that side played away are flipped.
// Fixtures without both scores are skipped.
func SummarizeHeadToHead(fixtures []models.CanonicalFixture, team string) HeadToHeadSummary {
	var summary HeadToHeadSummary
	want := strings.ToLower(strings.TrimSpace(team))
	for _, f := range DedupFixtures(fixtures) {
		hs, okH := parseScore(f.HomeScore)
		as, okA := parseScore(f.AwayScore)
		if !okH || !okA {
			continue
		}
		summary.Played++
		playedHome := strings.Contains(strings.ToLower(f.HomeTeam), want) || want == ""
		switch {
		case hs == as:
			summary.Draws++
		case (hs > as) == playedHome:
			summary.Wins++
		default:
			summary.Losses++
		}
	}
	return summary
}

func parseScore(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// FormatKickoffLocal renders a kickoff instant for display in the given
// location, falling back to the raw date string when unparsable.
func FormatKickoffLocal(f models.CanonicalFixture, loc *time.Location) string {
	kickoff, ok := FixtureKickoff(f)
	if !ok {
		return f.Date
	}
	if loc == nil {
		loc = time.UTC
	}
	return kickoff.In(loc).Format("2006-01-02 15:04")
}
