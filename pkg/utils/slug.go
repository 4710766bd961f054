package utils

import (
	"strings"

	"github.com/gosimple/slug"
)

// NormalizeSlug creates a URL-friendly slug using the gosimple/slug library,
// which handles Unicode across all the leagues we carry.
func NormalizeSlug(text string) string {
	if text == "" {
		return ""
	}
	return slug.Make(text)
}

// IdentityKey builds the strongest matching signal for a league or team:
// normalized id, name and country joined with "|". Deep links carry this key
// so a later view can rebind without re-running fuzzy matching.
func IdentityKey(id, name, country string) string {
	return NormalizeSlug(id) + "|" + NormalizeSlug(name) + "|" + NormalizeSlug(country)
}

// SplitSlugID splits a "name::country" slug identifier into its parts. A
// plain identifier comes back as (id, "").
func SplitSlugID(raw string) (name, country string) {
	parts := strings.SplitN(raw, "::", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(raw), ""
}

// GenerateFixtureSlug creates a slug for a fixture from team names and the
// provider id.
func GenerateFixtureSlug(homeTeam, awayTeam, externalID string) string {
	if homeTeam == "" {
		homeTeam = "team"
	}
	if awayTeam == "" {
		awayTeam = "team"
	}
	if externalID == "" {
		externalID = "fixture"
	}
	return NormalizeSlug(homeTeam + " vs " + awayTeam + " " + externalID)
}

// GenerateLeagueSlug creates a slug for a league name and country.
func GenerateLeagueSlug(leagueName, country string) string {
	if leagueName == "" {
		leagueName = "league"
	}
	text := leagueName
	if country != "" {
		text += " " + country
	}
	return NormalizeSlug(text)
}
