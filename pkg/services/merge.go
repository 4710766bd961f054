package services

import (
	"strings"

	"github.com/matchday-lens/core/pkg/models"
)

// Merge semantics are monotonic on purpose: several independent fetches
// populate the same view state asynchronously, and a later, less complete
// response must never erase a value an earlier, richer response already
// provided.

// MergeHeroInfo merges an enrichment patch into a league's hero block. A
// patch field wins only when non-empty; aliases are unioned with
// de-duplication on the trimmed value.
func MergeHeroInfo(prev, patch models.LeagueEntity) models.LeagueEntity {
	merged := prev
	if v := strings.TrimSpace(patch.ID); v != "" {
		merged.ID = v
	}
	if v := strings.TrimSpace(patch.RawID); v != "" {
		merged.RawID = v
	}
	if v := strings.TrimSpace(patch.Name); v != "" {
		merged.Name = v
	}
	if v := strings.TrimSpace(patch.Country); v != "" {
		merged.Country = v
	}
	if v := strings.TrimSpace(patch.Logo); v != "" {
		merged.Logo = v
	}
	merged.Aliases = unionAliases(prev.Aliases, patch.Aliases)
	return merged
}

func unionAliases(prev, patch []string) []string {
	if len(patch) == 0 {
		return prev
	}
	seen := make(map[string]struct{}, len(prev)+len(patch))
	out := make([]string, 0, len(prev)+len(patch))
	for _, list := range [][]string{prev, patch} {
		for _, alias := range list {
			trimmed := strings.TrimSpace(alias)
			if trimmed == "" {
				continue
			}
			key := strings.ToLower(trimmed)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, trimmed)
		}
	}
	return out
}

// MergeLogoCache merges freshly fetched logo lookups into a cached map. A new
// value replaces a cached one only when it survives sanitization, and — with
// overrideExisting false — only when no value is cached yet. An empty update
// never clobbers a known-good URL. The original map is returned untouched
// when nothing changed, so callers can skip re-rendering on reference
// equality.
func MergeLogoCache(prev map[string]string, updates map[string]any, overrideExisting bool) map[string]string {
	if len(updates) == 0 {
		return prev
	}

	var merged map[string]string
	for key, raw := range updates {
		value := SanitizeLogoValue(raw)
		if value == "" {
			continue
		}
		existing, cached := prev[key]
		if existing == value {
			continue
		}
		if cached && existing != "" && !overrideExisting {
			continue
		}
		if merged == nil {
			merged = make(map[string]string, len(prev)+len(updates))
			for k, v := range prev {
				merged[k] = v
			}
		}
		merged[key] = value
	}

	if merged == nil {
		return prev
	}
	return merged
}

// logoNestedKeys is the probe order for object-shaped logo values. Providers
// wrap the same URL under different keys.
var logoNestedKeys = []string{"url", "src", "image", "path", "logo", "image_path", "badge"}

// SanitizeLogoValue extracts a usable logo URL from whatever shape a provider
// returned: a plain string, an array of candidates, or an object keyed by one
// of several known names. Sentinel strings like "null" are rejected.
func SanitizeLogoValue(raw any) string {
	return sanitizeLogoValue(raw, 0)
}

func sanitizeLogoValue(raw any, depth int) string {
	if raw == nil || depth > 4 {
		return ""
	}
	switch v := raw.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		switch strings.ToLower(trimmed) {
		case "", "null", "undefined", "none":
			return ""
		}
		return trimmed
	case []any:
		for _, item := range v {
			if s := sanitizeLogoValue(item, depth+1); s != "" {
				return s
			}
		}
		return ""
	case map[string]any:
		for _, key := range logoNestedKeys {
			if inner, exists := v[key]; exists {
				if s := sanitizeLogoValue(inner, depth+1); s != "" {
					return s
				}
			}
		}
		return ""
	default:
		return ""
	}
}
