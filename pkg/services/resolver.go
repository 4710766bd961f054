package services

import (
	"strings"

	"github.com/matchday-lens/core/pkg/models"
	"github.com/matchday-lens/core/pkg/utils"
)

// TargetDescriptor is the partially-specified identity a view wants to bind
// to a concrete entity. Any subset of fields may be set.
type TargetDescriptor struct {
	ProviderID    string
	SlugID        string // may encode "name::country"
	TargetName    string
	TargetCountry string
	IdentityKey   string
}

// ResolvedEntity is the outcome of entity resolution. Method names the tier
// that produced the binding; "fallback_first" marks the low-confidence case
// where no signal overlapped and the first candidate was taken so the view is
// never blank.
type ResolvedEntity struct {
	Entity models.LeagueEntity
	Method string
}

// ResolveEntity matches the target against the candidate list using tiered
// rules, strongest first. It is pure and returns nil only when the candidate
// list is empty.
//
// Taking candidates[0] when nothing overlaps can bind the wrong entity; that
// trade-off is deliberate and callers surface Method so low-confidence
// bindings can be hinted at in the UI.
func ResolveEntity(candidates []models.LeagueEntity, target TargetDescriptor) *ResolvedEntity {
	if len(candidates) == 0 {
		return nil
	}

	slugName, slugCountry := utils.SplitSlugID(target.SlugID)
	wantID := normalize(target.ProviderID)
	wantName := normalize(target.TargetName)
	if wantName == "" {
		wantName = normalize(slugName)
	}
	wantCountry := normalize(target.TargetCountry)
	if wantCountry == "" {
		wantCountry = normalize(slugCountry)
	}
	wantIdentity := normalize(target.IdentityKey)

	if wantIdentity != "" {
		for _, c := range candidates {
			if normalize(candidateIdentityKey(c)) == wantIdentity {
				return &ResolvedEntity{Entity: c, Method: "identity_key"}
			}
		}
	}

	type tier struct {
		method      string
		match       func(models.LeagueEntity) bool
		wantCountry bool
	}

	tiers := []tier{
		{"exact_id_country", func(c models.LeagueEntity) bool { return idEquals(c, wantID) }, true},
		{"exact_id", func(c models.LeagueEntity) bool { return idEquals(c, wantID) }, false},
		{"exact_name_country", func(c models.LeagueEntity) bool { return nameEquals(c, wantName) }, true},
		{"exact_name", func(c models.LeagueEntity) bool { return nameEquals(c, wantName) }, false},
		{"partial_id_country", func(c models.LeagueEntity) bool { return idContains(c, wantID) }, true},
		{"partial_id", func(c models.LeagueEntity) bool { return idContains(c, wantID) }, false},
		{"partial_name_country", func(c models.LeagueEntity) bool { return nameContains(c, wantName) }, true},
		{"partial_name", func(c models.LeagueEntity) bool { return nameContains(c, wantName) }, false},
	}

	for _, tr := range tiers {
		if tr.wantCountry && wantCountry == "" {
			continue
		}
		for _, c := range candidates {
			if tr.wantCountry && normalize(c.Country) != wantCountry {
				continue
			}
			if tr.match(c) {
				return &ResolvedEntity{Entity: c, Method: tr.method}
			}
		}
	}

	return &ResolvedEntity{Entity: candidates[0], Method: "fallback_first"}
}

// resolverNames strips club decoration so "Arsenal FC" still partial-matches
// "Arsenal" across providers.
var resolverNames = utils.NewNameNormalizer()

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func candidateIdentityKey(c models.LeagueEntity) string {
	return utils.IdentityKey(c.ID, c.Name, c.Country)
}

func idEquals(c models.LeagueEntity, want string) bool {
	if want == "" {
		return false
	}
	return normalize(c.ID) == want || normalize(c.RawID) == want
}

func idContains(c models.LeagueEntity, want string) bool {
	if want == "" {
		return false
	}
	return containsEither(normalize(c.ID), want) || containsEither(normalize(c.RawID), want)
}

func nameEquals(c models.LeagueEntity, want string) bool {
	if want == "" {
		return false
	}
	if normalize(c.Name) == want {
		return true
	}
	for _, alias := range c.Aliases {
		if normalize(alias) == want {
			return true
		}
	}
	return false
}

func nameContains(c models.LeagueEntity, want string) bool {
	if want == "" {
		return false
	}
	if containsEither(normalize(c.Name), want) || resolverNames.ContainsEither(c.Name, want) {
		return true
	}
	for _, alias := range c.Aliases {
		if containsEither(normalize(alias), want) || resolverNames.ContainsEither(alias, want) {
			return true
		}
	}
	return false
}

func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
