package utils

import (
	"regexp"
	"strings"
	"unicode"
)

// NameNormalizer prepares team, league and player names for comparison.
// Matching in the resolver runs on trim+lowercase forms; this type strips the
// decoration (club suffixes, diacritics) that providers disagree on.
type NameNormalizer struct {
	commonSuffixes []string
	commonPrefixes []string
	replacements   map[string]string
	spaceRegex     *regexp.Regexp
}

// NewNameNormalizer creates a normalizer seeded with the suffix and prefix
// vocabulary seen across our providers.
func NewNameNormalizer() *NameNormalizer {
	return &NameNormalizer{
		commonSuffixes: []string{
			"FC", "SC", "AC", "BC", "SK", "FK", "CF", "IF", "SV", "TSV",
			"United", "City", "Town", "Rovers", "Wanderers", "Athletic",
			"Albion", "County", "Rangers", "Hotspur",
			"Club", "Team", "Football", "Calcio",
		},
		commonPrefixes: []string{
			"FC", "AC", "SC", "CF", "Club", "Real", "Athletic", "Sporting",
			"Deportivo", "Olympique", "AS", "US", "NK",
		},
		replacements: map[string]string{
			"&":     "and",
			"Saint": "St",
			"Sankt": "St",

			"ç": "c", "Ç": "C",
			"é": "e", "è": "e", "ê": "e",
			"á": "a", "à": "a", "â": "a", "ã": "a",
			"í": "i", "î": "i",
			"ó": "o", "ô": "o", "ö": "o", "Ö": "O",
			"ú": "u", "û": "u", "ü": "u", "Ü": "U",
			"ñ": "n", "ş": "s", "Ş": "S", "ğ": "g", "Ğ": "G", "ı": "i",
		},
		spaceRegex: regexp.MustCompile(`\s+`),
	}
}

// Normalize strips decoration from a name for comparison purposes.
func (n *NameNormalizer) Normalize(name string) string {
	if name == "" {
		return ""
	}

	normalized := strings.TrimSpace(name)
	for old, repl := range n.replacements {
		normalized = strings.ReplaceAll(normalized, old, repl)
	}
	normalized = n.removePrefixes(normalized)
	normalized = n.removeSuffixes(normalized)

	words := strings.Fields(normalized)
	for i, w := range words {
		words[i] = CleanWord(w)
	}
	normalized = strings.Join(words, " ")
	normalized = n.spaceRegex.ReplaceAllString(normalized, " ")

	return strings.ToLower(strings.TrimSpace(normalized))
}

func (n *NameNormalizer) removePrefixes(name string) string {
	for _, prefix := range n.commonPrefixes {
		patterns := []string{
			prefix + " ",
			strings.ToLower(prefix) + " ",
			strings.ToUpper(prefix) + " ",
		}
		for _, pattern := range patterns {
			if strings.HasPrefix(name, pattern) {
				return strings.TrimSpace(strings.TrimPrefix(name, pattern))
			}
		}
	}
	return name
}

func (n *NameNormalizer) removeSuffixes(name string) string {
	for _, suffix := range n.commonSuffixes {
		patterns := []string{
			" " + suffix,
			" " + strings.ToLower(suffix),
			" " + strings.ToUpper(suffix),
		}
		for _, pattern := range patterns {
			if strings.HasSuffix(name, pattern) {
				return strings.TrimSpace(strings.TrimSuffix(name, pattern))
			}
		}
	}
	return name
}

// ContainsEither reports whether either normalized name contains the other.
// This is the partial-match signal used by the resolver and the roster
// lookup.
func (n *NameNormalizer) ContainsEither(a, b string) bool {
	na, nb := n.Normalize(a), n.Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// CleanWord strips punctuation from a word, keeping letters and digits so
// numeric club names survive normalization.
func CleanWord(word string) string {
	var result strings.Builder
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}
