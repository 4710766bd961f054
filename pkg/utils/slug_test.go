package utils

import (
	"testing"
)

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Basic text with spaces",
			input:    "Premier League",
			expected: "premier-league",
		},
		{
			name:     "German special characters",
			input:    "Bayern München",
			expected: "bayern-munchen",
		},
		{
			name:     "Spanish special characters",
			input:    "Real Madrid España",
			expected: "real-madrid-espana",
		},
		{
			name:     "Accented characters",
			input:    "Saint-Étienne",
			expected: "saint-etienne",
		},
		{
			name:     "Empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "Multiple spaces and hyphens",
			input:    "Serie    ---    A",
			expected: "serie-a",
		},
		{
			name:     "Leading and trailing spaces",
			input:    "   La Liga   ",
			expected: "la-liga",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeSlug(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeSlug(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIdentityKey(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		teamName string
		country  string
		expected string
	}{
		{
			name:     "All parts present",
			id:       "152",
			teamName: "Premier League",
			country:  "England",
			expected: "152|premier-league|england",
		},
		{
			name:     "Missing id",
			id:       "",
			teamName: "La Liga",
			country:  "Spain",
			expected: "|la-liga|spain",
		},
		{
			name:     "Unicode folded consistently",
			id:       "9",
			teamName: "Süper Lig",
			country:  "Türkiye",
			expected: "9|super-lig|turkiye",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IdentityKey(tt.id, tt.teamName, tt.country)
			if result != tt.expected {
				t.Errorf("IdentityKey() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestSplitSlugID(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		expectedName    string
		expectedCountry string
	}{
		{
			name:            "Name and country",
			input:           "premier league::england",
			expectedName:    "premier league",
			expectedCountry: "england",
		},
		{
			name:            "Plain identifier",
			input:           "152",
			expectedName:    "152",
			expectedCountry: "",
		},
		{
			name:            "Whitespace trimmed",
			input:           " serie a :: italy ",
			expectedName:    "serie a",
			expectedCountry: "italy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotName, gotCountry := SplitSlugID(tt.input)
			if gotName != tt.expectedName || gotCountry != tt.expectedCountry {
				t.Errorf("SplitSlugID(%q) = (%q, %q), want (%q, %q)",
					tt.input, gotName, gotCountry, tt.expectedName, tt.expectedCountry)
			}
		})
	}
}

func TestGenerateFixtureSlug(t *testing.T) {
	tests := []struct {
		name       string
		homeTeam   string
		awayTeam   string
		externalID string
		expected   string
	}{
		{
			name:       "Basic fixture",
			homeTeam:   "Arsenal",
			awayTeam:   "Chelsea",
			externalID: "12345",
			expected:   "arsenal-vs-chelsea-12345",
		},
		{
			name:       "Empty team names",
			homeTeam:   "",
			awayTeam:   "",
			externalID: "99999",
			expected:   "team-vs-team-99999",
		},
		{
			name:       "Missing external id",
			homeTeam:   "Lyon",
			awayTeam:   "Lille",
			externalID: "",
			expected:   "lyon-vs-lille-fixture",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GenerateFixtureSlug(tt.homeTeam, tt.awayTeam, tt.externalID)
			if result != tt.expected {
				t.Errorf("GenerateFixtureSlug(%q, %q, %q) = %q, want %q",
					tt.homeTeam, tt.awayTeam, tt.externalID, result, tt.expected)
			}
		})
	}
}

func TestNameNormalizer(t *testing.T) {
	n := NewNameNormalizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Club suffix stripped",
			input:    "Liverpool FC",
			expected: "liverpool",
		},
		{
			name:     "Prefix stripped",
			input:    "FC Barcelona",
			expected: "barcelona",
		},
		{
			name:     "Diacritics folded",
			input:    "Beşiktaş",
			expected: "besiktas",
		},
		{
			name:     "Already plain",
			input:    "arsenal",
			expected: "arsenal",
		},
		{
			name:     "Punctuation stripped, digits kept",
			input:    "St. Pauli 1910",
			expected: "st pauli 1910",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}

	if !n.ContainsEither("Manchester United", "Manchester") {
		t.Error("ContainsEither should match substring in either direction")
	}
	if n.ContainsEither("Arsenal", "Chelsea") {
		t.Error("ContainsEither matched unrelated names")
	}
}
