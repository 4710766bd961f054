package models

// CanonicalFixture is the provider-independent fixture shape consumed by the
// rendering layer. Every field may be absent; collections arrive pre-sorted.
type CanonicalFixture struct {
	ID         string   `json:"id,omitempty"`
	HomeTeam   string   `json:"home_team,omitempty"`
	AwayTeam   string   `json:"away_team,omitempty"`
	HomeScore  string   `json:"home_score,omitempty"`
	AwayScore  string   `json:"away_score,omitempty"`
	Status     string   `json:"status,omitempty"`
	League     string   `json:"league,omitempty"`
	Venue      string   `json:"venue,omitempty"`
	Date       string   `json:"date,omitempty"` // ISO8601, may be date-only
	Time       string   `json:"time,omitempty"` // HH:MM when Date carries no time part
	Attendance string   `json:"attendance,omitempty"`
	HomeLogo   string   `json:"home_logo,omitempty"`
	AwayLogo   string   `json:"away_logo,omitempty"`

	WinProbabilities *WinProbabilities `json:"win_probabilities,omitempty"`
	Stats            map[string]string `json:"stats,omitempty"`
	Timeline         []TimelineItem    `json:"timeline,omitempty"`
}

// Key returns the composite identity used for deduplication: the provider id
// when present, otherwise home-away-date-time.
func (f CanonicalFixture) Key() string {
	if f.ID != "" {
		return f.ID
	}
	return f.HomeTeam + "-" + f.AwayTeam + "-" + f.Date + "-" + f.Time
}

// WinProbabilities holds pre-match or live outcome probabilities in percent.
type WinProbabilities struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

// CanonicalStandingRow is one row of a league table after normalization.
type CanonicalStandingRow struct {
	Team           string `json:"team"`
	Position       int    `json:"position"`
	Played         int    `json:"played"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
	StageKey       string `json:"stage_key,omitempty"`
	SeasonKey      string `json:"season_key,omitempty"`
	Logo           string `json:"logo,omitempty"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}

// LeagueEntity identifies one league across providers. IdentityKey is the
// strongest matching signal and is safe to embed in deep links.
type LeagueEntity struct {
	ID      string   `json:"id,omitempty"`
	RawID   string   `json:"raw_id,omitempty"`
	Name    string   `json:"name,omitempty"`
	Country string   `json:"country,omitempty"`
	Logo    string   `json:"logo,omitempty"`
	Aliases []string `json:"aliases,omitempty"`
}

// TimelineItem is one event in a match timeline, provider-supplied or
// synthesized from goalscorer records.
type TimelineItem struct {
	Minute      string      `json:"minute,omitempty"`
	Description string      `json:"description,omitempty"`
	Player      string      `json:"player,omitempty"`
	Team        string      `json:"team,omitempty"` // "home" or "away"
	Meta        *PlayerMeta `json:"meta,omitempty"`
}

// TeamLeader is the top player of one side in one statistical category.
type TeamLeader struct {
	Name        string      `json:"name"`
	Side        string      `json:"side"`
	Goals       int         `json:"goals"`
	Assists     int         `json:"assists"`
	YellowCards int         `json:"yellow_cards"`
	RedCards    int         `json:"red_cards"`
	Meta        *PlayerMeta `json:"meta,omitempty"`
}

// SideLeaders holds the per-category leader slots for one side. A slot is nil
// when no player has a strictly positive value in that category.
type SideLeaders struct {
	Goals   *TeamLeader `json:"goals,omitempty"`
	Assists *TeamLeader `json:"assists,omitempty"`
	Cards   *TeamLeader `json:"cards,omitempty"`
}

// TeamLeaders is the full leaders block for a match.
type TeamLeaders struct {
	Home SideLeaders `json:"home"`
	Away SideLeaders `json:"away"`
}

// PlayerMeta carries roster details for a named player. Fields are empty
// strings on miss so callers never null-check.
type PlayerMeta struct {
	Image    string `json:"image"`
	Position string `json:"position"`
	Number   string `json:"number"`
}

// BestPlayer is the heuristic man-of-the-match pick when the provider does not
// supply one.
type BestPlayer struct {
	Name    string      `json:"name"`
	Score   int         `json:"score"`
	Goals   int         `json:"goals"`
	Assists int         `json:"assists"`
	Meta    *PlayerMeta `json:"meta,omitempty"`
}
