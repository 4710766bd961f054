package services

import (
	"regexp"
	"sort"
	"strings"

	"github.com/matchday-lens/core/pkg/jsonx"
	"github.com/matchday-lens/core/pkg/models"
)

var (
	timelineAliasKeys   = []string{"timeline", "events", "match_events", "incidents", "highlights_events"}
	goalscorerAliasKeys = []string{"goalscorers", "goalscorer", "scorers", "goals"}
	cardAliasKeys       = []string{"cards", "bookings", "discipline"}

	timelineMinuteKeys = []string{"time", "minute", "elapsed", "event_minute"}
	timelinePlayerKeys = []string{"player", "player_name", "scorer", "name"}
	timelineTextKeys   = []string{"description", "text", "detail", "event", "type"}
	timelineSideKeys   = []string{"home_away", "side", "team"}

	scorerMinuteKeys = []string{"time", "minute", "elapsed"}

	capitalizedNameRegex = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s[A-Z][a-z]+)?\b`)
)

// MapTimeline derives a match timeline. When the raw match carries an
// explicit timeline array under any alias key it is used as-is (flattened if
// expressed as an object of arrays); otherwise entries are synthesized from
// goal-scorer records, one per scoring event.
func MapTimeline(match map[string]any) []models.TimelineItem {
	if match == nil {
		return nil
	}

	for _, key := range timelineAliasKeys {
		raw, exists := match[key]
		if !exists || raw == nil {
			continue
		}
		if items := mapExplicitTimeline(raw); len(items) > 0 {
			return items
		}
	}

	return synthesizeTimeline(match)
}

func mapExplicitTimeline(raw any) []models.TimelineItem {
	rows := jsonx.ObjectRows(flattenEventRows(raw))
	items := make([]models.TimelineItem, 0, len(rows))
	for _, row := range rows {
		item := models.TimelineItem{
			Minute:      jsonx.PickStringDefault(row, "", timelineMinuteKeys...),
			Description: jsonx.PickStringDefault(row, "", timelineTextKeys...),
			Player:      jsonx.PickStringDefault(row, "", timelinePlayerKeys...),
			Team:        normalizeSide(jsonx.PickStringDefault(row, "", timelineSideKeys...)),
		}
		if item.Minute == "" && item.Description == "" && item.Player == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// flattenEventRows accepts either a plain array of events or an
// object-of-arrays (e.g. keyed by half) and returns one flat slice.
func flattenEventRows(raw any) []any {
	switch v := raw.(type) {
	case []any:
		return v
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var flat []any
		for _, key := range keys {
			if nested, ok := v[key].([]any); ok {
				flat = append(flat, nested...)
			}
		}
		return flat
	default:
		return nil
	}
}

func synthesizeTimeline(match map[string]any) []models.TimelineItem {
	var items []models.TimelineItem
	for _, scorer := range scorerRows(match) {
		minute := jsonx.PickStringDefault(scorer, "", scorerMinuteKeys...)
		for _, side := range []string{"home", "away"} {
			name, ok := jsonx.PickString(scorer, side+"_scorer")
			if !ok {
				continue
			}
			items = append(items, models.TimelineItem{
				Minute:      minute,
				Description: "Goal by " + name,
				Player:      name,
				Team:        side,
			})
		}
		// Side-less scorer records still produce one event.
		if _, hasHome := jsonx.PickString(scorer, "home_scorer"); !hasHome {
			if _, hasAway := jsonx.PickString(scorer, "away_scorer"); !hasAway {
				if name, ok := jsonx.PickString(scorer, "name", "player", "scorer"); ok {
					items = append(items, models.TimelineItem{
						Minute:      minute,
						Description: "Goal by " + name,
						Player:      name,
					})
				}
			}
		}
	}
	return items
}

func scorerRows(match map[string]any) []map[string]any {
	for _, key := range goalscorerAliasKeys {
		if rows := jsonx.ObjectRows(flattenEventRows(match[key])); len(rows) > 0 {
			return rows
		}
	}
	return nil
}

func cardRows(match map[string]any) []map[string]any {
	for _, key := range cardAliasKeys {
		if rows := jsonx.ObjectRows(flattenEventRows(match[key])); len(rows) > 0 {
			return rows
		}
	}
	return nil
}

func normalizeSide(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "home", "h", "localteam", "1":
		return "home"
	case "away", "a", "visitorteam", "2":
		return "away"
	default:
		return ""
	}
}

// playerTally accumulates one player's counters on one side. First-seen
// casing of the name is retained for display.
type playerTally struct {
	name        string
	side        string
	goals       int
	assists     int
	yellowCards int
	redCards    int
	order       int
}

type tallySet struct {
	byKey map[string]*playerTally
	seq   []*playerTally
}

func newTallySet() *tallySet {
	return &tallySet{byKey: make(map[string]*playerTally)}
}

func (s *tallySet) get(name, side string) *playerTally {
	key := side + "|" + strings.ToLower(strings.TrimSpace(name))
	if t, exists := s.byKey[key]; exists {
		return t
	}
	t := &playerTally{name: strings.TrimSpace(name), side: side, order: len(s.seq)}
	s.byKey[key] = t
	s.seq = append(s.seq, t)
	return t
}

// ComputeTeamLeaders aggregates per-player counters from goal-scorer and card
// lists and selects each side's leader per category. A slot is nil when no
// player has a strictly positive value for that category.
func ComputeTeamLeaders(match map[string]any) models.TeamLeaders {
	tallies := newTallySet()

	for _, scorer := range scorerRows(match) {
		for _, side := range []string{"home", "away"} {
			if name, ok := jsonx.PickString(scorer, side+"_scorer"); ok {
				tallies.get(name, side).goals++
			}
			if name, ok := jsonx.PickString(scorer, side+"_assist"); ok {
				tallies.get(name, side).assists++
			}
		}
	}

	for _, card := range cardRows(match) {
		kind := strings.ToLower(jsonx.PickStringDefault(card, "", "card", "type", "color"))
		for _, side := range []string{"home", "away"} {
			name, ok := jsonx.PickString(card, side+"_fault", side+"_player")
			if !ok {
				continue
			}
			tally := tallies.get(name, side)
			if strings.Contains(kind, "red") {
				tally.redCards++
			} else {
				tally.yellowCards++
			}
		}
	}

	return models.TeamLeaders{
		Home: sideLeaders(tallies, "home"),
		Away: sideLeaders(tallies, "away"),
	}
}

func sideLeaders(tallies *tallySet, side string) models.SideLeaders {
	var players []*playerTally
	for _, t := range tallies.seq {
		if t.side == side {
			players = append(players, t)
		}
	}

	return models.SideLeaders{
		Goals:   pickLeader(players, func(a, b *playerTally) bool { return a.goals > b.goals }, func(t *playerTally) bool { return t.goals > 0 }),
		Assists: pickLeader(players, func(a, b *playerTally) bool { return a.assists > b.assists }, func(t *playerTally) bool { return t.assists > 0 }),
		Cards:   pickLeader(players, cardLess, func(t *playerTally) bool { return t.redCards > 0 || t.yellowCards > 0 }),
	}
}

// cardLess ranks a above b for the cards category: red count, then yellow
// count, then combined goal involvement as the final tie-break.
func cardLess(a, b *playerTally) bool {
	if a.redCards != b.redCards {
		return a.redCards > b.redCards
	}
	if a.yellowCards != b.yellowCards {
		return a.yellowCards > b.yellowCards
	}
	return a.goals+a.assists > b.goals+b.assists
}

func pickLeader(players []*playerTally, better func(a, b *playerTally) bool, positive func(*playerTally) bool) *models.TeamLeader {
	var top *playerTally
	for _, t := range players {
		if top == nil || better(t, top) {
			top = t
		}
	}
	if top == nil || !positive(top) {
		return nil
	}
	return &models.TeamLeader{
		Name:        top.name,
		Side:        top.side,
		Goals:       top.goals,
		Assists:     top.assists,
		YellowCards: top.yellowCards,
		RedCards:    top.redCards,
	}
}

// ComputeBestPlayer is the fallback man-of-the-match heuristic when the
// backend supplies none: every scorer and assister is scored goals*3 +
// assists*1. Timeline description text mentioning "assist" contributes an
// extra, explicitly lower-confidence assist signal extracted by regex. Ties
// resolve to the first-seen player.
func ComputeBestPlayer(match map[string]any, timeline []models.TimelineItem) *models.BestPlayer {
	tallies := newTallySet()

	for _, scorer := range scorerRows(match) {
		for _, side := range []string{"home", "away"} {
			if name, ok := jsonx.PickString(scorer, side+"_scorer"); ok {
				tallies.get(name, "").goals++
			}
			if name, ok := jsonx.PickString(scorer, side+"_assist"); ok {
				tallies.get(name, "").assists++
			}
		}
		if name, ok := jsonx.PickString(scorer, "name", "player"); ok {
			if _, hasHome := jsonx.PickString(scorer, "home_scorer"); !hasHome {
				if _, hasAway := jsonx.PickString(scorer, "away_scorer"); !hasAway {
					tallies.get(name, "").goals++
				}
			}
		}
	}

	// Low-confidence signal: a timeline line mentioning "assist" credits the
	// first capitalized token that names a player we already know about.
	// Unknown tokens are ignored rather than inventing phantom players.
	for _, item := range timeline {
		if !strings.Contains(strings.ToLower(item.Description), "assist") {
			continue
		}
		for _, token := range capitalizedNameRegex.FindAllString(item.Description, -1) {
			key := "|" + strings.ToLower(token)
			if tally, known := tallies.byKey[key]; known {
				tally.assists++
				break
			}
		}
	}

	var best *playerTally
	bestScore := 0
	for _, t := range tallies.seq {
		score := t.goals*3 + t.assists
		if score > bestScore {
			best, bestScore = t, score
		}
	}
	if best == nil {
		return nil
	}
	return &models.BestPlayer{
		Name:    best.name,
		Score:   bestScore,
		Goals:   best.goals,
		Assists: best.assists,
	}
}

// Roster field alias tables for player metadata.
var (
	rosterNameKeys     = []string{"player_name", "name", "player"}
	rosterImageKeys    = []string{"player_image", "image", "photo", "img"}
	rosterPositionKeys = []string{"player_type", "position", "pos", "player_position"}
	rosterNumberKeys   = []string{"player_number", "number", "shirt_number", "jersey"}

	lineupAliasKeys = []string{"lineup", "lineups", "formation"}
	lineupGroupKeys = []string{"starting_lineups", "starting", "starters", "substitutes", "bench"}
)

// Rosters is the pre-fetched player-list context for one match.
type Rosters struct {
	Home     []map[string]any
	Away     []map[string]any
	Combined []map[string]any
}

// ResolvePlayerMeta finds image/position/number for a named player. The
// matching side's roster is searched first, then the combined list, matching
// on case-insensitive substring in either direction; lineup starter and
// substitute shapes inside the match object are the last resort. All fields
// are empty strings on miss so callers never null-check.
func ResolvePlayerMeta(name, side string, rosters Rosters, match map[string]any) models.PlayerMeta {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return models.PlayerMeta{}
	}

	var lists [][]map[string]any
	switch normalizeSide(side) {
	case "home":
		lists = [][]map[string]any{rosters.Home, rosters.Combined, rosters.Away}
	case "away":
		lists = [][]map[string]any{rosters.Away, rosters.Combined, rosters.Home}
	default:
		lists = [][]map[string]any{rosters.Combined, rosters.Home, rosters.Away}
	}

	for _, list := range lists {
		for _, row := range list {
			if meta, ok := playerMetaFromRow(row, want); ok {
				return meta
			}
		}
	}

	for _, row := range lineupRows(match) {
		if meta, ok := playerMetaFromRow(row, want); ok {
			return meta
		}
	}
	return models.PlayerMeta{}
}

func playerMetaFromRow(row map[string]any, want string) (models.PlayerMeta, bool) {
	rowName, ok := jsonx.PickString(row, rosterNameKeys...)
	if !ok {
		return models.PlayerMeta{}, false
	}
	lower := strings.ToLower(rowName)
	if !strings.Contains(lower, want) && !strings.Contains(want, lower) {
		return models.PlayerMeta{}, false
	}
	return models.PlayerMeta{
		Image:    jsonx.PickStringDefault(row, "", rosterImageKeys...),
		Position: jsonx.PickStringDefault(row, "", rosterPositionKeys...),
		Number:   jsonx.PickStringDefault(row, "", rosterNumberKeys...),
	}, true
}

// lineupRows digs player rows out of lineup shapes: lineups nest per side,
// then per starter/substitute group.
func lineupRows(match map[string]any) []map[string]any {
	if match == nil {
		return nil
	}
	var rows []map[string]any
	for _, key := range lineupAliasKeys {
		lineup, ok := match[key].(map[string]any)
		if !ok {
			continue
		}
		for _, sideKey := range []string{"home", "away", "home_team", "away_team"} {
			sideObj, ok := lineup[sideKey].(map[string]any)
			if !ok {
				continue
			}
			for _, groupKey := range lineupGroupKeys {
				rows = append(rows, jsonx.ObjectRows(jsonx.AsArray(sideObj[groupKey]))...)
			}
		}
	}
	return rows
}
