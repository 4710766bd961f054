package services

import (
	"sort"
	"strings"

	"github.com/matchday-lens/core/pkg/jsonx"
	"github.com/matchday-lens/core/pkg/models"
)

// StandingsPreferredPaths are the wrapper paths providers nest league tables
// under, tried before the generic walk.
var StandingsPreferredPaths = []string{
	"result.total",
	"result",
	"data.standings",
	"data.table",
	"standings",
	"table",
	"total",
}

var (
	standingTeamKeys = []string{
		"standing_team", "team_name", "team", "name", "club", "participant"}
	standingPositionKeys = []string{
		"standing_place", "position", "rank", "place", "overall_league_position"}
	standingPlayedKeys = []string{
		"standing_P", "played", "matches_played", "games_played", "overall_league_payed", "overall_gp", "matches", "games"}
	standingWinKeys = []string{
		"standing_W", "won", "wins", "overall_league_W", "overall_wins"}
	standingDrawKeys = []string{
		"standing_D", "draw", "draws", "drawn", "overall_league_D", "ties"}
	standingLossKeys = []string{
		"standing_L", "lost", "loss", "losses", "defeats", "overall_league_L"}
	standingGoalsForKeys = []string{
		"standing_F", "goals_for", "goals_scored", "scored", "overall_league_GF", "for"}
	standingGoalsAgainstKeys = []string{
		"standing_A", "goals_against", "goals_conceded", "conceded", "overall_league_GA", "against"}
	standingGDKeys = []string{
		"standing_GD", "goal_difference", "goalsDiff", "goal_diff", "gd"}
	standingPointsKeys = []string{
		"standing_PTS", "points", "pts", "overall_league_PTS", "point"}
	standingStageKeys = []string{
		"stage_name", "stage", "group", "league_round"}
	standingSeasonKeys = []string{
		"league_season", "season", "season_name"}
	standingLogoKeys = []string{
		"team_logo", "logo", "team_badge", "badge", "crest"}
	standingUpdatedKeys = []string{
		"standing_updated", "updated_at", "fk_stage_key_updated", "last_updated"}
)

// MapStandingRows extracts and normalizes a league table out of an arbitrary
// provider payload. The row array is located schema-on-read; rows are mapped
// through alias-key tables, goal difference is derived when absent, and
// positions are backfilled by index. Total-miss yields an empty slice.
func MapStandingRows(payload any) []models.CanonicalStandingRow {
	rows := jsonx.FindRows(payload, jsonx.RowQuery{
		PreferredPaths: StandingsPreferredPaths,
		Predicate:      jsonx.LooksLikeStandingRow,
	})

	out := make([]models.CanonicalStandingRow, 0, len(rows))
	for _, raw := range rows {
		row := mapStandingRow(raw)
		if row.Team == "" {
			continue
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Points > out[j].Points
	})

	for i := range out {
		if out[i].Position <= 0 {
			out[i].Position = i + 1
		}
	}
	return out
}

func mapStandingRow(obj map[string]any) models.CanonicalStandingRow {
	team := jsonx.PickStringDefault(obj, "", standingTeamKeys...)
	if team == "" {
		if nested := jsonx.AsObject(obj["team"]); nested != nil {
			team = jsonx.PickStringDefault(nested, "", "name", "team_name")
		}
	}

	row := models.CanonicalStandingRow{
		Team:         team,
		Position:     jsonx.PickInt(obj, 0, standingPositionKeys...),
		Played:       jsonx.PickInt(obj, 0, standingPlayedKeys...),
		Wins:         jsonx.PickInt(obj, 0, standingWinKeys...),
		Draws:        jsonx.PickInt(obj, 0, standingDrawKeys...),
		Losses:       jsonx.PickInt(obj, 0, standingLossKeys...),
		GoalsFor:     jsonx.PickInt(obj, 0, standingGoalsForKeys...),
		GoalsAgainst: jsonx.PickInt(obj, 0, standingGoalsAgainstKeys...),
		Points:       jsonx.PickInt(obj, 0, standingPointsKeys...),
		StageKey:     jsonx.PickStringDefault(obj, "", standingStageKeys...),
		SeasonKey:    NormalizeSeasonLabel(jsonx.PickStringDefault(obj, "", standingSeasonKeys...)),
		Logo:         SanitizeLogoValue(firstPresent(obj, standingLogoKeys)),
		UpdatedAt:    jsonx.PickStringDefault(obj, "", standingUpdatedKeys...),
	}

	if gd, ok := jsonx.PickNumber(obj, standingGDKeys...); ok {
		row.GoalDifference = int(gd)
	} else if row.GoalsFor != 0 || row.GoalsAgainst != 0 {
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
	}

	if row.Played == 0 {
		if total := row.Wins + row.Draws + row.Losses; total > 0 {
			row.Played = total
		}
	}
	return row
}

// ProbabilityPreferredPaths locate outcome-probability rows.
var ProbabilityPreferredPaths = []string{"result", "data.probabilities", "probabilities"}

// MapWinProbabilities extracts home/draw/away win probabilities from an
// untyped probabilities payload, normalizing fractions to percent. Returns
// nil when no usable row exists.
func MapWinProbabilities(payload any) *models.WinProbabilities {
	rows := jsonx.FindRows(payload, jsonx.RowQuery{
		PreferredPaths: ProbabilityPreferredPaths,
		Predicate: func(obj map[string]any) bool {
			_, okHome := jsonx.PickNumber(obj, "event_HW", "home", "home_win", "1")
			return okHome
		},
	})
	if len(rows) == 0 {
		return nil
	}

	obj := rows[0]
	home, _ := jsonx.PickNumber(obj, "event_HW", "home", "home_win", "1")
	draw, _ := jsonx.PickNumber(obj, "event_D", "draw", "X", "x")
	away, _ := jsonx.PickNumber(obj, "event_AW", "away", "away_win", "2")

	probs := &models.WinProbabilities{
		Home: asPercent(home),
		Draw: asPercent(draw),
		Away: asPercent(away),
	}
	if probs.Home == 0 && probs.Draw == 0 && probs.Away == 0 {
		return nil
	}
	return probs
}

// asPercent normalizes a probability that may arrive as a 0..1 fraction.
func asPercent(v float64) float64 {
	if v > 0 && v <= 1 {
		return v * 100
	}
	return v
}

// NormalizeStatName canonicalizes a provider stat label for map keys.
func NormalizeStatName(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	raw = strings.ReplaceAll(raw, "_", " ")
	raw = strings.ReplaceAll(raw, "-", " ")
	return strings.Join(strings.Fields(raw), " ")
}
