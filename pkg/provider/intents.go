package provider

import "context"

// Intents understood by the gateway.
const (
	IntentEventGet      = "event.get"
	IntentTeamGet       = "team.get"
	IntentPlayersList   = "players.list"
	IntentLeagueTable   = "league.table"
	IntentOddsList      = "odds.list"
	IntentOddsLive      = "odds.live"
	IntentProbabilities = "probabilities.list"
	IntentCommentsList  = "comments.list"
	IntentSeasonsList   = "seasons.list"
	IntentHeadToHead    = "h2h"
	IntentHighlights    = "video.highlights"
	IntentMatchInsights = "analysis.match_insights"
	IntentEventsList    = "events.list"
	IntentLeaguesList   = "leagues.list"
)

func (c *Client) GetEvent(ctx context.Context, matchID string) (any, error) {
	return c.Dispatch(ctx, IntentEventGet, map[string]any{"matchId": matchID})
}

func (c *Client) GetTeam(ctx context.Context, teamID string) (any, error) {
	return c.Dispatch(ctx, IntentTeamGet, map[string]any{"teamId": teamID})
}

func (c *Client) ListPlayers(ctx context.Context, teamID string) (any, error) {
	return c.Dispatch(ctx, IntentPlayersList, map[string]any{"teamId": teamID})
}

func (c *Client) LeagueTable(ctx context.Context, leagueID, season string) (any, error) {
	args := map[string]any{"leagueId": leagueID}
	if season != "" {
		args["season"] = season
	}
	return c.Dispatch(ctx, IntentLeagueTable, args)
}

func (c *Client) ListOdds(ctx context.Context, matchID string) (any, error) {
	return c.Dispatch(ctx, IntentOddsList, map[string]any{"matchId": matchID})
}

func (c *Client) LiveOdds(ctx context.Context, matchID string) (any, error) {
	return c.Dispatch(ctx, IntentOddsLive, map[string]any{"matchId": matchID})
}

func (c *Client) ListProbabilities(ctx context.Context, matchID string) (any, error) {
	return c.Dispatch(ctx, IntentProbabilities, map[string]any{"matchId": matchID})
}

func (c *Client) ListComments(ctx context.Context, matchID string) (any, error) {
	return c.Dispatch(ctx, IntentCommentsList, map[string]any{"matchId": matchID})
}

func (c *Client) ListSeasons(ctx context.Context, leagueID string) (any, error) {
	return c.Dispatch(ctx, IntentSeasonsList, map[string]any{"leagueId": leagueID})
}

func (c *Client) HeadToHead(ctx context.Context, homeID, awayID string) (any, error) {
	return c.Dispatch(ctx, IntentHeadToHead, map[string]any{"firstTeamId": homeID, "secondTeamId": awayID})
}

func (c *Client) VideoHighlights(ctx context.Context, matchID string) (any, error) {
	return c.Dispatch(ctx, IntentHighlights, map[string]any{"matchId": matchID})
}

func (c *Client) MatchInsights(ctx context.Context, matchID string) (any, error) {
	return c.Dispatch(ctx, IntentMatchInsights, map[string]any{"matchId": matchID})
}

// ListEvents fetches fixtures in a date window; from/to are "YYYY-MM-DD".
func (c *Client) ListEvents(ctx context.Context, leagueID, from, to string) (any, error) {
	args := map[string]any{}
	if leagueID != "" {
		args["leagueId"] = leagueID
	}
	if from != "" {
		args["from"] = from
	}
	if to != "" {
		args["to"] = to
	}
	return c.Dispatch(ctx, IntentEventsList, args)
}

func (c *Client) ListLeagues(ctx context.Context) (any, error) {
	return c.Dispatch(ctx, IntentLeaguesList, nil)
}
