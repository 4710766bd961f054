package services

import (
	"context"
	"sort"
	"time"

	"github.com/matchday-lens/core/pkg/fanout"
	"github.com/matchday-lens/core/pkg/jsonx"
	"github.com/matchday-lens/core/pkg/logger"
	"github.com/matchday-lens/core/pkg/models"
	"github.com/matchday-lens/core/pkg/provider"
	"github.com/matchday-lens/core/pkg/utils"
)

// Alias-key tables for league list rows.
var (
	leagueIDKeys      = []string{"league_key", "league_id", "id"}
	leagueNameKeys    = []string{"league_name", "name", "competition"}
	leagueCountryKeys = []string{"country_name", "country"}
	leagueLogoKeys    = []string{"league_logo", "logo", "badge"}
)

// MatchView is everything the match screen renders. Sections that failed to
// load carry a message in SectionErrors instead of failing the whole view.
type MatchView struct {
	Fixture       models.CanonicalFixture `json:"fixture"`
	Leaders       models.TeamLeaders      `json:"leaders"`
	BestPlayer    *models.BestPlayer      `json:"best_player,omitempty"`
	SectionErrors map[string]string       `json:"section_errors,omitempty"`
}

// LeagueView is everything the league screen renders.
type LeagueView struct {
	Hero          models.LeagueEntity           `json:"hero"`
	Standings     []models.CanonicalStandingRow `json:"standings"`
	Seasons       []string                      `json:"seasons"`
	SectionErrors map[string]string             `json:"section_errors,omitempty"`
}

// LogoSource exposes the shared logo cache to the view layer.
type LogoSource interface {
	LogoCache(ctx context.Context) (map[string]string, error)
}

// ViewService composes provider responses into render-ready views. Provider
// sections are fetched concurrently with all-settled semantics.
type ViewService struct {
	client *provider.Client
	logos  LogoSource
	logger *logger.Logger
}

func NewViewService(client *provider.Client, logos LogoSource, log *logger.Logger) *ViewService {
	return &ViewService{client: client, logos: logos, logger: log}
}

// MatchView builds the match screen: fixture details, timeline, leaders,
// best player, and win probabilities.
func (s *ViewService) MatchView(ctx context.Context, matchID string) MatchView {
	results := fanout.Settle(ctx, []fanout.Task[any]{
		func(ctx context.Context) (any, error) { return s.client.GetEvent(ctx, matchID) },
		func(ctx context.Context) (any, error) { return s.client.ListProbabilities(ctx, matchID) },
	})

	view := MatchView{SectionErrors: map[string]string{}}

	if results[0].Err != nil {
		view.SectionErrors["fixture"] = results[0].Err.Error()
	} else if match := firstObject(results[0].Value); match != nil {
		view.Fixture = MapFixture(match)
		view.Fixture.Timeline = MapTimeline(match)
		view.Leaders = ComputeTeamLeaders(match)
		view.BestPlayer = ComputeBestPlayer(match, view.Fixture.Timeline)

		rosters, err := s.fetchRosters(ctx, match)
		if err != nil {
			view.SectionErrors["rosters"] = err.Error()
		}
		annotatePlayerMeta(&view, rosters, match)
	}

	if results[1].Err != nil {
		view.SectionErrors["probabilities"] = results[1].Err.Error()
	} else if probs := MapWinProbabilities(results[1].Value); probs != nil {
		view.Fixture.WinProbabilities = probs
	}

	if len(view.SectionErrors) == 0 {
		view.SectionErrors = nil
	}
	return view
}

// LeagueView builds the league screen: resolved hero block, standings, and a
// season picker. The hero is enriched from the shared logo cache.
func (s *ViewService) LeagueView(ctx context.Context, leagueID, leagueName, country, season string) LeagueView {
	results := fanout.Settle(ctx, []fanout.Task[any]{
		func(ctx context.Context) (any, error) { return s.client.LeagueTable(ctx, leagueID, season) },
		func(ctx context.Context) (any, error) { return s.client.ListSeasons(ctx, leagueID) },
		func(ctx context.Context) (any, error) { return s.client.ListLeagues(ctx) },
	})

	view := LeagueView{SectionErrors: map[string]string{}}

	if results[0].Err != nil {
		view.SectionErrors["standings"] = results[0].Err.Error()
	} else {
		view.Standings = MapStandingRows(results[0].Value)
	}

	if results[1].Err != nil {
		view.SectionErrors["seasons"] = results[1].Err.Error()
	} else {
		view.Seasons = normalizeSeasonList(results[1].Value, season)
	}

	hero := models.LeagueEntity{ID: leagueID, Name: leagueName, Country: country}
	if results[2].Err != nil {
		view.SectionErrors["hero"] = results[2].Err.Error()
	} else if resolved := s.resolveLeague(results[2].Value, leagueID, leagueName, country); resolved != nil {
		hero = MergeHeroInfo(hero, resolved.Entity)
	}
	view.Hero = s.enrichHeroLogo(ctx, hero)

	if len(view.SectionErrors) == 0 {
		view.SectionErrors = nil
	}
	return view
}

// FixturesWindow builds the scheduled-matches list for one league and date
// window, after dedup and chronological ordering.
func (s *ViewService) FixturesWindow(ctx context.Context, leagueID string, from, to time.Time) ([]models.CanonicalFixture, error) {
	payload, err := s.client.ListEvents(ctx, leagueID,
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	rows := jsonx.ObjectRows(jsonx.AsArray(payload))
	fixtures := make([]models.CanonicalFixture, 0, len(rows))
	for _, row := range rows {
		fixtures = append(fixtures, MapFixture(row))
	}
	fixtures = SortFixtures(DedupFixtures(fixtures))
	return FilterScheduledWindow(fixtures, from, to), nil
}

// fetchRosters pulls both teams' player lists concurrently so timeline and
// leader entries can carry image/position/number. Missing team ids skip the
// fetch; one side failing still yields the other side's roster.
func (s *ViewService) fetchRosters(ctx context.Context, match map[string]any) (Rosters, error) {
	homeID := jsonx.PickStringDefault(match, "", fixtureHomeIDKeys...)
	awayID := jsonx.PickStringDefault(match, "", fixtureAwayIDKeys...)
	if homeID == "" && awayID == "" {
		return Rosters{}, nil
	}

	fetch := func(teamID string) fanout.Task[any] {
		return func(ctx context.Context) (any, error) {
			if teamID == "" {
				return nil, nil
			}
			return s.client.ListPlayers(ctx, teamID)
		}
	}
	results := fanout.Settle(ctx, []fanout.Task[any]{fetch(homeID), fetch(awayID)})

	var rosters Rosters
	var firstErr error
	if results[0].Err != nil {
		firstErr = results[0].Err
	} else {
		rosters.Home = jsonx.ObjectRows(jsonx.AsArray(results[0].Value))
	}
	if results[1].Err != nil {
		if firstErr == nil {
			firstErr = results[1].Err
		}
	} else {
		rosters.Away = jsonx.ObjectRows(jsonx.AsArray(results[1].Value))
	}
	return rosters, firstErr
}

// annotatePlayerMeta resolves roster details for every named player in the
// view. Empty resolutions leave the slot nil so the payload stays small.
func annotatePlayerMeta(view *MatchView, rosters Rosters, match map[string]any) {
	for i, item := range view.Fixture.Timeline {
		if meta := ResolvePlayerMeta(item.Player, item.Team, rosters, match); meta != (models.PlayerMeta{}) {
			m := meta
			view.Fixture.Timeline[i].Meta = &m
		}
	}
	for _, leader := range []*models.TeamLeader{
		view.Leaders.Home.Goals, view.Leaders.Home.Assists, view.Leaders.Home.Cards,
		view.Leaders.Away.Goals, view.Leaders.Away.Assists, view.Leaders.Away.Cards,
	} {
		if leader == nil {
			continue
		}
		if meta := ResolvePlayerMeta(leader.Name, leader.Side, rosters, match); meta != (models.PlayerMeta{}) {
			m := meta
			leader.Meta = &m
		}
	}
	if view.BestPlayer != nil {
		if meta := ResolvePlayerMeta(view.BestPlayer.Name, "", rosters, match); meta != (models.PlayerMeta{}) {
			m := meta
			view.BestPlayer.Meta = &m
		}
	}
}

// Standings fetches and normalizes the league table on its own, for callers
// that do not need the full league view.
func (s *ViewService) Standings(ctx context.Context, leagueID, season string) ([]models.CanonicalStandingRow, error) {
	payload, err := s.client.LeagueTable(ctx, leagueID, season)
	if err != nil {
		return nil, err
	}
	return MapStandingRows(payload), nil
}

// HeadToHead summarizes past meetings between two teams from the viewing
// team's perspective.
func (s *ViewService) HeadToHead(ctx context.Context, homeID, awayID, team string) (HeadToHeadSummary, error) {
	payload, err := s.client.HeadToHead(ctx, homeID, awayID)
	if err != nil {
		return HeadToHeadSummary{}, err
	}

	rows := jsonx.ObjectRows(jsonx.AsArray(payload))
	if len(rows) == 0 {
		if obj := jsonx.AsObject(payload); obj != nil {
			// Some providers nest h2h under a dedicated key.
			for _, key := range []string{"H2H", "h2h", "firstTeam_VS_secondTeam", "matches"} {
				if nested, ok := obj[key]; ok {
					rows = jsonx.ObjectRows(jsonx.AsArray(nested))
					break
				}
			}
		}
	}

	fixtures := make([]models.CanonicalFixture, 0, len(rows))
	for _, row := range rows {
		fixtures = append(fixtures, MapFixture(row))
	}
	return SummarizeHeadToHead(DedupFixtures(fixtures), team), nil
}

func (s *ViewService) resolveLeague(payload any, leagueID, leagueName, country string) *ResolvedEntity {
	rows := jsonx.ObjectRows(jsonx.AsArray(payload))
	candidates := make([]models.LeagueEntity, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, leagueEntityFromRow(row))
	}
	return ResolveEntity(candidates, TargetDescriptor{
		ProviderID:    leagueID,
		TargetName:    leagueName,
		TargetCountry: country,
	})
}

func (s *ViewService) enrichHeroLogo(ctx context.Context, hero models.LeagueEntity) models.LeagueEntity {
	if hero.Logo != "" || s.logos == nil || hero.Name == "" {
		return hero
	}
	cache, err := s.logos.LogoCache(ctx)
	if err != nil {
		return hero
	}
	if logo, ok := cache[utils.NormalizeSlug(hero.Name)]; ok {
		hero.Logo = logo
	}
	return hero
}

func leagueEntityFromRow(row map[string]any) models.LeagueEntity {
	return models.LeagueEntity{
		ID:      jsonx.PickStringDefault(row, "", leagueIDKeys...),
		Name:    jsonx.PickStringDefault(row, "", leagueNameKeys...),
		Country: jsonx.PickStringDefault(row, "", leagueCountryKeys...),
		Logo:    SanitizeLogoValue(firstPresent(row, leagueLogoKeys)),
	}
}

// normalizeSeasonList normalizes every provider label, drops unparsable
// entries, dedups, and sorts newest first. When the provider returns nothing
// usable a synthetic descending sequence anchored on preferred is built.
func normalizeSeasonList(payload any, preferred string) []string {
	rows := jsonx.AsArray(payload)
	seen := make(map[string]struct{})
	labels := make([]string, 0, len(rows))
	for _, row := range rows {
		value := row
		if obj, ok := row.(map[string]any); ok {
			if picked, ok := jsonx.PickString(obj, "season_name", "season", "name", "year"); ok {
				value = picked
			}
		}
		label := NormalizeSeasonLabel(value)
		if label == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}

	if len(labels) == 0 {
		synthetic := BuildSequentialLabels(DetectSeasonFormat(preferred), nil, preferred, 5)
		if p := NormalizeSeasonLabel(preferred); p != "" {
			return append([]string{p}, synthetic...)
		}
		return synthetic
	}

	sort.SliceStable(labels, func(i, j int) bool {
		return SeasonSortValue(labels[i]) > SeasonSortValue(labels[j])
	})
	return labels
}

// firstObject accepts a bare object payload or the first row of a list.
func firstObject(payload any) map[string]any {
	if rows := jsonx.ObjectRows(jsonx.AsArray(payload)); len(rows) > 0 {
		return rows[0]
	}
	return jsonx.AsObject(payload)
}
