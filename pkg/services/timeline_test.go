package services

import (
	"testing"

	"github.com/matchday-lens/core/pkg/models"
)

func TestMapTimelineExplicit(t *testing.T) {
	match := map[string]any{
		"events": []any{
			map[string]any{"minute": "23", "description": "Goal", "player": "Saka", "side": "home"},
			map[string]any{"minute": "41", "description": "Yellow card", "player": "Rice", "side": "away"},
		},
		"goalscorers": []any{
			map[string]any{"time": "23", "home_scorer": "ignored when explicit exists"},
		},
	}

	items := MapTimeline(match)
	if len(items) != 2 {
		t.Fatalf("MapTimeline() = %d items, want 2 explicit entries", len(items))
	}
	if items[0].Player != "Saka" || items[0].Team != "home" {
		t.Errorf("items[0] = %+v", items[0])
	}
}

func TestMapTimelineFlattensObjectOfArrays(t *testing.T) {
	match := map[string]any{
		"timeline": map[string]any{
			"1st half": []any{
				map[string]any{"minute": "12", "description": "Goal", "player": "A"},
			},
			"2nd half": []any{
				map[string]any{"minute": "67", "description": "Goal", "player": "B"},
			},
		},
	}

	items := MapTimeline(match)
	if len(items) != 2 {
		t.Fatalf("MapTimeline() = %d items, want 2 flattened entries", len(items))
	}
}

func TestMapTimelineSynthesized(t *testing.T) {
	tests := []struct {
		name     string
		match    map[string]any
		expected []models.TimelineItem
	}{
		{
			name: "Side-less scorer record",
			match: map[string]any{
				"goalscorers": []any{
					map[string]any{"minute": "10", "name": "Smith"},
				},
			},
			expected: []models.TimelineItem{
				{Minute: "10", Description: "Goal by Smith", Player: "Smith"},
			},
		},
		{
			name: "Home and away scorers",
			match: map[string]any{
				"goalscorers": []any{
					map[string]any{"time": "15", "home_scorer": "Haaland"},
					map[string]any{"time": "80", "away_scorer": "Salah"},
				},
			},
			expected: []models.TimelineItem{
				{Minute: "15", Description: "Goal by Haaland", Player: "Haaland", Team: "home"},
				{Minute: "80", Description: "Goal by Salah", Player: "Salah", Team: "away"},
			},
		},
		{
			name:     "Nothing to synthesize",
			match:    map[string]any{"note": "no events"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapTimeline(tt.match)
			if len(got) != len(tt.expected) {
				t.Fatalf("MapTimeline() = %+v, want %+v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("items[%d] = %+v, want %+v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestComputeTeamLeadersGoals(t *testing.T) {
	match := map[string]any{
		"goalscorers": []any{
			map[string]any{"home_scorer": "A", "away_scorer": "B"},
			map[string]any{"home_scorer": "A"},
		},
	}

	leaders := ComputeTeamLeaders(match)
	if leaders.Home.Goals == nil || leaders.Home.Goals.Name != "A" || leaders.Home.Goals.Goals != 2 {
		t.Errorf("home goals leader = %+v, want A with 2", leaders.Home.Goals)
	}
	if leaders.Away.Goals == nil || leaders.Away.Goals.Name != "B" || leaders.Away.Goals.Goals != 1 {
		t.Errorf("away goals leader = %+v, want B with 1", leaders.Away.Goals)
	}
}

func TestComputeTeamLeadersCards(t *testing.T) {
	match := map[string]any{
		"goalscorers": []any{
			map[string]any{"home_scorer": "Striker", "home_assist": "Playmaker"},
		},
		"cards": []any{
			map[string]any{"card": "yellow card", "home_fault": "Defender"},
			map[string]any{"card": "yellow card", "home_fault": "Defender"},
			map[string]any{"card": "red card", "home_fault": "Keeper"},
			map[string]any{"card": "yellow card", "away_fault": "Winger"},
		},
	}

	leaders := ComputeTeamLeaders(match)
	if leaders.Home.Cards == nil || leaders.Home.Cards.Name != "Keeper" {
		t.Fatalf("home cards leader = %+v, want Keeper (red beats yellows)", leaders.Home.Cards)
	}
	if leaders.Away.Cards == nil || leaders.Away.Cards.Name != "Winger" {
		t.Errorf("away cards leader = %+v, want Winger", leaders.Away.Cards)
	}
}

func TestComputeTeamLeadersCardTieBreak(t *testing.T) {
	match := map[string]any{
		"goalscorers": []any{
			map[string]any{"home_scorer": "Involved"},
		},
		"cards": []any{
			map[string]any{"card": "yellow card", "home_fault": "Quiet"},
			map[string]any{"card": "yellow card", "home_fault": "Involved"},
		},
	}

	leaders := ComputeTeamLeaders(match)
	if leaders.Home.Cards == nil || leaders.Home.Cards.Name != "Involved" {
		t.Errorf("cards tie should break on goal involvement, got %+v", leaders.Home.Cards)
	}
}

func TestComputeTeamLeadersEmptySlots(t *testing.T) {
	leaders := ComputeTeamLeaders(map[string]any{
		"goalscorers": []any{
			map[string]any{"home_scorer": "Solo"},
		},
	})
	if leaders.Home.Assists != nil {
		t.Errorf("assists slot = %+v, want nil when no positive value", leaders.Home.Assists)
	}
	if leaders.Away.Goals != nil {
		t.Errorf("away goals slot = %+v, want nil", leaders.Away.Goals)
	}
	if leaders.Home.Cards != nil {
		t.Errorf("cards slot = %+v, want nil", leaders.Home.Cards)
	}
}

func TestComputeBestPlayer(t *testing.T) {
	match := map[string]any{
		"goalscorers": []any{
			map[string]any{"home_scorer": "Striker", "home_assist": "Playmaker"},
			map[string]any{"home_scorer": "Striker"},
			map[string]any{"away_scorer": "Poacher"},
		},
	}

	best := ComputeBestPlayer(match, nil)
	if best == nil || best.Name != "Striker" {
		t.Fatalf("best = %+v, want Striker", best)
	}
	if best.Score != 6 || best.Goals != 2 {
		t.Errorf("best = %+v, want score 6 from 2 goals", best)
	}
}

func TestComputeBestPlayerTimelineAssistSignal(t *testing.T) {
	match := map[string]any{
		"goalscorers": []any{
			map[string]any{"home_scorer": "One"},
			map[string]any{"away_scorer": "Two"},
		},
	}
	timeline := []models.TimelineItem{
		{Description: "Great assist by Two before the goal"},
		{Description: "Two with another assist"},
		{Description: "no names here, assist mentioned"},
		{Description: "Corner won by One"},
	}

	best := ComputeBestPlayer(match, timeline)
	if best == nil || best.Name != "Two" {
		t.Fatalf("best = %+v, want Two lifted by assist signals", best)
	}
	if best.Score != 5 {
		t.Errorf("score = %d, want 3 + 2 assist signals", best.Score)
	}
}

func TestComputeBestPlayerNoSignal(t *testing.T) {
	if best := ComputeBestPlayer(map[string]any{}, nil); best != nil {
		t.Errorf("best = %+v, want nil with no data", best)
	}
}

func TestResolvePlayerMeta(t *testing.T) {
	rosters := Rosters{
		Home: []map[string]any{
			{"player_name": "Bukayo Saka", "player_image": "http://img/saka", "player_type": "Forward", "player_number": float64(7)},
		},
		Combined: []map[string]any{
			{"name": "Mohamed Salah", "image": "http://img/salah", "position": "RW", "number": float64(11)},
		},
	}

	tests := []struct {
		name     string
		player   string
		side     string
		expected models.PlayerMeta
	}{
		{
			name:     "Side roster substring match",
			player:   "Saka",
			side:     "home",
			expected: models.PlayerMeta{Image: "http://img/saka", Position: "Forward", Number: "7"},
		},
		{
			name:     "Combined list fallback",
			player:   "Salah",
			side:     "away",
			expected: models.PlayerMeta{Image: "http://img/salah", Position: "RW", Number: "11"},
		},
		{
			name:     "Reverse substring direction",
			player:   "Bukayo Saka Junior",
			side:     "home",
			expected: models.PlayerMeta{Image: "http://img/saka", Position: "Forward", Number: "7"},
		},
		{
			name:     "Miss returns empty strings",
			player:   "Nobody",
			side:     "home",
			expected: models.PlayerMeta{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePlayerMeta(tt.player, tt.side, rosters, nil)
			if got != tt.expected {
				t.Errorf("ResolvePlayerMeta() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestResolvePlayerMetaLineupFallback(t *testing.T) {
	match := map[string]any{
		"lineup": map[string]any{
			"home": map[string]any{
				"starting_lineups": []any{
					map[string]any{"player": "Bench Warmer", "player_number": "14", "player_position": "MF"},
				},
			},
		},
	}

	got := ResolvePlayerMeta("Warmer", "home", Rosters{}, match)
	if got.Number != "14" || got.Position != "MF" {
		t.Errorf("lineup fallback = %+v, want number 14 position MF", got)
	}
}
