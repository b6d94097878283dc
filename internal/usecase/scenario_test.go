package usecase

import (
	"github.com/riskibarqy/fpl-insight/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insight/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insight/internal/domain/team"
)

// Three clubs, two played gameweeks, live data through gameweek 2.
//
//	gw1 ARS 2-0 LUT (finished)
//	gw2 LUT 1-1 BRE (finished)
//	gw3 ARS v BRE
//	gw4 LUT v ARS
//	gw5 ARS v unknown club 99
//	unscheduled BRE v ARS

const (
	arsenalID   = 1
	lutonID     = 2
	brentfordID = 3

	sakaID    = 10
	morrisID  = 20
	flekkenID = 30
)

func intPtr(v int) *int { return &v }

func scenarioTeams() []ExternalTeam {
	return []ExternalTeam{
		{ID: arsenalID, Name: "Arsenal", Short: "ARS", Strength: team.Strength{Overall: 4}},
		{ID: lutonID, Name: "Luton", Short: "LUT", Strength: team.Strength{Overall: 2}},
		{ID: brentfordID, Name: "Brentford", Short: "BRE", Strength: team.Strength{Overall: 3}},
	}
}

func scenarioFixtures() []fixture.Fixture {
	return []fixture.Fixture{
		{ID: 1, Event: intPtr(1), TeamH: arsenalID, TeamA: lutonID, TeamHScore: intPtr(2), TeamAScore: intPtr(0), Started: true, Finished: true},
		{ID: 2, Event: intPtr(2), TeamH: lutonID, TeamA: brentfordID, TeamHScore: intPtr(1), TeamAScore: intPtr(1), Started: true, Finished: true},
		{ID: 3, Event: intPtr(3), TeamH: arsenalID, TeamA: brentfordID},
		{ID: 4, Event: intPtr(4), TeamH: lutonID, TeamA: arsenalID},
		{ID: 5, Event: intPtr(5), TeamH: arsenalID, TeamA: 99},
		{ID: 6, TeamH: brentfordID, TeamA: arsenalID},
	}
}

func scenarioElements() []map[string]any {
	return []map[string]any{
		{
			"id": float64(sakaID), "web_name": "Saka", "team": float64(arsenalID), "element_type": float64(3),
			"goals_scored": float64(1), "assists": float64(1), "expected_goals": "0.85", "expected_assists": "0.65",
			"expected_goal_involvements": "1.50", "now_cost": float64(90), "minutes": float64(180),
			"bonus": float64(3), "starts": float64(2), "points_per_game": "6.5", "total_points": float64(13),
			"selected_by_percent": "40.0", "ict_index": "25.3", "news": "",
		},
		{
			"id": float64(morrisID), "web_name": "Morris", "team": float64(lutonID), "element_type": float64(4),
			"goals_scored": float64(1), "assists": float64(0), "expected_goal_involvements": "0.0",
			"now_cost": float64(50), "minutes": float64(90), "bonus": float64(0), "starts": float64(1),
			"points_per_game": "2.0", "total_points": float64(4), "selected_by_percent": "2.5",
		},
		{
			"id": float64(flekkenID), "web_name": "Flekken", "team": float64(brentfordID), "element_type": float64(1),
			"goals_scored": float64(0), "assists": float64(0), "expected_goal_involvements": "0.00",
			"now_cost": float64(45), "minutes": float64(0), "bonus": float64(0), "starts": float64(0),
			"points_per_game": "0.0", "total_points": float64(0), "selected_by_percent": "n/a",
		},
	}
}

func scenarioBootstrap() Bootstrap {
	return Bootstrap{
		Teams:    scenarioTeams(),
		Elements: scenarioElements(),
		Raw:      map[string]any{"total_players": float64(3)},
	}
}

func scenarioLive() map[int]gameweek.Live {
	return map[int]gameweek.Live{
		1: {Gameweek: 1, Elements: []gameweek.LiveElement{
			{ID: sakaID, Stats: map[string]any{"minutes": float64(90), "bonus": float64(3), "starts": float64(1), "goals_scored": float64(1), "assists": float64(0), "expected_goal_involvements": "0.90", "total_points": float64(10)}},
			{ID: morrisID, Stats: map[string]any{"minutes": float64(90), "bonus": float64(0), "starts": float64(1), "total_points": float64(2)}},
			{ID: flekkenID, Stats: map[string]any{"minutes": float64(0), "bonus": float64(0), "starts": float64(0)}},
		}},
		2: {Gameweek: 2, Elements: []gameweek.LiveElement{
			{ID: sakaID, Stats: map[string]any{"minutes": float64(90), "bonus": float64(0), "starts": float64(1), "goals_scored": float64(0), "assists": float64(1), "expected_goal_involvements": "0.60", "total_points": float64(3)}},
			{ID: morrisID, Stats: map[string]any{"minutes": float64(0), "bonus": float64(0), "starts": float64(0)}},
			{ID: flekkenID, Stats: map[string]any{"minutes": float64(0), "bonus": float64(0), "starts": float64(0)}},
		}},
	}
}

func scenarioDirectory() map[int]*team.Team {
	directory := BuildTeamDirectory(scenarioTeams(), scenarioFixtures(), team.DefaultDifficultyPolicy())
	applyFixtureDifficulty(directory)
	AnalyzeMatchups(directory, gameweek.MaxGameweeks)
	return directory
}
