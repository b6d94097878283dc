package statbag

// Upstream element fields read by the derivation engine.
const (
	KeyID                       = "id"
	KeyWebName                  = "web_name"
	KeyTeam                     = "team"
	KeyElementType              = "element_type"
	KeyGoalsScored              = "goals_scored"
	KeyAssists                  = "assists"
	KeyExpectedGoals            = "expected_goals"
	KeyExpectedAssists          = "expected_assists"
	KeyExpectedGoalInvolvements = "expected_goal_involvements"
	KeyNowCost                  = "now_cost"
	KeyMinutes                  = "minutes"
	KeyBonus                    = "bonus"
	KeyStarts                   = "starts"
	KeyPointsPerGame            = "points_per_game"
	KeyTotalPoints              = "total_points"
	KeySelectedByPercent        = "selected_by_percent"
	KeyICTIndex                 = "ict_index"
	KeyNews                     = "news"
	KeyForm                     = "form"
)

// Fields appended by the derivation engine.
const (
	KeyGIPerGoalScored = "gi_per_goal_scored"
	KeyGamesPlayed     = "games_played"
	KeyGamesWithBonus  = "games_with_bonus"
	KeyGamesStarted    = "games_started"
	KeyMinutesPerGame  = "minutes_per_game"
	KeyBonusPerGame    = "bonus_per_game"
	KeyBonusChance     = "bonus_chance"
	KeyStartsPerGame   = "starts_per_game"
	KeyFormPerCost     = "form_per_cost"
	KeyMinutesPerXGI   = "minutes_per_xgi"
)
