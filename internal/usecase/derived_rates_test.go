package usecase

import (
	"testing"

	"github.com/riskibarqy/fpl-insight/internal/domain/player"
	"github.com/riskibarqy/fpl-insight/internal/domain/statbag"
	"github.com/riskibarqy/fpl-insight/internal/domain/team"
)

func TestApplyDerivedRates_ZeroDenominators(t *testing.T) {
	t.Parallel()

	owner := team.New(1, "Club", "CLB", 3, team.Strength{})
	p := player.New(1, "Bench", owner, player.PositionDefender, statbag.Bag{
		statbag.KeyMinutes: 0.0,
		statbag.KeyNowCost: 0.0,
	})

	ApplyDerivedRates(p)

	for _, key := range []string{
		statbag.KeyMinutesPerGame, statbag.KeyBonusPerGame, statbag.KeyBonusChance,
		statbag.KeyStartsPerGame, statbag.KeyFormPerCost, statbag.KeyMinutesPerXGI,
	} {
		if got := p.Stats.Float(key); got != 0 {
			t.Fatalf("expected %s to be 0, got=%v", key, got)
		}
	}
}

func TestApplyDerivedRates_Values(t *testing.T) {
	t.Parallel()

	owner := team.New(1, "Club", "CLB", 3, team.Strength{})
	p := player.New(1, "Starter", owner, player.PositionMidfielder, statbag.Coerce(map[string]any{
		statbag.KeyMinutes:                  float64(360),
		statbag.KeyBonus:                    float64(6),
		statbag.KeyStarts:                   float64(4),
		statbag.KeyPointsPerGame:            "5.0",
		statbag.KeyNowCost:                  float64(100),
		statbag.KeyExpectedGoalInvolvements: "2.0",
	}))
	p.GamesPlayed = 4
	p.GamesWithBonus = 1
	p.GamesStarted = 4

	ApplyDerivedRates(p)

	want := map[string]float64{
		statbag.KeyGamesPlayed:    4,
		statbag.KeyMinutesPerGame: 90,
		statbag.KeyBonusPerGame:   1.5,
		statbag.KeyBonusChance:    0.25,
		statbag.KeyStartsPerGame:  1,
		statbag.KeyFormPerCost:    0.5,
		statbag.KeyMinutesPerXGI:  180,
	}
	for key, value := range want {
		if got := p.Stats.Float(key); got != value {
			t.Fatalf("unexpected %s got=%v want=%v", key, got, value)
		}
	}
}
