package usecase

import (
	"github.com/riskibarqy/fpl-insight/internal/domain/player"
	"github.com/riskibarqy/fpl-insight/internal/domain/statbag"
)

// ApplyDerivedRates appends per-game and per-minute rates to the player's stat bag.
// Every zero denominator yields 0.
func ApplyDerivedRates(p *player.Player) {
	stats := p.Stats
	games := float64(p.GamesPlayed)

	stats.Set(statbag.KeyGamesPlayed, games)
	stats.Set(statbag.KeyGamesWithBonus, float64(p.GamesWithBonus))
	stats.Set(statbag.KeyGamesStarted, float64(p.GamesStarted))

	stats.Set(statbag.KeyMinutesPerGame, statbag.Ratio(stats.Float(statbag.KeyMinutes), games))
	stats.Set(statbag.KeyBonusPerGame, statbag.Ratio(stats.Float(statbag.KeyBonus), games))
	stats.Set(statbag.KeyBonusChance, statbag.Ratio(float64(p.GamesWithBonus), games))
	stats.Set(statbag.KeyStartsPerGame, statbag.Ratio(stats.Float(statbag.KeyStarts), games))
	stats.Set(statbag.KeyFormPerCost, statbag.Ratio(10*stats.Float(statbag.KeyPointsPerGame), stats.Float(statbag.KeyNowCost)))
	stats.Set(statbag.KeyMinutesPerXGI, statbag.Ratio(stats.Float(statbag.KeyMinutes), stats.Float(statbag.KeyExpectedGoalInvolvements)))
}
