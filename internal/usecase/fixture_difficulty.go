package usecase

import (
	"math"

	"github.com/riskibarqy/fpl-insight/internal/domain/statbag"
	"github.com/riskibarqy/fpl-insight/internal/domain/team"
)

const (
	fixtureDifficultyWindow = 5
	fixtureDifficultyNorm   = 53.0
	maxFixtureScore         = 5.0
)

var fixtureDifficultyWeights = [fixtureDifficultyWindow]float64{5, 3, 2, 1, 1}

// ScoreFixtureDifficulty weights the next five not-done fixtures by proximity and maps
// the result onto 0..5. A team with nothing left to play scores 0.
func ScoreFixtureDifficulty(t *team.Team) float64 {
	upcoming := t.UpcomingFixtures(fixtureDifficultyWindow)
	if len(upcoming) == 0 {
		return 0
	}

	var sum float64
	for i, fx := range upcoming {
		sum += fixtureDifficultyWeights[i] * float64(fx.Difficulty)
	}
	score := statbag.Round(sum/fixtureDifficultyNorm*5, 2)
	return math.Min(math.Max(score, 0), maxFixtureScore)
}

func applyFixtureDifficulty(directory map[int]*team.Team) {
	for _, item := range directory {
		item.FixtureScore = ScoreFixtureDifficulty(item)
	}
}
