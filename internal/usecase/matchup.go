package usecase

import (
	"sort"

	"github.com/riskibarqy/fpl-insight/internal/domain/team"
)

// AnalyzeMatchups compares every pair of teams gameweek by gameweek. For each gameweek
// both teams play, the easier of the two opponents' tiers picks the histogram bucket.
// Results are stored on both teams, keyed by the other team's name.
func AnalyzeMatchups(directory map[int]*team.Team, maxGameweek int) {
	ids := make([]int, 0, len(directory))
	for id := range directory {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for i, leftID := range ids {
		left := directory[leftID]
		for _, rightID := range ids[i+1:] {
			right := directory[rightID]
			overlapping, score := compareSchedules(left, right, maxGameweek)
			left.Matchups[right.Name] = team.Matchup{OpponentID: right.ID, Score: score, Overlapping: overlapping}
			right.Matchups[left.Name] = team.Matchup{OpponentID: left.ID, Score: score, Overlapping: overlapping}
		}
	}
}

func compareSchedules(left, right *team.Team, maxGameweek int) ([team.MatchupBuckets]int, int) {
	var overlapping [team.MatchupBuckets]int
	for gw := 0; gw <= maxGameweek; gw++ {
		leftFixture, ok := left.Fixtures[gw]
		if !ok {
			continue
		}
		rightFixture, ok := right.Fixtures[gw]
		if !ok {
			continue
		}
		overlapping[matchupBucket(min(leftFixture.Difficulty, rightFixture.Difficulty))]++
	}

	score := 0
	for tier, count := range overlapping {
		score += tier * count
	}
	return overlapping, score
}

func matchupBucket(difficulty int) int {
	if difficulty < 0 {
		return 0
	}
	if difficulty >= team.MatchupBuckets {
		return team.MatchupBuckets - 1
	}
	return difficulty
}
