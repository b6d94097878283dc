package team

import (
	"sort"

	crerr "github.com/cockroachdb/errors"
)

// MatchupBuckets is the histogram width of a matchup: one bucket per difficulty tier
// 0..5, where 0 only collects fixtures against teams without a rating.
const MatchupBuckets = 6

var ErrUnknownTeam = crerr.New("unknown team")

type Venue string

const (
	VenueHome Venue = "H"
	VenueAway Venue = "A"
)

// FixtureDescriptor is one fixture seen from a single team's side.
type FixtureDescriptor struct {
	OpponentID   int    `json:"opponent_id"`
	OpponentCode string `json:"opponent_code"`
	Difficulty   int    `json:"difficulty"`
	Venue        Venue  `json:"venue"`
	Done         bool   `json:"done"`
}

// Matchup summarises how two teams' schedules line up across the season.
type Matchup struct {
	OpponentID  int                 `json:"opponent_id"`
	Score       int                 `json:"score"`
	Overlapping [MatchupBuckets]int `json:"overlapping"`
}

// Strength mirrors the upstream strength indices.
type Strength struct {
	Overall     int `json:"overall"`
	OverallHome int `json:"overall_home"`
	OverallAway int `json:"overall_away"`
	AttackHome  int `json:"attack_home"`
	AttackAway  int `json:"attack_away"`
	DefenceHome int `json:"defence_home"`
	DefenceAway int `json:"defence_away"`
}

// Team is a club of the competition plus everything derived for it during one refresh.
type Team struct {
	ID            int
	Name          string
	Short         string
	Difficulty    int
	Strength      Strength
	GoalsScored   int
	GoalsConceded int
	Games         int
	CleanSheets   int
	Fixtures      map[int]FixtureDescriptor
	FixtureScore  float64
	Matchups      map[string]Matchup
}

func New(id int, name, short string, difficulty int, strength Strength) *Team {
	return &Team{
		ID:         id,
		Name:       name,
		Short:      short,
		Difficulty: difficulty,
		Strength:   strength,
		Fixtures:   make(map[int]FixtureDescriptor),
		Matchups:   make(map[string]Matchup),
	}
}

// GameweekFixture pairs a descriptor with the gameweek it is keyed by.
type GameweekFixture struct {
	Gameweek int
	FixtureDescriptor
}

// UpcomingFixtures returns not-done fixtures in ascending gameweek order, at most
// limit of them when limit > 0.
func (t *Team) UpcomingFixtures(limit int) []GameweekFixture {
	gameweeks := make([]int, 0, len(t.Fixtures))
	for gw, fx := range t.Fixtures {
		if fx.Done {
			continue
		}
		gameweeks = append(gameweeks, gw)
	}
	sort.Ints(gameweeks)
	if limit > 0 && len(gameweeks) > limit {
		gameweeks = gameweeks[:limit]
	}

	out := make([]GameweekFixture, 0, len(gameweeks))
	for _, gw := range gameweeks {
		out = append(out, GameweekFixture{Gameweek: gw, FixtureDescriptor: t.Fixtures[gw]})
	}
	return out
}

// GoalDifference is scored minus conceded over counted fixtures.
func (t *Team) GoalDifference() int {
	return t.GoalsScored - t.GoalsConceded
}
