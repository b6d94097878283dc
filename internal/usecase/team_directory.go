package usecase

import (
	"github.com/riskibarqy/fpl-insight/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insight/internal/domain/team"
)

// BuildTeamDirectory creates one record per upstream team, tallies goals over fixtures
// that have kicked off, and records a descriptor for every fixture with a gameweek on
// both sides. Fixture sides naming an unknown team are skipped.
func BuildTeamDirectory(teams []ExternalTeam, fixtures []fixture.Fixture, policy team.DifficultyPolicy) map[int]*team.Team {
	directory := make(map[int]*team.Team, len(teams))
	for _, item := range teams {
		difficulty := policy.Resolve(item.Short, item.Strength.Overall)
		directory[item.ID] = team.New(item.ID, item.Name, item.Short, difficulty, item.Strength)
	}

	for _, fx := range fixtures {
		gw, ok := fx.Gameweek()
		if !ok {
			continue
		}
		home, homeKnown := directory[fx.TeamH]
		away, awayKnown := directory[fx.TeamA]

		if fx.Done() {
			homeGoals, awayGoals := fx.Scores()
			if homeKnown {
				tallyResult(home, homeGoals, awayGoals)
			}
			if awayKnown {
				tallyResult(away, awayGoals, homeGoals)
			}
		}

		if homeKnown {
			home.Fixtures[gw] = describeFixture(fx.TeamA, away, team.VenueHome, fx.Done())
		}
		if awayKnown {
			away.Fixtures[gw] = describeFixture(fx.TeamH, home, team.VenueAway, fx.Done())
		}
	}

	return directory
}

func tallyResult(t *team.Team, scored, conceded int) {
	t.GoalsScored += scored
	t.GoalsConceded += conceded
	t.Games++
	if conceded == 0 {
		t.CleanSheets++
	}
}

// describeFixture leaves code and difficulty zero when the opponent is not in the directory.
func describeFixture(opponentID int, opponent *team.Team, venue team.Venue, done bool) team.FixtureDescriptor {
	out := team.FixtureDescriptor{
		OpponentID: opponentID,
		Venue:      venue,
		Done:       done,
	}
	if opponent != nil {
		out.OpponentCode = opponent.Short
		out.Difficulty = opponent.Difficulty
	}
	return out
}
