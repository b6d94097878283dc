package usecase

import (
	"fmt"

	"github.com/riskibarqy/fpl-insight/internal/domain/player"
	"github.com/riskibarqy/fpl-insight/internal/domain/statbag"
	"github.com/riskibarqy/fpl-insight/internal/domain/team"
)

// Roster indexes players by id and by both plain and team-qualified name.
type Roster struct {
	ByID   map[int]*player.Player
	ByName map[string]*player.Player
}

// BuildRoster attaches every upstream element to its team. A player whose team or
// element type is unknown aborts the build.
func BuildRoster(elements []map[string]any, directory map[int]*team.Team) (Roster, error) {
	roster := Roster{
		ByID:   make(map[int]*player.Player, len(elements)),
		ByName: make(map[string]*player.Player, 2*len(elements)),
	}

	for _, element := range elements {
		stats := statbag.Coerce(element)
		id := stats.Int(statbag.KeyID)
		teamID := stats.Int(statbag.KeyTeam)

		owner, ok := directory[teamID]
		if !ok {
			return Roster{}, fmt.Errorf("%w: player=%d team=%d", team.ErrUnknownTeam, id, teamID)
		}
		position, err := player.PositionFromElementType(stats.Int(statbag.KeyElementType))
		if err != nil {
			return Roster{}, fmt.Errorf("player=%d: %w", id, err)
		}

		involvements := stats.Float(statbag.KeyGoalsScored) + stats.Float(statbag.KeyAssists)
		stats.Set(statbag.KeyGIPerGoalScored, statbag.Ratio(involvements, float64(owner.GoalsScored)))

		item := player.New(id, stats.String(statbag.KeyWebName), owner, position, stats)
		roster.ByID[id] = item
		roster.ByName[item.Name] = item
		roster.ByName[item.NameWithTeam] = item
	}

	return roster, nil
}
