package player

import (
	"fmt"
	"sort"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fpl-insight/internal/domain/statbag"
	"github.com/riskibarqy/fpl-insight/internal/domain/team"
)

var (
	ErrUnknownPosition = crerr.New("unknown position")
	ErrUnknownPlayer   = crerr.New("unknown player")
)

// Position represents football position categories used in fantasy rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// PositionFromElementType maps the upstream element_type code 1..4.
func PositionFromElementType(code int) (Position, error) {
	switch code {
	case 1:
		return PositionGoalkeeper, nil
	case 2:
		return PositionDefender, nil
	case 3:
		return PositionMidfielder, nil
	case 4:
		return PositionForward, nil
	default:
		return "", fmt.Errorf("%w: element_type=%d", ErrUnknownPosition, code)
	}
}

func ParsePosition(value string) (Position, bool) {
	pos := Position(value)
	_, ok := AllPositions[pos]
	return pos, ok
}

// Player is one element of the game plus its accumulated season history.
// Team is shared with every other player of the same club.
type Player struct {
	ID             int
	Name           string
	NameWithTeam   string
	Team           *team.Team
	Position       Position
	Stats          statbag.Bag
	History        map[int]statbag.Bag
	GamesPlayed    int
	GamesWithBonus int
	GamesStarted   int
}

func New(id int, name string, owner *team.Team, position Position, stats statbag.Bag) *Player {
	return &Player{
		ID:           id,
		Name:         name,
		NameWithTeam: QualifiedName(name, owner.Short),
		Team:         owner,
		Position:     position,
		Stats:        stats,
		History:      make(map[int]statbag.Bag),
	}
}

// QualifiedName renders "Name (COD)".
func QualifiedName(name, teamCode string) string {
	return fmt.Sprintf("%s (%s)", name, teamCode)
}

// Cost is now_cost in game currency units (tenths of a million).
func (p *Player) Cost() float64 {
	return p.Stats.Float(statbag.KeyNowCost) / 10
}

// Gameweeks returns the history keys in ascending order.
func (p *Player) Gameweeks() []int {
	out := make([]int, 0, len(p.History))
	for gw := range p.History {
		out = append(out, gw)
	}
	sort.Ints(out)
	return out
}
