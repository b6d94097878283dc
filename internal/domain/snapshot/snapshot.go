package snapshot

import (
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/fpl-insight/internal/domain/player"
	"github.com/riskibarqy/fpl-insight/internal/domain/team"
)

// Snapshot is the frozen result of one derivation run. Everything reachable from it
// is shared between readers and must not be mutated after New returns.
type Snapshot struct {
	currentGameweek int
	raw             map[string]any
	teamsByID       map[int]*team.Team
	teamsByName     map[string]*team.Team
	playersByID     map[int]*player.Player
	playersByName   map[string]*player.Player
	builtAt         time.Time
}

// Parts are the indexes produced by the derivation pipeline.
type Parts struct {
	CurrentGameweek int
	Raw             map[string]any
	TeamsByID       map[int]*team.Team
	PlayersByID     map[int]*player.Player
	PlayersByName   map[string]*player.Player
	BuiltAt         time.Time
}

func New(parts Parts) *Snapshot {
	teamsByName := make(map[string]*team.Team, len(parts.TeamsByID))
	for _, item := range parts.TeamsByID {
		teamsByName[item.Name] = item
	}
	playersByName := parts.PlayersByName
	if playersByName == nil {
		playersByName = make(map[string]*player.Player)
	}
	playersByID := parts.PlayersByID
	if playersByID == nil {
		playersByID = make(map[int]*player.Player)
	}
	teamsByID := parts.TeamsByID
	if teamsByID == nil {
		teamsByID = make(map[int]*team.Team)
	}

	return &Snapshot{
		currentGameweek: parts.CurrentGameweek,
		raw:             parts.Raw,
		teamsByID:       teamsByID,
		teamsByName:     teamsByName,
		playersByID:     playersByID,
		playersByName:   playersByName,
		builtAt:         parts.BuiltAt,
	}
}

// CurrentGameweek is the first gameweek without live data, or 0 once the season is complete.
func (s *Snapshot) CurrentGameweek() int { return s.currentGameweek }

func (s *Snapshot) BuiltAt() time.Time { return s.builtAt }

// Raw is the bootstrap payload as received.
func (s *Snapshot) Raw() map[string]any { return s.raw }

func (s *Snapshot) Team(id int) (*team.Team, bool) {
	item, ok := s.teamsByID[id]
	return item, ok
}

func (s *Snapshot) TeamByName(name string) (*team.Team, bool) {
	if item, ok := s.teamsByName[name]; ok {
		return item, true
	}
	for key, item := range s.teamsByName {
		if strings.EqualFold(key, name) || strings.EqualFold(item.Short, name) {
			return item, true
		}
	}
	return nil, false
}

func (s *Snapshot) Player(id int) (*player.Player, bool) {
	item, ok := s.playersByID[id]
	return item, ok
}

// PlayerByName accepts either the plain web name or "Name (COD)". Plain names shared by
// two players resolve to whichever was indexed last; the qualified form is unambiguous.
func (s *Snapshot) PlayerByName(name string) (*player.Player, bool) {
	item, ok := s.playersByName[name]
	return item, ok
}

// Teams returns all teams ordered by id.
func (s *Snapshot) Teams() []*team.Team {
	out := make([]*team.Team, 0, len(s.teamsByID))
	for _, item := range s.teamsByID {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Players returns all players ordered by id.
func (s *Snapshot) Players() []*player.Player {
	out := make([]*player.Player, 0, len(s.playersByID))
	for _, item := range s.playersByID {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Snapshot) TeamCount() int   { return len(s.teamsByID) }
func (s *Snapshot) PlayerCount() int { return len(s.playersByID) }
