package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/fpl-insight/internal/domain/snapshot"
	"github.com/riskibarqy/fpl-insight/internal/domain/team"
)

type TeamRow struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Short          string        `json:"short"`
	Difficulty     int           `json:"difficulty"`
	Strength       team.Strength `json:"strength"`
	Games          int           `json:"games"`
	GoalsScored    int           `json:"goals_scored"`
	GoalsConceded  int           `json:"goals_conceded"`
	GoalDifference int           `json:"goal_difference"`
	CleanSheets    int           `json:"clean_sheets"`
	FixtureScore   float64       `json:"fixture_score"`
}

func NewTeamRow(t *team.Team) TeamRow {
	return TeamRow{
		ID:             t.ID,
		Name:           t.Name,
		Short:          t.Short,
		Difficulty:     t.Difficulty,
		Strength:       t.Strength,
		Games:          t.Games,
		GoalsScored:    t.GoalsScored,
		GoalsConceded:  t.GoalsConceded,
		GoalDifference: t.GoalDifference(),
		CleanSheets:    t.CleanSheets,
		FixtureScore:   t.FixtureScore,
	}
}

type TeamDetail struct {
	TeamRow
	Fixtures map[int]team.FixtureDescriptor `json:"fixtures"`
}

type MatchupRow struct {
	Opponent      string                   `json:"opponent"`
	OpponentID    int                      `json:"opponent_id"`
	OpponentCode  string                   `json:"opponent_code"`
	Score         int                      `json:"score"`
	Overlapping   [team.MatchupBuckets]int `json:"overlapping"`
	Difficulty    int                      `json:"difficulty"`
	GoalsScored   int                      `json:"goals_scored"`
	GoalsConceded int                      `json:"goals_conceded"`
	CleanSheets   int                      `json:"clean_sheets"`
}

type TeamQueryService struct {
	snapshots snapshotReader
}

func NewTeamQueryService(snapshots snapshotReader) *TeamQueryService {
	return &TeamQueryService{snapshots: snapshots}
}

func (s *TeamQueryService) List(ctx context.Context) ([]TeamRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamQueryService.List")
	defer span.End()

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}

	teams := snap.Teams()
	out := make([]TeamRow, 0, len(teams))
	for _, item := range teams {
		out = append(out, NewTeamRow(item))
	}
	return out, nil
}

func (s *TeamQueryService) Get(ctx context.Context, ref string) (TeamDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamQueryService.Get")
	defer span.End()

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return TeamDetail{}, err
	}
	item, err := resolveTeam(snap, ref)
	if err != nil {
		return TeamDetail{}, err
	}
	return TeamDetail{TeamRow: NewTeamRow(item), Fixtures: item.Fixtures}, nil
}

// Matchups lists a team's matchups, highest score first.
func (s *TeamQueryService) Matchups(ctx context.Context, ref string) ([]MatchupRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamQueryService.Matchups")
	defer span.End()

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	item, err := resolveTeam(snap, ref)
	if err != nil {
		return nil, err
	}

	out := make([]MatchupRow, 0, len(item.Matchups))
	for name, matchup := range item.Matchups {
		row := MatchupRow{
			Opponent:    name,
			OpponentID:  matchup.OpponentID,
			Score:       matchup.Score,
			Overlapping: matchup.Overlapping,
		}
		if opponent, ok := snap.Team(matchup.OpponentID); ok {
			row.OpponentCode = opponent.Short
			row.Difficulty = opponent.Difficulty
			row.GoalsScored = opponent.GoalsScored
			row.GoalsConceded = opponent.GoalsConceded
			row.CleanSheets = opponent.CleanSheets
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Opponent < out[j].Opponent
	})
	return out, nil
}

func resolveTeam(snap *snapshot.Snapshot, ref string) (*team.Team, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: team reference is required", ErrInvalidInput)
	}
	if id, err := strconv.Atoi(ref); err == nil {
		if item, ok := snap.Team(id); ok {
			return item, nil
		}
		return nil, fmt.Errorf("%w: team id=%d", ErrNotFound, id)
	}
	if item, ok := snap.TeamByName(ref); ok {
		return item, nil
	}
	return nil, fmt.Errorf("%w: team %q", ErrNotFound, ref)
}
