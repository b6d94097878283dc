package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fpl-insight/internal/domain/manager"
	"github.com/riskibarqy/fpl-insight/internal/domain/player"
	"github.com/riskibarqy/fpl-insight/internal/domain/snapshot"
)

type staticSnapshots struct {
	snap *snapshot.Snapshot
	err  error
}

func (s staticSnapshots) Current(context.Context) (*snapshot.Snapshot, error) {
	return s.snap, s.err
}

func scenarioSnapshot(t *testing.T) staticSnapshots {
	t.Helper()
	snap, err := newScenarioService(newScenarioSource()).Build(context.Background())
	require.NoError(t, err)
	return staticSnapshots{snap: snap}
}

func TestPlayerQueryService_List(t *testing.T) {
	t.Parallel()

	service := NewPlayerQueryService(scenarioSnapshot(t))
	ctx := context.Background()

	ranked, err := service.List(ctx, ListPlayersInput{SortBy: "x_points", Descending: true})
	require.NoError(t, err)
	require.Equal(t, 3, ranked.Total)
	require.Equal(t, []int{sakaID, morrisID, flekkenID}, rowIDs(ranked.Rows))

	saka := ranked.Rows[0]
	require.Equal(t, 247.0, saka.XPoints)
	require.Equal(t, 27.44, saka.XPointsPerCost)
	require.Equal(t, 7.8, saka.Differential)
	require.Equal(t, 100.0, saka.TeamGIPercent)
	require.Equal(t, "ARS", saka.TeamCode)
	require.Equal(t, 323.0, ranked.TotalXPoints)

	byName, err := service.List(ctx, ListPlayersInput{})
	require.NoError(t, err)
	require.Equal(t, []int{flekkenID, morrisID, sakaID}, rowIDs(byName.Rows))

	filtered, err := service.List(ctx, ListPlayersInput{
		Filter: player.Filter{
			Positions: []player.Position{player.PositionMidfielder, player.PositionForward},
			Cost:      player.Range{Max: floatPtr(6)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, []int{morrisID}, rowIDs(filtered.Rows))

	limited, err := service.List(ctx, ListPlayersInput{SortBy: "cost", Limit: 1})
	require.NoError(t, err)
	require.Equal(t, 3, limited.Total)
	require.Equal(t, []int{flekkenID}, rowIDs(limited.Rows))

	selected, err := service.List(ctx, ListPlayersInput{Names: []string{"Saka (ARS)", "Saka"}})
	require.NoError(t, err)
	require.Equal(t, []int{sakaID}, rowIDs(selected.Rows))

	_, err = service.List(ctx, ListPlayersInput{SortBy: "shirt_number"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.List(ctx, ListPlayersInput{Names: []string{"Nobody"}})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPlayerQueryService_KPIAndFixtures(t *testing.T) {
	t.Parallel()

	service := NewPlayerQueryService(scenarioSnapshot(t))
	ctx := context.Background()

	kpi, err := service.KPI(ctx, "Saka")
	require.NoError(t, err)
	require.Equal(t, []KPIPoint{{Gameweek: 1, Opponent: "LUT", GI: 1, XGI: 0.9, Points: 10, Bonus: 3}}, kpi)

	upcoming, err := service.UpcomingFixtures(ctx, "10", 0)
	require.NoError(t, err)
	require.Len(t, upcoming, 3)
	require.Equal(t, UpcomingFixture{Gameweek: 3, OpponentID: brentfordID, OpponentCode: "BRE", Venue: "H", Difficulty: 4, Delta: -1}, upcoming[0])
	require.Equal(t, -4, upcoming[1].Delta)

	limited, err := service.UpcomingFixtures(ctx, "10", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)

	_, err = service.KPI(ctx, "999")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPlayerQueryService_CompareAndSearch(t *testing.T) {
	t.Parallel()

	service := NewPlayerQueryService(scenarioSnapshot(t))
	ctx := context.Background()

	cmp, err := service.Compare(ctx, "Saka (ARS)", "Morris")
	require.NoError(t, err)
	require.Equal(t, 4.0, cmp.Delta.Cost)
	require.Equal(t, 171.0, cmp.Delta.XPoints)
	require.Equal(t, 1.0, cmp.Delta.GI)
	require.Equal(t, 45.0, cmp.Delta.MinutesPerGame)

	matches, err := service.Search(ctx, "KEN", 0)
	require.NoError(t, err)
	require.Equal(t, []PlayerMatch{{ID: flekkenID, Name: "Flekken", NameWithTeam: "Flekken (BRE)"}}, matches)

	_, err = service.Search(ctx, "  ", 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlayerQueryService_PropagatesSnapshotError(t *testing.T) {
	t.Parallel()

	service := NewPlayerQueryService(staticSnapshots{err: ErrSnapshotNotReady})
	_, err := service.List(context.Background(), ListPlayersInput{})
	if !errors.Is(err, ErrSnapshotNotReady) {
		t.Fatalf("expected ErrSnapshotNotReady, got=%v", err)
	}
}

func TestTeamQueryService_Matchups(t *testing.T) {
	t.Parallel()

	service := NewTeamQueryService(scenarioSnapshot(t))
	ctx := context.Background()

	rows, err := service.Matchups(ctx, "Arsenal")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Brentford", rows[0].Opponent)
	require.Equal(t, 4, rows[0].Score)
	require.Equal(t, "BRE", rows[0].OpponentCode)
	require.Equal(t, "Luton", rows[1].Opponent)
	require.Equal(t, 2, rows[1].Score)

	detail, err := service.Get(ctx, "lut")
	require.NoError(t, err)
	require.Equal(t, lutonID, detail.ID)
	require.Equal(t, -2, detail.GoalDifference)
	require.Len(t, detail.Fixtures, 3)

	teams, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 3)

	_, err = service.Get(ctx, "42")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestManagerService_PicksDefaultsToLastPlayedGameweek(t *testing.T) {
	t.Parallel()

	source := &upstreamMock{}
	source.On("FetchManagerSelection", mock.Anything, 99, 2).
		Return(manager.Selection{EntryID: 99, Name: "Gunners XI", Gameweek: 2, Picks: []int{sakaID, flekkenID, 555}}, nil).
		Once()

	service := NewManagerService(source, scenarioSnapshot(t))
	picks, err := service.Picks(context.Background(), 99, 0)
	require.NoError(t, err)
	require.Equal(t, "Gunners XI", picks.Name)
	require.Equal(t, []string{"Saka (ARS)", "Flekken (BRE)"}, picks.Players)
	source.AssertExpectations(t)

	_, err = service.Picks(context.Background(), 0, 1)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = service.Picks(context.Background(), 99, 39)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestLastPlayedGameweek(t *testing.T) {
	t.Parallel()

	tests := map[int]int{0: 38, 1: 1, 2: 1, 10: 9}
	for current, want := range tests {
		if got := lastPlayedGameweek(current); got != want {
			t.Fatalf("unexpected gameweek for current=%d got=%d want=%d", current, got, want)
		}
	}
}

func rowIDs(rows []PlayerRow) []int {
	out := make([]int, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ID)
	}
	return out
}

func floatPtr(v float64) *float64 { return &v }
