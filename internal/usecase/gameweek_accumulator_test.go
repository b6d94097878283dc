package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fpl-insight/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insight/internal/domain/player"
	"github.com/riskibarqy/fpl-insight/internal/domain/statbag"
)

func scenarioRoster(t *testing.T) Roster {
	t.Helper()
	roster, err := BuildRoster(scenarioElements(), scenarioDirectory())
	require.NoError(t, err)
	return roster
}

func TestGameweekAccumulator_StopsAtFirstEmptyGameweek(t *testing.T) {
	t.Parallel()

	for _, workers := range []int{1, 2, 4, 16} {
		source := &upstreamMock{}
		expectSeason(source, scenarioLive())
		roster := scenarioRoster(t)

		current, err := NewGameweekAccumulator(source, workers, 0).Accumulate(context.Background(), roster)
		require.NoError(t, err)
		require.Equal(t, 3, current, "workers=%d", workers)

		saka := roster.ByID[sakaID]
		require.Equal(t, 2, saka.GamesPlayed)
		require.Equal(t, 1, saka.GamesWithBonus)
		require.Equal(t, 2, saka.GamesStarted)
		require.Equal(t, []int{1, 2}, saka.Gameweeks())
		require.Equal(t, 0.9, saka.History[1].Float(statbag.KeyExpectedGoalInvolvements))

		morris := roster.ByID[morrisID]
		require.Equal(t, 2, morris.GamesPlayed)
		require.Equal(t, 1, morris.GamesStarted)
		require.Equal(t, 0, morris.GamesWithBonus)
	}
}

func TestGameweekAccumulator_FullSeasonLeavesCurrentAtZero(t *testing.T) {
	t.Parallel()

	weeks := make(map[int]gameweek.Live, gameweek.MaxGameweeks)
	for gw := 1; gw <= gameweek.MaxGameweeks; gw++ {
		weeks[gw] = gameweek.Live{Gameweek: gw, Elements: []gameweek.LiveElement{
			{ID: flekkenID, Stats: map[string]any{"minutes": float64(90), "starts": float64(1)}},
		}}
	}
	source := &upstreamMock{}
	expectSeason(source, weeks)
	roster := scenarioRoster(t)

	current, err := NewGameweekAccumulator(source, 5, 0).Accumulate(context.Background(), roster)
	require.NoError(t, err)
	require.Equal(t, 0, current)
	require.Equal(t, gameweek.MaxGameweeks, roster.ByID[flekkenID].GamesPlayed)
	require.Len(t, roster.ByID[flekkenID].History, gameweek.MaxGameweeks)
}

func TestGameweekAccumulator_UnknownPlayerAborts(t *testing.T) {
	t.Parallel()

	source := &upstreamMock{}
	expectSeason(source, map[int]gameweek.Live{
		1: {Gameweek: 1, Elements: []gameweek.LiveElement{{ID: 404, Stats: map[string]any{}}}},
	})

	_, err := NewGameweekAccumulator(source, 2, 0).Accumulate(context.Background(), scenarioRoster(t))
	if !errors.Is(err, player.ErrUnknownPlayer) {
		t.Fatalf("expected ErrUnknownPlayer, got=%v", err)
	}
}

func TestGameweekAccumulator_FetchFailureFailsWalk(t *testing.T) {
	t.Parallel()

	live := scenarioLive()
	source := &upstreamMock{}
	source.On("FetchLive", mock.Anything, 1).Return(live[1], nil).Maybe()
	source.On("FetchLive", mock.Anything, 2).Return(gameweek.Live{}, ErrDependencyUnavailable).Maybe()
	for gw := 3; gw <= gameweek.MaxGameweeks; gw++ {
		source.On("FetchLive", mock.Anything, gw).Return(gameweek.Live{Gameweek: gw}, nil).Maybe()
	}

	_, err := NewGameweekAccumulator(source, 3, 0).Accumulate(context.Background(), scenarioRoster(t))
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got=%v", err)
	}
}

func TestGameweekAccumulator_FailureAfterBoundaryIsIgnored(t *testing.T) {
	t.Parallel()

	live := scenarioLive()
	source := &upstreamMock{}
	source.On("FetchLive", mock.Anything, 1).Return(live[1], nil)
	source.On("FetchLive", mock.Anything, 2).Return(gameweek.Live{Gameweek: 2}, nil)
	source.On("FetchLive", mock.Anything, 3).Return(gameweek.Live{}, ErrDependencyUnavailable)

	current, err := NewGameweekAccumulator(source, 3, 0).Accumulate(context.Background(), scenarioRoster(t))
	require.NoError(t, err)
	require.Equal(t, 2, current)
}
