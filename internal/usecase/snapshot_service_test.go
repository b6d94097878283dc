package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fpl-insight/internal/domain/snapshot"
	"github.com/riskibarqy/fpl-insight/internal/domain/statbag"
	"github.com/riskibarqy/fpl-insight/internal/platform/logging"
)

func newScenarioSource() *upstreamMock {
	source := &upstreamMock{}
	source.On("FetchBootstrap", mock.Anything).Return(scenarioBootstrap(), nil)
	source.On("FetchFixtures", mock.Anything).Return(scenarioFixtures(), nil)
	expectSeason(source, scenarioLive())
	return source
}

func newScenarioService(source UpstreamSource) *SnapshotService {
	return NewSnapshotService(source, SnapshotConfig{LiveWorkers: 2}, logging.NewNop())
}

func TestSnapshotService_Build(t *testing.T) {
	t.Parallel()

	snap, err := newScenarioService(newScenarioSource()).Build(context.Background())
	require.NoError(t, err)

	require.Equal(t, 3, snap.CurrentGameweek())
	require.Equal(t, 3, snap.TeamCount())
	require.Equal(t, 3, snap.PlayerCount())
	require.Equal(t, float64(3), snap.Raw()["total_players"])

	saka, ok := snap.PlayerByName("Saka (ARS)")
	require.True(t, ok)
	require.Equal(t, 90.0, saka.Stats.Float(statbag.KeyMinutesPerGame))
	require.Equal(t, 1.5, saka.Stats.Float(statbag.KeyBonusPerGame))
	require.Equal(t, 0.5, saka.Stats.Float(statbag.KeyBonusChance))
	require.Equal(t, 1.0, saka.Stats.Float(statbag.KeyStartsPerGame))
	require.Equal(t, 120.0, saka.Stats.Float(statbag.KeyMinutesPerXGI))
	require.Equal(t, 1.0, saka.Stats.Float(statbag.KeyGIPerGoalScored))
	require.InDelta(t, 0.7222, saka.Stats.Float(statbag.KeyFormPerCost), 1e-4)

	flekken, ok := snap.Player(flekkenID)
	require.True(t, ok)
	require.Equal(t, 0.0, flekken.Stats.Float(statbag.KeyMinutesPerGame))
	require.Equal(t, 0.0, flekken.Stats.Float(statbag.KeyMinutesPerXGI))

	ars, ok := snap.Team(arsenalID)
	require.True(t, ok)
	require.Equal(t, 2.17, ars.FixtureScore)
	require.Equal(t, 2, ars.Matchups["Luton"].Score)
}

func TestSnapshotService_BuildIsIdempotent(t *testing.T) {
	t.Parallel()

	service := newScenarioService(newScenarioSource())
	first, err := service.Build(context.Background())
	require.NoError(t, err)
	second, err := service.Build(context.Background())
	require.NoError(t, err)

	require.Equal(t, first.CurrentGameweek(), second.CurrentGameweek())
	for _, left := range first.Players() {
		right, ok := second.Player(left.ID)
		require.True(t, ok)
		require.Equal(t, left.Stats, right.Stats)
		require.Equal(t, left.History, right.History)
		require.NotSame(t, left, right)
	}
	for _, left := range first.Teams() {
		right, ok := second.Team(left.ID)
		require.True(t, ok)
		require.Equal(t, left.Matchups, right.Matchups)
		require.Equal(t, left.FixtureScore, right.FixtureScore)
	}
}

func TestSnapshotService_BuildFailsOnUpstreamError(t *testing.T) {
	t.Parallel()

	source := &upstreamMock{}
	source.On("FetchBootstrap", mock.Anything).Return(Bootstrap{}, ErrDependencyUnavailable)
	source.On("FetchFixtures", mock.Anything).Return(scenarioFixtures(), nil).Maybe()

	_, err := newScenarioService(source).Build(context.Background())
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got=%v", err)
	}
}

// flakySource serves the scenario until broken is set.
type flakySource struct {
	*upstreamMock
	broken bool
}

func (f *flakySource) FetchBootstrap(ctx context.Context) (Bootstrap, error) {
	if f.broken {
		return Bootstrap{}, ErrDependencyUnavailable
	}
	return f.upstreamMock.FetchBootstrap(ctx)
}

func TestSnapshotService_RefreshKeepsPreviousSnapshotOnFailure(t *testing.T) {
	t.Parallel()

	source := &flakySource{upstreamMock: newScenarioSource()}
	service := newScenarioService(source)

	first, err := service.Refresh(context.Background())
	require.NoError(t, err)

	source.broken = true
	_, err = service.Refresh(context.Background())
	require.ErrorIs(t, err, ErrDependencyUnavailable)

	published, ok := service.Peek()
	require.True(t, ok)
	require.Same(t, first, published)

	current, err := service.Current(context.Background())
	require.NoError(t, err)
	require.Same(t, first, current)
}

func TestSnapshotService_CurrentBeforeAnySuccessfulBuild(t *testing.T) {
	t.Parallel()

	source := &upstreamMock{}
	source.On("FetchBootstrap", mock.Anything).Return(Bootstrap{}, ErrDependencyUnavailable)
	source.On("FetchFixtures", mock.Anything).Return(scenarioFixtures(), nil).Maybe()

	_, err := newScenarioService(source).Current(context.Background())
	require.ErrorIs(t, err, ErrSnapshotNotReady)
	require.ErrorIs(t, err, ErrDependencyUnavailable)
}

func TestSnapshotService_CurrentBuildsOnce(t *testing.T) {
	t.Parallel()

	source := newScenarioSource()
	service := newScenarioService(source)

	var snaps []*snapshot.Snapshot
	for i := 0; i < 3; i++ {
		snap, err := service.Current(context.Background())
		require.NoError(t, err)
		snaps = append(snaps, snap)
	}
	require.Same(t, snaps[0], snaps[2])
	source.AssertNumberOfCalls(t, "FetchBootstrap", 1)
}
