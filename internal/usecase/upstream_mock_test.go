package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/fpl-insight/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insight/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insight/internal/domain/manager"
)

type upstreamMock struct {
	mock.Mock
}

func (m *upstreamMock) FetchBootstrap(ctx context.Context) (Bootstrap, error) {
	args := m.Called(ctx)
	return args.Get(0).(Bootstrap), args.Error(1)
}

func (m *upstreamMock) FetchFixtures(ctx context.Context) ([]fixture.Fixture, error) {
	args := m.Called(ctx)
	fixtures, _ := args.Get(0).([]fixture.Fixture)
	return fixtures, args.Error(1)
}

func (m *upstreamMock) FetchLive(ctx context.Context, gw int) (gameweek.Live, error) {
	args := m.Called(ctx, gw)
	return args.Get(0).(gameweek.Live), args.Error(1)
}

func (m *upstreamMock) FetchManagerSelection(ctx context.Context, entryID, gw int) (manager.Selection, error) {
	args := m.Called(ctx, entryID, gw)
	return args.Get(0).(manager.Selection), args.Error(1)
}

// expectSeason registers live responses for every gameweek. Gameweeks missing from
// weeks answer empty; all of them are optional because prefetching may stop early.
func expectSeason(m *upstreamMock, weeks map[int]gameweek.Live) {
	for gw := 1; gw <= gameweek.MaxGameweeks; gw++ {
		live, ok := weeks[gw]
		if !ok {
			live = gameweek.Live{Gameweek: gw}
		}
		m.On("FetchLive", mock.Anything, gw).Return(live, nil).Maybe()
	}
}
