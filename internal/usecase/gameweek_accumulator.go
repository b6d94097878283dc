package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fpl-insight/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insight/internal/domain/player"
	"github.com/riskibarqy/fpl-insight/internal/domain/statbag"
)

const defaultLivePrefetchWorkers = 4

type liveResult struct {
	live gameweek.Live
	err  error
}

// GameweekAccumulator walks the season in gameweek order and folds each live payload
// into the roster. Fetches are prefetched in batches on a worker pool; accumulation
// itself stays sequential so the first empty gameweek still ends the walk.
type GameweekAccumulator struct {
	source       UpstreamSource
	workers      int
	maxGameweeks int
}

func NewGameweekAccumulator(source UpstreamSource, workers, maxGameweeks int) *GameweekAccumulator {
	if workers <= 0 {
		workers = defaultLivePrefetchWorkers
	}
	if maxGameweeks <= 0 {
		maxGameweeks = gameweek.MaxGameweeks
	}
	return &GameweekAccumulator{source: source, workers: workers, maxGameweeks: maxGameweeks}
}

// Accumulate returns the first gameweek without live data, or 0 when every gameweek
// has data. A failed fetch fails the whole walk.
func (a *GameweekAccumulator) Accumulate(ctx context.Context, roster Roster) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekAccumulator.Accumulate",
		attribute.Int("fpl.live_workers", a.workers),
	)
	defer span.End()

	pool, err := ants.NewPool(a.workers)
	if err != nil {
		return 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	for start := 1; start <= a.maxGameweeks; start += a.workers {
		end := min(start+a.workers-1, a.maxGameweeks)
		batch, err := a.prefetch(ctx, pool, start, end)
		if err != nil {
			return 0, err
		}

		for i, result := range batch {
			gw := start + i
			if result.err != nil {
				recordSpanError(span, result.err)
				return 0, fmt.Errorf("fetch live gameweek=%d: %w", gw, result.err)
			}
			if result.live.Empty() {
				return gw, nil
			}
			if err := accumulateGameweek(gw, result.live, roster); err != nil {
				return 0, err
			}
		}
	}

	return 0, nil
}

func (a *GameweekAccumulator) prefetch(ctx context.Context, pool *ants.Pool, start, end int) ([]liveResult, error) {
	results := make([]liveResult, end-start+1)

	var workers sync.WaitGroup
	for gw := start; gw <= end; gw++ {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			live, err := a.source.FetchLive(ctx, gw)
			results[gw-start] = liveResult{live: live, err: err}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit live fetch to worker pool: %w", err)
		}
	}
	workers.Wait()

	return results, nil
}

func accumulateGameweek(gw int, live gameweek.Live, roster Roster) error {
	for _, element := range live.Elements {
		item, ok := roster.ByID[element.ID]
		if !ok {
			return fmt.Errorf("%w: element=%d gameweek=%d", player.ErrUnknownPlayer, element.ID, gw)
		}

		stats := statbag.Coerce(element.Stats)
		item.History[gw] = stats
		item.GamesPlayed++
		if stats.Float(statbag.KeyBonus) > 0 {
			item.GamesWithBonus++
		}
		if stats.Float(statbag.KeyStarts) > 0 {
			item.GamesStarted++
		}
	}
	return nil
}
