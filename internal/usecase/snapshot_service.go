package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fpl-insight/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insight/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insight/internal/domain/snapshot"
	"github.com/riskibarqy/fpl-insight/internal/domain/team"
	"github.com/riskibarqy/fpl-insight/internal/platform/cache"
	"github.com/riskibarqy/fpl-insight/internal/platform/logging"
)

const snapshotCacheKey = "snapshot:current"

type SnapshotConfig struct {
	MaxGameweeks int
	LiveWorkers  int
	Difficulty   team.DifficultyPolicy
	// CacheTTL bounds how long Current serves a published snapshot before rebuilding.
	// Zero keeps it until the next Refresh.
	CacheTTL time.Duration
}

// SnapshotService runs the derivation pipeline and publishes its result.
type SnapshotService struct {
	source      UpstreamSource
	cfg         SnapshotConfig
	logger      *logging.Logger
	accumulator *GameweekAccumulator
	memo        *cache.Store[*snapshot.Snapshot]
	published   atomic.Pointer[snapshot.Snapshot]
	now         func() time.Time
}

func NewSnapshotService(source UpstreamSource, cfg SnapshotConfig, logger *logging.Logger) *SnapshotService {
	if cfg.MaxGameweeks <= 0 {
		cfg.MaxGameweeks = gameweek.MaxGameweeks
	}
	if cfg.Difficulty.Source == "" {
		cfg.Difficulty = team.DefaultDifficultyPolicy()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &SnapshotService{
		source:      source,
		cfg:         cfg,
		logger:      logger,
		accumulator: NewGameweekAccumulator(source, cfg.LiveWorkers, cfg.MaxGameweeks),
		memo:        cache.NewStore[*snapshot.Snapshot](cfg.CacheTTL),
		now:         time.Now,
	}
}

type snapshotBase struct {
	bootstrap Bootstrap
	fixtures  []fixture.Fixture
}

// Build runs the full pipeline against the upstream source and returns a new snapshot.
// It never touches the published snapshot.
func (s *SnapshotService) Build(ctx context.Context) (*snapshot.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.Build",
		attribute.Int("fpl.max_gameweeks", s.cfg.MaxGameweeks),
		attribute.String("fpl.difficulty_source", string(s.cfg.Difficulty.Source)),
	)
	defer span.End()

	started := s.now()
	base, err := s.fetchBase(ctx)
	if err != nil {
		return nil, err
	}

	directory := BuildTeamDirectory(base.bootstrap.Teams, base.fixtures, s.cfg.Difficulty)
	applyFixtureDifficulty(directory)
	AnalyzeMatchups(directory, s.cfg.MaxGameweeks)

	roster, err := BuildRoster(base.bootstrap.Elements, directory)
	if err != nil {
		return nil, fmt.Errorf("build roster: %w", err)
	}

	current, err := s.accumulator.Accumulate(ctx, roster)
	if err != nil {
		return nil, fmt.Errorf("accumulate gameweeks: %w", err)
	}
	for _, item := range roster.ByID {
		ApplyDerivedRates(item)
	}

	snap := snapshot.New(snapshot.Parts{
		CurrentGameweek: current,
		Raw:             base.bootstrap.Raw,
		TeamsByID:       directory,
		PlayersByID:     roster.ByID,
		PlayersByName:   roster.ByName,
		BuiltAt:         s.now(),
	})

	s.logger.InfoContext(ctx, "snapshot built",
		"teams", snap.TeamCount(),
		"players", snap.PlayerCount(),
		"current_gameweek", current,
		"duration_ms", s.now().Sub(started).Milliseconds(),
	)
	return snap, nil
}

func (s *SnapshotService) fetchBase(ctx context.Context) (snapshotBase, error) {
	var base snapshotBase

	group := pool.New().WithContext(ctx).WithCancelOnError()
	group.Go(func(ctx context.Context) error {
		bootstrap, err := s.source.FetchBootstrap(ctx)
		if err != nil {
			return fmt.Errorf("fetch bootstrap: %w", err)
		}
		base.bootstrap = bootstrap
		return nil
	})
	group.Go(func(ctx context.Context) error {
		fixtures, err := s.source.FetchFixtures(ctx)
		if err != nil {
			return fmt.Errorf("fetch fixtures: %w", err)
		}
		base.fixtures = fixtures
		return nil
	})
	if err := group.Wait(); err != nil {
		return snapshotBase{}, err
	}

	return base, nil
}

// Refresh builds a new snapshot and publishes it. On failure the previously published
// snapshot stays in place.
func (s *SnapshotService) Refresh(ctx context.Context) (*snapshot.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.Refresh")
	defer span.End()

	snap, err := s.Build(ctx)
	if err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "snapshot refresh failed", "error", err)
		return nil, err
	}

	s.published.Store(snap)
	s.memo.Set(ctx, snapshotCacheKey, snap)
	return snap, nil
}

// Current returns the published snapshot, building one on first use or after the cache
// TTL has elapsed. A failed rebuild falls back to the last published snapshot.
func (s *SnapshotService) Current(ctx context.Context) (*snapshot.Snapshot, error) {
	snap, err := s.memo.GetOrLoad(ctx, snapshotCacheKey, s.Refresh)
	if err == nil {
		return snap, nil
	}
	if previous := s.published.Load(); previous != nil {
		s.logger.WarnContext(ctx, "serving stale snapshot", "built_at", previous.BuiltAt(), "error", err)
		return previous, nil
	}
	return nil, fmt.Errorf("%w: %w", ErrSnapshotNotReady, err)
}

// Peek returns the published snapshot without triggering a build.
func (s *SnapshotService) Peek() (*snapshot.Snapshot, bool) {
	snap := s.published.Load()
	return snap, snap != nil
}

// RunRefreshLoop refreshes every interval until ctx is done.
func (s *SnapshotService) RunRefreshLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Refresh logs its own failures.
			_, _ = s.Refresh(ctx)
		}
	}
}
