package usecase

import (
	"context"

	"github.com/riskibarqy/fpl-insight/internal/domain/fixture"
	"github.com/riskibarqy/fpl-insight/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insight/internal/domain/manager"
	"github.com/riskibarqy/fpl-insight/internal/domain/team"
)

// UpstreamSource is the FPL data feed. Implementations wrap transport failures with
// ErrDependencyUnavailable.
type UpstreamSource interface {
	FetchBootstrap(ctx context.Context) (Bootstrap, error)
	FetchFixtures(ctx context.Context) ([]fixture.Fixture, error)
	FetchLive(ctx context.Context, gameweek int) (gameweek.Live, error)
	FetchManagerSelection(ctx context.Context, entryID, gameweek int) (manager.Selection, error)
}

// Bootstrap is the subset of bootstrap-static the engine consumes. Elements keep the
// upstream shape so every field lands in the player's stat bag.
type Bootstrap struct {
	Teams    []ExternalTeam
	Elements []map[string]any
	Raw      map[string]any
}

type ExternalTeam struct {
	ID       int
	Name     string
	Short    string
	Strength team.Strength
}
