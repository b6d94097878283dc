package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fpl-insight/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insight/internal/domain/manager"
)

type ManagerPicks struct {
	manager.Selection
	// Players holds the team-qualified names of picks found in the snapshot.
	Players []string `json:"players"`
}

type ManagerService struct {
	source    UpstreamSource
	snapshots snapshotReader
}

func NewManagerService(source UpstreamSource, snapshots snapshotReader) *ManagerService {
	return &ManagerService{source: source, snapshots: snapshots}
}

// Picks fetches a manager's selection. A zero gameweek means the last gameweek with
// data according to the current snapshot.
func (s *ManagerService) Picks(ctx context.Context, entryID, gw int) (ManagerPicks, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.Picks",
		attribute.Int("fpl.entry_id", entryID),
		attribute.Int("fpl.gameweek", gw),
	)
	defer span.End()

	if entryID <= 0 {
		return ManagerPicks{}, fmt.Errorf("%w: entry id must be > 0", ErrInvalidInput)
	}
	if gw < 0 || gw > gameweek.MaxGameweeks {
		return ManagerPicks{}, fmt.Errorf("%w: gameweek must be within 0..%d", ErrInvalidInput, gameweek.MaxGameweeks)
	}

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return ManagerPicks{}, err
	}
	if gw == 0 {
		gw = lastPlayedGameweek(snap.CurrentGameweek())
	}

	selection, err := s.source.FetchManagerSelection(ctx, entryID, gw)
	if err != nil {
		recordSpanError(span, err)
		return ManagerPicks{}, fmt.Errorf("fetch manager selection entry=%d gameweek=%d: %w", entryID, gw, err)
	}

	names := make([]string, 0, len(selection.Picks))
	for _, id := range selection.Picks {
		if item, ok := snap.Player(id); ok {
			names = append(names, item.NameWithTeam)
		}
	}
	return ManagerPicks{Selection: selection, Players: names}, nil
}

func lastPlayedGameweek(current int) int {
	switch {
	case current == 0:
		return gameweek.MaxGameweeks
	case current <= 1:
		return 1
	default:
		return current - 1
	}
}
