package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/fpl-insight/internal/platform/logging"
	"github.com/riskibarqy/fpl-insight/internal/usecase"
)

type Handler struct {
	snapshotService *usecase.SnapshotService
	playerQueries   *usecase.PlayerQueryService
	teamQueries     *usecase.TeamQueryService
	managerService  *usecase.ManagerService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	snapshotService *usecase.SnapshotService,
	playerQueries *usecase.PlayerQueryService,
	teamQueries *usecase.TeamQueryService,
	managerService *usecase.ManagerService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		snapshotService: snapshotService,
		playerQueries:   playerQueries,
		teamQueries:     teamQueries,
		managerService:  managerService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	_, ready := h.snapshotService.Peek()
	writeSuccess(ctx, w, http.StatusOK, map[string]any{"status": "ok", "snapshot_ready": ready})
}

type snapshotMetaDTO struct {
	CurrentGameweek int       `json:"current_gameweek"`
	SeasonComplete  bool      `json:"season_complete"`
	Teams           int       `json:"teams"`
	Players         int       `json:"players"`
	BuiltAt         time.Time `json:"built_at"`
}

func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSnapshot")
	defer span.End()

	snap, err := h.snapshotService.Current(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get snapshot failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotMetaDTO{
		CurrentGameweek: snap.CurrentGameweek(),
		SeasonComplete:  snap.CurrentGameweek() == 0,
		Teams:           snap.TeamCount(),
		Players:         snap.PlayerCount(),
		BuiltAt:         snap.BuiltAt(),
	})
}

// RefreshSnapshot rebuilds the snapshot synchronously. The previous snapshot keeps
// serving when the rebuild fails.
func (h *Handler) RefreshSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshSnapshot")
	defer span.End()

	snap, err := h.snapshotService.Refresh(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotMetaDTO{
		CurrentGameweek: snap.CurrentGameweek(),
		SeasonComplete:  snap.CurrentGameweek() == 0,
		Teams:           snap.TeamCount(),
		Players:         snap.PlayerCount(),
		BuiltAt:         snap.BuiltAt(),
	})
}

func (h *Handler) GetManagerPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetManagerPicks")
	defer span.End()

	entryID, err := pathInt(ctx, r.PathValue("entryID"), "entry id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	gw, err := optionalInt(r.URL.Query(), "gameweek", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	picks, err := h.managerService.Picks(ctx, entryID, gw)
	if err != nil {
		h.logger.WarnContext(ctx, "get manager picks failed", "entry_id", entryID, "gameweek", gw, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, picks)
}
