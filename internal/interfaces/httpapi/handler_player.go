package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fpl-insight/internal/domain/statbag"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	query, err := parseListPlayersQuery(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.playerQueries.List(ctx, query.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchPlayers")
	defer span.End()

	limit, err := optionalInt(r.URL.Query(), "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.playerQueries.Search(ctx, r.URL.Query().Get("q"), limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matches)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	ref := strings.TrimSpace(r.PathValue("playerRef"))
	detail, err := h.playerQueries.Get(ctx, ref)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player", ref, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, detail)
}

type playerHistoryItemDTO struct {
	Gameweek int         `json:"gameweek"`
	Stats    statbag.Bag `json:"stats"`
}

func (h *Handler) GetPlayerHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerHistory")
	defer span.End()

	ref := strings.TrimSpace(r.PathValue("playerRef"))
	item, err := h.playerQueries.Resolve(ctx, ref)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gameweeks := item.Gameweeks()
	items := make([]playerHistoryItemDTO, 0, len(gameweeks))
	for _, gw := range gameweeks {
		items = append(items, playerHistoryItemDTO{Gameweek: gw, Stats: item.History[gw]})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayerKPI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerKPI")
	defer span.End()

	ref := strings.TrimSpace(r.PathValue("playerRef"))
	points, err := h.playerQueries.KPI(ctx, ref)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, points)
}

func (h *Handler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ComparePlayers")
	defer span.End()

	ref := strings.TrimSpace(r.PathValue("playerRef"))
	against := strings.TrimSpace(r.URL.Query().Get("against"))
	comparison, err := h.playerQueries.Compare(ctx, ref, against)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, comparison)
}

func (h *Handler) GetPlayerFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerFixtures")
	defer span.End()

	limit, err := optionalInt(r.URL.Query(), "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	ref := strings.TrimSpace(r.PathValue("playerRef"))
	fixtures, err := h.playerQueries.UpcomingFixtures(ctx, ref, limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtures)
}
