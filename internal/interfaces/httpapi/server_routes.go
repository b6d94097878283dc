package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/snapshot", handler.GetSnapshot)
	mux.HandleFunc("POST /v1/snapshot/refresh", handler.RefreshSnapshot)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamRef}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamRef}/matchups", handler.GetTeamMatchups)
}

// Player routes accept either the numeric id or a name ("Saka" or "Saka (ARS)").
func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/search", handler.SearchPlayers)
	mux.HandleFunc("GET /v1/players/{playerRef}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/players/{playerRef}/history", handler.GetPlayerHistory)
	mux.HandleFunc("GET /v1/players/{playerRef}/kpi", handler.GetPlayerKPI)
	mux.HandleFunc("GET /v1/players/{playerRef}/compare", handler.ComparePlayers)
	mux.HandleFunc("GET /v1/players/{playerRef}/fixtures", handler.GetPlayerFixtures)
}

func registerManagerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/managers/{entryID}/picks", handler.GetManagerPicks)
}
