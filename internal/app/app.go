package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/fpl-insight/external/fpl"
	"github.com/riskibarqy/fpl-insight/internal/config"
	"github.com/riskibarqy/fpl-insight/internal/interfaces/httpapi"
	"github.com/riskibarqy/fpl-insight/internal/platform/logging"
	"github.com/riskibarqy/fpl-insight/internal/platform/resilience"
	"github.com/riskibarqy/fpl-insight/internal/usecase"
)

// Services is the wired application graph shared by the API server and the CLI.
type Services struct {
	Source    usecase.UpstreamSource
	Snapshots *usecase.SnapshotService
	Players   *usecase.PlayerQueryService
	Teams     *usecase.TeamQueryService
	Managers  *usecase.ManagerService
}

func NewServices(cfg config.Config, logger *logging.Logger) *Services {
	if logger == nil {
		logger = logging.Default()
	}

	client := fpl.NewClient(fpl.ClientConfig{
		BaseURL:      cfg.FPL.BaseURL,
		UserAgent:    cfg.FPL.UserAgent,
		Timeout:      cfg.FPL.Timeout,
		MaxRetries:   cfg.FPL.MaxRetries,
		RetryBackoff: cfg.FPL.RetryBackoff,
		Logger:       logger.Named("fpl"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FPL.CircuitEnabled,
			FailureThreshold: cfg.FPL.CircuitFailureCount,
			OpenTimeout:      cfg.FPL.CircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPL.CircuitHalfOpenMaxReq,
		},
		RawStore:  fpl.NewRawStore(cfg.FPL.RawCacheDir),
		ReplayRaw: cfg.FPL.RawReplay,
	})

	return AssembleServices(client, cfg, logger)
}

// AssembleServices wires the query services around an already built upstream source.
func AssembleServices(source usecase.UpstreamSource, cfg config.Config, logger *logging.Logger) *Services {
	if logger == nil {
		logger = logging.Default()
	}

	snapshots := usecase.NewSnapshotService(source, usecase.SnapshotConfig{
		MaxGameweeks: cfg.FPL.MaxGameweeks,
		LiveWorkers:  cfg.FPL.LivePrefetchWorkers,
		Difficulty:   cfg.FPL.DifficultyPolicy(),
		CacheTTL:     cfg.CacheTTL,
	}, logger.Named("snapshot"))

	return &Services{
		Source:    source,
		Snapshots: snapshots,
		Players:   usecase.NewPlayerQueryService(snapshots),
		Teams:     usecase.NewTeamQueryService(snapshots),
		Managers:  usecase.NewManagerService(source, snapshots),
	}
}

func NewHTTPServer(cfg config.Config, services *Services, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if services == nil {
		return nil, fmt.Errorf("services are required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	handler := httpapi.NewHandler(
		services.Snapshots,
		services.Players,
		services.Teams,
		services.Managers,
		logger.Named("http"),
	)
	router := httpapi.NewRouter(handler, logger.Named("http"), httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
