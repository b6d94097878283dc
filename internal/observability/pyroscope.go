package observability

import (
	"net/url"

	"github.com/grafana/pyroscope-go"

	"github.com/riskibarqy/fpl-insight/internal/config"
	"github.com/riskibarqy/fpl-insight/internal/platform/logging"
)

var profileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseObjects,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
}

func profilerConfig(cfg config.Config) pyroscope.Config {
	tags := map[string]string{
		"env":               cfg.AppEnv,
		"service":           cfg.ServiceName,
		"version":           cfg.ServiceVersion,
		"difficulty_source": string(cfg.FPL.DifficultySource),
	}
	if u, err := url.Parse(cfg.FPL.BaseURL); err == nil && u.Host != "" {
		tags["upstream"] = u.Host
	}

	return pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags:              tags,
		ProfileTypes:      profileTypes,
	}
}

// InitPyroscope starts continuous profiling when enabled.
func InitPyroscope(cfg config.Config, logger *logging.Logger) (func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.PyroscopeEnabled {
		logger.Debug("pyroscope disabled")
		return func() error { return nil }, nil
	}

	profiler, err := pyroscope.Start(profilerConfig(cfg))
	if err != nil {
		return nil, err
	}
	logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return profiler.Stop, nil
}
