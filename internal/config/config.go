package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fpl-insight/internal/domain/team"
	"github.com/riskibarqy/fpl-insight/internal/platform/logging"
)

// Config stores runtime configuration for the service and the CLI.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	CORSAllowedOrigins         []string
	SwaggerEnabled             bool
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	CacheTTL                   time.Duration
	RefreshInterval            time.Duration
	LogLevel                   logging.Level
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	FPL                        FPLConfig
}

// FPLConfig groups the upstream client and derivation settings.
type FPLConfig struct {
	BaseURL               string
	UserAgent             string
	Timeout               time.Duration
	MaxRetries            int
	RetryBackoff          time.Duration
	CircuitEnabled        bool
	CircuitFailureCount   int
	CircuitOpenTimeout    time.Duration
	CircuitHalfOpenMaxReq int
	LivePrefetchWorkers   int
	MaxGameweeks          int
	DifficultySource      team.DifficultySource
	DifficultyOverrides   team.DifficultyTable
	// RawCacheDir records upstream payloads when set.
	RawCacheDir string
	// RawReplay serves RawCacheDir instead of the network. It is never read from the
	// environment; only the offline CLI turns it on.
	RawReplay bool
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := getEnvAsDuration("CACHE_TTL", "5m")
	if err != nil {
		return Config{}, err
	}
	refreshInterval, err := getEnvAsDuration("REFRESH_INTERVAL", "15m")
	if err != nil {
		return Config{}, err
	}

	fpl, err := loadFPL()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "fpl-insight-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:             swaggerEnabled,
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		CacheTTL:                   cacheTTL,
		RefreshInterval:            refreshInterval,
		LogLevel:                   logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		FPL:                        fpl,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func loadFPL() (FPLConfig, error) {
	timeout, err := getEnvAsDuration("FPL_TIMEOUT", "20s")
	if err != nil {
		return FPLConfig{}, err
	}
	retryBackoff, err := getEnvAsDuration("FPL_RETRY_BACKOFF", "1s")
	if err != nil {
		return FPLConfig{}, err
	}
	maxRetries, err := getEnvAsInt("FPL_MAX_RETRIES", 2)
	if err != nil {
		return FPLConfig{}, fmt.Errorf("parse FPL_MAX_RETRIES: %w", err)
	}
	if maxRetries < 0 {
		return FPLConfig{}, fmt.Errorf("FPL_MAX_RETRIES must be >= 0")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("FPL_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return FPLConfig{}, fmt.Errorf("parse FPL_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("FPL_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return FPLConfig{}, fmt.Errorf("parse FPL_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailureCount < 1 {
		return FPLConfig{}, fmt.Errorf("FPL_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	circuitOpenTimeout, err := getEnvAsDuration("FPL_CIRCUIT_OPEN_TIMEOUT", "30s")
	if err != nil {
		return FPLConfig{}, err
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("FPL_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return FPLConfig{}, fmt.Errorf("parse FPL_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMaxReq < 1 {
		return FPLConfig{}, fmt.Errorf("FPL_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	workers, err := getEnvAsInt("FPL_LIVE_PREFETCH_WORKERS", 4)
	if err != nil {
		return FPLConfig{}, fmt.Errorf("parse FPL_LIVE_PREFETCH_WORKERS: %w", err)
	}
	if workers < 1 {
		return FPLConfig{}, fmt.Errorf("FPL_LIVE_PREFETCH_WORKERS must be >= 1")
	}
	maxGameweeks, err := getEnvAsInt("FPL_MAX_GAMEWEEKS", 38)
	if err != nil {
		return FPLConfig{}, fmt.Errorf("parse FPL_MAX_GAMEWEEKS: %w", err)
	}
	if maxGameweeks < 1 {
		return FPLConfig{}, fmt.Errorf("FPL_MAX_GAMEWEEKS must be >= 1")
	}

	source, err := parseDifficultySource(getEnv("FPL_DIFFICULTY_SOURCE", string(team.DifficultyFromTable)))
	if err != nil {
		return FPLConfig{}, err
	}
	overrides, err := team.ParseDifficultyOverrides(getEnv("FPL_DIFFICULTY_OVERRIDES", ""))
	if err != nil {
		return FPLConfig{}, fmt.Errorf("parse FPL_DIFFICULTY_OVERRIDES: %w", err)
	}

	return FPLConfig{
		BaseURL:               strings.TrimSpace(getEnv("FPL_BASE_URL", "https://fantasy.premierleague.com/api")),
		UserAgent:             strings.TrimSpace(getEnv("FPL_USER_AGENT", "fpl-insight/1.0")),
		Timeout:               timeout,
		MaxRetries:            maxRetries,
		RetryBackoff:          retryBackoff,
		CircuitEnabled:        circuitEnabled,
		CircuitFailureCount:   circuitFailureCount,
		CircuitOpenTimeout:    circuitOpenTimeout,
		CircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,
		LivePrefetchWorkers:   workers,
		MaxGameweeks:          maxGameweeks,
		DifficultySource:      source,
		DifficultyOverrides:   overrides,
		RawCacheDir:           strings.TrimSpace(getEnv("FPL_RAW_CACHE_DIR", "")),
	}, nil
}

// DifficultyPolicy builds the team difficulty policy from the loaded settings.
func (c FPLConfig) DifficultyPolicy() team.DifficultyPolicy {
	policy := team.DefaultDifficultyPolicy()
	policy.Source = c.DifficultySource
	policy.Overrides = c.DifficultyOverrides
	return policy
}

func parseDifficultySource(v string) (team.DifficultySource, error) {
	switch source := team.DifficultySource(strings.ToLower(strings.TrimSpace(v))); source {
	case team.DifficultyFromTable, team.DifficultyFromStrength:
		return source, nil
	default:
		return "", fmt.Errorf("invalid FPL_DIFFICULTY_SOURCE %q: valid values are %s, %s", v, team.DifficultyFromTable, team.DifficultyFromStrength)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

// getEnvAsDuration parses key and rejects non-positive durations.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
