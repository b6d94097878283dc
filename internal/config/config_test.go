package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/fpl-insight/internal/domain/team"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev/1"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	for _, key := range []string{
		"CACHE_TTL", "REFRESH_INTERVAL", "FPL_BASE_URL", "FPL_MAX_RETRIES",
		"FPL_LIVE_PREFETCH_WORKERS", "FPL_MAX_GAMEWEEKS", "FPL_DIFFICULTY_SOURCE",
		"FPL_DIFFICULTY_OVERRIDES", "FPL_RAW_CACHE_DIR", "FPL_CIRCUIT_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
	}
	if cfg.RefreshInterval != 15*time.Minute {
		t.Fatalf("unexpected default refresh interval: %s", cfg.RefreshInterval)
	}
	if cfg.FPL.BaseURL != "https://fantasy.premierleague.com/api" {
		t.Fatalf("unexpected default base url: %q", cfg.FPL.BaseURL)
	}
	if cfg.FPL.MaxGameweeks != 38 || cfg.FPL.LivePrefetchWorkers != 4 || cfg.FPL.MaxRetries != 2 {
		t.Fatalf("unexpected fpl defaults: %+v", cfg.FPL)
	}
	if cfg.FPL.DifficultySource != team.DifficultyFromTable {
		t.Fatalf("unexpected difficulty source: %q", cfg.FPL.DifficultySource)
	}
	if len(cfg.FPL.DifficultyOverrides) != 0 {
		t.Fatalf("expected no difficulty overrides, got %+v", cfg.FPL.DifficultyOverrides)
	}
	if !cfg.FPL.CircuitEnabled {
		t.Fatalf("expected FPL circuit enabled by default")
	}
	if cfg.FPL.RawCacheDir != "" {
		t.Fatalf("expected raw cache disabled by default, got %q", cfg.FPL.RawCacheDir)
	}
}

func TestLoad_FPLDifficultySettings(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("strength source with overrides", func(t *testing.T) {
		t.Setenv("FPL_DIFFICULTY_SOURCE", " Strength ")
		t.Setenv("FPL_DIFFICULTY_OVERRIDES", "ars:4, lut:2")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		policy := cfg.FPL.DifficultyPolicy()
		if policy.Source != team.DifficultyFromStrength {
			t.Fatalf("unexpected source got=%q want=%q", policy.Source, team.DifficultyFromStrength)
		}
		if got := policy.Resolve("ARS", 5); got != 4 {
			t.Fatalf("override should win got=%d want=4", got)
		}
		if got := policy.Resolve("CHE", 2); got != 2 {
			t.Fatalf("strength should apply got=%d want=2", got)
		}
	})

	t.Run("invalid source", func(t *testing.T) {
		t.Setenv("FPL_DIFFICULTY_SOURCE", "elo")
		t.Setenv("FPL_DIFFICULTY_OVERRIDES", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid FPL_DIFFICULTY_SOURCE")
		}
	})

	t.Run("invalid override tier", func(t *testing.T) {
		t.Setenv("FPL_DIFFICULTY_SOURCE", "")
		t.Setenv("FPL_DIFFICULTY_OVERRIDES", "ARS:9")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for out of range override")
		}
	})
}

func TestLoad_FPLNumericValidation(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{key: "FPL_MAX_RETRIES", value: "-1"},
		{key: "FPL_LIVE_PREFETCH_WORKERS", value: "0"},
		{key: "FPL_MAX_GAMEWEEKS", value: "zero"},
		{key: "FPL_CIRCUIT_FAILURE_COUNT", value: "0"},
		{key: "FPL_TIMEOUT", value: "-5s"},
		{key: "REFRESH_INTERVAL", value: "0s"},
		{key: "CACHE_TTL", value: "bad"},
	}

	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("UPTRACE_ENABLED", "false")
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_SwaggerDefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "fpl-insight-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "fpl-insight-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}
