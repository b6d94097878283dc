package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/fpl-insight/internal/config"
	"github.com/riskibarqy/fpl-insight/internal/platform/logging"
)

// Setup starts tracing and profiling. The returned shutdown stops both and is safe to
// call when neither was enabled.
func Setup(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	shutdownTracing, err := InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}

	stopProfiling, err := InitPyroscope(cfg, logger)
	if err != nil {
		_ = shutdownTracing(context.Background())
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}

	return func(ctx context.Context) error {
		return errors.Join(stopProfiling(), shutdownTracing(ctx))
	}, nil
}
