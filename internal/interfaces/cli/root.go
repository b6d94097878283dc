package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/fpl-insight/internal/app"
	"github.com/riskibarqy/fpl-insight/internal/config"
	"github.com/riskibarqy/fpl-insight/internal/domain/team"
	"github.com/riskibarqy/fpl-insight/internal/platform/logging"
)

// GlobalFlags are the persistent flags shared by every subcommand. Empty values keep
// the environment configuration.
type GlobalFlags struct {
	RawCacheDir string
	Replay      bool
	LogLevel    string
	Difficulty  string
}

// ServicesLoader builds the application graph for one command invocation.
type ServicesLoader func(flags GlobalFlags) (*app.Services, error)

// LoadServices reads the environment configuration, applies flag overrides and wires
// the live FPL client. Logs go to stderr so command output stays machine readable.
func LoadServices(flags GlobalFlags) (*app.Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flags.RawCacheDir != "" {
		cfg.FPL.RawCacheDir = flags.RawCacheDir
	}
	if flags.Replay {
		if cfg.FPL.RawCacheDir == "" {
			return nil, fmt.Errorf("--replay needs --raw-cache-dir or FPL_RAW_CACHE_DIR")
		}
		cfg.FPL.RawReplay = true
	}
	if flags.LogLevel != "" {
		cfg.LogLevel = logging.ParseLevel(flags.LogLevel)
	}
	if flags.Difficulty != "" {
		source := team.DifficultySource(flags.Difficulty)
		if source != team.DifficultyFromTable && source != team.DifficultyFromStrength {
			return nil, fmt.Errorf("invalid --difficulty %q: must be table or strength", flags.Difficulty)
		}
		cfg.FPL.DifficultySource = source
	}

	logger := logging.NewConsole(cfg.LogLevel)
	logging.SetDefault(logger)
	return app.NewServices(cfg, logger), nil
}

// NewRootCommand assembles the fplinsight command tree around loader.
func NewRootCommand(loader ServicesLoader) *cobra.Command {
	var flags GlobalFlags

	rootCmd := &cobra.Command{
		Use:   "fplinsight",
		Short: "FPL analytics from the command line",
		Long: `fplinsight builds an analytics snapshot from the public Fantasy Premier League
API and prints ranking tables, matchup grids and player reports.

Upstream responses are recorded to --raw-cache-dir when it is set. Adding
--replay serves them back from that directory, which makes repeated runs
work offline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.RawCacheDir, "raw-cache-dir", "", "record raw upstream responses in this directory")
	rootCmd.PersistentFlags().BoolVar(&flags.Replay, "replay", false, "serve upstream responses from --raw-cache-dir instead of the network")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.Difficulty, "difficulty", "", "fixture difficulty source (table or strength)")

	load := func() (*app.Services, error) {
		services, err := loader(flags)
		if err != nil {
			return nil, err
		}
		if services == nil {
			return nil, fmt.Errorf("services loader returned nothing")
		}
		return services, nil
	}

	rootCmd.AddCommand(
		newSummaryCommand(load),
		newPlayersCommand(load),
		newPlayerCommand(load),
		newCompareCommand(load),
		newTeamsCommand(load),
		newMatchupsCommand(load),
		newPicksCommand(load),
		newDumpCommand(load),
	)
	return rootCmd
}

// Execute runs the command tree against the live upstream and exits non-zero on error.
func Execute() {
	if err := NewRootCommand(LoadServices).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
