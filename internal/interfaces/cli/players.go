package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/fpl-insight/internal/domain/player"
	"github.com/riskibarqy/fpl-insight/internal/usecase"
)

type playersOptions struct {
	positions       []string
	teams           []string
	names           []string
	minCost         float64
	maxCost         float64
	minFixtureScore float64
	minTeamGI       float64
	minMinutes      float64
	sortBy          string
	ascending       bool
	limit           int
	asJSON          bool
}

func newPlayersCommand(load servicesFunc) *cobra.Command {
	var opts playersOptions

	cmd := &cobra.Command{
		Use:   "players",
		Short: "Rank players by a derived metric",
		Long: `Filter and rank every player in the snapshot.

Sort keys: ` + strings.Join(usecase.PlayerSortKeys(), ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			input, err := opts.toInput(cmd)
			if err != nil {
				return err
			}
			for _, ref := range opts.teams {
				detail, err := services.Teams.Get(ctx, ref)
				if err != nil {
					return fmt.Errorf("resolve team %q: %w", ref, err)
				}
				input.Filter.TeamIDs = append(input.Filter.TeamIDs, detail.ID)
			}

			result, err := services.Players.List(ctx, input)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, result)
			}
			if err := renderPlayers(out, result.Rows); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d players matched, %s expected points listed\n", result.Total, ftoa(result.TotalXPoints, 1))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&opts.positions, "position", nil, "positions to include (GK, DEF, MID, FWD)")
	flags.StringSliceVar(&opts.teams, "team", nil, "teams to include, by id, code or name")
	flags.StringSliceVar(&opts.names, "name", nil, "restrict to these players")
	flags.Float64Var(&opts.minCost, "min-cost", 0, "minimum cost in millions")
	flags.Float64Var(&opts.maxCost, "max-cost", 0, "maximum cost in millions")
	flags.Float64Var(&opts.minFixtureScore, "min-fixture-score", 0, "minimum team fixture score")
	flags.Float64Var(&opts.minTeamGI, "min-team-gi", 0, "minimum share of team goals involved in, in percent")
	flags.Float64Var(&opts.minMinutes, "min-minutes", 0, "minimum minutes per game")
	flags.StringVar(&opts.sortBy, "sort", "x_points", "sort key")
	flags.BoolVar(&opts.ascending, "asc", false, "sort ascending")
	flags.IntVar(&opts.limit, "limit", 20, "maximum rows (0 for all)")
	flags.BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// toInput converts the flag set into a query. Numeric bounds apply only when the
// flag was given explicitly.
func (o playersOptions) toInput(cmd *cobra.Command) (usecase.ListPlayersInput, error) {
	input := usecase.ListPlayersInput{
		Names:      o.names,
		SortBy:     o.sortBy,
		Descending: !o.ascending,
		Limit:      o.limit,
	}
	if o.limit < 0 {
		return input, fmt.Errorf("%w: --limit must be >= 0", usecase.ErrInvalidInput)
	}

	for _, raw := range o.positions {
		pos, ok := player.ParsePosition(strings.ToUpper(strings.TrimSpace(raw)))
		if !ok {
			return input, fmt.Errorf("%w: unknown position %q", usecase.ErrInvalidInput, raw)
		}
		input.Filter.Positions = append(input.Filter.Positions, pos)
	}

	changed := cmd.Flags().Changed
	if changed("min-cost") {
		input.Filter.Cost.Min = &o.minCost
	}
	if changed("max-cost") {
		input.Filter.Cost.Max = &o.maxCost
	}
	if input.Filter.Cost.Min != nil && input.Filter.Cost.Max != nil && o.minCost > o.maxCost {
		return input, fmt.Errorf("%w: --min-cost cannot exceed --max-cost", usecase.ErrInvalidInput)
	}
	if changed("min-fixture-score") {
		input.Filter.FixtureScore = player.AtLeast(o.minFixtureScore)
	}
	if changed("min-team-gi") {
		input.Filter.TeamGIPercent = player.AtLeast(o.minTeamGI)
	}
	if changed("min-minutes") {
		input.Filter.MinutesPerGame = player.AtLeast(o.minMinutes)
	}
	return input, nil
}
