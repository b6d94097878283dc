package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCommand(load servicesFunc) *cobra.Command {
	var (
		fixtures int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "player <id|name|\"Name (COD)\">",
		Short: "Show one player's derived metrics, gameweek KPIs and upcoming fixtures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			ref := args[0]

			detail, err := services.Players.Get(ctx, ref)
			if err != nil {
				return err
			}
			kpi, err := services.Players.KPI(ctx, ref)
			if err != nil {
				return err
			}
			upcoming, err := services.Players.UpcomingFixtures(ctx, ref, fixtures)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, map[string]any{
					"player":   detail,
					"kpi":      kpi,
					"upcoming": upcoming,
				})
			}

			fmt.Fprintf(out, "\n=== %s ===\n\n", detail.NameWithTeam)
			fmt.Fprintf(out, "  Position       : %s\n", detail.Position)
			fmt.Fprintf(out, "  Cost           : %s\n", ftoa(detail.Cost, 1))
			fmt.Fprintf(out, "  Points         : %s (%s per game)\n", ftoa(detail.TotalPoints, 0), ftoa(detail.PointsPerGame, 1))
			fmt.Fprintf(out, "  Expected pts   : %s (%s per £m)\n", ftoa(detail.XPoints, 1), ftoa(detail.XPointsPerCost, 2))
			fmt.Fprintf(out, "  Selected by    : %s%%\n", ftoa(detail.SelectedBy, 1))
			fmt.Fprintf(out, "  Team GI share  : %s%%\n", ftoa(detail.TeamGIPercent, 1))
			fmt.Fprintf(out, "  Bonus chance   : %s%%\n", ftoa(detail.BonusChance, 1))
			if detail.News != "" {
				fmt.Fprintf(out, "  News           : %s\n", detail.News)
			}

			fmt.Fprintf(out, "\n--- Gameweeks ---\n\n")
			if err := renderKPI(out, kpi); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n--- Upcoming ---\n\n")
			return renderUpcoming(out, upcoming)
		},
	}
	cmd.Flags().IntVar(&fixtures, "fixtures", 5, "number of upcoming fixtures to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of tables")
	return cmd
}

func newCompareCommand(load servicesFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <player> <against>",
		Short: "Compare two players metric by metric",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := load()
			if err != nil {
				return err
			}
			cmp, err := services.Players.Compare(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			table := newTable(out)
			table.Header("METRIC", cmp.Player.NameWithTeam, cmp.Against.NameWithTeam, "DELTA")
			rows := []struct {
				name          string
				left, right   float64
				delta         float64
				decimalPlaces int
			}{
				{"cost", cmp.Player.Cost, cmp.Against.Cost, cmp.Delta.Cost, 1},
				{"gi", cmp.Player.GI, cmp.Against.GI, cmp.Delta.GI, 0},
				{"xgi", cmp.Player.XGI, cmp.Against.XGI, cmp.Delta.XGI, 2},
				{"team_gi_percent", cmp.Player.TeamGIPercent, cmp.Against.TeamGIPercent, cmp.Delta.TeamGIPercent, 1},
				{"minutes_per_game", cmp.Player.MinutesPerGame, cmp.Against.MinutesPerGame, cmp.Delta.MinutesPerGame, 1},
				{"form_per_cost", cmp.Player.FormPerCost, cmp.Against.FormPerCost, cmp.Delta.FormPerCost, 2},
				{"bonus_per_game", cmp.Player.BonusPerGame, cmp.Against.BonusPerGame, cmp.Delta.BonusPerGame, 2},
				{"bonus_chance", cmp.Player.BonusChance, cmp.Against.BonusChance, cmp.Delta.BonusChance, 1},
				{"fixture_score", cmp.Player.FixtureScore, cmp.Against.FixtureScore, cmp.Delta.FixtureScore, 2},
				{"x_points", cmp.Player.XPoints, cmp.Against.XPoints, cmp.Delta.XPoints, 1},
			}
			for _, r := range rows {
				if err := table.Append(r.name, ftoa(r.left, r.decimalPlaces), ftoa(r.right, r.decimalPlaces), ftoa(r.delta, r.decimalPlaces)); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}
