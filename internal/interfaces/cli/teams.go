package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTeamsCommand(load servicesFunc) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List teams with their season record and fixture score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := load()
			if err != nil {
				return err
			}
			rows, err := services.Teams.List(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			return renderTeams(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newMatchupsCommand(load servicesFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "matchups <team>",
		Short: "Rank a team's pairings by how well their fixture runs complement each other",
		Long: `For every other team, count the gameweeks in which at least one of the two
faces an easier opponent, bucketed by the easier difficulty tier. Higher
scores mean the pair rotates well together.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			detail, err := services.Teams.Get(ctx, args[0])
			if err != nil {
				return err
			}
			rows, err := services.Teams.Matchups(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n=== Matchups for %s (%s) ===\n\n", detail.Name, detail.Short)
			return renderMatchups(out, rows)
		},
	}
}
