package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/fpl-insight/internal/app"
	"github.com/riskibarqy/fpl-insight/internal/usecase"
)

type servicesFunc func() (*app.Services, error)

func newSummaryCommand(load servicesFunc) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the snapshot overview, team table and top players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			snap, err := services.Snapshots.Refresh(ctx)
			if err != nil {
				return fmt.Errorf("build snapshot: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n=== Snapshot ===\n\n")
			fmt.Fprintf(out, "  Current gameweek : %d\n", snap.CurrentGameweek())
			fmt.Fprintf(out, "  Teams            : %d\n", snap.TeamCount())
			fmt.Fprintf(out, "  Players          : %d\n", snap.PlayerCount())
			fmt.Fprintf(out, "  Built at         : %s\n", snap.BuiltAt().Format(time.RFC3339))

			teams, err := services.Teams.List(ctx)
			if err != nil {
				return fmt.Errorf("list teams: %w", err)
			}
			fmt.Fprintf(out, "\n--- Teams ---\n\n")
			if err := renderTeams(out, teams); err != nil {
				return err
			}

			if top <= 0 {
				return nil
			}
			players, err := services.Players.List(ctx, usecase.ListPlayersInput{
				SortBy:     "x_points",
				Descending: true,
				Limit:      top,
			})
			if err != nil {
				return fmt.Errorf("list players: %w", err)
			}
			fmt.Fprintf(out, "\n--- Top %d by expected points ---\n\n", top)
			return renderPlayers(out, players.Rows)
		},
	}
	cmd.Flags().IntVar(&top, "top", 10, "number of players to list (0 disables the player table)")
	return cmd
}
