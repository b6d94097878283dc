package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/fpl-insight/internal/usecase"
)

func newPicksCommand(load servicesFunc) *cobra.Command {
	var gw int

	cmd := &cobra.Command{
		Use:   "picks <entry-id>",
		Short: "Show a manager's squad for a gameweek",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := strconv.Atoi(args[0])
			if err != nil || entryID <= 0 {
				return fmt.Errorf("%w: entry id must be a positive integer, got %q", usecase.ErrInvalidInput, args[0])
			}
			services, err := load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			picks, err := services.Managers.Picks(ctx, entryID, gw)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n=== %s (entry %d), gameweek %d ===\n\n", picks.Name, picks.EntryID, picks.Gameweek)
			if len(picks.Players) == 0 {
				fmt.Fprintln(out, "No picks found in the current snapshot.")
				return nil
			}

			result, err := services.Players.List(ctx, usecase.ListPlayersInput{
				Names:      picks.Players,
				SortBy:     "x_points",
				Descending: true,
			})
			if err != nil {
				return err
			}
			return renderPlayers(out, result.Rows)
		},
	}
	cmd.Flags().IntVar(&gw, "gameweek", 0, "gameweek to read (default: last played)")
	return cmd
}
