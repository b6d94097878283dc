package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/fpl-insight/internal/domain/snapshot"
	"github.com/riskibarqy/fpl-insight/internal/usecase"
)

type snapshotDump struct {
	CurrentGameweek int                    `json:"current_gameweek"`
	BuiltAt         time.Time              `json:"built_at"`
	Teams           []usecase.TeamDetail   `json:"teams"`
	Players         []usecase.PlayerDetail `json:"players"`
	Raw             map[string]any         `json:"raw,omitempty"`
}

func newSnapshotDump(snap *snapshot.Snapshot, withRaw bool) snapshotDump {
	out := snapshotDump{
		CurrentGameweek: snap.CurrentGameweek(),
		BuiltAt:         snap.BuiltAt(),
	}
	for _, t := range snap.Teams() {
		out.Teams = append(out.Teams, usecase.TeamDetail{TeamRow: usecase.NewTeamRow(t), Fixtures: t.Fixtures})
	}
	for _, p := range snap.Players() {
		out.Players = append(out.Players, usecase.PlayerDetail{
			PlayerRow: usecase.NewPlayerRow(p),
			Stats:     p.Stats,
			Gameweeks: p.Gameweeks(),
		})
	}
	if withRaw {
		out.Raw = snap.Raw()
	}
	return out
}

func newDumpCommand(load servicesFunc) *cobra.Command {
	var (
		outPath string
		withRaw bool
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write the full snapshot as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := load()
			if err != nil {
				return err
			}
			snap, err := services.Snapshots.Refresh(cmd.Context())
			if err != nil {
				return fmt.Errorf("build snapshot: %w", err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer f.Close()
				w = f
			}
			if err := writeJSON(w, newSnapshotDump(snap, withRaw)); err != nil {
				return fmt.Errorf("encode snapshot: %w", err)
			}
			if outPath != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "snapshot written to %s\n", outPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "output file path (default: stdout)")
	cmd.Flags().BoolVar(&withRaw, "raw", false, "include the raw upstream documents")
	return cmd
}
