package cli

import (
	"io"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/riskibarqy/fpl-insight/internal/usecase"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignCenter},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
	}))
}

func ftoa(v float64, places int) string {
	return strconv.FormatFloat(v, 'f', places, 64)
}

func writeJSON(w io.Writer, v any) error {
	enc := sonic.ConfigStd.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTeams(w io.Writer, rows []usecase.TeamRow) error {
	table := newTable(w)
	table.Header("TEAM", "CODE", "DIFF", "GP", "GF", "GA", "GD", "CS", "FIX")
	for _, r := range rows {
		if err := table.Append(
			r.Name,
			r.Short,
			strconv.Itoa(r.Difficulty),
			strconv.Itoa(r.Games),
			strconv.Itoa(r.GoalsScored),
			strconv.Itoa(r.GoalsConceded),
			strconv.Itoa(r.GoalDifference),
			strconv.Itoa(r.CleanSheets),
			ftoa(r.FixtureScore, 2),
		); err != nil {
			return err
		}
	}
	return table.Render()
}

func renderPlayers(w io.Writer, rows []usecase.PlayerRow) error {
	table := newTable(w)
	table.Header("PLAYER", "POS", "COST", "PTS", "XPTS", "XPTS/£", "DIFF", "GI", "XGI", "TEAM GI%", "MIN/G", "BONUS%", "FIX")
	for _, r := range rows {
		if err := table.Append(
			r.NameWithTeam,
			r.Position,
			ftoa(r.Cost, 1),
			ftoa(r.TotalPoints, 0),
			ftoa(r.XPoints, 1),
			ftoa(r.XPointsPerCost, 2),
			ftoa(r.Differential, 1),
			ftoa(r.GI, 0),
			ftoa(r.XGI, 2),
			ftoa(r.TeamGIPercent, 1),
			ftoa(r.MinutesPerGame, 1),
			ftoa(r.BonusChance, 1),
			ftoa(r.FixtureScore, 2),
		); err != nil {
			return err
		}
	}
	return table.Render()
}

func renderMatchups(w io.Writer, rows []usecase.MatchupRow) error {
	table := newTable(w)
	table.Header("OPPONENT", "SCORE", "1", "2", "3", "4", "5", "DIFF", "GF", "GA", "CS")
	for _, r := range rows {
		cells := []any{r.OpponentCode, strconv.Itoa(r.Score)}
		for tier := 1; tier < len(r.Overlapping); tier++ {
			cells = append(cells, strconv.Itoa(r.Overlapping[tier]))
		}
		cells = append(cells,
			strconv.Itoa(r.Difficulty),
			strconv.Itoa(r.GoalsScored),
			strconv.Itoa(r.GoalsConceded),
			strconv.Itoa(r.CleanSheets),
		)
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}

func renderKPI(w io.Writer, points []usecase.KPIPoint) error {
	table := newTable(w)
	table.Header("GW", "OPP", "PTS", "GI", "XGI", "BONUS")
	for _, p := range points {
		if err := table.Append(
			strconv.Itoa(p.Gameweek),
			p.Opponent,
			ftoa(p.Points, 0),
			ftoa(p.GI, 0),
			ftoa(p.XGI, 2),
			ftoa(p.Bonus, 0),
		); err != nil {
			return err
		}
	}
	return table.Render()
}

func renderUpcoming(w io.Writer, fixtures []usecase.UpcomingFixture) error {
	table := newTable(w)
	table.Header("GW", "OPP", "VENUE", "DIFF", "DELTA")
	for _, f := range fixtures {
		if err := table.Append(
			strconv.Itoa(f.Gameweek),
			f.OpponentCode,
			f.Venue,
			strconv.Itoa(f.Difficulty),
			strconv.Itoa(f.Delta),
		); err != nil {
			return err
		}
	}
	return table.Render()
}
