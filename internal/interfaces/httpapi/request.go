package httpapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/fpl-insight/internal/domain/player"
	"github.com/riskibarqy/fpl-insight/internal/usecase"
)

type listPlayersQuery struct {
	Positions         []string `validate:"dive,oneof=GK DEF MID FWD"`
	TeamIDs           []int    `validate:"dive,gt=0"`
	Names             []string `validate:"dive,required,max=64"`
	MinCost           *float64 `validate:"omitempty,gte=0"`
	MaxCost           *float64 `validate:"omitempty,gte=0"`
	MinFixtureScore   *float64 `validate:"omitempty,gte=0,lte=5"`
	MaxFixtureScore   *float64 `validate:"omitempty,gte=0,lte=5"`
	MinTeamGIPercent  *float64 `validate:"omitempty,gte=0"`
	MinMinutesPerGame *float64 `validate:"omitempty,gte=0,lte=90"`
	MinBonusChance    *float64 `validate:"omitempty,gte=0,lte=1"`
	MinMinutesPerXGI  *float64 `validate:"omitempty,gte=0"`
	MaxMinutesPerXGI  *float64 `validate:"omitempty,gte=0"`
	SortBy            string   `validate:"omitempty,max=32"`
	Order             string   `validate:"omitempty,oneof=asc desc"`
	Limit             int      `validate:"gte=0,lte=1000"`
}

func (q listPlayersQuery) toInput() usecase.ListPlayersInput {
	positions := make([]player.Position, 0, len(q.Positions))
	for _, raw := range q.Positions {
		if pos, ok := player.ParsePosition(raw); ok {
			positions = append(positions, pos)
		}
	}

	return usecase.ListPlayersInput{
		Filter: player.Filter{
			Positions:      positions,
			TeamIDs:        q.TeamIDs,
			Cost:           player.Range{Min: q.MinCost, Max: q.MaxCost},
			FixtureScore:   player.Range{Min: q.MinFixtureScore, Max: q.MaxFixtureScore},
			TeamGIPercent:  player.Range{Min: q.MinTeamGIPercent},
			MinutesPerGame: player.Range{Min: q.MinMinutesPerGame},
			BonusChance:    player.Range{Min: q.MinBonusChance},
			MinutesPerXGI:  player.Range{Min: q.MinMinutesPerXGI, Max: q.MaxMinutesPerXGI},
		},
		Names:      q.Names,
		SortBy:     q.SortBy,
		Descending: q.Order == "desc",
		Limit:      q.Limit,
	}
}

// parseListPlayersQuery reads the player table query string. List parameters accept
// both repeated keys and comma separated values.
func parseListPlayersQuery(values url.Values) (listPlayersQuery, error) {
	var (
		out listPlayersQuery
		err error
	)

	for _, raw := range splitQueryList(values, "position") {
		out.Positions = append(out.Positions, strings.ToUpper(raw))
	}
	for _, raw := range splitQueryList(values, "team") {
		id, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return listPlayersQuery{}, fmt.Errorf("%w: team must be a numeric id, got %q", usecase.ErrInvalidInput, raw)
		}
		out.TeamIDs = append(out.TeamIDs, id)
	}
	out.Names = splitQueryList(values, "name")

	floats := []struct {
		key    string
		target **float64
	}{
		{key: "min_cost", target: &out.MinCost},
		{key: "max_cost", target: &out.MaxCost},
		{key: "min_fixture_score", target: &out.MinFixtureScore},
		{key: "max_fixture_score", target: &out.MaxFixtureScore},
		{key: "min_team_gi_percent", target: &out.MinTeamGIPercent},
		{key: "min_minutes_per_game", target: &out.MinMinutesPerGame},
		{key: "min_bonus_chance", target: &out.MinBonusChance},
		{key: "min_minutes_per_xgi", target: &out.MinMinutesPerXGI},
		{key: "max_minutes_per_xgi", target: &out.MaxMinutesPerXGI},
	}
	for _, item := range floats {
		if *item.target, err = optionalFloat(values, item.key); err != nil {
			return listPlayersQuery{}, err
		}
	}

	if out.MinCost != nil && out.MaxCost != nil && *out.MinCost > *out.MaxCost {
		return listPlayersQuery{}, fmt.Errorf("%w: min_cost must not exceed max_cost", usecase.ErrInvalidInput)
	}

	out.SortBy = strings.TrimSpace(values.Get("sort"))
	out.Order = strings.ToLower(strings.TrimSpace(values.Get("order")))
	if out.Limit, err = optionalInt(values, "limit", 0); err != nil {
		return listPlayersQuery{}, err
	}
	return out, nil
}

func splitQueryList(values url.Values, key string) []string {
	var out []string
	for _, raw := range values[key] {
		for _, part := range strings.Split(raw, ",") {
			if item := strings.TrimSpace(part); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

func optionalFloat(values url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number, got %q", usecase.ErrInvalidInput, key, raw)
	}
	return &v, nil
}

func optionalInt(values url.Values, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, key, raw)
	}
	return v, nil
}

func pathInt(ctx context.Context, raw, name string) (int, error) {
	_, span := startSpan(ctx, "httpapi.pathInt")
	defer span.End()

	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return v, nil
}
