package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/fpl-insight/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-insight/internal/domain/player"
	"github.com/riskibarqy/fpl-insight/internal/domain/snapshot"
	"github.com/riskibarqy/fpl-insight/internal/domain/statbag"
)

const (
	defaultSearchResults = 10
	defaultUpcomingLimit = 5
)

type snapshotReader interface {
	Current(ctx context.Context) (*snapshot.Snapshot, error)
}

// PlayerRow is the flattened per-player view used by ranking tables.
type PlayerRow struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	NameWithTeam   string  `json:"name_with_team"`
	TeamID         int     `json:"team_id"`
	Team           string  `json:"team"`
	TeamCode       string  `json:"team_code"`
	Position       string  `json:"position"`
	Cost           float64 `json:"cost"`
	TotalPoints    float64 `json:"total_points"`
	PointsPerGame  float64 `json:"points_per_game"`
	SelectedBy     float64 `json:"selected_by_percent"`
	XPoints        float64 `json:"x_points"`
	XPointsPerCost float64 `json:"x_points_per_cost"`
	Differential   float64 `json:"differential"`
	FixtureScore   float64 `json:"fixture_score"`
	TeamCleanSheet int     `json:"team_clean_sheets"`
	TeamGoals      int     `json:"team_goals"`
	TeamGIPercent  float64 `json:"team_gi_percent"`
	Goals          float64 `json:"goals_scored"`
	ExpectedGoals  float64 `json:"expected_goals"`
	Assists        float64 `json:"assists"`
	ExpectedAssist float64 `json:"expected_assists"`
	GI             float64 `json:"gi"`
	XGI            float64 `json:"xgi"`
	ICTIndex       float64 `json:"ict_index"`
	Minutes        float64 `json:"minutes"`
	MinutesPerGame float64 `json:"minutes_per_game"`
	MinutesPerXGI  float64 `json:"minutes_per_xgi"`
	BonusPerGame   float64 `json:"bonus_per_game"`
	BonusChance    float64 `json:"bonus_chance"`
	StartsPerGame  float64 `json:"starts_per_game"`
	FormPerCost    float64 `json:"form_per_cost"`
	News           string  `json:"news,omitempty"`
}

func NewPlayerRow(p *player.Player) PlayerRow {
	stats := p.Stats
	cost := statbag.Round(p.Cost(), 3)
	totalPoints := stats.Float(statbag.KeyTotalPoints)
	selectedBy := stats.Float(statbag.KeySelectedByPercent)
	minutesPerGame := statbag.Round(stats.Float(statbag.KeyMinutesPerGame), 3)
	xPoints := statbag.Ratio(totalPoints, stats.Float(statbag.KeyMinutes)) * gameweek.MaxGameweeks * minutesPerGame
	goals := stats.Float(statbag.KeyGoalsScored)
	assists := stats.Float(statbag.KeyAssists)

	row := PlayerRow{
		ID:             p.ID,
		Name:           p.Name,
		NameWithTeam:   p.NameWithTeam,
		Position:       string(p.Position),
		Cost:           cost,
		TotalPoints:    totalPoints,
		PointsPerGame:  stats.Float(statbag.KeyPointsPerGame),
		SelectedBy:     selectedBy,
		XPoints:        statbag.Round(xPoints, 2),
		XPointsPerCost: statbag.Round(statbag.Ratio(xPoints, cost), 2),
		Differential:   statbag.Round(totalPoints*(1-selectedBy/100), 2),
		TeamGIPercent:  statbag.Round(100*stats.Float(statbag.KeyGIPerGoalScored), 1),
		Goals:          goals,
		ExpectedGoals:  stats.Float(statbag.KeyExpectedGoals),
		Assists:        assists,
		ExpectedAssist: stats.Float(statbag.KeyExpectedAssists),
		GI:             goals + assists,
		XGI:            stats.Float(statbag.KeyExpectedGoalInvolvements),
		ICTIndex:       statbag.Round(stats.Float(statbag.KeyICTIndex), 2),
		Minutes:        stats.Float(statbag.KeyMinutes),
		MinutesPerGame: minutesPerGame,
		MinutesPerXGI:  statbag.Round(stats.Float(statbag.KeyMinutesPerXGI), 2),
		BonusPerGame:   statbag.Round(stats.Float(statbag.KeyBonusPerGame), 2),
		BonusChance:    stats.Float(statbag.KeyBonusChance),
		StartsPerGame:  stats.Float(statbag.KeyStartsPerGame),
		FormPerCost:    stats.Float(statbag.KeyFormPerCost),
		News:           stats.String(statbag.KeyNews),
	}
	if p.Team != nil {
		row.TeamID = p.Team.ID
		row.Team = p.Team.Name
		row.TeamCode = p.Team.Short
		row.FixtureScore = p.Team.FixtureScore
		row.TeamCleanSheet = p.Team.CleanSheets
		row.TeamGoals = p.Team.GoalsScored
	}
	return row
}

var playerSortKeys = map[string]func(PlayerRow) float64{
	"points":            func(r PlayerRow) float64 { return r.TotalPoints },
	"x_points":          func(r PlayerRow) float64 { return r.XPoints },
	"x_points_per_cost": func(r PlayerRow) float64 { return r.XPointsPerCost },
	"differential":      func(r PlayerRow) float64 { return r.Differential },
	"form_per_cost":     func(r PlayerRow) float64 { return r.FormPerCost },
	"cost":              func(r PlayerRow) float64 { return r.Cost },
	"fixture_score":     func(r PlayerRow) float64 { return r.FixtureScore },
	"minutes_per_game":  func(r PlayerRow) float64 { return r.MinutesPerGame },
	"team_gi_percent":   func(r PlayerRow) float64 { return r.TeamGIPercent },
	"bonus_chance":      func(r PlayerRow) float64 { return r.BonusChance },
}

// PlayerSortKeys lists the accepted ListPlayersInput.SortBy values besides "name".
func PlayerSortKeys() []string {
	keys := make([]string, 0, len(playerSortKeys)+1)
	keys = append(keys, "name")
	for key := range playerSortKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys[1:])
	return keys
}

type ListPlayersInput struct {
	Filter player.Filter
	// Names restricts the result to these players (plain or team-qualified). Empty means all.
	Names      []string
	SortBy     string
	Descending bool
	Limit      int
}

type ListPlayersResult struct {
	Total        int         `json:"total"`
	TotalXPoints float64     `json:"total_x_points"`
	Rows         []PlayerRow `json:"rows"`
}

type PlayerQueryService struct {
	snapshots snapshotReader
}

func NewPlayerQueryService(snapshots snapshotReader) *PlayerQueryService {
	return &PlayerQueryService{snapshots: snapshots}
}

func (s *PlayerQueryService) List(ctx context.Context, input ListPlayersInput) (ListPlayersResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerQueryService.List")
	defer span.End()

	if input.Limit < 0 {
		return ListPlayersResult{}, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	}
	sortBy := strings.TrimSpace(input.SortBy)
	if sortBy == "" {
		sortBy = "name"
	}
	metric, ok := playerSortKeys[sortBy]
	if !ok && sortBy != "name" {
		return ListPlayersResult{}, fmt.Errorf("%w: unsupported sort key %q", ErrInvalidInput, sortBy)
	}

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return ListPlayersResult{}, err
	}

	candidates, err := selectPlayers(snap, input.Names)
	if err != nil {
		return ListPlayersResult{}, err
	}

	rows := make([]PlayerRow, 0, len(candidates))
	var totalXPoints float64
	for _, item := range candidates {
		if !input.Filter.Matches(item) {
			continue
		}
		row := NewPlayerRow(item)
		totalXPoints += row.XPoints
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if metric == nil {
			if input.Descending {
				return rows[i].Name > rows[j].Name
			}
			return rows[i].Name < rows[j].Name
		}
		if input.Descending {
			return metric(rows[i]) > metric(rows[j])
		}
		return metric(rows[i]) < metric(rows[j])
	})

	result := ListPlayersResult{Total: len(rows), TotalXPoints: statbag.Round(totalXPoints, 2)}
	if input.Limit > 0 && len(rows) > input.Limit {
		rows = rows[:input.Limit]
	}
	result.Rows = rows
	return result, nil
}

func selectPlayers(snap *snapshot.Snapshot, names []string) ([]*player.Player, error) {
	if len(names) == 0 {
		return snap.Players(), nil
	}

	seen := make(map[int]struct{}, len(names))
	out := make([]*player.Player, 0, len(names))
	for _, name := range names {
		item, ok := snap.PlayerByName(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("%w: player %q", ErrNotFound, name)
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out, nil
}

// Resolve finds a player by numeric id or by name.
func (s *PlayerQueryService) Resolve(ctx context.Context, ref string) (*player.Player, error) {
	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	return resolvePlayer(snap, ref)
}

func resolvePlayer(snap *snapshot.Snapshot, ref string) (*player.Player, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: player reference is required", ErrInvalidInput)
	}
	if id, err := strconv.Atoi(ref); err == nil {
		if item, ok := snap.Player(id); ok {
			return item, nil
		}
		return nil, fmt.Errorf("%w: player id=%d", ErrNotFound, id)
	}
	if item, ok := snap.PlayerByName(ref); ok {
		return item, nil
	}
	return nil, fmt.Errorf("%w: player %q", ErrNotFound, ref)
}

type PlayerDetail struct {
	PlayerRow
	Stats     statbag.Bag `json:"stats"`
	Gameweeks []int       `json:"gameweeks"`
}

func (s *PlayerQueryService) Get(ctx context.Context, ref string) (PlayerDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerQueryService.Get")
	defer span.End()

	item, err := s.Resolve(ctx, ref)
	if err != nil {
		return PlayerDetail{}, err
	}
	return PlayerDetail{
		PlayerRow: NewPlayerRow(item),
		Stats:     item.Stats,
		Gameweeks: item.Gameweeks(),
	}, nil
}

// History returns the raw per-gameweek live stats of a player.
func (s *PlayerQueryService) History(ctx context.Context, ref string) (map[int]statbag.Bag, error) {
	item, err := s.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	return item.History, nil
}

type KPIPoint struct {
	Gameweek int     `json:"gameweek"`
	Opponent string  `json:"opponent"`
	GI       float64 `json:"gi"`
	XGI      float64 `json:"xgi"`
	Points   float64 `json:"points"`
	Bonus    float64 `json:"bonus"`
}

// KPI returns goal involvement against expectation per played gameweek. Gameweeks in
// which the player's team had no fixture are left out.
func (s *PlayerQueryService) KPI(ctx context.Context, ref string) ([]KPIPoint, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerQueryService.KPI")
	defer span.End()

	item, err := s.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	out := make([]KPIPoint, 0, len(item.History))
	for _, gw := range item.Gameweeks() {
		fx, ok := item.Team.Fixtures[gw]
		if !ok {
			continue
		}
		stats := item.History[gw]
		out = append(out, KPIPoint{
			Gameweek: gw,
			Opponent: fx.OpponentCode,
			GI:       stats.Float(statbag.KeyGoalsScored) + stats.Float(statbag.KeyAssists),
			XGI:      stats.Float(statbag.KeyExpectedGoalInvolvements),
			Points:   stats.Float(statbag.KeyTotalPoints),
			Bonus:    stats.Float(statbag.KeyBonus),
		})
	}
	return out, nil
}

type PlayerDelta struct {
	Cost           float64 `json:"cost"`
	GI             float64 `json:"gi"`
	XGI            float64 `json:"xgi"`
	TeamGIPercent  float64 `json:"team_gi_percent"`
	MinutesPerGame float64 `json:"minutes_per_game"`
	FormPerCost    float64 `json:"form_per_cost"`
	BonusPerGame   float64 `json:"bonus_per_game"`
	BonusChance    float64 `json:"bonus_chance"`
	FixtureScore   float64 `json:"fixture_score"`
	XPoints        float64 `json:"x_points"`
}

type PlayerComparison struct {
	Player  PlayerRow   `json:"player"`
	Against PlayerRow   `json:"against"`
	Delta   PlayerDelta `json:"delta"`
}

// Compare reports player minus against for the headline metrics.
func (s *PlayerQueryService) Compare(ctx context.Context, ref, againstRef string) (PlayerComparison, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerQueryService.Compare")
	defer span.End()

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return PlayerComparison{}, err
	}
	left, err := resolvePlayer(snap, ref)
	if err != nil {
		return PlayerComparison{}, err
	}
	right, err := resolvePlayer(snap, againstRef)
	if err != nil {
		return PlayerComparison{}, err
	}

	a, b := NewPlayerRow(left), NewPlayerRow(right)
	return PlayerComparison{
		Player:  a,
		Against: b,
		Delta: PlayerDelta{
			Cost:           statbag.Round(a.Cost-b.Cost, 2),
			GI:             statbag.Round(a.GI-b.GI, 2),
			XGI:            statbag.Round(a.XGI-b.XGI, 2),
			TeamGIPercent:  statbag.Round(a.TeamGIPercent-b.TeamGIPercent, 1),
			MinutesPerGame: statbag.Round(a.MinutesPerGame-b.MinutesPerGame, 2),
			FormPerCost:    statbag.Round(a.FormPerCost-b.FormPerCost, 2),
			BonusPerGame:   statbag.Round(a.BonusPerGame-b.BonusPerGame, 2),
			BonusChance:    statbag.Round(a.BonusChance-b.BonusChance, 3),
			FixtureScore:   statbag.Round(a.FixtureScore-b.FixtureScore, 2),
			XPoints:        statbag.Round(a.XPoints-b.XPoints, 2),
		},
	}, nil
}

type UpcomingFixture struct {
	Gameweek     int    `json:"gameweek"`
	OpponentID   int    `json:"opponent_id"`
	OpponentCode string `json:"opponent_code"`
	Venue        string `json:"venue"`
	Difficulty   int    `json:"difficulty"`
	// Delta is opponent difficulty minus the player's own team difficulty.
	Delta int `json:"delta"`
}

func (s *PlayerQueryService) UpcomingFixtures(ctx context.Context, ref string, limit int) ([]UpcomingFixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerQueryService.UpcomingFixtures")
	defer span.End()

	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	}
	if limit == 0 {
		limit = defaultUpcomingLimit
	}
	item, err := s.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	upcoming := item.Team.UpcomingFixtures(limit)
	out := make([]UpcomingFixture, 0, len(upcoming))
	for _, fx := range upcoming {
		out = append(out, UpcomingFixture{
			Gameweek:     fx.Gameweek,
			OpponentID:   fx.OpponentID,
			OpponentCode: fx.OpponentCode,
			Venue:        string(fx.Venue),
			Difficulty:   fx.Difficulty,
			Delta:        fx.Difficulty - item.Team.Difficulty,
		})
	}
	return out, nil
}

type PlayerMatch struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	NameWithTeam string `json:"name_with_team"`
}

// Search matches query as a case-insensitive substring of the plain player name.
func (s *PlayerQueryService) Search(ctx context.Context, query string, maxResults int) ([]PlayerMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerQueryService.Search")
	defer span.End()

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidInput)
	}
	if maxResults <= 0 {
		maxResults = defaultSearchResults
	}

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PlayerMatch, 0, maxResults)
	for _, item := range snap.Players() {
		if !strings.Contains(strings.ToLower(item.Name), needle) {
			continue
		}
		out = append(out, PlayerMatch{ID: item.ID, Name: item.Name, NameWithTeam: item.NameWithTeam})
		if len(out) >= maxResults {
			break
		}
	}
	return out, nil
}
