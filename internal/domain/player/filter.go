package player

import "github.com/riskibarqy/fpl-insight/internal/domain/statbag"

// Range is an optional closed interval. A nil bound places no constraint on that side.
type Range struct {
	Min *float64
	Max *float64
}

func (r Range) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

func (r Range) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

func AtLeast(v float64) Range {
	return Range{Min: &v}
}

func Between(lo, hi float64) Range {
	return Range{Min: &lo, Max: &hi}
}

// Filter selects players for ranking views. Zero-value fields match everything.
type Filter struct {
	Positions      []Position
	TeamIDs        []int
	Cost           Range
	FixtureScore   Range
	TeamGIPercent  Range
	MinutesPerGame Range
	BonusChance    Range
	MinutesPerXGI  Range
}

func (f Filter) Matches(p *Player) bool {
	if len(f.Positions) > 0 && !containsPosition(f.Positions, p.Position) {
		return false
	}
	if len(f.TeamIDs) > 0 && (p.Team == nil || !containsInt(f.TeamIDs, p.Team.ID)) {
		return false
	}
	if !f.Cost.Contains(p.Cost()) {
		return false
	}
	if !f.FixtureScore.IsZero() {
		if p.Team == nil || !f.FixtureScore.Contains(p.Team.FixtureScore) {
			return false
		}
	}
	if !f.TeamGIPercent.Contains(100 * p.Stats.Float(statbag.KeyGIPerGoalScored)) {
		return false
	}
	if !f.MinutesPerGame.Contains(p.Stats.Float(statbag.KeyMinutesPerGame)) {
		return false
	}
	if !f.BonusChance.Contains(p.Stats.Float(statbag.KeyBonusChance)) {
		return false
	}
	return f.MinutesPerXGI.Contains(p.Stats.Float(statbag.KeyMinutesPerXGI))
}

func containsPosition(items []Position, target Position) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

func containsInt(items []int, target int) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
