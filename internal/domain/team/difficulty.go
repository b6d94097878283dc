package team

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MinDifficulty     = 1
	MaxDifficulty     = 5
	DefaultDifficulty = 3
)

// DifficultySource selects where a team's difficulty tier comes from.
type DifficultySource string

const (
	// DifficultyFromTable uses the season code table, falling back to DefaultDifficulty.
	DifficultyFromTable DifficultySource = "table"
	// DifficultyFromStrength uses the upstream strength field and falls back to the table
	// when upstream does not send one.
	DifficultyFromStrength DifficultySource = "strength"
)

// DifficultyTable maps a team short code to its tier. The contents are season data,
// not logic: the 2023/24 Premier League field is the default.
type DifficultyTable map[string]int

func DefaultDifficultyTable() DifficultyTable {
	return DifficultyTable{
		"LUT": 1,
		"BUR": 2, "SHU": 2, "SHE": 2, "WOL": 2, "EVE": 2, "BOU": 2,
		"NEW": 4, "BHA": 4, "BRE": 4, "AVL": 4, "CHE": 4, "TOT": 4,
		"ARS": 5, "LIV": 5, "MCI": 5,
	}
}

func (t DifficultyTable) Lookup(code string) int {
	tier, ok := t[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return DefaultDifficulty
	}
	return clampDifficulty(tier)
}

// ParseDifficultyOverrides parses "ARS:5,LUT:1" into a table.
func ParseDifficultyOverrides(raw string) (DifficultyTable, error) {
	out := make(DifficultyTable)
	for _, part := range strings.Split(raw, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		segments := strings.SplitN(item, ":", 2)
		if len(segments) != 2 {
			return nil, fmt.Errorf("invalid difficulty item %q, expected CODE:tier", item)
		}
		code := strings.ToUpper(strings.TrimSpace(segments[0]))
		if code == "" {
			return nil, fmt.Errorf("empty team code in item %q", item)
		}
		tier, err := strconv.Atoi(strings.TrimSpace(segments[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid tier in item %q: %w", item, err)
		}
		if tier < MinDifficulty || tier > MaxDifficulty {
			return nil, fmt.Errorf("tier must be within %d..%d in item %q", MinDifficulty, MaxDifficulty, item)
		}
		out[code] = tier
	}
	return out, nil
}

// DifficultyPolicy resolves the tier of a team. Overrides always win over both sources.
type DifficultyPolicy struct {
	Source    DifficultySource
	Table     DifficultyTable
	Overrides DifficultyTable
}

func DefaultDifficultyPolicy() DifficultyPolicy {
	return DifficultyPolicy{Source: DifficultyFromTable, Table: DefaultDifficultyTable()}
}

func (p DifficultyPolicy) Resolve(code string, upstreamStrength int) int {
	key := strings.ToUpper(strings.TrimSpace(code))
	if tier, ok := p.Overrides[key]; ok {
		return clampDifficulty(tier)
	}
	if p.Source == DifficultyFromStrength && upstreamStrength > 0 {
		return clampDifficulty(upstreamStrength)
	}
	table := p.Table
	if table == nil {
		table = DefaultDifficultyTable()
	}
	return table.Lookup(key)
}

func clampDifficulty(tier int) int {
	if tier < MinDifficulty {
		return MinDifficulty
	}
	if tier > MaxDifficulty {
		return MaxDifficulty
	}
	return tier
}
