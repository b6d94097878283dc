package fpl

type bootstrapPayload struct {
	Teams    []teamPayload    `json:"teams"`
	Elements []map[string]any `json:"elements"`
}

type teamPayload struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	ShortName           string `json:"short_name"`
	Strength            int    `json:"strength"`
	StrengthOverallHome int    `json:"strength_overall_home"`
	StrengthOverallAway int    `json:"strength_overall_away"`
	StrengthAttackHome  int    `json:"strength_attack_home"`
	StrengthAttackAway  int    `json:"strength_attack_away"`
	StrengthDefenceHome int    `json:"strength_defence_home"`
	StrengthDefenceAway int    `json:"strength_defence_away"`
}

// started is nullable upstream for fixtures that have no kickoff time yet.
type fixturePayload struct {
	ID         int   `json:"id"`
	Event      *int  `json:"event"`
	TeamH      int   `json:"team_h"`
	TeamA      int   `json:"team_a"`
	TeamHScore *int  `json:"team_h_score"`
	TeamAScore *int  `json:"team_a_score"`
	Started    *bool `json:"started"`
	Finished   bool  `json:"finished"`
}

type livePayload struct {
	Elements []liveElementPayload `json:"elements"`
}

type liveElementPayload struct {
	ID    int            `json:"id"`
	Stats map[string]any `json:"stats"`
}

type entryPayload struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type picksPayload struct {
	Picks []pickPayload `json:"picks"`
}

type pickPayload struct {
	Element  int `json:"element"`
	Position int `json:"position"`
}
