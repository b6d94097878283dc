package fixture

// Fixture is one scheduled match as published by the upstream fixtures feed.
// Event is nil while the match is not yet assigned to a gameweek.
type Fixture struct {
	ID         int
	Event      *int
	TeamH      int
	TeamA      int
	TeamHScore *int
	TeamAScore *int
	Started    bool
	Finished   bool
}

func (f Fixture) Gameweek() (int, bool) {
	if f.Event == nil {
		return 0, false
	}
	return *f.Event, true
}

// Done reports whether the match has kicked off or finished.
func (f Fixture) Done() bool {
	return f.Started || f.Finished
}

// Scores returns the home and away goals, treating a missing score as 0.
func (f Fixture) Scores() (home, away int) {
	if f.TeamHScore != nil {
		home = *f.TeamHScore
	}
	if f.TeamAScore != nil {
		away = *f.TeamAScore
	}
	return home, away
}
