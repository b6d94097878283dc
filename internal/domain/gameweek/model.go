package gameweek

// MaxGameweeks is the length of a Premier League season.
const MaxGameweeks = 38

// LiveElement is one player's stats for a single gameweek, uncoerced.
type LiveElement struct {
	ID    int
	Stats map[string]any
}

// Live is the event/{gw}/live payload.
type Live struct {
	Gameweek int
	Elements []LiveElement
}

// Empty reports whether the gameweek has no data yet.
func (l Live) Empty() bool {
	return len(l.Elements) == 0
}
