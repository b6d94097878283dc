package manager

// Selection is a manager's picked elements for one gameweek.
type Selection struct {
	EntryID  int    `json:"entry_id"`
	Name     string `json:"name"`
	Gameweek int    `json:"gameweek"`
	Picks    []int  `json:"picks"`
}

func (s Selection) Contains(elementID int) bool {
	for _, id := range s.Picks {
		if id == elementID {
			return true
		}
	}
	return false
}
