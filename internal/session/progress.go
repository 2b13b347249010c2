package session

// Progress is the position of the learner within the deck.
type Progress struct {
	// Current is the 1-based number of the card on screen, or Total when done.
	Current int
	Total   int
	Done    int
}

// Fraction returns the share of the deck already answered, in [0,1].
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total)
}

// CurrentProgress reports how far the session has come.
func CurrentProgress(state *SessionState) Progress {
	total := len(state.Deck)
	done := min(state.Position, total)
	cur := done
	if state.Phase == PhaseReviewing {
		cur = done + 1
	}
	return Progress{Current: cur, Total: total, Done: done}
}
