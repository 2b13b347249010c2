package session

import "github.com/abhisek/lexis/internal/vocab"

// SessionSummary holds the data displayed on the results screen.
type SessionSummary struct {
	DeckSize int
	Known    int
	Unknown  int
	Accuracy float64
	Missed   []vocab.Item
	Retry    bool
}

// BuildSummary creates a SessionSummary from the current session state. The
// missed list is copied so later sessions cannot change it.
func BuildSummary(state *SessionState) *SessionSummary {
	missed := make([]vocab.Item, len(state.Missed))
	copy(missed, state.Missed)

	var accuracy float64
	if answered := state.Known + state.Unknown; answered > 0 {
		accuracy = float64(state.Known) / float64(answered)
	}

	return &SessionSummary{
		DeckSize: len(state.Deck),
		Known:    state.Known,
		Unknown:  state.Unknown,
		Accuracy: accuracy,
		Missed:   missed,
		Retry:    state.Retry,
	}
}
