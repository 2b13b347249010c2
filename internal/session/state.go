package session

import "github.com/abhisek/lexis/internal/vocab"

// SessionPhase represents the current phase of the session.
type SessionPhase int

const (
	PhaseIdle      SessionPhase = iota // No deck yet
	PhaseReviewing                     // Walking the deck card by card
	PhaseComplete                      // Deck exhausted, summary available
)

func (p SessionPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseReviewing:
		return "reviewing"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// SessionState tracks the runtime state of a practice session.
type SessionState struct {
	// Phase is the current session phase.
	Phase SessionPhase

	// Deck is the shuffled snapshot of items taken at session start. Later
	// imports do not affect it.
	Deck []vocab.Item

	// Position is the index of the current card. It only grows, and the
	// session is complete once it reaches len(Deck).
	Position int

	// Flipped is true once the current card's back is shown.
	Flipped bool

	// Known and Unknown count this session's answers.
	Known   int
	Unknown int

	// Missed holds the items answered unknown, in answer order.
	Missed []vocab.Item

	// Retry is true when the deck was built from a previous session's misses.
	Retry bool
}

// NewSessionState returns an idle session.
func NewSessionState() *SessionState {
	return &SessionState{Phase: PhaseIdle}
}
