package session

import (
	"errors"
	"time"

	"github.com/abhisek/lexis/internal/vocab"
)

var (
	// ErrNoSelection is returned when a session is started without lessons.
	ErrNoSelection = errors.New("no lessons selected")
	// ErrEmptyDeck is returned when the selected lessons contain no items.
	ErrEmptyDeck = errors.New("no vocabulary in the selected lessons")
	// ErrNotReviewing is returned for card actions outside a running deck.
	ErrNotReviewing = errors.New("no session in progress")
	// ErrNotFlipped is returned when answering a card whose back is hidden.
	ErrNotFlipped = errors.New("card has not been flipped")
	// ErrNotComplete is returned by Restart and RetryMissed before the deck is done.
	ErrNotComplete = errors.New("session is not complete")
	// ErrNothingMissed is returned by RetryMissed after a perfect session.
	ErrNothingMissed = errors.New("no missed cards to retry")
)

// BuildDeck returns the items whose lesson is selected, shuffled. The
// returned slice never aliases items.
func BuildDeck(items []vocab.Item, selection vocab.Selection, shuffler Shuffler) []vocab.Item {
	var deck []vocab.Item
	for _, it := range items {
		if selection.Has(it.Lesson) {
			deck = append(deck, it)
		}
	}
	shuffle(deck, shuffler)
	return deck
}

// Start begins a new session over the selected lessons. On error the state
// is left as it was.
func Start(state *SessionState, items []vocab.Item, selection vocab.Selection, shuffler Shuffler) error {
	if selection.Empty() {
		return ErrNoSelection
	}
	deck := BuildDeck(items, selection, shuffler)
	if len(deck) == 0 {
		return ErrEmptyDeck
	}
	begin(state, deck, false)
	return nil
}

// Flip reveals the back of the current card. Flipping twice is a no-op.
func Flip(state *SessionState) error {
	if state.Phase != PhaseReviewing {
		return ErrNotReviewing
	}
	state.Flipped = true
	return nil
}

// Answer records the learner's verdict on the current card and advances to
// the next one. The returned event is what the caller appends to the answer
// log.
func Answer(state *SessionState, known bool, now time.Time, newID func() string) (vocab.AnswerEvent, error) {
	if state.Phase != PhaseReviewing {
		return vocab.AnswerEvent{}, ErrNotReviewing
	}
	if !state.Flipped {
		return vocab.AnswerEvent{}, ErrNotFlipped
	}

	card := state.Deck[state.Position]
	ev := vocab.AnswerEvent{
		ID:        newID(),
		ItemID:    card.ID,
		Known:     known,
		Timestamp: now,
	}

	if known {
		state.Known++
	} else {
		state.Unknown++
		state.Missed = append(state.Missed, card)
	}

	state.Position++
	state.Flipped = false
	if state.Position >= len(state.Deck) {
		state.Phase = PhaseComplete
	}
	return ev, nil
}

// Restart runs the same selection again with a fresh shuffle.
func Restart(state *SessionState, items []vocab.Item, selection vocab.Selection, shuffler Shuffler) error {
	if state.Phase != PhaseComplete {
		return ErrNotComplete
	}
	return Start(state, items, selection, shuffler)
}

// RetryMissed starts a session over exactly the cards missed in the session
// that just finished.
func RetryMissed(state *SessionState, shuffler Shuffler) error {
	if state.Phase != PhaseComplete {
		return ErrNotComplete
	}
	if len(state.Missed) == 0 {
		return ErrNothingMissed
	}
	deck := make([]vocab.Item, len(state.Missed))
	copy(deck, state.Missed)
	shuffle(deck, shuffler)
	begin(state, deck, true)
	return nil
}

// CurrentCard returns the card under review, or false outside a running deck.
func CurrentCard(state *SessionState) (vocab.Item, bool) {
	if state.Phase != PhaseReviewing || state.Position >= len(state.Deck) {
		return vocab.Item{}, false
	}
	return state.Deck[state.Position], true
}

// Abandon drops the session without touching the answer log.
func Abandon(state *SessionState) {
	*state = SessionState{Phase: PhaseIdle}
}

func begin(state *SessionState, deck []vocab.Item, retry bool) {
	*state = SessionState{
		Phase: PhaseReviewing,
		Deck:  deck,
		Retry: retry,
	}
}

func shuffle(deck []vocab.Item, shuffler Shuffler) {
	if shuffler == nil {
		shuffler = RandShuffler{}
	}
	shuffler.Shuffle(deck)
}
