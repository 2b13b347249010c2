package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/abhisek/lexis/internal/vocab"
)

var now = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func testItems() []vocab.Item {
	return []vocab.Item{
		{ID: "a", Headword: "amare", Translation: "lieben", Lesson: 1},
		{ID: "b", Headword: "puella", Translation: "Mädchen", Lesson: 1},
		{ID: "c", Headword: "rex", Translation: "König", Lesson: 2},
		{ID: "d", Headword: "lex", Translation: "Gesetz", Lesson: 2},
		{ID: "e", Headword: "urbs", Translation: "Stadt", Lesson: 3},
	}
}

func idSeq() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("ev-%d", n)
	}
}

// reverse is a deterministic, non-identity permutation.
var reverse = ShufflerFunc(func(deck []vocab.Item) { slices.Reverse(deck) })

func answerAll(t *testing.T, state *SessionState, verdicts ...bool) []vocab.AnswerEvent {
	t.Helper()
	newID := idSeq()
	var events []vocab.AnswerEvent
	for _, known := range verdicts {
		if err := Flip(state); err != nil {
			t.Fatalf("Flip: %v", err)
		}
		ev, err := Answer(state, known, now, newID)
		if err != nil {
			t.Fatalf("Answer: %v", err)
		}
		events = append(events, ev)
	}
	return events
}

func deckIDs(deck []vocab.Item) []string {
	ids := make([]string, len(deck))
	for i, it := range deck {
		ids[i] = it.ID
	}
	return ids
}

func TestStart_DeckMatchesSelection(t *testing.T) {
	state := NewSessionState()
	err := Start(state, testItems(), vocab.NewSelection(1, 3), NoShuffle)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if state.Phase != PhaseReviewing {
		t.Errorf("Phase = %s, want reviewing", state.Phase)
	}
	if got := deckIDs(state.Deck); !slices.Equal(got, []string{"a", "b", "e"}) {
		t.Errorf("deck = %v, want [a b e]", got)
	}
	if state.Position != 0 || state.Flipped {
		t.Errorf("Position/Flipped = %d/%v, want 0/false", state.Position, state.Flipped)
	}
}

func TestStart_UsesShuffler(t *testing.T) {
	state := NewSessionState()
	if err := Start(state, testItems(), vocab.NewSelection(1, 2), reverse); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := deckIDs(state.Deck); !slices.Equal(got, []string{"d", "c", "b", "a"}) {
		t.Errorf("deck = %v, want [d c b a]", got)
	}
}

func TestStart_DoesNotAliasCollection(t *testing.T) {
	items := testItems()
	state := NewSessionState()
	if err := Start(state, items, vocab.NewSelection(1, 2, 3), reverse); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if items[0].ID != "a" {
		t.Errorf("collection reordered: items[0] = %s", items[0].ID)
	}
}

func TestStart_NoSelection(t *testing.T) {
	state := NewSessionState()
	err := Start(state, testItems(), vocab.NewSelection(), NoShuffle)
	if !errors.Is(err, ErrNoSelection) {
		t.Errorf("err = %v, want ErrNoSelection", err)
	}
	if state.Phase != PhaseIdle {
		t.Errorf("Phase = %s, want idle", state.Phase)
	}
}

func TestStart_EmptyDeckStaysIdle(t *testing.T) {
	state := NewSessionState()
	err := Start(state, testItems(), vocab.NewSelection(9), NoShuffle)
	if !errors.Is(err, ErrEmptyDeck) {
		t.Errorf("err = %v, want ErrEmptyDeck", err)
	}
	if state.Phase != PhaseIdle || len(state.Deck) != 0 {
		t.Errorf("state changed: phase %s, deck %d", state.Phase, len(state.Deck))
	}
}

func TestAnswer_RequiresFlip(t *testing.T) {
	state := NewSessionState()
	_ = Start(state, testItems(), vocab.NewSelection(1), NoShuffle)

	_, err := Answer(state, true, now, idSeq())
	if !errors.Is(err, ErrNotFlipped) {
		t.Errorf("err = %v, want ErrNotFlipped", err)
	}
	if state.Position != 0 || state.Known != 0 {
		t.Errorf("state advanced without a flip")
	}
}

func TestAnswer_OutsideSession(t *testing.T) {
	state := NewSessionState()
	if _, err := Answer(state, true, now, idSeq()); !errors.Is(err, ErrNotReviewing) {
		t.Errorf("Answer err = %v, want ErrNotReviewing", err)
	}
	if err := Flip(state); !errors.Is(err, ErrNotReviewing) {
		t.Errorf("Flip err = %v, want ErrNotReviewing", err)
	}
}

func TestFlip_IsOneWay(t *testing.T) {
	state := NewSessionState()
	_ = Start(state, testItems(), vocab.NewSelection(1), NoShuffle)
	_ = Flip(state)
	_ = Flip(state)
	if !state.Flipped {
		t.Error("second flip must not hide the answer")
	}
}

func TestAnswer_ProducesEventAndAdvances(t *testing.T) {
	state := NewSessionState()
	_ = Start(state, testItems(), vocab.NewSelection(1), NoShuffle)
	_ = Flip(state)

	ev, err := Answer(state, false, now, func() string { return "ev-x" })
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if ev.ID != "ev-x" || ev.ItemID != "a" || ev.Known || !ev.Timestamp.Equal(now) {
		t.Errorf("event = %+v", ev)
	}
	if state.Position != 1 || state.Flipped {
		t.Errorf("Position/Flipped = %d/%v, want 1/false", state.Position, state.Flipped)
	}
	if state.Unknown != 1 || len(state.Missed) != 1 || state.Missed[0].ID != "a" {
		t.Errorf("tally = %d unknown, missed %v", state.Unknown, deckIDs(state.Missed))
	}
}

func TestSession_CompletesWithFullTally(t *testing.T) {
	state := NewSessionState()
	_ = Start(state, testItems(), vocab.NewSelection(1, 2, 3), NoShuffle)

	events := answerAll(t, state, true, false, true, false, true)

	if state.Phase != PhaseComplete {
		t.Fatalf("Phase = %s, want complete", state.Phase)
	}
	if state.Known+state.Unknown != len(state.Deck) {
		t.Errorf("known+unknown = %d, want %d", state.Known+state.Unknown, len(state.Deck))
	}
	if state.Position > len(state.Deck) {
		t.Errorf("Position %d exceeds deck %d", state.Position, len(state.Deck))
	}
	if len(events) != 5 {
		t.Errorf("len(events) = %d, want 5", len(events))
	}
	if got := deckIDs(state.Missed); !slices.Equal(got, []string{"b", "d"}) {
		t.Errorf("missed = %v, want [b d]", got)
	}
	if _, ok := CurrentCard(state); ok {
		t.Error("CurrentCard should report no card once complete")
	}

	// Further answers are rejected and the position stays put.
	if _, err := Answer(state, true, now, idSeq()); !errors.Is(err, ErrNotReviewing) {
		t.Errorf("err = %v, want ErrNotReviewing", err)
	}
	if state.Position != len(state.Deck) {
		t.Errorf("Position = %d, want %d", state.Position, len(state.Deck))
	}
}

func TestRetryMissed_DeckIsMissedSet(t *testing.T) {
	state := NewSessionState()
	_ = Start(state, testItems(), vocab.NewSelection(1, 2, 3), NoShuffle)
	answerAll(t, state, false, true, false, true, false)

	prior := BuildSummary(state)
	if err := RetryMissed(state, reverse); err != nil {
		t.Fatalf("RetryMissed: %v", err)
	}
	if !state.Retry || state.Phase != PhaseReviewing {
		t.Errorf("Retry/Phase = %v/%s", state.Retry, state.Phase)
	}
	if got := deckIDs(state.Deck); !slices.Equal(got, []string{"e", "c", "a"}) {
		t.Errorf("retry deck = %v, want [e c a]", got)
	}
	if state.Known != 0 || state.Unknown != 0 || len(state.Missed) != 0 {
		t.Errorf("tally not reset: %d/%d/%d", state.Known, state.Unknown, len(state.Missed))
	}

	answerAll(t, state, false, false, false)

	if got := deckIDs(prior.Missed); !slices.Equal(got, []string{"a", "c", "e"}) {
		t.Errorf("prior missed changed to %v", got)
	}
	if len(state.Missed) != 3 {
		t.Errorf("retry missed = %d, want 3", len(state.Missed))
	}
}

func TestRetryMissed_NothingMissed(t *testing.T) {
	state := NewSessionState()
	_ = Start(state, testItems(), vocab.NewSelection(2), NoShuffle)
	answerAll(t, state, true, true)

	if err := RetryMissed(state, NoShuffle); !errors.Is(err, ErrNothingMissed) {
		t.Errorf("err = %v, want ErrNothingMissed", err)
	}
	if state.Phase != PhaseComplete {
		t.Errorf("Phase = %s, want complete", state.Phase)
	}
}

func TestRetryMissed_BeforeComplete(t *testing.T) {
	state := NewSessionState()
	_ = Start(state, testItems(), vocab.NewSelection(1), NoShuffle)
	if err := RetryMissed(state, NoShuffle); !errors.Is(err, ErrNotComplete) {
		t.Errorf("err = %v, want ErrNotComplete", err)
	}
}

func TestRestart_RebuildsFromSelection(t *testing.T) {
	items := testItems()
	state := NewSessionState()
	_ = Start(state, items, vocab.NewSelection(2), NoShuffle)
	answerAll(t, state, false, false)

	if err := Restart(state, items, vocab.NewSelection(2), reverse); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if got := deckIDs(state.Deck); !slices.Equal(got, []string{"d", "c"}) {
		t.Errorf("deck = %v, want [d c]", got)
	}
	if state.Unknown != 0 || len(state.Missed) != 0 || state.Retry {
		t.Error("restart must reset the tally")
	}
}

func TestRestart_EmptySelection(t *testing.T) {
	state := NewSessionState()
	_ = Start(state, testItems(), vocab.NewSelection(3), NoShuffle)
	answerAll(t, state, true)

	err := Restart(state, testItems(), vocab.NewSelection(), NoShuffle)
	if !errors.Is(err, ErrNoSelection) {
		t.Errorf("err = %v, want ErrNoSelection", err)
	}
	if state.Phase != PhaseComplete {
		t.Errorf("Phase = %s, want complete", state.Phase)
	}
}

func TestCurrentProgress(t *testing.T) {
	state := NewSessionState()
	_ = Start(state, testItems(), vocab.NewSelection(1, 2), NoShuffle)

	p := CurrentProgress(state)
	if p.Current != 1 || p.Total != 4 || p.Done != 0 {
		t.Errorf("progress = %+v, want 1/4 done 0", p)
	}

	answerAll(t, state, true, true)
	p = CurrentProgress(state)
	if p.Current != 3 || p.Fraction() != 0.5 {
		t.Errorf("progress = %+v fraction %f, want current 3 fraction 0.5", p, p.Fraction())
	}

	answerAll(t, state, true, true)
	p = CurrentProgress(state)
	if p.Current != 4 || p.Done != 4 || p.Fraction() != 1 {
		t.Errorf("progress = %+v, want 4/4 done", p)
	}
}

func TestBuildSummary(t *testing.T) {
	state := NewSessionState()
	_ = Start(state, testItems(), vocab.NewSelection(1, 2), NoShuffle)
	answerAll(t, state, true, false, true, true)

	s := BuildSummary(state)
	if s.DeckSize != 4 || s.Known != 3 || s.Unknown != 1 {
		t.Errorf("summary = %+v", s)
	}
	if s.Accuracy != 0.75 {
		t.Errorf("Accuracy = %f, want 0.75", s.Accuracy)
	}
}

func TestAbandon(t *testing.T) {
	state := NewSessionState()
	_ = Start(state, testItems(), vocab.NewSelection(1), NoShuffle)
	Abandon(state)
	if state.Phase != PhaseIdle || state.Deck != nil {
		t.Errorf("state after abandon = %+v", state)
	}
}

func TestRandShuffler_IsPermutation(t *testing.T) {
	deck := testItems()
	RandShuffler{Rand: rand.New(rand.NewPCG(1, 2))}.Shuffle(deck)

	got := deckIDs(deck)
	slices.Sort(got)
	if !slices.Equal(got, []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("shuffled ids = %v, want a permutation of a..e", got)
	}
}
