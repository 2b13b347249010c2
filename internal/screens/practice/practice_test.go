package practice

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexis/internal/hints"
	"github.com/abhisek/lexis/internal/llm"
	"github.com/abhisek/lexis/internal/router"
	"github.com/abhisek/lexis/internal/screens/results"
	"github.com/abhisek/lexis/internal/session"
	"github.com/abhisek/lexis/internal/study"
	"github.com/abhisek/lexis/internal/study/studytest"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// startedController returns a controller reviewing lessons 1 and 2.
func startedController(t *testing.T) *study.Controller {
	t.Helper()
	ctrl := studytest.NewController(t, studytest.Words)
	ctrl.ToggleLesson(1)
	ctrl.ToggleLesson(2)
	if err := ctrl.StartSession(); err != nil {
		t.Fatalf("start session: %v", err)
	}
	return ctrl
}

func TestPracticeScreen_FlipThenAnswer(t *testing.T) {
	ctrl := startedController(t)
	s := New(ctrl, nil)

	if !strings.Contains(s.View(80, 24), "amare") {
		t.Error("expected first headword in view")
	}

	// Answers are ignored until the card is flipped.
	s.Update(keyPress('k'))
	if ctrl.Progress().Done != 0 {
		t.Fatal("answer recorded before flip")
	}

	s.Update(keyPress(' '))
	card, _ := ctrl.Card()
	if !card.Flipped {
		t.Fatal("expected card to be flipped")
	}
	if !strings.Contains(s.View(80, 24), "lieben") {
		t.Error("expected translation after flip")
	}

	_, cmd := s.Update(keyPress('u'))
	if cmd != nil {
		t.Error("expected no command before the deck is done")
	}
	if ctrl.Progress().Done != 1 {
		t.Errorf("done = %d, want 1", ctrl.Progress().Done)
	}
	if got := len(ctrl.Results()); got != 1 || ctrl.Results()[0].Known {
		t.Errorf("expected one unknown answer, got %+v", ctrl.Results())
	}
}

func TestPracticeScreen_CompletionShowsResults(t *testing.T) {
	ctrl := startedController(t)
	s := New(ctrl, nil)

	var cmd tea.Cmd
	for range 4 {
		s.Update(specialKey(tea.KeyEnter))
		_, cmd = s.Update(specialKey(tea.KeyRight))
	}
	if ctrl.Phase() != session.PhaseComplete {
		t.Fatalf("phase = %v, want complete", ctrl.Phase())
	}
	if cmd == nil {
		t.Fatal("expected replace command on completion")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := msg.Screen.(*results.ResultsScreen); !ok {
		t.Errorf("replaced with %T, want *results.ResultsScreen", msg.Screen)
	}
}

func TestPracticeScreen_CloseAbandonsSession(t *testing.T) {
	ctrl := startedController(t)
	s := New(ctrl, nil)

	s.Close()
	if ctrl.Phase() != session.PhaseIdle {
		t.Errorf("phase = %v, want idle", ctrl.Phase())
	}
	if !strings.Contains(s.View(80, 24), "No session in progress.") {
		t.Error("expected idle message")
	}
}

func TestPracticeScreen_HintKeyNeedsFlip(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := hints.NewService(mock, hints.DefaultConfig(), nil)
	s := New(startedController(t), svc)

	s.Update(keyPress('h'))
	if s.hintLoading {
		t.Error("hint requested before flip")
	}
	if mock.CallCount() != 0 {
		t.Error("provider called before flip")
	}
}

func TestPracticeScreen_HintPolling(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"mnemonic":"Amare sounds like amour.","note":"amour"}`),
	})
	svc := hints.NewService(mock, hints.DefaultConfig(), nil)
	s := New(startedController(t), svc)

	s.Update(keyPress(' '))
	_, cmd := s.Update(keyPress('h'))
	if cmd == nil {
		t.Fatal("expected tick command")
	}
	if !s.hintLoading {
		t.Fatal("expected loading state")
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.hintLoading && time.Now().Before(deadline) {
		s.Update(hintTickMsg(time.Now()))
		time.Sleep(5 * time.Millisecond)
	}
	if s.hint == nil {
		t.Fatalf("expected hint, err = %v", s.hintErr)
	}
	if s.hint.Mnemonic != "Amare sounds like amour." {
		t.Errorf("Mnemonic = %q", s.hint.Mnemonic)
	}
	if !strings.Contains(s.View(100, 30), "Amare sounds like amour.") {
		t.Error("expected mnemonic in view")
	}

	// Answering moves on and drops the hint.
	s.Update(keyPress('k'))
	if s.hint != nil {
		t.Error("expected hint cleared after answer")
	}
}

func TestPracticeScreen_HintPollingStopsWhenCancelled(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Gate = make(chan struct{})
	t.Cleanup(func() { close(mock.Gate) })
	svc := hints.NewService(mock, hints.DefaultConfig(), nil)
	s := New(startedController(t), svc)

	s.Update(keyPress(' '))
	s.Update(keyPress('h'))
	if !s.hintLoading {
		t.Fatal("expected loading state")
	}

	svc.Cancel()
	_, cmd := s.Update(hintTickMsg(time.Now()))
	if cmd != nil {
		t.Error("expected polling to stop")
	}
	if s.hintLoading || s.hint != nil || s.hintErr != nil {
		t.Error("expected hint state cleared")
	}
}

func TestPracticeScreen_HintFailure(t *testing.T) {
	svc := hints.NewService(llm.NewMockProvider(), hints.DefaultConfig(), nil)
	s := New(startedController(t), svc)

	s.Update(keyPress(' '))
	s.Update(keyPress('h'))

	deadline := time.Now().Add(2 * time.Second)
	for s.hintLoading && time.Now().Before(deadline) {
		s.Update(hintTickMsg(time.Now()))
		time.Sleep(5 * time.Millisecond)
	}
	if s.hintErr == nil {
		t.Fatal("expected hint error")
	}
	if !strings.Contains(s.View(100, 30), "No memory aid available right now.") {
		t.Error("expected failure message")
	}
}

func TestPracticeScreen_KeyHints(t *testing.T) {
	ctrl := startedController(t)

	without := New(ctrl, nil)
	with := New(ctrl, hints.NewService(llm.NewMockProvider(), hints.DefaultConfig(), nil))
	if len(without.KeyHints()) != 2 {
		t.Errorf("unflipped hints = %d, want 2", len(without.KeyHints()))
	}

	without.Update(keyPress(' '))
	if len(without.KeyHints()) != 3 {
		t.Errorf("flipped hints without service = %d, want 3", len(without.KeyHints()))
	}
	if len(with.KeyHints()) != 4 {
		t.Errorf("flipped hints with service = %d, want 4", len(with.KeyHints()))
	}
}
