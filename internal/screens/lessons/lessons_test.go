package lessons

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexis/internal/router"
	"github.com/abhisek/lexis/internal/screens/practice"
	"github.com/abhisek/lexis/internal/session"
	"github.com/abhisek/lexis/internal/study/studytest"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestLessonScreen_ToggleMovesWithCursor(t *testing.T) {
	ctrl := studytest.NewController(t, studytest.Words)
	s := New(ctrl, nil)

	s.Update(keyPress(' '))
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	s.Update(keyPress(' '))

	sel := ctrl.Selection()
	if !sel.Has(1) || sel.Has(2) || !sel.Has(3) {
		t.Errorf("selection = %v, want lessons 1 and 3", sel.Sorted())
	}

	s.Update(keyPress(' '))
	if ctrl.Selection().Has(3) {
		t.Error("second toggle should deselect lesson 3")
	}
}

func TestLessonScreen_CursorStaysInRange(t *testing.T) {
	s := New(studytest.NewController(t, studytest.Words), nil)
	s.Update(specialKey(tea.KeyUp))
	if s.cursor != 0 {
		t.Errorf("cursor = %d, want 0", s.cursor)
	}
	for range 10 {
		s.Update(specialKey(tea.KeyDown))
	}
	if s.cursor != 2 {
		t.Errorf("cursor = %d, want 2", s.cursor)
	}
}

func TestLessonScreen_SelectAllToggles(t *testing.T) {
	ctrl := studytest.NewController(t, studytest.Words)
	s := New(ctrl, nil)

	s.Update(keyPress('a'))
	if len(ctrl.Selection()) != 3 {
		t.Fatalf("expected all 3 lessons selected, got %v", ctrl.Selection().Sorted())
	}
	s.Update(keyPress('a'))
	if len(ctrl.Selection()) != 0 {
		t.Errorf("expected selection cleared, got %v", ctrl.Selection().Sorted())
	}
}

func TestLessonScreen_StartWithoutSelection(t *testing.T) {
	ctrl := studytest.NewController(t, studytest.Words)
	s := New(ctrl, nil)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command without a selection")
	}
	if s.notice != "Select at least one lesson." {
		t.Errorf("notice = %q", s.notice)
	}
	if ctrl.Phase() != session.PhaseIdle {
		t.Errorf("phase = %v, want idle", ctrl.Phase())
	}
	if !strings.Contains(s.View(80, 20), "Select at least one lesson.") {
		t.Error("expected notice in view")
	}
}

func TestLessonScreen_StartPushesPractice(t *testing.T) {
	ctrl := studytest.NewController(t, studytest.Words)
	s := New(ctrl, nil)

	s.Update(keyPress(' '))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*practice.PracticeScreen); !ok {
		t.Errorf("pushed %T, want *practice.PracticeScreen", push.Screen)
	}
	if got := ctrl.Progress().Total; got != 2 {
		t.Errorf("deck size = %d, want 2", got)
	}
}

func TestLessonScreen_ViewEmptyVocabulary(t *testing.T) {
	s := New(studytest.NewController(t, ""), nil)
	if !strings.Contains(s.View(80, 20), "No vocabulary yet.") {
		t.Error("expected empty vocabulary message")
	}
}

func TestLessonScreen_ViewListsLessons(t *testing.T) {
	s := New(studytest.NewController(t, studytest.Words), nil)
	s.Update(keyPress(' '))
	view := s.View(80, 20)
	for _, want := range []string{"Lesson 1", "Lesson 2", "Lesson 3", "[x]", "1 lessons, 2 words selected"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
