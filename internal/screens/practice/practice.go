// Package practice is the flashcard review screen.
package practice

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexis/internal/hints"
	"github.com/abhisek/lexis/internal/router"
	"github.com/abhisek/lexis/internal/screen"
	"github.com/abhisek/lexis/internal/screens/results"
	"github.com/abhisek/lexis/internal/session"
	"github.com/abhisek/lexis/internal/study"
	"github.com/abhisek/lexis/internal/ui/layout"
)

const hintPollInterval = 150 * time.Millisecond

// PracticeScreen shows one card at a time from the running session.
type PracticeScreen struct {
	ctrl  *study.Controller
	hints *hints.Service

	hint        *hints.Hint
	hintErr     error
	hintLoading bool
	notice      string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.Closer = (*PracticeScreen)(nil)

// New creates a PracticeScreen for the session already started on ctrl.
// hintSvc may be nil.
func New(ctrl *study.Controller, hintSvc *hints.Service) *PracticeScreen {
	return &PracticeScreen{ctrl: ctrl, hints: hintSvc}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return nil
}

func (s *PracticeScreen) Title() string {
	if card, ok := s.ctrl.Card(); ok && card.Retry {
		return "Practice · missed cards"
	}
	return "Practice"
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	card, ok := s.ctrl.Card()
	if !ok {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if !card.Flipped {
		return []layout.KeyHint{
			{Key: "Space", Description: "Flip"},
			{Key: "Esc", Description: "End session"},
		}
	}
	keys := []layout.KeyHint{
		{Key: "k/→", Description: "Known"},
		{Key: "u/←", Description: "Unknown"},
	}
	if s.hints != nil {
		keys = append(keys, layout.KeyHint{Key: "h", Description: "Memory aid"})
	}
	return append(keys, layout.KeyHint{Key: "Esc", Description: "End session"})
}

// Close abandons an unfinished session when the screen is left.
func (s *PracticeScreen) Close() {
	if s.hints != nil {
		s.hints.Cancel()
	}
	if s.ctrl.Phase() == session.PhaseReviewing {
		s.ctrl.AbandonSession()
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case hintTickMsg:
		return s, s.pollHint()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	card, ok := s.ctrl.Card()
	if !ok {
		return s, nil
	}

	if !card.Flipped {
		switch msg.String() {
		case "space", " ", "enter":
			if err := s.ctrl.Flip(); err != nil {
				s.notice = err.Error()
			}
		}
		return s, nil
	}

	switch msg.String() {
	case "k", "right":
		return s, s.answer(true)
	case "u", "left":
		return s, s.answer(false)
	case "h":
		return s, s.requestHint(card)
	}
	return s, nil
}

// answer records the verdict and moves to the results once the deck is done.
func (s *PracticeScreen) answer(known bool) tea.Cmd {
	s.clearHint()
	s.notice = ""

	err := s.ctrl.Answer(context.Background(), known)
	if err != nil && !errors.Is(err, session.ErrNotReviewing) && !errors.Is(err, session.ErrNotFlipped) {
		// The answer is kept in memory; only the write failed.
		s.notice = "Answer not saved: " + err.Error()
	}

	if s.ctrl.Phase() != session.PhaseComplete {
		return nil
	}
	sum := s.ctrl.Summary()
	ctrl, hintSvc := s.ctrl, s.hints
	next := results.New(ctrl, sum, func() screen.Screen { return New(ctrl, hintSvc) })
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *PracticeScreen) requestHint(card study.CardView) tea.Cmd {
	if s.hints == nil || s.hintLoading || s.hint != nil {
		return nil
	}
	s.hintErr = nil
	s.hintLoading = true
	s.hints.RequestHint(context.Background(), hints.Input{
		Headword:    card.Headword,
		Forms:       card.Forms,
		Translation: card.Translation,
		Lesson:      card.Lesson,
	})
	return hintTick()
}

func (s *PracticeScreen) pollHint() tea.Cmd {
	if s.hints == nil || !s.hintLoading {
		return nil
	}
	// Read Pending before consuming: a request that finishes in between is
	// then picked up on the next tick instead of being lost.
	pending := s.hints.Pending()
	res, ok := s.hints.ConsumeHint()
	if !ok {
		if !pending {
			// Cancelled elsewhere; nothing will arrive.
			s.hintLoading = false
			return nil
		}
		return hintTick()
	}
	s.hintLoading = false
	s.hint = res.Hint
	s.hintErr = res.Err
	return nil
}

func (s *PracticeScreen) clearHint() {
	if s.hints != nil && s.hintLoading {
		s.hints.Cancel()
	}
	s.hint = nil
	s.hintErr = nil
	s.hintLoading = false
}

func hintTick() tea.Cmd {
	return tea.Tick(hintPollInterval, func(t time.Time) tea.Msg {
		return hintTickMsg(t)
	})
}
