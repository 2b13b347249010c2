// Package study owns the application state of a single learner: the
// vocabulary collection, the answer log, the lesson selection and the
// practice session. Every operation runs under one lock.
package study

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lexis/internal/importer"
	"github.com/abhisek/lexis/internal/logger"
	"github.com/abhisek/lexis/internal/mastery"
	"github.com/abhisek/lexis/internal/session"
	"github.com/abhisek/lexis/internal/vocab"
)

// Storage keys of the two persisted collections.
const (
	KeyVocabulary = "lexis-vocabularies"
	KeyResults    = "lexis-practice-results"
)

// KV is the persistence transport for the two collections.
type KV interface {
	Load(ctx context.Context, key string) (value string, ok bool, err error)
	Save(ctx context.Context, key, value string) error
	SaveAll(ctx context.Context, entries map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// ImportReport describes a committed import.
type ImportReport struct {
	Imported      int
	Warnings      []importer.Warning
	HeaderSkipped bool
	Lessons       []int
}

// CardView is what the practice screen renders for the current card.
type CardView struct {
	Headword    string
	Forms       string
	Translation string
	Lesson      int
	Flipped     bool
	Position    int
	Total       int
	Retry       bool
}

// Controller serializes all state changes for one learner.
type Controller struct {
	mu sync.Mutex

	kv       KV
	log      *logger.Logger
	shuffler session.Shuffler
	now      func() time.Time
	newID    func() string

	items     []vocab.Item
	results   []vocab.AnswerEvent
	selection vocab.Selection
	session   *session.SessionState
}

// Option configures a Controller.
type Option func(*Controller)

// WithShuffler sets the deck shuffler.
func WithShuffler(s session.Shuffler) Option {
	return func(c *Controller) { c.shuffler = s }
}

// WithClock sets the time source for items and answer events.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDFunc sets the id generator for items and answer events.
func WithIDFunc(newID func() string) Option {
	return func(c *Controller) { c.newID = newID }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// New loads both collections from kv. Missing keys start empty; unreadable
// data is an error.
func New(ctx context.Context, kv KV, opts ...Option) (*Controller, error) {
	c := &Controller{
		kv:        kv,
		log:       logger.Nop(),
		shuffler:  session.RandShuffler{},
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
		selection: vocab.NewSelection(),
		session:   session.NewSessionState(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := load(ctx, kv, KeyVocabulary, &c.items); err != nil {
		return nil, err
	}
	if err := load(ctx, kv, KeyResults, &c.results); err != nil {
		return nil, err
	}

	c.log.Debug("state loaded", "items", len(c.items), "results", len(c.results))
	return c, nil
}

// Import parses text and, when at least one row is valid, replaces the
// vocabulary, clears the answer log and the selection in one write. When no
// row is valid the state is left as it was and importer.ErrNoValidRows is
// returned. A failed write also leaves the state untouched.
func (c *Controller) Import(ctx context.Context, text string) (*ImportReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := importer.Parse(text, importer.WithClock(c.now), importer.WithIDFunc(c.newID))
	for _, w := range res.Warnings {
		c.log.Warn("skipped row", "line", w.Line, "reason", string(w.Reason), "fields", w.Fields, "raw", w.Raw)
	}
	if err := res.Err(); err != nil {
		c.log.Warn("import rejected", "lines", res.Lines, "warnings", len(res.Warnings))
		return nil, err
	}

	itemsJSON, err := json.Marshal(res.Items)
	if err != nil {
		return nil, fmt.Errorf("encode vocabulary: %w", err)
	}
	err = c.kv.SaveAll(ctx, map[string]string{
		KeyVocabulary: string(itemsJSON),
		KeyResults:    "[]",
	})
	if err != nil {
		c.log.Error("import not persisted", "error", err)
		return nil, fmt.Errorf("persist import: %w", err)
	}

	c.items = res.Items
	c.results = nil
	c.selection = vocab.NewSelection()

	lessons := vocab.Lessons(c.items)
	c.log.Info("import committed",
		"items", len(c.items),
		"warnings", len(res.Warnings),
		"lessons", len(lessons),
	)
	return &ImportReport{
		Imported:      len(res.Items),
		Warnings:      res.Warnings,
		HeaderSkipped: res.HeaderSkipped,
		Lessons:       lessons,
	}, nil
}

// Vocabulary returns a copy of the vocabulary collection.
func (c *Controller) Vocabulary() []vocab.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]vocab.Item(nil), c.items...)
}

// Results returns a copy of the answer log.
func (c *Controller) Results() []vocab.AnswerEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]vocab.AnswerEvent(nil), c.results...)
}

// Lessons returns the distinct lesson numbers, ascending.
func (c *Controller) Lessons() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return vocab.Lessons(c.items)
}

// LessonCounts returns the number of items per lesson.
func (c *Controller) LessonCounts() map[int]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return vocab.CountByLesson(c.items)
}

// Selection returns a copy of the selected lessons.
func (c *Controller) Selection() vocab.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Clone()
}

// ToggleLesson flips one lesson in the selection and reports whether it is
// selected afterwards.
func (c *Controller) ToggleLesson(lesson int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Toggle(lesson)
}

// SelectAll selects every lesson present in the vocabulary.
func (c *Controller) SelectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection = vocab.NewSelection(vocab.Lessons(c.items)...)
}

// ClearSelection deselects every lesson.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection = vocab.NewSelection()
}

// Stats aggregates the answer log against the current vocabulary.
func (c *Controller) Stats() mastery.Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	return mastery.Aggregate(c.items, c.results)
}

// StartSession builds a deck from the selection. It returns
// session.ErrNoSelection or session.ErrEmptyDeck without changing the
// session.
func (c *Controller) StartSession() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := session.Start(c.session, c.items, c.selection, c.shuffler); err != nil {
		c.log.Info("session not started", "reason", err.Error(), "lessons", c.selection.Sorted())
		return err
	}
	c.log.Info("session started", "cards", len(c.session.Deck), "lessons", c.selection.Sorted())
	return nil
}

// Flip reveals the current card's answer.
func (c *Controller) Flip() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return session.Flip(c.session)
}

// Answer records the verdict for the current card, appends the event to the
// answer log and persists the log.
func (c *Controller) Answer(ctx context.Context, known bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ev, err := session.Answer(c.session, known, c.now(), c.newID)
	if err != nil {
		return err
	}
	c.results = append(c.results, ev)

	if c.session.Phase == session.PhaseComplete {
		c.log.Info("session complete",
			"known", c.session.Known,
			"unknown", c.session.Unknown,
			"retry", c.session.Retry,
		)
	}

	if err := c.saveResults(ctx); err != nil {
		c.log.Error("answer not persisted", "item", ev.ItemID, "error", err)
		return err
	}
	return nil
}

// Restart runs the current selection again after a completed session.
func (c *Controller) Restart() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := session.Restart(c.session, c.items, c.selection, c.shuffler); err != nil {
		return err
	}
	c.log.Info("session restarted", "cards", len(c.session.Deck))
	return nil
}

// RetryMissed starts a session over the cards missed in the last one.
func (c *Controller) RetryMissed() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := session.RetryMissed(c.session, c.shuffler); err != nil {
		return err
	}
	c.log.Info("retrying missed cards", "cards", len(c.session.Deck))
	return nil
}

// AbandonSession drops the running session. Answers already given stay in
// the log.
func (c *Controller) AbandonSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	session.Abandon(c.session)
}

// Phase returns the session phase.
func (c *Controller) Phase() session.SessionPhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Phase
}

// Card returns the card under review.
func (c *Controller) Card() (CardView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := session.CurrentCard(c.session)
	if !ok {
		return CardView{}, false
	}
	p := session.CurrentProgress(c.session)
	return CardView{
		Headword:    it.Headword,
		Forms:       it.FormsText(),
		Translation: it.Translation,
		Lesson:      it.Lesson,
		Flipped:     c.session.Flipped,
		Position:    p.Current,
		Total:       p.Total,
		Retry:       c.session.Retry,
	}, true
}

// Progress returns the position within the running deck.
func (c *Controller) Progress() session.Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return session.CurrentProgress(c.session)
}

// Summary returns the tally of the finished session, or nil while a deck is
// still running or none was started.
func (c *Controller) Summary() *session.SessionSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.Phase != session.PhaseComplete {
		return nil
	}
	return session.BuildSummary(c.session)
}

// Reset wipes the vocabulary, the answer log, the selection and any session.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// One statement removes both keys; absent keys load as empty.
	if err := c.kv.Delete(ctx, KeyVocabulary, KeyResults); err != nil {
		return fmt.Errorf("persist reset: %w", err)
	}
	c.items = nil
	c.results = nil
	c.selection = vocab.NewSelection()
	session.Abandon(c.session)
	c.log.Info("state reset")
	return nil
}

func (c *Controller) saveResults(ctx context.Context) error {
	data, err := json.Marshal(c.results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := c.kv.Save(ctx, KeyResults, string(data)); err != nil {
		return fmt.Errorf("persist results: %w", err)
	}
	return nil
}

// ErrCorruptData wraps decode failures of a stored collection.
var ErrCorruptData = errors.New("stored data is unreadable")

func load(ctx context.Context, kv KV, key string, v any) error {
	raw, ok, err := kv.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptData, key, err)
	}
	return nil
}
