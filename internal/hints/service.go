// Package hints generates memory aids for flashcards through an LLM
// provider, either on demand or in the background while a card is shown.
package hints

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/abhisek/lexis/internal/llm"
	"github.com/abhisek/lexis/internal/logger"
)

// ErrEmptyHeadword is returned for an input without a headword.
var ErrEmptyHeadword = errors.New("hints: headword is required")

// Service generates memory aids. At most one background request is live;
// a new request cancels and replaces the previous one.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	pending *Result
	ready   bool
}

// NewService creates a hint service. log may be nil.
func NewService(provider llm.Provider, cfg Config, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{provider: provider, cfg: cfg, log: log}
}

// RequestHint starts async generation for input.
func (s *Service) RequestHint(ctx context.Context, input Input) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	seq := s.seq
	s.cancel = cancel
	s.pending = nil
	s.ready = false
	s.mu.Unlock()

	go func() {
		defer cancel()
		hint, err := s.Generate(ctx, input)

		s.mu.Lock()
		defer s.mu.Unlock()
		if seq != s.seq {
			return
		}
		s.pending = &Result{Hint: hint, Err: err}
		s.ready = true
		s.cancel = nil
	}()
}

// ConsumeHint returns the finished request, if any, and clears the slot.
func (s *Service) ConsumeHint() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return Result{}, false
	}
	res := *s.pending
	s.pending = nil
	s.ready = false
	return res, true
}

// Pending reports whether a background request is in flight.
func (s *Service) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Cancel drops the in-flight request and any unconsumed result.
func (s *Service) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
	s.pending = nil
	s.ready = false
}

type memoryAidOutput struct {
	Mnemonic string `json:"mnemonic"`
	Note     string `json:"note"`
}

// Generate produces a memory aid synchronously.
func (s *Service) Generate(ctx context.Context, input Input) (*Hint, error) {
	if strings.TrimSpace(input.Headword) == "" {
		return nil, ErrEmptyHeadword
	}
	if llm.PurposeFrom(ctx) == llm.PurposeUnknown {
		ctx = llm.WithPurpose(ctx, llm.PurposeHint)
	}

	req := llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(input)),
		Schema:      MemoryAidSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Warn("hint generation failed", "headword", input.Headword, "error", err)
		}
		return nil, fmt.Errorf("hint generation: %w", err)
	}

	var out memoryAidOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse hint response: %w", err)
	}

	s.log.Debug("hint generated", "headword", input.Headword, "model", resp.Model)
	return &Hint{
		Headword: input.Headword,
		Mnemonic: strings.TrimSpace(out.Mnemonic),
		Note:     strings.TrimSpace(out.Note),
	}, nil
}
