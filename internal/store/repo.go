package store

import (
	"context"
	"time"
)

// KVRepo stores named text values. It backs the vocabulary collection and
// the answer log, each serialized under its own key.
type KVRepo interface {
	// Load returns the value for key. ok is false when the key is absent.
	Load(ctx context.Context, key string) (value string, ok bool, err error)

	// Save inserts or replaces one value.
	Save(ctx context.Context, key, value string) error

	// SaveAll writes every entry in one transaction. Either all values are
	// stored or none are.
	SaveAll(ctx context.Context, entries map[string]string) error

	// Delete removes the given keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	Sequence  int64
	CreatedAt time.Time
	LLMRequestEventData
}

// EventRepo provides append access to audit events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentLLMRequests returns up to limit events, newest first.
	RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error)
}
