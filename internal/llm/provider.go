// Package llm talks to hosted language models behind a single Provider
// interface. Responses can be constrained to a JSON schema and are validated
// before they reach the caller.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends a prompt and returns the model output. When the request
	// carries a Schema the output is JSON that has passed validation.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation. Memory-aid requests are single-turn.
	Messages []Message

	// Schema constrains the response to JSON of a given shape. When nil the
	// response Content is the raw text.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness in [0,1]. Zero leaves the provider
	// default in place.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage is shorthand for a one-message conversation.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies the schema, kebab-case, e.g. "memory-aid".
	Name string

	// Description is sent to providers that accept one.
	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// defaultMaxTokens applies when a Request leaves MaxTokens at zero. A
// memory aid is a sentence or two.
const defaultMaxTokens = 512

func maxTokens(req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return defaultMaxTokens
}

// reply is one provider round trip in provider-neutral form.
type reply struct {
	text      string
	usage     Usage
	model     string
	truncated bool
}

// finish turns a reply into a Response. Structured replies lose any
// markdown fence, then a truncated one becomes ErrMaxTokensExceeded and a
// complete one is validated against the schema.
func finish(req Request, r reply) (*Response, error) {
	stop := "end"
	if r.truncated {
		stop = "max_tokens"
	}

	content := json.RawMessage(r.text)
	if req.Schema != nil {
		content = json.RawMessage(stripCodeFence(r.text))
	}
	if err := checkResponse(req, content, stop); err != nil {
		return nil, err
	}

	usage := r.usage
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{Content: content, Usage: usage, Model: r.model, StopReason: stop}, nil
}

// checkResponse turns a truncated structured response into
// ErrMaxTokensExceeded and validates everything else against the schema.
func checkResponse(req Request, content json.RawMessage, stopReason string) error {
	if req.Schema == nil {
		return nil
	}
	if stopReason == "max_tokens" {
		return &ErrMaxTokensExceeded{Content: content}
	}
	return validateResponse(req.Schema, content)
}

// Purpose labels an LLM call in the log and the audit table.
type Purpose string

const (
	PurposeUnknown Purpose = "unknown"
	// PurposeHint is a memory aid requested from the practice screen.
	PurposeHint Purpose = "hint"
	// PurposeHintCommand is a memory aid requested by `lexis hint`.
	PurposeHintCommand Purpose = "hint-cli"
)

type purposeKey struct{}

func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns the label set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok && p != "" {
		return p
	}
	return PurposeUnknown
}
