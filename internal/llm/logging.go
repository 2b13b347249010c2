package llm

import (
	"context"
	"time"

	"github.com/abhisek/lexis/internal/logger"
	"github.com/abhisek/lexis/internal/store"
)

// LoggingProvider is a decorator that writes every LLM request to the log
// and, when an event repo is set, to the audit table.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
	log       *logger.Logger
}

// WithLogging wraps a Provider with request logging. repo and log may be nil.
func WithLogging(p Provider, providerName string, repo store.EventRepo, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{
		inner:     p,
		provider:  providerName,
		eventRepo: repo,
		log:       log.With("provider", providerName),
	}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   string(purpose),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		l.log.Warn("llm request failed",
			"model", data.Model,
			"purpose", data.Purpose,
			"latency_ms", data.LatencyMs,
			"error", err,
		)
	} else {
		kv := []interface{}{
			"model", data.Model,
			"purpose", data.Purpose,
			"latency_ms", data.LatencyMs,
			"input_tokens", data.InputTokens,
			"output_tokens", data.OutputTokens,
		}
		if c := LookupCost(data.Model); c != nil {
			kv = append(kv, "cost_usd", c.Cost(data.InputTokens, data.OutputTokens))
		}
		l.log.Info("llm request", kv...)
	}

	if l.eventRepo != nil {
		// A failed audit write never fails the request.
		if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
			l.log.Warn("failed to record llm request event", "error", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
