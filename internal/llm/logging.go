package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/serenby/mindwell/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as a
// history event.
type LoggingProvider struct {
	inner  Provider
	events store.EventRepo
	userID int64
}

// WithLogging wraps a Provider with event logging attributed to userID.
func WithLogging(p Provider, repo store.EventRepo, userID int64) Provider {
	return &LoggingProvider{inner: p, events: repo, userID: userID}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	payload := map[string]any{
		"provider":   l.inner.ModelID(),
		"model":      l.inner.ModelID(),
		"purpose":    purpose,
		"latency_ms": time.Since(start).Milliseconds(),
		"success":    err == nil,
	}
	if resp != nil {
		payload["model"] = resp.Model
		payload["input_tokens"] = resp.Usage.InputTokens
		payload["output_tokens"] = resp.Usage.OutputTokens
		if cost := LookupCost(resp.Model); cost != nil {
			payload["cost_usd"] = cost.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens)
		}
	}
	if err != nil {
		payload["error"] = err.Error()
	}

	// Log the event but don't fail the request if logging fails.
	if logErr := l.events.Append(ctx, l.userID, store.EventLLMRequest, payload); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
