package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"licitaciones-backend/internal/models"
)

// UpstreamObserver receives one observation per upstream call.
type UpstreamObserver interface {
	ObserveUpstream(outcome string, elapsed time.Duration)
}

type instrumentedCompleter struct {
	next     ChatCompleter
	observer UpstreamObserver
}

// NewInstrumentedCompleter wraps next so every call is reported to observer.
func NewInstrumentedCompleter(next ChatCompleter, observer UpstreamObserver) ChatCompleter {
	return &instrumentedCompleter{next: next, observer: observer}
}

func (c *instrumentedCompleter) Complete(ctx context.Context, payload models.ChatCompletionPayload) ([]byte, error) {
	start := time.Now()
	body, err := c.next.Complete(ctx, payload)
	c.observer.ObserveUpstream(UpstreamOutcome(err), time.Since(start))
	return body, err
}

// UpstreamOutcome labels the result of an upstream call: "ok", "http_<status>"
// for rejections, "error" for everything else.
func UpstreamOutcome(err error) string {
	if err == nil {
		return "ok"
	}
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return fmt.Sprintf("http_%d", upstreamErr.StatusCode)
	}
	return "error"
}
