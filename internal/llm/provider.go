// Package llm provides the text generation capability behind resume composition.
// The pipeline must function with this capability permanently absent: every
// failure mode degrades to "no result" via SafeGenerate.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// Options controls a single generation request.
type Options struct {
	Temperature float32
	MaxTokens   int
}

// DefaultOptions are tuned for consistent, bounded resume drafts.
func DefaultOptions() Options {
	return Options{Temperature: 0.2, MaxTokens: 600}
}

// Provider is an abstraction over text generation backends.
type Provider interface {
	// Generate produces a completion for the prompt.
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
	// Name identifies the provider in logs.
	Name() string
}

// Sentinel errors shared by provider implementations.
var (
	// ErrUnavailable indicates the provider cannot serve requests at all
	// (disabled, or missing credentials).
	ErrUnavailable = errors.New("text generation provider unavailable")
	// ErrEmptyResponse indicates the backend answered without usable text.
	ErrEmptyResponse = errors.New("provider returned empty response")
)

// StatusError indicates a non-success HTTP status from the backend.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.Code, e.Body)
}

// Disabled is the null provider: every call fails closed. It stands in
// whenever no backend is configured, and in tests.
type Disabled struct{}

// Generate always reports the capability as absent.
func (Disabled) Generate(context.Context, string, Options) (string, error) {
	return "", ErrUnavailable
}

// Name identifies the provider in logs.
func (Disabled) Name() string { return "disabled" }

const maxRetries = 2

// retryBackoff is the initial delay between retries; doubled each attempt.
// Variable so tests can shorten it.
var retryBackoff = 500 * time.Millisecond

// SafeGenerate invokes the provider and converts every failure to an
// absent result. Transient failures (timeouts, 5xx) are retried a small
// fixed number of times with backoff; permanent ones are not. The second
// return value reports whether usable text was produced.
func SafeGenerate(ctx context.Context, p Provider, prompt string, opts Options) (string, bool) {
	if p == nil {
		return "", false
	}

	backoff := retryBackoff
	for attempt := 0; ; attempt++ {
		text, err := p.Generate(ctx, prompt, opts)
		if err == nil {
			if strings.TrimSpace(text) == "" {
				err = ErrEmptyResponse
			} else {
				return text, true
			}
		}

		log.Printf("[llm] %s generate failed (attempt %d/%d): %v", p.Name(), attempt+1, maxRetries+1, err)

		if attempt >= maxRetries || !isTransient(err) {
			return "", false
		}

		select {
		case <-ctx.Done():
			return "", false
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

// isTransient reports whether a retry could plausibly succeed.
func isTransient(err error) bool {
	if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrEmptyResponse) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= 500
	}
	// Network errors, timeouts, anything else I/O shaped
	return true
}
