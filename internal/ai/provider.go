package ai

import (
	"context"
	"errors"
	"fmt"
)

// Provider is a single LLM backend. Implementations live in subpackages,
// one per provider. Calls must honor ctx cancellation and deadlines;
// everything else (auth, wire format) is the provider's business.
type Provider interface {
	Complete(ctx context.Context, model string, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, model string, systemPrompt string, prompt string) (string, error)
}

// Failure taxonomy. Callers decide what a failure means for the surrounding
// game; this package only classifies.
var (
	// ErrTimeout marks a call that exceeded its deadline.
	ErrTimeout = errors.New("agent call timed out")
	// ErrMalformed marks a response the caller could not use (empty
	// completion, vote for an unknown player, ...).
	ErrMalformed = errors.New("malformed agent response")
)

// ProviderError is a failed call to the backing service itself: a non-2xx
// status, a connection error, anything that is neither a timeout nor a
// usable-but-wrong response.
type ProviderError struct {
	Provider string
	Status   int
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Malformed wraps a reason in ErrMalformed so callers can classify it
// with errors.Is.
func Malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
