package ai

import (
	"context"
	"errors"
	"testing"
	"time"
)

// stubProvider returns a canned reply or error. When block is set it waits
// for the context to finish first, simulating a slow backend.
type stubProvider struct {
	reply string
	err   error
	block bool
}

func (p stubProvider) Complete(ctx context.Context, model, prompt string) (string, error) {
	return p.CompleteWithSystem(ctx, model, "", prompt)
}

func (p stubProvider) CompleteWithSystem(ctx context.Context, model, system, prompt string) (string, error) {
	if p.block {
		<-ctx.Done()
		if p.err != nil {
			return "", p.err
		}
		return "", ctx.Err()
	}
	return p.reply, p.err
}

func TestAskClassifiesTimeout(t *testing.T) {
	a := Agent{Provider: stubProvider{block: true}, Model: "m", Timeout: 10 * time.Millisecond}
	_, err := a.Ask(context.Background(), "", "hello")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if errors.Is(err, ErrMalformed) {
		t.Fatalf("a timeout must not classify as malformed: %v", err)
	}
}

func TestAskRejectsBlankCompletion(t *testing.T) {
	a := Agent{Provider: stubProvider{reply: "   \n"}, Model: "m"}
	_, err := a.Ask(context.Background(), "", "hello")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Fatalf("a blank completion must not classify as a timeout: %v", err)
	}
}

func TestAskPassesThroughCancellation(t *testing.T) {
	a := Agent{Provider: stubProvider{block: true}, Model: "m", Timeout: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := a.Ask(ctx, "", "hello")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Fatalf("cancellation must not be relabeled a timeout: %v", err)
	}
}

func TestAskKeepsProviderErrorAtDeadline(t *testing.T) {
	pe := &ProviderError{Provider: "stub", Status: 503}
	a := Agent{Provider: stubProvider{block: true, err: pe}, Model: "m", Timeout: 10 * time.Millisecond}
	_, err := a.Ask(context.Background(), "", "hello")
	var got *ProviderError
	if !errors.As(err, &got) || got.Status != 503 {
		t.Fatalf("expected the provider error to survive the deadline, got %v", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Fatalf("a provider error at the deadline must not be relabeled: %v", err)
	}
}

func TestAskTrimsCompletion(t *testing.T) {
	a := Agent{Provider: stubProvider{reply: "  wave \n"}, Model: "m"}
	text, err := a.Ask(context.Background(), "", "hello")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if text != "wave" {
		t.Fatalf("expected trimmed completion, got %q", text)
	}
}
