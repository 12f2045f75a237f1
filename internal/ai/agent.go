package ai

import (
	"context"
	"errors"
	"strings"
	"time"
)

// DefaultAskTimeout bounds a single agent call. Providers carry their own
// HTTP client timeouts as a backstop; this is the one the game observes.
const DefaultAskTimeout = 45 * time.Second

// Agent binds a provider and a model into the single capability the game
// core consumes: ask a question, get text back.
type Agent struct {
	Provider Provider
	Model    string
	Timeout  time.Duration
}

// Ask runs one completion under the agent's timeout. A blown deadline is
// reported as ErrTimeout, an empty completion as ErrMalformed; provider
// errors pass through unchanged.
func (a Agent) Ask(ctx context.Context, systemPrompt, prompt string) (string, error) {
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = DefaultAskTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := a.Provider.CompleteWithSystem(cctx, a.Model, systemPrompt, prompt)
	if err != nil {
		// Only context errors become ErrTimeout. A provider error that lands
		// just as the deadline expires keeps its own classification.
		if errors.Is(err, context.DeadlineExceeded) ||
			(errors.Is(err, context.Canceled) && errors.Is(cctx.Err(), context.DeadlineExceeded)) {
			return "", ErrTimeout
		}
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", Malformed("empty completion from model %s", a.Model)
	}
	return text, nil
}
