package ollama

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ntheocharis/undercover/internal/ai"
)

func TestCompleteTimeoutDuringBodyIsNotMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.CompleteWithSystem(ctx, "llama3", "", "hi")
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, ai.ErrMalformed) {
		t.Fatalf("a deadline during the response body must not classify as malformed: %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected the deadline error to pass through, got %v", err)
	}
}
