package tournament

import (
	"context"
	"errors"
	"testing"

	"github.com/ntheocharis/undercover/internal/ai"
	"github.com/ntheocharis/undercover/internal/game"
)

// stubAgent replays one game turn per call (clue, two remarks, vote) and
// keeps counting across games. failAt injects an error at the given 0-based
// call index across the whole tournament.
type stubAgent struct {
	vote     string
	failAt   int
	failWith error
	calls    int
}

func newStubAgent(vote string) *stubAgent {
	return &stubAgent{vote: vote, failAt: -1}
}

func (a *stubAgent) Ask(ctx context.Context, system, user string) (string, error) {
	i := a.calls
	a.calls++
	if a.failAt >= 0 && i == a.failAt {
		return "", a.failWith
	}
	if i%4 == 3 {
		return a.vote, nil
	}
	return "hmm", nil
}

var testPool = []game.WordPair{
	{Word: "beach", Decoy: "desert"},
	{Word: "coffee", Decoy: "tea"},
}

// fixedSeats builds a roster where every agent always votes for the same
// target, never itself, so every game resolves.
func fixedSeats(names []string, votes map[string]string) []game.Seat {
	seats := make([]game.Seat, len(names))
	for i, name := range names {
		seats[i] = game.Seat{
			Name:  name,
			Model: game.ModelRef{Provider: "stub", Model: "model-" + name},
			Agent: newStubAgent(votes[name]),
		}
	}
	return seats
}

func TestTournamentCompletesAllGames(t *testing.T) {
	names := []string{"Alice", "Bob", "Charlie"}
	// Everyone votes in a cycle: 1-1-1 tie each game, Alice (lowest roster
	// index) is always eliminated.
	seats := fixedSeats(names, map[string]string{
		"Alice": "Bob", "Bob": "Charlie", "Charlie": "Alice",
	})

	r, err := New(Config{Seats: seats, Games: 5, WordPool: testPool})
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	res := r.Run(context.Background())

	if res.Status != StatusComplete {
		t.Fatalf("expected complete status, got %s", res.Status)
	}
	if res.Completed() != 5 {
		t.Fatalf("expected 5 committed games, got %d", res.Completed())
	}
	if res.Failure != nil {
		t.Fatalf("complete tournament must carry no failure info: %+v", res.Failure)
	}

	// Rotation: impostor is Alice in games 0 and 3, so citizens win exactly
	// those two games (Alice is always the one eliminated).
	if got := res.SideWins(game.SideCitizens); got != 2 {
		t.Fatalf("expected 2 citizens wins, got %d", got)
	}
	if got := res.SideWins(game.SideImpostor); got != 3 {
		t.Fatalf("expected 3 impostor wins, got %d", got)
	}

	st := res.Stats["stub/model-Alice"]
	if st == nil {
		t.Fatal("missing stats for Alice's model")
	}
	if st.GamesPlayed != 5 || st.Eliminations != 5 {
		t.Fatalf("Alice's model: played %d eliminated %d, want 5/5", st.GamesPlayed, st.Eliminations)
	}
	if st.GamesAsImpostor != 2 {
		t.Fatalf("Alice's model should be impostor twice over 5 games, got %d", st.GamesAsImpostor)
	}
	if st.SurvivalRate() != 0 {
		t.Fatalf("Alice's model survival rate should be 0, got %f", st.SurvivalRate())
	}
}

func TestTournamentStopsAtFirstFailure(t *testing.T) {
	// A provider error on participant 3's clue in game 2 (0-indexed) of a
	// 5-game tournament: exactly 2 committed games, partial status, failure
	// metadata naming game 2 and the Clue phase.
	names := []string{"Alice", "Bob", "Charlie", "Diana", "Emily"}
	seats := fixedSeats(names, map[string]string{
		"Alice": "Bob", "Bob": "Charlie", "Charlie": "Diana", "Diana": "Emily", "Emily": "Alice",
	})
	failing := seats[3].Agent.(*stubAgent)
	failing.failAt = 8 // first call of game 2: 4 calls per seat per game
	failing.failWith = &ai.ProviderError{Provider: "stub", Status: 502}

	r, err := New(Config{Seats: seats, Games: 5, WordPool: testPool})
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	res := r.Run(context.Background())

	if res.Status != StatusPartial {
		t.Fatalf("expected partial status, got %s", res.Status)
	}
	if res.Completed() != 2 {
		t.Fatalf("expected exactly 2 committed games, got %d", res.Completed())
	}
	if res.Failure == nil {
		t.Fatal("partial result must carry failure info")
	}
	if res.Failure.GameIndex != 2 {
		t.Fatalf("expected failing game index 2, got %d", res.Failure.GameIndex)
	}
	if res.Failure.Phase != game.PhaseClue {
		t.Fatalf("expected failing phase Clue, got %s", res.Failure.Phase)
	}
	if res.Failure.Participant != "Diana" {
		t.Fatalf("expected failing participant Diana, got %s", res.Failure.Participant)
	}

	// Committed prefix stays intact and ordered.
	for i, g := range res.Games {
		if g.GameIndex != i {
			t.Fatalf("committed game %d has index %d", i, g.GameIndex)
		}
	}
}

func TestTournamentCancellation(t *testing.T) {
	names := []string{"Alice", "Bob", "Charlie"}
	seats := fixedSeats(names, map[string]string{
		"Alice": "Bob", "Bob": "Charlie", "Charlie": "Alice",
	})

	r, err := New(Config{Seats: seats, Games: 3, WordPool: testPool})
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := r.Run(ctx)

	if res.Status != StatusPartial {
		t.Fatalf("cancelled tournament should be partial, got %s", res.Status)
	}
	if res.Completed() != 0 {
		t.Fatalf("cancelled before any game: expected 0 committed games, got %d", res.Completed())
	}
}

func TestConfigValidation(t *testing.T) {
	names := []string{"Alice", "Bob", "Charlie"}
	seats := fixedSeats(names, map[string]string{
		"Alice": "Bob", "Bob": "Charlie", "Charlie": "Alice",
	})

	if _, err := New(Config{Seats: seats, Games: 0, WordPool: testPool}); !errors.Is(err, ErrNoGames) {
		t.Fatalf("expected ErrNoGames, got %v", err)
	}
	if _, err := New(Config{Seats: seats[:2], Games: 1, WordPool: testPool}); !errors.Is(err, game.ErrRosterTooSmall) {
		t.Fatalf("expected ErrRosterTooSmall, got %v", err)
	}
	if _, err := New(Config{Seats: seats, Games: 1}); !errors.Is(err, game.ErrEmptyWordPool) {
		t.Fatalf("expected ErrEmptyWordPool, got %v", err)
	}

	dup := fixedSeats([]string{"Alice", "Alice", "Bob"}, map[string]string{"Alice": "Bob", "Bob": "Alice"})
	if _, err := New(Config{Seats: dup, Games: 1, WordPool: testPool}); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestBuildSeatsRequiresKnownProvider(t *testing.T) {
	models := []game.ModelRef{
		{Provider: "openai", Model: "gpt-4o-mini"},
		{Provider: "nope", Model: "x"},
		{Provider: "openai", Model: "gpt-4o"},
	}
	_, err := BuildSeats(models, map[string]ai.Provider{}, 0)
	if !errors.Is(err, ErrNoProvider) {
		t.Fatalf("expected ErrNoProvider, got %v", err)
	}
}
