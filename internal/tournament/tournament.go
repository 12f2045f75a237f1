package tournament

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ntheocharis/undercover/internal/ai"
	"github.com/ntheocharis/undercover/internal/game"
)

// Status of a finished tournament run.
type Status string

const (
	StatusComplete Status = "complete"
	StatusPartial  Status = "partial"
)

var (
	ErrNoGames       = errors.New("tournament needs at least one game")
	ErrNoProvider    = errors.New("no provider configured for model")
	ErrDuplicateName = errors.New("duplicate participant name in roster")
)

// Config is the validated input to a tournament run. The external loader is
// responsible for producing it; Validate is the fail-fast gate before any
// game starts.
type Config struct {
	Seats      []game.Seat
	Games      int
	WordPool   []game.WordPair
	Difficulty game.Difficulty
	Events     game.Events
}

func (c Config) Validate() error {
	if c.Games <= 0 {
		return ErrNoGames
	}
	if len(c.Seats) < game.MinParticipants {
		return game.ErrRosterTooSmall
	}
	if len(c.WordPool) == 0 {
		return game.ErrEmptyWordPool
	}
	seen := make(map[string]bool, len(c.Seats))
	for _, s := range c.Seats {
		if seen[s.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateName, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// FailureInfo records where a partial tournament stopped.
type FailureInfo struct {
	GameIndex   int        `json:"gameIndex"`
	Phase       game.Phase `json:"phase"`
	Participant string     `json:"participant"`
	Reason      string     `json:"reason"`
}

// Result accumulates completed games and per-model aggregates. Games is
// append-only: a committed game result is never discarded or rewritten, so a
// caller observing the result after a failure still sees every game that
// finished.
type Result struct {
	Planned   int                    `json:"planned"`
	Games     []game.Result          `json:"games"`
	Stats     map[string]*ModelStats `json:"stats"`
	Status    Status                 `json:"status"`
	Failure   *FailureInfo           `json:"failure,omitempty"`
	StartedAt time.Time              `json:"startedAt"`
	EndedAt   time.Time              `json:"endedAt"`
}

// Completed is the number of committed games.
func (r *Result) Completed() int { return len(r.Games) }

// SideWins counts committed games won by the given side.
func (r *Result) SideWins(side game.Side) int {
	n := 0
	for _, g := range r.Games {
		if g.WinnerSide == side {
			n++
		}
	}
	return n
}

// Runner executes the configured games sequentially. commit is the single
// mutual-exclusion region shared with any concurrent observer, so aggregates
// always move by whole games.
type Runner struct {
	cfg Config

	mu     sync.Mutex
	result *Result
}

func New(cfg Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Events == nil {
		cfg.Events = game.NopEvents{}
	}
	return &Runner{cfg: cfg, result: &Result{
		Planned: cfg.Games,
		Stats:   make(map[string]*ModelStats),
		Status:  StatusPartial,
	}}, nil
}

// Run plays the games in order. The first game failure stops the loop: the
// returned result keeps every committed game, is marked partial, and carries
// the failing game's index, phase, and participant. Cancellation is treated
// the same way; an aborted game contributes nothing.
func (r *Runner) Run(ctx context.Context) *Result {
	r.result.StartedAt = time.Now().UTC()

	for i := 0; i < r.cfg.Games; i++ {
		asg, err := game.Assign(i, len(r.cfg.Seats), r.cfg.WordPool)
		if err != nil {
			// Validate already rejected degenerate configs; this only fires
			// if the config was mutated after construction.
			r.markFailed(i, err)
			break
		}
		eng, err := game.New(game.Config{
			Index:      i,
			Seats:      r.cfg.Seats,
			Assignment: asg,
			Difficulty: r.cfg.Difficulty,
			Events:     r.cfg.Events,
		})
		if err != nil {
			r.markFailed(i, err)
			break
		}

		res, err := eng.Run(ctx)
		if err != nil {
			log.Warn().Int("game", i).Err(err).Msg("game aborted, stopping tournament")
			r.markFailed(i, err)
			break
		}
		r.commit(res)
		log.Info().
			Int("game", i).
			Str("winner", string(res.WinnerSide)).
			Str("eliminated", res.Eliminated).
			Msg("game complete")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.result.Failure == nil && len(r.result.Games) == r.cfg.Games {
		r.result.Status = StatusComplete
	}
	r.result.EndedAt = time.Now().UTC()
	return r.result
}

// Snapshot returns the result as accumulated so far; safe to call from
// another goroutine while Run is in flight.
func (r *Runner) Snapshot() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := *r.result
	out.Games = append([]game.Result(nil), r.result.Games...)
	return out
}

func (r *Runner) commit(res *game.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.Games = append(r.result.Games, *res)
	for _, pr := range res.Participants {
		key := pr.Model.Key()
		st := r.result.Stats[key]
		if st == nil {
			st = &ModelStats{Model: pr.Model}
			r.result.Stats[key] = st
		}
		st.record(pr, res.WinnerSide)
	}
}

func (r *Runner) markFailed(gameIndex int, err error) {
	info := &FailureInfo{GameIndex: gameIndex, Reason: err.Error()}
	var f *game.Failure
	if errors.As(err, &f) {
		info.Phase = f.Phase
		info.Participant = f.Participant
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.Status = StatusPartial
	r.result.Failure = info
}

// BuildSeats binds the configured roster of models to named seats backed by
// the given providers. One seat per model, names assigned in roster order.
func BuildSeats(models []game.ModelRef, providers map[string]ai.Provider, timeout time.Duration) ([]game.Seat, error) {
	if len(models) > len(game.DefaultNames) {
		return nil, fmt.Errorf("roster of %d models exceeds the %d available seat names", len(models), len(game.DefaultNames))
	}
	seats := make([]game.Seat, len(models))
	for i, m := range models {
		p, ok := providers[m.Provider]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoProvider, m.Provider)
		}
		seats[i] = game.Seat{
			Name:  game.DefaultNames[i],
			Model: m,
			Agent: ai.Agent{Provider: p, Model: m.Model, Timeout: timeout},
		}
	}
	return seats, nil
}
