package server

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ntheocharis/undercover/internal/ai"
	"github.com/ntheocharis/undercover/internal/game"
	"github.com/ntheocharis/undercover/internal/tournament"
)

type GameStatus string

const (
	StatusPending   GameStatus = "pending"
	StatusRunning   GameStatus = "running"
	StatusCompleted GameStatus = "completed"
	StatusFailed    GameStatus = "failed"
)

var ErrGameNotFound = errors.New("game not found")

// GameState tracks one API-created game through its life. Result is set
// exactly once, on completion; a failed game has Error and no Result.
type GameState struct {
	ID        string          `json:"gameId"`
	Status    GameStatus      `json:"status"`
	Phase     game.Phase      `json:"phase"`
	Models    []game.ModelRef `json:"models"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Result    *game.Result    `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// Broadcaster receives live updates for a running game. The ws package
// implements it; tests use stubs.
type Broadcaster interface {
	Events(gameID string) game.Events
	GameFailed(gameID string, err error)
}

// Manager owns all API-created games. Each game runs in its own goroutine
// with an isolated engine; the registry map is the only shared state.
type Manager struct {
	providers  map[string]ai.Provider
	wordPool   []game.WordPair
	difficulty game.Difficulty
	bc         Broadcaster

	mu    sync.RWMutex
	games map[string]*GameState
	rng   *rand.Rand
}

func NewManager(providers map[string]ai.Provider, pool []game.WordPair, difficulty game.Difficulty, bc Broadcaster) *Manager {
	if len(pool) == 0 {
		pool = game.DefaultWordPool
	}
	return &Manager{
		providers:  providers,
		wordPool:   pool,
		difficulty: difficulty,
		bc:         bc,
		games:      make(map[string]*GameState),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Create registers a new game for the given roster. The game does not run
// until Run is called.
func (m *Manager) Create(models []game.ModelRef) (GameState, error) {
	if _, err := tournament.BuildSeats(models, m.providers, 0); err != nil {
		return GameState{}, err
	}
	if len(models) < game.MinParticipants {
		return GameState{}, game.ErrRosterTooSmall
	}
	st := &GameState{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		Models:    models,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	m.mu.Lock()
	m.games[st.ID] = st
	m.mu.Unlock()
	log.Info().Str("gameId", st.ID).Int("players", len(models)).Msg("game created")
	return *st, nil
}

// Run executes a created game to completion, blocking until it finishes.
// Callers run it in a goroutine; every game is fully isolated, so any number
// may run concurrently.
func (m *Manager) Run(ctx context.Context, gameID string) {
	m.mu.Lock()
	st, ok := m.games[gameID]
	if !ok || st.Status != StatusPending {
		m.mu.Unlock()
		return
	}
	st.Status = StatusRunning
	st.UpdatedAt = time.Now().UTC()
	models := st.Models
	impostorIdx := m.rng.Intn(len(models))
	words := m.wordPool[m.rng.Intn(len(m.wordPool))]
	m.mu.Unlock()

	seats, err := tournament.BuildSeats(models, m.providers, 0)
	if err != nil {
		m.finishFailed(gameID, err)
		return
	}

	events := game.Events(stateEvents{m: m, gameID: gameID})
	if m.bc != nil {
		events = game.MultiEvents{events, m.bc.Events(gameID)}
	}
	eng, err := game.New(game.Config{
		Seats:      seats,
		Assignment: game.Assignment{ImpostorIndex: impostorIdx, Words: words},
		Difficulty: m.difficulty,
		Events:     events,
	})
	if err != nil {
		m.finishFailed(gameID, err)
		return
	}

	res, err := eng.Run(ctx)
	if err != nil {
		m.finishFailed(gameID, err)
		return
	}

	m.mu.Lock()
	st.Status = StatusCompleted
	st.Result = res
	st.UpdatedAt = time.Now().UTC()
	m.mu.Unlock()
	log.Info().Str("gameId", gameID).Str("winner", string(res.WinnerSide)).Msg("game complete")
}

func (m *Manager) finishFailed(gameID string, err error) {
	m.mu.Lock()
	if st, ok := m.games[gameID]; ok {
		st.Status = StatusFailed
		st.Error = err.Error()
		st.UpdatedAt = time.Now().UTC()
	}
	m.mu.Unlock()
	if m.bc != nil {
		m.bc.GameFailed(gameID, err)
	}
	log.Warn().Str("gameId", gameID).Err(err).Msg("game failed")
}

// Get returns a snapshot of one game.
func (m *Manager) Get(gameID string) (GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.games[gameID]
	if !ok {
		return GameState{}, ErrGameNotFound
	}
	return *st, nil
}

// List returns snapshots of all games, newest first.
func (m *Manager) List() []GameState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]GameState, 0, len(m.games))
	for _, st := range m.games {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// stateEvents mirrors phase transitions into the registry so polling
// clients see the same progression the socket stream announces.
type stateEvents struct {
	m      *Manager
	gameID string
}

func (e stateEvents) PhaseChange(_ int, phase game.Phase) {
	e.m.mu.Lock()
	defer e.m.mu.Unlock()
	if st, ok := e.m.games[e.gameID]; ok {
		st.Phase = phase
		st.UpdatedAt = time.Now().UTC()
	}
}

func (e stateEvents) Message(int, game.Message) {}

func (e stateEvents) GameComplete(int, *game.Result) {}
