package game

import (
	"fmt"
	"time"
)

type Phase string

const (
	PhaseSetup      Phase = "Setup"
	PhaseClue       Phase = "Clue"
	PhaseDiscussion Phase = "Discussion"
	PhaseVoting     Phase = "Voting"
	PhaseResolution Phase = "Resolution"
)

type Role string

const (
	RoleCitizen  Role = "citizen"
	RoleImpostor Role = "impostor"
)

// Side is the winning faction of a finished game.
type Side string

const (
	SideCitizens Side = "citizens"
	SideImpostor Side = "impostor"
)

// Difficulty controls what the impostor is told about the secret word.
type Difficulty string

const (
	// DifficultyStandard gives the impostor no word at all.
	DifficultyStandard Difficulty = "standard"
	// DifficultyEasy gives the impostor the decoy word.
	DifficultyEasy Difficulty = "easy"
)

// ModelRef identifies one configured LLM.
type ModelRef struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// Key is the aggregation key used for per-model statistics.
func (m ModelRef) Key() string { return m.Provider + "/" + m.Model }

// WordPair is a secret word and its decoy. Citizens receive Word; the
// impostor receives Decoy or nothing depending on difficulty.
type WordPair struct {
	Word  string `json:"word"`
	Decoy string `json:"decoy"`
}

// Participant is one seat in a single game. Identity is fixed at setup;
// Eliminated flips at resolution.
type Participant struct {
	Name       string   `json:"name"`
	Role       Role     `json:"role"`
	Model      ModelRef `json:"model"`
	Word       string   `json:"word"` // the word as shown to this participant, "" if none
	Eliminated bool     `json:"eliminated"`
}

// Message is one entry of the game transcript. Ordinal is the insertion
// index; the stored transcript is never reordered.
type Message struct {
	Ordinal int    `json:"ordinal"`
	Speaker string `json:"speaker"`
	Phase   Phase  `json:"phase"`
	Round   int    `json:"round"`
	Content string `json:"content"`
}

// VoteRecord is one cast vote. Voters never target themselves; the engine
// rejects such responses before a record is created.
type VoteRecord struct {
	Voter  string `json:"voter"`
	Target string `json:"target"`
}

// ParticipantResult is the final per-seat outcome extracted into a Result.
type ParticipantResult struct {
	Name          string   `json:"name"`
	Model         ModelRef `json:"model"`
	Role          Role     `json:"role"`
	Word          string   `json:"word"`
	Survived      bool     `json:"survived"`
	VotesReceived int      `json:"votesReceived"`
}

// Result is the immutable snapshot of one finished game.
type Result struct {
	GameIndex       int                 `json:"gameIndex"`
	Timestamp       time.Time           `json:"timestamp"`
	WinnerSide      Side                `json:"winnerSide"`
	Impostor        string              `json:"impostor"`
	ImpostorModel   ModelRef            `json:"impostorModel"`
	Eliminated      string              `json:"eliminated"`
	EliminatedModel ModelRef            `json:"eliminatedModel"`
	Words           WordPair            `json:"words"`
	VoteCounts      map[string]int      `json:"voteCounts"`
	Votes           []VoteRecord        `json:"votes"`
	Participants    []ParticipantResult `json:"participants"`
	Messages        []Message           `json:"messages"`
}

// Failure is a game-level abort. It carries enough context to report which
// game, phase, and participant failed; Err is the underlying agent failure.
type Failure struct {
	GameIndex   int
	Phase       Phase
	Participant string
	Err         error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("game %d failed in phase %s (participant %s): %v",
		f.GameIndex, f.Phase, f.Participant, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }
