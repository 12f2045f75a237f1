package game

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/ntheocharis/undercover/internal/ai"
)

// Agent is the one capability the engine consumes per seat: ask a question,
// get text back. ai.Agent satisfies it; tests plug in stubs.
type Agent interface {
	Ask(ctx context.Context, systemPrompt, prompt string) (string, error)
}

// Seat binds a named participant to the agent that plays it. Seats are
// ordered; roster order is the deterministic turn order everywhere.
type Seat struct {
	Name  string
	Model ModelRef
	Agent Agent
}

const discussionRounds = 2

// Config describes a single game. Zero-value Difficulty means standard and
// nil Events means no notifications.
type Config struct {
	Index      int
	Seats      []Seat
	Assignment Assignment
	Difficulty Difficulty
	Events     Events
}

// Game drives one game through Setup, Clue, Discussion, Voting, and
// Resolution. A Game runs once and owns all its state; concurrent games
// each get their own instance.
type Game struct {
	cfg          Config
	events       Events
	rng          *rand.Rand
	participants []*Participant
	messages     []Message
	votes        []VoteRecord
}

// New validates the configuration and prepares a game. The per-voter
// transcript shuffling is seeded with the game index so runs are
// reproducible without being shared across games.
func New(cfg Config) (*Game, error) {
	if len(cfg.Seats) < MinParticipants {
		return nil, ErrRosterTooSmall
	}
	if cfg.Assignment.ImpostorIndex < 0 || cfg.Assignment.ImpostorIndex >= len(cfg.Seats) {
		return nil, fmt.Errorf("impostor index %d out of range for %d seats", cfg.Assignment.ImpostorIndex, len(cfg.Seats))
	}
	if cfg.Assignment.Words.Word == "" {
		return nil, ErrEmptyWordPool
	}
	if cfg.Difficulty == "" {
		cfg.Difficulty = DifficultyStandard
	}
	if cfg.Events == nil {
		cfg.Events = NopEvents{}
	}
	return &Game{
		cfg:    cfg,
		events: cfg.Events,
		rng:    rand.New(rand.NewSource(int64(cfg.Index))),
	}, nil
}

// Run executes the game to completion. On any agent failure Run returns a
// *Failure naming the game, phase, and participant; no partial Result is
// ever produced and no default response is ever substituted.
func (g *Game) Run(ctx context.Context) (*Result, error) {
	g.setup()
	if err := g.cluePhase(ctx); err != nil {
		return nil, err
	}
	if err := g.discussionPhase(ctx); err != nil {
		return nil, err
	}
	if err := g.votingPhase(ctx); err != nil {
		return nil, err
	}
	return g.resolve(), nil
}

func (g *Game) setup() {
	g.events.PhaseChange(g.cfg.Index, PhaseSetup)
	g.participants = make([]*Participant, len(g.cfg.Seats))
	g.messages = g.messages[:0]
	g.votes = g.votes[:0]
	for i, seat := range g.cfg.Seats {
		p := &Participant{Name: seat.Name, Role: RoleCitizen, Model: seat.Model, Word: g.cfg.Assignment.Words.Word}
		if i == g.cfg.Assignment.ImpostorIndex {
			p.Role = RoleImpostor
			p.Word = ""
			if g.cfg.Difficulty == DifficultyEasy {
				p.Word = g.cfg.Assignment.Words.Decoy
			}
		}
		g.participants[i] = p
	}
}

func (g *Game) cluePhase(ctx context.Context) error {
	g.events.PhaseChange(g.cfg.Index, PhaseClue)

	// Citizens first, in roster order, each seeing the clues given so far.
	for i, p := range g.participants {
		if p.Role == RoleImpostor {
			continue
		}
		clue, err := g.ask(ctx, i, citizenClueSystem(p.Word), citizenClueUser(g.transcript(PhaseClue)))
		if err != nil {
			return g.fail(PhaseClue, p.Name, err)
		}
		g.append(p.Name, PhaseClue, 0, clue)
	}

	// The impostor goes last, with every citizen clue in view but never the
	// true word.
	idx := g.cfg.Assignment.ImpostorIndex
	impostor := g.participants[idx]
	clue, err := g.ask(ctx, idx, impostorClueSystem(impostor.Word), impostorClueUser(g.transcript(PhaseClue)))
	if err != nil {
		return g.fail(PhaseClue, impostor.Name, err)
	}
	g.append(impostor.Name, PhaseClue, 0, clue)
	return nil
}

func (g *Game) discussionPhase(ctx context.Context) error {
	g.events.PhaseChange(g.cfg.Index, PhaseDiscussion)
	for round := 1; round <= discussionRounds; round++ {
		for i, p := range g.participants {
			view := g.transcript(PhaseClue, PhaseDiscussion)
			var user string
			if p.Role == RoleImpostor {
				user = impostorDiscussionUser(view)
			} else {
				user = citizenDiscussionUser(view, p.Word)
			}
			remark, err := g.ask(ctx, i, discussionSystem(p.Name), user)
			if err != nil {
				return g.fail(PhaseDiscussion, p.Name, err)
			}
			g.append(p.Name, PhaseDiscussion, round, remark)
		}
	}
	return nil
}

func (g *Game) votingPhase(ctx context.Context) error {
	g.events.PhaseChange(g.cfg.Index, PhaseVoting)

	// Snapshot the transcript once; each voter gets an independently
	// shuffled copy so no one can lean on message position. The canonical
	// log keeps insertion order.
	lines := g.transcriptLines(PhaseClue, PhaseDiscussion)

	for i, p := range g.participants {
		shuffled := make([]string, len(lines))
		copy(shuffled, lines)
		g.rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		view := strings.Join(shuffled, "\n")

		candidates := make([]string, 0, len(g.participants)-1)
		for _, other := range g.participants {
			if other.Name != p.Name {
				candidates = append(candidates, other.Name)
			}
		}

		var user string
		if p.Role == RoleImpostor {
			user = impostorVotingUser(view)
		} else {
			user = citizenVotingUser(view, p.Word)
		}
		raw, err := g.ask(ctx, i, votingSystem(p.Name, candidates), user)
		if err != nil {
			return g.fail(PhaseVoting, p.Name, err)
		}
		target, err := g.parseVote(p.Name, raw)
		if err != nil {
			return g.fail(PhaseVoting, p.Name, err)
		}
		g.votes = append(g.votes, VoteRecord{Voter: p.Name, Target: target})
		g.append(p.Name, PhaseVoting, 1, target)
	}
	return nil
}

func (g *Game) resolve() *Result {
	g.events.PhaseChange(g.cfg.Index, PhaseResolution)

	counts := make(map[string]int, len(g.participants))
	for _, v := range g.votes {
		counts[v.Target]++
	}

	// Most votes wins; ties break toward the lowest roster index so repeated
	// resolution of the same tally always eliminates the same participant.
	eliminatedIdx := -1
	best := 0
	for i, p := range g.participants {
		if c := counts[p.Name]; c > best {
			best = c
			eliminatedIdx = i
		}
	}
	eliminated := g.participants[eliminatedIdx]
	eliminated.Eliminated = true

	impostor := g.participants[g.cfg.Assignment.ImpostorIndex]
	winner := SideImpostor
	if eliminated.Role == RoleImpostor {
		winner = SideCitizens
	}

	results := make([]ParticipantResult, len(g.participants))
	for i, p := range g.participants {
		results[i] = ParticipantResult{
			Name:          p.Name,
			Model:         p.Model,
			Role:          p.Role,
			Word:          p.Word,
			Survived:      !p.Eliminated,
			VotesReceived: counts[p.Name],
		}
	}

	messages := make([]Message, len(g.messages))
	copy(messages, g.messages)
	votes := make([]VoteRecord, len(g.votes))
	copy(votes, g.votes)

	res := &Result{
		GameIndex:       g.cfg.Index,
		Timestamp:       time.Now().UTC(),
		WinnerSide:      winner,
		Impostor:        impostor.Name,
		ImpostorModel:   impostor.Model,
		Eliminated:      eliminated.Name,
		EliminatedModel: eliminated.Model,
		Words:           g.cfg.Assignment.Words,
		VoteCounts:      counts,
		Votes:           votes,
		Participants:    results,
		Messages:        messages,
	}
	g.events.GameComplete(g.cfg.Index, res)
	return res
}

// ask is the single suspension point: it checks for cancellation before
// issuing the call so an aborted game stops cleanly between turns.
func (g *Game) ask(ctx context.Context, seatIdx int, system, user string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return g.cfg.Seats[seatIdx].Agent.Ask(ctx, system, user)
}

func (g *Game) append(speaker string, phase Phase, round int, content string) {
	msg := Message{
		Ordinal: len(g.messages),
		Speaker: speaker,
		Phase:   phase,
		Round:   round,
		Content: content,
	}
	g.messages = append(g.messages, msg)
	g.events.Message(g.cfg.Index, msg)
}

func (g *Game) transcript(phases ...Phase) string {
	return strings.Join(g.transcriptLines(phases...), "\n")
}

func (g *Game) transcriptLines(phases ...Phase) []string {
	var lines []string
	for _, m := range g.messages {
		for _, ph := range phases {
			if m.Phase == ph {
				lines = append(lines, m.Speaker+": "+m.Content)
				break
			}
		}
	}
	return lines
}

// parseVote maps a raw completion onto a participant name. Exact
// (case-insensitive) matches after trimming quotes and punctuation are
// preferred; otherwise a response mentioning exactly one other participant
// counts. A self-vote or an unresolvable response is a malformed response
// and aborts the game.
func (g *Game) parseVote(voter, raw string) (string, error) {
	cleaned := strings.ToLower(strings.Trim(strings.TrimSpace(raw), ".!?\"'` "))

	for _, p := range g.participants {
		if strings.EqualFold(p.Name, cleaned) {
			if p.Name == voter {
				return "", ai.Malformed("%s voted for themselves", voter)
			}
			return p.Name, nil
		}
	}

	// Fall back to scanning for names mentioned in a longer answer.
	var found string
	for _, p := range g.participants {
		if p.Name == voter {
			continue
		}
		if strings.Contains(cleaned, strings.ToLower(p.Name)) {
			if found != "" {
				return "", ai.Malformed("ambiguous vote %q from %s", raw, voter)
			}
			found = p.Name
		}
	}
	if found == "" {
		return "", ai.Malformed("vote %q from %s names no eligible participant", raw, voter)
	}
	return found, nil
}

func (g *Game) fail(phase Phase, participant string, err error) error {
	return &Failure{GameIndex: g.cfg.Index, Phase: phase, Participant: participant, Err: err}
}
