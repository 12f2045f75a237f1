package game

import (
	"errors"
	"math/rand"
)

// MinParticipants is the smallest playable roster: one impostor plus enough
// citizens to out-vote them.
const MinParticipants = 3

var (
	ErrRosterTooSmall = errors.New("roster too small for a game")
	ErrEmptyWordPool  = errors.New("word pool is empty")
)

// Assignment fixes who plays the impostor and which word pair is in play
// for a single game.
type Assignment struct {
	ImpostorIndex int
	Words         WordPair
}

// Assign computes the assignment for the gameIndex-th game (0-based) of a
// tournament. The impostor role rotates through the roster by game index, so
// across G games every participant gets the role floor(G/N) or ceil(G/N)
// times. The word pair is drawn from the pool with a source seeded by the
// game index: reproducible, and independent of who the impostor is.
func Assign(gameIndex, rosterSize int, pool []WordPair) (Assignment, error) {
	if rosterSize < MinParticipants {
		return Assignment{}, ErrRosterTooSmall
	}
	if len(pool) == 0 {
		return Assignment{}, ErrEmptyWordPool
	}
	rng := rand.New(rand.NewSource(int64(gameIndex)))
	return Assignment{
		ImpostorIndex: gameIndex % rosterSize,
		Words:         pool[rng.Intn(len(pool))],
	}, nil
}
