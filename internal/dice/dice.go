// Package dice implements the hidden per-player dice sets used by the
// bet-resolution state machine, with injectable randomness for
// deterministic testing.
package dice

import (
	"errors"
	"time"

	rand "math/rand/v2"

	"github.com/perudohq/perudod/internal/randutil"
)

// ErrEmpty is returned when removing a die from an empty set. It is an
// internal guard and is never surfaced to players.
var ErrEmpty = errors.New("dice set is empty")

// Set holds one player's dice. A zero-length set means the player is
// eliminated. Values are replaced wholesale on reroll, never mutated in
// place.
type Set []int

// Roller produces die values from an injected RNG so tests can supply
// deterministic sequences.
type Roller struct {
	rng *rand.Rand
}

// NewRoller creates a roller. A nil rng falls back to a time-seeded
// source.
func NewRoller(rng *rand.Rand) *Roller {
	if rng == nil {
		rng = randutil.New(time.Now().UnixNano())
	}
	return &Roller{rng: rng}
}

// Deal rolls a fresh set of count dice in [1, highest].
func (r *Roller) Deal(count, highest int) Set {
	set := make(Set, count)
	for i := range set {
		set[i] = r.rng.IntN(highest) + 1
	}
	return set
}

// Reroll replaces every die with a fresh roll at the set's current
// length. The length never changes, only the values.
func (r *Roller) Reroll(s Set, highest int) Set {
	return r.Deal(len(s), highest)
}

// RemoveOne drops the last die. Which die is dropped is immaterial
// because the set is rerolled immediately after every challenge.
func (s Set) RemoveOne() (Set, error) {
	if len(s) == 0 {
		return s, ErrEmpty
	}
	return s[:len(s)-1], nil
}

// CountMatching counts dice showing face. Dice showing the wildcard
// face always match regardless of the target face; pass wildcard 0 to
// disable wildcard counting.
func (s Set) CountMatching(face, wildcard int) int {
	count := 0
	for _, v := range s {
		if v == face || (wildcard != 0 && v == wildcard) {
			count++
		}
	}
	return count
}
