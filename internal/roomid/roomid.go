// Package roomid generates the short room codes players type to join a
// game.
package roomid

import (
	"crypto/rand"
	"math/big"
)

// Lowercase plus digits, with the lookalikes 0/o, 1/l and i removed so
// codes survive being read aloud.
const alphabet = "abcdefghjkmnpqrstuvwxyz23456789"

// DefaultLength is the standard room code length.
const DefaultLength = 4

// RandSource supplies indexes for dependency injection of randomness.
// *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Generator produces room codes with configurable length and
// randomness.
type Generator struct {
	length     int
	randSource RandSource
}

// NewGenerator creates a generator. A zero length uses DefaultLength; a
// nil RandSource uses crypto/rand.
func NewGenerator(length int, randSource RandSource) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{length: length, randSource: randSource}
}

// Generate returns a fresh room code. Codes are short, so collisions
// are expected; callers must retry against their registry.
func (g *Generator) Generate() string {
	code := make([]byte, g.length)
	for i := range code {
		code[i] = alphabet[g.intn(len(alphabet))]
	}
	return string(code)
}

func (g *Generator) intn(n int) int {
	if g.randSource != nil {
		return g.randSource.IntN(n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("failed to generate random index: " + err.Error())
	}
	return int(v.Int64())
}
