package game

import "github.com/perudohq/perudod/internal/dice"

// Player is a seated member of a room. ID is a stable player identity,
// distinct from whatever transient connection identifier the transport
// uses. IsHost is fixed at creation. Eliminated becomes true exactly
// when the dice set reaches length zero; the entry keeps its seat until
// the player explicitly leaves.
type Player struct {
	ID         string
	Name       string
	IsHost     bool
	Eliminated bool
	Dice       dice.Set
}
