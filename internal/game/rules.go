// Package game implements the Perudo room: seating, the bet loop and
// challenge resolution. Rooms know nothing about connections or the
// wire format; the session gateway sits on top.
package game

// Rules is the per-room rule configuration, fixed at room creation.
type Rules struct {
	// StartingDiceCount is how many dice each player is dealt.
	StartingDiceCount int `json:"starting_dice_count"`

	// SpotOn enables exact-count challenges.
	SpotOn bool `json:"spot_on"`

	// SpotOnEveryone makes every player except the caller lose a die on
	// a correct spot-on call, once enough dice are on the table.
	SpotOnEveryone bool `json:"spot_on_everyone"`

	// SpotOnEveryoneMinimum is the table-wide dice count at which the
	// everyone-loses variant kicks in.
	SpotOnEveryoneMinimum int `json:"spot_on_everyone_minimum"`

	// HighestValue is the number of faces on each die.
	HighestValue int `json:"highest_value"`

	// WildcardEnabled makes ones count toward every face. A wild face
	// cannot be the target of a bet.
	WildcardEnabled bool `json:"wildcard_enabled"`
}

// DefaultRules returns the standard Perudo configuration.
func DefaultRules() Rules {
	return Rules{
		StartingDiceCount:     5,
		SpotOn:                true,
		SpotOnEveryone:        true,
		SpotOnEveryoneMinimum: 10,
		HighestValue:          6,
		WildcardEnabled:       true,
	}
}

// WildcardFace returns the wild face, or 0 when wildcards are off.
func (r Rules) WildcardFace() int {
	if r.WildcardEnabled {
		return 1
	}
	return 0
}
