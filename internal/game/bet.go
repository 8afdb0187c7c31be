package game

import "fmt"

// Bet is a single player action. A plain bet carries a face and a
// claimed count; setting Bluff or SpotOn instead challenges the
// outstanding bet.
type Bet struct {
	Face   int  `json:"face"`
	Value  int  `json:"value"`
	Bluff  bool `json:"bluff"`
	SpotOn bool `json:"spot_on"`
}

// IsChallenge reports whether the action challenges the current bet
// rather than escalating it.
func (b Bet) IsChallenge() bool {
	return b.Bluff || b.SpotOn
}

// ValidateEscalation checks that next legally raises prev. A raise
// either increases the claimed count, or keeps it and names a
// strictly higher face. The wild face is never a legal target. prev
// is nil for the opening bet of a round, which only has to be in
// range.
func ValidateEscalation(prev *Bet, next Bet, rules Rules) error {
	if next.Face < 1 || next.Face > rules.HighestValue {
		return fmt.Errorf("%w: face %d out of range", ErrIllegalBet, next.Face)
	}
	if next.Face == rules.WildcardFace() {
		return fmt.Errorf("%w: cannot bet on the wildcard face", ErrIllegalBet)
	}
	if next.Value < 1 {
		return fmt.Errorf("%w: value must be at least 1", ErrIllegalBet)
	}
	if prev == nil {
		return nil
	}
	if next.Value > prev.Value {
		return nil
	}
	if next.Value == prev.Value && next.Face > prev.Face {
		return nil
	}
	return fmt.Errorf("%w: %d %ds does not raise %d %ds", ErrIllegalBet, next.Value, next.Face, prev.Value, prev.Face)
}
