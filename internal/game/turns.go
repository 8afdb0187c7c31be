package game

// TurnTracker walks the fixed seating order established at game start.
// Eliminated seats are skipped, never removed: removing them would
// corrupt index-based neighbour lookup. Seats are only removed when a
// player explicitly leaves the room.
type TurnTracker struct {
	seats      []string
	eliminated map[string]bool
	current    int
}

// NewTurnTracker creates a tracker over seats with the given starting
// index. The caller guarantees start is in [0, len(seats)).
func NewTurnTracker(seats []string, start int) *TurnTracker {
	return &TurnTracker{
		seats:      append([]string(nil), seats...),
		eliminated: make(map[string]bool),
		current:    start,
	}
}

// Current returns the player whose turn it is, or "" if no live seats
// remain.
func (t *TurnTracker) Current() string {
	if len(t.seats) == 0 {
		return ""
	}
	return t.seats[t.current]
}

// Advance moves to the next non-eliminated seat after the current one,
// wrapping around the table, and returns it.
func (t *TurnTracker) Advance() string {
	return t.advanceFrom(t.current)
}

// SetCurrentAfter moves the turn to the next non-eliminated seat at or
// after id: id itself when still live, otherwise its nearest live
// neighbour in seating order. Used after challenge resolution, where
// the loser takes the next turn unless they were just eliminated.
func (t *TurnTracker) SetCurrentAfter(id string) string {
	idx := t.indexOf(id)
	if idx < 0 {
		return t.Advance()
	}
	if !t.eliminated[id] {
		t.current = idx
		return id
	}
	return t.advanceFrom(idx)
}

// MarkEliminated flags a seat as eliminated so Advance skips it.
func (t *TurnTracker) MarkEliminated(id string) {
	t.eliminated[id] = true
}

// RemoveSeat deletes a seat entirely (explicit leave). The current
// index is adjusted so it keeps pointing at the same player; callers
// must advance the turn off a departing current player first.
func (t *TurnTracker) RemoveSeat(id string) {
	idx := t.indexOf(id)
	if idx < 0 {
		return
	}
	t.seats = append(t.seats[:idx], t.seats[idx+1:]...)
	delete(t.eliminated, id)
	if len(t.seats) == 0 {
		t.current = 0
		return
	}
	if idx < t.current {
		t.current--
	}
	if t.current >= len(t.seats) {
		t.current = 0
	}
}

// LiveCount returns the number of non-eliminated seats.
func (t *TurnTracker) LiveCount() int {
	n := 0
	for _, s := range t.seats {
		if !t.eliminated[s] {
			n++
		}
	}
	return n
}

func (t *TurnTracker) indexOf(id string) int {
	for i, s := range t.seats {
		if s == id {
			return i
		}
	}
	return -1
}

func (t *TurnTracker) advanceFrom(idx int) string {
	if len(t.seats) == 0 || t.LiveCount() == 0 {
		return ""
	}
	for i := 1; i <= len(t.seats); i++ {
		next := (idx + i) % len(t.seats)
		if !t.eliminated[t.seats[next]] {
			t.current = next
			return t.seats[next]
		}
	}
	return ""
}
