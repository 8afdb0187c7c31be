package game

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/perudohq/perudod/internal/dice"
)

// Status is the room lifecycle state.
type Status int

const (
	StatusWaiting Status = iota
	StatusReady
	StatusOngoing
	StatusEnded
)

// String returns the player-facing status label.
func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "Waiting for players"
	case StatusReady:
		return "Ready to start"
	case StatusOngoing:
		return "Game has started"
	case StatusEnded:
		return "Game over"
	default:
		return "Unknown"
	}
}

// Room aggregates one dice set per player, the outstanding bet, the
// turn tracker and the rule configuration, and exposes the player-facing
// operations. Every operation takes the room mutex, so two simultaneous
// actions on the same room can never race past validation.
type Room struct {
	mu sync.Mutex

	id     string
	status Status
	rules  Rules

	players    []*Player
	turns      *TurnTracker
	currentBet *Bet
	betterID   string // player who made the outstanding bet

	roller   *dice.Roller
	pickSeat func(n int) int
	logger   *log.Logger
}

// NewRoom creates an empty room. pickSeat must return a uniform index
// in [0, n); it is injected so tests can fix the opening turn.
func NewRoom(id string, rules Rules, roller *dice.Roller, pickSeat func(n int) int, logger *log.Logger) *Room {
	return &Room{
		id:       id,
		status:   StatusWaiting,
		rules:    rules,
		roller:   roller,
		pickSeat: pickSeat,
		logger:   logger.WithPrefix("room").With("room", id),
	}
}

// ID returns the room code.
func (r *Room) ID() string {
	return r.id
}

// Rules returns the immutable rule configuration.
func (r *Room) Rules() Rules {
	return r.rules
}

// Status returns the current lifecycle state.
func (r *Room) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Join seats a new player and deals their starting dice. The first
// player to join becomes the host. Only legal before the game starts.
func (r *Room) Join(playerID, name string) (*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status == StatusOngoing || r.status == StatusEnded {
		return nil, ErrAlreadyStarted
	}

	p := &Player{
		ID:     playerID,
		Name:   name,
		IsHost: len(r.players) == 0,
		Dice:   r.roller.Deal(r.rules.StartingDiceCount, r.rules.HighestValue),
	}
	r.players = append(r.players, p)
	if len(r.players) >= 2 {
		r.status = StatusReady
	}

	r.logger.Info("Player joined", "player", playerID, "name", name, "host", p.IsHost, "players", len(r.players))
	return p, nil
}

// Leave removes a player from the room in any state. If the departing
// player held the current turn it advances first, so the turn never
// points at a missing seat. Returns true when the room is now empty
// and should be torn down. Leaving is idempotent: an unknown player is
// a no-op.
func (r *Room) Leave(playerID string) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, p := range r.players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return len(r.players) == 0
	}

	if r.turns != nil {
		if r.turns.Current() == playerID {
			r.turns.MarkEliminated(playerID)
			r.turns.Advance()
		}
		r.turns.RemoveSeat(playerID)
	}
	r.players = append(r.players[:idx], r.players[idx+1:]...)

	switch r.status {
	case StatusWaiting, StatusReady:
		if len(r.players) >= 2 {
			r.status = StatusReady
		} else {
			r.status = StatusWaiting
		}
	case StatusOngoing:
		if r.liveCount() <= 1 {
			r.status = StatusEnded
		}
	}

	r.logger.Info("Player left", "player", playerID, "players", len(r.players), "status", r.status)
	return len(r.players) == 0
}

// Start begins the bet loop. Host only. The opening turn is a uniform
// pick over the seated players.
func (r *Room) Start(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	host := r.findPlayer(playerID)
	if host == nil || !host.IsHost {
		return ErrNotHost
	}
	switch r.status {
	case StatusWaiting:
		return ErrNotEnoughPlayers
	case StatusOngoing, StatusEnded:
		return ErrAlreadyStarted
	}

	seats := make([]string, len(r.players))
	for i, p := range r.players {
		seats[i] = p.ID
	}
	r.turns = NewTurnTracker(seats, r.pickSeat(len(seats)))
	r.currentBet = nil
	r.betterID = ""
	r.status = StatusOngoing

	r.logger.Info("Game started", "players", len(seats), "first", r.turns.Current())
	return nil
}

// OutcomeKind says how a bet action resolved.
type OutcomeKind int

const (
	OutcomeEscalated OutcomeKind = iota
	OutcomeBluffResolved
	OutcomeSpotOnResolved
)

// Outcome describes a resolved bet action so the gateway can tell the
// room what happened. Total, ChallengerID, BetterID, Losers and
// Eliminated are only populated for challenge outcomes.
type Outcome struct {
	Kind         OutcomeKind
	Bet          Bet
	Total        int
	ChallengerID string
	BetterID     string
	Losers       []string
	Eliminated   []string
	NextTurn     string
	Ended        bool
	WinnerID     string
}

// Bet handles a player action: an escalation, a bluff call or a
// spot-on call. Only legal while the game is ongoing and only for the
// player whose turn it is. Rejections leave all state untouched.
func (r *Room) Bet(playerID string, bet Bet) (*Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusOngoing {
		return nil, ErrNoActiveGame
	}
	if r.turns.Current() != playerID {
		return nil, ErrOutOfTurn
	}

	switch {
	case bet.Bluff:
		return r.resolveBluff(playerID)
	case bet.SpotOn:
		return r.resolveSpotOn(playerID)
	default:
		return r.escalate(playerID, bet)
	}
}

func (r *Room) escalate(playerID string, bet Bet) (*Outcome, error) {
	if err := ValidateEscalation(r.currentBet, bet, r.rules); err != nil {
		return nil, err
	}
	b := bet
	r.currentBet = &b
	r.betterID = playerID
	next := r.turns.Advance()

	r.logger.Debug("Bet escalated", "player", playerID, "face", bet.Face, "value", bet.Value, "next", next)
	return &Outcome{Kind: OutcomeEscalated, Bet: bet, NextTurn: next}, nil
}

func (r *Room) resolveBluff(challengerID string) (*Outcome, error) {
	if r.currentBet == nil {
		return nil, ErrNoBetToChallenge
	}
	bet := *r.currentBet
	total := r.totalMatching(bet.Face)

	// The bet stands when the claimed count is actually on the table.
	loser := challengerID
	if total < bet.Value {
		loser = r.betterID
	}

	r.logger.Info("Bluff called", "challenger", challengerID, "better", r.betterID,
		"face", bet.Face, "claimed", bet.Value, "actual", total, "loser", loser)
	return r.finishChallenge(OutcomeBluffResolved, bet, challengerID, []string{loser}, total, loser), nil
}

func (r *Room) resolveSpotOn(challengerID string) (*Outcome, error) {
	if !r.rules.SpotOn {
		return nil, fmt.Errorf("%w: spot-on calls are disabled", ErrIllegalMove)
	}
	if r.currentBet == nil {
		return nil, ErrNoBetToChallenge
	}
	bet := *r.currentBet
	total := r.totalMatching(bet.Face)

	var losers []string
	var turnLoser string
	if total == bet.Value {
		turnLoser = r.betterID
		if r.rules.SpotOnEveryone && r.totalDice() >= r.rules.SpotOnEveryoneMinimum {
			// Everyone but the caller pays for an exact call.
			for _, p := range r.players {
				if !p.Eliminated && p.ID != challengerID {
					losers = append(losers, p.ID)
				}
			}
		} else {
			losers = []string{r.betterID}
		}
	} else {
		losers = []string{challengerID}
		turnLoser = challengerID
	}

	r.logger.Info("Spot-on called", "challenger", challengerID, "better", r.betterID,
		"face", bet.Face, "claimed", bet.Value, "actual", total, "losers", losers)
	return r.finishChallenge(OutcomeSpotOnResolved, bet, challengerID, losers, total, turnLoser), nil
}

// finishChallenge applies a challenge result: losers drop a die,
// everyone still holding dice rerolls, the bet clears, and the turn
// passes to the loser or their nearest live neighbour. Detects
// elimination and game end.
func (r *Room) finishChallenge(kind OutcomeKind, bet Bet, challengerID string, losers []string, total int, turnLoser string) *Outcome {
	out := &Outcome{
		Kind:         kind,
		Bet:          bet,
		Total:        total,
		ChallengerID: challengerID,
		BetterID:     r.betterID,
		Losers:       losers,
	}

	for _, id := range losers {
		p := r.findPlayer(id)
		if p == nil {
			continue
		}
		set, err := p.Dice.RemoveOne()
		if err != nil {
			continue
		}
		p.Dice = set
		if len(p.Dice) == 0 {
			p.Eliminated = true
			r.turns.MarkEliminated(p.ID)
			out.Eliminated = append(out.Eliminated, p.ID)
		}
	}

	for _, p := range r.players {
		if len(p.Dice) > 0 {
			p.Dice = r.roller.Reroll(p.Dice, r.rules.HighestValue)
		}
	}

	r.currentBet = nil
	r.betterID = ""

	if r.liveCount() <= 1 {
		r.status = StatusEnded
		out.Ended = true
		for _, p := range r.players {
			if !p.Eliminated {
				out.WinnerID = p.ID
				break
			}
		}
		r.logger.Info("Game ended", "winner", out.WinnerID)
		return out
	}

	out.NextTurn = r.turns.SetCurrentAfter(turnLoser)
	return out
}

// Snapshot captures the full room state under the lock so the gateway
// can build per-recipient views without holding it.
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		RoomID: r.id,
		Status: r.status,
		Rules:  r.rules,
	}
	if r.turns != nil && r.status == StatusOngoing {
		snap.CurrentTurn = r.turns.Current()
	}
	if r.currentBet != nil {
		b := *r.currentBet
		snap.CurrentBet = &b
	}
	for _, p := range r.players {
		snap.Players = append(snap.Players, PlayerSnapshot{
			ID:         p.ID,
			Name:       p.Name,
			IsHost:     p.IsHost,
			Eliminated: p.Eliminated,
			Dice:       append(dice.Set(nil), p.Dice...),
		})
	}
	return snap
}

// Snapshot is a point-in-time copy of room state. It is unredacted;
// the session gateway is responsible for hiding other players' dice
// before anything reaches a connection.
type Snapshot struct {
	RoomID      string
	Status      Status
	Players     []PlayerSnapshot
	CurrentTurn string
	CurrentBet  *Bet
	Rules       Rules
}

// PlayerSnapshot mirrors Player with copied dice.
type PlayerSnapshot struct {
	ID         string
	Name       string
	IsHost     bool
	Eliminated bool
	Dice       dice.Set
}

func (r *Room) findPlayer(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) liveCount() int {
	n := 0
	for _, p := range r.players {
		if !p.Eliminated {
			n++
		}
	}
	return n
}

func (r *Room) totalDice() int {
	n := 0
	for _, p := range r.players {
		n += len(p.Dice)
	}
	return n
}

func (r *Room) totalMatching(face int) int {
	total := 0
	wild := r.rules.WildcardFace()
	for _, p := range r.players {
		total += p.Dice.CountMatching(face, wild)
	}
	return total
}
