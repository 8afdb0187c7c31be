package game

import "errors"

// Sentinel errors for player-facing failures. The gateway relays their
// messages verbatim, so the text is wire format.
var (
	ErrInvalidRoom      = errors.New("invalid room code")
	ErrNotHost          = errors.New("only the host can start the game")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
	ErrAlreadyStarted   = errors.New("game has already started")
	ErrOutOfTurn        = errors.New("illegal move: out of turn")
	ErrNoActiveGame     = errors.New("unable to find active game")
	ErrIllegalBet       = errors.New("illegal bet")
	ErrIllegalMove      = errors.New("illegal move")
	ErrNoBetToChallenge = errors.New("no bet to challenge")
)
