package server

import (
	"encoding/json"
	"time"

	"github.com/perudohq/perudod/internal/game"
)

// Message is the base WebSocket message structure.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

// GameRulesData carries optional rule overrides on create_game. Nil
// fields fall back to the server defaults.
type GameRulesData struct {
	StartingDiceCount     *int  `json:"starting_dice_count,omitempty"`
	SpotOn                *bool `json:"spot_on,omitempty"`
	SpotOnEveryone        *bool `json:"spot_on_everyone,omitempty"`
	SpotOnEveryoneMinimum *int  `json:"spot_on_everyone_minimum,omitempty"`
	HighestValue          *int  `json:"highest_value,omitempty"`
	WildcardEnabled       *bool `json:"wildcard_enabled,omitempty"`
}

// Apply overlays the non-nil fields onto base.
func (g *GameRulesData) Apply(base game.Rules) game.Rules {
	if g == nil {
		return base
	}
	if g.StartingDiceCount != nil {
		base.StartingDiceCount = *g.StartingDiceCount
	}
	if g.SpotOn != nil {
		base.SpotOn = *g.SpotOn
	}
	if g.SpotOnEveryone != nil {
		base.SpotOnEveryone = *g.SpotOnEveryone
	}
	if g.SpotOnEveryoneMinimum != nil {
		base.SpotOnEveryoneMinimum = *g.SpotOnEveryoneMinimum
	}
	if g.HighestValue != nil {
		base.HighestValue = *g.HighestValue
	}
	if g.WildcardEnabled != nil {
		base.WildcardEnabled = *g.WildcardEnabled
	}
	return base
}

type CreateGameData struct {
	PlayerName string         `json:"player_name,omitempty"`
	GameRules  *GameRulesData `json:"game_rules,omitempty"`
}

type JoinGameData struct {
	PlayerName string `json:"player_name,omitempty"`
	RoomID     string `json:"room_id"`
}

type LeaveGameData struct {
	RoomID string `json:"room_id"`
}

type PlayerBetData struct {
	CurrentBet game.Bet `json:"current_bet"`
}

// Server → Client Messages

type ErrorData struct {
	Message string `json:"message"`
}

type LeftRoomData struct {
	Message string `json:"message"`
}

// PlayerView is one player's entry in a room state broadcast. Dice is
// only populated in the owning player's own view; everyone else sees
// the count.
type PlayerView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsHost     bool   `json:"is_host"`
	Eliminated bool   `json:"eliminated"`
	DiceCount  int    `json:"dice_count"`
	Dice       []int  `json:"dice,omitempty"`
}

// RoomStateData is the full room state as one recipient is allowed to
// see it.
type RoomStateData struct {
	RoomID            string       `json:"room_id"`
	Status            string       `json:"status"`
	Players           []PlayerView `json:"players"`
	CurrentPlayerTurn string       `json:"current_player_turn,omitempty"`
	CurrentBet        *game.Bet    `json:"current_bet,omitempty"`
	Rules             game.Rules   `json:"rules"`
}

// ChallengeResultData reports a resolved bluff or spot-on call. Only
// the aggregate matching total is revealed; individual dice stay hidden
// apart from each recipient's own rerolled set inside RoomState.
type ChallengeResultData struct {
	RoomState    RoomStateData `json:"room_state"`
	Kind         string        `json:"kind"`
	Bet          game.Bet      `json:"bet"`
	Total        int           `json:"total"`
	ChallengerID string        `json:"challenger_id"`
	BetterID     string        `json:"better_id"`
	Losers       []string      `json:"losers"`
	Eliminated   []string      `json:"eliminated,omitempty"`
}

// GameEndedData is the terminal broadcast when one player remains.
type GameEndedData struct {
	RoomState RoomStateData `json:"room_state"`
	WinnerID  string        `json:"winner_id,omitempty"`
	Total     int           `json:"total,omitempty"`
	Bet       *game.Bet     `json:"bet,omitempty"`
}

// RoomStateFor builds recipientID's redacted view of a snapshot. A
// player never receives another living player's raw dice values.
func RoomStateFor(snap game.Snapshot, recipientID string) RoomStateData {
	state := RoomStateData{
		RoomID:            snap.RoomID,
		Status:            snap.Status.String(),
		CurrentPlayerTurn: snap.CurrentTurn,
		Rules:             snap.Rules,
	}
	if snap.CurrentBet != nil {
		b := *snap.CurrentBet
		state.CurrentBet = &b
	}
	state.Players = make([]PlayerView, 0, len(snap.Players))
	for _, p := range snap.Players {
		view := PlayerView{
			ID:         p.ID,
			Name:       p.Name,
			IsHost:     p.IsHost,
			Eliminated: p.Eliminated,
			DiceCount:  len(p.Dice),
		}
		if p.ID == recipientID {
			view.Dice = append([]int(nil), p.Dice...)
		}
		state.Players = append(state.Players, view)
	}
	return state
}

func outcomeKindString(kind game.OutcomeKind) string {
	switch kind {
	case game.OutcomeBluffResolved:
		return "bluff"
	case game.OutcomeSpotOnResolved:
		return "spot_on"
	default:
		return "escalation"
	}
}
