package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perudohq/perudod/internal/dice"
	"github.com/perudohq/perudod/internal/game"
)

func testSnapshot() game.Snapshot {
	return game.Snapshot{
		RoomID:      "abcd",
		Status:      game.StatusOngoing,
		CurrentTurn: "p1",
		CurrentBet:  &game.Bet{Face: 3, Value: 4},
		Rules:       game.DefaultRules(),
		Players: []game.PlayerSnapshot{
			{ID: "p1", Name: "Alice", IsHost: true, Dice: dice.Set{3, 3, 1, 5, 6}},
			{ID: "p2", Name: "Bob", Dice: dice.Set{2, 2, 4}},
			{ID: "p3", Name: "Carol", Eliminated: true, Dice: dice.Set{}},
		},
	}
}

func TestRoomStateForRedactsOtherPlayersDice(t *testing.T) {
	state := RoomStateFor(testSnapshot(), "p2")

	require.Len(t, state.Players, 3)
	byID := map[string]PlayerView{}
	for _, p := range state.Players {
		byID[p.ID] = p
	}

	// The recipient sees their own dice; everyone else is count-only.
	assert.Equal(t, []int{2, 2, 4}, byID["p2"].Dice)
	assert.Equal(t, 3, byID["p2"].DiceCount)
	assert.Nil(t, byID["p1"].Dice)
	assert.Equal(t, 5, byID["p1"].DiceCount)
	assert.Nil(t, byID["p3"].Dice)
	assert.Equal(t, 0, byID["p3"].DiceCount)
	assert.True(t, byID["p3"].Eliminated)

	assert.Equal(t, "abcd", state.RoomID)
	assert.Equal(t, "Game has started", state.Status)
	assert.Equal(t, "p1", state.CurrentPlayerTurn)
	require.NotNil(t, state.CurrentBet)
	assert.Equal(t, 4, state.CurrentBet.Value)
}

func TestRoomStateForNonPlayerSeesNoDice(t *testing.T) {
	state := RoomStateFor(testSnapshot(), "spectator")
	for _, p := range state.Players {
		assert.Nil(t, p.Dice, p.ID)
	}
}

func TestRedactedStateOmitsDiceOnTheWire(t *testing.T) {
	// The redaction must hold after JSON encoding too: no dice values
	// for other players anywhere in the payload.
	msg, err := NewMessage(MessageTypeNextPlayerTurn, RoomStateFor(testSnapshot(), "p2"))
	require.NoError(t, err)

	var decoded struct {
		Players []PlayerView `json:"players"`
	}
	require.NoError(t, json.Unmarshal(msg.Data, &decoded))
	for _, p := range decoded.Players {
		if p.ID != "p2" {
			assert.Empty(t, p.Dice, p.ID)
		}
	}
}

func TestGameRulesDataApply(t *testing.T) {
	base := game.DefaultRules()

	t.Run("nil leaves defaults", func(t *testing.T) {
		var data *GameRulesData
		assert.Equal(t, base, data.Apply(base))
	})

	t.Run("partial override", func(t *testing.T) {
		count := 3
		spotOn := false
		data := &GameRulesData{StartingDiceCount: &count, SpotOn: &spotOn}

		got := data.Apply(base)
		assert.Equal(t, 3, got.StartingDiceCount)
		assert.False(t, got.SpotOn)
		// Untouched fields keep their defaults.
		assert.Equal(t, 6, got.HighestValue)
		assert.True(t, got.SpotOnEveryone)
	})
}

func TestMessageRoundTrip(t *testing.T) {
	msg, err := NewMessage(MessageTypeError, ErrorData{Message: "Invalid room code"})
	require.NoError(t, err)
	assert.Equal(t, MessageTypeError, msg.Type)
	assert.False(t, msg.Timestamp.IsZero())

	var data ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "Invalid room code", data.Message)
}
