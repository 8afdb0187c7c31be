package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants used on the wire.
const (
	// Client to server messages
	MessageTypeCreateGame MessageType = "create_game"
	MessageTypeJoinGame   MessageType = "join_game"
	MessageTypeLeaveGame  MessageType = "leave_game"
	MessageTypeStartGame  MessageType = "start_game"
	MessageTypePlayerBet  MessageType = "player_bet"

	// Server to client messages
	MessageTypeCreatedGame     MessageType = "created_game"
	MessageTypeJoinedGame      MessageType = "joined_game"
	MessageTypePlayerJoined    MessageType = "player_joined_room"
	MessageTypeLeftRoom        MessageType = "left_room"
	MessageTypePlayerLeft      MessageType = "player_left_room"
	MessageTypeNextPlayerTurn  MessageType = "next_player_turn"
	MessageTypeChallengeResult MessageType = "challenge_result"
	MessageTypeGameEnded       MessageType = "game_ended"
	MessageTypeError           MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
