package server

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/perudohq/perudod/internal/dice"
	"github.com/perudohq/perudod/internal/game"
	"github.com/perudohq/perudod/internal/randutil"
	"github.com/perudohq/perudod/internal/registry"

	rand "math/rand/v2"
)

// Gateway translates inbound connection events into registry and room
// calls, and room outcomes back into per-connection emissions. All
// hidden-information redaction happens here: rooms hand out unredacted
// snapshots, and every emission is built per recipient via RoomStateFor.
type Gateway struct {
	logger   *log.Logger
	registry *registry.Registry
	server   *Server
	defaults game.Rules

	// Parent RNG from which each room derives its own seeded source.
	// Room sources are only ever used under that room's mutex.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewGateway creates a gateway. rng seeds each room's dice and opening
// seat pick, so a fixed seed makes an entire server run reproducible.
func NewGateway(logger *log.Logger, reg *registry.Registry, srv *Server, defaults game.Rules, rng *rand.Rand) *Gateway {
	return &Gateway{
		logger:   logger.WithPrefix("gateway"),
		registry: reg,
		server:   srv,
		defaults: defaults,
		rng:      rng,
	}
}

func (g *Gateway) newRoom(id string, rules game.Rules) *game.Room {
	g.rngMu.Lock()
	seed := g.rng.Int64()
	g.rngMu.Unlock()

	roomRNG := randutil.New(seed)
	return game.NewRoom(id, rules, dice.NewRoller(roomRNG), roomRNG.IntN, g.logger)
}

// CreateGame creates a room, seats the creator as host and replies with
// the creator's view of the new room.
func (g *Gateway) CreateGame(c *Connection, data CreateGameData) {
	name := data.PlayerName
	if name == "" {
		name = "Player 1"
	}
	rules := data.GameRules.Apply(g.defaults)

	room, err := g.registry.Create(func(id string) *game.Room {
		return g.newRoom(id, rules)
	})
	if err != nil {
		g.logger.Error("Failed to create room", "error", err)
		c.sendError("Unable to create game")
		return
	}

	if _, err := room.Join(c.PlayerID(), name); err != nil {
		c.sendError(err.Error())
		return
	}
	c.SetRoom(room.ID())

	g.reply(c, MessageTypeCreatedGame, RoomStateFor(room.Snapshot(), c.PlayerID()))
}

// JoinGame seats a player in an existing room, replies with their view
// and notifies the rest of the room.
func (g *Gateway) JoinGame(c *Connection, data JoinGameData) {
	if data.RoomID == "" {
		c.sendError("Unable to join empty room")
		return
	}
	room, ok := g.registry.Get(data.RoomID)
	if !ok {
		c.sendError(game.ErrInvalidRoom.Error())
		return
	}

	name := data.PlayerName
	if name == "" {
		name = "Player"
	}
	if _, err := room.Join(c.PlayerID(), name); err != nil {
		c.sendError(err.Error())
		return
	}
	c.SetRoom(room.ID())
	g.registry.Touch(room.ID())

	snap := room.Snapshot()
	g.reply(c, MessageTypeJoinedGame, RoomStateFor(snap, c.PlayerID()))
	g.broadcastState(room.ID(), MessageTypePlayerJoined, snap, c)
}

// LeaveGame removes the player from the room. The leaver always gets an
// acknowledgement, even for an unknown room id.
func (g *Gateway) LeaveGame(c *Connection, data LeaveGameData) {
	g.leave(c, data.RoomID)
	g.reply(c, MessageTypeLeftRoom, LeftRoomData{Message: "Successfully left room"})
}

// Disconnected handles a connection's abrupt disappearance as an
// implicit leave. The server's unregister path guarantees it runs at
// most once per connection.
func (g *Gateway) Disconnected(c *Connection) {
	g.leave(c, c.Room())
}

func (g *Gateway) leave(c *Connection, roomID string) {
	if roomID == "" {
		return
	}
	room, ok := g.registry.Get(roomID)
	if !ok {
		return
	}

	empty := room.Leave(c.PlayerID())
	c.SetRoom("")

	if empty {
		g.registry.Remove(roomID)
		return
	}
	g.registry.Touch(roomID)

	g.broadcastState(roomID, MessageTypePlayerLeft, room.Snapshot(), nil)
}

// StartGame begins the bet loop and announces the opening turn.
func (g *Gateway) StartGame(c *Connection) {
	roomID := c.Room()
	if roomID == "" {
		c.sendError(game.ErrNotHost.Error())
		return
	}
	room, ok := g.registry.Get(roomID)
	if !ok {
		c.sendError(game.ErrInvalidRoom.Error())
		return
	}

	if err := room.Start(c.PlayerID()); err != nil {
		c.sendError(err.Error())
		return
	}
	g.registry.Touch(roomID)

	g.broadcastState(roomID, MessageTypeNextPlayerTurn, room.Snapshot(), nil)
}

// PlayerBet handles an escalation or challenge. Rejections go back to
// the actor only; resolutions are broadcast room-wide with per-recipient
// redaction.
func (g *Gateway) PlayerBet(c *Connection, data PlayerBetData) {
	roomID := c.Room()
	if roomID == "" {
		c.sendError(game.ErrNoActiveGame.Error())
		return
	}
	room, ok := g.registry.Get(roomID)
	if !ok {
		c.sendError(game.ErrNoActiveGame.Error())
		return
	}

	outcome, err := room.Bet(c.PlayerID(), data.CurrentBet)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	g.registry.Touch(roomID)

	snap := room.Snapshot()
	switch {
	case outcome.Kind == game.OutcomeEscalated:
		g.broadcastState(roomID, MessageTypeNextPlayerTurn, snap, nil)

	case outcome.Ended:
		bet := outcome.Bet
		g.server.BroadcastToRoom(roomID, nil, func(recipientID string) (*Message, error) {
			return NewMessage(MessageTypeGameEnded, GameEndedData{
				RoomState: RoomStateFor(snap, recipientID),
				WinnerID:  outcome.WinnerID,
				Total:     outcome.Total,
				Bet:       &bet,
			})
		})

	default:
		g.server.BroadcastToRoom(roomID, nil, func(recipientID string) (*Message, error) {
			return NewMessage(MessageTypeChallengeResult, ChallengeResultData{
				RoomState:    RoomStateFor(snap, recipientID),
				Kind:         outcomeKindString(outcome.Kind),
				Bet:          outcome.Bet,
				Total:        outcome.Total,
				ChallengerID: outcome.ChallengerID,
				BetterID:     outcome.BetterID,
				Losers:       outcome.Losers,
				Eliminated:   outcome.Eliminated,
			})
		})
	}
}

func (g *Gateway) reply(c *Connection, t MessageType, data interface{}) {
	msg, err := NewMessage(t, data)
	if err != nil {
		g.logger.Error("Failed to create message", "type", t, "error", err)
		return
	}
	_ = c.SendMessage(msg)
}

func (g *Gateway) broadcastState(roomID string, t MessageType, snap game.Snapshot, exclude *Connection) {
	g.server.BroadcastToRoom(roomID, exclude, func(recipientID string) (*Message, error) {
		return NewMessage(t, RoomStateFor(snap, recipientID))
	})
}
