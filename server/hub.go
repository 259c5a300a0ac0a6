package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"

	"pokerhive.com/server/game"
	"pokerhive.com/server/room"
	"pokerhive.com/server/util"
)

var hubLogger = util.GetZeroLogger("server::hub", nil)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The game client is served from a different origin than the api.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks connected clients and routes engine notifications to them. It
// satisfies game.MessageReceiver, so the engine does not know websockets
// exist.
type Hub struct {
	manager *game.Manager
	secret  []byte

	mu      sync.RWMutex
	clients map[string]*Client            // playerID -> connection
	rooms   map[string]map[string]*Client // roomID -> playerID -> connection
}

func NewHub(secret []byte) *Hub {
	return &Hub{
		secret:  secret,
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
	}
}

// SetManager breaks the construction cycle: the manager needs the hub as its
// receiver, and the hub needs the manager to route requests.
func (h *Hub) SetManager(m *game.Manager) {
	h.manager = m
}

// HandleUpgrade authenticates the token from the query string and takes over
// the connection.
func (h *Hub) HandleUpgrade(w http.ResponseWriter, r *http.Request) {
	playerID, name, err := VerifyToken(h.secret, r.URL.Query().Get("token"))
	if err != nil {
		hubLogger.Info().Err(err).Msg("Rejecting websocket with bad token")
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hubLogger.Error().Err(err).Msg("Websocket upgrade failed")
		return
	}
	c := newClient(h, conn, playerID, name)
	h.register(c)
	go c.writePump()
	go c.readPump()
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	old := h.clients[c.playerID]
	h.clients[c.playerID] = c
	h.mu.Unlock()
	if old != nil {
		// A reconnect supersedes the old socket.
		close(old.send)
	}
	hubLogger.Info().Str("player", c.playerID).Msg("Player connected")
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	current := h.clients[c.playerID]
	if current == c {
		delete(h.clients, c.playerID)
	}
	roomID := c.roomID
	if roomID != "" {
		if members, ok := h.rooms[roomID]; ok && members[c.playerID] == c {
			delete(members, c.playerID)
		}
	}
	h.mu.Unlock()

	if current != c || roomID == "" {
		return
	}
	// The seat survives the dropped socket; the engine folds the player out
	// of the running hand and frees the seat at the next deal.
	if g, err := h.manager.GetGame(roomID); err == nil {
		if err := g.DropPlayer(c.playerID); err != nil {
			hubLogger.Info().Str("player", c.playerID).Err(err).Msg("Drop on disconnect failed")
		}
	}
	hubLogger.Info().Str("player", c.playerID).Str("room", roomID).Msg("Player disconnected")
}

// BroadcastToRoom delivers an engine message to every connected member.
func (h *Hub) BroadcastToRoom(roomID string, msg *game.Message) {
	data, err := jsoniter.Marshal(msg)
	if err != nil {
		hubLogger.Error().Err(err).Msg("Failed to marshal broadcast")
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.rooms[roomID] {
		c.enqueue(data)
	}
}

// SendToPlayer delivers a private engine message, e.g. hole cards.
func (h *Hub) SendToPlayer(roomID string, playerID string, msg *game.Message) {
	data, err := jsoniter.Marshal(msg)
	if err != nil {
		hubLogger.Error().Err(err).Msg("Failed to marshal direct message")
		return
	}
	h.mu.RLock()
	c := h.clients[playerID]
	h.mu.RUnlock()
	if c != nil {
		c.enqueue(data)
	}
}

func (h *Hub) handleClientMessage(c *Client, msg *ClientMessage) {
	res := &Result{Type: "result", RequestID: msg.RequestID, OK: true}
	var err error
	switch msg.Type {
	case ClientMsgCreateRoom:
		err = h.createRoom(c, msg.CreateRoom, res)
	case ClientMsgJoinRoom:
		err = h.joinRoom(c, msg.JoinRoom, res)
	case ClientMsgLeaveRoom:
		err = h.leaveRoom(c)
	case ClientMsgStartGame:
		err = h.startGame(c)
	case ClientMsgAction:
		err = h.playerAction(c, msg.Action)
	case ClientMsgChat:
		err = h.chat(c, msg.Chat)
	case ClientMsgListRooms:
		res.Rooms = h.roomList()
	default:
		err = game.StateError{Reason: "unknown message type"}
	}
	if err != nil {
		res.OK = false
		res.Error = err.Error()
	}
	c.sendResult(res)
}

func (h *Hub) createRoom(c *Client, req *CreateRoomRequest, res *Result) error {
	if req == nil {
		return game.StateError{Reason: "missing createRoom payload"}
	}
	if c.roomID != "" {
		return game.StateError{Reason: "already in a room"}
	}
	r, g := h.manager.CreateRoom(room.CreateOptions{
		Region:   req.Region,
		MaxSeats: req.MaxSeats,
		Password: req.Password,
	})
	if err := g.AddPlayer(h.newPlayer(c, req.Avatar)); err != nil {
		h.manager.EndGame(r.ID)
		return err
	}
	h.enterRoom(c, r.ID)
	res.RoomID = r.ID
	return nil
}

func (h *Hub) joinRoom(c *Client, req *JoinRoomRequest, res *Result) error {
	if req == nil {
		return game.StateError{Reason: "missing joinRoom payload"}
	}
	if c.roomID != "" {
		return game.StateError{Reason: "already in a room"}
	}
	r, err := h.manager.Registry().Authorize(req.RoomID, req.Password)
	if err != nil {
		return err
	}

	g, err := h.manager.GetGame(r.ID)
	if err != nil {
		return err
	}
	// Rejoin reclaims an existing seat instead of taking a new one.
	if err := g.Reconnect(c.playerID); err != nil {
		if _, err := h.manager.JoinRoom(req.RoomID, req.Password, h.newPlayer(c, req.Avatar)); err != nil {
			return err
		}
	}
	h.enterRoom(c, r.ID)
	res.RoomID = r.ID
	return nil
}

func (h *Hub) newPlayer(c *Client, avatar string) *room.Player {
	if avatar == "" {
		avatar = room.RandomAvatar()
	}
	c.avatar = avatar
	return &room.Player{
		ID:           c.playerID,
		PersistentID: c.playerID,
		Name:         c.name,
		Avatar:       avatar,
	}
}

func (h *Hub) enterRoom(c *Client, roomID string) {
	h.mu.Lock()
	c.roomID = roomID
	members, ok := h.rooms[roomID]
	if !ok {
		members = make(map[string]*Client)
		h.rooms[roomID] = members
	}
	members[c.playerID] = c
	h.mu.Unlock()
	h.systemChat(roomID, c.name+" joined the room")
}

func (h *Hub) leaveRoom(c *Client) error {
	if c.roomID == "" {
		return game.StateError{Reason: "not in a room"}
	}
	roomID := c.roomID
	h.mu.Lock()
	c.roomID = ""
	if members, ok := h.rooms[roomID]; ok {
		delete(members, c.playerID)
	}
	h.mu.Unlock()

	g, err := h.manager.GetGame(roomID)
	if err != nil {
		return err
	}
	if err := g.DropPlayer(c.playerID); err != nil {
		return err
	}
	h.systemChat(roomID, c.name+" left the room")
	return nil
}

// startGame is host-only; the engine enforces that inside its event loop.
func (h *Hub) startGame(c *Client) error {
	if c.roomID == "" {
		return game.StateError{Reason: "not in a room"}
	}
	g, err := h.manager.GetGame(c.roomID)
	if err != nil {
		return err
	}
	return g.StartHandBy(c.playerID)
}

func (h *Hub) playerAction(c *Client, req *ActionRequest) error {
	if c.roomID == "" {
		return game.StateError{Reason: "not in a room"}
	}
	if req == nil {
		return game.StateError{Reason: "missing action payload"}
	}
	kind, ok := game.ParseActionKind(req.Kind)
	if !ok {
		return game.ValidationError{Reason: "unknown action kind"}
	}
	g, err := h.manager.GetGame(c.roomID)
	if err != nil {
		return err
	}
	return g.SubmitAction(c.playerID, kind, req.RaiseTotal)
}

func (h *Hub) chat(c *Client, req *ChatRequest) error {
	if c.roomID == "" {
		return game.StateError{Reason: "not in a room"}
	}
	if req == nil || req.Text == "" {
		return game.ValidationError{Reason: "empty message"}
	}
	if !c.chatLimiter.Allow() {
		return game.ValidationError{Reason: "sending messages too fast"}
	}
	h.BroadcastToRoom(c.roomID, &game.Message{
		Type:   game.MsgChat,
		RoomID: c.roomID,
		Chat: &game.Chat{
			Kind:      "player",
			SenderID:  c.playerID,
			Name:      c.name,
			Avatar:    c.avatar,
			Text:      req.Text,
			Timestamp: time.Now().UnixMilli(),
		},
	})
	return nil
}

func (h *Hub) systemChat(roomID string, text string) {
	h.BroadcastToRoom(roomID, &game.Message{
		Type:   game.MsgChat,
		RoomID: roomID,
		Chat: &game.Chat{
			Kind:      "system",
			Text:      text,
			Timestamp: time.Now().UnixMilli(),
		},
	})
}

func (h *Hub) roomList() []RoomSummary {
	rooms := h.manager.Registry().List()
	out := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomSummary{
			RoomID:      r.ID,
			Region:      r.Region,
			PlayerCount: len(r.Players),
			MaxSeats:    r.MaxSeats,
		})
	}
	return out
}
