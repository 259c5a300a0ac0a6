package server

import (
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"pokerhive.com/server/util"
)

var clientLogger = util.GetZeroLogger("server::client", nil)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendQueueSize  = 64
)

// Client is one websocket connection bound to an authenticated player. A
// player reconnecting replaces their old Client; the seat stays.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	playerID string
	name     string
	avatar   string
	roomID   string

	chatLimiter *rate.Limiter
}

func newClient(hub *Hub, conn *websocket.Conn, playerID string, name string) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, sendQueueSize),
		playerID:    playerID,
		name:        name,
		chatLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				clientLogger.Info().Str("player", c.playerID).Err(err).Msg("Websocket closed unexpectedly")
			}
			return
		}
		var msg ClientMessage
		if err := jsoniter.Unmarshal(data, &msg); err != nil {
			c.sendResult(&Result{Type: "result", OK: false, Error: "malformed message"})
			continue
		}
		c.hub.handleClientMessage(c, &msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// enqueue drops the message if the client's queue is full; a reader that far
// behind is about to be disconnected by the ping loop anyway.
func (c *Client) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
		clientLogger.Warn().Str("player", c.playerID).Msg("Send queue full, dropping message")
	}
}

func (c *Client) sendResult(res *Result) {
	data, err := jsoniter.Marshal(res)
	if err != nil {
		clientLogger.Error().Err(err).Msg("Failed to marshal result")
		return
	}
	c.enqueue(data)
}
