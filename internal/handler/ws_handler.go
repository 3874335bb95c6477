package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/gridclash/internal/logger"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = pongWait * 9 / 10
	maxMsgSize  = 512
	sendBufSize = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS handled by middleware
	},
}

// WSHandler serves live game feeds.
type WSHandler struct {
	hub *Hub
}

// NewWSHandler creates a WSHandler.
func NewWSHandler(hub *Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// ServeWS handles GET /api/v1/ws?game_id= and upgrades to a WebSocket that
// follows that game. The socket closes once every game it follows has ended.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	if gameID == "" {
		writeError(w, http.StatusBadRequest, "missing game_id parameter")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	id := logger.RequestIDFromContext(r.Context())
	if id == "" {
		id = logger.NewRequestID()
	}
	c := newWSConn(conn, id)
	// Queued before Register, so a game ending right away cannot close the
	// queue first.
	if hello, err := json.Marshal(WSEvent{Type: EventConnected, GameID: gameID, Data: map[string]any{}}); err == nil {
		c.send <- hello
	}
	h.hub.Register(c)
	if err := h.hub.Follow(c, gameID); err != nil {
		log.Warn().Err(err).Str("connId", id).Str("gameId", gameID).Msg("Could not follow game")
	}

	go h.writeLoop(c)
	go h.readLoop(c)

	log.Info().Str("connId", id).Str("gameId", gameID).Int("total", h.hub.ConnectionCount()).Msg("WebSocket client connected")
}

// command applies one client message to c's feeds. Failures are reported
// back on the socket as feed_error events.
func (h *WSHandler) command(c *WSConn, raw []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.hub.notify(c, feedError("", "invalid message"))
		return
	}
	if msg.GameID == "" {
		h.hub.notify(c, feedError("", "missing game_id"))
		return
	}
	switch msg.Action {
	case "subscribe":
		if err := h.hub.Follow(c, msg.GameID); err != nil {
			h.hub.notify(c, feedError(msg.GameID, err.Error()))
		}
	case "unsubscribe":
		h.hub.Unfollow(c, msg.GameID)
	default:
		h.hub.notify(c, feedError(msg.GameID, "unknown action "+msg.Action))
	}
}

func feedError(gameID, reason string) WSEvent {
	return WSEvent{Type: EventFeedError, GameID: gameID, Data: map[string]string{"error": reason}}
}

func (h *WSHandler) readLoop(c *WSConn) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
		log.Info().Str("connId", c.id).Msg("WebSocket client disconnected")
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("connId", c.id).Msg("WebSocket unexpected close")
			}
			return
		}
		h.command(c, raw)
	}
}

// writeLoop sends each queued event as its own text frame and keeps the
// socket alive with pings. A closed queue ends the socket with a close frame.
func (h *WSHandler) writeLoop(c *WSConn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
