package handler

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/gridclash/internal/service"
)

// Events the hub emits on its own, alongside the service's round events.
const (
	EventConnected = "connected"
	EventFeedError = "feed_error"
)

// maxFeedsPerConn caps how many games one socket may follow at once.
const maxFeedsPerConn = 4

var (
	ErrTooManyFeeds  = errors.New("too many followed games on this connection")
	ErrNotRegistered = errors.New("connection is not registered")
)

// WSEvent is the envelope for all WebSocket messages.
type WSEvent struct {
	Type   string `json:"type"`
	GameID string `json:"game_id"`
	Data   any    `json:"data"`
}

// ClientMessage is a feed command from the client.
type ClientMessage struct {
	Action string `json:"action"` // "subscribe" or "unsubscribe"
	GameID string `json:"game_id"`
}

// WSConn is one socket's outbound queue and the games it follows.
type WSConn struct {
	conn  *websocket.Conn
	id    string
	send  chan []byte
	games map[string]struct{} // guarded by Hub.mu
}

func newWSConn(conn *websocket.Conn, id string) *WSConn {
	return &WSConn{
		conn:  conn,
		id:    id,
		send:  make(chan []byte, sendBufSize),
		games: make(map[string]struct{}),
	}
}

// gameFeed is the set of connections following one game. A feed exists from
// its first follower until game_ended is delivered or the last follower leaves.
type gameFeed struct {
	followers map[*WSConn]struct{}
}

// Hub routes round events to per-game feeds. When a game ends its feed is
// closed, and a connection left following nothing is closed with it.
type Hub struct {
	mu    sync.Mutex
	conns map[*WSConn]struct{}
	feeds map[string]*gameFeed
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[*WSConn]struct{}),
		feeds: make(map[string]*gameFeed),
	}
}

// Register adds a connection to the hub.
func (h *Hub) Register(c *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = struct{}{}
}

// Unregister leaves every feed c follows and closes its queue. Calling it
// for a connection the hub already dropped is a no-op.
func (h *Hub) Unregister(c *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[c]; ok {
		h.drop(c)
	}
}

// Follow adds c to gameID's feed, opening the feed if needed.
func (h *Hub) Follow(c *WSConn, gameID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[c]; !ok {
		return ErrNotRegistered
	}
	if _, ok := c.games[gameID]; ok {
		return nil
	}
	if len(c.games) >= maxFeedsPerConn {
		return ErrTooManyFeeds
	}
	feed := h.feeds[gameID]
	if feed == nil {
		feed = &gameFeed{followers: make(map[*WSConn]struct{})}
		h.feeds[gameID] = feed
	}
	feed.followers[c] = struct{}{}
	c.games[gameID] = struct{}{}
	return nil
}

// Unfollow removes c from gameID's feed.
func (h *Hub) Unfollow(c *WSConn, gameID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leave(c, gameID)
}

// Publish queues an event for every follower of gameID. Slow consumers lose
// the event rather than block the round that produced it. A game_ended event
// is the last one a feed carries.
func (h *Hub) Publish(gameID string, event WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("gameId", gameID).Msg("Failed to marshal WebSocket event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	feed := h.feeds[gameID]
	if feed == nil {
		return
	}
	for c := range feed.followers {
		h.enqueue(c, gameID, data)
	}
	if event.Type == service.EventGameEnded {
		h.closeFeed(gameID, feed)
	}
}

// BroadcastGameEvent implements service.Broadcaster.
func (h *Hub) BroadcastGameEvent(gameID string, eventType string, data any) {
	h.Publish(gameID, WSEvent{Type: eventType, GameID: gameID, Data: data})
}

// notify queues an event for c alone, if the hub still holds it.
func (h *Hub) notify(c *WSConn, event WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[c]; ok {
		h.enqueue(c, event.GameID, data)
	}
}

// ConnectionCount returns the number of registered connections.
func (h *Hub) ConnectionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// FeedCount returns the number of open game feeds.
func (h *Hub) FeedCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.feeds)
}

// FollowerCount returns the number of connections following a game.
func (h *Hub) FollowerCount(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if feed := h.feeds[gameID]; feed != nil {
		return len(feed.followers)
	}
	return 0
}

// The helpers below expect h.mu held.

func (h *Hub) enqueue(c *WSConn, gameID string, data []byte) {
	select {
	case c.send <- data:
	default:
		log.Warn().Str("connId", c.id).Str("gameId", gameID).Msg("Dropping WebSocket message, buffer full")
	}
}

func (h *Hub) leave(c *WSConn, gameID string) {
	delete(c.games, gameID)
	feed := h.feeds[gameID]
	if feed == nil {
		return
	}
	delete(feed.followers, c)
	if len(feed.followers) == 0 {
		delete(h.feeds, gameID)
	}
}

func (h *Hub) closeFeed(gameID string, feed *gameFeed) {
	delete(h.feeds, gameID)
	for c := range feed.followers {
		delete(c.games, gameID)
		if len(c.games) == 0 {
			h.drop(c)
		}
	}
	log.Debug().Str("gameId", gameID).Int("followers", len(feed.followers)).Msg("Game feed closed")
}

// drop forgets c and closes its queue; the writer drains what is left and
// then sends a close frame.
func (h *Hub) drop(c *WSConn) {
	for gameID := range c.games {
		h.leave(c, gameID)
	}
	delete(h.conns, c)
	close(c.send)
}
