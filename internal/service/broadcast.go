package service

// Live feed event types.
const (
	EventRoundResolved = "round_resolved"
	EventGameEnded     = "game_ended"
)

// Broadcaster sends game events to live subscribers.
// Implemented by the WebSocket hub.
type Broadcaster interface {
	BroadcastGameEvent(gameID string, eventType string, data any)
}

// NoopBroadcaster is a no-op implementation for testing or when WS is disabled.
type NoopBroadcaster struct{}

func (NoopBroadcaster) BroadcastGameEvent(string, string, any) {}
