package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freeeve/gridclash/pkg/battle"
)

func carriedKey(gameID string) string { return "game:" + gameID + ":carried" }

// SaveCarried stores a game's round-1 carried state with an expiry.
func (c *Client) SaveCarried(ctx context.Context, gameID string, state battle.CarriedState, ttl time.Duration) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal carried state: %w", err)
	}
	if err := c.rdb.Set(ctx, carriedKey(gameID), data, ttl).Err(); err != nil {
		return fmt.Errorf("save carried state: %w", err)
	}
	return nil
}

// LoadCarried returns a game's carried state, or nil if none is stored.
func (c *Client) LoadCarried(ctx context.Context, gameID string) (*battle.CarriedState, error) {
	data, err := c.rdb.Get(ctx, carriedKey(gameID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load carried state: %w", err)
	}
	var state battle.CarriedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal carried state: %w", err)
	}
	return &state, nil
}

// DeleteCarried removes a game's carried state once the game is over.
func (c *Client) DeleteCarried(ctx context.Context, gameID string) error {
	return c.rdb.Del(ctx, carriedKey(gameID)).Err()
}
