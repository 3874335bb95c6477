package repository

import (
	"context"
	"time"

	"github.com/freeeve/gridclash/internal/model"
	"github.com/freeeve/gridclash/pkg/battle"
)

// SessionStore keeps round-1 carried state between requests (Redis).
// It backs up the client echo; it never replaces it.
type SessionStore interface {
	SaveCarried(ctx context.Context, gameID string, state battle.CarriedState, ttl time.Duration) error
	LoadCarried(ctx context.Context, gameID string) (*battle.CarriedState, error)
	DeleteCarried(ctx context.Context, gameID string) error
}

// ResultRepository records finished games (Postgres).
type ResultRepository interface {
	RecordResult(ctx context.Context, r *model.GameResult) error
	ListRecent(ctx context.Context, limit int) ([]model.GameResult, error)
	Stats(ctx context.Context) (*model.Stats, error)
}
