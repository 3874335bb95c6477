package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/freeeve/gridclash/internal/model"
	"github.com/freeeve/gridclash/pkg/battle"
)

// ResultRepo handles finished-game history.
type ResultRepo struct {
	db *sql.DB
}

// NewResultRepo creates a ResultRepo.
func NewResultRepo(db *sql.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// RecordResult inserts a finished game. ID and CreatedAt are filled in on r.
func (r *ResultRepo) RecordResult(ctx context.Context, res *model.GameResult) error {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	finalMap := res.FinalMap
	if len(finalMap) == 0 {
		finalMap = []byte("null")
	}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO game_results (id, game_id, game_winner, player_army_type, player_count, player_strength,
		                           ai_army_type, ai_count, ai_strength, player_r2_pool, ai_r2_pool, final_map)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING created_at`,
		res.ID, res.GameID, res.GameWinner, res.PlayerArmyType, res.PlayerCount, res.PlayerStrength,
		res.OpponentArmyType, res.OpponentCount, res.OpponentStrength, res.PlayerR2Pool, res.OpponentR2Pool, string(finalMap),
	).Scan(&res.CreatedAt)
	if err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	return nil
}

// ListRecent returns the most recent finished games, newest first.
func (r *ResultRepo) ListRecent(ctx context.Context, limit int) ([]model.GameResult, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, game_id, game_winner, player_army_type, player_count, player_strength,
		        ai_army_type, ai_count, ai_strength, player_r2_pool, ai_r2_pool, final_map, created_at
		 FROM game_results ORDER BY created_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	results := []model.GameResult{}
	for rows.Next() {
		var g model.GameResult
		var finalMap []byte
		if err := rows.Scan(&g.ID, &g.GameID, &g.GameWinner, &g.PlayerArmyType, &g.PlayerCount, &g.PlayerStrength,
			&g.OpponentArmyType, &g.OpponentCount, &g.OpponentStrength, &g.PlayerR2Pool, &g.OpponentR2Pool,
			&finalMap, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		g.FinalMap = finalMap
		results = append(results, g)
	}
	return results, rows.Err()
}

// Stats counts finished games by winner.
func (r *ResultRepo) Stats(ctx context.Context) (*model.Stats, error) {
	var s model.Stats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE game_winner = $1),
		        COUNT(*) FILTER (WHERE game_winner = $2),
		        COUNT(*) FILTER (WHERE game_winner = $3)
		 FROM game_results`,
		string(battle.WinnerPlayer), string(battle.WinnerOpponent), string(battle.Draw),
	).Scan(&s.Games, &s.PlayerWins, &s.AIWins, &s.Draws)
	if err != nil {
		return nil, fmt.Errorf("result stats: %w", err)
	}
	return &s, nil
}
