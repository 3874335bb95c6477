package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/freeeve/gridclash/internal/carry"
	"github.com/freeeve/gridclash/internal/logger"
	"github.com/freeeve/gridclash/internal/model"
	"github.com/freeeve/gridclash/internal/repository"
	"github.com/freeeve/gridclash/pkg/battle"
)

// RoundOneRequest is the body of a round-1 submission.
type RoundOneRequest struct {
	PlayerDeployments json.RawMessage `json:"player_deployments"`
}

// RoundTwoRequest is the body of a round-2 submission: the new deployments
// plus the round-1 state echoed back by the client.
type RoundTwoRequest struct {
	PlayerDeployments json.RawMessage `json:"player_deployments_r2"`
	battle.CarriedInput
	GameID     string `json:"game_id"`
	CarryToken string `json:"carry_token"`
}

// RoundOneResponse is the round-1 result tagged with the game it started.
type RoundOneResponse struct {
	GameID string `json:"game_id"`
	*battle.RoundOneResult
	CarryToken string `json:"carry_token,omitempty"`
}

// RoundTwoResponse is the final round's result.
type RoundTwoResponse struct {
	GameID string `json:"game_id,omitempty"`
	*battle.RoundTwoResult
}

// RoundEvent is the payload broadcast when a round resolves.
type RoundEvent struct {
	Round      int                 `json:"round"`
	Results    battle.RoundOutcome `json:"results"`
	GameWinner battle.Winner       `json:"game_winner,omitempty"`
}

// RoundService resolves rounds. Every call is independent: round-2 state
// comes from the request, optionally backed up by the session store.
type RoundService struct {
	newSource   func() battle.Source
	broadcaster Broadcaster
	metrics     *roundMetrics

	// Optional collaborators; nil disables the feature.
	sessions     repository.SessionStore
	sessionTTL   time.Duration
	results      repository.ResultRepository
	signer       *carry.Signer
	requireToken bool
}

// NewRoundService creates a RoundService drawing from the process-wide source.
func NewRoundService(broadcaster Broadcaster) (*RoundService, error) {
	if broadcaster == nil {
		broadcaster = NoopBroadcaster{}
	}
	metrics, err := newRoundMetrics()
	if err != nil {
		return nil, err
	}
	return &RoundService{
		newSource:   battle.DefaultSource,
		broadcaster: broadcaster,
		metrics:     metrics,
		sessionTTL:  time.Hour,
	}, nil
}

// SetSource replaces the randomness used for each resolution, for tests.
func (s *RoundService) SetSource(fn func() battle.Source) {
	s.newSource = fn
}

// SetSessionStore enables the keyed carried-state store.
func (s *RoundService) SetSessionStore(store repository.SessionStore, ttl time.Duration) {
	s.sessions = store
	s.sessionTTL = ttl
}

// SetResultRepo enables finished-game history.
func (s *RoundService) SetResultRepo(repo repository.ResultRepository) {
	s.results = repo
}

// SetSigner enables carry tokens. With require set, round 2 rejects
// submissions that carry no token.
func (s *RoundService) SetSigner(signer *carry.Signer, require bool) {
	s.signer = signer
	s.requireToken = require
}

// ResolveRoundOne validates the player's round-1 deployments and plays the round.
func (s *RoundService) ResolveRoundOne(ctx context.Context, req *RoundOneRequest) (*RoundOneResponse, error) {
	inputs, err := battle.ParseSubmission(req.PlayerDeployments, "player_deployments")
	if err != nil {
		return nil, s.reject(ctx, 1, err)
	}
	res, err := battle.NewGame(s.newSource()).PlayRoundOne(inputs)
	if err != nil {
		return nil, s.reject(ctx, 1, err)
	}

	gameID := uuid.NewString()
	l := logger.ForRequest(ctx).With().Str("gameId", gameID).Logger()
	s.observe(ctx, gameID, 1, res.Results.Winner, res.Collisions, res.Unplaced)

	resp := &RoundOneResponse{GameID: gameID, RoundOneResult: res}
	carried := res.Carried()
	if s.signer != nil {
		token, err := s.signer.Sign(gameID, carried)
		if err != nil {
			return nil, fmt.Errorf("sign carry token: %w", err)
		}
		resp.CarryToken = token
	}
	if s.sessions != nil {
		if err := s.sessions.SaveCarried(ctx, gameID, carried, s.sessionTTL); err != nil {
			l.Warn().Err(err).Msg("Failed to save carried state")
		}
	}

	s.broadcaster.BroadcastGameEvent(gameID, EventRoundResolved, RoundEvent{Round: 1, Results: res.Results})
	l.Info().
		Str("winner", string(res.Results.Winner)).
		Int("playerPool", res.PlayerPool.Total).
		Int("aiPool", res.OpponentPool.Total).
		Msg("Round 1 resolved")
	return resp, nil
}

// ResolveRoundTwo plays the final round on top of the carried round-1 state
// and decides the game.
func (s *RoundService) ResolveRoundTwo(ctx context.Context, req *RoundTwoRequest) (*RoundTwoResponse, error) {
	l := logger.ForRequest(ctx)
	if req.GameID != "" {
		l = l.With().Str("gameId", req.GameID).Logger()
	}

	carried, err := req.CarriedInput.Parse()
	if err != nil {
		return nil, s.reject(ctx, 2, err)
	}
	if !carried.Complete() && req.GameID != "" && s.sessions != nil {
		stored, err := s.sessions.LoadCarried(ctx, req.GameID)
		if err != nil {
			l.Warn().Err(err).Msg("Failed to load carried state")
		} else if stored != nil {
			carried = carried.Merge(*stored)
		}
	}
	if err := carried.Check(); err != nil {
		return nil, s.reject(ctx, 2, err)
	}
	if err := s.verifyToken(req, carried); err != nil {
		return nil, s.reject(ctx, 2, err)
	}

	inputs, err := battle.ParseSubmission(req.PlayerDeployments, "player_deployments_r2")
	if err != nil {
		return nil, s.reject(ctx, 2, err)
	}
	res, err := battle.NewGame(s.newSource()).PlayRoundTwo(inputs, carried)
	if err != nil {
		return nil, s.reject(ctx, 2, err)
	}

	s.observe(ctx, req.GameID, 2, res.Results.Winner, res.Collisions, res.Unplaced)

	if req.GameID != "" {
		if s.sessions != nil {
			if err := s.sessions.DeleteCarried(ctx, req.GameID); err != nil {
				l.Warn().Err(err).Msg("Failed to delete carried state")
			}
		}
		s.broadcaster.BroadcastGameEvent(req.GameID, EventGameEnded,
			RoundEvent{Round: 2, Results: res.Results, GameWinner: res.GameWinner})
	}
	s.record(ctx, req.GameID, carried, res)

	l.Info().Str("winner", string(res.GameWinner)).Msg("Game resolved")
	return &RoundTwoResponse{GameID: req.GameID, RoundTwoResult: res}, nil
}

// verifyToken checks a carry token against the carried state it claims to sign.
func (s *RoundService) verifyToken(req *RoundTwoRequest, carried battle.CarriedState) error {
	if req.CarryToken == "" {
		if s.requireToken {
			return battle.NewError(battle.MissingCarriedState, "Missing carry_token in request.")
		}
		return nil
	}
	if s.signer == nil {
		return nil
	}
	claims, err := s.signer.Verify(req.CarryToken)
	if err != nil {
		return battle.NewError(battle.InvalidCarryToken, "Invalid or expired carry_token.")
	}
	if req.GameID != "" && claims.GameID != req.GameID {
		return battle.NewError(battle.InvalidCarryToken, "carry_token belongs to a different game.")
	}
	if !claims.State.Equal(carried) {
		return battle.NewError(battle.InvalidCarryToken, "Round 1 data does not match carry_token.")
	}
	return nil
}

// record stores a finished game. History is best effort.
func (s *RoundService) record(ctx context.Context, gameID string, carried battle.CarriedState, res *battle.RoundTwoResult) {
	if s.results == nil {
		return
	}
	l := logger.ForRequest(ctx)
	finalMap, err := json.Marshal(res.Map)
	if err != nil {
		l.Error().Err(err).Msg("Failed to encode final map")
		return
	}
	if gameID == "" {
		gameID = uuid.NewString()
	}
	result := &model.GameResult{
		GameID:           gameID,
		GameWinner:       string(res.GameWinner),
		PlayerArmyType:   string(res.Results.PlayerArmy.Type),
		PlayerCount:      res.Results.PlayerArmy.Count,
		PlayerStrength:   res.Results.PlayerArmy.Strength,
		OpponentArmyType: string(res.Results.OpponentArmy.Type),
		OpponentCount:    res.Results.OpponentArmy.Count,
		OpponentStrength: res.Results.OpponentArmy.Strength,
		PlayerR2Pool:     *carried.PlayerPool,
		OpponentR2Pool:   *carried.OpponentPool,
		FinalMap:         finalMap,
	}
	if err := s.results.RecordResult(ctx, result); err != nil {
		l.Error().Err(err).Str("gameId", gameID).Msg("Failed to record game result")
	}
}

func (s *RoundService) observe(ctx context.Context, gameID string, round int, winner battle.Winner, collisions []battle.Coord, unplaced int) {
	l := logger.ForRequest(ctx)
	s.metrics.roundResolved(ctx, round, winner)
	s.metrics.gridCollisions(ctx, len(collisions))
	for _, c := range collisions {
		l.Warn().Str("gameId", gameID).Int("round", round).Str("cell", c.String()).Msg("Grid collision: later deployment overwrote cell")
	}
	if unplaced > 0 {
		l.Warn().Str("gameId", gameID).Int("round", round).Int("unplaced", unplaced).Msg("AI troops could not be placed")
	}
}

func (s *RoundService) reject(ctx context.Context, round int, err error) error {
	var verr *battle.ValidationError
	if errors.As(err, &verr) {
		s.metrics.submissionRejected(ctx, verr.Kind)
		l := logger.ForRequest(ctx)
		l.Info().
			Int("round", round).
			Str("kind", verr.Kind.String()).
			Str("reason", verr.Message).
			Msg("Submission rejected")
	}
	return err
}
