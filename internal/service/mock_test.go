package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/freeeve/gridclash/internal/model"
	"github.com/freeeve/gridclash/pkg/battle"
)

type mockSessionStore struct {
	mu      sync.Mutex
	states  map[string]battle.CarriedState
	ttls    map[string]time.Duration
	failAll bool
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{
		states: make(map[string]battle.CarriedState),
		ttls:   make(map[string]time.Duration),
	}
}

var errStoreDown = errors.New("store down")

func (m *mockSessionStore) SaveCarried(_ context.Context, gameID string, state battle.CarriedState, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errStoreDown
	}
	m.states[gameID] = state
	m.ttls[gameID] = ttl
	return nil
}

func (m *mockSessionStore) LoadCarried(_ context.Context, gameID string) (*battle.CarriedState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return nil, errStoreDown
	}
	st, ok := m.states[gameID]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (m *mockSessionStore) DeleteCarried(_ context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errStoreDown
	}
	delete(m.states, gameID)
	return nil
}

type mockResultRepo struct {
	mu      sync.Mutex
	results []model.GameResult
	fail    bool
}

func (m *mockResultRepo) RecordResult(_ context.Context, r *model.GameResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errStoreDown
	}
	r.ID = "result-1"
	r.CreatedAt = time.Now()
	m.results = append(m.results, *r)
	return nil
}

func (m *mockResultRepo) ListRecent(_ context.Context, limit int) ([]model.GameResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.results) {
		limit = len(m.results)
	}
	return m.results[:limit], nil
}

func (m *mockResultRepo) Stats(context.Context) (*model.Stats, error) {
	return &model.Stats{Games: len(m.results)}, nil
}

type broadcastCall struct {
	gameID    string
	eventType string
	data      any
}

type mockBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (m *mockBroadcaster) BroadcastGameEvent(gameID, eventType string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, broadcastCall{gameID, eventType, data})
}

// scriptedSource returns queued Intn values (clamped to n) and never shuffles.
type scriptedSource struct {
	ints []int
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		return n - 1
	}
	return v
}

func (s *scriptedSource) Shuffle(int, func(i, j int)) {}

// scripted shares one queue across every resolution of a test game.
func scripted(ints ...int) func() battle.Source {
	src := &scriptedSource{ints: ints}
	return func() battle.Source { return src }
}
