package carry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeeve/gridclash/pkg/battle"
)

func sampleState() battle.CarriedState {
	playerPool, aiPool := 17, 15
	return battle.CarriedState{
		PlayerR1:     []battle.Deployment{{Owner: battle.Player, UnitType: battle.Infantry, Count: 10, X: 0, Y: 0}},
		OpponentR1:   []battle.Deployment{{Owner: battle.Opponent, UnitType: battle.Archers, Count: 5, X: 3, Y: 2}},
		PlayerPool:   &playerPool,
		OpponentPool: &aiPool,
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	s := NewSigner("test-secret", time.Hour)
	token, err := s.Sign("game-1", sampleState())
	require.NoError(t, err)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "game-1", claims.GameID)
	assert.Equal(t, "game-1", claims.Subject)
	assert.True(t, claims.State.Equal(sampleState()))
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewSigner("secret-a", time.Hour).Sign("game-1", sampleState())
	require.NoError(t, err)

	_, err = NewSigner("secret-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	s := NewSigner("test-secret", -time.Minute)
	token, err := s.Sign("game-1", sampleState())
	require.NoError(t, err)

	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	_, err := NewSigner("test-secret", time.Hour).Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCarriedStateEqualIgnoresOwnerTags(t *testing.T) {
	a := sampleState()
	b := sampleState()
	b.PlayerR1[0].Owner = ""
	assert.True(t, a.Equal(b))

	pool := 99
	b.PlayerPool = &pool
	assert.False(t, a.Equal(b))
}
