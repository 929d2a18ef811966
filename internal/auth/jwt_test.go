package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTM() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", "campus-planner", 15*time.Minute, 24*time.Hour)
}

func TestGeneratePairRoundTrip(t *testing.T) {
	tm := newTM()

	access, refresh, exp, err := tm.GeneratePair("user-1")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, isRefresh, err := tm.ParseAny(access)
	require.NoError(t, err)
	assert.False(t, isRefresh)
	assert.Equal(t, "user-1", claims.UserID)

	claims, isRefresh, err = tm.ParseAny(refresh)
	require.NoError(t, err)
	assert.True(t, isRefresh)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestParseAnyRejectsGarbage(t *testing.T) {
	tm := newTM()
	_, _, err := tm.ParseAny("not-a-token")
	assert.Error(t, err)
}

func TestParseAnyRejectsForeignSecret(t *testing.T) {
	other := NewTokenManager("other-access", "other-refresh", "campus-planner", time.Minute, time.Hour)
	access, _, _, err := other.GeneratePair("user-1")
	require.NoError(t, err)

	tm := newTM()
	_, _, err = tm.ParseAny(access)
	assert.Error(t, err)
}

func TestPasswordHashVerify(t *testing.T) {
	hash, err := HashPassword("hunter42")
	require.NoError(t, err)
	assert.NoError(t, VerifyPassword("hunter42", hash))
	assert.Error(t, VerifyPassword("wrong", hash))
}
