package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/daylog/internal/common"
)

var testSecret = []byte("test-secret-key")

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("alice", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, err := GetUsernameFromToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestExpiredToken(t *testing.T) {
	token, err := GenerateToken("alice", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = GetUsernameFromToken(token, testSecret)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrTokenExpired))
}

func TestInvalidToken(t *testing.T) {
	_, err := GetUsernameFromToken("not-a-token", testSecret)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidToken))
}

func TestWrongKeyRejected(t *testing.T) {
	token, err := GenerateToken("alice", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = GetUsernameFromToken(token, []byte("another-key"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidToken))
}
