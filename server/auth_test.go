package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	token, err := IssueToken(secret, "player-123", "Ada")
	require.NoError(t, err)

	playerID, name, err := VerifyToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "player-123", playerID)
	assert.Equal(t, "Ada", name)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := IssueToken([]byte("secret-a"), "player-123", "Ada")
	require.NoError(t, err)

	_, _, err = VerifyToken([]byte("secret-b"), token)
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	_, _, err := VerifyToken([]byte("secret"), "not.a.token")
	assert.Error(t, err)
}
