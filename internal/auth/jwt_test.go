package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	Init("test-secret")

	sessionID := NewSessionID()
	token, err := GenerateToken(42, sessionID)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, sessionID, claims.SessionID)
}

func TestValidateRejectsGarbage(t *testing.T) {
	Init("test-secret")

	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	Init("secret-one")
	token, err := GenerateToken(1, NewSessionID())
	require.NoError(t, err)

	Init("secret-two")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestSessionIDsAreUnique(t *testing.T) {
	assert.NotEqual(t, NewSessionID(), NewSessionID())
}
