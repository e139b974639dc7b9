package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"group-planner/core/errors"
)

const testSecret = "token-test-secret"

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, "an@example.com", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, appErr := ValidateAndParseToken(token, testSecret)
	require.Nil(t, appErr)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "an@example.com", claims.Email)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "", testSecret, -time.Minute)
	require.NoError(t, err)

	_, appErr := ValidateAndParseToken(token, testSecret)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrTokenExpired, appErr.Code)
}

func TestWrongSecretIsRejected(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "", testSecret, time.Hour)
	require.NoError(t, err)

	_, appErr := ValidateAndParseToken(token, "another-secret")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidTokenFormat, appErr.Code)
}
