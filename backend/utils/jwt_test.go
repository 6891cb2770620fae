package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techguide/backend/models"
)

func TestJWTRoundTrip(t *testing.T) {
	user := models.User{ID: uuid.New(), Role: models.RoleInstructor}
	token, err := GenerateJWTToken(user, "s3cret", time.Hour)
	require.NoError(t, err)

	for _, header := range []string{token, "Bearer " + token, "bearer  " + token} {
		claims, err := ParseJWTToken(header, "s3cret")
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, models.RoleInstructor, claims.Role)
	}
}

func TestJWTRejects(t *testing.T) {
	user := models.User{ID: uuid.New(), Role: models.RoleStudent}
	token, err := GenerateJWTToken(user, "s3cret", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWTToken(token, "other")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := GenerateJWTToken(user, "s3cret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWTToken(expired, "s3cret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseJWTToken("", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseJWTToken("Bearer ", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
