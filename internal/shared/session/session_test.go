package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BHAVY1503/eventease-client/internal/shared/clock"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func TestSession_SetTokenExtractsClaims(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sess := NewWithClock(clock.NewFixed(now))

	token := signedToken(t, jwt.MapClaims{
		"user_id": "user-1",
		"role":    "organizer",
		"exp":     now.Add(time.Hour).Unix(),
	})
	require.NoError(t, sess.SetToken(token))

	assert.Equal(t, "user-1", sess.UserID())
	assert.Equal(t, "organizer", sess.Role())
	assert.True(t, sess.Authenticated())

	got, err := sess.Token()
	require.NoError(t, err)
	assert.Equal(t, token, got)
}

func TestSession_ExpiredTokenNotUsable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sess := NewWithClock(clock.NewFixed(now))

	token := signedToken(t, jwt.MapClaims{
		"user_id": "user-1",
		"exp":     now.Add(-time.Minute).Unix(),
	})
	require.NoError(t, sess.SetToken(token))

	_, err := sess.Token()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, sess.Authenticated())
}

func TestSession_MalformedTokenRejected(t *testing.T) {
	sess := New()
	assert.ErrorIs(t, sess.SetToken("not-a-jwt"), ErrTokenMalformed)
	assert.False(t, sess.Authenticated())
}

func TestSession_ClearDiscardsIdentity(t *testing.T) {
	sess := New()
	require.NoError(t, sess.SetToken(signedToken(t, jwt.MapClaims{
		"user_id": "user-1",
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})))

	sess.Clear()

	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.UserID())
	assert.Empty(t, sess.Role())
	_, err := sess.Token()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSession_SubjectClaimFallback(t *testing.T) {
	sess := New()
	require.NoError(t, sess.SetToken(signedToken(t, jwt.MapClaims{
		"sub": "user-2",
		"exp": time.Now().Add(time.Hour).Unix(),
	})))

	assert.Equal(t, "user-2", sess.UserID())
}
