package session

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/BHAVY1503/eventease-client/internal/shared/clock"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrTokenMalformed   = errors.New("malformed session token")
)

// Session is the single authoritative holder of the current identity: bearer
// token, user id and role. Everything that needs identity reads it from here,
// and the API transport clears it on a 401. Replaces ad-hoc per-component
// storage of session keys.
type Session struct {
	mu sync.RWMutex

	token     string
	userID    string
	role      string
	expiresAt time.Time

	clk clock.Clock
}

// New creates an empty session using the system clock.
func New() *Session {
	return NewWithClock(clock.NewSystem())
}

// NewWithClock creates an empty session with an injected clock.
func NewWithClock(clk clock.Clock) *Session {
	return &Session{clk: clk}
}

// SetToken stores a bearer token and extracts user id, role and expiry from
// its claims. The claims are read unverified: signature verification is the
// backend's job, the client only needs them for display and expiry checks.
func (s *Session) SetToken(token string) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ErrTokenMalformed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.userID = stringClaim(claims, "user_id")
	if s.userID == "" {
		s.userID = stringClaim(claims, "sub")
	}
	s.role = stringClaim(claims, "role")

	s.expiresAt = time.Time{}
	if exp, ok := claims["exp"].(float64); ok {
		s.expiresAt = time.Unix(int64(exp), 0).UTC()
	}

	return nil
}

// Token returns the bearer token, or ErrNotAuthenticated when the session is
// empty or expired.
func (s *Session) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return "", ErrNotAuthenticated
	}
	if !s.expiresAt.IsZero() && s.clk.Now().After(s.expiresAt) {
		return "", ErrNotAuthenticated
	}
	return s.token, nil
}

// UserID returns the identity claim of the current session ("" when signed out).
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Role returns the role claim of the current session ("" when signed out).
func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// Authenticated reports whether a non-expired token is present.
func (s *Session) Authenticated() bool {
	_, err := s.Token()
	return err == nil
}

// ExpiresAt returns the token expiry (zero when unknown).
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// Clear discards the current identity. Called on sign-out and on any 401
// from the backend, after which the caller must redirect to sign-in.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.userID = ""
	s.role = ""
	s.expiresAt = time.Time{}
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
