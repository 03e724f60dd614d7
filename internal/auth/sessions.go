package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

const defaultSessionTTL = 12 * time.Hour

type session struct {
	userID    int64
	expiresAt time.Time
}

// Sessions is an in-memory token store, safe for concurrent use.
type Sessions struct {
	mu     sync.Mutex
	ttl    time.Duration
	tokens map[string]session
}

// NewSessions creates a session store; ttl <= 0 uses the default.
func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Sessions{ttl: ttl, tokens: make(map[string]session)}
}

// Issue creates a fresh token for the user.
func (s *Sessions) Issue(userID int64) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("issue session token: %w", err)
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = session{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	return token, nil
}

// Lookup resolves a token to a user ID. Expired tokens are evicted on
// the way out.
func (s *Sessions) Lookup(token string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.tokens[token]
	if !ok {
		return 0, false
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.tokens, token)
		return 0, false
	}
	return sess.userID, true
}

// Revoke drops a token; unknown tokens are a no-op.
func (s *Sessions) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}
