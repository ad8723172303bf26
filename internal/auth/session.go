package auth

import (
	"sync"

	"github.com/google/uuid"
)

// Sessions maps opaque session tokens to user IDs. Sessions never
// expire; they live until Delete or process exit.
type Sessions struct {
	mu      sync.RWMutex
	byToken map[string]int
}

func NewSessions() *Sessions {
	return &Sessions{byToken: make(map[string]int)}
}

// Create issues a fresh token for the user.
func (s *Sessions) Create(userID int) string {
	token := uuid.New().String()
	s.mu.Lock()
	s.byToken[token] = userID
	s.mu.Unlock()
	return token
}

// UserID resolves a token to its user.
func (s *Sessions) UserID(token string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byToken[token]
	return id, ok
}

func (s *Sessions) Delete(token string) {
	s.mu.Lock()
	delete(s.byToken, token)
	s.mu.Unlock()
}
