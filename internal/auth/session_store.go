package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"taskr/internal/cache"
)

const sessionKeyPrefix = "session:"

// Session is the server-side "logged in" marker. Absence of a record means
// not authenticated; presence attributes the request to the stored user.
type Session struct {
	SessionID string `json:"session_id"`
	UserID    uint   `json:"user_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

// SessionStoreInterface defines the interface for session storage operations.
type SessionStoreInterface interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionStore keeps session records in Redis. Records are written without
// TTL: a session ends only on explicit logout or store teardown.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// Create stores a session record. Session records are durable core state,
// so a store failure propagates and fails the login instead of issuing a
// token no subsequent request would honor.
func (s *SessionStore) Create(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	key := sessionKeyPrefix + session.SessionID
	return s.cache.SetDurable(ctx, key, payload)
}

// Get retrieves a session record, or an error if the session has ended.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	key := sessionKeyPrefix + sessionID
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil, fmt.Errorf("session not found")
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete removes a session record. Deleting a missing session is a no-op,
// which makes logout idempotent.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	key := sessionKeyPrefix + sessionID
	return s.cache.Delete(ctx, key)
}
