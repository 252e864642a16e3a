package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/margauxcellars/cellar-backend/pkg/config"
	"github.com/margauxcellars/cellar-backend/pkg/redis"
)

// AccessSessionChecker is the surface the auth middleware needs.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, sessionID string) (bool, error)
}

type sessionStore interface {
	SessionKey(sessionID string) string
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// Manager tracks live staff sessions in redis so logout can revoke a JWT
// before it expires.
type Manager struct {
	store sessionStore
	ttl   time.Duration
}

// NewManager builds a session manager bound to the JWT lifetime.
func NewManager(store sessionStore, cfg config.JWTConfig) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	ttl := cfg.AccessTokenTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("access token ttl must be positive")
	}
	return &Manager{store: store, ttl: ttl}, nil
}

// Create registers a session id for the user, valid as long as the token.
func (m *Manager) Create(ctx context.Context, sessionID string, userID uint) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	return m.store.Set(ctx, m.store.SessionKey(sessionID), strconv.FormatUint(uint64(userID), 10), m.ttl)
}

// HasSession reports whether the session id is still live.
func (m *Manager) HasSession(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	_, err := m.store.Get(ctx, m.store.SessionKey(sessionID))
	if err != nil {
		if redis.IsNil(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Revoke drops the session, invalidating the matching token immediately.
func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return m.store.Del(ctx, m.store.SessionKey(sessionID))
}
