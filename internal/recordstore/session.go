package recordstore

import (
	"context"
	"sync"

	"github.com/feebridge/feebridge/internal/cache"
	"github.com/feebridge/feebridge/internal/logger"
)

const sessionCacheKey = cache.PrefixSession + "recordstore"

// SessionManager owns the process-wide record store session token. The
// token has no client-visible expiry; it is replaced lazily on first need
// and dropped only when the store reports it expired. Safe for concurrent
// use: a reader never observes a partially written token, and concurrent
// refreshes collapse into one login under the mutex.
type SessionManager struct {
	mu     sync.Mutex
	client *Client
	cache  cache.Cache
	logger *logger.Logger
}

func NewSessionManager(client *Client, cache cache.Cache, logger *logger.Logger) *SessionManager {
	return &SessionManager{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// Token returns the cached session token, logging in first if none is
// cached. A login failure is returned to the caller and fails only the
// current request.
func (m *SessionManager) Token(ctx context.Context) (string, error) {
	if token, ok := m.cached(ctx); ok {
		return token, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another request may have logged in while we waited on the lock
	if token, ok := m.cached(ctx); ok {
		return token, nil
	}

	token, err := m.client.CreateSession(ctx)
	if err != nil {
		return "", err
	}

	// No expiration: the store invalidates sessions server-side and signals
	// it with an expired-session error code
	m.cache.Set(ctx, sessionCacheKey, token, 0)
	m.logger.Infow("created record store session")
	return token, nil
}

// Invalidate drops the cached token. Idempotent.
func (m *SessionManager) Invalidate(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Delete(ctx, sessionCacheKey)
}

func (m *SessionManager) cached(ctx context.Context) (string, bool) {
	v, ok := m.cache.Get(ctx, sessionCacheKey)
	if !ok {
		return "", false
	}
	token, ok := v.(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
