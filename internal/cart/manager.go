package cart

import (
	"context"
	"sync"

	"github.com/lumicart/storefront/pkg/logger"
	"github.com/lumicart/storefront/pkg/metrics"
)

// Manager hands out one Store per session, restoring persisted lines on
// first access.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store

	persister Persister
	logg      *logger.Logger
	metrics   *metrics.StorefrontMetrics
}

// NewManager builds a session-keyed store registry.
func NewManager(persister Persister, logg *logger.Logger, m *metrics.StorefrontMetrics) *Manager {
	return &Manager{
		stores:    make(map[string]*Store),
		persister: persister,
		logg:      logg,
		metrics:   m,
	}
}

// Store returns the session's cart store, creating and restoring it on first use.
func (m *Manager) Store(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	if store, ok := m.stores[sessionID]; ok {
		m.mu.Unlock()
		return store
	}
	store := NewStore(sessionID, m.persister, m.logg, m.metrics)
	m.stores[sessionID] = store
	m.mu.Unlock()

	store.Restore(ctx)
	return store
}

// Evict drops the in-memory store for the session. The persisted copy is untouched.
func (m *Manager) Evict(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sessionID)
}
