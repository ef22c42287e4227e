package checkout

import (
	"context"
	"sync"

	"github.com/lumicart/storefront/internal/cart"
	"github.com/lumicart/storefront/pkg/logger"
	"github.com/lumicart/storefront/pkg/metrics"
)

// Manager hands out one orchestrator per session, bound to the session's cart
// store.
type Manager struct {
	mu            sync.Mutex
	orchestrators map[string]*Orchestrator

	carts    *cart.Manager
	gateway  PaymentGateway
	orders   OrderSubmitter
	currency string

	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
}

// NewManager builds a session-keyed orchestrator registry.
func NewManager(carts *cart.Manager, gateway PaymentGateway, orders OrderSubmitter, currency string, logg *logger.Logger, m *metrics.StorefrontMetrics) *Manager {
	return &Manager{
		orchestrators: make(map[string]*Orchestrator),
		carts:         carts,
		gateway:       gateway,
		orders:        orders,
		currency:      currency,
		logg:          logg,
		metrics:       m,
	}
}

// Orchestrator returns the session's orchestrator, creating it on first use.
func (m *Manager) Orchestrator(ctx context.Context, sessionID string) (*Orchestrator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if orch, ok := m.orchestrators[sessionID]; ok {
		return orch, nil
	}
	store := m.carts.Store(ctx, sessionID)
	orch, err := NewOrchestrator(sessionID, store, m.gateway, m.orders, m.currency, m.logg, m.metrics)
	if err != nil {
		return nil, err
	}
	m.orchestrators[sessionID] = orch
	return orch, nil
}
