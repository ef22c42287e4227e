package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lumicart/storefront/pkg/redis"
)

// Persister stores the full serialized line collection per session. Load
// returns nil lines (no error) when nothing is persisted, and an error only
// when the stored value exists but cannot be used — callers treat that as an
// empty cart.
type Persister interface {
	Save(ctx context.Context, sessionID string, lines []Line) error
	Load(ctx context.Context, sessionID string) ([]Line, error)
	Delete(ctx context.Context, sessionID string) error
}

type redisPersister struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPersister persists carts in Redis under the session's cart key.
func NewRedisPersister(client *redis.Client, ttl time.Duration) (Persister, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &redisPersister{client: client, ttl: ttl}, nil
}

func (p *redisPersister) Save(ctx context.Context, sessionID string, lines []Line) error {
	blob, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart lines: %w", err)
	}
	return p.client.Set(ctx, p.client.CartKey(sessionID), string(blob), p.ttl)
}

func (p *redisPersister) Load(ctx context.Context, sessionID string) ([]Line, error) {
	blob, err := p.client.Get(ctx, p.client.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cart lines: %w", err)
	}
	return decodeLines([]byte(blob))
}

func (p *redisPersister) Delete(ctx context.Context, sessionID string) error {
	return p.client.Del(ctx, p.client.CartKey(sessionID))
}

// decodeLines rejects blobs that violate the cart invariants so a corrupt
// value rehydrates as an empty cart instead of poisoning the store.
func decodeLines(blob []byte) ([]Line, error) {
	var lines []Line
	if err := json.Unmarshal(blob, &lines); err != nil {
		return nil, fmt.Errorf("decode cart lines: %w", err)
	}

	seen := make(map[int64]struct{}, len(lines))
	for _, line := range lines {
		if line.ProductID == 0 || line.Quantity < 1 || line.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("invalid cart line for product %d", line.ProductID)
		}
		if _, dup := seen[line.ProductID]; dup {
			return nil, fmt.Errorf("duplicate cart line for product %d", line.ProductID)
		}
		seen[line.ProductID] = struct{}{}
	}
	return lines, nil
}
