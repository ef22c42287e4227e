package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/lumicart/storefront/pkg/enums"
	pkgerrors "github.com/lumicart/storefront/pkg/errors"
	"github.com/lumicart/storefront/pkg/logger"
	"github.com/lumicart/storefront/pkg/redis"
)

// Preferences are the per-session presentation settings.
type Preferences struct {
	ViewMode enums.ViewMode `json:"viewMode"`
	PageSize int            `json:"pageSize,omitempty"`
}

// Defaults are applied when a session has no stored preferences or the
// stored value cannot be decoded.
func Defaults() Preferences {
	return Preferences{ViewMode: enums.ViewModeGrid}
}

type store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	PrefsKey(sessionID string) string
}

// Service persists view preferences per session. Reads fail soft: a missing
// or corrupt value yields the defaults.
type Service struct {
	store store
	ttl   time.Duration
	logg  *logger.Logger
}

// NewService builds the preference service on the shared cache client.
func NewService(client *redis.Client, ttl time.Duration, logg *logger.Logger) (*Service, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &Service{store: client, ttl: ttl, logg: logg}, nil
}

// Get returns the session's stored preferences, or the defaults.
func (s *Service) Get(ctx context.Context, sessionID string) Preferences {
	raw, err := s.store.Get(ctx, s.store.PrefsKey(sessionID))
	if err != nil {
		if !errors.Is(err, redis.Nil) && s.logg != nil {
			s.logg.Warn(ctx, "prefs.get falling back to defaults")
		}
		return Defaults()
	}

	var prefs Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil || !prefs.ViewMode.IsValid() {
		return Defaults()
	}
	return prefs
}

// Set validates and stores the session's preferences.
func (s *Service) Set(ctx context.Context, sessionID string, prefs Preferences) error {
	if !prefs.ViewMode.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid view mode")
	}
	if prefs.PageSize < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "page size must not be negative")
	}

	payload, err := json.Marshal(prefs)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "encode preferences")
	}
	if err := s.store.Set(ctx, s.store.PrefsKey(sessionID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "store preferences")
	}
	return nil
}
