package controllers

import (
	"context"
	"net/http"

	"github.com/lumicart/storefront/api/middleware"
	"github.com/lumicart/storefront/api/responses"
	"github.com/lumicart/storefront/api/validators"
	"github.com/lumicart/storefront/internal/prefs"
	"github.com/lumicart/storefront/pkg/enums"
	pkgerrors "github.com/lumicart/storefront/pkg/errors"
	"github.com/lumicart/storefront/pkg/logger"
)

// PrefsService persists per-session view preferences.
type PrefsService interface {
	Get(ctx context.Context, sessionID string) prefs.Preferences
	Set(ctx context.Context, sessionID string, p prefs.Preferences) error
}

type prefsRequest struct {
	ViewMode string `json:"viewMode" validate:"required"`
	PageSize int    `json:"pageSize" validate:"omitempty,min=1,max=100"`
}

// PrefsFetch returns the session's stored preferences.
func PrefsFetch(svc PrefsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences service unavailable"))
			return
		}
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}
		responses.WriteSuccess(w, svc.Get(r.Context(), sessionID))
	}
}

// PrefsUpdate stores the session's preferences.
func PrefsUpdate(svc PrefsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences service unavailable"))
			return
		}
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}

		var payload prefsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mode, err := enums.ParseViewMode(payload.ViewMode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid view mode"))
			return
		}

		updated := prefs.Preferences{ViewMode: mode, PageSize: payload.PageSize}
		if err := svc.Set(r.Context(), sessionID, updated); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}
