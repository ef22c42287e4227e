package controllers

import (
	"context"
	"net/http"

	"github.com/lumicart/storefront/api/middleware"
	"github.com/lumicart/storefront/api/responses"
	"github.com/lumicart/storefront/api/validators"
	"github.com/lumicart/storefront/internal/checkout"
	"github.com/lumicart/storefront/internal/identity"
	pkgerrors "github.com/lumicart/storefront/pkg/errors"
	"github.com/lumicart/storefront/pkg/logger"
	"github.com/lumicart/storefront/pkg/types"
)

// CheckoutRegistry hands out the session's checkout orchestrator.
type CheckoutRegistry interface {
	Orchestrator(ctx context.Context, sessionID string) (*checkout.Orchestrator, error)
}

type checkoutBeginRequest struct {
	ShippingAddress types.Address `json:"shippingAddress" validate:"required"`
	BillingAddress  types.Address `json:"billingAddress" validate:"required"`
}

// CheckoutBegin validates the shipping form, derives the payment amount from
// the live cart, and creates a payment intent. The customer identity comes
// from the verified bearer token, never from the request body.
func CheckoutBegin(registry CheckoutRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orch, profile, err := sessionOrchestrator(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutBeginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.ShippingAddress.Normalize()
		payload.BillingAddress.Normalize()

		form := checkout.Form{
			Customer:        profile.Customer(),
			ShippingAddress: payload.ShippingAddress,
			BillingAddress:  payload.BillingAddress,
		}

		status, err := orch.BeginCheckout(r.Context(), form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, status)
	}
}

// CheckoutConfirm checks the payment outcome at the gateway and advances the
// attempt.
func CheckoutConfirm(registry CheckoutRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orch, _, err := sessionOrchestrator(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := orch.ConfirmPayment(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, status)
	}
}

// CheckoutSubmit places the order for a confirmed payment.
func CheckoutSubmit(registry CheckoutRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orch, _, err := sessionOrchestrator(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := orch.SubmitOrder(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, status)
	}
}

// CheckoutStatus reports the attempt's current state.
func CheckoutStatus(registry CheckoutRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orch, _, err := sessionOrchestrator(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orch.Status())
	}
}

// CheckoutReset abandons the attempt and invalidates the live intent.
func CheckoutReset(registry CheckoutRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orch, _, err := sessionOrchestrator(r, registry)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orch.Reset()
		responses.WriteSuccess(w, orch.Status())
	}
}

func sessionOrchestrator(r *http.Request, registry CheckoutRegistry) (*checkout.Orchestrator, identity.Profile, error) {
	if registry == nil {
		return nil, identity.Profile{}, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable")
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return nil, identity.Profile{}, pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	profile, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		return nil, identity.Profile{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	orch, err := registry.Orchestrator(r.Context(), sessionID)
	if err != nil {
		return nil, identity.Profile{}, err
	}
	return orch, profile, nil
}
