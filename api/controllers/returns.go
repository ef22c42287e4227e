package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumicart/storefront/api/middleware"
	"github.com/lumicart/storefront/api/responses"
	"github.com/lumicart/storefront/api/validators"
	"github.com/lumicart/storefront/internal/returns"
	pkgerrors "github.com/lumicart/storefront/pkg/errors"
	"github.com/lumicart/storefront/pkg/logger"
)

// ReturnsService is the returns surface the controllers depend on.
type ReturnsService interface {
	Create(ctx context.Context, req returns.Request) (*returns.ReturnRecord, error)
	Get(ctx context.Context, returnID string) (*returns.ReturnRecord, error)
	ListByOrder(ctx context.Context, orderID string) ([]returns.ReturnRecord, error)
	ListByCustomer(ctx context.Context, email string) ([]returns.ReturnRecord, error)
}

type returnCreateRequest struct {
	OrderID      string `json:"orderId" validate:"required"`
	ReturnReason string `json:"returnReason" validate:"required"`
	Comments     string `json:"comments"`
	Items        []struct {
		OrderItemID int64  `json:"orderItemId" validate:"required"`
		Quantity    int    `json:"quantity" validate:"required,min=1"`
		Reason      string `json:"reason" validate:"required"`
	} `json:"returnItems" validate:"required,min=1,dive"`
}

// ReturnCreate files a return against one of the customer's orders.
func ReturnCreate(svc ReturnsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "returns service unavailable"))
			return
		}
		if _, ok := middleware.ProfileFromContext(r.Context()); !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		var payload returnCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		req := returns.Request{
			OrderID:      payload.OrderID,
			ReturnReason: payload.ReturnReason,
			Comments:     payload.Comments,
		}
		for _, item := range payload.Items {
			req.Items = append(req.Items, returns.RequestItem{
				OrderItemID: item.OrderItemID,
				Quantity:    item.Quantity,
				Reason:      item.Reason,
			})
		}

		record, err := svc.Create(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

// ReturnDetail serves one return request.
func ReturnDetail(svc ReturnsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "returns service unavailable"))
			return
		}
		record, err := svc.Get(r.Context(), chi.URLParam(r, "returnId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// ReturnListByOrder lists the returns filed against an order.
func ReturnListByOrder(svc ReturnsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "returns service unavailable"))
			return
		}
		records, err := svc.ListByOrder(r.Context(), chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// ReturnListMine lists the authenticated customer's returns.
func ReturnListMine(svc ReturnsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "returns service unavailable"))
			return
		}
		profile, ok := middleware.ProfileFromContext(r.Context())
		if !ok || profile.Email == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		records, err := svc.ListByCustomer(r.Context(), profile.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}
