package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lumicart/storefront/api/middleware"
	"github.com/lumicart/storefront/api/responses"
	"github.com/lumicart/storefront/internal/orders"
	pkgerrors "github.com/lumicart/storefront/pkg/errors"
	"github.com/lumicart/storefront/pkg/logger"
	"github.com/lumicart/storefront/pkg/pagination"
	"github.com/lumicart/storefront/pkg/types"
)

// OrderHistoryService is the order service surface the controllers depend on.
type OrderHistoryService interface {
	History(ctx context.Context, email string, page pagination.Params) (*orders.HistoryPage, error)
	GetByID(ctx context.Context, orderID string) (*orders.Order, error)
}

type orderDetailResponse struct {
	orders.Order
	ReturnEligible bool `json:"returnEligible"`
}

// OrderHistory lists the authenticated customer's orders.
func OrderHistory(svc OrderHistoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		profile, ok := middleware.ProfileFromContext(r.Context())
		if !ok || profile.Email == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		page := pagination.FromQuery(r.URL.Query().Get("page"), r.URL.Query().Get("size"))
		history, err := svc.History(r.Context(), profile.Email, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePage(w, history.Orders, types.PageMeta{
			Number:        history.PageNumber,
			Size:          history.PageSize,
			TotalElements: history.TotalElements,
			TotalPages:    history.TotalPages,
		})
	}
}

// OrderDetail serves one order, annotated with return eligibility. Customers
// can only read their own orders.
func OrderDetail(svc OrderHistoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		profile, ok := middleware.ProfileFromContext(r.Context())
		if !ok || profile.Email == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		order, err := svc.GetByID(r.Context(), chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if order.Customer != nil && order.Customer.Email != "" && order.Customer.Email != profile.Email {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}

		responses.WriteSuccess(w, orderDetailResponse{
			Order:          *order,
			ReturnEligible: orders.EligibleForReturn(*order, time.Now()),
		})
	}
}
