package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lumicart/storefront/api/middleware"
	"github.com/lumicart/storefront/api/responses"
	"github.com/lumicart/storefront/internal/cart"
	"github.com/lumicart/storefront/internal/catalog"
	pkgerrors "github.com/lumicart/storefront/pkg/errors"
	"github.com/lumicart/storefront/pkg/logger"
)

// CartRegistry hands out the session's cart store.
type CartRegistry interface {
	Store(ctx context.Context, sessionID string) *cart.Store
}

// ProductGetter resolves catalog products added to the cart.
type ProductGetter interface {
	GetProduct(ctx context.Context, productID int64) (*catalog.Product, error)
}

type cartLineResponse struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	ImageURL  string `json:"imageUrl"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type cartResponse struct {
	Lines         []cartLineResponse `json:"lines"`
	TotalPrice    string             `json:"totalPrice"`
	TotalQuantity int                `json:"totalQuantity"`
}

func newCartResponse(snap cart.Snapshot) cartResponse {
	lines := make([]cartLineResponse, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		lines = append(lines, cartLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			ImageURL:  line.ImageURL,
			UnitPrice: line.UnitPrice.StringFixed(2),
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal().StringFixed(2),
		})
	}
	return cartResponse{
		Lines:         lines,
		TotalPrice:    snap.TotalPrice.StringFixed(2),
		TotalQuantity: snap.TotalQuantity,
	}
}

// CartFetch returns the session's cart snapshot.
func CartFetch(carts CartRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(store.Snapshot()))
	}
}

// CartAddItem resolves the product in the catalog and adds one unit.
func CartAddItem(carts CartRegistry, products ProductGetter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := products.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.AddItem(r.Context(), cart.Product{
			ID:        product.ID,
			Name:      product.Name,
			ImageURL:  product.ImageURL,
			UnitPrice: product.UnitPrice,
		})
		responses.WriteSuccess(w, newCartResponse(store.Snapshot()))
	}
}

// CartIncrement bumps the quantity of a line already in the cart.
func CartIncrement(carts CartRegistry, logg *logger.Logger) http.HandlerFunc {
	return cartMutation(carts, logg, func(ctx context.Context, store *cart.Store, productID int64) {
		store.IncrementQuantity(ctx, productID)
	})
}

// CartDecrement lowers a line's quantity, removing it at zero.
func CartDecrement(carts CartRegistry, logg *logger.Logger) http.HandlerFunc {
	return cartMutation(carts, logg, func(ctx context.Context, store *cart.Store, productID int64) {
		store.DecrementQuantity(ctx, productID)
	})
}

// CartRemove drops a line regardless of quantity.
func CartRemove(carts CartRegistry, logg *logger.Logger) http.HandlerFunc {
	return cartMutation(carts, logg, func(ctx context.Context, store *cart.Store, productID int64) {
		store.RemoveItem(ctx, productID)
	})
}

// CartClear empties the cart and its persisted copy.
func CartClear(carts CartRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store.Clear(r.Context())
		responses.WriteSuccess(w, newCartResponse(store.Snapshot()))
	}
}

func cartMutation(carts CartRegistry, logg *logger.Logger, mutate func(context.Context, *cart.Store, int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		mutate(r.Context(), store, productID)
		responses.WriteSuccess(w, newCartResponse(store.Snapshot()))
	}
}

func sessionStore(r *http.Request, carts CartRegistry) (*cart.Store, error) {
	if carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return carts.Store(r.Context(), sessionID), nil
}

func productIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "productId")
	productID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || productID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id").WithDetails(map[string]any{"field": "productId"})
	}
	return productID, nil
}
