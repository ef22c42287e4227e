package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/lumicart/storefront/internal/cart"
	"github.com/lumicart/storefront/internal/checkout"
	"github.com/lumicart/storefront/pkg/enums"
	pkgerrors "github.com/lumicart/storefront/pkg/errors"
)

type fakeGateway struct{}

func (fakeGateway) CreateIntent(_ context.Context, amountCents int64, currency string, _ map[string]string) (*checkout.IntentHandle, error) {
	return &checkout.IntentHandle{ID: "pi_1", ClientSecret: "pi_1_secret", AmountCents: amountCents, Currency: currency}, nil
}

func (fakeGateway) Confirm(context.Context, string) (checkout.PaymentResult, error) {
	return checkout.PaymentResult{Status: enums.PaymentOutcomeSucceeded}, nil
}

type fakeSubmitter struct{}

func (fakeSubmitter) Submit(context.Context, checkout.PurchaseRequest) (string, error) {
	return "TRK-1", nil
}

type stubCheckoutRegistry struct {
	orch *checkout.Orchestrator
	err  error
}

func (s stubCheckoutRegistry) Orchestrator(context.Context, string) (*checkout.Orchestrator, error) {
	return s.orch, s.err
}

func newCheckoutRegistry(t *testing.T, seed bool) stubCheckoutRegistry {
	t.Helper()
	store := cart.NewStore("sess-1", nil, nil, nil)
	if seed {
		store.AddItem(context.Background(), cart.Product{
			ID:        42,
			Name:      "Go Mug",
			UnitPrice: decimal.RequireFromString("19.99"),
		})
	}
	orch, err := checkout.NewOrchestrator("sess-1", store, fakeGateway{}, fakeSubmitter{}, "usd", nil, nil)
	if err != nil {
		t.Fatalf("building orchestrator: %v", err)
	}
	return stubCheckoutRegistry{orch: orch}
}

func newCheckoutRouter(registry CheckoutRegistry) chi.Router {
	logg := testLogger()
	r := chi.NewRouter()
	r.Post("/checkout/payment-intent", CheckoutBegin(registry, logg))
	r.Post("/checkout/confirm", CheckoutConfirm(registry, logg))
	r.Post("/checkout/purchase", CheckoutSubmit(registry, logg))
	r.Get("/checkout/status", CheckoutStatus(registry, logg))
	r.Post("/checkout/reset", CheckoutReset(registry, logg))
	return r
}

const beginBody = `{
	"shippingAddress": {"street": "1 Main St", "city": "Dover", "state": "DE", "zipCode": "19901", "country": "US"},
	"billingAddress": {"street": "1 Main St", "city": "Dover", "state": "DE", "zipCode": "19901", "country": "US"}
}`

func authedCheckoutRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = withSession(req, "sess-1")
	return withProfile(req, testProfile())
}

func TestCheckoutBegin(t *testing.T) {
	t.Parallel()

	router := newCheckoutRouter(newCheckoutRegistry(t, true))
	resp := serve(t, router, authedCheckoutRequest(http.MethodPost, "/checkout/payment-intent", beginBody))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var status checkout.Status
	decodeData(t, resp, &status)
	if status.State != enums.CheckoutStateAwaitingConfirmation {
		t.Fatalf("expected awaiting_confirmation, got %s", status.State)
	}
	if status.ClientSecret == "" || status.IntentID == "" {
		t.Fatalf("expected intent handle in status, got %+v", status)
	}
}

func TestCheckoutBeginEmptyCart(t *testing.T) {
	t.Parallel()

	router := newCheckoutRouter(newCheckoutRegistry(t, false))
	resp := serve(t, router, authedCheckoutRequest(http.MethodPost, "/checkout/payment-intent", beginBody))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d", resp.Code)
	}
	if code := decodeErrorCode(t, resp); code != string(pkgerrors.CodeValidation) {
		t.Fatalf("expected validation code, got %s", code)
	}
}

func TestCheckoutBeginRejectsIncompleteAddress(t *testing.T) {
	t.Parallel()

	router := newCheckoutRouter(newCheckoutRegistry(t, true))
	body := `{"shippingAddress": {"street": "1 Main St"}, "billingAddress": {"street": "1 Main St"}}`
	resp := serve(t, router, authedCheckoutRequest(http.MethodPost, "/checkout/payment-intent", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCheckoutBeginRequiresAuth(t *testing.T) {
	t.Parallel()

	router := newCheckoutRouter(newCheckoutRegistry(t, true))
	req := withSession(httptest.NewRequest(http.MethodPost, "/checkout/payment-intent", strings.NewReader(beginBody)), "sess-1")
	resp := serve(t, router, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without profile, got %d", resp.Code)
	}
}

func TestCheckoutConfirmAndSubmit(t *testing.T) {
	t.Parallel()

	router := newCheckoutRouter(newCheckoutRegistry(t, true))

	serve(t, router, authedCheckoutRequest(http.MethodPost, "/checkout/payment-intent", beginBody))

	resp := serve(t, router, authedCheckoutRequest(http.MethodPost, "/checkout/confirm", ""))
	if resp.Code != http.StatusOK {
		t.Fatalf("confirm: expected 200, got %d", resp.Code)
	}
	var status checkout.Status
	decodeData(t, resp, &status)
	if status.State != enums.CheckoutStateSubmitting {
		t.Fatalf("after confirm: expected submitting, got %s", status.State)
	}

	resp = serve(t, router, authedCheckoutRequest(http.MethodPost, "/checkout/purchase", ""))
	if resp.Code != http.StatusOK {
		t.Fatalf("purchase: expected 200, got %d", resp.Code)
	}
	decodeData(t, resp, &status)
	if status.State != enums.CheckoutStateCompleted {
		t.Fatalf("after purchase: expected completed, got %s", status.State)
	}
	if status.TrackingNumber != "TRK-1" {
		t.Fatalf("expected tracking number, got %+v", status)
	}
}

func TestCheckoutSubmitWithoutConfirmedPayment(t *testing.T) {
	t.Parallel()

	router := newCheckoutRouter(newCheckoutRegistry(t, true))
	resp := serve(t, router, authedCheckoutRequest(http.MethodPost, "/checkout/purchase", ""))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestCheckoutStatusAndReset(t *testing.T) {
	t.Parallel()

	router := newCheckoutRouter(newCheckoutRegistry(t, true))

	resp := serve(t, router, authedCheckoutRequest(http.MethodGet, "/checkout/status", ""))
	if resp.Code != http.StatusOK {
		t.Fatalf("status: expected 200, got %d", resp.Code)
	}
	var status checkout.Status
	decodeData(t, resp, &status)
	if status.State != enums.CheckoutStateIdle {
		t.Fatalf("expected idle, got %s", status.State)
	}

	serve(t, router, authedCheckoutRequest(http.MethodPost, "/checkout/payment-intent", beginBody))

	resp = serve(t, router, authedCheckoutRequest(http.MethodPost, "/checkout/reset", ""))
	decodeData(t, resp, &status)
	if status.State != enums.CheckoutStateIdle || status.IntentID != "" {
		t.Fatalf("after reset: %+v", status)
	}
}
