package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lumicart/storefront/internal/cart"
	"github.com/lumicart/storefront/internal/catalog"
	checkoutsvc "github.com/lumicart/storefront/internal/checkout"
	"github.com/lumicart/storefront/internal/identity"
	"github.com/lumicart/storefront/internal/orders"
	"github.com/lumicart/storefront/internal/prefs"
	"github.com/lumicart/storefront/internal/returns"
	pkgauth "github.com/lumicart/storefront/pkg/auth"
	"github.com/lumicart/storefront/pkg/config"
	"github.com/lumicart/storefront/pkg/enums"
	"github.com/lumicart/storefront/pkg/logger"
	"github.com/lumicart/storefront/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubCatalog struct{}

func (stubCatalog) GetProduct(_ context.Context, productID int64) (*catalog.Product, error) {
	return &catalog.Product{ID: productID, Name: "Go Mug"}, nil
}

func (stubCatalog) ListProducts(context.Context, pagination.Params) (*catalog.Page, error) {
	return &catalog.Page{Products: []catalog.Product{{ID: 1, Name: "Go Mug"}}}, nil
}

func (stubCatalog) ListByCategory(context.Context, int64, pagination.Params) (*catalog.Page, error) {
	return &catalog.Page{}, nil
}

func (stubCatalog) SearchByKeyword(context.Context, string, pagination.Params) (*catalog.Page, error) {
	return &catalog.Page{}, nil
}

func (stubCatalog) Search(context.Context, string, catalog.Filter, enums.SortOrder, pagination.Params) (*catalog.Page, error) {
	return &catalog.Page{}, nil
}

func (stubCatalog) ListCategories(context.Context) ([]catalog.Category, error) {
	return []catalog.Category{{ID: 1, CategoryName: "Mugs"}}, nil
}

func (stubCatalog) ListBrands(context.Context) ([]string, error) {
	return []string{"Lumi"}, nil
}

func (stubCatalog) ListBanners(context.Context) ([]catalog.Banner, error) {
	return []catalog.Banner{{ID: 1, Title: "Summer Sale"}}, nil
}

func (stubCatalog) Autocomplete(context.Context, string, int) ([]catalog.Suggestion, error) {
	return nil, nil
}

type stubOrders struct{}

func (stubOrders) History(context.Context, string, pagination.Params) (*orders.HistoryPage, error) {
	return &orders.HistoryPage{}, nil
}

func (stubOrders) GetByID(context.Context, string) (*orders.Order, error) {
	return &orders.Order{ID: "ord-1"}, nil
}

type stubReturns struct{}

func (stubReturns) Create(context.Context, returns.Request) (*returns.ReturnRecord, error) {
	return &returns.ReturnRecord{ID: "ret-1"}, nil
}

func (stubReturns) Get(context.Context, string) (*returns.ReturnRecord, error) {
	return &returns.ReturnRecord{ID: "ret-1"}, nil
}

func (stubReturns) ListByOrder(context.Context, string) ([]returns.ReturnRecord, error) {
	return nil, nil
}

func (stubReturns) ListByCustomer(context.Context, string) ([]returns.ReturnRecord, error) {
	return nil, nil
}

type stubPrefs struct{}

func (stubPrefs) Get(context.Context, string) prefs.Preferences {
	return prefs.Defaults()
}

func (stubPrefs) Set(context.Context, string, prefs.Preferences) error {
	return nil
}

type stubGateway struct{}

func (stubGateway) CreateIntent(_ context.Context, amountCents int64, currency string, _ map[string]string) (*checkoutsvc.IntentHandle, error) {
	return &checkoutsvc.IntentHandle{ID: "pi_1", ClientSecret: "pi_1_secret", AmountCents: amountCents, Currency: currency}, nil
}

func (stubGateway) Confirm(context.Context, string) (checkoutsvc.PaymentResult, error) {
	return checkoutsvc.PaymentResult{Status: enums.PaymentOutcomeSucceeded}, nil
}

type stubSubmitter struct{}

func (stubSubmitter) Submit(context.Context, checkoutsvc.PurchaseRequest) (string, error) {
	return "TRK-1", nil
}

func jwtConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "lumicart-test", Audience: "storefront"}
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT = jwtConfig()
	cfg.CORS.AllowedOrigins = []string{"http://localhost:4200"}

	logg := logger.New(logger.Options{ServiceName: "storefront-test", Output: io.Discard})
	carts := cart.NewManager(nil, logg, nil)
	checkoutMgr := checkoutsvc.NewManager(carts, stubGateway{}, stubSubmitter{}, "usd", logg, nil)

	return NewRouter(Deps{
		Cfg:             cfg,
		Logg:            logg,
		Cache:           stubPinger{},
		Verifier:        identity.NewVerifier(cfg.JWT),
		Carts:           carts,
		Checkout:        checkoutMgr,
		Catalog:         stubCatalog{},
		Orders:          stubOrders{},
		Returns:         stubReturns{},
		Prefs:           stubPrefs{},
		MetricsRegistry: prometheus.NewRegistry(),
	})
}

func mintToken(t *testing.T, cfg config.JWTConfig) string {
	t.Helper()
	claims := pkgauth.ProfileClaims{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestOpenRoutes(t *testing.T) {
	t.Parallel()

	router := testRouter(t)
	for _, path := range []string{
		"/health/live",
		"/health/ready",
		"/metrics",
		"/api/products",
		"/api/product-category",
		"/api/products/brands",
		"/api/hero-banners",
		"/api/products/1",
		"/api/cart",
		"/api/prefs",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, resp.Code)
		}
	}
}

func TestSecuredRoutesRequireAuth(t *testing.T) {
	t.Parallel()

	router := testRouter(t)
	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/orders"},
		{http.MethodGet, "/api/checkout/status"},
		{http.MethodPost, "/api/checkout/reset"},
		{http.MethodGet, "/api/returns"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, resp.Code)
		}
	}
}

func TestSecuredRouteWithToken(t *testing.T) {
	t.Parallel()

	router := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/checkout/status", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, jwtConfig()))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with bearer token, got %d", resp.Code)
	}
}
