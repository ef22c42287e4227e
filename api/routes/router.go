package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lumicart/storefront/api/controllers"
	"github.com/lumicart/storefront/api/middleware"
	"github.com/lumicart/storefront/internal/identity"
	"github.com/lumicart/storefront/pkg/config"
	"github.com/lumicart/storefront/pkg/logger"
	"github.com/lumicart/storefront/pkg/redis"
)

// Deps carries the wired services the router mounts.
type Deps struct {
	Cfg      *config.Config
	Logg     *logger.Logger
	Cache    redis.Pinger
	Verifier *identity.Verifier

	Carts    controllers.CartRegistry
	Checkout controllers.CheckoutRegistry
	Catalog  controllers.CatalogService
	Orders   controllers.OrderHistoryService
	Returns  controllers.ReturnsService
	Prefs    controllers.PrefsService

	MetricsRegistry *prometheus.Registry
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(d.Logg),
		middleware.RequestID(d.Logg),
		middleware.Logging(d.Logg),
		middleware.CORS(d.Cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(d.Cfg))
		r.Get("/ready", controllers.HealthReady(d.Cfg, d.Logg, d.Cache))
	})

	if d.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Session(d.Logg))

		// open storefront surface
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(d.Catalog, d.Logg))
			r.Get("/search", controllers.ProductSearch(d.Catalog, d.Logg))
			r.Get("/autocomplete", controllers.ProductAutocomplete(d.Catalog, d.Logg))
			r.Get("/brands", controllers.BrandList(d.Catalog, d.Logg))
			r.Get("/{productId}", controllers.ProductDetail(d.Catalog, d.Logg))
		})
		r.Get("/product-category", controllers.CategoryList(d.Catalog, d.Logg))
		r.Get("/hero-banners", controllers.BannerList(d.Catalog, d.Logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(d.Carts, d.Logg))
			r.Delete("/", controllers.CartClear(d.Carts, d.Logg))
			r.Post("/items/{productId}", controllers.CartAddItem(d.Carts, d.Catalog, d.Logg))
			r.Post("/items/{productId}/increment", controllers.CartIncrement(d.Carts, d.Logg))
			r.Post("/items/{productId}/decrement", controllers.CartDecrement(d.Carts, d.Logg))
			r.Delete("/items/{productId}", controllers.CartRemove(d.Carts, d.Logg))
		})

		r.Route("/prefs", func(r chi.Router) {
			r.Get("/", controllers.PrefsFetch(d.Prefs, d.Logg))
			r.Put("/", controllers.PrefsUpdate(d.Prefs, d.Logg))
		})

		// authenticated surface
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(d.Verifier, d.Logg))

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/payment-intent", controllers.CheckoutBegin(d.Checkout, d.Logg))
				r.Post("/confirm", controllers.CheckoutConfirm(d.Checkout, d.Logg))
				r.Post("/purchase", controllers.CheckoutSubmit(d.Checkout, d.Logg))
				r.Get("/status", controllers.CheckoutStatus(d.Checkout, d.Logg))
				r.Post("/reset", controllers.CheckoutReset(d.Checkout, d.Logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderHistory(d.Orders, d.Logg))
				r.Get("/{orderId}", controllers.OrderDetail(d.Orders, d.Logg))
				r.Get("/{orderId}/returns", controllers.ReturnListByOrder(d.Returns, d.Logg))
			})

			r.Route("/returns", func(r chi.Router) {
				r.Post("/", controllers.ReturnCreate(d.Returns, d.Logg))
				r.Get("/", controllers.ReturnListMine(d.Returns, d.Logg))
				r.Get("/{returnId}", controllers.ReturnDetail(d.Returns, d.Logg))
			})
		})
	})

	return r
}
