package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/lumicart/storefront/api/routes"
	"github.com/lumicart/storefront/internal/cart"
	"github.com/lumicart/storefront/internal/catalog"
	"github.com/lumicart/storefront/internal/checkout"
	"github.com/lumicart/storefront/internal/identity"
	"github.com/lumicart/storefront/internal/orders"
	"github.com/lumicart/storefront/internal/prefs"
	"github.com/lumicart/storefront/internal/returns"
	"github.com/lumicart/storefront/pkg/config"
	"github.com/lumicart/storefront/pkg/instance"
	"github.com/lumicart/storefront/pkg/logger"
	"github.com/lumicart/storefront/pkg/metrics"
	"github.com/lumicart/storefront/pkg/redis"
	"github.com/lumicart/storefront/pkg/stripe"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cache, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := cache.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	stripeClient, err := stripe.NewClient(ctx, cfg.Stripe, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap stripe", err)
		os.Exit(1)
	}

	catalogClient, err := catalog.NewClient(cfg.Catalog.BaseURL,
		catalog.WithHTTPClient(&http.Client{Timeout: cfg.Catalog.Timeout}))
	if err != nil {
		logg.Error(ctx, "failed to build catalog client", err)
		os.Exit(1)
	}

	ordersClient, err := orders.NewClient(cfg.Orders.BaseURL,
		orders.WithHTTPClient(upstreamHTTPClient(cfg.Orders.Timeout, cfg.Orders.ServiceToken, cfg.Orders.BaseURL)))
	if err != nil {
		logg.Error(ctx, "failed to build orders client", err)
		os.Exit(1)
	}

	returnsClient, err := returns.NewClient(cfg.Returns.BaseURL,
		returns.WithHTTPClient(upstreamHTTPClient(cfg.Returns.Timeout, cfg.Returns.ServiceToken, cfg.Returns.BaseURL)))
	if err != nil {
		logg.Error(ctx, "failed to build returns client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storeMetrics := metrics.NewStorefrontMetrics(registry)

	persister, err := cart.NewRedisPersister(cache, cfg.Checkout.CartTTL)
	if err != nil {
		logg.Error(ctx, "failed to build cart persister", err)
		os.Exit(1)
	}
	carts := cart.NewManager(persister, logg, storeMetrics)
	checkouts := checkout.NewManager(carts, checkout.NewStripeGateway(stripeClient), ordersClient, cfg.Checkout.Currency, logg, storeMetrics)

	prefsService, err := prefs.NewService(cache, cfg.Checkout.CartTTL, logg)
	if err != nil {
		logg.Error(ctx, "failed to build prefs service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx = logg.WithFields(ctx, map[string]any{
		"env":        cfg.App.Env,
		"addr":       addr,
		"instance":   instance.GetID(),
		"stripe_env": stripeClient.Environment(),
	})
	logg.Info(ctx, "starting storefront api")

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: routes.NewRouter(routes.Deps{
			Cfg:             cfg,
			Logg:            logg,
			Cache:           cache,
			Verifier:        identity.NewVerifier(cfg.JWT),
			Carts:           carts,
			Checkout:        checkouts,
			Catalog:         catalogClient,
			Orders:          ordersClient,
			Returns:         returnsClient,
			Prefs:           prefsService,
			MetricsRegistry: registry,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "storefront api stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if serveErr := <-errCh; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			err = multierr.Append(err, serveErr)
		}
		if err != nil {
			logg.Error(ctx, "shutdown did not finish cleanly", err)
			os.Exit(1)
		}
		logg.Info(ctx, "storefront api stopped")
	}
}

// upstreamHTTPClient attaches a service bearer token for upstreams that
// require one. With no token configured the plain client is returned.
func upstreamHTTPClient(timeout time.Duration, serviceToken, baseURL string) *http.Client {
	client := &http.Client{Timeout: timeout}
	if serviceToken != "" {
		client.Transport = identity.NewTransport(nil, identity.StaticTokenSource(serviceToken), []string{baseURL})
	}
	return client
}
