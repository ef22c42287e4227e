package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv     = "LUMICART_APP_ENV"
	EnvPort       = "LUMICART_APP_PORT"
	EnvRedisURL   = "LUMICART_REDIS_URL"
	EnvJWTSecret  = "LUMICART_JWT_SECRET"
	EnvCatalogURL = "LUMICART_CATALOG_BASE_URL"
	EnvOrdersURL  = "LUMICART_ORDERS_BASE_URL"
	EnvReturnsURL = "LUMICART_RETURNS_BASE_URL"
)

type Config struct {
	App      AppConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Stripe   StripeConfig
	Checkout CheckoutConfig
	Catalog  CatalogConfig
	Orders   OrdersConfig
	Returns  ReturnsConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LUMICART_APP_ENV" required:"true"`
	Port         string `envconfig:"LUMICART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LUMICART_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"LUMICART_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"LUMICART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"LUMICART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LUMICART_REDIS_ADDR"`
	Password     string        `envconfig:"LUMICART_REDIS_PASSWORD"`
	DB           int           `envconfig:"LUMICART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LUMICART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LUMICART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LUMICART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LUMICART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LUMICART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig verifies bearer tokens minted by the external identity provider.
type JWTConfig struct {
	Secret   string `envconfig:"LUMICART_JWT_SECRET" required:"true"`
	Issuer   string `envconfig:"LUMICART_JWT_ISSUER" required:"true"`
	Audience string `envconfig:"LUMICART_JWT_AUDIENCE"`
}

type StripeConfig struct {
	APIKey string `envconfig:"LUMICART_STRIPE_API_KEY"`
	Env    string `envconfig:"LUMICART_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type CheckoutConfig struct {
	Currency     string        `envconfig:"LUMICART_CHECKOUT_CURRENCY" default:"usd"`
	CartTTL      time.Duration `envconfig:"LUMICART_CART_TTL" default:"720h"`
	ReturnWindow time.Duration `envconfig:"LUMICART_RETURN_WINDOW" default:"720h"`
}

type CatalogConfig struct {
	BaseURL string        `envconfig:"LUMICART_CATALOG_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"LUMICART_CATALOG_TIMEOUT" default:"10s"`
}

type OrdersConfig struct {
	BaseURL      string        `envconfig:"LUMICART_ORDERS_BASE_URL" required:"true"`
	Timeout      time.Duration `envconfig:"LUMICART_ORDERS_TIMEOUT" default:"15s"`
	ServiceToken string        `envconfig:"LUMICART_ORDERS_SERVICE_TOKEN"`
}

type ReturnsConfig struct {
	BaseURL      string        `envconfig:"LUMICART_RETURNS_BASE_URL" required:"true"`
	Timeout      time.Duration `envconfig:"LUMICART_RETURNS_TIMEOUT" default:"10s"`
	ServiceToken string        `envconfig:"LUMICART_RETURNS_SERVICE_TOKEN"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"LUMICART_CORS_ALLOWED_ORIGINS" default:"http://localhost:4200"`
}
