package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/paymentintent"

	"github.com/lumicart/storefront/pkg/config"
	"github.com/lumicart/storefront/pkg/enums"
	"github.com/lumicart/storefront/pkg/logger"
)

const (
	testEnv = "test"
	liveEnv = "live"
)

var (
	errAPIKeyRequired   = errors.New("stripe api key is required")
	errInvalidStripeEnv = fmt.Errorf("stripe environment must be %q or %q", testEnv, liveEnv)
)

// IntentHandle references one in-progress payment transaction at the gateway.
type IntentHandle struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	AmountCents  int64  `json:"amountCents"`
	Currency     string `json:"currency"`
}

// Outcome classifies a confirmation result. Reason carries the gateway's
// literal decline message for failed outcomes and the raw intent status for
// pending ones.
type Outcome struct {
	Status enums.PaymentOutcome
	Reason string
}

type intentAPI interface {
	Create(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type sdkIntentAPI struct{}

func (sdkIntentAPI) Create(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.New(params)
}

func (sdkIntentAPI) Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.Get(id, params)
}

// Client wraps Stripe's API plus env-specific metadata.
type Client struct {
	api         intentAPI
	environment string
}

// NewClient initializes Stripe once with the configured secrets and env.
func NewClient(ctx context.Context, cfg config.StripeConfig, logg *logger.Logger) (*Client, error) {
	env, err := normalizeEnv(cfg.Environment())
	if err != nil {
		return nil, err
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	if err := validateAPIKey(env, apiKey); err != nil {
		return nil, err
	}

	stripe.Key = apiKey

	if logg != nil {
		logg.Info(ctx, fmt.Sprintf("stripe client initialized (%s)", env))
	}

	return &Client{
		api:         sdkIntentAPI{},
		environment: env,
	}, nil
}

// Environment reports the normalized Stripe environment in use.
func (c *Client) Environment() string {
	if c == nil {
		return ""
	}
	return c.environment
}

// CreateIntent opens a payment intent for the given amount and returns its handle.
func (c *Client) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*IntentHandle, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("intent amount must be positive, got %d", amountCents)
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := c.api.Create(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	return &IntentHandle{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}

// Confirm fetches the current state of the intent and maps it onto an Outcome.
func (c *Client) Confirm(ctx context.Context, handleID string) (Outcome, error) {
	if strings.TrimSpace(handleID) == "" {
		return Outcome{}, errors.New("intent id is required")
	}
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := c.api.Get(handleID, params)
	if err != nil {
		return Outcome{}, fmt.Errorf("retrieve payment intent: %w", err)
	}
	return mapIntent(pi), nil
}

func mapIntent(pi *stripe.PaymentIntent) Outcome {
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return Outcome{Status: enums.PaymentOutcomeSucceeded}
	case stripe.PaymentIntentStatusCanceled:
		return Outcome{Status: enums.PaymentOutcomeFailed, Reason: declineReason(pi, "payment canceled")}
	case stripe.PaymentIntentStatusRequiresPaymentMethod:
		if pi.LastPaymentError != nil {
			return Outcome{Status: enums.PaymentOutcomeFailed, Reason: declineReason(pi, "payment failed")}
		}
		return Outcome{Status: enums.PaymentOutcomePending, Reason: string(pi.Status)}
	default:
		// requires_confirmation, requires_action, processing, requires_capture
		return Outcome{Status: enums.PaymentOutcomePending, Reason: string(pi.Status)}
	}
}

func declineReason(pi *stripe.PaymentIntent, fallback string) string {
	if pi.LastPaymentError != nil && pi.LastPaymentError.Msg != "" {
		return pi.LastPaymentError.Msg
	}
	return fallback
}

func normalizeEnv(raw string) (string, error) {
	env := strings.TrimSpace(strings.ToLower(raw))
	if env == "" {
		env = testEnv
	}
	switch env {
	case testEnv, liveEnv:
		return env, nil
	default:
		return "", errInvalidStripeEnv
	}
}

func validateAPIKey(env, key string) error {
	switch env {
	case testEnv:
		if strings.HasPrefix(key, "sk_test") || strings.HasPrefix(key, "rk_test") {
			return nil
		}
		return fmt.Errorf("stripe environment %q requires a test secret key (sk_test/rk_test)", testEnv)
	case liveEnv:
		if strings.HasPrefix(key, "sk_live") || strings.HasPrefix(key, "rk_live") {
			return nil
		}
		return fmt.Errorf("stripe environment %q requires a live secret key (sk_live/rk_live)", liveEnv)
	default:
		return errInvalidStripeEnv
	}
}
