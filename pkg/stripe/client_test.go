package stripe

import (
	"context"
	"testing"

	"github.com/stripe/stripe-go/v84"

	"github.com/lumicart/storefront/pkg/config"
	"github.com/lumicart/storefront/pkg/enums"
)

func TestNewClientValidatesKeyAgainstEnv(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(context.Background(), config.StripeConfig{APIKey: "sk_live_abc", Env: "test"}, nil); err == nil {
		t.Fatal("expected live key in test env to be rejected")
	}
	if _, err := NewClient(context.Background(), config.StripeConfig{APIKey: "", Env: "test"}, nil); err == nil {
		t.Fatal("expected missing key to be rejected")
	}
	if _, err := NewClient(context.Background(), config.StripeConfig{APIKey: "sk_test_abc", Env: "sandbox"}, nil); err == nil {
		t.Fatal("expected unknown env to be rejected")
	}

	client, err := NewClient(context.Background(), config.StripeConfig{APIKey: "sk_test_abc", Env: "test"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Environment() != "test" {
		t.Fatalf("unexpected environment %q", client.Environment())
	}
}

func TestCreateIntentRejectsNonPositiveAmount(t *testing.T) {
	t.Parallel()

	client := &Client{api: &stubIntentAPI{}, environment: testEnv}
	if _, err := client.CreateIntent(context.Background(), 0, "usd", nil); err == nil {
		t.Fatal("expected zero amount to be rejected")
	}
	if _, err := client.CreateIntent(context.Background(), -100, "usd", nil); err == nil {
		t.Fatal("expected negative amount to be rejected")
	}
}

func TestCreateIntentReturnsHandle(t *testing.T) {
	t.Parallel()

	api := &stubIntentAPI{created: &stripe.PaymentIntent{
		ID:           "pi_123",
		ClientSecret: "pi_123_secret",
		Amount:       2000,
		Currency:     stripe.CurrencyUSD,
	}}
	client := &Client{api: api, environment: testEnv}

	handle, err := client.CreateIntent(context.Background(), 2000, "usd", map[string]string{"session_id": "s1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handle.ID != "pi_123" || handle.ClientSecret != "pi_123_secret" {
		t.Fatalf("unexpected handle %+v", handle)
	}
	if handle.AmountCents != 2000 {
		t.Fatalf("expected amount 2000, got %d", handle.AmountCents)
	}
	if api.lastCreate == nil || api.lastCreate.Metadata["session_id"] != "s1" {
		t.Fatalf("expected metadata to be forwarded")
	}
}

func TestConfirmMapsGatewayStatuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		intent     *stripe.PaymentIntent
		wantStatus enums.PaymentOutcome
		wantReason string
	}{
		{
			name:       "succeeded",
			intent:     &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusSucceeded},
			wantStatus: enums.PaymentOutcomeSucceeded,
		},
		{
			name: "declined",
			intent: &stripe.PaymentIntent{
				Status:           stripe.PaymentIntentStatusRequiresPaymentMethod,
				LastPaymentError: &stripe.Error{Msg: "Your card was declined."},
			},
			wantStatus: enums.PaymentOutcomeFailed,
			wantReason: "Your card was declined.",
		},
		{
			name:       "canceled",
			intent:     &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusCanceled},
			wantStatus: enums.PaymentOutcomeFailed,
			wantReason: "payment canceled",
		},
		{
			name:       "requires action",
			intent:     &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusRequiresAction},
			wantStatus: enums.PaymentOutcomePending,
			wantReason: "requires_action",
		},
		{
			name:       "processing",
			intent:     &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusProcessing},
			wantStatus: enums.PaymentOutcomePending,
			wantReason: "processing",
		},
		{
			name:       "awaiting payment method without error",
			intent:     &stripe.PaymentIntent{Status: stripe.PaymentIntentStatusRequiresPaymentMethod},
			wantStatus: enums.PaymentOutcomePending,
			wantReason: "requires_payment_method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &Client{api: &stubIntentAPI{got: tt.intent}, environment: testEnv}
			outcome, err := client.Confirm(context.Background(), "pi_123")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if outcome.Status != tt.wantStatus {
				t.Fatalf("expected status %s got %s", tt.wantStatus, outcome.Status)
			}
			if outcome.Reason != tt.wantReason {
				t.Fatalf("expected reason %q got %q", tt.wantReason, outcome.Reason)
			}
		})
	}
}

func TestConfirmRequiresHandleID(t *testing.T) {
	t.Parallel()

	client := &Client{api: &stubIntentAPI{}, environment: testEnv}
	if _, err := client.Confirm(context.Background(), "  "); err == nil {
		t.Fatal("expected blank handle id to be rejected")
	}
}

type stubIntentAPI struct {
	created    *stripe.PaymentIntent
	got        *stripe.PaymentIntent
	lastCreate *stripe.PaymentIntentParams
}

func (s *stubIntentAPI) Create(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	s.lastCreate = params
	if s.created != nil {
		return s.created, nil
	}
	return &stripe.PaymentIntent{ID: "pi_stub", ClientSecret: "secret", Amount: *params.Amount}, nil
}

func (s *stubIntentAPI) Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	if s.got != nil {
		return s.got, nil
	}
	return &stripe.PaymentIntent{ID: id, Status: stripe.PaymentIntentStatusSucceeded}, nil
}
