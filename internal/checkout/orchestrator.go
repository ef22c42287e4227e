package checkout

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumicart/storefront/internal/cart"
	"github.com/lumicart/storefront/pkg/enums"
	pkgerrors "github.com/lumicart/storefront/pkg/errors"
	"github.com/lumicart/storefront/pkg/logger"
	"github.com/lumicart/storefront/pkg/metrics"
)

// Orchestrator sequences one session's checkout: it derives the payment
// amount from the cart, drives the two-phase payment flow against the
// gateway, and finalizes or leaves the cart depending on outcome. Failures
// land in explicit states carrying a message; errors returned by its methods
// signal misuse (wrong state) or recoverable validation problems, never a
// half-applied transition.
type Orchestrator struct {
	mu sync.Mutex

	state   enums.CheckoutState
	handle  *IntentHandle
	attempt uint64

	// bumped by the cart store's observer callback on every mutation; the
	// callback runs under the store's lock, so it must stay lock-free here
	cartEpoch atomic.Uint64

	form     Form
	purchase *PurchaseRequest

	message        string
	trackingNumber string

	cart     *cart.Store
	gateway  PaymentGateway
	orders   OrderSubmitter
	currency string

	sessionID string
	logg      *logger.Logger
	metrics   *metrics.StorefrontMetrics
}

// NewOrchestrator builds an idle orchestrator bound to the session's cart.
// The customer context arrives explicitly with the checkout form; nothing is
// read from ambient session state.
func NewOrchestrator(sessionID string, store *cart.Store, gateway PaymentGateway, orders OrderSubmitter, currency string, logg *logger.Logger, m *metrics.StorefrontMetrics) (*Orchestrator, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart store required")
	}
	if gateway == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payment gateway required")
	}
	if orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "order submitter required")
	}
	if currency == "" {
		currency = "usd"
	}
	o := &Orchestrator{
		state:     enums.CheckoutStateIdle,
		cart:      store,
		gateway:   gateway,
		orders:    orders,
		currency:  currency,
		sessionID: sessionID,
		logg:      logg,
		metrics:   m,
	}
	store.Subscribe(func(cart.Snapshot) {
		o.cartEpoch.Add(1)
	})
	return o, nil
}

// Status returns the caller-visible view of the attempt.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.statusLocked()
}

// BeginCheckout validates the cart and form, requests a payment intent for
// the cart's current total, and moves to AwaitingConfirmation. A validation
// failure leaves the state untouched; a gateway failure lands in Failed.
func (o *Orchestrator) BeginCheckout(ctx context.Context, form Form) (Status, error) {
	o.mu.Lock()
	switch o.state {
	case enums.CheckoutStateIdle, enums.CheckoutStateFailed, enums.CheckoutStatePreparingPayment:
	default:
		defer o.mu.Unlock()
		return o.statusLocked(), pkgerrors.New(pkgerrors.CodeStateConflict, "checkout already in progress")
	}

	snap := o.cart.Snapshot()
	if snap.IsEmpty() {
		defer o.mu.Unlock()
		return o.statusLocked(), pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	amountCents, ok := amountInCents(snap.TotalPrice)
	if !ok || amountCents <= 0 {
		defer o.mu.Unlock()
		return o.statusLocked(), pkgerrors.New(pkgerrors.CodeValidation, "order amount must be positive")
	}

	o.state = enums.CheckoutStatePreparingPayment
	o.form = form
	o.message = ""
	o.trackingNumber = ""
	o.purchase = nil
	o.attempt++
	attempt := o.attempt
	o.mu.Unlock()

	handle, err := o.createIntent(ctx, amountCents)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.attempt != attempt {
		// a reset or a newer attempt superseded this one mid-flight
		return o.statusLocked(), nil
	}
	if err != nil {
		o.state = enums.CheckoutStateFailed
		o.message = "payment service unavailable"
		if o.logg != nil {
			o.logg.Error(ctx, "checkout.begin create intent", err)
		}
		return o.statusLocked(), pkgerrors.Wrap(pkgerrors.CodeGateway, err, "create payment intent")
	}

	o.handle = handle
	o.state = enums.CheckoutStateAwaitingConfirmation
	return o.statusLocked(), nil
}

// ConfirmPayment checks the live intent at the gateway and advances the state
// machine: success moves to Submitting with a frozen purchase request,
// definite failure lands in Failed with the gateway's reason, and a pending
// outcome stays in AwaitingConfirmation. If the cart total has drifted from
// the handle's amount, a fresh handle is derived first; confirmation never
// runs against a stale amount.
func (o *Orchestrator) ConfirmPayment(ctx context.Context) (Status, error) {
	o.mu.Lock()
	if o.state != enums.CheckoutStateAwaitingConfirmation || o.handle == nil {
		defer o.mu.Unlock()
		return o.statusLocked(), pkgerrors.New(pkgerrors.CodeStateConflict, "no payment awaiting confirmation")
	}

	snap := o.cart.Snapshot()
	if snap.IsEmpty() {
		o.state = enums.CheckoutStateFailed
		o.message = "cart was emptied during checkout"
		o.handle = nil
		defer o.mu.Unlock()
		return o.statusLocked(), nil
	}
	amountCents, ok := amountInCents(snap.TotalPrice)
	if !ok || amountCents <= 0 {
		defer o.mu.Unlock()
		return o.statusLocked(), pkgerrors.New(pkgerrors.CodeValidation, "order amount must be positive")
	}

	attempt := o.attempt
	handle := o.handle
	epoch := o.cartEpoch.Load()

	if handle.AmountCents != amountCents {
		o.mu.Unlock()
		fresh, err := o.createIntent(ctx, amountCents)
		o.mu.Lock()
		if o.attempt != attempt {
			defer o.mu.Unlock()
			return o.statusLocked(), nil
		}
		if err != nil {
			o.state = enums.CheckoutStateFailed
			o.message = "payment service unavailable"
			defer o.mu.Unlock()
			return o.statusLocked(), pkgerrors.Wrap(pkgerrors.CodeGateway, err, "refresh payment intent")
		}
		o.handle = fresh
		handle = fresh
		if o.logg != nil {
			o.logg.Warn(ctx, "checkout.confirm superseded stale payment intent")
		}
		// the client must confirm against the fresh secret
		defer o.mu.Unlock()
		return o.statusLocked(), nil
	}
	o.mu.Unlock()

	start := time.Now()
	result, err := o.gateway.Confirm(ctx, handle.ID)
	o.metrics.ObserveGatewayLatency("confirm", time.Since(start))

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.attempt != attempt || o.handle == nil || o.handle.ID != handle.ID {
		// abandoned or superseded while the confirmation was in flight
		return o.statusLocked(), nil
	}
	if err != nil {
		o.state = enums.CheckoutStateFailed
		o.message = "payment confirmation unavailable"
		if o.logg != nil {
			o.logg.Error(ctx, "checkout.confirm", err)
		}
		return o.statusLocked(), pkgerrors.Wrap(pkgerrors.CodeGateway, err, "confirm payment")
	}

	switch result.Status {
	case enums.PaymentOutcomeSucceeded:
		o.state = enums.CheckoutStateSubmitting
		o.message = ""
		// the purchase freezes the snapshot that was verified against the
		// handle's amount, so the submitted order always matches what the
		// payment captured even if the cart mutated mid-confirmation
		o.purchase = buildPurchase(o.form, snap, handle.ID)
		if o.cartEpoch.Load() != epoch && o.logg != nil {
			o.logg.Warn(ctx, "checkout.confirm cart mutated during confirmation; order frozen at the paid contents")
		}
	case enums.PaymentOutcomeFailed:
		o.state = enums.CheckoutStateFailed
		o.message = result.Reason
		o.metrics.IncCheckoutResult(string(enums.CheckoutStateFailed))
	case enums.PaymentOutcomePending:
		o.message = result.Reason
	}
	return o.statusLocked(), nil
}

// SubmitOrder hands the frozen purchase request to the order service. Success
// completes the attempt and clears the cart; failure lands in
// SubmissionFailed with the cart deliberately left intact, since the payment
// was already captured and the user may re-submit manually.
func (o *Orchestrator) SubmitOrder(ctx context.Context) (Status, error) {
	o.mu.Lock()
	switch o.state {
	case enums.CheckoutStateSubmitting, enums.CheckoutStateSubmissionFailed:
	default:
		defer o.mu.Unlock()
		return o.statusLocked(), pkgerrors.New(pkgerrors.CodeStateConflict, "no confirmed payment to submit")
	}
	if o.purchase == nil {
		defer o.mu.Unlock()
		return o.statusLocked(), pkgerrors.New(pkgerrors.CodeStateConflict, "purchase request missing")
	}
	o.state = enums.CheckoutStateSubmitting
	purchase := *o.purchase
	attempt := o.attempt
	o.mu.Unlock()

	tracking, err := o.orders.Submit(ctx, purchase)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.attempt != attempt {
		return o.statusLocked(), nil
	}
	if err != nil {
		o.state = enums.CheckoutStateSubmissionFailed
		o.message = err.Error()
		o.metrics.IncCheckoutResult(string(enums.CheckoutStateSubmissionFailed))
		if o.logg != nil {
			ctx := o.logg.WithField(ctx, "payment_intent_id", purchase.PaymentIntentID)
			o.logg.Error(ctx, "checkout.submit payment captured but order not confirmed", err)
		}
		return o.statusLocked(), pkgerrors.Wrap(pkgerrors.CodeSubmission, err, "submit order")
	}

	o.state = enums.CheckoutStateCompleted
	o.trackingNumber = tracking
	o.message = ""
	o.handle = nil
	o.purchase = nil
	o.metrics.IncCheckoutResult(string(enums.CheckoutStateCompleted))

	o.cart.Clear(ctx)
	return o.statusLocked(), nil
}

// Reset abandons the attempt: the state returns to Idle and any live handle
// is discarded, so an in-flight confirmation response for it is ignored when
// it lands.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = enums.CheckoutStateIdle
	o.handle = nil
	o.purchase = nil
	o.message = ""
	o.trackingNumber = ""
	o.attempt++
}

func (o *Orchestrator) createIntent(ctx context.Context, amountCents int64) (*IntentHandle, error) {
	start := time.Now()
	handle, err := o.gateway.CreateIntent(ctx, amountCents, o.currency, map[string]string{
		"session_id": o.sessionID,
	})
	o.metrics.ObserveGatewayLatency("create_intent", time.Since(start))
	return handle, err
}

func (o *Orchestrator) statusLocked() Status {
	st := Status{
		State:          o.state,
		Message:        o.message,
		TrackingNumber: o.trackingNumber,
	}
	if o.handle != nil {
		st.ClientSecret = o.handle.ClientSecret
		st.IntentID = o.handle.ID
	}
	return st
}

// amountInCents converts a decimal price into integer cents, rejecting values
// that do not land exactly on a cent boundary.
func amountInCents(total decimal.Decimal) (int64, bool) {
	cents := total.Shift(2)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, false
	}
	return cents.IntPart(), true
}
