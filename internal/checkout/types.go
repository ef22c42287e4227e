package checkout

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lumicart/storefront/internal/cart"
	"github.com/lumicart/storefront/pkg/enums"
	"github.com/lumicart/storefront/pkg/types"
)

// Form carries the customer-entered checkout data. Card entry itself happens
// on the gateway's hosted element; only identity and addresses reach us.
type Form struct {
	Customer        types.Customer `json:"customer" validate:"required"`
	ShippingAddress types.Address  `json:"shippingAddress" validate:"required"`
	BillingAddress  types.Address  `json:"billingAddress" validate:"required"`
}

// IntentHandle references one in-progress payment transaction at the gateway.
// The amount is fixed at creation; a handle whose amount no longer matches
// the cart is stale and must be superseded before confirming.
type IntentHandle struct {
	ID           string
	ClientSecret string
	AmountCents  int64
	Currency     string
}

// PaymentResult classifies a confirmation response from the gateway.
type PaymentResult struct {
	Status enums.PaymentOutcome
	Reason string
}

// PaymentGateway is the outbound contract to the payment processor.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*IntentHandle, error)
	Confirm(ctx context.Context, handleID string) (PaymentResult, error)
}

// PurchaseItem is a line snapshot frozen at submission time, decoupled from
// the live cart so later mutation cannot alter a submitted order.
type PurchaseItem struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// PurchaseRequest is the immutable record of a completed checkout handed to
// order processing.
type PurchaseRequest struct {
	Customer        types.Customer  `json:"customer"`
	ShippingAddress types.Address   `json:"shippingAddress"`
	BillingAddress  types.Address   `json:"billingAddress"`
	Items           []PurchaseItem  `json:"items"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	TotalQuantity   int             `json:"totalQuantity"`
	PaymentIntentID string          `json:"paymentIntentId"`
}

// OrderSubmitter is the outbound contract to the order submission service.
type OrderSubmitter interface {
	Submit(ctx context.Context, req PurchaseRequest) (trackingNumber string, err error)
}

// Status is the caller-visible view of one checkout attempt.
type Status struct {
	State          enums.CheckoutState `json:"state"`
	Message        string              `json:"message,omitempty"`
	ClientSecret   string              `json:"clientSecret,omitempty"`
	IntentID       string              `json:"intentId,omitempty"`
	TrackingNumber string              `json:"trackingNumber,omitempty"`
}

func buildPurchase(form Form, snap cart.Snapshot, intentID string) *PurchaseRequest {
	items := make([]PurchaseItem, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		items = append(items, PurchaseItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return &PurchaseRequest{
		Customer:        form.Customer,
		ShippingAddress: form.ShippingAddress,
		BillingAddress:  form.BillingAddress,
		Items:           items,
		TotalPrice:      snap.TotalPrice,
		TotalQuantity:   snap.TotalQuantity,
		PaymentIntentID: intentID,
	}
}
