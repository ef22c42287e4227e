package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumicart/storefront/pkg/enums"
	"github.com/lumicart/storefront/pkg/types"
)

// ReturnWindow is how long after delivery an order stays returnable.
const ReturnWindow = 30 * 24 * time.Hour

// Item is one line of a placed order.
type Item struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	ImageURL    string          `json:"imageUrl"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
}

// Order is a placed order as reported by the order service.
type Order struct {
	ID             string            `json:"id"`
	TrackingNumber string            `json:"orderTrackingNumber"`
	TotalPrice     decimal.Decimal   `json:"totalPrice"`
	TotalQuantity  int               `json:"totalQuantity"`
	DateCreated    time.Time         `json:"dateCreated"`
	Status         enums.OrderStatus `json:"status"`
	DeliveryDate   *time.Time        `json:"deliveryDate,omitempty"`
	IsReturned     bool              `json:"isReturned"`
	Items          []Item            `json:"orderItems,omitempty"`
	ShippingAddr   *types.Address    `json:"shippingAddress,omitempty"`
	BillingAddr    *types.Address    `json:"billingAddress,omitempty"`
	Customer       *types.Customer   `json:"customer,omitempty"`
}

// HistoryPage is one page of a customer's order history.
type HistoryPage struct {
	Orders        []Order `json:"orders"`
	PageNumber    int     `json:"pageNumber"`
	PageSize      int     `json:"pageSize"`
	TotalElements int64   `json:"totalElements"`
	TotalPages    int     `json:"totalPages"`
}

// EligibleForReturn reports whether the order can still be returned: it must
// be delivered, not already returned, and inside the return window counted
// from the delivery date. An order with no delivery date is never eligible.
func EligibleForReturn(order Order, now time.Time) bool {
	if order.Status != enums.OrderStatusDelivered {
		return false
	}
	if order.IsReturned {
		return false
	}
	if order.DeliveryDate == nil {
		return false
	}
	return !now.After(order.DeliveryDate.Add(ReturnWindow))
}
