package returns

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lumicart/storefront/pkg/enums"
	pkgerrors "github.com/lumicart/storefront/pkg/errors"
)

const errorBodyReadLimit int64 = 1024

var errBaseURLRequired = errors.New("returns base URL is required")

// RequestItem selects one order line for return.
type RequestItem struct {
	OrderItemID int64  `json:"orderItemId"`
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason"`
}

// Request is the payload creating a return against a placed order.
type Request struct {
	OrderID      string        `json:"orderId"`
	ReturnReason string        `json:"returnReason"`
	Comments     string        `json:"comments,omitempty"`
	Items        []RequestItem `json:"returnItems"`
}

// ReturnRecord is a return request as reported by the returns service.
type ReturnRecord struct {
	ID            string             `json:"id"`
	OrderID       string             `json:"orderId"`
	CustomerEmail string             `json:"customerEmail"`
	ReturnReason  string             `json:"returnReason"`
	Comments      string             `json:"comments,omitempty"`
	Status        enums.ReturnStatus `json:"status"`
	Items         []RequestItem      `json:"returnItems,omitempty"`
	DateCreated   time.Time          `json:"dateCreated"`
}

// Client talks to the remote returns service.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds a returns client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// Create files a new return request.
func (c *Client) Create(ctx context.Context, req Request) (*ReturnRecord, error) {
	if strings.TrimSpace(req.OrderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order ID is required")
	}
	if len(req.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one return item is required")
	}
	for _, item := range req.Items {
		if strings.TrimSpace(item.Reason) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "every return item needs a reason")
		}
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "return item quantity must be positive")
		}
	}

	var record ReturnRecord
	if err := c.doJSON(ctx, http.MethodPost, "/returns", nil, req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Get fetches a single return request.
func (c *Client) Get(ctx context.Context, returnID string) (*ReturnRecord, error) {
	returnID = strings.TrimSpace(returnID)
	if returnID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "return ID is required")
	}

	var record ReturnRecord
	if err := c.doJSON(ctx, http.MethodGet, "/returns/"+url.PathEscape(returnID), nil, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByOrder returns every return filed against an order.
func (c *Client) ListByOrder(ctx context.Context, orderID string) ([]ReturnRecord, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order ID is required")
	}

	var records []ReturnRecord
	if err := c.doJSON(ctx, http.MethodGet, "/returns/order/"+url.PathEscape(orderID), nil, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListByCustomer returns every return filed by a customer.
func (c *Client) ListByCustomer(ctx context.Context, email string) ([]ReturnRecord, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer email is required")
	}

	query := url.Values{}
	query.Set("email", email)

	var records []ReturnRecord
	if err := c.doJSON(ctx, http.MethodGet, "/returns/customer", query, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateStatus moves a return request to a new review status.
func (c *Client) UpdateStatus(ctx context.Context, returnID string, status enums.ReturnStatus) (*ReturnRecord, error) {
	returnID = strings.TrimSpace(returnID)
	if returnID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "return ID is required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid return status %q", status))
	}

	query := url.Values{}
	query.Set("status", string(status))

	var record ReturnRecord
	if err := c.doJSON(ctx, http.MethodPatch, "/returns/"+url.PathEscape(returnID)+"/status", query, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "returns client not configured")
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal returns request")
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build returns request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute returns request")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, "return request not found")
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "returns request failed")
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode returns response")
	}
	return nil
}
