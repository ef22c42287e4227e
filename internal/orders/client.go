package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lumicart/storefront/internal/checkout"
	pkgerrors "github.com/lumicart/storefront/pkg/errors"
	"github.com/lumicart/storefront/pkg/pagination"
)

const errorBodyReadLimit int64 = 1024

var errBaseURLRequired = errors.New("orders base URL is required")

// Client talks to the remote order service: purchase submission plus the
// customer-facing order history surface.
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

// NewClient builds an order service client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// Submit places a purchase and returns the assigned tracking number. The
// service's failure message is preserved so the caller can surface it.
func (c *Client) Submit(ctx context.Context, req checkout.PurchaseRequest) (string, error) {
	if c == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "orders client not configured")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal purchase")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout/purchase", bytes.NewReader(payload))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build purchase request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute purchase request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", pkgerrors.New(pkgerrors.CodeSubmission, submissionFailureMessage(resp))
	}

	var body struct {
		OrderTrackingNumber string `json:"orderTrackingNumber"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeSubmission, err, "decode purchase response")
	}
	if body.OrderTrackingNumber == "" {
		return "", pkgerrors.New(pkgerrors.CodeSubmission, "order service returned no tracking number")
	}
	return body.OrderTrackingNumber, nil
}

// History returns one page of the customer's orders, newest first.
func (c *Client) History(ctx context.Context, email string, page pagination.Params) (*HistoryPage, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer email is required")
	}

	page = pagination.Normalize(page)
	query := url.Values{}
	query.Set("email", email)
	query.Set("page", strconv.Itoa(page.Page))
	query.Set("size", strconv.Itoa(page.Size))

	var payload struct {
		Embedded struct {
			Orders []Order `json:"orders"`
		} `json:"_embedded"`
		Page struct {
			Size          int   `json:"size"`
			TotalElements int64 `json:"totalElements"`
			TotalPages    int   `json:"totalPages"`
			Number        int   `json:"number"`
		} `json:"page"`
	}
	if err := c.getJSON(ctx, "/orders/search/findByCustomerEmail", query, &payload); err != nil {
		return nil, err
	}
	return &HistoryPage{
		Orders:        payload.Embedded.Orders,
		PageNumber:    payload.Page.Number,
		PageSize:      payload.Page.Size,
		TotalElements: payload.Page.TotalElements,
		TotalPages:    payload.Page.TotalPages,
	}, nil
}

// GetByID fetches a single order with its items and addresses.
func (c *Client) GetByID(ctx context.Context, orderID string) (*Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order ID is required")
	}

	var order Order
	if err := c.getJSON(ctx, "/orders/"+url.PathEscape(orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "orders client not configured")
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build orders request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute orders request")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	case resp.StatusCode != http.StatusOK:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "orders request failed")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode orders response")
	}
	return nil
}

// submissionFailureMessage extracts the service's human-readable failure
// message, falling back to the raw body or status code.
func submissionFailureMessage(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" {
		return msg
	}
	return fmt.Sprintf("order submission failed with status %d", resp.StatusCode)
}
