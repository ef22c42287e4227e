package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lumicart/storefront/pkg/enums"
	pkgerrors "github.com/lumicart/storefront/pkg/errors"
	"github.com/lumicart/storefront/pkg/pagination"
)

const (
	maxAutocompleteResults       = 10
	errorBodyReadLimit     int64 = 1024
)

var errBaseURLRequired = errors.New("catalog base URL is required")

// Client queries the remote catalog service. The service exposes a
// Spring-Data-REST style surface: collection resources with page/size
// paging plus named search endpoints under /search.
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

// NewClient builds a catalog client for the given base URL.
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

// ListProducts returns one page of the full product collection.
func (c *Client) ListProducts(ctx context.Context, page pagination.Params) (*Page, error) {
	query := pageQuery(page)
	return c.fetchPage(ctx, "/products", query)
}

// ListByCategory returns one page of products belonging to a category.
func (c *Client) ListByCategory(ctx context.Context, categoryID int64, page pagination.Params) (*Page, error) {
	if categoryID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category ID must be positive")
	}
	query := pageQuery(page)
	query.Set("id", strconv.FormatInt(categoryID, 10))
	return c.fetchPage(ctx, "/products/search/findByCategoryId", query)
}

// SearchByKeyword returns one page of products whose name contains the
// keyword.
func (c *Client) SearchByKeyword(ctx context.Context, keyword string, page pagination.Params) (*Page, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search keyword is required")
	}
	query := pageQuery(page)
	query.Set("name", keyword)
	return c.fetchPage(ctx, "/products/search/findByNameContaining", query)
}

// Search runs a faceted query over the catalog.
func (c *Client) Search(ctx context.Context, keyword string, filter Filter, sort enums.SortOrder, page pagination.Params) (*Page, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minimum price exceeds maximum price")
	}

	query := pageQuery(page)
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		query.Set("name", keyword)
	}
	if filter.MinPrice != nil {
		query.Set("minPrice", filter.MinPrice.String())
	}
	if filter.MaxPrice != nil {
		query.Set("maxPrice", filter.MaxPrice.String())
	}
	if brand := strings.TrimSpace(filter.Brand); brand != "" {
		query.Set("brand", brand)
	}
	if filter.InStock {
		query.Set("inStock", "true")
	}
	if filter.MinRating != nil {
		query.Set("minRating", strconv.FormatFloat(*filter.MinRating, 'f', -1, 64))
	}
	if filter.IsNew {
		query.Set("isNew", "true")
	}
	if sort != "" && sort != enums.SortOrderRelevance {
		query.Set("sort", string(sort))
	}
	return c.fetchPage(ctx, "/products/search/advanced", query)
}

// GetProduct fetches a single product by its identifier.
func (c *Client) GetProduct(ctx context.Context, productID int64) (*Product, error) {
	if productID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product ID must be positive")
	}

	var product Product
	path := fmt.Sprintf("/products/%d", productID)
	if err := c.getJSON(ctx, path, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListCategories returns every product category.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var payload struct {
		Embedded struct {
			Categories []Category `json:"productCategory"`
		} `json:"_embedded"`
	}
	if err := c.getJSON(ctx, "/product-category", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Embedded.Categories, nil
}

// ListBrands returns the distinct brands present in the catalog, for the
// filter facet list.
func (c *Client) ListBrands(ctx context.Context) ([]string, error) {
	var brands []string
	if err := c.getJSON(ctx, "/products/brands", nil, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// ListBanners returns the hero banners currently in their display window,
// sorted by display order.
func (c *Client) ListBanners(ctx context.Context) ([]Banner, error) {
	var banners []Banner
	if err := c.getJSON(ctx, "/hero-banners/current", nil, &banners); err != nil {
		return nil, err
	}
	sort.SliceStable(banners, func(i, j int) bool {
		return banners[i].DisplayOrder < banners[j].DisplayOrder
	})
	return banners, nil
}

// Autocomplete returns lightweight name-prefix matches, capped at limit
// (bounded at ten regardless of the caller's value).
func (c *Client) Autocomplete(ctx context.Context, prefix string, limit int) ([]Suggestion, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "autocomplete prefix is required")
	}
	if limit <= 0 || limit > maxAutocompleteResults {
		limit = maxAutocompleteResults
	}

	query := url.Values{}
	query.Set("name", prefix)
	query.Set("size", strconv.Itoa(limit))

	page, err := c.fetchPage(ctx, "/products/search/findByNameContaining", query)
	if err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, len(page.Products))
	for _, p := range page.Products {
		suggestions = append(suggestions, Suggestion{ID: p.ID, Name: p.Name, ImageURL: p.ImageURL})
		if len(suggestions) == limit {
			break
		}
	}
	return suggestions, nil
}

func (c *Client) fetchPage(ctx context.Context, path string, query url.Values) (*Page, error) {
	var payload struct {
		Embedded struct {
			Products []Product `json:"products"`
		} `json:"_embedded"`
		Page struct {
			Size          int   `json:"size"`
			TotalElements int64 `json:"totalElements"`
			TotalPages    int   `json:"totalPages"`
			Number        int   `json:"number"`
		} `json:"page"`
	}
	if err := c.getJSON(ctx, path, query, &payload); err != nil {
		return nil, err
	}
	return &Page{
		Products:      payload.Embedded.Products,
		PageNumber:    payload.Page.Number,
		PageSize:      payload.Page.Size,
		TotalElements: payload.Page.TotalElements,
		TotalPages:    payload.Page.TotalPages,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "catalog client not configured")
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute catalog request")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, "catalog resource not found")
	case resp.StatusCode != http.StatusOK:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "catalog request failed")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog response")
	}
	return nil
}

func pageQuery(page pagination.Params) url.Values {
	page = pagination.Normalize(page)
	query := url.Values{}
	query.Set("page", strconv.Itoa(page.Page))
	query.Set("size", strconv.Itoa(page.Size))
	return query
}
