package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/lumicart/storefront/api/responses"
	"github.com/lumicart/storefront/api/validators"
	"github.com/lumicart/storefront/internal/catalog"
	"github.com/lumicart/storefront/pkg/enums"
	pkgerrors "github.com/lumicart/storefront/pkg/errors"
	"github.com/lumicart/storefront/pkg/logger"
	"github.com/lumicart/storefront/pkg/pagination"
	"github.com/lumicart/storefront/pkg/types"
)

// CatalogService is the catalog surface the product controllers depend on.
type CatalogService interface {
	ProductGetter
	ListProducts(ctx context.Context, page pagination.Params) (*catalog.Page, error)
	ListByCategory(ctx context.Context, categoryID int64, page pagination.Params) (*catalog.Page, error)
	SearchByKeyword(ctx context.Context, keyword string, page pagination.Params) (*catalog.Page, error)
	Search(ctx context.Context, keyword string, filter catalog.Filter, sort enums.SortOrder, page pagination.Params) (*catalog.Page, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	ListBrands(ctx context.Context) ([]string, error)
	ListBanners(ctx context.Context) ([]catalog.Banner, error)
	Autocomplete(ctx context.Context, prefix string, limit int) ([]catalog.Suggestion, error)
}

// ProductList serves the paginated catalog, optionally scoped to a category.
func ProductList(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		page := pagination.FromQuery(r.URL.Query().Get("page"), r.URL.Query().Get("size"))

		var (
			result *catalog.Page
			err    error
		)
		if raw := r.URL.Query().Get("categoryId"); raw != "" && raw != "0" {
			categoryID, parseErr := strconv.ParseInt(raw, 10, 64)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid category id"))
				return
			}
			result, err = svc.ListByCategory(r.Context(), categoryID, page)
		} else {
			result, err = svc.ListProducts(r.Context(), page)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeProductPage(w, result)
	}
}

// ProductSearch serves keyword and faceted search.
func ProductSearch(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		query := r.URL.Query()
		page := pagination.FromQuery(query.Get("page"), query.Get("size"))
		keyword := strings.TrimSpace(query.Get("name"))

		filter, faceted, err := filterFromQuery(query.Get("minPrice"), query.Get("maxPrice"), query.Get("brand"), query.Get("inStock"), query.Get("minRating"), query.Get("isNew"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sort := enums.SortOrderRelevance
		if raw := query.Get("sort"); raw != "" {
			parsed, parseErr := enums.ParseSortOrder(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid sort order"))
				return
			}
			sort = parsed
			faceted = true
		}

		var result *catalog.Page
		if faceted {
			result, err = svc.Search(r.Context(), keyword, filter, sort, page)
		} else {
			result, err = svc.SearchByKeyword(r.Context(), keyword, page)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeProductPage(w, result)
	}
}

// ProductDetail serves one product by id.
func ProductDetail(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
		if err != nil || productID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id"))
			return
		}
		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// CategoryList serves the category facet.
func CategoryList(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// BrandList serves the brand facet.
func BrandList(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		brands, err := svc.ListBrands(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brands)
	}
}

// BannerList serves the hero banners active for the storefront landing page.
func BannerList(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		banners, err := svc.ListBanners(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, banners)
	}
}

// ProductAutocomplete serves bounded name-prefix suggestions.
func ProductAutocomplete(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 50)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		suggestions, err := svc.Autocomplete(r.Context(), r.URL.Query().Get("name"), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, suggestions)
	}
}

func writeProductPage(w http.ResponseWriter, page *catalog.Page) {
	responses.WritePage(w, page.Products, types.PageMeta{
		Number:        page.PageNumber,
		Size:          page.PageSize,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	})
}

func filterFromQuery(minPrice, maxPrice, brand, inStock, minRating, isNew string) (catalog.Filter, bool, error) {
	var filter catalog.Filter
	faceted := false

	if minPrice != "" {
		value, err := decimal.NewFromString(minPrice)
		if err != nil {
			return filter, false, pkgerrors.New(pkgerrors.CodeValidation, "invalid minPrice")
		}
		filter.MinPrice = &value
		faceted = true
	}
	if maxPrice != "" {
		value, err := decimal.NewFromString(maxPrice)
		if err != nil {
			return filter, false, pkgerrors.New(pkgerrors.CodeValidation, "invalid maxPrice")
		}
		filter.MaxPrice = &value
		faceted = true
	}
	if brand = strings.TrimSpace(brand); brand != "" {
		filter.Brand = brand
		faceted = true
	}
	if inStock == "true" {
		filter.InStock = true
		faceted = true
	}
	if minRating != "" {
		value, err := strconv.ParseFloat(minRating, 64)
		if err != nil || value < 0 || value > 5 {
			return filter, false, pkgerrors.New(pkgerrors.CodeValidation, "invalid minRating")
		}
		filter.MinRating = &value
		faceted = true
	}
	if isNew == "true" {
		filter.IsNew = true
		faceted = true
	}
	return filter, faceted, nil
}
