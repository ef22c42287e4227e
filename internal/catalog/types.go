package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the catalog record returned by the remote catalog service.
type Product struct {
	ID                 int64           `json:"id"`
	SKU                string          `json:"sku"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	ImageURL           string          `json:"imageUrl"`
	Active             bool            `json:"active"`
	UnitsInStock       int             `json:"unitsInStock"`
	OriginalPrice      decimal.Decimal `json:"originalPrice"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Brand              string          `json:"brand"`
	IsNew              bool            `json:"isNew"`
	AverageRating      float64         `json:"averageRating"`
	ReviewCount        int             `json:"reviewCount"`
	DateCreated        time.Time       `json:"dateCreated"`
	LastUpdated        time.Time       `json:"lastUpdated"`
}

// Category is a product grouping from the catalog service.
type Category struct {
	ID           int64  `json:"id"`
	CategoryName string `json:"categoryName"`
}

// Banner is a promotional hero entry from the catalog's content feed.
type Banner struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle"`
	CTAText      string    `json:"ctaText"`
	CTALink      string    `json:"ctaLink"`
	ImageURL     string    `json:"imageUrl"`
	VideoURL     string    `json:"videoUrl"`
	Disclaimer   string    `json:"disclaimer"`
	IsActive     bool      `json:"isActive"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	DisplayOrder int       `json:"displayOrder"`
}

// Suggestion is a lightweight autocomplete hit.
type Suggestion struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// Page is one page of products plus the collection-wide totals the remote
// service reports.
type Page struct {
	Products      []Product `json:"products"`
	PageNumber    int       `json:"pageNumber"`
	PageSize      int       `json:"pageSize"`
	TotalElements int64     `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
}

// Filter carries the faceted-search criteria. Nil pointer fields mean the
// facet is not applied.
type Filter struct {
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Brand     string
	InStock   bool
	MinRating *float64
	IsNew     bool
}
