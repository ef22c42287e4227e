package enums

import "fmt"

// SortOrder enumerates the catalog listing sort options.
type SortOrder string

const (
	SortOrderRelevance SortOrder = "relevance"
	SortOrderPriceAsc  SortOrder = "price_asc"
	SortOrderPriceDesc SortOrder = "price_desc"
	SortOrderNameAsc   SortOrder = "name_asc"
	SortOrderNewest    SortOrder = "newest"
	SortOrderRating    SortOrder = "rating"
)

var validSortOrders = []SortOrder{
	SortOrderRelevance,
	SortOrderPriceAsc,
	SortOrderPriceDesc,
	SortOrderNameAsc,
	SortOrderNewest,
	SortOrderRating,
}

// String implements fmt.Stringer.
func (s SortOrder) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortOrder.
func (s SortOrder) IsValid() bool {
	for _, candidate := range validSortOrders {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortOrder converts raw input into a SortOrder, defaulting to relevance.
func ParseSortOrder(value string) (SortOrder, error) {
	if value == "" {
		return SortOrderRelevance, nil
	}
	for _, candidate := range validSortOrders {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort order %q", value)
}
