package enums

// CardBrand identifies the card network detected from a card number prefix.
type CardBrand string

const (
	CardBrandVisa       CardBrand = "visa"
	CardBrandMastercard CardBrand = "mastercard"
	CardBrandAmex       CardBrand = "amex"
	CardBrandDiscover   CardBrand = "discover"
	CardBrandUnknown    CardBrand = "unknown"
)

// String implements fmt.Stringer.
func (c CardBrand) String() string {
	return string(c)
}
