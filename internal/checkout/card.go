package checkout

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lumicart/storefront/pkg/enums"
)

// LuhnValid reports whether the card number passes the Luhn checksum.
// Non-digit characters (spaces, dashes) are stripped before checking.
func LuhnValid(number string) bool {
	digits := digitsOnly(number)
	if len(digits) == 0 {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// DetectBrand resolves a card brand from the number's leading digits.
func DetectBrand(number string) enums.CardBrand {
	digits := digitsOnly(number)
	switch {
	case strings.HasPrefix(digits, "4"):
		return enums.CardBrandVisa
	case inPrefixRange(digits, 2, 51, 55), inPrefixRange(digits, 4, 2221, 2720):
		return enums.CardBrandMastercard
	case strings.HasPrefix(digits, "34"), strings.HasPrefix(digits, "37"):
		return enums.CardBrandAmex
	case strings.HasPrefix(digits, "6011"), strings.HasPrefix(digits, "65"), inPrefixRange(digits, 3, 644, 649):
		return enums.CardBrandDiscover
	default:
		return enums.CardBrandUnknown
	}
}

// ExpiryYears returns the selectable expiry years, the current year through
// ten years out.
func ExpiryYears(now time.Time) []int {
	start := now.Year()
	years := make([]int, 0, 11)
	for y := start; y <= start+10; y++ {
		years = append(years, y)
	}
	return years
}

// ValidMonths returns the selectable expiry months for the chosen year. For
// the current year the list starts at the current month, otherwise at
// January.
func ValidMonths(now time.Time, selectedYear int) []int {
	start := 1
	if selectedYear == now.Year() {
		start = int(now.Month())
	}
	months := make([]int, 0, 12)
	for m := start; m <= 12; m++ {
		months = append(months, m)
	}
	return months
}

// FormatExpiry renders a month and year as MM/YY.
func FormatExpiry(month, year int) string {
	return fmt.Sprintf("%02d/%02d", month, year%100)
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func inPrefixRange(digits string, width, lo, hi int) bool {
	if len(digits) < width {
		return false
	}
	n, err := strconv.Atoi(digits[:width])
	if err != nil {
		return false
	}
	return n >= lo && n <= hi
}
