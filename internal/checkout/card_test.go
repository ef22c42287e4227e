package checkout

import (
	"testing"
	"time"

	"github.com/lumicart/storefront/pkg/enums"
)

func TestLuhnValid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		number string
		want   bool
	}{
		{"4242424242424242", true},
		{"4242 4242 4242 4242", true},
		{"4242424242424241", false},
		{"5555555555554444", true},
		{"378282246310005", true},
		{"6011111111111117", true},
		{"", false},
		{"abcd", false},
	}
	for _, tc := range cases {
		if got := LuhnValid(tc.number); got != tc.want {
			t.Fatalf("LuhnValid(%q) = %v, want %v", tc.number, got, tc.want)
		}
	}
}

func TestDetectBrand(t *testing.T) {
	t.Parallel()

	cases := []struct {
		number string
		want   enums.CardBrand
	}{
		{"4242424242424242", enums.CardBrandVisa},
		{"5555555555554444", enums.CardBrandMastercard},
		{"2221000000000009", enums.CardBrandMastercard},
		{"2720990000000006", enums.CardBrandMastercard},
		{"378282246310005", enums.CardBrandAmex},
		{"348282246310005", enums.CardBrandAmex},
		{"6011111111111117", enums.CardBrandDiscover},
		{"6511111111111119", enums.CardBrandDiscover},
		{"6445644564456445", enums.CardBrandDiscover},
		{"9999999999999999", enums.CardBrandUnknown},
		{"", enums.CardBrandUnknown},
	}
	for _, tc := range cases {
		if got := DetectBrand(tc.number); got != tc.want {
			t.Fatalf("DetectBrand(%q) = %s, want %s", tc.number, got, tc.want)
		}
	}
}

func TestExpiryYears(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	years := ExpiryYears(now)
	if len(years) != 11 {
		t.Fatalf("expected 11 years, got %d", len(years))
	}
	if years[0] != 2026 || years[10] != 2036 {
		t.Fatalf("expected 2026..2036, got %d..%d", years[0], years[10])
	}
}

func TestValidMonths(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	current := ValidMonths(now, 2026)
	if len(current) != 4 || current[0] != 9 || current[3] != 12 {
		t.Fatalf("current-year months should be 9..12, got %v", current)
	}

	future := ValidMonths(now, 2027)
	if len(future) != 12 || future[0] != 1 {
		t.Fatalf("future-year months should be 1..12, got %v", future)
	}
}

func TestFormatExpiry(t *testing.T) {
	t.Parallel()

	if got := FormatExpiry(5, 2027); got != "05/27" {
		t.Fatalf("FormatExpiry(5, 2027) = %q", got)
	}
	if got := FormatExpiry(12, 2030); got != "12/30" {
		t.Fatalf("FormatExpiry(12, 2030) = %q", got)
	}
}
