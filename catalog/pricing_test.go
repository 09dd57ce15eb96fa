package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPriceActionApply(t *testing.T) {
	testCases := []struct {
		name     string
		action   PriceAction
		price    string
		expected string
	}{
		{"raise 10 percent", PriceRaise10, "100.00", "110.00"},
		{"lower 10 percent", PriceLower10, "100.00", "90.00"},
		{"raise 20 percent", PriceRaise20, "100.00", "120.00"},
		{"reset to constant", PriceReset, "87999.00", "1000.00"},
		{"raise rounds to two fraction digits", PriceRaise10, "10.99", "12.09"},
		{"lower rounds to two fraction digits", PriceLower10, "0.15", "0.14"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			price := decimal.RequireFromString(tc.price)
			got := tc.action.Apply(price)
			assert.Equal(t, tc.expected, got.StringFixed(2))
		})
	}
}

func TestPriceActionValid(t *testing.T) {
	for _, a := range PriceActions() {
		assert.True(t, a.Valid(), "expected %q to be valid", a)
	}
	assert.False(t, PriceAction("double").Valid())
	assert.False(t, PriceAction("").Valid())
}

func TestPriceActionApplyUnknownLeavesPriceUnchanged(t *testing.T) {
	price := decimal.RequireFromString("55.55")
	got := PriceAction("bogus").Apply(price)
	assert.True(t, got.Equal(price))
}
