package catalog

import "github.com/shopspring/decimal"

// PriceAction is a bulk price adjustment applied uniformly to a set of
// products. Each action is a pure function on the price field.
type PriceAction string

const (
	// PriceRaise10 increases the price by 10%.
	PriceRaise10 PriceAction = "raise10"
	// PriceLower10 decreases the price by 10%.
	PriceLower10 PriceAction = "lower10"
	// PriceRaise20 increases the price by 20%.
	PriceRaise20 PriceAction = "raise20"
	// PriceReset sets the price to a fixed 1000.00.
	PriceReset PriceAction = "reset"
)

var resetPrice = decimal.NewFromInt(1000)

var priceMultipliers = map[PriceAction]decimal.Decimal{
	PriceRaise10: decimal.NewFromFloat(1.1),
	PriceLower10: decimal.NewFromFloat(0.9),
	PriceRaise20: decimal.NewFromFloat(1.2),
}

// Valid reports whether the action is one of the known adjustments.
func (a PriceAction) Valid() bool {
	if a == PriceReset {
		return true
	}
	_, ok := priceMultipliers[a]
	return ok
}

// Apply returns the adjusted price, rounded to two fraction digits.
// Unknown actions leave the price unchanged.
func (a PriceAction) Apply(price decimal.Decimal) decimal.Decimal {
	if a == PriceReset {
		return resetPrice.Round(2)
	}
	if m, ok := priceMultipliers[a]; ok {
		return price.Mul(m).Round(2)
	}
	return price
}

// Label returns a short human-readable description for the admin UI.
func (a PriceAction) Label() string {
	switch a {
	case PriceRaise10:
		return "Raise prices by 10%"
	case PriceLower10:
		return "Lower prices by 10%"
	case PriceRaise20:
		return "Raise prices by 20%"
	case PriceReset:
		return "Reset prices to 1000.00"
	}
	return string(a)
}

// PriceActions lists every available action in display order.
func PriceActions() []PriceAction {
	return []PriceAction{PriceRaise10, PriceLower10, PriceRaise20, PriceReset}
}
