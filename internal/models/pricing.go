package models

import "github.com/shopspring/decimal"

// PricingRule holds the order-level pricing constants. The discount rate
// applies to the whole subtotal; the delivery fee is flat.
type PricingRule struct {
	DiscountRate decimal.Decimal
	DeliveryFee  decimal.Decimal
}

// DefaultPricingRule returns the storefront defaults: 20% discount and a
// flat delivery fee of 15.
func DefaultPricingRule() PricingRule {
	return PricingRule{
		DiscountRate: decimal.NewFromFloat(0.20),
		DeliveryFee:  decimal.NewFromInt(15),
	}
}

// PricingSummary is derived from a cart on every read and never stored
// alongside it, so it cannot drift from the lines.
type PricingSummary struct {
	Subtotal    decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,4)"`
	Discount    decimal.Decimal `json:"discount" gorm:"type:decimal(12,4)"`
	DeliveryFee decimal.Decimal `json:"delivery_fee" gorm:"type:decimal(12,4)"`
	Total       decimal.Decimal `json:"total" gorm:"type:decimal(12,4)"`
}

// ComputeSummary calculates the pricing summary for a cart. It is a pure
// function of the cart and the rule: subtotal is the sum of unit price
// times quantity, discount is subtotal times the rate, and the total is
// floored at zero.
func ComputeSummary(cart Cart, rule PricingRule) PricingSummary {
	subtotal := decimal.Zero
	for _, line := range cart {
		lineTotal := decimal.NewFromFloat(line.UnitPrice).Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineTotal)
	}

	discount := subtotal.Mul(rule.DiscountRate)
	total := subtotal.Sub(discount).Add(rule.DeliveryFee)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return PricingSummary{
		Subtotal:    subtotal,
		Discount:    discount,
		DeliveryFee: rule.DeliveryFee,
		Total:       total,
	}
}
