package models_test

import (
	"testing"

	"butik/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeSummary_SingleLine(t *testing.T) {
	cart := models.Cart{
		"prod-1": {ProductID: "prod-1", Name: "Classic Tee", UnitPrice: 10.99, Quantity: 2},
	}

	summary := models.ComputeSummary(cart, models.DefaultPricingRule())

	assert.True(t, summary.Subtotal.Equal(decimal.RequireFromString("21.98")), "subtotal was %s", summary.Subtotal)
	assert.True(t, summary.Discount.Equal(decimal.RequireFromString("4.396")), "discount was %s", summary.Discount)
	assert.True(t, summary.DeliveryFee.Equal(decimal.NewFromInt(15)), "fee was %s", summary.DeliveryFee)
	assert.True(t, summary.Total.Equal(decimal.RequireFromString("32.584")), "total was %s", summary.Total)
}

func TestComputeSummary_IsPure(t *testing.T) {
	cart := models.Cart{
		"prod-1": {ProductID: "prod-1", UnitPrice: 24.99, Quantity: 3},
		"prod-2": {ProductID: "prod-2", UnitPrice: 59.99, Quantity: 1},
	}
	rule := models.DefaultPricingRule()

	first := models.ComputeSummary(cart, rule)
	second := models.ComputeSummary(cart, rule)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.Discount.Equal(second.Discount))
	assert.True(t, first.DeliveryFee.Equal(second.DeliveryFee))
	assert.True(t, first.Total.Equal(second.Total))
}

func TestComputeSummary_EmptyCart(t *testing.T) {
	summary := models.ComputeSummary(models.Cart{}, models.DefaultPricingRule())

	assert.True(t, summary.Subtotal.IsZero())
	assert.True(t, summary.Discount.IsZero())
	assert.True(t, summary.Total.Equal(decimal.NewFromInt(15)), "empty cart still carries the flat fee")
}

func TestComputeSummary_TotalFlooredAtZero(t *testing.T) {
	// A discount rate above 100% cannot drive the total negative.
	rule := models.PricingRule{
		DiscountRate: decimal.NewFromInt(2),
		DeliveryFee:  decimal.Zero,
	}
	cart := models.Cart{
		"prod-1": {ProductID: "prod-1", UnitPrice: 10, Quantity: 1},
	}

	summary := models.ComputeSummary(cart, rule)

	assert.True(t, summary.Total.IsZero(), "total was %s", summary.Total)
}
