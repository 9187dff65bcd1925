package utils

import (
	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/product-analytics/internal/errs"
)

var (
	shippingBase      = decimal.NewFromFloat(5.0)
	shippingPerWeight = decimal.NewFromFloat(0.5)
	shippingPerKM     = decimal.NewFromFloat(0.1)
)

// ShippingCost is 5.00 + 0.50 per weight unit + 0.10 per distance unit,
// rounded to cents. Negative inputs are rejected.
func ShippingCost(weight, distance float64) (float64, error) {
	if weight < 0 {
		return 0, errs.NewInvalid("shipping_cost", "weight", "must be >= 0")
	}
	if distance < 0 {
		return 0, errs.NewInvalid("shipping_cost", "distance", "must be >= 0")
	}
	total := shippingBase.
		Add(decimal.NewFromFloat(weight).Mul(shippingPerWeight)).
		Add(decimal.NewFromFloat(distance).Mul(shippingPerKM))
	return RoundCents(total), nil
}
