package orderControllers

import (
	"math"

	"github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/models"
)

// Pricing rules, all amounts in PKR.
const (
	ShippingFlatFee       = 250.0
	FreeShippingThreshold = 10000.0 // subtotal at or above this ships free
	PrepaidDiscountRate   = 0.05    // incentive for non-COD orders
	CODAdvanceRate        = 0.20    // deposit required on COD orders
)

// OrderTotals is the fully derived money breakdown for an order.
type OrderTotals struct {
	Subtotal      float64
	ShippingCost  float64
	Discount      float64
	Total         float64
	AdvanceAmount float64
}

// ComputeTotals derives shipping, discount, total and required advance from a
// subtotal. Prepaid (non-COD) orders get the discount and must pay the full
// total up front; COD orders pay a fixed-rate deposit of the total.
func ComputeTotals(subtotal float64, method models.PaymentMethod) OrderTotals {
	t := OrderTotals{Subtotal: subtotal}

	if subtotal < FreeShippingThreshold {
		t.ShippingCost = ShippingFlatFee
	}

	if method != models.PaymentMethodCOD {
		t.Discount = roundMoney((subtotal + t.ShippingCost) * PrepaidDiscountRate)
	}

	t.Total = roundMoney(subtotal + t.ShippingCost - t.Discount)

	if method == models.PaymentMethodCOD {
		t.AdvanceAmount = roundMoney(t.Total * CODAdvanceRate)
	} else {
		t.AdvanceAmount = t.Total
	}
	return t
}

// roundMoney rounds to 2 decimal places to keep float noise out of stored
// amounts.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
