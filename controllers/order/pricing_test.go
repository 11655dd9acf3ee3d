package orderControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/models"
)

func TestComputeTotals_ShippingThresholdBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		subtotal     float64
		wantShipping float64
	}{
		{name: "just below threshold", subtotal: 9999, wantShipping: ShippingFlatFee},
		{name: "exactly at threshold ships free", subtotal: 10000, wantShipping: 0},
		{name: "above threshold", subtotal: 15000, wantShipping: 0},
		{name: "small order", subtotal: 1200, wantShipping: ShippingFlatFee},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ComputeTotals(tt.subtotal, models.PaymentMethodCOD)
			assert.Equal(t, tt.wantShipping, got.ShippingCost)
		})
	}
}

func TestComputeTotals_CODBelowThreshold(t *testing.T) {
	t.Parallel()

	got := ComputeTotals(9500, models.PaymentMethodCOD)

	assert.Equal(t, 9500.0, got.Subtotal)
	assert.Equal(t, 250.0, got.ShippingCost)
	assert.Equal(t, 0.0, got.Discount, "COD orders get no prepaid discount")
	assert.Equal(t, 9750.0, got.Total)
	assert.Equal(t, 1950.0, got.AdvanceAmount, "COD advance is 20%% of total")
}

func TestComputeTotals_CODFreeShipping(t *testing.T) {
	t.Parallel()

	got := ComputeTotals(10000, models.PaymentMethodCOD)

	assert.Equal(t, 0.0, got.ShippingCost)
	assert.Equal(t, 10000.0, got.Total)
	assert.Equal(t, 2000.0, got.AdvanceAmount)
}

func TestComputeTotals_PrepaidDiscountAndFullAdvance(t *testing.T) {
	t.Parallel()

	for _, method := range []models.PaymentMethod{
		models.PaymentMethodBankTransfer,
		models.PaymentMethodMobileWallet,
	} {
		got := ComputeTotals(9500, method)

		// 5% of (subtotal + shipping)
		assert.Equal(t, 487.5, got.Discount)
		assert.Equal(t, 9262.5, got.Total)
		assert.Equal(t, got.Total, got.AdvanceAmount, "prepaid orders pay the full total up front")
	}
}
