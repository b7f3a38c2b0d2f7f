package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPricing_ShippingCost(t *testing.T) {
	pricing := DefaultPricing()

	tests := []struct {
		name     string
		subtotal float64
		expected float64
	}{
		{
			name:     "Zero subtotal pays the flat fee",
			subtotal: 0,
			expected: 1500,
		},
		{
			name:     "Just below the threshold pays the flat fee",
			subtotal: 49999,
			expected: 1500,
		},
		{
			name:     "Exactly the threshold ships free",
			subtotal: 50000,
			expected: 0,
		},
		{
			name:     "Above the threshold ships free",
			subtotal: 120000,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pricing.ShippingCost(tt.subtotal))
		})
	}
}

func TestPricing_Summarize(t *testing.T) {
	pricing := DefaultPricing()

	summary := pricing.Summarize(6000)
	assert.Equal(t, float64(6000), summary.Subtotal)
	assert.Equal(t, float64(1500), summary.ShippingCost)
	assert.Equal(t, float64(7500), summary.Total)

	free := pricing.Summarize(50000)
	assert.Equal(t, float64(0), free.ShippingCost)
	assert.Equal(t, float64(50000), free.Total)
}
