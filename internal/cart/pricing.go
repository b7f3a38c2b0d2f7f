package cart

// Pricing holds the shipping cost policy. Cart summaries and checkout
// summaries must derive shipping from the same policy, never store it.
type Pricing struct {
	FreeShippingThreshold float64
	ShippingFee           float64
}

// DefaultPricing returns the storefront's standard shipping policy:
// orders of 50,000 DZD and above ship free, everything else pays a
// flat 1,500 DZD fee.
func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: 50000,
		ShippingFee:           1500,
	}
}

// ShippingCost returns the shipping cost for the given cart subtotal.
func (p Pricing) ShippingCost(subtotal float64) float64 {
	if subtotal >= p.FreeShippingThreshold {
		return 0
	}
	return p.ShippingFee
}

// Summary is a derived view of cart totals.
type Summary struct {
	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shippingCost"`
	Total        float64 `json:"total"`
}

// Summarize computes the full summary for the given subtotal.
func (p Pricing) Summarize(subtotal float64) Summary {
	shipping := p.ShippingCost(subtotal)
	return Summary{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Total:        subtotal + shipping,
	}
}
