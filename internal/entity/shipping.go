package domain

// ShippingPolicy maps an order subtotal to a shipping fee. The threshold
// and base fee are configuration, not literals in the checkout path.
type ShippingPolicy struct {
	FreeThreshold Money
	BaseFee       Money
}

func DefaultShippingPolicy() ShippingPolicy {
	return ShippingPolicy{
		FreeThreshold: EUR(5000),
		BaseFee:       EUR(595),
	}
}

// FeeFor is zero at or above the free-shipping threshold, the base fee below it.
func (p ShippingPolicy) FeeFor(subtotal Money) Money {
	if subtotal.GTE(p.FreeThreshold) {
		return Money{Cents: 0, Currency: subtotal.Currency}
	}
	return p.BaseFee
}
