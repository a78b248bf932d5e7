package domain

// PaymentMethod is a named settlement strategy with a fixed transaction
// surcharge. Stateless; used transiently at checkout.
type PaymentMethod struct {
	Kind      string
	Surcharge Money
}

// Settle converts a charge amount into the final payable amount.
func (pm PaymentMethod) Settle(amount Money) Money {
	return amount.Add(pm.Surcharge)
}
