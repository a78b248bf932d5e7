package domain

import "fmt"

// Kind distinguishes product variants that ship differently.
type Kind interface {
	ShippingCost() Money
	Label() string
}

// Physical products ship by weight tier.
type Physical struct {
	WeightGrams int
}

func (p Physical) ShippingCost() Money {
	switch {
	case p.WeightGrams <= 1000:
		return EUR(395)
	case p.WeightGrams <= 5000:
		return EUR(695)
	default:
		return EUR(995)
	}
}

func (Physical) Label() string { return "physical" }

// Digital products have no shipping cost.
type Digital struct{}

func (Digital) ShippingCost() Money { return EUR(0) }
func (Digital) Label() string       { return "digital" }

type Product struct {
	ID        int64
	Name      string
	UnitPrice Money
	Stock     int
	Kind      Kind
}

// Sell decrements stock by qty. A sale either fully succeeds or leaves the
// product untouched; stock never goes negative.
func (p *Product) Sell(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if p.Stock-qty < 0 {
		return ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

// ShippingCost reports the per-product shipping cost of its variant.
// Products without an explicit kind ship for free.
func (p *Product) ShippingCost() Money {
	if p.Kind == nil {
		return EUR(0)
	}
	return p.Kind.ShippingCost()
}

func (p *Product) String() string {
	return fmt.Sprintf("%s (%s, %d in stock)", p.Name, p.UnitPrice, p.Stock)
}
