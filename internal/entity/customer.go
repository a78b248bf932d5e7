package domain

import "fmt"

// Customer holds identity plus credit/discount attributes. Credit and
// discount rate are only reachable through validated setters: a rejected
// value keeps (or clamps to) a safe prior state instead of panicking.
type Customer struct {
	ID    string
	Name  string
	Email string

	credit       Money
	discountRate float64
	orders       []*Order
}

func NewCustomer(id, name, email string) *Customer {
	return &Customer{ID: id, Name: name, Email: email, credit: EUR(0)}
}

func (c *Customer) Credit() Money { return c.credit }

// SetCredit rejects negative amounts by clamping to zero and reporting
// ErrNegativeCredit. The clamp still applies so the account never carries
// a negative balance.
func (c *Customer) SetCredit(m Money) error {
	if m.Cents < 0 {
		c.credit = Money{Cents: 0, Currency: m.Currency}
		return ErrNegativeCredit
	}
	c.credit = m
	return nil
}

func (c *Customer) DiscountRate() float64 { return c.discountRate }

// SetDiscountRate accepts rates in [0,1]. Out-of-range input keeps the
// prior rate and reports ErrDiscountOutOfRange.
func (c *Customer) SetDiscountRate(rate float64) error {
	if rate < 0 || rate > 1 {
		return ErrDiscountOutOfRange
	}
	c.discountRate = rate
	return nil
}

// DiscountAmount computes the discount on an amount at the current rate.
func (c *Customer) DiscountAmount(m Money) Money {
	return m.MulRate(c.discountRate)
}

// RecordOrder appends to the customer's order history. Only the checkout
// flow calls this; history is append-only.
func (c *Customer) RecordOrder(o *Order) {
	c.orders = append(c.orders, o)
}

func (c *Customer) Orders() []*Order {
	out := make([]*Order, len(c.orders))
	copy(out, c.orders)
	return out
}

func (c *Customer) String() string {
	return fmt.Sprintf("%s <%s>, credit %s", c.Name, c.Email, c.credit)
}
