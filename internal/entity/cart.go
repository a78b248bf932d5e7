package domain

// Cart is a per-session, ordered collection of product references.
// Duplicates are allowed: adding the same product twice means two lines.
type Cart struct {
	CustomerID string
	items      []*Product
}

func NewCart(customerID string) *Cart {
	return &Cart{CustomerID: customerID}
}

// Add appends a product line. Insertion order defines display order.
func (c *Cart) Add(p *Product) {
	c.items = append(c.items, p)
}

// Remove takes out the first line referencing p and reports whether a line
// was removed. A missing product is not an error.
func (c *Cart) Remove(p *Product) bool {
	for i, it := range c.items {
		if it == p {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Subtotal sums the unit price of every line. Pure; calling it twice
// without mutation yields the same value.
func (c *Cart) Subtotal() Money {
	total := EUR(0)
	for _, it := range c.items {
		total = total.Add(it.UnitPrice)
	}
	return total
}

func (c *Cart) Clear() { c.items = nil }

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) Empty() bool { return len(c.items) == 0 }

// Items returns a copy of the line slice; the cart stays mutable only
// through its own methods.
func (c *Cart) Items() []*Product {
	out := make([]*Product, len(c.items))
	copy(out, c.items)
	return out
}
