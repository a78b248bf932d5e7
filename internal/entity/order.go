package domain

import "time"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusFailed    Status = "FAILED"
)

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusFailed
}

func (s Status) String() string { return string(s) }

// OrderLine is a cart line frozen at placement time. Name and unit price
// are captured so later catalog edits never rewrite history.
type OrderLine struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice Money  `json:"unit_price"`
}

// Receipt is the structured result of a successful placement, ready to be
// serialized by whatever presents it.
type Receipt struct {
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	Lines         []OrderLine `json:"lines"`
	Subtotal      Money       `json:"subtotal"`
	ShippingFee   Money       `json:"shipping_fee"`
	FinalTotal    Money       `json:"final_total"`
	PaymentKind   string      `json:"payment_kind"`
	PlacedAt      time.Time   `json:"placed_at"`
}

// Order composes a customer, a live cart and a payment method, and owns
// the PENDING → CONFIRMED (→ CANCELLED) lifecycle.
type Order struct {
	Customer *Customer
	Payment  PaymentMethod

	cart   *Cart
	policy ShippingPolicy

	Lines       []OrderLine
	Subtotal    Money
	ShippingFee Money
	FinalTotal  Money
	PlacedAt    time.Time
	Status      Status
}

func NewOrder(customer *Customer, cart *Cart, payment PaymentMethod, policy ShippingPolicy) *Order {
	return &Order{
		Customer: customer,
		Payment:  payment,
		cart:     cart,
		policy:   policy,
		Status:   StatusPending,
	}
}

// Place prices the cart, settles payment and confirms the order.
//
// An empty cart fails with ErrEmptyCart before any mutation. On success the
// cart contents are snapshotted into the order, the live cart is cleared and
// the order is appended to the customer's history.
func (o *Order) Place() (Receipt, error) {
	if o.Status != StatusPending {
		return Receipt{}, ErrInvalidTransition
	}
	if o.cart == nil || o.cart.Empty() {
		return Receipt{}, ErrEmptyCart
	}

	subtotal := o.cart.Subtotal()
	fee := o.policy.FeeFor(subtotal)
	total := subtotal.Add(fee)
	final := o.Payment.Settle(total)

	items := o.cart.Items()
	lines := make([]OrderLine, len(items))
	for i, p := range items {
		lines[i] = OrderLine{ProductID: p.ID, Name: p.Name, UnitPrice: p.UnitPrice}
	}

	o.Lines = lines
	o.Subtotal = subtotal
	o.ShippingFee = fee
	o.FinalTotal = final
	o.PlacedAt = time.Now()
	o.Status = StatusConfirmed

	o.cart.Clear()
	o.Customer.RecordOrder(o)

	return Receipt{
		CustomerName:  o.Customer.Name,
		CustomerEmail: o.Customer.Email,
		Lines:         lines,
		Subtotal:      subtotal,
		ShippingFee:   fee,
		FinalTotal:    final,
		PaymentKind:   o.Payment.Kind,
		PlacedAt:      o.PlacedAt,
	}, nil
}

// Cancel is only valid on a confirmed order.
func (o *Order) Cancel() error {
	if o.Status != StatusConfirmed {
		return ErrInvalidTransition
	}
	o.Status = StatusCancelled
	return nil
}
