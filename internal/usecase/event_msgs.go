package usecase

import "time"

type ConfirmedLine struct {
	ProductID      int64  `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

// Published on the confirmation exchange after checkout; the notification
// consumer turns it into a confirmation email.
type OrderConfirmedMsg struct {
	OrderID       string          `json:"orderId"`
	CustomerID    string          `json:"customerId"`
	Email         string          `json:"email"`
	Lines         []ConfirmedLine `json:"lines"`
	SubtotalCents int64           `json:"subtotalCents"`
	ShippingCents int64           `json:"shippingCents"`
	TotalCents    int64           `json:"totalCents"`
	Currency      string          `json:"currency"`
	PaymentKind   string          `json:"paymentKind"`
	PlacedAt      time.Time       `json:"placedAt"`
}

// Sent by the external payment provider on Kafka.
type PaymentStatusChangedMsg struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"` // e.g. "REFUNDED", "CHARGEBACK", "FAILED"
	Reason  string `json:"reason,omitempty"`
}
