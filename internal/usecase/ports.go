package usecase

import (
	"context"
	"time"
)

// Persistence shapes (kept out of domain).

type ProductRecord struct {
	ID          int64
	Name        string
	Description string
	PriceCents  int64
	Currency    string
	Stock       int
	CategoryID  int64
	WeightGrams int
	Digital     bool
}

type CategoryRecord struct {
	ID          int64
	Name        string
	Description string
}

type CustomerRecord struct {
	ID           string
	Name         string
	Email        string
	CreditCents  int64
	DiscountRate float64
}

type OrderLineRecord struct {
	ProductID      int64
	Name           string
	UnitPriceCents int64
	Quantity       int
}

type OrderRecord struct {
	ID             string
	CustomerID     string
	Status         string
	SubtotalCents  int64
	ShippingCents  int64
	TotalCents     int64
	Currency       string
	PaymentKind    string
	IdempotencyKey string
	PlacedAt       time.Time
	Lines          []OrderLineRecord
}

// CartLineRecord is one stored cart line; duplicates stay separate lines
// in insertion order.
type CartLineRecord struct {
	ProductID int64     `json:"product_id"`
	AddedAt   time.Time `json:"added_at"`
}

type ProductRepo interface {
	GetByID(ctx context.Context, id int64) (*ProductRecord, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]ProductRecord, error)
	ListCategories(ctx context.Context) ([]CategoryRecord, error)
	Insert(ctx context.Context, p *ProductRecord) (int64, error)
	Update(ctx context.Context, p *ProductRecord) error
	Delete(ctx context.Context, id int64) error
	// DecrementStockIf atomically takes qty from stock and reports whether
	// the stock covered it. It must never leave stock negative.
	DecrementStockIf(ctx context.Context, id int64, qty int) (bool, error)
	RestoreStock(ctx context.Context, id int64, qty int) error
}

type CustomerRepo interface {
	GetByID(ctx context.Context, id string) (*CustomerRecord, error)
	UpdateDiscount(ctx context.Context, id string, rate float64) error
	UpdateCredit(ctx context.Context, id string, cents int64) error
}

type OrderRepo interface {
	Create(ctx context.Context, o *OrderRecord) error
	GetByID(ctx context.Context, id string) (*OrderRecord, error)
	ListByCustomer(ctx context.Context, customerID string) ([]OrderRecord, error)
	UpdateStatus(ctx context.Context, id, toStatus string) error
	UpdateStatusIf(ctx context.Context, id, fromStatus, toStatus string) (bool, error)
}

type OutboxRepo interface {
	Insert(ctx context.Context, channel string, payload []byte) error
}

type CartStore interface {
	Get(ctx context.Context, customerID string) ([]CartLineRecord, error)
	Append(ctx context.Context, customerID string, line CartLineRecord) error
	// RemoveFirst drops the first line for productID and reports whether
	// a line was removed.
	RemoveFirst(ctx context.Context, customerID string, productID int64) (bool, error)
	Clear(ctx context.Context, customerID string) error
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Unlock(ctx context.Context, scope, key string) error
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

type OrderCache interface {
	SetStatus(ctx context.Context, orderID string, status string) error
	GetStatus(ctx context.Context, orderID string) (string, bool, error)
}

// ConfirmationPublisher hands a confirmed order to the notification side.
// Publishing is fire-and-forget: a delivery failure never touches order state.
type ConfirmationPublisher interface {
	PublishConfirmed(ctx context.Context, msg OrderConfirmedMsg) error
}
