package usecase

import (
	"context"

	domain "github.com/misja/webshop-api/internal/entity"
)

// Customers routes credit/discount updates through the validated domain
// setters so the store only ever sees accepted values.
type Customers struct {
	customers CustomerRepo
	orders    OrderRepo
}

func NewCustomers(customers CustomerRepo, orders OrderRepo) *Customers {
	return &Customers{customers: customers, orders: orders}
}

func (uc *Customers) Get(ctx context.Context, id string) (*CustomerRecord, error) {
	return uc.customers.GetByID(ctx, id)
}

// SetDiscount returns the effective rate: the new one when accepted, the
// retained prior rate with ErrDiscountOutOfRange when rejected.
func (uc *Customers) SetDiscount(ctx context.Context, id string, rate float64) (float64, error) {
	rec, err := uc.customers.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	customer := customerFromRecord(rec)
	if err := customer.SetDiscountRate(rate); err != nil {
		return customer.DiscountRate(), err
	}
	if err := uc.customers.UpdateDiscount(ctx, id, customer.DiscountRate()); err != nil {
		return 0, err
	}
	return customer.DiscountRate(), nil
}

// SetCredit returns the effective balance in cents. Negative input clamps
// to zero (and is persisted as zero) alongside ErrNegativeCredit.
func (uc *Customers) SetCredit(ctx context.Context, id string, cents int64) (int64, error) {
	rec, err := uc.customers.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	customer := customerFromRecord(rec)
	setErr := customer.SetCredit(domain.EUR(cents))
	if err := uc.customers.UpdateCredit(ctx, id, customer.Credit().Cents); err != nil {
		return 0, err
	}
	return customer.Credit().Cents, setErr
}

// History lists the customer's orders, newest first.
func (uc *Customers) History(ctx context.Context, id string) ([]OrderRecord, error) {
	if _, err := uc.customers.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return uc.orders.ListByCustomer(ctx, id)
}
