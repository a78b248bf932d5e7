package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/misja/webshop-api/internal/entity"
	"github.com/misja/webshop-api/internal/usecase"
)

type MySQLCustomerRepo struct{ db *sql.DB }

func NewMySQLCustomerRepo(db *sql.DB) *MySQLCustomerRepo { return &MySQLCustomerRepo{db: db} }

func (r *MySQLCustomerRepo) GetByID(ctx context.Context, id string) (*usecase.CustomerRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,name,email,credit_cents,discount_rate
FROM customers WHERE id=?`, id)

	var rec usecase.CustomerRecord
	err := row.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.CreditCents, &rec.DiscountRate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *MySQLCustomerRepo) UpdateDiscount(ctx context.Context, id string, rate float64) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE customers SET discount_rate=?, updated_at=NOW() WHERE id=?`, rate, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *MySQLCustomerRepo) UpdateCredit(ctx context.Context, id string, cents int64) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE customers SET credit_cents=?, updated_at=NOW() WHERE id=?`, cents, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

var _ usecase.CustomerRepo = (*MySQLCustomerRepo)(nil)
