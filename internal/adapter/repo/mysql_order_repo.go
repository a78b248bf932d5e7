package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domain "github.com/misja/webshop-api/internal/entity"
	"github.com/misja/webshop-api/internal/usecase"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

// Create stores the order header and its lines in one transaction.
func (r *MySQLOrderRepo) Create(ctx context.Context, o *usecase.OrderRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO orders (id,customer_id,status,subtotal_cents,shipping_cents,total_cents,currency,payment_kind,idempotency_key,placed_at,created_at,updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,NOW(),NOW())
`, o.ID, o.CustomerID, o.Status, o.SubtotalCents, o.ShippingCents, o.TotalCents,
		o.Currency, o.PaymentKind, o.IdempotencyKey, o.PlacedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, line := range o.Lines {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO order_items (order_id,product_id,name,unit_price_cents,quantity)
VALUES (?,?,?,?,?)
`, o.ID, line.ProductID, line.Name, line.UnitPriceCents, line.Quantity); err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}

	return tx.Commit()
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id string) (*usecase.OrderRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,customer_id,status,subtotal_cents,shipping_cents,total_cents,currency,payment_kind,idempotency_key,placed_at
FROM orders WHERE id=?`, id)

	var rec usecase.OrderRecord
	err := row.Scan(&rec.ID, &rec.CustomerID, &rec.Status, &rec.SubtotalCents,
		&rec.ShippingCents, &rec.TotalCents, &rec.Currency, &rec.PaymentKind,
		&rec.IdempotencyKey, &rec.PlacedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if rec.Lines, err = r.lines(ctx, id); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *MySQLOrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]usecase.OrderRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,customer_id,status,subtotal_cents,shipping_cents,total_cents,currency,payment_kind,idempotency_key,placed_at
FROM orders WHERE customer_id=? ORDER BY placed_at DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []usecase.OrderRecord
	for rows.Next() {
		var rec usecase.OrderRecord
		if err := rows.Scan(&rec.ID, &rec.CustomerID, &rec.Status, &rec.SubtotalCents,
			&rec.ShippingCents, &rec.TotalCents, &rec.Currency, &rec.PaymentKind,
			&rec.IdempotencyKey, &rec.PlacedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Lines, err = r.lines(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *MySQLOrderRepo) UpdateStatus(ctx context.Context, id, toStatus string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET status = ?, updated_at = NOW() WHERE id = ?`, toStatus, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// UpdateStatusIf performs a guarded transition.
// rows == 0 → nothing matched (either not found or status mismatch).
func (r *MySQLOrderRepo) UpdateStatusIf(ctx context.Context, id, fromStatus, toStatus string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?`,
		toStatus, id, fromStatus)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *MySQLOrderRepo) lines(ctx context.Context, orderID string) ([]usecase.OrderLineRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT product_id,name,unit_price_cents,quantity
FROM order_items WHERE order_id=? ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []usecase.OrderLineRecord
	for rows.Next() {
		var line usecase.OrderLineRecord
		if err := rows.Scan(&line.ProductID, &line.Name, &line.UnitPriceCents, &line.Quantity); err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, rows.Err()
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
