package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/misja/webshop-api/internal/entity"
	"github.com/misja/webshop-api/internal/usecase"
)

type MySQLProductRepo struct{ db *sql.DB }

func NewMySQLProductRepo(db *sql.DB) *MySQLProductRepo { return &MySQLProductRepo{db: db} }

func (r *MySQLProductRepo) GetByID(ctx context.Context, id int64) (*usecase.ProductRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,name,description,price_cents,currency,stock,category_id,weight_grams,digital
FROM products WHERE id=?`, id)
	return scanProduct(row)
}

func (r *MySQLProductRepo) ListByCategory(ctx context.Context, categoryID int64) ([]usecase.ProductRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,name,description,price_cents,currency,stock,category_id,weight_grams,digital
FROM products WHERE category_id=? ORDER BY id`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []usecase.ProductRecord
	for rows.Next() {
		var rec usecase.ProductRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.PriceCents,
			&rec.Currency, &rec.Stock, &rec.CategoryID, &rec.WeightGrams, &rec.Digital); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *MySQLProductRepo) ListCategories(ctx context.Context) ([]usecase.CategoryRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,name,description FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []usecase.CategoryRecord
	for rows.Next() {
		var rec usecase.CategoryRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Description); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *MySQLProductRepo) Insert(ctx context.Context, p *usecase.ProductRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO products (name,description,price_cents,currency,stock,category_id,weight_grams,digital,created_at,updated_at)
VALUES (?,?,?,?,?,?,?,?,NOW(),NOW())
`, p.Name, p.Description, p.PriceCents, p.Currency, p.Stock, p.CategoryID, p.WeightGrams, p.Digital)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *MySQLProductRepo) Update(ctx context.Context, p *usecase.ProductRecord) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE products
SET name=?, description=?, price_cents=?, currency=?, stock=?, category_id=?, weight_grams=?, digital=?, updated_at=NOW()
WHERE id=?`,
		p.Name, p.Description, p.PriceCents, p.Currency, p.Stock, p.CategoryID, p.WeightGrams, p.Digital, p.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *MySQLProductRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DecrementStockIf takes qty from stock only when the stock covers it.
// rows == 0 → either not found or insufficient stock; the caller decides.
func (r *MySQLProductRepo) DecrementStockIf(ctx context.Context, id int64, qty int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE products
SET stock = stock - ?, updated_at = NOW()
WHERE id = ? AND stock >= ?`,
		qty, id, qty)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *MySQLProductRepo) RestoreStock(ctx context.Context, id int64, qty int) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE products SET stock = stock + ?, updated_at = NOW() WHERE id = ?`, qty, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanProduct(row *sql.Row) (*usecase.ProductRecord, error) {
	var rec usecase.ProductRecord
	err := row.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.PriceCents,
		&rec.Currency, &rec.Stock, &rec.CategoryID, &rec.WeightGrams, &rec.Digital)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func requireRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ usecase.ProductRepo = (*MySQLProductRepo)(nil)
