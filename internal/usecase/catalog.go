package usecase

import (
	"context"
	"errors"
	"fmt"
)

var ErrInvalidProduct = errors.New("invalid product")

// Catalog serves the public product views and the admin maintenance
// operations behind them.
type Catalog struct {
	products ProductRepo
}

func NewCatalog(products ProductRepo) *Catalog {
	return &Catalog{products: products}
}

func (uc *Catalog) GetProduct(ctx context.Context, id int64) (*ProductRecord, error) {
	return uc.products.GetByID(ctx, id)
}

func (uc *Catalog) ListByCategory(ctx context.Context, categoryID int64) ([]ProductRecord, error) {
	return uc.products.ListByCategory(ctx, categoryID)
}

func (uc *Catalog) ListCategories(ctx context.Context) ([]CategoryRecord, error) {
	return uc.products.ListCategories(ctx)
}

func (uc *Catalog) AddProduct(ctx context.Context, p *ProductRecord) (int64, error) {
	if err := validateProduct(p); err != nil {
		return 0, err
	}
	return uc.products.Insert(ctx, p)
}

func (uc *Catalog) UpdateProduct(ctx context.Context, p *ProductRecord) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	return uc.products.Update(ctx, p)
}

func (uc *Catalog) DeleteProduct(ctx context.Context, id int64) error {
	return uc.products.Delete(ctx, id)
}

func validateProduct(p *ProductRecord) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalidProduct)
	}
	if p.PriceCents < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidProduct)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidProduct)
	}
	return nil
}
