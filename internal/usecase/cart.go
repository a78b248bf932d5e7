package usecase

import (
	"context"
	"time"

	domain "github.com/misja/webshop-api/internal/entity"
)

type CartViewLine struct {
	ProductID      int64  `json:"product_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type CartView struct {
	CustomerID    string         `json:"customer_id"`
	Lines         []CartViewLine `json:"lines"`
	SubtotalCents int64          `json:"subtotal_cents"`
	Currency      string         `json:"currency"`
}

// CartOps manages the per-session cart in the cart store.
type CartOps struct {
	carts    CartStore
	products ProductRepo
}

func NewCartOps(carts CartStore, products ProductRepo) *CartOps {
	return &CartOps{carts: carts, products: products}
}

// AddItem appends one line for the product. Adding the same product twice
// produces two lines, matching the domain cart.
func (uc *CartOps) AddItem(ctx context.Context, customerID string, productID int64) error {
	if _, err := uc.products.GetByID(ctx, productID); err != nil {
		return err
	}
	return uc.carts.Append(ctx, customerID, CartLineRecord{
		ProductID: productID,
		AddedAt:   time.Now(),
	})
}

// RemoveItem drops the first matching line; a missing product is reported
// as removed=false, not as an error.
func (uc *CartOps) RemoveItem(ctx context.Context, customerID string, productID int64) (bool, error) {
	return uc.carts.RemoveFirst(ctx, customerID, productID)
}

// View resolves the stored lines against the catalog and computes the
// running subtotal in display order.
func (uc *CartOps) View(ctx context.Context, customerID string) (CartView, error) {
	lines, err := uc.carts.Get(ctx, customerID)
	if err != nil {
		return CartView{}, err
	}

	view := CartView{CustomerID: customerID, Currency: domain.DefaultCurrency}
	cache := make(map[int64]*ProductRecord)
	for _, line := range lines {
		rec, ok := cache[line.ProductID]
		if !ok {
			rec, err = uc.products.GetByID(ctx, line.ProductID)
			if err != nil {
				return CartView{}, err
			}
			cache[line.ProductID] = rec
		}
		view.Lines = append(view.Lines, CartViewLine{
			ProductID:      rec.ID,
			Name:           rec.Name,
			UnitPriceCents: rec.PriceCents,
		})
		view.SubtotalCents += rec.PriceCents
	}
	return view, nil
}
