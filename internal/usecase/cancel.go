package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	domain "github.com/misja/webshop-api/internal/entity"
	"github.com/misja/webshop-api/internal/logging"
)

const cancelledChannel = "orders.cancelled.v1"

// CancelOrder moves a confirmed order to CANCELLED and puts the stock back.
// The guarded status update means a cancel can never race a second cancel
// or resurrect a failed order.
type CancelOrder struct {
	orders   OrderRepo
	products ProductRepo
	outbox   OutboxRepo
	cache    OrderCache
	log      *slog.Logger
}

func NewCancelOrder(orders OrderRepo, products ProductRepo, outbox OutboxRepo, cache OrderCache) *CancelOrder {
	return &CancelOrder{
		orders:   orders,
		products: products,
		outbox:   outbox,
		cache:    cache,
		log:      logging.New("cancel-order"),
	}
}

func (uc *CancelOrder) Execute(ctx context.Context, orderID string) (*OrderRecord, error) {
	rec, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	ok, err := uc.orders.UpdateStatusIf(ctx, orderID,
		string(domain.StatusConfirmed), string(domain.StatusCancelled))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidTransition
	}

	for _, line := range rec.Lines {
		if err := uc.products.RestoreStock(ctx, line.ProductID, line.Quantity); err != nil {
			uc.log.Error("restock after cancel failed",
				"order_id", orderID, "product_id", line.ProductID, "err", err)
		}
	}

	rec.Status = string(domain.StatusCancelled)
	if payload, err := json.Marshal(rec); err == nil {
		if err := uc.outbox.Insert(ctx, cancelledChannel, payload); err != nil {
			uc.log.Warn("outbox insert failed", "order_id", orderID, "err", err)
		}
	}
	if uc.cache != nil {
		_ = uc.cache.SetStatus(ctx, orderID, rec.Status)
	}

	return rec, nil
}
