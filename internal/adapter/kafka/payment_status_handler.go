package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domain "github.com/misja/webshop-api/internal/entity"
	"github.com/misja/webshop-api/internal/usecase"
)

// PaymentStatusHandler applies payment provider verdicts to orders.
// Refunds and chargebacks cancel the order and restock it; a failed
// settlement marks the order FAILED without restocking (the provider
// reports failure before goods leave the warehouse, stock was already
// returned by the checkout compensation path if settlement never ran).
type PaymentStatusHandler struct {
	orders   usecase.OrderRepo
	products usecase.ProductRepo
	cache    usecase.OrderCache
	cancel   *usecase.CancelOrder
	log      *slog.Logger
}

func NewPaymentStatusHandler(orders usecase.OrderRepo, products usecase.ProductRepo, cache usecase.OrderCache, cancel *usecase.CancelOrder, log *slog.Logger) *PaymentStatusHandler {
	return &PaymentStatusHandler{
		orders:   orders,
		products: products,
		cache:    cache,
		cancel:   cancel,
		log:      log,
	}
}

func (h *PaymentStatusHandler) Handle(ctx context.Context, ev usecase.PaymentStatusChangedMsg) error {
	if ev.OrderID == "" {
		h.log.Warn("payment event missing order id", "status", ev.Status)
		return nil // poison, do not retry
	}

	switch ev.Status {
	case "REFUNDED", "CHARGEBACK":
		_, err := h.cancel.Execute(ctx, ev.OrderID)
		if errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrNotFound) {
			// already terminal or unknown; replaying won't change that
			h.log.Warn("payment cancel skipped",
				"order_id", ev.OrderID, "status", ev.Status, "err", err)
			return nil
		}
		return err

	case "FAILED":
		ok, err := h.orders.UpdateStatusIf(ctx, ev.OrderID,
			string(domain.StatusConfirmed), string(domain.StatusFailed))
		if err != nil {
			return fmt.Errorf("mark order failed: %w", err)
		}
		if !ok {
			h.log.Warn("payment failure on non-confirmed order",
				"order_id", ev.OrderID, "reason", ev.Reason)
			return nil
		}
		if h.cache != nil {
			_ = h.cache.SetStatus(ctx, ev.OrderID, string(domain.StatusFailed))
		}
		h.log.Info("order marked failed by payment provider",
			"order_id", ev.OrderID, "reason", ev.Reason)
		return nil

	default:
		h.log.Info("ignoring payment status", "order_id", ev.OrderID, "status", ev.Status)
		return nil
	}
}
