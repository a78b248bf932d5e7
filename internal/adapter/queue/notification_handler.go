package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/misja/webshop-api/internal/usecase"
)

// NotificationHandler consumes order.confirmed events and sends the
// customer a confirmation. Delivery is currently a structured log line;
// an SMTP or push gateway can be slotted in behind the same handler.
type NotificationHandler struct {
	log *slog.Logger
}

func NewNotificationHandler(log *slog.Logger) *NotificationHandler {
	return &NotificationHandler{log: log}
}

func (h *NotificationHandler) HandleConfirmed(ctx context.Context, msg usecase.OrderConfirmedMsg) error {
	if msg.OrderID == "" {
		return fmt.Errorf("confirmed event missing order id")
	}

	h.log.InfoContext(ctx, "order confirmation notification",
		"order_id", msg.OrderID,
		"customer_id", msg.CustomerID,
		"email", msg.Email,
		"payment_kind", msg.PaymentKind,
		"total_cents", msg.TotalCents,
		"lines", len(msg.Lines),
	)
	return nil
}
