package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/misja/webshop-api/internal/usecase"
)

type OrderHandler struct {
	query  usecase.OrderRepo
	cache  usecase.OrderCache
	cancel *usecase.CancelOrder
}

func NewOrderHandler(query usecase.OrderRepo, cache usecase.OrderCache, cancel *usecase.CancelOrder) *OrderHandler {
	return &OrderHandler{query: query, cache: cache, cancel: cancel}
}

func orderJSON(rec *usecase.OrderRecord) gin.H {
	lines := make([]gin.H, 0, len(rec.Lines))
	for _, l := range rec.Lines {
		lines = append(lines, gin.H{
			"productId":      l.ProductID,
			"name":           l.Name,
			"unitPriceCents": l.UnitPriceCents,
			"quantity":       l.Quantity,
		})
	}
	return gin.H{
		"id":            rec.ID,
		"customerId":    rec.CustomerID,
		"status":        rec.Status,
		"subtotalCents": rec.SubtotalCents,
		"shippingCents": rec.ShippingCents,
		"totalCents":    rec.TotalCents,
		"currency":      rec.Currency,
		"paymentKind":   rec.PaymentKind,
		"placedAt":      rec.PlacedAt,
		"lines":         lines,
	}
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	rec, err := h.query.GetByID(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orderJSON(rec))
}

// GetOrderStatus serves the cached status when it is warm, falling back to
// the repository.
func (h *OrderHandler) GetOrderStatus(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.cache != nil {
		if status, ok, err := h.cache.GetStatus(ctx, id); err == nil && ok {
			c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
			return
		}
	}

	rec, err := h.query.GetByID(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": rec.ID, "status": rec.Status})
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rec, err := h.cancel.Execute(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orderJSON(rec))
}
