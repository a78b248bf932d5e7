package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/misja/webshop-api/internal/usecase"
)

type CheckoutHandler struct {
	checkout *usecase.Checkout
}

func NewCheckoutHandler(checkout *usecase.Checkout) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type checkoutReq struct {
	CustomerID    string `json:"customerId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

// PlaceOrder handler: turn the customer's cart into a confirmed order.
// Retries with the same X-Idempotency-Key replay the original receipt.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	idemKey := c.GetHeader("X-Idempotency-Key") // prevent duplicated requests

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	out, err := h.checkout.Execute(ctx, usecase.PlaceOrderInput{
		CustomerID:     req.CustomerID,
		IdempotencyKey: idemKey,
		PaymentKind:    req.PaymentMethod,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"orderId": out.OrderID,
		"status":  out.Status,
		"receipt": out.Receipt,
	})
}
