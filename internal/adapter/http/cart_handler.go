package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/misja/webshop-api/internal/usecase"
)

type CartHandler struct {
	carts *usecase.CartOps
}

func NewCartHandler(carts *usecase.CartOps) *CartHandler {
	return &CartHandler{carts: carts}
}

type cartItemReq struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
}

func (h *CartHandler) ViewCart(c *gin.Context) {
	customerID := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	view, err := h.carts.View(ctx, customerID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	customerID := c.Param("id")
	var req cartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.carts.AddItem(ctx, customerID, req.ProductID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveItem drops the first matching line; removing a product that is not
// in the cart is a 404.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	customerID := c.Param("id")
	productID, ok := pathID(c, "productID")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	removed, err := h.carts.RemoveItem(ctx, customerID, productID)
	if err != nil {
		fail(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	c.Status(http.StatusNoContent)
}
