package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/misja/webshop-api/internal/entity"
	"github.com/misja/webshop-api/internal/usecase"
)

type CustomerHandler struct {
	customers *usecase.Customers
}

func NewCustomerHandler(customers *usecase.Customers) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

type discountReq struct {
	Rate float64 `json:"rate"`
}

type creditReq struct {
	Cents int64 `json:"cents"`
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	rec, err := h.customers.Get(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           rec.ID,
		"name":         rec.Name,
		"email":        rec.Email,
		"creditCents":  rec.CreditCents,
		"discountRate": rec.DiscountRate,
	})
}

// SetDiscount applies a rate in [0, 1]. A rejected rate leaves the prior
// one in place; the response echoes the rate actually in effect.
func (h *CustomerHandler) SetDiscount(c *gin.Context) {
	id := c.Param("id")
	var req discountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	effective, err := h.customers.SetDiscount(ctx, id, req.Rate)
	if err != nil {
		if errors.Is(err, domain.ErrDiscountOutOfRange) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":        "discount_out_of_range",
				"discountRate": effective,
			})
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "discountRate": effective})
}

// SetCredit sets the balance; negative input clamps to zero and reports it.
func (h *CustomerHandler) SetCredit(c *gin.Context) {
	id := c.Param("id")
	var req creditReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	effective, err := h.customers.SetCredit(ctx, id, req.Cents)
	if err != nil {
		if errors.Is(err, domain.ErrNegativeCredit) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":       "negative_credit",
				"creditCents": effective,
			})
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "creditCents": effective})
}

// OrderHistory lists the customer's orders, newest first.
func (h *CustomerHandler) OrderHistory(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	recs, err := h.customers.History(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(recs))
	for i := range recs {
		out = append(out, orderJSON(&recs[i]))
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}
