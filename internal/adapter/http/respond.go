package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/misja/webshop-api/internal/entity"
	"github.com/misja/webshop-api/internal/usecase"
)

// fail maps use case errors onto HTTP statuses with a stable error code.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, usecase.ErrDuplicate):
		status, code = http.StatusConflict, "duplicate_request"
	case errors.Is(err, domain.ErrInvalidTransition):
		status, code = http.StatusConflict, "invalid_transition"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = http.StatusUnprocessableEntity, "insufficient_stock"
	case errors.Is(err, usecase.ErrInvalidProduct):
		status, code = http.StatusUnprocessableEntity, "invalid_product"
	case errors.Is(err, domain.ErrDiscountOutOfRange):
		status, code = http.StatusUnprocessableEntity, "discount_out_of_range"
	case errors.Is(err, domain.ErrNegativeCredit):
		status, code = http.StatusUnprocessableEntity, "negative_credit"
	case errors.Is(err, domain.ErrEmptyCart):
		status, code = http.StatusBadRequest, "empty_cart"
	case errors.Is(err, usecase.ErrUnknownPaymentMethod):
		status, code = http.StatusBadRequest, "unknown_payment_method"
	case errors.Is(err, domain.ErrInvalidQuantity):
		status, code = http.StatusBadRequest, "invalid_quantity"
	}

	c.JSON(status, gin.H{"error": code, "detail": err.Error()})
}
