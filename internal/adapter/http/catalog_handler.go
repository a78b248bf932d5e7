package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/misja/webshop-api/internal/usecase"
)

type CatalogHandler struct {
	catalog *usecase.Catalog
}

func NewCatalogHandler(catalog *usecase.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type productReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents" binding:"required,gt=0"`
	Currency    string `json:"currency"`
	Stock       int    `json:"stock" binding:"gte=0"`
	CategoryID  int64  `json:"categoryId"`
	WeightGrams int    `json:"weightGrams" binding:"gte=0"`
	Digital     bool   `json:"digital"`
}

func productJSON(p *usecase.ProductRecord) gin.H {
	return gin.H{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"priceCents":  p.PriceCents,
		"currency":    p.Currency,
		"stock":       p.Stock,
		"categoryId":  p.CategoryID,
		"weightGrams": p.WeightGrams,
		"digital":     p.Digital,
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return 0, false
	}
	return id, true
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	p, err := h.catalog.GetProduct(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, productJSON(p))
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	cats, err := h.catalog.ListCategories(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(cats))
	for _, cat := range cats {
		out = append(out, gin.H{"id": cat.ID, "name": cat.Name, "description": cat.Description})
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

func (h *CatalogHandler) ListByCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	items, err := h.catalog.ListByCategory(ctx, id)
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(items))
	for i := range items {
		out = append(out, productJSON(&items[i]))
	}
	c.JSON(http.StatusOK, gin.H{"products": out})
}

func (h *CatalogHandler) AddProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	rec := recordFromProductReq(req)
	id, err := h.catalog.AddProduct(ctx, rec)
	if err != nil {
		fail(c, err)
		return
	}
	rec.ID = id
	c.JSON(http.StatusCreated, productJSON(rec))
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	rec := recordFromProductReq(req)
	rec.ID = id
	if err := h.catalog.UpdateProduct(ctx, rec); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, productJSON(rec))
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.catalog.DeleteProduct(ctx, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func recordFromProductReq(req productReq) *usecase.ProductRecord {
	return &usecase.ProductRecord{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Currency:    req.Currency,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		WeightGrams: req.WeightGrams,
		Digital:     req.Digital,
	}
}
