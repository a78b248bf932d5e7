package http

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/misja/webshop-api/internal/adapter/http/middleware"
	"github.com/misja/webshop-api/internal/logging"
)

type Handlers struct {
	Checkout *CheckoutHandler
	Orders   *OrderHandler
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Customer *CustomerHandler
	Token    *TokenHandler
}

func NewRouter(h Handlers, authz *middleware.Authz, rl *middleware.RateLimiter, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if rl != nil {
		r.Use(rl.Middleware())
	}
	r.Use(middleware.Logging(log))

	r.GET("/healthz", func(c *gin.Context) {
		logging.From(c).Info("health check")
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/token", h.Token.IssueToken)

	v1 := r.Group("/v1")
	{
		// catalog: reads are public, writes need the back office scope
		v1.GET("/products/:id", h.Catalog.GetProduct)
		v1.GET("/categories", h.Catalog.ListCategories)
		v1.GET("/categories/:id/products", h.Catalog.ListByCategory)
		v1.POST("/products", authz.Require("products.write"), h.Catalog.AddProduct)
		v1.PUT("/products/:id", authz.Require("products.write"), h.Catalog.UpdateProduct)
		v1.DELETE("/products/:id", authz.Require("products.write"), h.Catalog.DeleteProduct)

		// cart
		v1.GET("/customers/:id/cart", authz.Require("carts.write"), h.Cart.ViewCart)
		v1.POST("/customers/:id/cart/items", authz.Require("carts.write"), h.Cart.AddItem)
		v1.DELETE("/customers/:id/cart/items/:productID", authz.Require("carts.write"), h.Cart.RemoveItem)

		// customer account
		v1.GET("/customers/:id", authz.Require("customers.write"), h.Customer.GetCustomer)
		v1.PUT("/customers/:id/discount", authz.Require("customers.write"), h.Customer.SetDiscount)
		v1.PUT("/customers/:id/credit", authz.Require("customers.write"), h.Customer.SetCredit)
		v1.GET("/customers/:id/orders", authz.Require("orders.read"), h.Customer.OrderHistory)

		// checkout and orders
		v1.POST("/checkout", authz.Require("orders.write"), h.Checkout.PlaceOrder)
		v1.GET("/orders/:id", authz.Require("orders.read"), h.Orders.GetOrderByID)
		v1.GET("/orders/:id/status", authz.Require("orders.read"), h.Orders.GetOrderStatus)
		v1.POST("/orders/:id/cancel", authz.Require("orders.write"), h.Orders.CancelOrder)
	}

	return r
}
