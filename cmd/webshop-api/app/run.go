package app

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/misja/webshop-api/configs"
	"github.com/misja/webshop-api/internal/adapter/cache"
	"github.com/misja/webshop-api/internal/adapter/http"
	"github.com/misja/webshop-api/internal/adapter/http/middleware"
	"github.com/misja/webshop-api/internal/adapter/kafka"
	"github.com/misja/webshop-api/internal/adapter/queue"
	"github.com/misja/webshop-api/internal/adapter/repo"
	domain "github.com/misja/webshop-api/internal/entity"
	"github.com/misja/webshop-api/internal/logging"
	"github.com/misja/webshop-api/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logger := logging.Init(cfg.App.Name, cfg.App.LogFile)

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, err
	}

	logger.Info("webshop-api: starting up")

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}

	// init rabbitmq
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}

	// infra
	productRepo := repo.NewMySQLProductRepo(db)
	customerRepo := repo.NewMySQLCustomerRepo(db)
	orderRepo := repo.NewMySQLOrderRepo(db)
	outboxRepo := repo.NewMySQLOutboxRepo(db)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	cartStore := cache.NewRedisCartStore(rdb, cfg.Cart.TTL)
	orderCache := cache.NewRedisOrderCache(rdb, cfg.Cache.OrderStatusTTL)
	producer, err := queue.NewRabbitProducer(ch, cfg.Rabbit)
	if err != nil {
		return nil, nil, err
	}

	// use cases
	policy := domain.ShippingPolicy{
		FreeThreshold: domain.EUR(cfg.Shipping.FreeThresholdCents),
		BaseFee:       domain.EUR(cfg.Shipping.BaseFeeCents),
	}
	checkoutUC := usecase.NewCheckout(
		productRepo, customerRepo, orderRepo, cartStore,
		idem, outboxRepo, producer, orderCache,
		policy, paymentMethods(cfg),
	)
	cancelUC := usecase.NewCancelOrder(orderRepo, productRepo, outboxRepo, orderCache)
	catalogUC := usecase.NewCatalog(productRepo)
	cartUC := usecase.NewCartOps(cartStore, productRepo)
	customerUC := usecase.NewCustomers(customerRepo, orderRepo)

	// consumer lifecycle: cancelled by cleanup
	consumerCtx, stopConsumers := context.WithCancel(context.Background())

	// register queue-handler
	if err := setupQueue(ch, cfg.Rabbit.Queue); err != nil {
		stopConsumers()
		return nil, nil, err
	}

	// register kafka-listener
	grp, err := setupKafkaListener(consumerCtx, cfg, orderRepo, productRepo, orderCache, cancelUC)
	if err != nil {
		stopConsumers()
		return nil, nil, err
	}

	// init handlers + router + middleware
	handlers := http.Handlers{
		Checkout: http.NewCheckoutHandler(checkoutUC),
		Orders:   http.NewOrderHandler(orderRepo, orderCache, cancelUC),
		Catalog:  http.NewCatalogHandler(catalogUC),
		Cart:     http.NewCartHandler(cartUC),
		Customer: http.NewCustomerHandler(customerUC),
		Token:    http.NewTokenHandler(cfg),
	}
	auth := middleware.NewAuthz(cfg)
	rl := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	router := http.NewRouter(handlers, auth, rl, logging.New("http"))

	cleanup := func() {
		stopConsumers()
		_ = grp.Close()
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		_ = db.Close()
	}

	return &App{Router: router}, cleanup, nil
}

// paymentMethods builds the accepted method table from the surcharge config.
func paymentMethods(cfg configs.Config) map[string]domain.PaymentMethod {
	methods := make(map[string]domain.PaymentMethod, len(cfg.Payment.SurchargeCents))
	for kind, cents := range cfg.Payment.SurchargeCents {
		methods[kind] = domain.PaymentMethod{Kind: kind, Surcharge: domain.EUR(cents)}
	}
	return methods
}

func setupQueue(ch *amqp091.Channel, queueName string) error {
	h := queue.NewNotificationHandler(logging.New("notifications"))

	router := queue.NewRouter(ch, queue.WithPrefetch(50))
	router.Register(queueName, queue.JSONHandler[usecase.OrderConfirmedMsg]{HandleFunc: h.HandleConfirmed})

	return router.Start()
}

func setupKafkaListener(ctx context.Context, cfg configs.Config, orders usecase.OrderRepo, products usecase.ProductRepo, orderCache usecase.OrderCache, cancelUC *usecase.CancelOrder) (sarama.ConsumerGroup, error) {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		return nil, err
	}

	log := logging.New("payment-status")
	h := kafka.NewPaymentStatusHandler(orders, products, orderCache, cancelUC, log)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.Topic}, h.Handle)

	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("kafka consumer stopped", "err", err)
		}
	}()
	return grp, nil
}
