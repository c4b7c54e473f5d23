package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restorify/config"
	httpapi "restorify/order-svc/internal/api/http"
	"restorify/order-svc/internal/domain"
	"restorify/order-svc/internal/service"
	"restorify/order-svc/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type repositories interface {
	service.CatalogRepository
	service.PartyDirectory
	service.OrderRepository
	service.UnitOfWork
	service.FeedbackRepository
}

func main() {
	port := pflag.String("port", "8083", "HTTP listen port")
	storageKind := pflag.String("storage", "postgres", "storage backend: postgres or memory")
	runConsumer := pflag.Bool("consumer", false, "run the sales projection consumer")
	pflag.Parse()

	cfg := config.Load()
	logger := config.NewLogger(cfg.Env)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		repo      repositories
		marker    service.FeedbackMarker
		orderPub  service.EventPublisher
		feedPub   service.EventPublisher
		salesView service.SalesServiceInterface
	)

	switch *storageKind {
	case "memory":
		store := storage.NewMemoryStore()
		seedDemo(store)
		repo = store
		logger.Warn("running with in-memory storage, data is lost on exit")
	case "postgres":
		db := config.MustInitPostgres(cfg)
		defer db.Close()

		pg := storage.NewPostgresRepository(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatal("failed to ensure schema", zap.Error(err))
		}
		repo = pg

		rdb := config.MustInitRedis(cfg)
		defer rdb.Close()
		cache := storage.NewRedisCache(rdb, cfg.FeedbackMarkerTTL)
		marker = cache

		ordersWriter := config.NewKafkaWriter(cfg, cfg.OrdersTopic)
		defer ordersWriter.Close()
		feedbackWriter := config.NewKafkaWriter(cfg, cfg.FeedbackTopic)
		defer feedbackWriter.Close()
		orderPub = storage.NewKafkaPublisher(ordersWriter)
		feedPub = storage.NewKafkaPublisher(feedbackWriter)

		reader := config.NewKafkaReader(cfg, cfg.OrdersTopic)
		defer reader.Close()
		consumer := service.NewConsumer(reader, cache, logger)
		salesView = consumer
		if *runConsumer {
			go consumer.Start(ctx)
		}
	default:
		logger.Fatal("unknown storage backend", zap.String("storage", *storageKind))
	}

	engine := service.NewReservationEngine(repo, repo, logger)
	orderSvc := service.NewOrderService(repo, repo, repo, engine, orderPub,
		service.DefaultQRGenerator{BaseURL: cfg.FeedbackBaseURL}, logger)
	feedbackSvc := service.NewFeedbackService(repo, repo, repo, marker, feedPub, logger)

	handler := httpapi.NewHandler(orderSvc, feedbackSvc, salesView, logger)
	server := &http.Server{
		Addr:              ":" + *port,
		Handler:           httpapi.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("order service starting", zap.String("addr", server.Addr), zap.String("storage", *storageKind))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func seedDemo(store *storage.MemoryStore) {
	store.AddCustomer("C001")
	store.AddStaff("K001")
	store.AddIngredient(domain.Ingredient{ID: "B001", Name: "Flour", Stock: 10, Unit: "kg", UnitPrice: decimal.RequireFromString("1.50")})
	store.AddMenuItem(domain.MenuItem{ID: "M001", Name: "Bread", Price: decimal.RequireFromString("5.00")})
	store.AddMenuItem(domain.MenuItem{ID: "M002", Name: "Water", Price: decimal.RequireFromString("1.00")})
	store.AddBillOfMaterialsEntry(domain.BillOfMaterialsEntry{MenuID: "M001", IngredientID: "B001", QuantityPerUnit: 3})
}
