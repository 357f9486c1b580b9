package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/lucianotavernard/order-svc/internal/dal/interfaces/iauditrepo"
	"github.com/lucianotavernard/order-svc/internal/dal/interfaces/icustomerrepo"
	"github.com/lucianotavernard/order-svc/internal/dal/interfaces/iorderstore"
	"github.com/lucianotavernard/order-svc/internal/dal/interfaces/ioutboxrepo"
	"github.com/lucianotavernard/order-svc/internal/dal/interfaces/iproductrepo"
	"github.com/lucianotavernard/order-svc/internal/dal/postgres"
	"github.com/lucianotavernard/order-svc/internal/dal/rabbitmq"
	"github.com/lucianotavernard/order-svc/internal/dal/repositories/audit"
	customermemory "github.com/lucianotavernard/order-svc/internal/dal/repositories/customer/memory"
	customerpg "github.com/lucianotavernard/order-svc/internal/dal/repositories/customer/postgres"
	ordermemory "github.com/lucianotavernard/order-svc/internal/dal/repositories/order/memory"
	orderpg "github.com/lucianotavernard/order-svc/internal/dal/repositories/order/postgres"
	outboxpg "github.com/lucianotavernard/order-svc/internal/dal/repositories/outbox/postgres"
	productmemory "github.com/lucianotavernard/order-svc/internal/dal/repositories/product/memory"
	productpg "github.com/lucianotavernard/order-svc/internal/dal/repositories/product/postgres"
	"github.com/lucianotavernard/order-svc/internal/otel"
	"github.com/lucianotavernard/order-svc/internal/service/services/customersvc"
	"github.com/lucianotavernard/order-svc/internal/service/services/ordersvc"
	"github.com/lucianotavernard/order-svc/internal/service/services/productsvc"
	httptransport "github.com/lucianotavernard/order-svc/internal/transport/http"
	outboxworker "github.com/lucianotavernard/order-svc/internal/worker/outbox"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	outboxWorker   *outboxworker.Worker
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	var (
		customerRepo icustomerrepo.ICustomerRepository
		productRepo  iproductrepo.IProductRepository
		orderStore   iorderstore.IOrderStore
		outboxRepo   ioutboxrepo.IOutboxRepository
		auditRepo    iauditrepo.IAuditRepository

		postgresClient *postgres.Client
		rabbitClient   *rabbitmq.Client
		worker         *outboxworker.Worker
	)

	switch viper.GetString("storage.driver") {
	case "memory":
		products := productmemory.NewMemoryProductRepository()
		customerRepo = customermemory.NewMemoryCustomerRepository()
		productRepo = products
		orderStore = ordermemory.NewMemoryOrderStore(products)
	default:
		postgresClient = postgres.MustNewClient()
		customerRepo = customerpg.NewPostgresCustomerRepository(postgresClient.Pool())
		productRepo = productpg.NewPostgresProductRepository(postgresClient.Pool())
		orderStore = orderpg.NewPostgresOrderStore(postgresClient)
		outboxRepo = outboxpg.NewOutboxRepository(postgresClient.Pool())
	}

	if viper.GetBool("rabbitmq.enabled") {
		rabbitClient = rabbitmq.MustNewClient()
		auditRepo = audit.NewAuditRabbitMQRepository(rabbitClient)
		if outboxRepo != nil {
			worker = outboxworker.NewWorker(outboxRepo, rabbitClient.Channel())
		}
	}

	var otelController *otel.OtelController
	if viper.GetBool("jaeger.enabled") {
		otelController = otel.MustInitOtel()
	}

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithCustomerRepository(customerRepo),
		ordersvc.WithProductRepository(productRepo),
		ordersvc.WithOrderStore(orderStore),
		ordersvc.WithAuditRepository(auditRepo),
		ordersvc.WithOutboxRepository(outboxRepo),
	)
	customerSvc := customersvc.MustNewCustomerService(
		customersvc.WithCustomerRepository(customerRepo),
	)
	productSvc := productsvc.MustNewProductService(
		productsvc.WithProductRepository(productRepo),
	)

	transport := httptransport.NewHTTPTransport(orderSvc, customerSvc, productSvc)
	transport.RegisterRoutes()

	return &App{
		transport:      transport,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		outboxWorker:   worker,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	var g errgroup.Group

	g.Go(func() error {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)

			return err
		}

		return nil
	})

	if a.outboxWorker != nil {
		g.Go(func() error {
			a.outboxWorker.Start(workerCtx)

			return nil
		})
	}

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()
	if err := g.Wait(); err != nil {
		slog.Error("Background task error", "error", err)
	}

	if a.rabbitClient != nil {
		if err := a.rabbitClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		} else {
			slog.Info("RabbitMQ connection closed gracefully")
		}
	}

	if a.postgresClient != nil {
		a.postgresClient.Close()
		slog.Info("Database connection closed gracefully")
	}

	if a.otelController != nil {
		if err := a.otelController.Shutdown(); err != nil {
			slog.Error("Trace provider shutdown error", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
}
