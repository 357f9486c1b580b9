package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"

	"github.com/lucianotavernard/order-svc/internal/service/models/customer"
	"github.com/lucianotavernard/order-svc/internal/service/models/order"
	"github.com/lucianotavernard/order-svc/internal/service/models/orderitem"
	"github.com/lucianotavernard/order-svc/internal/service/models/product"
	"github.com/lucianotavernard/order-svc/internal/service/services/ordersvc"
	"github.com/lucianotavernard/order-svc/internal/service/services/productsvc"
	createcustomer "github.com/lucianotavernard/order-svc/internal/transport/http/create_customer"
	createproduct "github.com/lucianotavernard/order-svc/internal/transport/http/create_product"
	listcustomers "github.com/lucianotavernard/order-svc/internal/transport/http/list_customers"
	listorders "github.com/lucianotavernard/order-svc/internal/transport/http/list_orders"
	listproducts "github.com/lucianotavernard/order-svc/internal/transport/http/list_products"
	placeorder "github.com/lucianotavernard/order-svc/internal/transport/http/place_order"
	"github.com/lucianotavernard/order-svc/pkg/http/middleware/trace"
	"github.com/lucianotavernard/order-svc/pkg/logger"
)

type orderService interface {
	PlaceOrder(ctx context.Context, model ordersvc.PlaceOrderModel) (*order.Order, error)
	GetOrders(ctx context.Context, model orderitem.QueryOrderItemsModel) ([]order.Order, error)
}

type customerService interface {
	CreateCustomer(ctx context.Context, name, email string) (*customer.Customer, error)
	GetCustomers(ctx context.Context) ([]customer.Customer, error)
}

type productService interface {
	CreateProduct(ctx context.Context, model productsvc.CreateProductModel) (*product.Product, error)
	GetProducts(ctx context.Context) ([]product.Product, error)
}

type HTTPTransport struct {
	server      *http.Server
	router      *chi.Mux
	orderSvc    orderService
	customerSvc customerService
	productSvc  productService
}

func NewHTTPTransport(
	orderSvc orderService,
	customerSvc customerService,
	productSvc productService,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:      server,
		router:      router,
		orderSvc:    orderSvc,
		customerSvc: customerSvc,
		productSvc:  productSvc,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Post("/customers", h.createCustomer)
		r.Get("/customers", h.listCustomers)
		r.Post("/products", h.createProduct)
		r.Get("/products", h.listProducts)
		r.Post("/orders", h.placeOrder)
		r.Get("/orders", h.listOrders)
	})
}

func (h *HTTPTransport) placeOrder(w http.ResponseWriter, r *http.Request) {
	placeorder.PlaceOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orderSvc)
}

func (h *HTTPTransport) createCustomer(w http.ResponseWriter, r *http.Request) {
	createcustomer.CreateCustomer(w, r, h.customerSvc)
}

func (h *HTTPTransport) listCustomers(w http.ResponseWriter, r *http.Request) {
	listcustomers.ListCustomers(w, r, h.customerSvc)
}

func (h *HTTPTransport) createProduct(w http.ResponseWriter, r *http.Request) {
	createproduct.CreateProduct(w, r, h.productSvc)
}

func (h *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) {
	listproducts.ListProducts(w, r, h.productSvc)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(trace.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
