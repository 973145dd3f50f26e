package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pawmart/pawmart-backend/api/controllers"
	"github.com/pawmart/pawmart-backend/api/middleware"
	authsvc "github.com/pawmart/pawmart-backend/internal/auth"
	cartsvc "github.com/pawmart/pawmart-backend/internal/cart"
	checkoutsvc "github.com/pawmart/pawmart-backend/internal/checkout"
	ordersvc "github.com/pawmart/pawmart-backend/internal/orders"
	productsvc "github.com/pawmart/pawmart-backend/internal/products"
	profilesvc "github.com/pawmart/pawmart-backend/internal/profiles"
	"github.com/pawmart/pawmart-backend/pkg/auth/session"
	"github.com/pawmart/pawmart-backend/pkg/config"
	"github.com/pawmart/pawmart-backend/pkg/logger"
	"github.com/pawmart/pawmart-backend/pkg/metrics"
)

// Deps collects everything the HTTP surface needs. Keeping it a struct
// saves callers from a two-screen constructor signature.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Database controllers.Pinger
	Cache    controllers.Pinger

	Sessions session.AccessSessionChecker

	AuthService     authsvc.Service
	ProductService  productsvc.Service
	CartService     cartsvc.Service
	CheckoutService checkoutsvc.Service
	ProfileService  profilesvc.Service
	OrderService    ordersvc.Service

	UserFunctions *controllers.UserFunctions

	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
}

// NewRouter assembles the full route tree.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	if d.HTTPMetrics != nil {
		r.Use(middleware.Metrics(d.HTTPMetrics))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.Database, d.Cache))
	})

	if d.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", d.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CORS())

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", controllers.AuthRegister(d.AuthService, logg))
			r.Post("/login", controllers.AuthLogin(d.AuthService, logg))
			r.With(middleware.Auth(cfg.JWT, d.Sessions, logg)).
				Post("/logout", controllers.AuthLogout(d.AuthService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(d.ProductService, logg))
			r.Get("/categories", controllers.ProductCategories(d.ProductService, logg))
			r.Get("/{productId}", controllers.ProductDetail(d.ProductService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(d.CartService, logg))
				r.Post("/items", controllers.CartAddItem(d.CartService, logg))
				r.Put("/items/{productId}", controllers.CartUpdateItem(d.CartService, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(d.CartService, logg))
				r.Delete("/", controllers.CartClear(d.CartService, logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/", controllers.CheckoutStart(d.CheckoutService, logg))
				r.Get("/", controllers.CheckoutSession(d.CheckoutService, logg))
				r.Post("/shipping", controllers.CheckoutShipping(d.CheckoutService, logg))
				r.Post("/confirm", controllers.CheckoutConfirm(d.CheckoutService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderList(d.OrderService, logg))
				r.Get("/{orderId}", controllers.OrderDetail(d.OrderService, logg))
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/me", controllers.ProfileFetch(d.ProfileService, logg))
				r.Put("/me", controllers.ProfileUpdate(d.ProfileService, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.CORS())
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
		r.Use(middleware.RequireRole("admin", logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateProduct(d.ProductService, logg))
			r.Patch("/{productId}", controllers.AdminUpdateProduct(d.ProductService, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(d.ProductService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(d.OrderService, logg))
			r.Patch("/{orderId}/status", controllers.AdminOrderUpdateStatus(d.OrderService, logg))
		})
	})

	if d.UserFunctions != nil {
		r.Route("/functions/v1", func(r chi.Router) {
			r.Use(middleware.FunctionsCORS())
			r.Post("/list-users", d.UserFunctions.ListUsers)
			r.Post("/get-user", d.UserFunctions.GetUser)
			r.Post("/update-user", d.UserFunctions.UpdateUser)
			r.Post("/delete-user", d.UserFunctions.DeleteUser)
		})
	}

	return r
}
