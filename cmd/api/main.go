package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pawmart/pawmart-backend/api/controllers"
	"github.com/pawmart/pawmart-backend/api/routes"
	authsvc "github.com/pawmart/pawmart-backend/internal/auth"
	cartsvc "github.com/pawmart/pawmart-backend/internal/cart"
	checkoutsvc "github.com/pawmart/pawmart-backend/internal/checkout"
	ordersvc "github.com/pawmart/pawmart-backend/internal/orders"
	productsvc "github.com/pawmart/pawmart-backend/internal/products"
	profilesvc "github.com/pawmart/pawmart-backend/internal/profiles"
	"github.com/pawmart/pawmart-backend/internal/useradmin"
	"github.com/pawmart/pawmart-backend/pkg/auth/session"
	"github.com/pawmart/pawmart-backend/pkg/config"
	"github.com/pawmart/pawmart-backend/pkg/db"
	"github.com/pawmart/pawmart-backend/pkg/logger"
	"github.com/pawmart/pawmart-backend/pkg/metrics"
	"github.com/pawmart/pawmart-backend/pkg/migrate"
	"github.com/pawmart/pawmart-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	productRepo := productsvc.NewRepository(gormDB)
	orderRepo := ordersvc.NewRepository(gormDB)
	profileRepo := profilesvc.NewRepository(gormDB)
	authRepo := authsvc.NewRepository(gormDB)
	useradminRepo := useradmin.NewRepository(gormDB)

	authService, err := authsvc.NewService(authRepo, profileRepo, sessionManager, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	productService, err := productsvc.NewService(productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartStore, err := cartsvc.NewRedisStore(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cartsvc.NewService(cartStore, productRepo, logg, cfg.Cart.SnapshotTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutStore, err := checkoutsvc.NewRedisSessionStore(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout session store", err)
		os.Exit(1)
	}
	checkoutService, err := checkoutsvc.NewService(
		checkoutStore,
		cartService,
		productRepo,
		orderRepo,
		profileRepo,
		checkoutsvc.NewMockProcessor(cfg.Checkout.PaymentLatency),
		logg,
		cfg.Checkout,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	profileService, err := profilesvc.NewService(profileRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}

	orderService, err := ordersvc.NewService(orderRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	useradminService, err := useradmin.NewService(useradminRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create user admin service", err)
		os.Exit(1)
	}
	userFunctions, err := controllers.NewUserFunctions(cfg.JWT, useradminRepo, useradminService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create user functions", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			Database:        dbClient,
			Cache:           redisClient,
			Sessions:        sessionManager,
			AuthService:     authService,
			ProductService:  productService,
			CartService:     cartService,
			CheckoutService: checkoutService,
			ProfileService:  profileService,
			OrderService:    orderService,
			UserFunctions:   userFunctions,
			HTTPMetrics:     httpMetrics,
			MetricsHandler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
