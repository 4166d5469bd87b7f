package main

import (
	"context"
	"net/http"
	"os"

	"github.com/balasre/pharmacare-backend/api/routes"
	"github.com/balasre/pharmacare-backend/internal/addresses"
	"github.com/balasre/pharmacare-backend/internal/auth"
	"github.com/balasre/pharmacare-backend/internal/orders"
	"github.com/balasre/pharmacare-backend/internal/prescriptions"
	"github.com/balasre/pharmacare-backend/internal/products"
	"github.com/balasre/pharmacare-backend/internal/users"
	"github.com/balasre/pharmacare-backend/pkg/auth/session"
	"github.com/balasre/pharmacare-backend/pkg/config"
	"github.com/balasre/pharmacare-backend/pkg/db"
	"github.com/balasre/pharmacare-backend/pkg/logger"
	"github.com/balasre/pharmacare-backend/pkg/metrics"
	"github.com/balasre/pharmacare-backend/pkg/migrate"
	"github.com/balasre/pharmacare-backend/pkg/redis"
	"github.com/balasre/pharmacare-backend/pkg/storage/local"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
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

	fileStore, err := local.NewStore(cfg.Prescriptions.StorageDir)
	if err != nil {
		logg.Error(context.Background(), "failed to prepare prescription storage", err)
		os.Exit(1)
	}

	conn := dbClient.DB()
	usersRepo := users.NewRepository(conn)
	addressesRepo := addresses.NewRepository(conn)
	productsRepo := products.NewRepository(conn)
	prescriptionsRepo := prescriptions.NewRepository(conn)
	ordersRepo := orders.NewRepository(conn)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		AdminRepo:      auth.NewAdminRepository(conn),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	productsService, err := products.NewService(productsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}

	prescriptionsService, err := prescriptions.NewService(prescriptionsRepo, fileStore, cfg.Prescriptions, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create prescriptions service", err)
		os.Exit(1)
	}

	orderMetrics := metrics.NewOrderMetrics(prometheus.DefaultRegisterer)

	ordersService, err := orders.NewService(
		ordersRepo,
		dbClient,
		usersRepo,
		addressesRepo,
		productsRepo,
		prescriptionsService,
		cfg.Delivery,
		orderMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

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
			Config:         cfg,
			Logger:         logg,
			DBPinger:       dbClient,
			Redis:          redisClient,
			SessionManager: sessionManager,
			AuthService:    authService,
			OrdersService:  ordersService,
			Products:       productsService,
			Prescriptions:  prescriptionsService,
			Addresses:      addressesRepo,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
