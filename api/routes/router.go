package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/balasre/pharmacare-backend/api/controllers"
	"github.com/balasre/pharmacare-backend/api/middleware"
	"github.com/balasre/pharmacare-backend/internal/addresses"
	"github.com/balasre/pharmacare-backend/internal/auth"
	"github.com/balasre/pharmacare-backend/internal/orders"
	"github.com/balasre/pharmacare-backend/internal/prescriptions"
	"github.com/balasre/pharmacare-backend/internal/products"
	"github.com/balasre/pharmacare-backend/pkg/auth/session"
	"github.com/balasre/pharmacare-backend/pkg/config"
	"github.com/balasre/pharmacare-backend/pkg/enums"
	"github.com/balasre/pharmacare-backend/pkg/logger"
	"github.com/balasre/pharmacare-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DBPinger       controllers.Pinger
	Redis          *redis.Client
	SessionManager sessionManager
	AuthService    auth.Service
	OrdersService  orders.Service
	Products       products.Service
	Prescriptions  prescriptions.Service
	Addresses      *addresses.Repository
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewLoginRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DBPinger,
			"redis":    deps.Redis,
		}))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.LoginRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
	})

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		r.With(middleware.LoginRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AdminAuthLogin(deps.AuthService, logg))
	})

	r.Get("/api/v1/products", controllers.ListProducts(deps.Products, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.PlaceOrder(deps.OrdersService, logg))
			r.Get("/", controllers.ListOrders(deps.OrdersService, logg))
			r.Get("/{orderID}", controllers.OrderDetail(deps.OrdersService, logg))
		})

		r.Route("/prescriptions", func(r chi.Router) {
			r.Post("/", controllers.UploadPrescription(deps.Prescriptions, logg))
			r.Get("/", controllers.ListPrescriptions(deps.Prescriptions, logg))
			r.Get("/archives", controllers.ListPrescriptionArchives(deps.Prescriptions, logg))
			r.Get("/{prescriptionID}/download", controllers.DownloadPrescription(deps.Prescriptions, logg))
		})

		r.Get("/addresses", controllers.ListAddresses(deps.Addresses, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		r.Use(middleware.RequireRole(enums.ActorRoleAdmin.String(), logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(deps.OrdersService, logg))
			r.Post("/{orderID}/status", controllers.AdminUpdateOrderStatus(deps.OrdersService, logg))
			r.Post("/{orderID}/link-prescription", controllers.AdminLinkPrescription(deps.OrdersService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminListProducts(deps.Products, logg))
			r.Post("/", controllers.AdminCreateProduct(deps.Products, logg))
			r.Patch("/{productID}", controllers.AdminUpdateProduct(deps.Products, logg))
			r.Delete("/{productID}", controllers.AdminDeleteProduct(deps.Products, logg))
		})

		r.Route("/prescriptions", func(r chi.Router) {
			r.Get("/", controllers.AdminListPrescriptions(deps.Prescriptions, logg))
			r.Get("/search", controllers.AdminSearchPrescriptions(deps.Prescriptions, logg))
			r.Post("/{prescriptionID}/status", controllers.AdminUpdatePrescriptionStatus(deps.Prescriptions, logg))
		})
	})

	return r
}
