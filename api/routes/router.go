package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tilevista/tilevista-backend/api/controllers"
	analyticscontrollers "github.com/tilevista/tilevista-backend/api/controllers/analytics"
	"github.com/tilevista/tilevista-backend/api/middleware"
	"github.com/tilevista/tilevista-backend/internal/analytics"
	"github.com/tilevista/tilevista-backend/internal/auth"
	"github.com/tilevista/tilevista-backend/internal/favorites"
	"github.com/tilevista/tilevista-backend/internal/media"
	"github.com/tilevista/tilevista-backend/internal/qr"
	"github.com/tilevista/tilevista-backend/internal/sellers"
	"github.com/tilevista/tilevista-backend/internal/tiles"
	"github.com/tilevista/tilevista-backend/internal/visualizer"
	"github.com/tilevista/tilevista-backend/pkg/auth/session"
	"github.com/tilevista/tilevista-backend/pkg/bigquery"
	"github.com/tilevista/tilevista-backend/pkg/config"
	"github.com/tilevista/tilevista-backend/pkg/db"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	"github.com/tilevista/tilevista-backend/pkg/logger"
	"github.com/tilevista/tilevista-backend/pkg/redis"
	"github.com/tilevista/tilevista-backend/pkg/storage/gcs"
)

// Deps carries everything the router wires into handlers. cmd/api builds one
// after bootstrapping the shared clients and services.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	DB       db.Pinger
	Redis    *redis.Client
	GCS      gcs.Pinger
	BigQuery bigquery.Pinger

	Sessions session.AccessSessionChecker

	Auth       auth.Service
	Register   auth.RegisterService
	Sellers    sellers.Service
	Tiles      tiles.Service
	Favorites  favorites.Service
	Visualizer visualizer.Service
	QR         *qr.Generator
	Media      media.Service
	Analytics  analytics.Service
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

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis, deps.GCS, deps.BigQuery))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
		r.Post("/validate", controllers.PublicValidate(logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(middleware.Idempotency(deps.Redis, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.RegisterCustomer(deps.Register, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register-seller", controllers.RegisterSeller(deps.Register, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).Post("/logout", controllers.AuthLogout(deps.Auth, logg))
	})

	// Customer portal. Open to guests; a bearer token still resolves so
	// favorites and analytics see the principal.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.Portal(enums.PortalCustomer, logg))

		r.Get("/showrooms/{slug}", controllers.ShowroomBySlug(deps.Sellers, logg))
		r.Get("/showrooms/{showroomID}/tiles", controllers.PublicTiles(deps.Tiles, logg))
		r.Get("/tiles/{tileID}", controllers.TileDetail(deps.Tiles, logg))
		r.Post("/qr/scan", controllers.ScanQR(deps.Tiles, logg))

		r.Route("/visualizer/session", func(r chi.Router) {
			r.Get("/", controllers.VisualizerState(deps.Visualizer, logg))
			r.Post("/room", controllers.VisualizerSelectRoom(deps.Visualizer, logg))
			r.Post("/apply", controllers.VisualizerApply(deps.Visualizer, logg))
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Use(middleware.Idempotency(deps.Redis, logg))
			r.Get("/", controllers.FavoritesList(deps.Favorites, logg))
			r.Post("/toggle", controllers.FavoriteToggle(deps.Favorites, logg))
		})
	})

	r.Route("/api/v1/seller", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.Portal(enums.PortalSeller, logg))
		r.Use(middleware.RequireRole(logg, enums.UserRoleSeller))
		r.Use(middleware.ShowroomContext(logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Get("/ping", controllers.SellerPing())

		r.Route("/tiles", func(r chi.Router) {
			r.Get("/", controllers.SellerTiles(deps.Tiles, deps.Sellers, logg))
			r.Post("/", controllers.SellerTileCreate(deps.Tiles, deps.Sellers, logg))
			r.Post("/import", controllers.SellerTileImport(deps.Tiles, deps.Sellers, logg))
			r.Put("/{tileID}", controllers.SellerTileUpdate(deps.Tiles, deps.Sellers, logg))
			r.Delete("/{tileID}", controllers.SellerTileDelete(deps.Tiles, deps.Sellers, logg))
			r.Get("/{tileID}/qr", controllers.TileQRCode(deps.QR, deps.Tiles, deps.Sellers, logg))
		})
		r.Get("/qr/bundle", controllers.QRBundle(deps.QR, deps.Tiles, deps.Sellers, logg))

		r.Get("/profile", controllers.SellerProfile(deps.Sellers, logg))
		r.Put("/profile", controllers.SellerProfileUpdate(deps.Sellers, logg))
		r.Put("/showroom", controllers.SellerShowroomUpdate(deps.Sellers, logg))

		r.Route("/media", func(r chi.Router) {
			r.Get("/", controllers.MediaList(deps.Media, logg))
			r.Post("/presign", controllers.MediaPresign(deps.Media, deps.Sellers, logg))
			r.Post("/{mediaID}/confirm", controllers.MediaConfirm(deps.Media, logg))
		})

		r.Get("/analytics/summary", analyticscontrollers.ShowroomSummary(deps.Analytics, logg))
	})

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.Portal(enums.PortalAdmin, logg))
		r.Use(middleware.RequireRole(logg, enums.UserRoleAdmin))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Get("/ping", controllers.AdminPing())

		r.Route("/sellers", func(r chi.Router) {
			r.Get("/", controllers.AdminSellers(deps.Sellers, logg))
			r.Post("/{sellerID}/suspend", controllers.AdminSellerSuspend(deps.Sellers, logg))
			r.Post("/{sellerID}/reactivate", controllers.AdminSellerReactivate(deps.Sellers, logg))
		})

		r.Get("/analytics/aggregate", analyticscontrollers.AdminAggregate(deps.Analytics, logg))
	})

	return r
}
