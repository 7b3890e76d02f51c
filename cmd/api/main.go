package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/tilevista/tilevista-backend/api/routes"
	"github.com/tilevista/tilevista-backend/internal/analytics"
	"github.com/tilevista/tilevista-backend/internal/analytics/recorder"
	"github.com/tilevista/tilevista-backend/internal/auth"
	"github.com/tilevista/tilevista-backend/internal/favorites"
	"github.com/tilevista/tilevista-backend/internal/media"
	"github.com/tilevista/tilevista-backend/internal/qr"
	"github.com/tilevista/tilevista-backend/internal/sellers"
	"github.com/tilevista/tilevista-backend/internal/tiles"
	"github.com/tilevista/tilevista-backend/internal/users"
	"github.com/tilevista/tilevista-backend/internal/visualizer"
	"github.com/tilevista/tilevista-backend/pkg/auth/session"
	"github.com/tilevista/tilevista-backend/pkg/bigquery"
	"github.com/tilevista/tilevista-backend/pkg/config"
	"github.com/tilevista/tilevista-backend/pkg/db"
	"github.com/tilevista/tilevista-backend/pkg/logger"
	"github.com/tilevista/tilevista-backend/pkg/migrate"
	"github.com/tilevista/tilevista-backend/pkg/pubsub"
	"github.com/tilevista/tilevista-backend/pkg/redis"
	"github.com/tilevista/tilevista-backend/pkg/storage/gcs"
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

	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	gcsClient, err := gcs.NewClient(ctx, cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap gcs", err)
		os.Exit(1)
	}

	bqClient, err := bigquery.NewClient(ctx, cfg.GCP, cfg.BigQuery, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap bigquery", err)
		os.Exit(1)
	}

	pubsubClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap pubsub", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)
	sellerRepo := sellers.NewRepository(gormDB)
	showroomRepo := sellers.NewShowroomRepository(gormDB)
	tileRepo := tiles.NewRepository(gormDB)
	favoriteRepo := favorites.NewRepository(gormDB)
	mediaRepo := media.NewRepository(gormDB)

	eventRecorder, err := recorder.NewRecorder(pubsubClient.AnalyticsPublisher(), logg)
	if err != nil {
		logg.Error(ctx, "failed to create analytics recorder", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SellerRepo:     sellerRepo,
		ShowroomRepo:   showroomRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(ctx, "failed to create register service", err)
		os.Exit(1)
	}

	sellerService, err := sellers.NewService(sellers.ServiceParams{
		Sellers:   sellerRepo,
		Showrooms: showroomRepo,
	})
	if err != nil {
		logg.Error(ctx, "failed to create seller service", err)
		os.Exit(1)
	}

	tileService, err := tiles.NewService(tiles.ServiceParams{
		Tiles:     tileRepo,
		Sellers:   sellerRepo,
		Showrooms: showroomRepo,
		Recorder:  eventRecorder,
	})
	if err != nil {
		logg.Error(ctx, "failed to create tile service", err)
		os.Exit(1)
	}

	favoriteService, err := favorites.NewService(favorites.ServiceParams{
		Favorites: favoriteRepo,
		Tiles:     tileRepo,
	})
	if err != nil {
		logg.Error(ctx, "failed to create favorites service", err)
		os.Exit(1)
	}

	sessionStore, err := visualizer.NewRedisStore(redisClient, 0)
	if err != nil {
		logg.Error(ctx, "failed to create visualizer session store", err)
		os.Exit(1)
	}

	visualizerService, err := visualizer.NewService(visualizer.ServiceParams{
		Store:    sessionStore,
		Tiles:    tileRepo,
		Recorder: eventRecorder,
	})
	if err != nil {
		logg.Error(ctx, "failed to create visualizer service", err)
		os.Exit(1)
	}

	qrGenerator, err := qr.NewGenerator(cfg.QR)
	if err != nil {
		logg.Error(ctx, "failed to create qr generator", err)
		os.Exit(1)
	}

	mediaService, err := media.NewService(media.ServiceParams{
		Repo:        mediaRepo,
		GCS:         gcsClient,
		Bucket:      cfg.GCS.BucketName,
		UploadTTL:   cfg.GCS.UploadURLExpiry,
		DownloadTTL: cfg.GCS.DownloadURLExpiry,
	})
	if err != nil {
		logg.Error(ctx, "failed to create media service", err)
		os.Exit(1)
	}

	analyticsService, err := analytics.NewService(bqClient, cfg.GCP.ProjectID, cfg.BigQuery.Dataset, cfg.BigQuery.TileEventsTable)
	if err != nil {
		logg.Error(ctx, "failed to create analytics service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			DB:         dbClient,
			Redis:      redisClient,
			GCS:        gcsClient,
			BigQuery:   bqClient,
			Sessions:   sessionManager,
			Auth:       authService,
			Register:   registerService,
			Sellers:    sellerService,
			Tiles:      tileService,
			Favorites:  favoriteService,
			Visualizer: visualizerService,
			QR:         qrGenerator,
			Media:      mediaService,
			Analytics:  analyticsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(logCtx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
