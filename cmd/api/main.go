package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/student-dashboard-api/internal/config"
	"github.com/noah-isme/student-dashboard-api/internal/database"
	"github.com/noah-isme/student-dashboard-api/internal/handler"
	"github.com/noah-isme/student-dashboard-api/internal/middleware"
	"github.com/noah-isme/student-dashboard-api/internal/models"
	"github.com/noah-isme/student-dashboard-api/internal/repository"
	"github.com/noah-isme/student-dashboard-api/internal/router"
	"github.com/noah-isme/student-dashboard-api/internal/scheduler"
	"github.com/noah-isme/student-dashboard-api/internal/service"
	"github.com/noah-isme/student-dashboard-api/internal/utils"
	cloud "github.com/noah-isme/student-dashboard-api/pkg/cloudinary"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && level != zerolog.NoLevel {
		logger = logger.Level(level)
	}
	logger = logger.With().Str("service", cfg.AppName).Str("env", cfg.AppEnv).Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	redisClient, err := database.ConnectRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if redisClient == nil {
		logger.Warn().Msg("redis url not configured, dashboard cache disabled")
	} else {
		defer redisClient.Close()
	}

	natsConn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to nats")
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	avatars := cloud.Passthrough(models.DefaultAvatarURL)
	if cfg.CloudinaryEnabled() {
		avatars, err = cloud.New(cloud.Config{
			CloudName:      cfg.CloudinaryCloudName,
			APIKey:         cfg.CloudinaryAPIKey,
			APISecret:      cfg.CloudinaryAPISecret,
			Transformation: cfg.CloudinaryAvatarTransform,
			FallbackURL:    models.DefaultAvatarURL,
		}, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create cloudinary client")
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	repos := service.NewDashboardRepositories(db)
	cache := service.NewDashboardCache(redisClient, cfg.DashboardCacheTTL, logger)
	notificationService := service.NewNotificationService(repository.NewNotificationRepository(db), cache, redisClient, cfg.EventsChannel, natsConn, logger)
	dashboardService := service.NewDashboardService(repos, notificationService, avatars, cache, cfg.Location, logger)
	scoreService := service.NewScoreService(repos.Students, repos.Grades, cache, logger)

	jobs, err := scheduler.New(cfg.ScoreRefreshCron, scoreService, 0, cfg.Location, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create scheduler")
	}
	jobs.Start()

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
			return utils.SendError(c, status, err.Error())
		},
	})

	middleware.Register(app, middleware.Config{
		Logger:    &logger,
		AccessLog: cfg.AppEnv == "development",
	})
	router.Register(app, cfg, router.Dependencies{
		DashboardHandler:    handler.NewDashboardHandler(dashboardService, validate, cfg.Location, logger),
		NotificationHandler: handler.NewNotificationHandler(notificationService, dashboardService, logger),
		HealthProbes:        healthProbes(db, redisClient),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, jobs, logger)
}

func healthProbes(db *gorm.DB, redisClient *redis.Client) map[string]handler.Pinger {
	probes := map[string]handler.Pinger{
		"database": handler.PingerFunc(func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}
	if redisClient != nil {
		probes["redis"] = handler.PingerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}
	return probes
}

func waitForShutdown(app *fiber.App, jobs *scheduler.Scheduler, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	jobs.Stop(ctx)

	logger.Info().Msg("server stopped")
}
