package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"techguide/backend/config"
	"techguide/backend/middleware"
	"techguide/backend/progress"
	"techguide/backend/repository"
	"techguide/backend/routes"
	"techguide/backend/services"
	"techguide/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}

	// Initialize logger
	logger := utils.InitLogger(utils.LoggerConfig{
		Format: cfg.LogFormat,
		Debug:  cfg.IsDevelopment(),
	})

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		return err
	}
	if err := utils.Migrate(db); err != nil {
		return err
	}

	calc, err := progress.NewCalculator(cfg.Timezone)
	if err != nil {
		return err
	}

	var cache services.CatalogCache
	if cfg.RedisAddr != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		rdb, err := services.NewRedisClient(pingCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, catalog cache disabled")
		} else {
			defer rdb.Close()
			cache = services.NewRedisCatalogCache(rdb, cfg.CatalogCacheTTL)
		}
	}

	users := repository.NewUserRepository(db)
	records := repository.NewProgressRepository(db)
	catalog := services.NewCatalogService(repository.NewCatalogRepository(db), cache)
	svc := routes.Services{
		Accounts:   services.NewAccountService(users, cfg.JWTSecret, cfg.JWTTTL),
		Catalog:    catalog,
		Progress:   services.NewProgressService(catalog, records, users, calc),
		Instructor: services.NewInstructorService(catalog, records, users),
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "techguide",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RequestContext(logger, cfg.RequestTimeout))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, svc, cfg)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.ServerPort).Str("timezone", calc.Location().String()).Msg("server starting")
		errCh <- app.Listen(":" + cfg.ServerPort)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
