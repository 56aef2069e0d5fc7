package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/geloraapp/gelora/internal/adapters/geocoding"
	"github.com/geloraapp/gelora/internal/adapters/http"
	"github.com/geloraapp/gelora/internal/adapters/postgres"
	"github.com/geloraapp/gelora/internal/adapters/valkey"
	"github.com/geloraapp/gelora/internal/core/ports"
	"github.com/geloraapp/gelora/internal/core/usecases"
	"github.com/geloraapp/gelora/internal/pkg/config"
	"github.com/geloraapp/gelora/internal/pkg/logging"
	"github.com/geloraapp/gelora/internal/pkg/metrics"
	"github.com/geloraapp/gelora/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("gelora-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")
	apiLog := logging.New("gelora-api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			apiLog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns))
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Keep pool gauges fresh
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.UpdateDBPoolMetrics(db.Pool.Stat())
			}
		}
	}()

	// Cache
	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		apiLog.Warn("valkey unavailable, caching disabled", "error", err)
	} else {
		defer cache.Close()
		cacheSvc = cache
	}

	// Geocoding provider
	geocoder := geocoding.NewNominatim(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent, apiLog)

	// Repos
	courtRepo := postgres.NewCourtRepo(db)
	provinceRepo := postgres.NewProvinceRepo(db)
	bookmarkRepo := postgres.NewBookmarkRepo(db)
	blogRepo := postgres.NewBlogRepo(db)
	complaintRepo := postgres.NewComplaintRepo(db)
	gameRepo := postgres.NewGameRepo(db)

	// Use cases
	geocodeSvc := usecases.NewGeocodeService(geocoder, cacheSvc, apiLog)
	searchSvc := usecases.NewSearchService(courtRepo, bookmarkRepo, apiLog)
	courtSvc := usecases.NewCourtService(courtRepo)
	bookmarkSvc := usecases.NewBookmarkService(bookmarkRepo, courtRepo)
	provinceSvc := usecases.NewProvinceService(provinceRepo, cacheSvc)
	blogSvc := usecases.NewBlogService(blogRepo)
	complaintSvc := usecases.NewComplaintService(complaintRepo)
	gameSvc := usecases.NewGameService(gameRepo)

	deps := &http.Dependencies{
		Geocode:    geocodeSvc,
		Search:     searchSvc,
		Courts:     courtSvc,
		Bookmarks:  bookmarkSvc,
		Provinces:  provinceSvc,
		Blog:       blogSvc,
		Complaints: complaintSvc,
		Games:      gameSvc,
		DB:         db,
		Cache:      cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Gelora API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173, https://*.gelora.id",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, X-User-ID, X-User-Role",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		apiLog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	apiLog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		apiLog.Error("forced shutdown", "error", err)
	}

	apiLog.Info("server stopped")
}
