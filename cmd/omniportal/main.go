package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Omniportal2025/omniportal-sub001/internal/core/services"
	"github.com/Omniportal2025/omniportal-sub001/internal/handlers"
	"github.com/Omniportal2025/omniportal-sub001/internal/middleware"
	"github.com/Omniportal2025/omniportal-sub001/internal/platform/config"
	"github.com/Omniportal2025/omniportal-sub001/internal/platform/metrics"
	"github.com/Omniportal2025/omniportal-sub001/internal/repositories/database/pgsql"
	"github.com/Omniportal2025/omniportal-sub001/internal/repositories/storage/receiptfs"
	"github.com/Omniportal2025/omniportal-sub001/internal/utils"
	"github.com/Omniportal2025/omniportal-sub001/pkg/database"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	logger.Info("Running database migrations...", slog.String("path", cfg.MigrationsPath))
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Database migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	receipts, err := receiptfs.NewOS(cfg.ReceiptStorageRoot)
	if err != nil {
		logger.Error("Failed to initialize receipt storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	appMetrics := metrics.New(nil)
	observers := services.Observers{
		Payment:     []services.PaymentObserver{appMetrics, posthogClient},
		Sale:        []services.SaleObserver{appMetrics, posthogClient},
		Aggregation: []services.AggregationObserver{appMetrics},
	}

	repos := pgsql.NewRepositoryProvider(dbPool, receipts)
	serviceContainer := services.NewServiceContainer(cfg, repos, observers)

	uploadLimiter, err := middleware.NewMemoryLimiter(cfg.UploadRateLimit)
	if err != nil {
		logger.Error("Invalid upload rate limit", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxReceiptBytes + 1<<20

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.RouteDeps{
		UploadLimiter: uploadLimiter,
		Posthog:       posthogClient,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}
}
