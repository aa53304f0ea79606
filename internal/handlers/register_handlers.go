package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/Omniportal2025/omniportal-sub001/internal/core/ports/services"
	"github.com/Omniportal2025/omniportal-sub001/internal/middleware"
	"github.com/Omniportal2025/omniportal-sub001/internal/platform/config"
	"github.com/Omniportal2025/omniportal-sub001/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
)

// RouteDeps carries the cross-cutting collaborators the routes need besides services.
type RouteDeps struct {
	UploadLimiter *limiter.Limiter // nil disables upload rate limiting
	Posthog       *utils.PosthogClientWrapper
	Metrics       http.Handler // nil serves the default Prometheus registry
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	metricsHandler := deps.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.GET("/metrics", gin.WrapH(metricsHandler))

	setupAPIV1Routes(r, cfg, services, deps)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
		middleware.PosthogMiddleware(deps.Posthog),
	)

	uploadLimit := func(c *gin.Context) { c.Next() }
	if deps.UploadLimiter != nil {
		uploadLimit = middleware.RateLimit(deps.UploadLimiter)
	}

	registerPaymentRoutes(v1, service.Payment, cfg.MaxReceiptBytes, uploadLimit)
	registerSaleRoutes(v1, service.Sale)
	registerCommissionRoutes(v1, service.Commission)
	registerBalanceRoutes(v1, service.Balance)
}
