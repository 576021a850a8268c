package http

import (
	"strings"
	"time"

	"github.com/Miraines/MoonyAndStarry/qr-service/internal/adapters/transport/http/middleware"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/infra/config"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/infra/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires every route. QR code routes sit behind the bearer guard;
// the token endpoint, probes, downloads and /metrics do not.
func NewRouter(cfg *config.Config, h *Handler, guard middleware.Verifier, m *metrics.Metrics, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(cors.New(corsConfig(cfg)))

	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	if !strings.Contains(cfg.QRDirectory, "://") {
		router.Static("/"+cfg.DownloadFolder, cfg.QRDirectory)
	}

	api := router.Group(config.APIPrefix)
	api.POST("/auth/token", h.Token)

	qr := api.Group("/qr-codes", middleware.RequireBearer(guard, log, m.AuthRejects))
	qr.POST("/", h.CreateQRCode)
	qr.GET("/", h.ListQRCodes)
	qr.DELETE("/:filename", h.DeleteQRCode)

	return router
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = cfg.AllowedOrigins
	if len(c.AllowOrigins) == 0 {
		c.AllowAllOrigins = true
	}
	return c
}
