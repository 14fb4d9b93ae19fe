package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"oppzResume/internal/api/middleware"
	"oppzResume/internal/config"
	"oppzResume/internal/metrics"
)

// NewRouter 构建 Gin 路由引擎，挂载通用中间件与健康检查、指标端点。
func NewRouter(cfg *config.Config, logger *slog.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.CorrelationIDMiddleware(),
		middleware.SlogLoggerMiddleware(logger),
		metrics.GinMiddleware(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 指标端点仅供内部抓取，生产环境用内部密钥保护。
	metricsHandlers := []gin.HandlerFunc{gin.WrapH(promhttp.Handler())}
	if cfg.API.InternalSecret != "" {
		metricsHandlers = append([]gin.HandlerFunc{middleware.InternalSecretMiddleware(cfg.API.InternalSecret)}, metricsHandlers...)
	}
	router.GET("/metrics", metricsHandlers...)

	return router
}
