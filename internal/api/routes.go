package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"oppzResume/internal/ai"
	"oppzResume/internal/api/middleware"
	"oppzResume/internal/auth"
	"oppzResume/internal/catalog"
	"oppzResume/internal/config"
	"oppzResume/internal/storage"
)

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	asynqClient *asynq.Client,
	authService *auth.AuthService,
	redisClient *redis.Client,
	logger *slog.Logger,
	storageClient *storage.Client,
	aiClient *ai.Client,
	templateCatalog *catalog.Catalog,
) {
	resumeHandler := NewResumeHandler(db, asynqClient, storageClient, cfg.API.MaxResumes)
	templateHandler := NewTemplateHandler(templateCatalog)
	enhanceHandler := NewEnhanceHandler(aiClient)
	suggestionsHandler := NewSuggestionsHandler(db, asynqClient, storageClient, redisClient, cfg.Clamd.Addr)
	authHandler := NewAuthHandler(
		db,
		authService,
		redisClient,
		logger,
		cfg.Auth.LoginRatePerHour,
		cfg.Auth.LoginLockThreshold,
		time.Duration(cfg.Auth.LoginLockTTLSecs)*time.Second,
		cfg.Auth.CookieDomain,
	)
	wsHandler := NewWsHandler(redisClient, authService, logger, cfg.API.AllowedOrigins)
	authMiddleware := middleware.AuthMiddleware(authService)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}

		templateGroup := v1.Group("/templates")
		{
			templateGroup.GET("", templateHandler.ListTemplates)
			templateGroup.GET("/search/:query", templateHandler.Search)
			templateGroup.GET("/popular", templateHandler.Popular)
			templateGroup.GET("/new", templateHandler.Newest)
			templateGroup.GET("/category/:category", templateHandler.ListByCategory)
			templateGroup.GET("/:id", templateHandler.GetTemplate)
			templateGroup.GET("/:id/preview", templateHandler.Preview)
			templateGroup.GET("/:id/download", templateHandler.Download)
		}

		resumeGroup := v1.Group("/resume")
		resumeGroup.Use(authMiddleware)
		{
			resumeGroup.POST("", resumeHandler.CreateResume)
			resumeGroup.GET("", resumeHandler.ListResumes)
			resumeGroup.GET("/:id", resumeHandler.GetResume)
			resumeGroup.PUT("/:id", resumeHandler.UpdateResume)
			resumeGroup.PATCH("/:id/customization", resumeHandler.PatchCustomization)
			resumeGroup.DELETE("/:id", resumeHandler.DeleteResume)
			resumeGroup.GET("/:id/render", resumeHandler.RenderResume)
			resumeGroup.GET("/:id/download", resumeHandler.DownloadResume)
			resumeGroup.GET("/:id/download-link", resumeHandler.GetDownloadLink)
		}

		aiGroup := v1.Group("/ai")
		aiGroup.Use(authMiddleware)
		{
			aiGroup.POST("/enhance-content", enhanceHandler.EnhanceContent)
			aiGroup.POST("/suggestions", suggestionsHandler.SubmitSuggestions)
			aiGroup.GET("/suggestions/:id", suggestionsHandler.GetSuggestionRun)
		}
	}
}
