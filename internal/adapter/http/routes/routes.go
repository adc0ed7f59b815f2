package routes

import (
	"net/http"

	"memoapp/internal/adapter/http/handler"
	. "memoapp/pkg/auth"
	. "memoapp/pkg/config"
	"memoapp/pkg/middlewares"
	"memoapp/pkg/response"
	. "memoapp/pkg/tracing"

	"github.com/gin-gonic/gin"
)

type HandlersConfig struct {
	AuthHandler *handler.AuthHandler
	MemoHandler *handler.MemoHandler
}

func SetupRouter(handlers HandlersConfig, metrics *AppMetrics, logger *LokiLogger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, logger, GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *AppMetrics, logger *LokiLogger, config *AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	middlewares.SetupGinMiddlewareWithConfig(router, "memoapp", metrics, logger, config)

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	setupHealthRoute(router)

	if handlers.AuthHandler != nil {
		setupPublicRoutes(router, handlers.AuthHandler)
	}

	var cacheMiddleware gin.HandlerFunc

	if config.CacheEnabled {
		responseCache := response.NewResponseCache(logger.Logger.Logger, metrics)

		for path, cacheConfig := range config.CacheConfigs {
			responseCache.SetConfig(path, cacheConfig)
		}

		cacheMiddleware = responseCache.CacheMiddleware()
	}

	setupProtectedRoutes(router, handlers, cacheMiddleware)

	return router
}

func setupHealthRoute(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func setupPublicRoutes(router *gin.Engine, authHandler *handler.AuthHandler) {
	public := router.Group("/api/auth")
	{
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)
		public.POST("/refresh", authHandler.Refresh)
	}
}

// setupProtectedRoutes mounts everything behind JWT auth. The response cache
// runs after the JWT middleware so entries are always keyed by a verified
// user id.
func setupProtectedRoutes(router *gin.Engine, handlers HandlersConfig, cacheMiddleware gin.HandlerFunc) {
	protected := router.Group("/api")
	protected.Use(GinJwtMiddleware())

	if cacheMiddleware != nil {
		protected.Use(cacheMiddleware)
	}
	{
		if handlers.MemoHandler != nil {
			memoHandler := handlers.MemoHandler

			protected.GET("/memos", memoHandler.ListMemos)
			protected.POST("/memos", memoHandler.CreateMemo)
			protected.GET("/memos/search", memoHandler.SearchMemos)
			protected.GET("/memos/:id", memoHandler.GetMemo)
			protected.PUT("/memos/:id", memoHandler.UpdateMemo)

			// DELETE on the resource archives; only /permanent destroys.
			protected.DELETE("/memos/:id", memoHandler.ArchiveMemo)
			protected.PATCH("/memos/:id/archive", memoHandler.ArchiveMemo)
			protected.PATCH("/memos/:id/restore", memoHandler.RestoreMemo)
			protected.DELETE("/memos/:id/permanent", memoHandler.PermanentlyDeleteMemo)
		}

		if handlers.AuthHandler != nil {
			protected.POST("/auth/logout", handlers.AuthHandler.Logout)
			protected.GET("/profile", handlers.AuthHandler.Profile)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	setupHealthRoute(router)

	if handlers.AuthHandler != nil {
		setupPublicRoutes(router, handlers.AuthHandler)
	}

	setupProtectedRoutes(router, handlers, nil)

	return router
}
