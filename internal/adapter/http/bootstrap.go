package http

import (
	"log/slog"
	"net/http"
	"time"

	"memoapp/internal/adapter/http/routes"
	"memoapp/pkg"
	"memoapp/pkg/config"
	"memoapp/pkg/tracing"
)

func StartServer(metrics *tracing.AppMetrics, logger *config.LokiLogger) {
	StartServerWithConfig(metrics, logger, config.GetDefaultConfig())
}

func StartServerWithConfig(metrics *tracing.AppMetrics, logger *config.LokiLogger, cfg *config.AppConfig) {
	container, err := NewContainer(cfg, logger)

	if err != nil {
		slog.Error("Failed to build application container", "error", err)
		return
	}

	defer container.Close()

	container.MemoHandler.SetMetrics(metrics)
	container.AuthHandler.SetMetrics(metrics)

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		AuthHandler: container.AuthHandler,
		MemoHandler: container.MemoHandler,
	}, metrics, logger, cfg)

	port := pkg.GetServerPort()

	slog.Info("Server starting",
		"port", port,
		"environment", cfg.Environment,
		"store_mode", cfg.StoreMode,
		"rate_limit_enabled", cfg.RateLimitEnabled,
		"https_enforced", cfg.EnforceHTTPS)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed to start", "error", err)
	}
}
