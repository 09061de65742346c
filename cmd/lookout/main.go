package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lookout/internal/handlers"
	"lookout/internal/logic"
	"lookout/internal/probes"
	"lookout/pkg/config"
	"lookout/pkg/logging"
	"lookout/pkg/middleware"
	"lookout/pkg/monitoring"
	"lookout/pkg/server"
	"lookout/pkg/version"
)

func main() {
	// Setup logger
	logger := logging.NewLoggerWithService("lookout")

	// Load environment variables
	config.LoadEnv(logger)

	logger.Info("Starting Lookout (Dependency Health Aggregator)")

	settings := probes.LoadSettings()

	// Setup monitoring
	metricsCollector := monitoring.NewMetricsCollector("lookout", version.Version, version.GitCommit)
	engineMetrics := &logic.Metrics{
		ChecksTotal:   metricsCollector.NewCounter("health_checks_total", "Health check executions", []string{"service", "status"}),
		CheckDuration: metricsCollector.NewHistogram("health_check_duration_seconds", "Health check duration", []string{"service"}, nil),
	}

	// === Engine Setup ===
	checker := logic.NewChecker(probes.All(settings), logger).WithMetrics(engineMetrics)
	healthHandlers := handlers.NewHealth(checker, logger)

	// === Server Setup ===
	router := server.SetupRouter(logger)
	router.Use(metricsCollector.MetricsMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":     "lookout",
			"version":     version.Version,
			"commit":      version.GetShortCommit(),
			"environment": settings.Environment,
		})
	})

	api := router.Group("/api")
	// The engine bounds each probe individually; this bounds the whole
	// request so the dashboard never sees a hung poll.
	api.Use(middleware.TimeoutMiddleware(30 * time.Second))
	{
		api.GET("/health", healthHandlers.GetHealth)
		api.POST("/health", healthHandlers.PostHealth)
	}

	router.GET("/metrics", metricsCollector.Handler())

	serverConfig := server.DefaultConfig("lookout", settings.Port)
	if err := server.Start(serverConfig, router, logger); err != nil {
		logger.WithError(err).Fatal("Server exited with error")
	}
}
