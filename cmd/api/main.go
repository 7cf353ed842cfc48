package main

import (
	"fmt"
	"log/slog"
	"os"

	"fieldplot/internal/api/handlers"
	"fieldplot/internal/api/middleware"
	"fieldplot/internal/data"

	"github.com/gin-gonic/gin"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()}))
	slog.SetDefault(logger)

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := newRouter(logger, data.GetCache(), os.Getenv("CHARGES_DIR"))

	addr := fmt.Sprintf(":%s", port)
	logger.Info("starting API server", "addr", addr)
	if err := router.Run(addr); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func newRouter(logger *slog.Logger, cache *data.RenderCache, chargesDir string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler(logger))

	fieldHandler := handlers.NewFieldHandler(logger, cache)
	chargesHandler := handlers.NewChargesHandler(chargesDir, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/field", fieldHandler.EvaluateField)
		api.POST("/render", fieldHandler.RenderPlot)

		api.GET("/charges", chargesHandler.ListChargeSets)
		api.GET("/charges/:id", chargesHandler.GetChargeSet)

		api.GET("/parameters", handlers.ListParameters)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})

	return router
}

func logLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
