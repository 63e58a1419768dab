package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"water-rates/internal/api/handlers"
	"water-rates/internal/api/middleware"
	"water-rates/internal/logging"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	production := os.Getenv("API_ENV") == "production"
	log := logging.New(os.Getenv("LOG_LEVEL"), !production)
	defer log.Sync()

	if production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler())

	demandHandler := handlers.NewDemandHandler()
	simulateHandler := handlers.NewSimulateHandler()
	analyticsHandler := handlers.NewAnalyticsHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/tiers/validate", demandHandler.ValidateTiers)
		api.POST("/demand", demandHandler.RunDemand)

		api.POST("/simulate", simulateHandler.RunSimulation)
		api.POST("/simulate/compare", simulateHandler.CompareScenarios)

		api.POST("/analytics/deciles", analyticsHandler.DecileImpacts)
		api.POST("/analytics/histogram", analyticsHandler.Histogram)
		api.POST("/analytics/occupancy", analyticsHandler.Occupancy)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Info("starting API server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
