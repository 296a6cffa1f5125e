package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "http")

	router := gin.New()
	// Restaurant names may contain "/", sent as %2F inside :name.
	router.UseRawPath = true
	router.UnescapePathValues = true
	router.Use(requestLogger(log))
	router.Use(gin.Recovery())
	router.Use(securityHeaders())

	health := NewHealthController(cfg.Database, cfg.Version)
	restaurants := NewRestaurantsController(cfg.Commands, log)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Restaurant endpoints
	api.GET("/restaurants", restaurants.ListRestaurants)
	api.POST("/restaurants", restaurants.AddRestaurant)
	api.PUT("/restaurants/:name", restaurants.UpdateRestaurant)
	api.DELETE("/restaurants/:name", restaurants.DeleteRestaurant)

	// Picking
	api.GET("/roll", restaurants.Roll)
	api.POST("/roll", restaurants.RollPost)
	api.GET("/history", restaurants.History)

	// History maintenance
	if cfg.TaskQueue != nil || cfg.Trimmer != nil {
		taskController := NewTasksController(cfg.TaskQueue, cfg.Trimmer, cfg.HistoryRetention, log)
		api.POST("/history/trim", taskController.TrimHistory)
		api.GET("/tasks/:id", taskController.GetTaskStatus)
	}

	return router
}
