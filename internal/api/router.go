package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aerostock/aerostock/internal/api/handlers"
	"github.com/aerostock/aerostock/internal/api/middleware"
)

type Router struct {
	engine           *gin.Engine
	log              *slog.Logger
	inventoryHandler *handlers.InventoryHandler
	blueprintHandler *handlers.BlueprintHandler
}

func NewRouter(
	log *slog.Logger,
	inventoryHandler *handlers.InventoryHandler,
	blueprintHandler *handlers.BlueprintHandler,
) *Router {
	return &Router{
		log:              log,
		inventoryHandler: inventoryHandler,
		blueprintHandler: blueprintHandler,
	}
}

func (r *Router) Setup(mode string) *gin.Engine {
	gin.SetMode(mode)
	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	r.engine.Use(middleware.RequestContext())
	r.engine.Use(middleware.AccessLog(r.log))
	r.engine.Use(middleware.Metrics())
	r.engine.Use(middleware.ErrorHandler())

	r.setupRoutes()
	return r.engine
}

func (r *Router) setupRoutes() {
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Record blueprints
	blueprints := api.Group("/blueprints")
	{
		blueprints.GET("", r.blueprintHandler.List)
		blueprints.GET("/:id", r.blueprintHandler.Get)
	}

	// Inventory
	inventory := api.Group("/inventory")
	{
		inventory.GET("", r.inventoryHandler.Query)
		inventory.GET("/filters", r.inventoryHandler.Filters)
		inventory.GET("/:type/:id", r.inventoryHandler.Get)
		inventory.POST("/refresh", r.inventoryHandler.Refresh)
		inventory.POST("/:type", r.inventoryHandler.Create)
	}

	// Facilities and what they hold
	facilities := api.Group("/facilities")
	{
		facilities.GET("", r.inventoryHandler.Facilities)
		facilities.GET("/:id", r.inventoryHandler.Facility)
	}
}
