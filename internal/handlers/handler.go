package handlers

import (
	"tempwatch/internal/logger"
	"tempwatch/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// WebSocket status stream (HTTP upgrade) on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerTemperatureRoutes(api)
		h.registerAlertRoutes(api)
		h.registerMonitorRoutes(api)
	}
}

func (h *Handler) registerTemperatureRoutes(api *gin.RouterGroup) {
	temp := api.Group("/temperature")
	{
		temp.GET("/status", h.getStatus)
		temp.GET("/history", h.getHistory)
	}
	// Short display token for tmux/prompt status lines
	api.GET("/statusbar", h.getStatusbar)
}

func (h *Handler) registerAlertRoutes(api *gin.RouterGroup) {
	alerts := api.Group("/alerts")
	{
		alerts.GET("/", h.getAlerts)
		alerts.POST("/:id/ack", h.ackAlert)
	}
}

func (h *Handler) registerMonitorRoutes(api *gin.RouterGroup) {
	mon := api.Group("/monitor")
	{
		mon.POST("/start", h.startMonitor)
		mon.POST("/stop", h.stopMonitor)
	}
}
