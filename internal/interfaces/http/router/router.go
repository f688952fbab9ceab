package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storebot/backend/internal/infrastructure/logger"
	"github.com/storebot/backend/internal/interfaces/http/handler"
)

// New builds the gin engine serving the operational endpoints. The bot talks
// to users over the chat transport; this surface exists for orchestrators
// and monitoring only.
func New(log *zap.Logger, health *handler.HealthHandler) *gin.Engine {
	engine := gin.New()
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	engine.GET("/health", health.Health)
	engine.GET("/health/ready", health.Ready)

	return engine
}
