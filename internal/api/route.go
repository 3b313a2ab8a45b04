package api

import (
	"Nimbus/internal/api/middleware"
	"Nimbus/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter 本地运维端点路由
func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	r.Use(middleware.TraceMiddleware())
	logger.SetupGin(r)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"Code":    200,
			"Message": "ok",
			"Data":    nil,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/status", group.StatusHandler.Status)
		apiGroup.GET("/rooms", group.StatusHandler.Rooms)
		apiGroup.GET("/messages", group.StatusHandler.Messages)
	}

	return r
}
