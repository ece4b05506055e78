package api

import (
	"net/http"

	_ "sentinel-ingest-go/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (s *Server) setupSwagger() {
	s.router.GET("/api/info", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"title":       "Sentinel Ingest API",
			"version":     s.config.Version,
			"description": "Alert ingestion service for camera snapshots, zone policies, and alert retention",
			"swagger_ui":  "/docs/index.html",
			"endpoints": gin.H{
				"health":       "/health",
				"service_info": "/",
				"ingest":       "/ingest",
				"zones":        "/zones",
				"cameras":      "/cameras",
				"alerts":       "/alerts",
			},
			"service_id": s.config.ServiceID,
			"port":       s.config.Port,
		})
	})

	s.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	s.router.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
}
