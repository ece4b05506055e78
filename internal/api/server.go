package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"sentinel-ingest-go/internal/api/handlers"
	"sentinel-ingest-go/internal/config"
	"sentinel-ingest-go/internal/services"
)

type Server struct {
	config *config.Config
	router *gin.Engine
	server *http.Server

	healthHandler *handlers.HealthHandler
	ingestHandler *handlers.IngestHandler
	zoneHandler   *handlers.ZoneHandler
	cameraHandler *handlers.CameraHandler
	alertHandler  *handlers.AlertHandler
}

func NewServer(cfg *config.Config, container *services.ServiceContainer) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	return &Server{
		config:        cfg,
		router:        router,
		healthHandler: handlers.NewHealthHandler(cfg.ServiceID, cfg.Version),
		ingestHandler: handlers.NewIngestHandler(cfg, container.Ingestion, container.Cameras),
		zoneHandler:   handlers.NewZoneHandler(container.Zones, container.ZoneRules),
		cameraHandler: handlers.NewCameraHandler(container.Cameras, container.Zones),
		alertHandler:  handlers.NewAlertHandler(cfg, container.Alerts, container.Store),
	}
}

func (s *Server) Setup() error {
	s.setupMiddleware()

	s.setupRoutes()

	s.setupSwagger()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.router,
	}

	return nil
}

func (s *Server) Start() error {
	log.Info().Int("port", s.config.Port).Msg("Starting alert ingestion API")
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	log.Info().Msg("Stopping alert ingestion API")
	return s.server.Shutdown(ctx)
}
