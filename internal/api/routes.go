package api

func (s *Server) setupRoutes() {
	s.router.GET("/", s.healthHandler.ServiceInfo)
	s.router.GET("/health", s.healthHandler.HealthCheck)

	s.router.POST("/ingest", s.ingestHandler.Ingest)

	zones := s.router.Group("/zones")
	{
		zones.POST("", s.zoneHandler.CreateZone)
		zones.DELETE("/:zone_id", s.zoneHandler.DeleteZone)
		zones.PUT("/:zone_id/rule", s.zoneHandler.UpsertRule)
		zones.GET("/:zone_id/rule", s.zoneHandler.GetRule)
		zones.DELETE("/:zone_id/rule", s.zoneHandler.DeleteRule)
	}

	cameras := s.router.Group("/cameras")
	{
		cameras.POST("", s.cameraHandler.RegisterCamera)
		cameras.DELETE("/:camera_id", s.cameraHandler.DeleteCamera)
	}

	alerts := s.router.Group("/alerts")
	{
		alerts.GET("", s.alertHandler.ListAlerts)
		alerts.GET("/:alert_id", s.alertHandler.GetAlert)
		alerts.GET("/:alert_id/image", s.alertHandler.GetAlertImage)
		alerts.POST("/:alert_id/protect", s.alertHandler.ProtectAlert)
		alerts.DELETE("/:alert_id/protect", s.alertHandler.UnprotectAlert)
		alerts.DELETE("/:alert_id", s.alertHandler.DeleteAlert)
	}
}
