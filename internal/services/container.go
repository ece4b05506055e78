package services

import (
	"context"
	"database/sql"

	"sentinel-ingest-go/internal/config"
	"sentinel-ingest-go/internal/db"
	"sentinel-ingest-go/internal/repository"
	"sentinel-ingest-go/internal/services/facematch"
	"sentinel-ingest-go/internal/services/ingestion"
	"sentinel-ingest-go/internal/services/messaging"
	"sentinel-ingest-go/internal/services/notifier"
	"sentinel-ingest-go/internal/services/objectstore"
	"sentinel-ingest-go/internal/services/retention"
)

// ServiceContainer holds all services
type ServiceContainer struct {
	Config *config.Config
	DB     *sql.DB

	Alerts    *repository.AlertRepository
	Zones     *repository.ZoneRepository
	ZoneRules *repository.ZoneRuleRepository
	Cameras   *repository.CameraRepository

	Store     objectstore.Store
	Matcher   facematch.Matcher
	Notifier  notifier.Notifier
	Publisher messaging.Publisher
	Retention *retention.Service
	Ingestion *ingestion.Service
}

// NewServiceContainer wires the full pipeline. A failure here is fatal
// at startup; nothing is constructed lazily per request.
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	database, err := db.ConnectPostgres(cfg)
	if err != nil {
		return nil, err
	}

	alerts := repository.NewAlertRepository(database)
	zones := repository.NewZoneRepository(database)
	zoneRules := repository.NewZoneRuleRepository(database)
	cameras := repository.NewCameraRepository(database)

	store, err := objectstore.New(cfg)
	if err != nil {
		database.Close()
		return nil, err
	}

	var publisher messaging.Publisher = &messaging.NoopPublisher{}
	if cfg.NatsEnabled {
		natsSvc, err := messaging.NewService(cfg)
		if err != nil {
			database.Close()
			return nil, err
		}
		publisher = natsSvc
	}

	matcher := facematch.NewClient(cfg)
	notify := notifier.New(cfg)
	retentionSvc := retention.NewService(cfg, alerts, store)

	ingestionSvc := ingestion.NewService(cfg, ingestion.Deps{
		Ledger:    alerts,
		Rules:     zoneRules,
		Zones:     zones,
		Matcher:   matcher,
		Store:     store,
		Notifier:  notify,
		Publisher: publisher,
		Retention: retentionSvc,
	})

	return &ServiceContainer{
		Config:    cfg,
		DB:        database,
		Alerts:    alerts,
		Zones:     zones,
		ZoneRules: zoneRules,
		Cameras:   cameras,
		Store:     store,
		Matcher:   matcher,
		Notifier:  notify,
		Publisher: publisher,
		Retention: retentionSvc,
		Ingestion: ingestionSvc,
	}, nil
}

// Shutdown gracefully shuts down all services
func (sc *ServiceContainer) Shutdown(ctx context.Context) error {
	if sc.Ingestion != nil {
		if err := sc.Ingestion.Shutdown(ctx); err != nil {
			return err
		}
	}

	if sc.Publisher != nil {
		if err := sc.Publisher.Shutdown(ctx); err != nil {
			return err
		}
	}

	if sc.DB != nil {
		return sc.DB.Close()
	}
	return nil
}
