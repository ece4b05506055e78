package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"sentinel-ingest-go/internal/config"
)

func NewServiceLogger(cfg *config.Config, service string) zerolog.Logger {
	return log.With().Str("service_id", cfg.ServiceID).Str("service", service).Logger()
}
