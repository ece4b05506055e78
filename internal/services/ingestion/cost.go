package ingestion

import (
	"context"
	"errors"

	"sentinel-ingest-go/internal/repository"
)

// resolveCost maps a zone to its per-event cost. The configured
// default applies when the event has no zone, the zone is gone, or the
// zone carries no explicit cost. There is no failure path: a value is
// always returned.
func (s *Service) resolveCost(ctx context.Context, zoneID *string) float64 {
	if zoneID == nil {
		return s.cfg.DefaultEventCost
	}

	zone, err := s.deps.Zones.Get(ctx, *zoneID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn().Err(err).Str("zone_id", *zoneID).Msg("Zone cost lookup failed, using default cost")
		}
		return s.cfg.DefaultEventCost
	}
	if zone.Cost == nil {
		return s.cfg.DefaultEventCost
	}
	return *zone.Cost
}
