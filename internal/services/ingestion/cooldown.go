package ingestion

import (
	"context"
	"errors"
	"time"

	"sentinel-ingest-go/internal/models"
	"sentinel-ingest-go/internal/repository"
)

// zoneRule fetches the zone's policy once per event. nil means the
// zone has no rule (or no zone at all): allow everything, default
// cooldown.
func (s *Service) zoneRule(ctx context.Context, zoneID *string) *models.ZoneRule {
	if zoneID == nil {
		return nil
	}

	rule, err := s.deps.Rules.Get(ctx, *zoneID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn().Err(err).Str("zone_id", *zoneID).Msg("Zone rule lookup failed, using permissive default")
		}
		return nil
	}
	return rule
}

// suppressed answers the cooldown gate. Only unknown-type alerts are
// subject to cooldown; the window is derived from the ledger rather
// than cached, so it stays correct across restarts. A camera with no
// zone is never suppressed.
func (s *Service) suppressed(ctx context.Context, zoneID *string, rule *models.ZoneRule) bool {
	if zoneID == nil {
		return false
	}

	cooldown := s.cfg.DefaultCooldown
	if rule != nil {
		cooldown = rule.Cooldown()
	}

	since := time.Now().Add(-cooldown)
	exists, err := s.deps.Ledger.ExistsUnknownSince(ctx, *zoneID, since)
	if err != nil {
		// Over-alerting beats silently dropping the event
		s.logger.Warn().Err(err).Str("zone_id", *zoneID).Msg("Cooldown lookup failed, allowing event")
		return false
	}
	return exists
}

// ruleAllows applies the zone policy filter. Absence of a rule is the
// permissive default.
func ruleAllows(rule *models.ZoneRule, isKnown bool) bool {
	if rule == nil {
		return true
	}
	return rule.Allows(isKnown)
}
