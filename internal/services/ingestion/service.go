package ingestion

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sentinel-ingest-go/internal/config"
	"sentinel-ingest-go/internal/helpers"
	"sentinel-ingest-go/internal/logging"
	"sentinel-ingest-go/internal/models"
	"sentinel-ingest-go/internal/services/facematch"
	"sentinel-ingest-go/internal/services/messaging"
	"sentinel-ingest-go/internal/services/notifier"
)

// AlertLedger is the slice of the ledger contract the pipeline needs
type AlertLedger interface {
	Insert(ctx context.Context, alert *models.Alert) error
	ExistsUnknownSince(ctx context.Context, zoneID string, since time.Time) (bool, error)
}

// RuleStore looks up a zone's alerting policy
type RuleStore interface {
	Get(ctx context.Context, zoneID string) (*models.ZoneRule, error)
}

// ZoneStore looks up a zone's per-event cost
type ZoneStore interface {
	Get(ctx context.Context, zoneID string) (*models.Zone, error)
}

// RetentionEnforcer bounds an account's ledger after each accepted
// event
type RetentionEnforcer interface {
	Enforce(ctx context.Context, accountID string) error
}

// SnapshotStore is the write side of the object store; the pipeline
// never reads or deletes evidence
type SnapshotStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Request carries one snapshot event into the pipeline. The caller has
// already authenticated the camera identity.
type Request struct {
	AccountID string
	ZoneID    *string
	CameraID  *string
	Image     []byte
	Channel   string
}

// Deps groups the pipeline's collaborators
type Deps struct {
	Ledger    AlertLedger
	Rules     RuleStore
	Zones     ZoneStore
	Matcher   facematch.Matcher
	Store     SnapshotStore
	Notifier  notifier.Notifier
	Publisher messaging.Publisher
	Retention RetentionEnforcer
}

// Service orchestrates the ingestion flow: cooldown gate, face match,
// zone policy filter, cost resolution, storage write, ledger insert,
// then detached retention, notification, and event publishing.
type Service struct {
	cfg    *config.Config
	deps   Deps
	logger zerolog.Logger

	wg sync.WaitGroup
	// Follow-up work normally runs detached from the request so a
	// caller disconnect after the ledger insert cannot lose it; tests
	// flip this to run it inline
	syncFollowUp bool
}

func NewService(cfg *config.Config, deps Deps) *Service {
	s := &Service{
		cfg:    cfg,
		deps:   deps,
		logger: logging.NewServiceLogger(cfg, "ingestion"),
	}

	s.logger.Info().
		Dur("default_cooldown", cfg.DefaultCooldown).
		Float64("default_cost", cfg.DefaultEventCost).
		Int("retention_max", cfg.RetentionMaxAlerts).
		Msg("Ingestion pipeline initialized")

	return s
}

// Ingest runs one snapshot event through the pipeline and returns one
// of the four result variants. Dependency identity never leaks into
// the result.
func (s *Service) Ingest(ctx context.Context, req Request) models.IngestResult {
	if req.AccountID == "" {
		return models.Failed("missing account id")
	}
	if len(req.Image) == 0 {
		return models.Failed("missing image data")
	}
	if req.Channel == "" {
		req.Channel = "email"
	}

	// The cooldown gate runs before the matcher so a suppressed zone
	// never pays for a redundant match call. It is evaluated against
	// the unknown-candidate window regardless of what the match would
	// have returned.
	rule := s.zoneRule(ctx, req.ZoneID)
	if s.suppressed(ctx, req.ZoneID, rule) {
		s.logger.Debug().
			Str("account_id", req.AccountID).
			Str("zone_id", deref(req.ZoneID)).
			Msg("Event suppressed by cooldown")
		return models.Skipped(models.SkipReasonCooldown)
	}

	classification := s.classify(ctx, req.Image)
	isKnown := classification == models.ClassificationKnown

	if !ruleAllows(rule, isKnown) {
		s.logger.Debug().
			Str("account_id", req.AccountID).
			Str("zone_id", deref(req.ZoneID)).
			Str("classification", classification.String()).
			Msg("Event dropped by zone policy")
		return models.Skipped(models.SkipReasonPolicy)
	}

	cost := s.resolveCost(ctx, req.ZoneID)

	contentType := helpers.SniffImageContentType(req.Image)
	if contentType == "" {
		contentType = "image/jpeg"
	}

	now := time.Now().UTC()
	key := helpers.BuildObjectKey(req.AccountID, now, contentType)

	// A storage failure is fatal for the event: an alert is never
	// recorded without durably stored evidence
	storeCtx, cancel := context.WithTimeout(ctx, s.cfg.StorageTimeout)
	defer cancel()
	if err := s.deps.Store.Put(storeCtx, key, req.Image, contentType); err != nil {
		s.logger.Error().
			Err(err).
			Str("account_id", req.AccountID).
			Str("object_key", key).
			Msg("Storage write failed, event not recorded")
		return models.Failed("storage write failed")
	}

	alert := &models.Alert{
		ID:             uuid.New().String(),
		AccountID:      req.AccountID,
		Classification: classification,
		ObjectKey:      &key,
		Channel:        req.Channel,
		Cost:           cost,
		ZoneID:         req.ZoneID,
		CameraID:       req.CameraID,
		Protected:      false,
		CreatedAt:      now,
	}

	if err := s.deps.Ledger.Insert(ctx, alert); err != nil {
		// The blob is already written; an orphaned blob is the
		// accepted failure mode here
		s.logger.Error().
			Err(err).
			Str("account_id", req.AccountID).
			Str("object_key", key).
			Msg("Ledger insert failed after storage write")
		return models.Failed("alert record failed")
	}

	s.logger.Info().
		Str("alert_id", alert.ID).
		Str("account_id", alert.AccountID).
		Str("zone_id", deref(alert.ZoneID)).
		Str("classification", classification.String()).
		Float64("cost", cost).
		Msg("Alert accepted")

	// Retention, notification, and event publishing are best-effort
	// and must survive a caller disconnect, so they run detached from
	// the request context
	if s.syncFollowUp {
		s.followUp(alert)
	} else {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.followUp(alert)
		}()
	}

	return models.Accepted(alert.ID, classification, cost)
}

// classify calls the face matcher and degrades to unknown on any
// failure: a matcher outage over-alerts, it never drops the event
func (s *Service) classify(ctx context.Context, image []byte) models.Classification {
	matchCtx, cancel := context.WithTimeout(ctx, s.cfg.MatcherTimeout)
	defer cancel()

	matches, err := s.deps.Matcher.Search(matchCtx, image)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Face matcher unavailable, treating event as unknown")
		return models.ClassificationUnknown
	}

	if facematch.Known(matches, s.cfg.MatcherMinConfidence) {
		return models.ClassificationKnown
	}
	return models.ClassificationUnknown
}

func (s *Service) followUp(alert *models.Alert) {
	ctx, cancel := context.WithTimeout(context.Background(), followUpTimeout)
	defer cancel()

	if err := s.deps.Retention.Enforce(ctx, alert.AccountID); err != nil {
		s.logger.Warn().
			Err(err).
			Str("account_id", alert.AccountID).
			Msg("Retention enforcement failed")
	}

	if alert.Classification == models.ClassificationUnknown {
		subject := "Unknown person detected"
		body := fmt.Sprintf(
			"An unknown person was detected by one of your cameras.\n\nAlert ID: %s\nTime: %s\n\nOpen your dashboard to review the snapshot.",
			alert.ID,
			alert.CreatedAt.Format(time.RFC1123),
		)
		if err := s.deps.Notifier.Send(s.cfg.NotifyTo, subject, body); err != nil {
			s.logger.Warn().
				Err(err).
				Str("alert_id", alert.ID).
				Msg("Notification dispatch failed")
		}
	}

	event := models.AlertEvent{
		AlertID:        alert.ID,
		AccountID:      alert.AccountID,
		Classification: alert.Classification,
		ZoneID:         alert.ZoneID,
		CameraID:       alert.CameraID,
		Cost:           alert.Cost,
		CreatedAt:      alert.CreatedAt,
	}
	if err := s.deps.Publisher.Publish(s.cfg.AlertsSubject, event); err != nil {
		s.logger.Warn().
			Err(err).
			Str("alert_id", alert.ID).
			Msg("Alert event publish failed")
	}
}

const followUpTimeout = 30 * time.Second

// Shutdown waits for detached follow-up work to finish
func (s *Service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
