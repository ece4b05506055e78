package retention

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"sentinel-ingest-go/internal/config"
	"sentinel-ingest-go/internal/logging"
	"sentinel-ingest-go/internal/models"
)

// AlertLedger is the slice of the ledger contract retention needs
type AlertLedger interface {
	CountByAccount(ctx context.Context, accountID string) (int, error)
	OldestUnprotected(ctx context.Context, accountID string, n int) ([]models.Alert, error)
	Delete(ctx context.Context, alertID string) error
}

// BlobStore deletes the evidence blob behind an evicted row
type BlobStore interface {
	Delete(ctx context.Context, key string) error
}

// Service bounds the amount of stored history per account. Once an
// account exceeds the cap, the oldest unprotected rows are evicted:
// blob first, then ledger row. Protected rows are never auto-deleted,
// even if that leaves the account over the cap. Unpinning is the
// user's call, not retention's.
type Service struct {
	ledger   AlertLedger
	store    BlobStore
	maxCount int
	logger   zerolog.Logger

	// Per-account serialization so two concurrent enforcements never
	// race over the same "oldest" rows
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(cfg *config.Config, ledger AlertLedger, store BlobStore) *Service {
	return &Service{
		ledger:   ledger,
		store:    store,
		maxCount: cfg.RetentionMaxAlerts,
		logger:   logging.NewServiceLogger(cfg, "retention"),
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *Service) accountLock(accountID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[accountID] = lock
	}
	return lock
}

// Enforce trims the account's ledger down to the configured cap. A
// missing blob is not an error; a row that cannot be deleted is logged
// and skipped so one bad row never blocks the rest of the sweep.
func (s *Service) Enforce(ctx context.Context, accountID string) error {
	lock := s.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	count, err := s.ledger.CountByAccount(ctx, accountID)
	if err != nil {
		return fmt.Errorf("retention count failed: %w", err)
	}
	if count <= s.maxCount {
		return nil
	}

	overflow := count - s.maxCount
	candidates, err := s.ledger.OldestUnprotected(ctx, accountID, overflow)
	if err != nil {
		return fmt.Errorf("retention candidate scan failed: %w", err)
	}

	evicted := 0
	for _, alert := range candidates {
		// Blob first, then row; the accepted failure mode is an
		// orphaned blob, never a ledger row pointing at nothing
		if alert.ObjectKey != nil {
			if err := s.store.Delete(ctx, *alert.ObjectKey); err != nil {
				s.logger.Warn().
					Err(err).
					Str("alert_id", alert.ID).
					Str("object_key", *alert.ObjectKey).
					Msg("Failed to delete evicted blob, keeping ledger row")
				continue
			}
		}

		if err := s.ledger.Delete(ctx, alert.ID); err != nil {
			s.logger.Warn().
				Err(err).
				Str("alert_id", alert.ID).
				Msg("Failed to delete evicted ledger row")
			continue
		}
		evicted++
	}

	s.logger.Info().
		Str("account_id", accountID).
		Int("count", count).
		Int("overflow", overflow).
		Int("evicted", evicted).
		Msg("Retention enforcement completed")

	return nil
}
