package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sentinel-ingest-go/internal/models"
)

// AlertRepository is the data access layer for the alert ledger. Rows
// are append-only; the only mutable column is protected.
type AlertRepository struct {
	db *sql.DB
}

func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

const alertColumns = `id, account_id, classification, object_key, channel, cost, zone_id, camera_id, protected, created_at`

func (r *AlertRepository) Insert(ctx context.Context, alert *models.Alert) error {
	query := `
		INSERT INTO alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		alert.ID,
		alert.AccountID,
		alert.Classification,
		alert.ObjectKey,
		alert.Channel,
		alert.Cost,
		alert.ZoneID,
		alert.CameraID,
		alert.Protected,
		alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	return nil
}

func (r *AlertRepository) Get(ctx context.Context, alertID string) (*models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`
	alert, err := r.scanAlert(r.db.QueryRowContext(ctx, query, alertID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return alert, nil
}

// List returns an account's alerts newest-first, optionally filtered by
// classification. The caller caps limit.
func (r *AlertRepository) List(ctx context.Context, accountID string, classification *models.Classification, limit int) ([]models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE account_id = $1`
	args := []interface{}{accountID}

	if classification != nil {
		query += ` AND classification = $2`
		args = append(args, *classification)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	return r.collectAlerts(rows)
}

// CountByAccount recomputes the retention counter for an account
func (r *AlertRepository) CountByAccount(ctx context.Context, accountID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM alerts WHERE account_id = $1`, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count alerts: %w", err)
	}
	return count, nil
}

// OldestUnprotected returns up to n of the account's oldest rows with
// protected = false, oldest first. Protected rows are never candidates
// for eviction.
func (r *AlertRepository) OldestUnprotected(ctx context.Context, accountID string, n int) ([]models.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE account_id = $1 AND protected = FALSE
		ORDER BY created_at ASC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, accountID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to select eviction candidates: %w", err)
	}
	defer rows.Close()

	return r.collectAlerts(rows)
}

// ExistsUnknownSince reports whether the zone recorded an unknown alert
// at or after the given instant. This is the cooldown lookup: state is
// derived from the ledger, never cached, so it survives restarts.
func (r *AlertRepository) ExistsUnknownSince(ctx context.Context, zoneID string, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM alerts
			WHERE zone_id = $1 AND classification = $2 AND created_at >= $3
		)
	`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, zoneID, models.ClassificationUnknown, since).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check cooldown window: %w", err)
	}
	return exists, nil
}

// SetProtected flips the eviction-protection flag, the one mutable
// field on a ledger row
func (r *AlertRepository) SetProtected(ctx context.Context, alertID string, protected bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE alerts SET protected = $1 WHERE id = $2`, protected, alertID)
	if err != nil {
		return fmt.Errorf("failed to update protected flag: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a ledger row. Callers must delete the backing blob
// first; the accepted failure mode is an orphaned blob, never an
// orphaned row.
func (r *AlertRepository) Delete(ctx context.Context, alertID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM alerts WHERE id = $1`, alertID)
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *AlertRepository) scanAlert(row rowScanner) (*models.Alert, error) {
	var alert models.Alert
	var objectKey, zoneID, cameraID sql.NullString

	err := row.Scan(
		&alert.ID,
		&alert.AccountID,
		&alert.Classification,
		&objectKey,
		&alert.Channel,
		&alert.Cost,
		&zoneID,
		&cameraID,
		&alert.Protected,
		&alert.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if objectKey.Valid {
		alert.ObjectKey = &objectKey.String
	}
	if zoneID.Valid {
		alert.ZoneID = &zoneID.String
	}
	if cameraID.Valid {
		alert.CameraID = &cameraID.String
	}
	return &alert, nil
}

func (r *AlertRepository) collectAlerts(rows *sql.Rows) ([]models.Alert, error) {
	alerts := make([]models.Alert, 0)
	for rows.Next() {
		alert, err := r.scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alerts = append(alerts, *alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alert rows: %w", err)
	}
	return alerts, nil
}
