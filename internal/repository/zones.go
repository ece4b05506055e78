package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sentinel-ingest-go/internal/models"
)

// ZoneRepository holds zone identity and per-event cost. Full zone CRUD
// lives in the dashboard service; this side only needs enough surface
// to register zones and resolve costs.
type ZoneRepository struct {
	db *sql.DB
}

func NewZoneRepository(db *sql.DB) *ZoneRepository {
	return &ZoneRepository{db: db}
}

func (r *ZoneRepository) Create(ctx context.Context, accountID, name string, cost *float64) (*models.Zone, error) {
	if cost != nil && *cost < 0 {
		return nil, fmt.Errorf("zone cost must be non-negative")
	}

	zone := &models.Zone{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Name:      name,
		Cost:      cost,
		CreatedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO zones (id, account_id, name, cost, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, zone.ID, zone.AccountID, zone.Name, zone.Cost, zone.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create zone: %w", err)
	}
	return zone, nil
}

func (r *ZoneRepository) Get(ctx context.Context, zoneID string) (*models.Zone, error) {
	query := `SELECT id, account_id, name, cost, created_at FROM zones WHERE id = $1`

	var zone models.Zone
	var cost sql.NullFloat64
	err := r.db.QueryRowContext(ctx, query, zoneID).Scan(
		&zone.ID,
		&zone.AccountID,
		&zone.Name,
		&cost,
		&zone.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get zone: %w", err)
	}

	if cost.Valid {
		zone.Cost = &cost.Float64
	}
	return &zone, nil
}

// Delete removes a zone. Cameras and alerts that referenced it keep
// their rows with the reference nulled; alert history never cascades.
func (r *ZoneRepository) Delete(ctx context.Context, accountID, zoneID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM zones WHERE id = $1 AND account_id = $2`, zoneID, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete zone: %w", err)
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
