package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sentinel-ingest-go/internal/models"
)

// CameraRepository holds registered snapshot sources and their
// ingestion credentials
type CameraRepository struct {
	db *sql.DB
}

func NewCameraRepository(db *sql.DB) *CameraRepository {
	return &CameraRepository{db: db}
}

// Create registers a camera and generates its API key. The key is
// returned exactly once, here.
func (r *CameraRepository) Create(ctx context.Context, accountID, name string, zoneID *string) (*models.Camera, error) {
	camera := &models.Camera{
		ID:        uuid.New().String(),
		AccountID: accountID,
		ZoneID:    zoneID,
		Name:      name,
		APIKey:    uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO cameras (id, account_id, zone_id, name, api_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, camera.ID, camera.AccountID, camera.ZoneID, camera.Name, camera.APIKey, camera.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create camera: %w", err)
	}
	return camera, nil
}

// GetByAPIKey resolves the camera identity presented on an ingestion
// call
func (r *CameraRepository) GetByAPIKey(ctx context.Context, apiKey string) (*models.Camera, error) {
	query := `SELECT id, account_id, zone_id, name, api_key, created_at FROM cameras WHERE api_key = $1`

	var camera models.Camera
	var zoneID sql.NullString
	err := r.db.QueryRowContext(ctx, query, apiKey).Scan(
		&camera.ID,
		&camera.AccountID,
		&zoneID,
		&camera.Name,
		&camera.APIKey,
		&camera.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get camera by api key: %w", err)
	}

	if zoneID.Valid {
		camera.ZoneID = &zoneID.String
	}
	return &camera, nil
}

// Delete removes a camera, scoped to its owning account
func (r *CameraRepository) Delete(ctx context.Context, accountID, cameraID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cameras WHERE id = $1 AND account_id = $2`, cameraID, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete camera: %w", err)
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
