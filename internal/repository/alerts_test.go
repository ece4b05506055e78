package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel-ingest-go/internal/models"
)

func setupAlertRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *AlertRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewAlertRepository(db)
}

func alertRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "account_id", "classification", "object_key", "channel",
		"cost", "zone_id", "camera_id", "protected", "created_at",
	})
}

func TestInsertAlert(t *testing.T) {
	db, mock, repo := setupAlertRepo(t)
	defer db.Close()

	key := "acct-1/20260829T101500Z-abc"
	zoneID := uuid.New().String()
	alert := &models.Alert{
		ID:             uuid.New().String(),
		AccountID:      "acct-1",
		Classification: models.ClassificationUnknown,
		ObjectKey:      &key,
		Channel:        "email",
		Cost:           0.001,
		ZoneID:         &zoneID,
		CreatedAt:      time.Now().UTC(),
	}

	mock.ExpectExec(`INSERT INTO alerts`).
		WithArgs(alert.ID, alert.AccountID, alert.Classification, alert.ObjectKey,
			alert.Channel, alert.Cost, alert.ZoneID, alert.CameraID,
			alert.Protected, alert.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), alert)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAlert(t *testing.T) {
	db, mock, repo := setupAlertRepo(t)
	defer db.Close()

	alertID := uuid.New().String()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .+ FROM alerts WHERE id`).
		WithArgs(alertID).
		WillReturnRows(alertRows().AddRow(
			alertID, "acct-1", "unknown", "acct-1/key", "email",
			0.001, nil, nil, false, now,
		))

	alert, err := repo.Get(context.Background(), alertID)
	require.NoError(t, err)
	assert.Equal(t, alertID, alert.ID)
	assert.Equal(t, models.ClassificationUnknown, alert.Classification)
	require.NotNil(t, alert.ObjectKey)
	assert.Equal(t, "acct-1/key", *alert.ObjectKey)
	assert.Nil(t, alert.ZoneID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAlertNotFound(t *testing.T) {
	db, mock, repo := setupAlertRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM alerts WHERE id`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	alert, err := repo.Get(context.Background(), "missing")
	assert.Nil(t, alert)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAlertsWithClassificationFilter(t *testing.T) {
	db, mock, repo := setupAlertRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .+ FROM alerts WHERE account_id = \$1 AND classification = \$2 ORDER BY created_at DESC`).
		WithArgs("acct-1", models.ClassificationKnown).
		WillReturnRows(alertRows().
			AddRow("a2", "acct-1", "known", "k2", "email", 0.001, nil, nil, false, now).
			AddRow("a1", "acct-1", "known", "k1", "email", 0.001, nil, nil, true, now.Add(-time.Hour)))

	known := models.ClassificationKnown
	alerts, err := repo.List(context.Background(), "acct-1", &known, 50)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "a2", alerts[0].ID)
	assert.True(t, alerts[1].Protected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByAccount(t *testing.T) {
	db, mock, repo := setupAlertRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM alerts`).
		WithArgs("acct-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(105))

	count, err := repo.CountByAccount(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.Equal(t, 105, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOldestUnprotected(t *testing.T) {
	db, mock, repo := setupAlertRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`WHERE account_id = \$1 AND protected = FALSE\s+ORDER BY created_at ASC`).
		WithArgs("acct-1", 5).
		WillReturnRows(alertRows().
			AddRow("old-1", "acct-1", "unknown", "k1", "email", 0.001, nil, nil, false, now.Add(-48*time.Hour)).
			AddRow("old-2", "acct-1", "unknown", "k2", "email", 0.001, nil, nil, false, now.Add(-47*time.Hour)))

	alerts, err := repo.OldestUnprotected(context.Background(), "acct-1", 5)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "old-1", alerts[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsUnknownSince(t *testing.T) {
	db, mock, repo := setupAlertRepo(t)
	defer db.Close()

	zoneID := uuid.New().String()
	since := time.Now().UTC().Add(-10 * time.Minute)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(zoneID, models.ClassificationUnknown, since).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsUnknownSince(context.Background(), zoneID, since)
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetProtected(t *testing.T) {
	db, mock, repo := setupAlertRepo(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE alerts SET protected`).
		WithArgs(true, "alert-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetProtected(context.Background(), "alert-1", true)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetProtectedNotFound(t *testing.T) {
	db, mock, repo := setupAlertRepo(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE alerts SET protected`).
		WithArgs(true, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetProtected(context.Background(), "missing", true)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAlert(t *testing.T) {
	db, mock, repo := setupAlertRepo(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM alerts`).
		WithArgs("alert-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "alert-1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
