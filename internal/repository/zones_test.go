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
)

func setupZoneRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *ZoneRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewZoneRepository(db)
}

func TestCreateZone(t *testing.T) {
	db, mock, repo := setupZoneRepo(t)
	defer db.Close()

	cost := 0.05
	mock.ExpectExec(`INSERT INTO zones`).
		WithArgs(sqlmock.AnyArg(), "acct-1", "Backyard", 0.05, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	zone, err := repo.Create(context.Background(), "acct-1", "Backyard", &cost)
	require.NoError(t, err)
	assert.NotEmpty(t, zone.ID)
	assert.Equal(t, "acct-1", zone.AccountID)
	require.NotNil(t, zone.Cost)
	assert.Equal(t, 0.05, *zone.Cost)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateZoneRejectsNegativeCost(t *testing.T) {
	db, _, repo := setupZoneRepo(t)
	defer db.Close()

	cost := -1.0
	zone, err := repo.Create(context.Background(), "acct-1", "Backyard", &cost)
	assert.Nil(t, zone)
	assert.Error(t, err)
}

func TestGetZoneWithoutCost(t *testing.T) {
	db, mock, repo := setupZoneRepo(t)
	defer db.Close()

	zoneID := uuid.New().String()
	mock.ExpectQuery(`SELECT .+ FROM zones`).
		WithArgs(zoneID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "name", "cost", "created_at"}).
			AddRow(zoneID, "acct-1", "Front Door", nil, time.Now().UTC()))

	zone, err := repo.Get(context.Background(), zoneID)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", zone.AccountID)
	assert.Nil(t, zone.Cost)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetZoneNotFound(t *testing.T) {
	db, mock, repo := setupZoneRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM zones`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	zone, err := repo.Get(context.Background(), "missing")
	assert.Nil(t, zone)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteZoneScopedToAccount(t *testing.T) {
	db, mock, repo := setupZoneRepo(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM zones`).
		WithArgs("zone-1", "other-account").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "other-account", "zone-1")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
