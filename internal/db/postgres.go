package db

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"sentinel-ingest-go/internal/config"

	_ "github.com/lib/pq"
)

func ConnectPostgres(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)

	log.Info().Int("max_open_conns", cfg.DBMaxOpenConns).Msg("PostgreSQL connection established")
	return db, nil
}

func runMigrations(db *sql.DB) error {
	log.Info().Msg("Running migrations...")

	migrations := []string{
		`CREATE TABLE IF NOT EXISTS zones (
			id TEXT PRIMARY KEY,
			account_id TEXT NOT NULL,
			name TEXT NOT NULL,
			cost NUMERIC(10,4) CHECK (cost >= 0),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_zones_account_id ON zones(account_id)`,

		// One rule per zone; upsert replaces the previous rule
		`CREATE TABLE IF NOT EXISTS zone_rules (
			zone_id TEXT PRIMARY KEY REFERENCES zones(id) ON DELETE CASCADE,
			rule_type TEXT NOT NULL,
			cooldown_minutes INTEGER NOT NULL CHECK (cooldown_minutes BETWEEN 1 AND 1440),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS cameras (
			id TEXT PRIMARY KEY,
			account_id TEXT NOT NULL,
			zone_id TEXT REFERENCES zones(id) ON DELETE SET NULL,
			name TEXT NOT NULL,
			api_key TEXT NOT NULL UNIQUE,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cameras_account_id ON cameras(account_id)`,

		// Deleting a zone must not cascade into alert history
		`CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			account_id TEXT NOT NULL,
			classification TEXT NOT NULL,
			object_key TEXT,
			channel TEXT NOT NULL,
			cost NUMERIC(10,4) NOT NULL,
			zone_id TEXT REFERENCES zones(id) ON DELETE SET NULL,
			camera_id TEXT REFERENCES cameras(id) ON DELETE SET NULL,
			protected BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL
		)`,
		// Retention scans
		`CREATE INDEX IF NOT EXISTS idx_alerts_account_created ON alerts(account_id, created_at)`,
		// Cooldown lookups
		`CREATE INDEX IF NOT EXISTS idx_alerts_zone_class_created ON alerts(zone_id, classification, created_at)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Info().Msg("Migrations completed successfully")
	return nil
}
