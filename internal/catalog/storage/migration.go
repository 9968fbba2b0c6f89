package storage

import (
	"database/sql"
	"fmt"

	"swipemarket_api/pkg/logger"
)

type MigrationsSchema struct{}

func (m *MigrationsSchema) UpMigration(db *sql.DB) error {
	queries := []string{
		`CREATE SCHEMA IF NOT EXISTS migrations`,
		`CREATE TABLE IF NOT EXISTS migrations.migrations (
			name TEXT PRIMARY KEY,
			time TIMESTAMP NOT NULL DEFAULT current_timestamp
		)`,
	}
	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to prepare migrations schema: %w", err)
		}
	}
	return nil
}

type CatalogSchema struct{}

func (m *CatalogSchema) UpMigration(db *sql.DB) error {
	if _, err := db.Exec(`CREATE SCHEMA IF NOT EXISTS catalog`); err != nil {
		return fmt.Errorf("failed to create catalog schema: %w", err)
	}
	return nil
}

type CatalogProducts struct {
	Log logger.Logger
}

func (m *CatalogProducts) UpMigration(db *sql.DB) error {
	done, err := migrationDone(db, "catalog.products")
	if err != nil {
		return err
	}
	if done {
		return nil
	}
	query := `
		CREATE TABLE IF NOT EXISTS catalog.products (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		normalized_title TEXT NOT NULL,
		brand TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		price INT,
		image_url TEXT NOT NULL DEFAULT '',
		image_signature TEXT NOT NULL DEFAULT '',
		tags TEXT[] NOT NULL DEFAULT '{}',
		category TEXT NOT NULL DEFAULT 'other',
		is_used BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_synced TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_products_title_brand
			ON catalog.products (normalized_title, lower(brand)) WHERE is_active;
		CREATE INDEX IF NOT EXISTS idx_products_active_category
			ON catalog.products (category, price) WHERE is_active;
		`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create catalog.products table: %w", err)
	}
	if err := markMigrationDone(db, "catalog.products"); err != nil {
		return err
	}
	if m.Log != nil {
		m.Log.Log("Migration 'catalog.products' completed successfully.")
	}
	return nil
}

type CatalogSwipes struct {
	Log logger.Logger
}

func (m *CatalogSwipes) UpMigration(db *sql.DB) error {
	done, err := migrationDone(db, "catalog.swipes")
	if err != nil {
		return err
	}
	if done {
		return nil
	}
	query := `
		CREATE TABLE IF NOT EXISTS catalog.swipes (
		id BIGSERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		product_id TEXT NOT NULL REFERENCES catalog.products(id),
		result TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_swipes_user_result
			ON catalog.swipes (user_id, result, created_at DESC);
		`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create catalog.swipes table: %w", err)
	}
	if err := markMigrationDone(db, "catalog.swipes"); err != nil {
		return err
	}
	if m.Log != nil {
		m.Log.Log("Migration 'catalog.swipes' completed successfully.")
	}
	return nil
}

func migrationDone(db *sql.DB, name string) (bool, error) {
	var exists bool
	err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM migrations.migrations WHERE name = $1)", name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

func markMigrationDone(db *sql.DB, name string) error {
	_, err := db.Exec("INSERT INTO migrations.migrations (name, time) VALUES ($1, current_timestamp)", name)
	if err != nil {
		return fmt.Errorf("failed to mark %s migration as complete: %w", name, err)
	}
	return nil
}
