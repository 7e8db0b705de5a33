package postgres

import (
	"context"
	"fmt"

	"podowl/internal/adapters/out/postgres/jobrepo"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Migrate creates or updates the jobs and job_items tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(&jobrepo.JobDTO{}, &jobrepo.ItemDTO{})
}

// EnsureSchema creates the configured schema when it does not exist yet.
// It does nothing when no schema is configured.
func EnsureSchema(ctx context.Context, db *gorm.DB, settings Settings) error {
	if settings.Schema == "" {
		return nil
	}
	if err := db.WithContext(ctx).Exec("CREATE SCHEMA IF NOT EXISTS " + pq.QuoteIdentifier(settings.Schema)).Error; err != nil {
		return fmt.Errorf("create schema %s: %w", settings.Schema, err)
	}
	return nil
}
