// Package users resolves the set of selectable user ids from the
// backend's PostgreSQL store. Resolution is best-effort: any failure
// degrades to an empty result and the UI falls back to free-form input.
package users

import (
	"context"

	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/filmrec/viewer/lib/db"
)

const listQuery = "SELECT user_id FROM users ORDER BY user_id LIMIT 100"

// Resolve returns up to 100 known user ids in ascending order, or nil
// when the store is unconfigured or unreachable. The connection is
// scoped to this call: opened, used for the one query, and closed on
// every exit path. Errors are logged but never returned; the caller
// has a fallback and the operator never sees resolution failures.
func Resolve(ctx context.Context, dsn string, logger *slog.Logger) []int {
	if dsn == "" {
		return nil
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: db.NewGormLogger(logger),
	})
	if err != nil {
		logger.Debug("user store unavailable", slog.Any("error", err))
		return nil
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Debug("user store unavailable", slog.Any("error", err))
		return nil
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Debug("failed to close user store connection", slog.Any("error", err))
		}
	}()

	var ids []int
	if err := gormDB.WithContext(ctx).Raw(listQuery).Scan(&ids).Error; err != nil {
		logger.Debug("user lookup failed", slog.Any("error", err))
		return nil
	}

	return ids
}
