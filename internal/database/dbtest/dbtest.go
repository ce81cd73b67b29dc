// Package dbtest starts throwaway PostgreSQL instances for storage tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/emilythestrangee/metalnews/backend/internal/database"
)

const image = "postgres:16-alpine"

// Open starts a postgres container for the test, migrates the schema and
// returns a connected gorm handle. The test is skipped in -short mode or
// when no container runtime is reachable.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres-backed test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase("metalnews"),
		postgres.WithUsername("metalnews"),
		postgres.WithPassword("metalnews"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Open(dsn, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// Reset empties every table so subtests can share one container.
func Reset(t *testing.T, db *gorm.DB) {
	t.Helper()

	err := db.Exec(`TRUNCATE users, categories, tags, posts, post_categories, post_tags,
		comments, music_styles, bands, band_styles, music_labels, albums, reviews, votes
		RESTART IDENTITY CASCADE`).Error
	require.NoError(t, err)
}
