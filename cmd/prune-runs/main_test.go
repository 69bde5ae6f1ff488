package main

import (
	"context"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/siteproof/api/internal/database"
	"github.com/siteproof/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func seedRuns(t *testing.T, db *gorm.DB, now time.Time) {
	t.Helper()
	for _, age := range []time.Duration{time.Hour, 40 * 24 * time.Hour, 100 * 24 * time.Hour} {
		run := model.AnalysisRun{
			Checks:    model.StringList{"spelling"},
			Language:  "en",
			CreatedAt: now.Add(-age),
		}
		require.NoError(t, db.Create(&run).Error)
	}
}

func TestPruneRuns(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()
	seedRuns(t, db, now)

	deleted, err := pruneRuns(context.Background(), db, now.Add(-30*24*time.Hour), false, hclog.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	var remaining int64
	require.NoError(t, db.Model(&model.AnalysisRun{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)
}

func TestPruneRunsDryRun(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()
	seedRuns(t, db, now)

	count, err := pruneRuns(context.Background(), db, now.Add(-30*24*time.Hour), true, hclog.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	var remaining int64
	require.NoError(t, db.Model(&model.AnalysisRun{}).Count(&remaining).Error)
	assert.Equal(t, int64(3), remaining)
}
