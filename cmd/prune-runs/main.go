package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/siteproof/api/internal/config"
	"github.com/siteproof/api/internal/database"
	"github.com/siteproof/api/internal/logger"
	"github.com/siteproof/api/internal/model"
	"gorm.io/gorm"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Show what would be deleted without deleting")
	olderThan := flag.Duration("older-than", 90*24*time.Hour, "Delete analysis runs older than this")
	flag.Parse()

	startTime := time.Now()
	cfg := config.Load()
	log := logger.New("prune-runs", cfg.LogLevel)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		log.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	cutoff := time.Now().Add(-*olderThan)
	n, err := pruneRuns(context.Background(), db, cutoff, *dryRun, log)
	if err != nil {
		log.Error("failed to prune analysis runs", "error", err)
		os.Exit(1)
	}

	log.Info("prune complete", "deleted", n, "dry_run", *dryRun, "elapsed", time.Since(startTime))
}

const pruneBatchSize = 1000

// pruneRuns deletes analysis runs created before cutoff in batches and
// returns how many were removed. With dryRun set it only counts them.
func pruneRuns(ctx context.Context, db *gorm.DB, cutoff time.Time, dryRun bool, log hclog.Logger) (int64, error) {
	var pending int64
	if err := db.WithContext(ctx).Model(&model.AnalysisRun{}).
		Where("created_at < ?", cutoff).
		Count(&pending).Error; err != nil {
		return 0, err
	}

	log.Info("found expired analysis runs", "count", pending, "cutoff", cutoff.Format(time.RFC3339))
	if dryRun || pending == 0 {
		return pending, nil
	}

	var deleted int64
	for {
		var ids []string
		if err := db.WithContext(ctx).Model(&model.AnalysisRun{}).
			Where("created_at < ?", cutoff).
			Order("created_at ASC").
			Limit(pruneBatchSize).
			Pluck("id", &ids).Error; err != nil {
			return deleted, err
		}
		if len(ids) == 0 {
			return deleted, nil
		}

		res := db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.AnalysisRun{})
		if res.Error != nil {
			return deleted, res.Error
		}
		deleted += res.RowsAffected
		log.Debug("deleted batch", "rows", res.RowsAffected, "total", deleted)
	}
}
