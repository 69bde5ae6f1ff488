package database

import (
	"fmt"

	"github.com/siteproof/api/internal/config"
	"github.com/siteproof/api/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the postgres database named by cfg.DatabaseURL.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	logMode := logger.Warn
	if cfg.LogLevel == "debug" || cfg.LogLevel == "trace" {
		logMode = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates every table and the dictionary word
// uniqueness index.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Organization{},
		&model.IndustryDictionary{},
		&model.Project{},
		&model.DictionaryWord{},
		&model.AnalysisRun{},
	)
	if err != nil {
		return err
	}

	// One row per (organization, project-or-null, word). NULL project ids
	// are folded to 0 so organization-wide duplicates collide too.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_dictionary_words_scope_word
		ON dictionary_words (organization_id, COALESCE(project_id, 0), word)`).Error; err != nil {
		return fmt.Errorf("failed to create dictionary word index: %w", err)
	}

	return nil
}
