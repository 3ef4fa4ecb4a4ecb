package database

import (
	"fmt"

	"github.com/lshigami/intuity-sync/config"
	"github.com/lshigami/intuity-sync/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the remote table backend. It returns a nil *gorm.DB when
// no driver is configured; callers treat that as "remote not configured".
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.Database)
	if err != nil {
		return nil, err
	}
	if dialector == nil {
		log.Warn().Msg("DATABASE_DRIVER is not set. Remote mirroring is disabled, using local storage only.")
		return nil, nil
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to remote database: %w", err)
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("Remote database connection opened")
	return db, nil
}

func dialectorFor(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
		return postgres.Open(dsn), nil
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = "file::memory:?cache=shared"
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// AutoMigrate creates or updates the remote tables.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	log.Info().Msg("Running remote table migrations...")
	if err := db.AutoMigrate(&model.QuestionRow{}, &model.ResponseRow{}); err != nil {
		log.Error().Err(err).Msg("Remote table migration failed")
		return err
	}
	log.Info().Msg("Remote table migration completed successfully.")
	return nil
}
