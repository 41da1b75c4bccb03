package cmd

import (
	"fmt"

	"search-schema/core/config"
	"search-schema/core/database"
	"search-schema/core/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// setup loads configuration and builds the command logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// openDB connects to the metadata store database. The returned func closes it.
func openDB(cfg database.Config) (*gorm.DB, func(), error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to metadata store: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return db, func() { _ = sqlDB.Close() }, nil
}
