package store

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gigflow/api/internal/config"
	"github.com/gigflow/api/internal/model"
)

// AllModels returns every persisted model, in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Gig{},
		&model.Bid{},
	}
}

// Open connects to the configured database and migrates the schema.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("store: unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", cfg.Driver, err)
	}

	// SQLite serializes writers; a single pooled connection avoids
	// SQLITE_BUSY under concurrent requests and keeps :memory:
	// databases shared across the pool.
	if cfg.Driver != "mysql" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("store: access sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(AllModels()...); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	return db, nil
}
