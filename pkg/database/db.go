package database

import (
	"fmt"

	"github.com/AmineGaf/fraud-detection-system/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// New opens a postgres-backed gorm handle. The caller owns the handle and is
// responsible for closing it on shutdown via Close.
func New(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
