package database

import (
	"edupath-backend/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgresConnection opens the application database.
func NewPostgresConnection(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}
