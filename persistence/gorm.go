package persistence

import (
	"fmt"

	"github.com/commercekit/account/internal/config"
	"github.com/commercekit/account/user/account"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewGorm(cfg config.Configuration) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.Username, cfg.Database.Password, cfg.Database.Name)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.Database.LogLevel),
	})
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&account.Account{},
	)
}
