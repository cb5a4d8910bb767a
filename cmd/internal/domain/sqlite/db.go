package sqlite

import (
	"path/filepath"
	"time"

	"aguagestor/cmd/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func Init(dbPath string) (*gorm.DB, error) {
	if dbPath == "" {
		dbPath = filepath.Join(".", "aguagestor.db")
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&entity.Partner{},
		&entity.Brand{},
		&entity.Store{},
		&entity.StorePrice{},
		&entity.Voucher{},
		&entity.User{},
		&entity.Company{},
	)
	if err != nil {
		return nil, err
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
