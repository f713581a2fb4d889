package client

import (
	"fmt"
	"time"

	"maison-heritage-store/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens MySQL when a DATABASE_URL is configured, otherwise a local
// SQLite file.
func InitDB(databaseURL, sqlitePath string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	if databaseURL != "" {
		db, err = gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool (important for webhooks)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.Product{},
		&model.User{},
		&model.Order{},
		&model.OrderItem{},
		&model.PaymentAttempt{},
		&model.CartRecord{},
		&model.Review{},
		&model.WishlistItem{},
		&model.AdminLog{},
		&model.NewsletterSubscriber{},
		&model.WebhookEvent{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return db, nil
}
