package repository

import (
	"context"
	"time"

	"maison-heritage-store/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NewsletterRepository interface {
	Subscribe(ctx context.Context, email, firstName string) error
}

type newsletterRepoImpl struct {
	db *gorm.DB
}

func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &newsletterRepoImpl{
		db: db,
	}
}

func (r *newsletterRepoImpl) Subscribe(ctx context.Context, email, firstName string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_active": true,
		}),
	}).Create(&model.NewsletterSubscriber{
		Email:        email,
		FirstName:    firstName,
		IsActive:     true,
		SubscribedAt: time.Now(),
	}).Error
}
