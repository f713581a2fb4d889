package repository

import (
	"context"
	"time"

	"maison-heritage-store/internal/model"

	"gorm.io/gorm"
)

type PaymentAttemptRepository interface {
	Create(ctx context.Context, attempt *model.PaymentAttempt) error
	FindByKey(ctx context.Context, sessionKey string) (*model.PaymentAttempt, error)
	Update(ctx context.Context, sessionKey string, updates map[string]interface{}) error
	MarkSucceeded(ctx context.Context, tx *gorm.DB, sessionKey, providerRef string) error
	MarkFailed(ctx context.Context, sessionKey, errorText string) error
}

type paymentAttemptRepoImpl struct {
	db *gorm.DB
}

func NewPaymentAttemptRepository(db *gorm.DB) PaymentAttemptRepository {
	return &paymentAttemptRepoImpl{
		db: db,
	}
}

func (r *paymentAttemptRepoImpl) Create(ctx context.Context, attempt *model.PaymentAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *paymentAttemptRepoImpl) FindByKey(ctx context.Context, sessionKey string) (*model.PaymentAttempt, error) {
	var attempt model.PaymentAttempt
	err := r.db.WithContext(ctx).
		Where("session_key = ?", sessionKey).
		First(&attempt).Error

	if err != nil {
		return nil, err
	}

	return &attempt, nil
}

func (r *paymentAttemptRepoImpl) Update(ctx context.Context, sessionKey string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).Model(&model.PaymentAttempt{}).
		Where("session_key = ?", sessionKey).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *paymentAttemptRepoImpl) MarkSucceeded(ctx context.Context, tx *gorm.DB, sessionKey, providerRef string) error {
	return tx.WithContext(ctx).Model(&model.PaymentAttempt{}).
		Where("session_key = ? AND status != ?", sessionKey, model.AttemptStatusSucceeded).
		Updates(map[string]interface{}{
			"status":       model.AttemptStatusSucceeded,
			"provider_ref": providerRef,
			"error_text":   "",
			"updated_at":   time.Now(),
		}).Error
}

func (r *paymentAttemptRepoImpl) MarkFailed(ctx context.Context, sessionKey, errorText string) error {
	return r.Update(ctx, sessionKey, map[string]interface{}{
		"status":     model.AttemptStatusFailed,
		"error_text": errorText,
	})
}
