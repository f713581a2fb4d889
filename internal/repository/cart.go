package repository

import (
	"context"
	"errors"
	"time"

	"maison-heritage-store/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository persists one cart snapshot per owner. Last writer wins; two
// clients sharing an owner key are not merged.
type CartRepository interface {
	Save(ctx context.Context, record *model.CartRecord) error
	Load(ctx context.Context, ownerID string) (*model.CartRecord, bool, error)
	Delete(ctx context.Context, ownerID string) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) Save(ctx context.Context, record *model.CartRecord) error {
	record.UpdatedAt = time.Now()

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"items_json": record.ItemsJSON,
			"currency":   record.Currency,
			"updated_at": record.UpdatedAt,
		}),
	}).Create(record).Error
}

func (r *cartRepoImpl) Load(ctx context.Context, ownerID string) (*model.CartRecord, bool, error) {
	var record model.CartRecord
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&record).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return &record, true, nil
}

func (r *cartRepoImpl) Delete(ctx context.Context, ownerID string) error {
	return r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&model.CartRecord{}).Error
}
