package repository

import (
	"context"

	"maison-heritage-store/internal/model"

	"gorm.io/gorm"
)

type AdminLogRepository interface {
	Insert(ctx context.Context, entry *model.AdminLog) error
	List(ctx context.Context, limit int) ([]*model.AdminLog, error)
}

type adminLogRepoImpl struct {
	db *gorm.DB
}

func NewAdminLogRepository(db *gorm.DB) AdminLogRepository {
	return &adminLogRepoImpl{
		db: db,
	}
}

func (r *adminLogRepoImpl) Insert(ctx context.Context, entry *model.AdminLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *adminLogRepoImpl) List(ctx context.Context, limit int) ([]*model.AdminLog, error) {
	if limit <= 0 {
		limit = 100
	}

	var entries []*model.AdminLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error

	if err != nil {
		return nil, err
	}

	return entries, nil
}
