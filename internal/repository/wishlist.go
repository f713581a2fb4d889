package repository

import (
	"context"
	"time"

	"maison-heritage-store/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WishlistRepository interface {
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	ListProducts(ctx context.Context, userID string) ([]*model.Product, error)
}

type wishlistRepoImpl struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepoImpl{
		db: db,
	}
}

func (r *wishlistRepoImpl) Add(ctx context.Context, userID, productID string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.WishlistItem{
			UserID:    userID,
			ProductID: productID,
			CreatedAt: time.Now(),
		}).Error
}

func (r *wishlistRepoImpl) Remove(ctx context.Context, userID, productID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.WishlistItem{}).Error
}

func (r *wishlistRepoImpl) ListProducts(ctx context.Context, userID string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Joins("JOIN wishlist_items ON wishlist_items.product_id = products.id").
		Where("wishlist_items.user_id = ?", userID).
		Order("wishlist_items.created_at DESC").
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}
