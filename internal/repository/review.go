package repository

import (
	"context"

	"maison-heritage-store/internal/model"

	"gorm.io/gorm"
)

type ReviewSummary struct {
	AverageRating float64
	TotalReviews  int64
}

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListByProduct(ctx context.Context, productID string) ([]*model.Review, error)
	Summary(ctx context.Context, productID string) (*ReviewSummary, error)
}

type reviewRepoImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepoImpl{
		db: db,
	}
}

func (r *reviewRepoImpl) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		// Keep the product's denormalized rating in step.
		var summary struct {
			Avg   float64
			Count int64
		}
		err := tx.Model(&model.Review{}).
			Where("product_id = ?", review.ProductID).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Scan(&summary).Error
		if err != nil {
			return err
		}

		return tx.Model(&model.Product{}).
			Where("id = ?", review.ProductID).
			Updates(map[string]interface{}{
				"rating":       summary.Avg,
				"review_count": summary.Count,
			}).Error
	})
}

func (r *reviewRepoImpl) ListByProduct(ctx context.Context, productID string) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error

	if err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *reviewRepoImpl) Summary(ctx context.Context, productID string) (*ReviewSummary, error) {
	var summary struct {
		Avg   float64
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Scan(&summary).Error

	if err != nil {
		return nil, err
	}

	return &ReviewSummary{
		AverageRating: summary.Avg,
		TotalReviews:  summary.Count,
	}, nil
}
