package service

import (
	"context"
	"errors"
	"fmt"

	"maison-heritage-store/internal/dto"
	"maison-heritage-store/internal/model"
	"maison-heritage-store/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

// CatalogService wraps the product repository with storefront rules: only
// active products are visible, stock flags are derived, and writes go through
// the admin surface.
type CatalogService struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	logger      *zap.Logger
}

func NewCatalogService(productRepo repository.ProductRepository, reviewRepo repository.ReviewRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		logger:      logger,
	}
}

func (s *CatalogService) List(ctx context.Context, filters repository.ProductFilters) ([]*model.Product, int64, error) {
	products, total, err := s.productRepo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

func (s *CatalogService) BySlug(ctx context.Context, slug string) (*model.Product, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) ByID(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) Create(ctx context.Context, product *model.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	product.IsActive = true
	product.InStock = product.StockCount > 0

	if err := s.productRepo.Create(ctx, product); err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	s.logger.Info("product created", zap.String("product_id", product.ID), zap.String("slug", product.Slug))
	return nil
}

func (s *CatalogService) Update(ctx context.Context, productID string, updates map[string]interface{}) error {
	if stock, ok := updates["stock_count"]; ok {
		if n, ok := stock.(int); ok {
			updates["in_stock"] = n > 0
		}
	}

	if err := s.productRepo.Update(ctx, productID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (s *CatalogService) Deactivate(ctx context.Context, productID string) error {
	if err := s.productRepo.Deactivate(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("deactivate product: %w", err)
	}
	return nil
}

// AddReview records a review and refreshes the product's denormalized rating.
func (s *CatalogService) AddReview(ctx context.Context, userID string, req *dto.CreateReviewRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	if _, err := s.ByID(ctx, req.ProductID); err != nil {
		return err
	}

	review := &model.Review{
		ProductID: req.ProductID,
		UserID:    userID,
		Rating:    req.Rating,
		Title:     req.Title,
		Content:   req.Content,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (s *CatalogService) Reviews(ctx context.Context, productID string) ([]*model.Review, *repository.ReviewSummary, error) {
	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, nil, fmt.Errorf("list reviews: %w", err)
	}
	summary, err := s.reviewRepo.Summary(ctx, productID)
	if err != nil {
		return nil, nil, fmt.Errorf("review summary: %w", err)
	}
	return reviews, summary, nil
}
