package repository

import (
	"context"
	"fmt"

	"maison-heritage-store/internal/model"

	"gorm.io/gorm"
)

type ProductFilters struct {
	Category string
	Brand    string
	PriceMin float64
	PriceMax float64
	InStock  bool
	Search   string
	SortBy   string // name, price, rating, created_at
	SortDesc bool
	Limit    int
	Offset   int
}

type ProductRepository interface {
	List(ctx context.Context, filters ProductFilters) ([]*model.Product, int64, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, productID string, updates map[string]interface{}) error
	Deactivate(ctx context.Context, productID string) error
	DecrementStock(ctx context.Context, tx *gorm.DB, productID string, quantity int) error
	Count(ctx context.Context) (int64, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

var sortColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"rating":     "rating",
	"created_at": "created_at",
}

func (r *productRepoImpl) List(ctx context.Context, filters ProductFilters) ([]*model.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{}).Where("is_active = ?", true)

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Brand != "" {
		query = query.Where("brand = ?", filters.Brand)
	}
	if filters.InStock {
		query = query.Where("in_stock = ? AND stock_count > 0", true)
	}
	if filters.PriceMin > 0 {
		query = query.Where("price >= ?", filters.PriceMin)
	}
	if filters.PriceMax > 0 {
		query = query.Where("price <= ?", filters.PriceMax)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("name LIKE ? OR brand LIKE ? OR description LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[filters.SortBy]
	if !ok {
		column = "created_at"
		filters.SortDesc = true
	}
	order := column
	if filters.SortDesc {
		order += " DESC"
	}
	query = query.Order(order)

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var products []*model.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepoImpl) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) Update(ctx context.Context, productID string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Deactivate soft-deletes: the row stays for order history joins.
func (r *productRepoImpl) Deactivate(ctx context.Context, productID string) error {
	return r.Update(ctx, productID, map[string]interface{}{"is_active": false})
}

func (r *productRepoImpl) DecrementStock(ctx context.Context, tx *gorm.DB, productID string, quantity int) error {
	result := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock_count >= ?", productID, quantity).
		Updates(map[string]interface{}{
			"stock_count": gorm.Expr("stock_count - ?", quantity),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("insufficient stock for product %s", productID)
	}
	return nil
}

func (r *productRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("is_active = ?", true).
		Count(&count).Error

	return count, err
}
