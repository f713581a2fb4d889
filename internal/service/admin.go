package service

import (
	"context"
	"fmt"

	"maison-heritage-store/internal/model"
	"maison-heritage-store/internal/repository"

	"go.uber.org/zap"
)

type DashboardStats struct {
	TotalOrders   int64   `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalProducts int64   `json:"total_products"`
	TotalUsers    int64   `json:"total_users"`
}

// AdminService backs the admin dashboard. Every mutating admin action is
// recorded in the audit log.
type AdminService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	userRepo     repository.UserRepository
	adminLogRepo repository.AdminLogRepository
	logger       *zap.Logger
}

func NewAdminService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	adminLogRepo repository.AdminLogRepository,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		adminLogRepo: adminLogRepo,
		logger:       logger,
	}
}

func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	orders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	revenue, err := s.orderRepo.PaidRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	products, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	return &DashboardStats{
		TotalOrders:   orders,
		TotalRevenue:  revenue,
		TotalProducts: products,
		TotalUsers:    users,
	}, nil
}

func (s *AdminService) Orders(ctx context.Context, limit, offset int) ([]*model.Order, error) {
	orders, err := s.orderRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *AdminService) UpdateOrderStatus(ctx context.Context, adminID, orderNumber, status string) error {
	switch status {
	case "pending", "confirmed", "shipped", "delivered", "cancelled":
	default:
		return fmt.Errorf("invalid order status %q", status)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderNumber, status); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	s.logAction(ctx, adminID, "update_status", "order", orderNumber, "status="+status)
	return nil
}

func (s *AdminService) Users(ctx context.Context, role string, limit, offset int) ([]*model.User, error) {
	users, err := s.userRepo.List(ctx, role, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *AdminService) AuditLog(ctx context.Context, limit int) ([]*model.AdminLog, error) {
	entries, err := s.adminLogRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list admin log: %w", err)
	}
	return entries, nil
}

// LogAction is used by the handlers for product mutations too, so the audit
// trail covers everything an admin touches.
func (s *AdminService) LogAction(ctx context.Context, adminID, action, resourceType, resourceID, details string) {
	s.logAction(ctx, adminID, action, resourceType, resourceID, details)
}

func (s *AdminService) logAction(ctx context.Context, adminID, action, resourceType, resourceID, details string) {
	entry := &model.AdminLog{
		AdminID:      adminID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
	}
	if err := s.adminLogRepo.Insert(ctx, entry); err != nil {
		s.logger.Error("insert admin log", zap.String("action", action), zap.Error(err))
	}
}
