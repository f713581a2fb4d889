package service

import (
	"context"
	"errors"
	"fmt"

	"maison-heritage-store/internal/auth"
	"maison-heritage-store/internal/dto"
	"maison-heritage-store/internal/model"
	"maison-heritage-store/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserService handles accounts, sessions, wishlist and order history.
type UserService struct {
	userRepo     repository.UserRepository
	orderRepo    repository.OrderRepository
	wishlistRepo repository.WishlistRepository
	jwt          *auth.JWTService
	logger       *zap.Logger
}

func NewUserService(
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	wishlistRepo repository.WishlistRepository,
	jwt *auth.JWTService,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		orderRepo:    orderRepo,
		wishlistRepo: wishlistRepo,
		jwt:          jwt,
		logger:       logger,
	}
}

func (s *UserService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         "customer",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID))
	return s.issueToken(user)
}

func (s *UserService) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *UserService) issueToken(user *model.User) (*dto.AuthResponse, error) {
	token, _, err := s.jwt.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &dto.AuthResponse{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}, nil
}

func (s *UserService) Orders(ctx context.Context, userID string) ([]*model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *UserService) AddToWishlist(ctx context.Context, userID, productID string) error {
	if err := s.wishlistRepo.Add(ctx, userID, productID); err != nil {
		return fmt.Errorf("add to wishlist: %w", err)
	}
	return nil
}

func (s *UserService) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	if err := s.wishlistRepo.Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("remove from wishlist: %w", err)
	}
	return nil
}

func (s *UserService) Wishlist(ctx context.Context, userID string) ([]*model.Product, error) {
	products, err := s.wishlistRepo.ListProducts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	return products, nil
}
