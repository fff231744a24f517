package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/identity"
	"github.com/hoa/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService handles user account operations
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetProfile returns the caller's own profile
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.ErrNotFound
	}
	response := ToUserResponse(user)
	return &response, nil
}

// UpdateProfile updates the caller's own profile
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.ErrNotFound
	}

	if req.FullName != nil {
		if err := user.SetFullName(*req.FullName); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		if err := user.SetPhone(*req.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// ChangePassword changes the caller's own password after verifying the old one
func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return shared.ErrNotFound
	}

	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

// GetByID retrieves a user by ID (admin)
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	return s.GetProfile(ctx, userID)
}

// List returns users matching the filter (admin)
func (s *UserService) List(ctx context.Context, req ListUsersRequest) (*shared.Paginated[UserResponse], error) {
	filter := identity.NewUserFilter().WithPagination(req.Page, req.PageSize)
	if req.Keyword != "" {
		filter = filter.WithKeyword(req.Keyword)
	}
	if req.Role != "" {
		filter = filter.WithRole(identity.UserRole(req.Role))
	}
	if req.Status != "" {
		filter = filter.WithStatus(identity.UserStatus(req.Status))
	}
	if req.IsApproved != nil {
		filter = filter.WithApproved(*req.IsApproved)
	}

	users, total, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]UserResponse, len(users))
	for i, user := range users {
		items[i] = ToUserResponse(user)
	}

	result := shared.NewPaginated(items, total, req.Page, req.PageSize)
	return &result, nil
}

// Deactivate deactivates a user account (admin)
func (s *UserService) Deactivate(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return shared.ErrNotFound
	}

	if err := user.Deactivate(); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("User deactivated", zap.String("user_id", userID.String()))
	return nil
}

// Activate reactivates a deactivated user account (admin)
func (s *UserService) Activate(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return shared.ErrNotFound
	}

	if err := user.Activate(); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("User activated", zap.String("user_id", userID.String()))
	return nil
}
