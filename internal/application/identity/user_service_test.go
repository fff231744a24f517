package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/identity"
	"github.com/hoa/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUserService() (*UserService, *MockUserRepository) {
	userRepo := new(MockUserRepository)
	return NewUserService(userRepo, zap.NewNop()), userRepo
}

func activeHomeowner(t *testing.T, email string) *identity.User {
	t.Helper()
	user, err := identity.NewHomeowner(email, "Test Homeowner", "S3curePass!")
	require.NoError(t, err)
	require.NoError(t, user.Approve())
	return user
}

func TestUserService_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the caller's profile", func(t *testing.T) {
		svc, userRepo := newTestUserService()
		user := activeHomeowner(t, "maria@example.com")
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		resp, err := svc.GetProfile(ctx, user.ID)

		require.NoError(t, err)
		assert.Equal(t, user.ID, resp.ID)
		assert.Equal(t, "maria@example.com", resp.Email)
	})

	t.Run("returns NOT_FOUND for an unknown user", func(t *testing.T) {
		svc, userRepo := newTestUserService()
		userRepo.On("FindByID", ctx, mock.Anything).Return(nil, nil)

		_, err := svc.GetProfile(ctx, uuid.New())

		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("updates name and phone", func(t *testing.T) {
		svc, userRepo := newTestUserService()
		user := activeHomeowner(t, "maria@example.com")
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		newName := "Maria Santos-Cruz"
		newPhone := "+63 917 555 0101"
		resp, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileRequest{
			FullName: &newName,
			Phone:    &newPhone,
		})

		require.NoError(t, err)
		assert.Equal(t, newName, resp.FullName)
		assert.Equal(t, newPhone, resp.Phone)
		userRepo.AssertCalled(t, "Update", ctx, user)
	})

	t.Run("leaves omitted fields untouched", func(t *testing.T) {
		svc, userRepo := newTestUserService()
		user := activeHomeowner(t, "maria@example.com")
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		newPhone := "+63 917 555 0101"
		resp, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileRequest{Phone: &newPhone})

		require.NoError(t, err)
		assert.Equal(t, "Test Homeowner", resp.FullName)
		assert.Equal(t, newPhone, resp.Phone)
	})

	t.Run("rejects an invalid name without persisting", func(t *testing.T) {
		svc, userRepo := newTestUserService()
		user := activeHomeowner(t, "maria@example.com")
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		empty := ""
		_, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileRequest{FullName: &empty})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("returns NOT_FOUND for an unknown user", func(t *testing.T) {
		svc, userRepo := newTestUserService()
		userRepo.On("FindByID", ctx, mock.Anything).Return(nil, nil)

		name := "New Name"
		_, err := svc.UpdateProfile(ctx, uuid.New(), UpdateProfileRequest{FullName: &name})

		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("changes the password when the old one matches", func(t *testing.T) {
		svc, userRepo := newTestUserService()
		user := activeHomeowner(t, "maria@example.com")
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		err := svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
			OldPassword: "S3curePass!",
			NewPassword: "N3wSecret!",
		})

		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("N3wSecret!"))
		userRepo.AssertCalled(t, "Update", ctx, user)
	})

	t.Run("rejects a wrong old password", func(t *testing.T) {
		svc, userRepo := newTestUserService()
		user := activeHomeowner(t, "maria@example.com")
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		err := svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
			OldPassword: "wrong-pass",
			NewPassword: "N3wSecret!",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PASSWORD", domainErr.Code)
		assert.True(t, user.VerifyPassword("S3curePass!"))
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("returns NOT_FOUND for an unknown user", func(t *testing.T) {
		svc, userRepo := newTestUserService()
		userRepo.On("FindByID", ctx, mock.Anything).Return(nil, nil)

		err := svc.ChangePassword(ctx, uuid.New(), ChangePasswordRequest{
			OldPassword: "S3curePass!",
			NewPassword: "N3wSecret!",
		})

		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("returns a paginated page of users", func(t *testing.T) {
		svc, userRepo := newTestUserService()
		users := []*identity.User{
			activeHomeowner(t, "a@example.com"),
			activeHomeowner(t, "b@example.com"),
		}
		userRepo.On("FindAll", ctx, mock.Anything).Return(users, int64(42), nil)

		result, err := svc.List(ctx, ListUsersRequest{Page: 2, PageSize: 2})

		require.NoError(t, err)
		assert.Len(t, result.Items, 2)
		assert.Equal(t, int64(42), result.Total)
		assert.Equal(t, 2, result.Page)
		assert.Equal(t, 21, result.TotalPages)
	})

	t.Run("passes filters through to the repository", func(t *testing.T) {
		svc, userRepo := newTestUserService()
		approved := true
		userRepo.On("FindAll", ctx, mock.MatchedBy(func(f identity.UserFilter) bool {
			return f.Keyword == "santos" &&
				f.Role != nil && *f.Role == identity.UserRoleHomeowner &&
				f.IsApproved != nil && *f.IsApproved
		})).Return([]*identity.User{}, int64(0), nil)

		_, err := svc.List(ctx, ListUsersRequest{
			Keyword:    "santos",
			Role:       "homeowner",
			IsApproved: &approved,
			Page:       1,
			PageSize:   20,
		})

		require.NoError(t, err)
		userRepo.AssertExpectations(t)
	})
}

func TestUserService_DeactivateActivate(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivates an active account", func(t *testing.T) {
		svc, userRepo := newTestUserService()
		user := activeHomeowner(t, "maria@example.com")
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		err := svc.Deactivate(ctx, user.ID)

		require.NoError(t, err)
		assert.Equal(t, identity.UserStatusDeactivated, user.Status)
	})

	t.Run("deactivating twice is an invalid transition", func(t *testing.T) {
		svc, userRepo := newTestUserService()
		user := activeHomeowner(t, "maria@example.com")
		require.NoError(t, user.Deactivate())
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		err := svc.Deactivate(ctx, user.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE_TRANSITION", domainErr.Code)
	})

	t.Run("reactivates a deactivated account", func(t *testing.T) {
		svc, userRepo := newTestUserService()
		user := activeHomeowner(t, "maria@example.com")
		require.NoError(t, user.Deactivate())
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		err := svc.Activate(ctx, user.ID)

		require.NoError(t, err)
		assert.Equal(t, identity.UserStatusActive, user.Status)
	})

	t.Run("activating an active account is an invalid transition", func(t *testing.T) {
		svc, userRepo := newTestUserService()
		user := activeHomeowner(t, "maria@example.com")
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		err := svc.Activate(ctx, user.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE_TRANSITION", domainErr.Code)
	})

	t.Run("returns NOT_FOUND for an unknown user", func(t *testing.T) {
		svc, userRepo := newTestUserService()
		userRepo.On("FindByID", ctx, mock.Anything).Return(nil, nil)

		require.ErrorIs(t, svc.Deactivate(ctx, uuid.New()), shared.ErrNotFound)
	})
}
