package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/identity"
	"github.com/hoa/backend/internal/domain/shared"
	"github.com/hoa/backend/internal/infrastructure/auth"
	"github.com/hoa/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, filter identity.UserFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newTestAuthService(userRepo identity.UserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-test-secret-test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "hoa-backend-test",
		MaxRefreshCount:        5,
	})
	return NewAuthService(userRepo, jwtService, auth.NewInMemoryTokenBlacklist(), DefaultAuthServiceConfig(), zap.NewNop())
}

func newApprovedHomeowner(t *testing.T, email, password string) *identity.User {
	t.Helper()
	user, err := identity.NewHomeowner(email, "Maria Santos", password)
	require.NoError(t, err)
	require.NoError(t, user.Approve())
	return user
}

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("returns tokens for valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestAuthService(userRepo)

		user := newApprovedHomeowner(t, "maria@example.com", "s3cret-password")
		userRepo.On("FindByEmail", ctx, "maria@example.com").Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		result, err := svc.Login(ctx, LoginInput{Email: "maria@example.com", Password: "s3cret-password", IP: "10.0.0.1"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "homeowner", result.User.Role)
		assert.Equal(t, "10.0.0.1", user.LastLoginIP)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown email without revealing it", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestAuthService(userRepo)

		userRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, nil)

		_, err := svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "whatever"})
		assertDomainErrorCode(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("rejects wrong password and records the failure", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestAuthService(userRepo)

		user := newApprovedHomeowner(t, "maria@example.com", "s3cret-password")
		userRepo.On("FindByEmail", ctx, "maria@example.com").Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		_, err := svc.Login(ctx, LoginInput{Email: "maria@example.com", Password: "wrong"})
		assertDomainErrorCode(t, err, "INVALID_CREDENTIALS")
		assert.Equal(t, 1, user.FailedAttempts)
	})

	t.Run("locks the account after repeated failures", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestAuthService(userRepo)

		user := newApprovedHomeowner(t, "maria@example.com", "s3cret-password")
		userRepo.On("FindByEmail", ctx, "maria@example.com").Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		var err error
		for i := 0; i < 5; i++ {
			_, err = svc.Login(ctx, LoginInput{Email: "maria@example.com", Password: "wrong"})
		}
		assertDomainErrorCode(t, err, "ACCOUNT_LOCKED")
		assert.True(t, user.IsLocked())
	})

	t.Run("rejects an unapproved homeowner", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestAuthService(userRepo)

		user, err := identity.NewHomeowner("pending@example.com", "Jose Cruz", "s3cret-password")
		require.NoError(t, err)
		userRepo.On("FindByEmail", ctx, "pending@example.com").Return(user, nil)

		_, err = svc.Login(ctx, LoginInput{Email: "pending@example.com", Password: "s3cret-password"})
		assertDomainErrorCode(t, err, "ACCOUNT_PENDING")
	})

	t.Run("rejects a deactivated account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestAuthService(userRepo)

		user := newApprovedHomeowner(t, "maria@example.com", "s3cret-password")
		require.NoError(t, user.Deactivate())
		userRepo.On("FindByEmail", ctx, "maria@example.com").Return(user, nil)

		_, err := svc.Login(ctx, LoginInput{Email: "maria@example.com", Password: "s3cret-password"})
		assertDomainErrorCode(t, err, "ACCOUNT_DEACTIVATED")
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a fresh pair for an active user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestAuthService(userRepo)

		user := newApprovedHomeowner(t, "maria@example.com", "s3cret-password")
		userRepo.On("FindByEmail", ctx, "maria@example.com").Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		login, err := svc.Login(ctx, LoginInput{Email: "maria@example.com", Password: "s3cret-password"})
		require.NoError(t, err)

		refreshed, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	})

	t.Run("rejects a garbage refresh token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestAuthService(userRepo)

		_, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: "garbage"})
		assertDomainErrorCode(t, err, "TOKEN_INVALID")
	})

	t.Run("rejects refresh for a user who can no longer log in", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestAuthService(userRepo)

		user := newApprovedHomeowner(t, "maria@example.com", "s3cret-password")
		userRepo.On("FindByEmail", ctx, "maria@example.com").Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		login, err := svc.Login(ctx, LoginInput{Email: "maria@example.com", Password: "s3cret-password"})
		require.NoError(t, err)

		require.NoError(t, user.Deactivate())
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
		assertDomainErrorCode(t, err, "ACCOUNT_INACTIVE")
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)

	t.Run("revokes the current access token", func(t *testing.T) {
		err := svc.Logout(ctx, LogoutInput{
			UserID:    uuid.New(),
			AccessJTI: "jti-123",
			ExpiresAt: time.Now().Add(10 * time.Minute),
		})
		require.NoError(t, err)

		revoked, err := svc.blacklist.IsRevoked(ctx, "jti-123")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("is a no-op for an already expired token", func(t *testing.T) {
		err := svc.Logout(ctx, LogoutInput{
			UserID:    uuid.New(),
			AccessJTI: "jti-456",
			ExpiresAt: time.Now().Add(-time.Minute),
		})
		require.NoError(t, err)

		revoked, err := svc.blacklist.IsRevoked(ctx, "jti-456")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
