package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hoa/backend/internal/infrastructure/auth"
	"github.com/hoa/backend/internal/infrastructure/logger"
	"github.com/hoa/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Context keys for authenticated request state
const (
	ClaimsKey = "auth_claims"
	UserIDKey = "auth_user_id"
	RoleKey   = "auth_role"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// AuthConfig holds dependencies for the authentication middleware
type AuthConfig struct {
	JWTService *auth.JWTService
	// Blacklist is optional; without it revocation checks are skipped
	Blacklist auth.TokenBlacklist
	Logger    *zap.Logger
}

// Authenticate validates the bearer token and stores its claims in the
// request context. Routes mounted behind it always see a valid user.
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader(authHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, auth.ErrInvalidToken)
			return
		}
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			abortUnauthorized(c, auth.ErrInvalidToken)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, auth.ErrInvalidToken)
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		if cfg.Blacklist != nil {
			ctx := c.Request.Context()

			if claims.ID != "" {
				revoked, err := cfg.Blacklist.IsRevoked(ctx, claims.ID)
				if err != nil {
					// Fail open: a blacklist outage must not take
					// authentication down with it
					log.Warn("Token revocation check failed",
						zap.String("jti", claims.ID),
						zap.Error(err))
				} else if revoked {
					abortUnauthorized(c, auth.ErrTokenBlacklisted)
					return
				}
			}

			if claims.IssuedAt != nil {
				revoked, err := cfg.Blacklist.IsRevokedForUser(ctx, claims.UserID, claims.IssuedAt.Time)
				if err != nil {
					log.Warn("Session revocation check failed",
						zap.String("user_id", claims.UserID),
						zap.Error(err))
				} else if revoked {
					abortUnauthorized(c, auth.ErrTokenBlacklisted)
					return
				}
			}
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)

		ctx := c.Request.Context()
		ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin
// role. Mount it after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Administrator access required"))
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	code := dto.ErrCodeUnauthorized
	message := "Authentication required"

	switch err {
	case auth.ErrExpiredToken:
		code = "TOKEN_EXPIRED"
		message = "Token has expired"
	case auth.ErrInvalidToken, auth.ErrInvalidClaims, auth.ErrInvalidTokenType, auth.ErrMissingUserID:
		code = "TOKEN_INVALID"
		message = "Invalid token"
	case auth.ErrTokenNotYetValid:
		code = "TOKEN_INVALID"
		message = "Token is not yet valid"
	case auth.ErrTokenBlacklisted:
		code = "TOKEN_REVOKED"
		message = "Token has been revoked"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}

// GetClaims retrieves the validated claims from the gin context
func GetClaims(c *gin.Context) *auth.Claims {
	if value, exists := c.Get(ClaimsKey); exists {
		if claims, ok := value.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetUserID retrieves the authenticated user's ID from the gin context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	raw, ok := value.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetRole retrieves the authenticated user's role from the gin context
func GetRole(c *gin.Context) string {
	return c.GetString(RoleKey)
}

// IsAdmin reports whether the authenticated user carries the admin role
func IsAdmin(c *gin.Context) bool {
	claims := GetClaims(c)
	return claims != nil && claims.IsAdmin()
}
