package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hoa/backend/internal/application/identity"
	"github.com/hoa/backend/internal/application/registration"
	"github.com/hoa/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles registration and session endpoints
type AuthHandler struct {
	BaseHandler
	registrationService *registration.RegistrationService
	authService         *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(registrationService *registration.RegistrationService, authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{
		registrationService: registrationService,
		authService:         authService,
	}
}

// Register handles POST /auth/register. A successful signup creates a
// pending application; the account cannot log in until approved.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registration.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.registrationService.Signup(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input identity.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	input.IP = c.ClientIP()

	result, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input identity.RefreshTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Logout handles POST /auth/logout. The access token presented on this
// request is revoked for the rest of its lifetime.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		h.Unauthorized(c)
		return
	}
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	expiresAt := time.Now()
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	err := h.authService.Logout(c.Request.Context(), identity.LogoutInput{
		UserID:    userID,
		AccessJTI: claims.ID,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
