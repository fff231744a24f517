package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hoa/backend/internal/application/identity"
)

// ProfileHandler handles the caller's own account endpoints
type ProfileHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(userService *identity.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

// Get handles GET /profile
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// Update handles PUT /profile
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req identity.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// ChangePassword handles PUT /profile/password
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req identity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
