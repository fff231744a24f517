package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hoa/backend/internal/application/identity"
)

// HomeownerHandler handles homeowner account administration endpoints
type HomeownerHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewHomeownerHandler creates a new homeowner handler
func NewHomeownerHandler(userService *identity.UserService) *HomeownerHandler {
	return &HomeownerHandler{userService: userService}
}

// List handles GET /admin/homeowners
func (h *HomeownerHandler) List(c *gin.Context) {
	var req identity.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.userService.List(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(c, result)
}

// Get handles GET /admin/homeowners/:id
func (h *HomeownerHandler) Get(c *gin.Context) {
	userID, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Deactivate handles POST /admin/homeowners/:id/deactivate
func (h *HomeownerHandler) Deactivate(c *gin.Context) {
	userID, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.userService.Deactivate(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Activate handles POST /admin/homeowners/:id/activate
func (h *HomeownerHandler) Activate(c *gin.Context) {
	userID, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.userService.Activate(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
