package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hoa/backend/internal/application/registration"
)

// ApplicationHandler handles registration review endpoints
type ApplicationHandler struct {
	BaseHandler
	registrationService *registration.RegistrationService
	reviewService       *registration.ReviewService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(registrationService *registration.RegistrationService, reviewService *registration.ReviewService) *ApplicationHandler {
	return &ApplicationHandler{
		registrationService: registrationService,
		reviewService:       reviewService,
	}
}

// List handles GET /admin/applications
func (h *ApplicationHandler) List(c *gin.Context) {
	var req registration.ListApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.registrationService.List(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(c, result)
}

// Get handles GET /admin/applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	applicationID, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.registrationService.GetByID(c.Request.Context(), applicationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Approve handles POST /admin/applications/:id/approve
func (h *ApplicationHandler) Approve(c *gin.Context) {
	applicationID, ok := h.pathID(c)
	if !ok {
		return
	}
	reviewerID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req registration.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.reviewService.Approve(c.Request.Context(), applicationID, reviewerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UpdateNotes handles PUT /admin/applications/:id/notes
func (h *ApplicationHandler) UpdateNotes(c *gin.Context) {
	applicationID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req registration.UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.reviewService.UpdateNotes(c.Request.Context(), applicationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Reject handles POST /admin/applications/:id/reject
func (h *ApplicationHandler) Reject(c *gin.Context) {
	applicationID, ok := h.pathID(c)
	if !ok {
		return
	}
	reviewerID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req registration.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.reviewService.Reject(c.Request.Context(), applicationID, reviewerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
