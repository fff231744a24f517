package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hoa/backend/internal/application/policy"
)

// PolicyHandler handles association policy endpoints
type PolicyHandler struct {
	BaseHandler
	policyService *policy.PolicyService
}

// NewPolicyHandler creates a new policy handler
func NewPolicyHandler(policyService *policy.PolicyService) *PolicyHandler {
	return &PolicyHandler{policyService: policyService}
}

// List handles GET /admin/policies, including deactivated ones
func (h *PolicyHandler) List(c *gin.Context) {
	result, err := h.policyService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListActive handles GET /policies for homeowners
func (h *PolicyHandler) ListActive(c *gin.Context) {
	result, err := h.policyService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get handles GET /admin/policies/:id
func (h *PolicyHandler) Get(c *gin.Context) {
	policyID, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.policyService.GetByID(c.Request.Context(), policyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Create handles POST /admin/policies
func (h *PolicyHandler) Create(c *gin.Context) {
	adminID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req policy.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.policyService.Create(c.Request.Context(), adminID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Update handles PUT /admin/policies/:id
func (h *PolicyHandler) Update(c *gin.Context) {
	policyID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req policy.RevisePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.policyService.Revise(c.Request.Context(), policyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Deactivate handles POST /admin/policies/:id/deactivate
func (h *PolicyHandler) Deactivate(c *gin.Context) {
	policyID, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.policyService.Deactivate(c.Request.Context(), policyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Reactivate handles POST /admin/policies/:id/reactivate
func (h *PolicyHandler) Reactivate(c *gin.Context) {
	policyID, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.policyService.Reactivate(c.Request.Context(), policyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
