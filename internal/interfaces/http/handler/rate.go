package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hoa/backend/internal/application/billing"
)

// RateHandler handles the dues rate schedule endpoints
type RateHandler struct {
	BaseHandler
	rateService *billing.RateService
}

// NewRateHandler creates a new rate handler
func NewRateHandler(rateService *billing.RateService) *RateHandler {
	return &RateHandler{rateService: rateService}
}

// List handles GET /admin/rates
func (h *RateHandler) List(c *gin.Context) {
	result, err := h.rateService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Create handles POST /admin/rates. Rates are append-only; a new row
// supersedes older ones from its effective date onward.
func (h *RateHandler) Create(c *gin.Context) {
	adminID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req billing.CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.rateService.Create(c.Request.Context(), adminID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Deactivate handles POST /admin/rates/:id/deactivate
func (h *RateHandler) Deactivate(c *gin.Context) {
	rateID, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.rateService.Deactivate(c.Request.Context(), rateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
