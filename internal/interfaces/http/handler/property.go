package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hoa/backend/internal/application/property"
)

// PropertyHandler handles block and lot administration endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *property.PropertyService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(propertyService *property.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// CreateBlock handles POST /admin/blocks
func (h *PropertyHandler) CreateBlock(c *gin.Context) {
	var req property.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.propertyService.CreateBlock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListBlocks handles GET /admin/blocks
func (h *PropertyHandler) ListBlocks(c *gin.Context) {
	result, err := h.propertyService.ListBlocks(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetBlock handles GET /admin/blocks/:id
func (h *PropertyHandler) GetBlock(c *gin.Context) {
	blockID, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.propertyService.GetBlock(c.Request.Context(), blockID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UpdateBlock handles PUT /admin/blocks/:id
func (h *PropertyHandler) UpdateBlock(c *gin.Context) {
	blockID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req property.UpdateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.propertyService.UpdateBlock(c.Request.Context(), blockID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DeleteBlock handles DELETE /admin/blocks/:id
func (h *PropertyHandler) DeleteBlock(c *gin.Context) {
	blockID, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.propertyService.DeleteBlock(c.Request.Context(), blockID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateLot handles POST /admin/lots
func (h *PropertyHandler) CreateLot(c *gin.Context) {
	var req property.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.propertyService.CreateLot(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListLots handles GET /admin/lots
func (h *PropertyHandler) ListLots(c *gin.Context) {
	var req property.ListLotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.propertyService.ListLots(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(c, result)
}

// GetLot handles GET /admin/lots/:id
func (h *PropertyHandler) GetLot(c *gin.Context) {
	lotID, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.propertyService.GetLot(c.Request.Context(), lotID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// AssignLot handles POST /admin/lots/:id/assign
func (h *PropertyHandler) AssignLot(c *gin.Context) {
	lotID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req property.AssignLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.propertyService.AssignLot(c.Request.Context(), lotID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// VacateLot handles POST /admin/lots/:id/vacate
func (h *PropertyHandler) VacateLot(c *gin.Context) {
	lotID, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.propertyService.VacateLot(c.Request.Context(), lotID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DeleteLot handles DELETE /admin/lots/:id
func (h *PropertyHandler) DeleteLot(c *gin.Context) {
	lotID, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.propertyService.DeleteLot(c.Request.Context(), lotID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
