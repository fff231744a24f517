package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/shared"
	"github.com/hoa/backend/internal/interfaces/http/dto"
	"github.com/hoa/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides the response helpers shared by all handlers
type BaseHandler struct{}

// Success sends a 200 response with the standard envelope
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Paginated sends a 200 response with pagination meta
func Paginated[T any](c *gin.Context, result *shared.Paginated[T]) {
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(result))
}

// Created sends a 201 response with the standard envelope
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends an empty 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response, typically for malformed bodies
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, message))
}

// Unauthorized sends a 401 response
func (h *BaseHandler) Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
}

// Forbidden sends a 403 response
func (h *BaseHandler) Forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, dto.NewErrorResponse(dto.ErrCodeForbidden, message))
}

// HandleError converts an error into the appropriate response. Domain
// errors surface their own code; anything else answers 500 without
// leaking internals.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(status, dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}

	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrCodeInternal, "An unexpected error occurred"))
}

// pathID parses the :id path parameter, answering 400 itself on failure
func (h *BaseHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ID in path")
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID returns the authenticated caller's ID, answering 401
// itself when the context carries none
func (h *BaseHandler) currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		h.Unauthorized(c)
		return uuid.Nil, false
	}
	return userID, true
}
