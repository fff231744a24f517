package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hoa/backend/internal/application/document"
	"github.com/hoa/backend/internal/interfaces/http/middleware"
)

// DocumentHandler serves rendered invoices and receipts
type DocumentHandler struct {
	BaseHandler
	documentService *document.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *document.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Invoice handles GET /documents/payments/:id/invoice
func (h *DocumentHandler) Invoice(c *gin.Context) {
	h.serve(c, h.documentService.InvoicePDF)
}

// Receipt handles GET /documents/payments/:id/receipt
func (h *DocumentHandler) Receipt(c *gin.Context) {
	h.serve(c, h.documentService.ReceiptPDF)
}

func (h *DocumentHandler) serve(c *gin.Context, render func(context.Context, uuid.UUID) (*document.Document, error)) {
	paymentID, ok := h.pathID(c)
	if !ok {
		return
	}

	// Homeowners may only fetch documents for their own payments
	if !middleware.IsAdmin(c) {
		userID, ok := h.currentUserID(c)
		if !ok {
			return
		}
		ownerID, err := h.documentService.OwnerID(c.Request.Context(), paymentID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		if ownerID != userID {
			h.Forbidden(c, "Document belongs to another homeowner")
			return
		}
	}

	doc, err := render(c.Request.Context(), paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}
