package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hoa/backend/internal/application/billing"
)

// PaymentHandler handles dues and settlement endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billing.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *billing.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// List handles GET /admin/payments
func (h *PaymentHandler) List(c *gin.Context) {
	var req billing.ListPaymentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.paymentService.List(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(c, result)
}

// Get handles GET /admin/payments/:id
func (h *PaymentHandler) Get(c *gin.Context) {
	paymentID, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.paymentService.GetByID(c.Request.Context(), paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Create handles POST /admin/payments. It issues a single invoice
// against a lot, priced by the rate schedule.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req billing.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.paymentService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// MarkPaid handles POST /admin/payments/:id/mark-paid
func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	paymentID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req billing.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.paymentService.MarkPaid(c.Request.Context(), paymentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GenerateInvoices handles POST /admin/payments/generate-invoices
func (h *PaymentHandler) GenerateInvoices(c *gin.Context) {
	var req billing.GenerateInvoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.paymentService.GenerateInvoices(c.Request.Context(), req.DueDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListMine handles GET /my/payments for the authenticated homeowner
func (h *PaymentHandler) ListMine(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	result, err := h.paymentService.ListByHomeowner(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
