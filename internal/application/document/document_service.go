package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/billing"
	"github.com/hoa/backend/internal/domain/identity"
	"github.com/hoa/backend/internal/domain/property"
	"github.com/hoa/backend/internal/domain/shared"
	"github.com/hoa/backend/internal/infrastructure/document"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Config carries the association identity printed on every document
type Config struct {
	AssociationName    string
	AssociationAddress string
	AdminContact       string
}

// Document is a rendered PDF ready to be served as an attachment
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DocumentService renders invoices and receipts to PDF
type DocumentService struct {
	paymentRepo billing.PaymentRepository
	lotRepo     property.LotRepository
	blockRepo   property.BlockRepository
	userRepo    identity.UserRepository
	engine      *document.TemplateEngine
	renderer    document.PDFRenderer
	config      Config
	logger      *zap.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	paymentRepo billing.PaymentRepository,
	lotRepo property.LotRepository,
	blockRepo property.BlockRepository,
	userRepo identity.UserRepository,
	engine *document.TemplateEngine,
	renderer document.PDFRenderer,
	config Config,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		paymentRepo: paymentRepo,
		lotRepo:     lotRepo,
		blockRepo:   blockRepo,
		userRepo:    userRepo,
		engine:      engine,
		renderer:    renderer,
		config:      config,
		logger:      logger,
	}
}

// InvoicePDF renders the dues invoice for a payment
func (s *DocumentService) InvoicePDF(ctx context.Context, paymentID uuid.UUID) (*Document, error) {
	payment, homeowner, blockLot, err := s.loadDocumentContext(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	html, err := s.engine.RenderInvoice(document.InvoiceData{
		AssociationName:    s.config.AssociationName,
		AssociationAddress: s.config.AssociationAddress,
		InvoiceNumber:      documentNumber("INV", payment),
		IssueDate:          payment.CreatedAt,
		DueDate:            payment.DueDate,
		BillToName:         homeowner.FullName,
		BlockLot:           blockLot,
		Email:              homeowner.Email,
		Phone:              homeowner.Phone,
		Description:        duesDescription(payment),
		Amount:             payment.Amount.Amount(),
		AdminContact:       s.config.AdminContact,
	})
	if err != nil {
		return nil, err
	}

	return s.renderPDF(ctx, html, documentNumber("INV", payment))
}

// ReceiptPDF renders the payment receipt for a settled payment
func (s *DocumentService) ReceiptPDF(ctx context.Context, paymentID uuid.UUID) (*Document, error) {
	payment, homeowner, blockLot, err := s.loadDocumentContext(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !payment.IsPaid() {
		return nil, shared.NewDomainError("INVALID_STATE", "Receipts exist only for settled payments")
	}

	html, err := s.engine.RenderReceipt(document.ReceiptData{
		AssociationName:    s.config.AssociationName,
		AssociationAddress: s.config.AssociationAddress,
		ReceiptNumber:      documentNumber("RCT", payment),
		ReferenceNumber:    payment.ReferenceNumber,
		PaymentDate:        *payment.PaymentDate,
		PaidByName:         homeowner.FullName,
		BlockLot:           blockLot,
		Description:        duesDescription(payment),
		Amount:             payment.Amount.Amount(),
		ProcessingFee:      decimal.Zero,
		AdminContact:       s.config.AdminContact,
	})
	if err != nil {
		return nil, err
	}

	return s.renderPDF(ctx, html, documentNumber("RCT", payment))
}

// OwnerID returns the homeowner a payment belongs to, for access checks
func (s *DocumentService) OwnerID(ctx context.Context, paymentID uuid.UUID) (uuid.UUID, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return uuid.Nil, err
	}
	if payment == nil {
		return uuid.Nil, shared.ErrNotFound
	}
	return payment.HomeownerID, nil
}

func (s *DocumentService) loadDocumentContext(ctx context.Context, paymentID uuid.UUID) (*billing.Payment, *identity.User, string, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, nil, "", err
	}
	if payment == nil {
		return nil, nil, "", shared.ErrNotFound
	}

	homeowner, err := s.userRepo.FindByID(ctx, payment.HomeownerID)
	if err != nil {
		return nil, nil, "", err
	}
	if homeowner == nil {
		return nil, nil, "", shared.NewDomainError("NOT_FOUND", "Homeowner does not exist")
	}

	blockLot := "Unassigned"
	lot, err := s.lotRepo.FindByID(ctx, payment.LotID)
	if err != nil {
		return nil, nil, "", err
	}
	if lot != nil {
		block, err := s.blockRepo.FindByID(ctx, lot.BlockID)
		if err != nil {
			return nil, nil, "", err
		}
		if block != nil {
			blockLot = lot.Label(block.BlockNumber)
		} else {
			blockLot = "Lot " + lot.LotNumber
		}
	}

	return payment, homeowner, blockLot, nil
}

func (s *DocumentService) renderPDF(ctx context.Context, html, title string) (*Document, error) {
	result, err := s.renderer.Render(ctx, &document.RenderRequest{
		HTML:        html,
		PaperSize:   document.PaperSizeA4,
		Orientation: document.OrientationPortrait,
		Margins:     document.DefaultMargins(),
		Title:       title,
	})
	if err != nil {
		s.logger.Error("Document rendering failed", zap.String("title", title), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Document could not be rendered")
	}

	return &Document{
		Filename:    title + ".pdf",
		ContentType: "application/pdf",
		Data:        result.PDFData,
	}, nil
}

// documentNumber derives a stable human-readable number from the payment
func documentNumber(prefix string, payment *billing.Payment) string {
	short := strings.ToUpper(strings.ReplaceAll(payment.ID.String(), "-", ""))[:8]
	return fmt.Sprintf("%s-%d-%s", prefix, payment.DueDate.Year(), short)
}

// duesDescription names the billing period covered by the payment
func duesDescription(payment *billing.Payment) string {
	period := payment.DueDate.Format("January 2006")
	if payment.MonthsCovered > 1 {
		period = period + " to " + payment.PeriodEnd().Format("January 2006")
	}
	return "Association dues for " + period
}
