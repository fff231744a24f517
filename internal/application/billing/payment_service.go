package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/billing"
	"github.com/hoa/backend/internal/domain/identity"
	"github.com/hoa/backend/internal/domain/property"
	"github.com/hoa/backend/internal/domain/shared"
	"github.com/hoa/backend/internal/infrastructure/mailer"
	"go.uber.org/zap"
)

// PaymentService handles invoice issuance and settlement
type PaymentService struct {
	paymentRepo billing.PaymentRepository
	rateRepo    billing.DueRateRepository
	lotRepo     property.LotRepository
	userRepo    identity.UserRepository
	mailer      mailer.Mailer
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo billing.PaymentRepository,
	rateRepo billing.DueRateRepository,
	lotRepo property.LotRepository,
	userRepo identity.UserRepository,
	m mailer.Mailer,
	events shared.EventPublisher,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		rateRepo:    rateRepo,
		lotRepo:     lotRepo,
		userRepo:    userRepo,
		mailer:      m,
		events:      events,
		logger:      logger,
	}
}

// GenerateInvoices issues monthly invoices for every occupied lot that does
// not already have one for the given due date. Each invoice snapshots the
// rate resolved for its due date; later rate changes never touch it.
func (s *PaymentService) GenerateInvoices(ctx context.Context, dueDate time.Time) (*GenerateInvoicesResult, error) {
	lots, err := s.lotRepo.FindOccupied(ctx)
	if err != nil {
		return nil, err
	}

	result := &GenerateInvoicesResult{DueDate: dueDate}
	for _, lot := range lots {
		exists, err := s.paymentRepo.ExistsForLotAndDueDate(ctx, lot.ID, dueDate)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Skipped++
			continue
		}

		rate, err := s.rateRepo.FindEffective(ctx, billing.PaymentTypeMonthly, dueDate)
		if err != nil {
			// Without an active rate the cycle cannot price anything
			return nil, err
		}

		payment, err := billing.NewPayment(*lot.OwnerID, lot.ID, rate.Amount, billing.PaymentTypeMonthly, dueDate)
		if err != nil {
			return nil, err
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, payment)
		result.Created++
	}

	s.logger.Info("Billing cycle completed",
		zap.Time("due_date", dueDate),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

// CreateInvoice manually issues one invoice for a lot (admin)
func (s *PaymentService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*PaymentResponse, error) {
	lot, err := s.lotRepo.FindByID(ctx, req.LotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Lot does not exist")
	}
	if !lot.IsOccupied() {
		return nil, shared.NewDomainError("INVALID_STATE", "Vacant lots cannot be invoiced")
	}

	exists, err := s.paymentRepo.ExistsForLotAndDueDate(ctx, lot.ID, req.DueDate)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An invoice for this lot and due date already exists")
	}

	paymentType := billing.PaymentType(req.PaymentType)
	rate, err := s.rateRepo.FindEffective(ctx, paymentType, req.DueDate)
	if err != nil {
		return nil, err
	}

	payment, err := billing.NewPayment(*lot.OwnerID, lot.ID, rate.Amount, paymentType, req.DueDate)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, payment)

	s.logger.Info("Invoice issued",
		zap.String("lot_id", lot.ID.String()),
		zap.String("payment_type", req.PaymentType),
		zap.Time("due_date", req.DueDate))

	response := ToPaymentResponse(payment, time.Now())
	return &response, nil
}

// MarkPaid records a settlement against an invoice (admin)
func (s *PaymentService) MarkPaid(ctx context.Context, paymentID uuid.UUID, req MarkPaidRequest) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, shared.ErrNotFound
	}

	if err := payment.MarkPaid(req.PaymentDate, req.ReferenceNumber); err != nil {
		return nil, err
	}
	if req.Notes != "" {
		payment.SetNotes(req.Notes)
	}

	if err := s.paymentRepo.UpdateWithLock(ctx, payment); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, payment)

	s.logger.Info("Payment recorded",
		zap.String("payment_id", paymentID.String()),
		zap.String("reference", req.ReferenceNumber))

	s.notifyPaid(ctx, payment)

	response := ToPaymentResponse(payment, time.Now())
	return &response, nil
}

// GetByID retrieves a single payment
func (s *PaymentService) GetByID(ctx context.Context, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, shared.ErrNotFound
	}
	response := ToPaymentResponse(payment, time.Now())
	return &response, nil
}

// ListByHomeowner returns a homeowner's payment history, newest due first
func (s *PaymentService) ListByHomeowner(ctx context.Context, homeownerID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByHomeownerID(ctx, homeownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	responses := make([]PaymentResponse, len(payments))
	for i, payment := range payments {
		responses[i] = ToPaymentResponse(payment, now)
	}
	return responses, nil
}

// List returns payments matching the filter (admin)
func (s *PaymentService) List(ctx context.Context, req ListPaymentsRequest) (*shared.Paginated[PaymentResponse], error) {
	filter := billing.NewPaymentFilter().WithPagination(req.Page, req.PageSize)
	if req.HomeownerID != nil {
		filter = filter.WithHomeownerID(*req.HomeownerID)
	}
	if req.LotID != nil {
		filter = filter.WithLotID(*req.LotID)
	}
	if req.Paid != nil {
		filter = filter.WithPaid(*req.Paid)
	}
	if req.PaymentType != "" {
		filter = filter.WithPaymentType(billing.PaymentType(req.PaymentType))
	}
	if req.DueFrom != nil && req.DueTo != nil {
		filter = filter.WithDueRange(*req.DueFrom, *req.DueTo)
	}
	if req.OrderBy != "" || req.OrderDir != "" {
		filter = filter.WithOrder(req.OrderBy, req.OrderDir)
	}

	payments, total, err := s.paymentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]PaymentResponse, len(payments))
	for i, payment := range payments {
		items[i] = ToPaymentResponse(payment, now)
	}

	result := shared.NewPaginated(items, total, req.Page, req.PageSize)
	return &result, nil
}

// publishEvents drains the payment's domain events onto the bus
func (s *PaymentService) publishEvents(ctx context.Context, payment *billing.Payment) {
	events := payment.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish billing events", zap.Error(err))
	}
	payment.ClearDomainEvents()
}

func (s *PaymentService) notifyPaid(ctx context.Context, payment *billing.Payment) {
	homeowner, err := s.userRepo.FindByID(ctx, payment.HomeownerID)
	if err != nil || homeowner == nil {
		s.logger.Warn("Could not load homeowner for payment confirmation",
			zap.String("homeowner_id", payment.HomeownerID.String()))
		return
	}

	if err := s.mailer.SendPaymentConfirmation(ctx, mailer.PaymentConfirmationEmail{
		To:              homeowner.Email,
		Name:            homeowner.FullName,
		Amount:          payment.Amount.String(),
		ReferenceNumber: payment.ReferenceNumber,
		PaymentDate:     *payment.PaymentDate,
	}); err != nil {
		s.logger.Warn("Failed to send payment confirmation", zap.Error(err))
	}
}
