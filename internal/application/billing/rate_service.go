package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/billing"
	"github.com/hoa/backend/internal/domain/shared"
	"github.com/hoa/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// RateService manages the dues rate schedule. Rate rows are append-only;
// corrections are made by deactivating a row and appending a replacement.
type RateService struct {
	rateRepo billing.DueRateRepository
	logger   *zap.Logger
}

// NewRateService creates a new RateService
func NewRateService(rateRepo billing.DueRateRepository, logger *zap.Logger) *RateService {
	return &RateService{
		rateRepo: rateRepo,
		logger:   logger,
	}
}

// Create appends a new rate row for a payment type
func (s *RateService) Create(ctx context.Context, adminID uuid.UUID, req CreateRateRequest) (*RateResponse, error) {
	rate, err := billing.NewDueRate(
		billing.PaymentType(req.PaymentType),
		valueobject.NewMoneyPHP(req.Amount),
		req.EffectiveDate,
		adminID,
	)
	if err != nil {
		return nil, err
	}

	if err := s.rateRepo.Create(ctx, rate); err != nil {
		return nil, err
	}

	s.logger.Info("Due rate created",
		zap.String("payment_type", req.PaymentType),
		zap.String("amount", rate.Amount.String()),
		zap.Time("effective_date", rate.EffectiveDate))

	response := ToRateResponse(rate)
	return &response, nil
}

// Deactivate removes a rate row from resolution without deleting history
func (s *RateService) Deactivate(ctx context.Context, rateID uuid.UUID) (*RateResponse, error) {
	rate, err := s.rateRepo.FindByID(ctx, rateID)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, shared.ErrNotFound
	}

	if err := rate.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.rateRepo.Update(ctx, rate); err != nil {
		return nil, err
	}

	s.logger.Info("Due rate deactivated", zap.String("rate_id", rateID.String()))

	response := ToRateResponse(rate)
	return &response, nil
}

// List returns the full rate schedule
func (s *RateService) List(ctx context.Context) ([]RateResponse, error) {
	rates, err := s.rateRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]RateResponse, len(rates))
	for i, rate := range rates {
		responses[i] = ToRateResponse(rate)
	}
	return responses, nil
}

// Resolve returns the authoritative rate for a payment type on a target date
func (s *RateService) Resolve(ctx context.Context, paymentType string, target time.Time) (*RateResponse, error) {
	rate, err := s.rateRepo.FindEffective(ctx, billing.PaymentType(paymentType), target)
	if err != nil {
		return nil, err
	}
	response := ToRateResponse(rate)
	return &response, nil
}
