package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/billing"
	"github.com/hoa/backend/internal/domain/identity"
	"github.com/hoa/backend/internal/domain/registration"
	"github.com/hoa/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReportService computes aggregations on demand. Nothing here is cached or
// persisted; every report is recomputed from the underlying rows, and empty
// inputs yield zeros rather than errors.
type ReportService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(db *gorm.DB, logger *zap.Logger) *ReportService {
	return &ReportService{
		db:     db,
		logger: logger,
	}
}

// Collection reports dues collection over a period. The rate is paid over
// non-upcoming invoices; upcoming invoices are excluded from the denominator
// because nobody owes them yet.
func (s *ReportService) Collection(ctx context.Context, req PeriodRequest) (*CollectionReport, error) {
	var rows []models.PaymentModel
	if err := s.db.WithContext(ctx).
		Where("due_date >= ? AND due_date <= ?", req.From, req.To).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	report := &CollectionReport{
		From:    req.From,
		To:      req.To,
		Revenue: decimal.Zero,
	}

	now := time.Now()
	for i := range rows {
		payment := rows[i].ToDomain()
		report.TotalInvoices++
		switch payment.StatusAt(now) {
		case billing.PaymentStatusPaid:
			report.PaidCount++
			report.Revenue = report.Revenue.Add(payment.Amount.Amount())
		case billing.PaymentStatusOverdue:
			report.OverdueCount++
		case billing.PaymentStatusPending:
			report.PendingCount++
		case billing.PaymentStatusUpcoming:
			report.UpcomingCount++
		}
	}

	collectible := report.TotalInvoices - report.UpcomingCount
	if collectible > 0 {
		report.CollectionRate = float64(report.PaidCount) / float64(collectible) * 100
	}

	return report, nil
}

// BlockPerformance reports occupancy and collected revenue per block
func (s *ReportService) BlockPerformance(ctx context.Context, req PeriodRequest) (*BlockPerformanceReport, error) {
	var blocks []models.BlockModel
	if err := s.db.WithContext(ctx).Order("block_number ASC").Find(&blocks).Error; err != nil {
		return nil, err
	}

	report := &BlockPerformanceReport{
		From:   req.From,
		To:     req.To,
		Blocks: make([]BlockPerformance, 0, len(blocks)),
	}

	for _, block := range blocks {
		perf := BlockPerformance{
			BlockID:     block.ID,
			BlockNumber: block.BlockNumber,
			Revenue:     decimal.Zero,
		}

		if err := s.db.WithContext(ctx).Model(&models.LotModel{}).
			Where("block_id = ?", block.ID).
			Count(&perf.TotalLots).Error; err != nil {
			return nil, err
		}
		if err := s.db.WithContext(ctx).Model(&models.LotModel{}).
			Where("block_id = ? AND owner_id IS NOT NULL", block.ID).
			Count(&perf.OccupiedLots).Error; err != nil {
			return nil, err
		}
		if perf.TotalLots > 0 {
			perf.OccupancyRate = float64(perf.OccupiedLots) / float64(perf.TotalLots) * 100
		}

		var revenue decimal.Decimal
		if err := s.db.WithContext(ctx).Model(&models.PaymentModel{}).
			Select("COALESCE(SUM(payments.amount), 0)").
			Joins("JOIN lots ON lots.id = payments.lot_id").
			Where("lots.block_id = ?", block.ID).
			Where("payments.payment_date IS NOT NULL").
			Where("payments.payment_date >= ? AND payments.payment_date <= ?", req.From, req.To).
			Scan(&revenue).Error; err != nil {
			return nil, err
		}
		perf.Revenue = revenue

		report.Blocks = append(report.Blocks, perf)
	}

	return report, nil
}

// Dashboard returns the admin landing page snapshot
func (s *ReportService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{MonthlyRevenue: decimal.Zero}

	db := s.db.WithContext(ctx)

	if err := db.Model(&models.UserModel{}).
		Where("role = ? AND is_approved = ?", identity.UserRoleHomeowner, true).
		Count(&summary.HomeownerCount).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.ApplicationModel{}).
		Where("status = ?", registration.ApplicationStatusPending).
		Count(&summary.PendingApplications).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.LotModel{}).Count(&summary.TotalLots).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.LotModel{}).
		Where("owner_id IS NOT NULL").
		Count(&summary.OccupiedLots).Error; err != nil {
		return nil, err
	}
	if summary.TotalLots > 0 {
		summary.OccupancyRate = float64(summary.OccupiedLots) / float64(summary.TotalLots) * 100
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var revenue decimal.Decimal
	if err := db.Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("payment_date IS NOT NULL").
		Where("payment_date >= ? AND payment_date < ?", monthStart, monthEnd).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	summary.MonthlyRevenue = revenue

	if err := db.Model(&models.PaymentModel{}).
		Where("payment_date IS NULL AND due_date < ?", now).
		Count(&summary.OverdueCount).Error; err != nil {
		return nil, err
	}

	return summary, nil
}

// HomeownerDashboard returns a homeowner's own snapshot
func (s *ReportService) HomeownerDashboard(ctx context.Context, homeownerID uuid.UUID) (*HomeownerSummary, error) {
	summary := &HomeownerSummary{OutstandingDue: decimal.Zero}

	db := s.db.WithContext(ctx)

	if err := db.Model(&models.LotModel{}).
		Where("owner_id = ?", homeownerID).
		Count(&summary.LotCount).Error; err != nil {
		return nil, err
	}

	var unpaid []models.PaymentModel
	if err := db.Where("homeowner_id = ? AND payment_date IS NULL", homeownerID).
		Order("due_date ASC").
		Find(&unpaid).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range unpaid {
		payment := unpaid[i].ToDomain()
		summary.UnpaidCount++
		summary.OutstandingDue = summary.OutstandingDue.Add(payment.Amount.Amount())
		if payment.StatusAt(now) == billing.PaymentStatusOverdue {
			summary.OverdueCount++
		}
		if summary.NextDueDate == nil {
			due := payment.DueDate
			summary.NextDueDate = &due
		}
	}

	return summary, nil
}
