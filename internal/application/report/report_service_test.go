package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/billing"
	"github.com/hoa/backend/internal/domain/identity"
	"github.com/hoa/backend/internal/domain/property"
	"github.com/hoa/backend/internal/domain/shared/valueobject"
	"github.com/hoa/backend/internal/infrastructure/persistence"
	"github.com/hoa/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type reportFixture struct {
	svc       *ReportService
	db        *gorm.DB
	block     *property.Block
	lot       *property.Lot
	homeowner *identity.User
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.BlockModel{},
		&models.LotModel{},
		&models.ApplicationModel{},
		&models.PaymentModel{},
	))

	ctx := context.Background()

	homeowner, err := identity.NewHomeowner("ana@example.com", "Ana Reyes", "s3cret-password")
	require.NoError(t, err)
	require.NoError(t, homeowner.Approve())
	require.NoError(t, persistence.NewGormUserRepository(db).Create(ctx, homeowner))

	block, err := property.NewBlock("1", "")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormBlockRepository(db).Create(ctx, block))

	lot, err := property.NewLot(block.ID, "A-01", decimal.NewFromInt(120))
	require.NoError(t, err)
	require.NoError(t, lot.AssignOwner(homeowner.ID, property.OwnerTypeLessor))
	require.NoError(t, persistence.NewGormLotRepository(db).Create(ctx, lot))

	return &reportFixture{
		svc:       NewReportService(db, zap.NewNop()),
		db:        db,
		block:     block,
		lot:       lot,
		homeowner: homeowner,
	}
}

func (f *reportFixture) addPayment(t *testing.T, dueDate time.Time, paymentDate *time.Time, amount float64) {
	t.Helper()
	payment, err := billing.NewPayment(
		f.homeowner.ID,
		f.lot.ID,
		valueobject.NewMoneyPHPFromFloat(amount),
		billing.PaymentTypeMonthly,
		dueDate,
	)
	require.NoError(t, err)
	if paymentDate != nil {
		require.NoError(t, payment.MarkPaid(*paymentDate, "OR-TEST"))
	}
	require.NoError(t, persistence.NewGormPaymentRepository(f.db).Create(context.Background(), payment))
}

func TestReportService_Collection(t *testing.T) {
	ctx := context.Background()

	t.Run("empty period yields zeros", func(t *testing.T) {
		f := newReportFixture(t)

		report, err := f.svc.Collection(ctx, PeriodRequest{
			From: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Zero(t, report.TotalInvoices)
		assert.Zero(t, report.CollectionRate)
		assert.True(t, report.Revenue.IsZero())
	})

	t.Run("counts paid over collectible invoices", func(t *testing.T) {
		f := newReportFixture(t)

		paidOn := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
		f.addPayment(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), &paidOn, 4500)
		f.addPayment(t, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), nil, 4500)

		report, err := f.svc.Collection(ctx, PeriodRequest{
			From: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, report.TotalInvoices)
		assert.Equal(t, 1, report.PaidCount)
		assert.Equal(t, 1, report.OverdueCount)
		assert.InDelta(t, 50.0, report.CollectionRate, 0.001)
		assert.True(t, decimal.NewFromInt(4500).Equal(report.Revenue))
	})
}

func TestReportService_BlockPerformance(t *testing.T) {
	ctx := context.Background()

	t.Run("reports occupancy and revenue per block", func(t *testing.T) {
		f := newReportFixture(t)

		vacant, err := property.NewLot(f.block.ID, "A-02", decimal.NewFromInt(90))
		require.NoError(t, err)
		require.NoError(t, persistence.NewGormLotRepository(f.db).Create(ctx, vacant))

		paidOn := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
		f.addPayment(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), &paidOn, 4500)

		report, err := f.svc.BlockPerformance(ctx, PeriodRequest{
			From: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.Len(t, report.Blocks, 1)

		perf := report.Blocks[0]
		assert.Equal(t, "1", perf.BlockNumber)
		assert.Equal(t, int64(2), perf.TotalLots)
		assert.Equal(t, int64(1), perf.OccupiedLots)
		assert.InDelta(t, 50.0, perf.OccupancyRate, 0.001)
		assert.True(t, decimal.NewFromInt(4500).Equal(perf.Revenue))
	})

	t.Run("block without lots reports zero occupancy", func(t *testing.T) {
		f := newReportFixture(t)

		empty, err := property.NewBlock("2", "")
		require.NoError(t, err)
		require.NoError(t, persistence.NewGormBlockRepository(f.db).Create(ctx, empty))

		report, err := f.svc.BlockPerformance(ctx, PeriodRequest{
			From: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.Len(t, report.Blocks, 2)
		assert.Zero(t, report.Blocks[1].OccupancyRate)
		assert.True(t, report.Blocks[1].Revenue.IsZero())
	})
}

func TestReportService_Dashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("summarises homeowners lots and overdue invoices", func(t *testing.T) {
		f := newReportFixture(t)

		f.addPayment(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), nil, 4200)

		summary, err := f.svc.Dashboard(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), summary.HomeownerCount)
		assert.Zero(t, summary.PendingApplications)
		assert.Equal(t, int64(1), summary.TotalLots)
		assert.Equal(t, int64(1), summary.OccupiedLots)
		assert.InDelta(t, 100.0, summary.OccupancyRate, 0.001)
		assert.Equal(t, int64(1), summary.OverdueCount)
	})
}

func TestReportService_HomeownerDashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown homeowner yields zeros", func(t *testing.T) {
		f := newReportFixture(t)

		summary, err := f.svc.HomeownerDashboard(ctx, uuid.New())
		require.NoError(t, err)
		assert.Zero(t, summary.LotCount)
		assert.Zero(t, summary.UnpaidCount)
		assert.True(t, summary.OutstandingDue.IsZero())
		assert.Nil(t, summary.NextDueDate)
	})

	t.Run("sums outstanding dues and finds the next due date", func(t *testing.T) {
		f := newReportFixture(t)

		f.addPayment(t, time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), nil, 4500)
		f.addPayment(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), nil, 4500)

		summary, err := f.svc.HomeownerDashboard(ctx, f.homeowner.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), summary.LotCount)
		assert.Equal(t, int64(2), summary.UnpaidCount)
		assert.True(t, decimal.NewFromInt(9000).Equal(summary.OutstandingDue))
		require.NotNil(t, summary.NextDueDate)
		assert.Equal(t, time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), summary.NextDueDate.UTC())
	})
}
