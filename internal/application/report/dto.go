package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodRequest bounds a report to a date range
type PeriodRequest struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// CollectionReport summarises dues collection over a period.
// Upcoming invoices are not yet collectible and sit outside the rate.
type CollectionReport struct {
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	TotalInvoices  int             `json:"total_invoices"`
	PaidCount      int             `json:"paid_count"`
	OverdueCount   int             `json:"overdue_count"`
	PendingCount   int             `json:"pending_count"`
	UpcomingCount  int             `json:"upcoming_count"`
	CollectionRate float64         `json:"collection_rate"`
	Revenue        decimal.Decimal `json:"revenue"`
}

// BlockPerformance summarises one block's occupancy and revenue
type BlockPerformance struct {
	BlockID       uuid.UUID       `json:"block_id"`
	BlockNumber   string          `json:"block_number"`
	TotalLots     int64           `json:"total_lots"`
	OccupiedLots  int64           `json:"occupied_lots"`
	OccupancyRate float64         `json:"occupancy_rate"`
	Revenue       decimal.Decimal `json:"revenue"`
}

// BlockPerformanceReport lists per-block performance over a period
type BlockPerformanceReport struct {
	From   time.Time          `json:"from"`
	To     time.Time          `json:"to"`
	Blocks []BlockPerformance `json:"blocks"`
}

// DashboardSummary is the admin landing page snapshot
type DashboardSummary struct {
	HomeownerCount      int64           `json:"homeowner_count"`
	PendingApplications int64           `json:"pending_applications"`
	TotalLots           int64           `json:"total_lots"`
	OccupiedLots        int64           `json:"occupied_lots"`
	OccupancyRate       float64         `json:"occupancy_rate"`
	MonthlyRevenue      decimal.Decimal `json:"monthly_revenue"`
	OverdueCount        int64           `json:"overdue_count"`
}

// HomeownerSummary is a homeowner's own dashboard snapshot
type HomeownerSummary struct {
	LotCount       int64           `json:"lot_count"`
	UnpaidCount    int64           `json:"unpaid_count"`
	OverdueCount   int64           `json:"overdue_count"`
	OutstandingDue decimal.Decimal `json:"outstanding_due"`
	NextDueDate    *time.Time      `json:"next_due_date,omitempty"`
}
