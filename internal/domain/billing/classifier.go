package billing

import "time"

// PaymentStatus is the read-side classification of an invoice
// Only the payment date is stored; everything else is derived from "now",
// so the status is recomputed on every read instead of persisted.
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusOverdue  PaymentStatus = "overdue"
	PaymentStatusUpcoming PaymentStatus = "upcoming"
)

// Classify derives the status of an invoice at a point in time.
// Pure and total over its inputs:
//   - a recorded payment date always wins, regardless of the other fields
//   - an unpaid invoice past its due date is overdue
//   - an unpaid invoice inside its billing window is pending; the window
//     opens monthsCovered months before the due date
//   - anything further out is upcoming
//
// Comparisons are at date granularity.
func Classify(dueDate time.Time, paymentDate *time.Time, monthsCovered int, now time.Time) PaymentStatus {
	if paymentDate != nil {
		return PaymentStatusPaid
	}

	due := truncateToDay(dueDate)
	today := truncateToDay(now)

	if due.Before(today) {
		return PaymentStatusOverdue
	}

	if monthsCovered < 1 {
		monthsCovered = 1
	}
	windowStart := due.AddDate(0, -monthsCovered, 0)
	if !today.Before(windowStart) {
		return PaymentStatusPending
	}

	return PaymentStatusUpcoming
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
