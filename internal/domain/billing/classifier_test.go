package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	paidOn := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		dueDate       time.Time
		paymentDate   *time.Time
		monthsCovered int
		now           time.Time
		want          PaymentStatus
	}{
		{
			name:          "paid wins regardless of dates",
			dueDate:       time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			paymentDate:   &paidOn,
			monthsCovered: 1,
			now:           time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			want:          PaymentStatusPaid,
		},
		{
			name:          "unpaid past due date is overdue",
			dueDate:       time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			monthsCovered: 1,
			now:           time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			want:          PaymentStatusOverdue,
		},
		{
			name:          "due today is not overdue",
			dueDate:       time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			monthsCovered: 1,
			now:           time.Date(2025, 1, 15, 23, 0, 0, 0, time.UTC),
			want:          PaymentStatusPending,
		},
		{
			name:          "inside monthly window is pending",
			dueDate:       time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
			monthsCovered: 1,
			now:           time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
			want:          PaymentStatusPending,
		},
		{
			name:          "beyond monthly window is upcoming",
			dueDate:       time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
			monthsCovered: 1,
			now:           time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
			want:          PaymentStatusUpcoming,
		},
		{
			name:          "quarterly window opens three months early",
			dueDate:       time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			monthsCovered: 3,
			now:           time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			want:          PaymentStatusPending,
		},
		{
			name:          "quarterly invoice before its window is upcoming",
			dueDate:       time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			monthsCovered: 3,
			now:           time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			want:          PaymentStatusUpcoming,
		},
		{
			name:          "zero months covered treated as one",
			dueDate:       time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
			monthsCovered: 0,
			now:           time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
			want:          PaymentStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.dueDate, tt.paymentDate, tt.monthsCovered, tt.now)
			assert.Equal(t, tt.want, got)

			// Pure function: same inputs, same output
			assert.Equal(t, got, Classify(tt.dueDate, tt.paymentDate, tt.monthsCovered, tt.now))
		})
	}
}
